package commands

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrUpdateShipmentCommandIsNotConstructed = errors.New(
		"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
	)
)

// UpdateShipmentCommand represents a partial edit of an existing shipment.
// Every field is optional: nil means "leave unchanged". Supplying an item
// list replaces the shipment's whole set of lines of that type.
//
// Because nil is the "unchanged" marker, this patch can assign or reassign
// a driver but never clear one.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	shopID       *kernel.UUID
	driverID     *kernel.UUID
	date         *time.Time
	notes        *string
	regularItems []ItemInput
	returnItems  []ReturnItemInput

	guard guard.ConstructorGuard
}

// NewUpdateShipmentCommand creates a command to edit the given shipment.
func NewUpdateShipmentCommand(
	shipmentID kernel.UUID,
	shopID *kernel.UUID,
	driverID *kernel.UUID,
	date *time.Time,
	notes *string,
	regularItems []ItemInput,
	returnItems []ReturnItemInput,
) (UpdateShipmentCommand, error) {
	cmd := UpdateShipmentCommand{
		date:  date,
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setShopID(shopID),
		cmd.setDriverID(driverID),
		cmd.setRegularItems(regularItems),
		cmd.setReturnItems(returnItems),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to edit.
func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ShopID returns the new shop reference, nil to keep the current one.
func (c UpdateShipmentCommand) ShopID() *kernel.UUID {
	return c.shopID
}

// DriverID returns the new driver reference, nil to keep the current one.
// An assigned driver cannot be cleared through this command, only replaced.
func (c UpdateShipmentCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Date returns the new delivery date, nil to keep the current one.
func (c UpdateShipmentCommand) Date() *time.Time {
	return c.date
}

// Notes returns the new remarks, nil to keep the current ones.
func (c UpdateShipmentCommand) Notes() *string {
	return c.notes
}

// RegularItems returns the replacement regular lines, nil to keep the
// current ones.
func (c UpdateShipmentCommand) RegularItems() []ItemInput {
	return c.regularItems
}

// ReturnItems returns the replacement return lines, nil to keep the
// current ones.
func (c UpdateShipmentCommand) ReturnItems() []ReturnItemInput {
	return c.returnItems
}

func (c *UpdateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentCommand) setShopID(shopID *kernel.UUID) error {
	if shopID == nil {
		return nil
	}
	if err := shopID.Validate(); err != nil {
		return err
	}
	id := *shopID
	c.shopID = &id
	return nil
}

func (c *UpdateShipmentCommand) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	id := *driverID
	c.driverID = &id
	return nil
}

func (c *UpdateShipmentCommand) setRegularItems(items []ItemInput) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.regularItems = items
	return nil
}

func (c *UpdateShipmentCommand) setReturnItems(items []ReturnItemInput) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.returnItems = items
	return nil
}
