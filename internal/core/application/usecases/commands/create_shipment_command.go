package commands

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
)

// CreateShipmentCommand represents a request to create a new shipment in
// Draft status with its initial Regular item set.
//
// Example:
//
//	items := []commands.ItemInput{breadLine, cakeLine}
//	cmd, err := commands.NewCreateShipmentCommand(shopID, &driverID, date, items, "first delivery")
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shopID   kernel.UUID
	driverID *kernel.UUID
	date     time.Time
	items    []ItemInput
	notes    string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Validates that the shop reference and date are present and that every
// item input was properly constructed. The driver is optional.
func NewCreateShipmentCommand(
	shopID kernel.UUID,
	driverID *kernel.UUID,
	date time.Time,
	items []ItemInput,
	notes string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopID(shopID),
		cmd.setDriverID(driverID),
		cmd.setDate(date),
		cmd.setItems(items),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShopID returns the receiving shop's identifier.
func (c CreateShipmentCommand) ShopID() kernel.UUID {
	return c.shopID
}

// DriverID returns the assigned driver's identifier, nil if unassigned.
func (c CreateShipmentCommand) DriverID() *kernel.UUID {
	return c.driverID
}

// Date returns the planned delivery date.
func (c CreateShipmentCommand) Date() time.Time {
	return c.date
}

// Items returns the requested initial lines.
func (c CreateShipmentCommand) Items() []ItemInput {
	return c.items
}

// Notes returns the free-text remarks.
func (c CreateShipmentCommand) Notes() string {
	return c.notes
}

func (c *CreateShipmentCommand) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}
	c.shopID = shopID
	return nil
}

func (c *CreateShipmentCommand) setDriverID(driverID *kernel.UUID) error {
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

func (c *CreateShipmentCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("shipmentDate")
	}
	c.date = date
	return nil
}

func (c *CreateShipmentCommand) setItems(items []ItemInput) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
