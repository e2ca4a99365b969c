package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrAddReturnItemsCommandIsNotConstructed = errors.New(
		"AddReturnItemsCommand must be created via NewAddReturnItemsCommand constructor",
	)
)

// AddReturnItemsCommand represents a request to record returned goods against
// an existing shipment as negative adjustments.
type AddReturnItemsCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	items      []ReturnItemInput

	guard guard.ConstructorGuard
}

// NewAddReturnItemsCommand creates a command to add return lines to a shipment.
// At least one line is required.
func NewAddReturnItemsCommand(
	shipmentID kernel.UUID,
	items []ReturnItemInput,
) (AddReturnItemsCommand, error) {
	cmd := AddReturnItemsCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setItems(items),
	); err != nil {
		return AddReturnItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddReturnItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddReturnItemsCommandIsNotConstructed)
}

// ShipmentID returns the shipment receiving the return lines.
func (c AddReturnItemsCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Items returns the requested return lines.
func (c AddReturnItemsCommand) Items() []ReturnItemInput {
	return c.items
}

func (c *AddReturnItemsCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AddReturnItemsCommand) setItems(items []ReturnItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
