package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrConfirmShipmentCommandIsNotConstructed = errors.New(
		"ConfirmShipmentCommand must be created via NewConfirmShipmentCommand constructor",
	)
)

// ConfirmShipmentCommand represents a request to confirm a draft shipment:
// transition it to Confirmed, generate its delivery document and notify the
// shop over both channels.
type ConfirmShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmShipmentCommand creates a command to confirm the given shipment.
func NewConfirmShipmentCommand(shipmentID kernel.UUID) (ConfirmShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ConfirmShipmentCommand{}, err
	}

	return ConfirmShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmShipmentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to confirm.
func (c ConfirmShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
