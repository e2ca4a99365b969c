package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrSendWhatsAppCommandIsNotConstructed = errors.New(
		"SendWhatsAppCommand must be created via NewSendWhatsAppCommand constructor",
	)
)

// SendWhatsAppCommand represents a manual request to (re)send the WhatsApp
// notification for a shipment, typically after an earlier channel failure.
type SendWhatsAppCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendWhatsAppCommand creates a command to send the WhatsApp notification.
func NewSendWhatsAppCommand(shipmentID kernel.UUID) (SendWhatsAppCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return SendWhatsAppCommand{}, err
	}

	return SendWhatsAppCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendWhatsAppCommand) Validate() error {
	return c.guard.Validate(ErrSendWhatsAppCommandIsNotConstructed)
}

// ShipmentID returns the shipment to notify about.
func (c SendWhatsAppCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
