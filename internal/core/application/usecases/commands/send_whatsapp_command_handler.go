package commands

import (
	"context"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// SendWhatsAppCommandHandler handles the manual WhatsApp resend.
// Unlike the dispatch during confirmation this send is the whole point of
// the operation, so a channel failure fails the command. The shipment must
// already carry a generated document.
type SendWhatsAppCommandHandler struct {
	uowFactory ShipmentUoWFactory
	shops      ports.ShopDirectory
	drivers    ports.DriverDirectory
	dispatcher services.NotificationDispatcher
}

// NewSendWhatsAppCommandHandler creates a handler for manual WhatsApp send operations.
func NewSendWhatsAppCommandHandler(
	uowFactory ShipmentUoWFactory,
	shops ports.ShopDirectory,
	drivers ports.DriverDirectory,
	dispatcher services.NotificationDispatcher,
) SendWhatsAppCommandHandler {
	return SendWhatsAppCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		drivers:    drivers,
		dispatcher: dispatcher,
	}
}

// Handle processes the manual send command.
// Returns an ObjectNotFoundError when the shipment has no generated document
// yet, and the channel error when the send itself fails.
func (h *SendWhatsAppCommandHandler) Handle(
	ctx context.Context,
	cmd SendWhatsAppCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if !aggregate.HasDocument() {
		return nil, errs.NewObjectNotFoundError("document", aggregate.ID())
	}

	sh, err := h.shops.Get(ctx, aggregate.ShopID())
	if err != nil {
		return nil, err
	}

	var drv *driver.Driver
	if aggregate.DriverID() != nil {
		if drv, err = h.drivers.Get(ctx, *aggregate.DriverID()); err != nil {
			return nil, err
		}
	}

	if err = h.dispatcher.DispatchText(ctx, aggregate, sh, drv); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
