package commands

import (
	"context"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// UpdateShipmentStatusResult carries the updated shipment and the outcome of
// the delivery email, when one was attempted.
type UpdateShipmentStatusResult struct {
	Shipment      *shipment.Shipment
	Notifications services.DispatchResult
}

// UpdateShipmentStatusCommandHandler handles manual status overrides.
//
// Entering Delivered triggers a one-shot delivery confirmation email: it is
// sent only on the transition into Delivered, only when the shipment carries
// a generated document, and best-effort: an email failure never fails the
// status change.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	shops      ports.ShopDirectory
	drivers    ports.DriverDirectory
	dispatcher services.NotificationDispatcher
}

// NewUpdateShipmentStatusCommandHandler creates a handler for status override operations.
func NewUpdateShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	shops ports.ShopDirectory,
	drivers ports.DriverDirectory,
	dispatcher services.NotificationDispatcher,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		drivers:    drivers,
		dispatcher: dispatcher,
	}
}

// Handle processes the status override command.
func (h *UpdateShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipmentStatusCommand,
) (UpdateShipmentStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateShipmentStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateShipmentStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return UpdateShipmentStatusResult{}, err
	}

	enteringDelivered := cmd.Status() == shipment.Delivered &&
		aggregate.Status() != shipment.Delivered

	if err = aggregate.ForceSetStatus(cmd.Status()); err != nil {
		return UpdateShipmentStatusResult{}, err
	}

	notifications := services.DispatchResult{}
	if enteringDelivered && aggregate.HasDocument() {
		sh, shopErr := h.shops.Get(ctx, aggregate.ShopID())
		if shopErr != nil {
			return UpdateShipmentStatusResult{}, shopErr
		}

		var drv *driver.Driver
		if aggregate.DriverID() != nil {
			if drv, err = h.drivers.Get(ctx, *aggregate.DriverID()); err != nil {
				return UpdateShipmentStatusResult{}, err
			}
		}

		if emailErr := h.dispatcher.DispatchEmail(ctx, aggregate, sh, drv); emailErr != nil {
			notifications.EmailErr = emailErr
		} else {
			notifications.EmailSent = true
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return UpdateShipmentStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateShipmentStatusResult{}, err
	}

	return UpdateShipmentStatusResult{
		Shipment:      aggregate,
		Notifications: notifications,
	}, nil
}
