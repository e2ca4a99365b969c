package commands

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// ConfirmShipmentResult carries the confirmed shipment and the per-channel
// notification outcome. A channel failure does not fail the confirmation;
// the caller surfaces it as a partial-success signal.
type ConfirmShipmentResult struct {
	Shipment      *shipment.Shipment
	Notifications services.DispatchResult
}

// ConfirmShipmentCommandHandler handles the business logic for shipment confirmation.
//
// The operation is one atomic unit of work:
//   - transition Draft -> Confirmed (re-confirming a Confirmed shipment keeps it)
//   - generate the delivery document; failure here is fatal and rolls back
//   - dispatch both notification channels best-effort, recording sent-flags
//   - persist the aggregate with its flags and document reference
type ConfirmShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	shops      ports.ShopDirectory
	drivers    ports.DriverDirectory
	documents  ports.DocumentGenerator
	dispatcher services.NotificationDispatcher
}

// NewConfirmShipmentCommandHandler creates a handler for shipment confirmation operations.
func NewConfirmShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	shops ports.ShopDirectory,
	drivers ports.DriverDirectory,
	documents ports.DocumentGenerator,
	dispatcher services.NotificationDispatcher,
) ConfirmShipmentCommandHandler {
	return ConfirmShipmentCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		drivers:    drivers,
		documents:  documents,
		dispatcher: dispatcher,
	}
}

// Handle processes the confirmation command.
// Returns an ObjectNotFoundError when the shipment does not exist and a
// wrapped error when document generation fails; notification failures are
// reflected only in the result.
func (h *ConfirmShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmShipmentCommand,
) (ConfirmShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmShipmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return ConfirmShipmentResult{}, err
	}

	sh, err := h.shops.Get(ctx, aggregate.ShopID())
	if err != nil {
		return ConfirmShipmentResult{}, err
	}

	var drv *driver.Driver
	if aggregate.DriverID() != nil {
		if drv, err = h.drivers.Get(ctx, *aggregate.DriverID()); err != nil {
			return ConfirmShipmentResult{}, err
		}
	}

	if err = aggregate.Confirm(); err != nil {
		return ConfirmShipmentResult{}, err
	}

	// The document is part of the confirmation contract: generation failure
	// aborts the whole operation.
	path, err := h.documents.Generate(ctx, aggregate, sh, drv)
	if err != nil {
		return ConfirmShipmentResult{}, fmt.Errorf("generate shipment document: %w", err)
	}

	if err = aggregate.AttachDocument(path); err != nil {
		return ConfirmShipmentResult{}, err
	}

	notifications := h.dispatcher.Dispatch(ctx, aggregate, sh, drv)

	if err = repo.Update(ctx, aggregate); err != nil {
		return ConfirmShipmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmShipmentResult{}, err
	}

	return ConfirmShipmentResult{
		Shipment:      aggregate,
		Notifications: notifications,
	}, nil
}
