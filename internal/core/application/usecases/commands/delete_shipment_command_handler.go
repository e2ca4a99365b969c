package commands

import (
	"context"
)

// DeleteShipmentCommandHandler handles shipment removal.
// The delete cascades to the owned items; the generated document file, if
// any, is left on disk for the artifact cleanup job to collect.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewDeleteShipmentCommandHandler creates a handler for shipment removal operations.
func NewDeleteShipmentCommandHandler(uowFactory ShipmentUoWFactory) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the removal command.
// Returns an ObjectNotFoundError when the shipment does not exist.
func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	if _, err := repo.Get(ctx, cmd.ShipmentID()); err != nil {
		return err
	}

	if err := repo.Delete(ctx, cmd.ShipmentID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
