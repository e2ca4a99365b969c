package commands

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
)

// AddReturnItemsCommandHandler handles recording returned goods on a shipment.
// Return lines are priced from the current catalog snapshot, the same way
// regular lines are priced at creation. When the shipment already carries a
// generated document it is regenerated so the artifact reflects the returns.
type AddReturnItemsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	shops      ports.ShopDirectory
	drivers    ports.DriverDirectory
	catalog    ports.ProductCatalog
	documents  ports.DocumentGenerator
}

// NewAddReturnItemsCommandHandler creates a handler for return registration operations.
func NewAddReturnItemsCommandHandler(
	uowFactory ShipmentUoWFactory,
	shops ports.ShopDirectory,
	drivers ports.DriverDirectory,
	catalog ports.ProductCatalog,
	documents ports.DocumentGenerator,
) AddReturnItemsCommandHandler {
	return AddReturnItemsCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		drivers:    drivers,
		catalog:    catalog,
		documents:  documents,
	}
}

// Handle processes the return registration command.
func (h *AddReturnItemsCommandHandler) Handle(
	ctx context.Context,
	cmd AddReturnItemsCommand,
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

	items, err := h.buildReturnItems(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AddReturnItems(items); err != nil {
		return nil, err
	}

	if err = h.regenerateDocument(ctx, aggregate); err != nil {
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

// regenerateDocument refreshes the delivery document when one exists, so a
// downloaded artifact always reflects the current item set. A shipment that
// was never confirmed has no document and nothing to refresh.
func (h *AddReturnItemsCommandHandler) regenerateDocument(
	ctx context.Context,
	aggregate *shipment.Shipment,
) error {
	if !aggregate.HasDocument() {
		return nil
	}

	sh, err := h.shops.Get(ctx, aggregate.ShopID())
	if err != nil {
		return err
	}

	var drv *driver.Driver
	if aggregate.DriverID() != nil {
		if drv, err = h.drivers.Get(ctx, *aggregate.DriverID()); err != nil {
			return err
		}
	}

	path, err := h.documents.Generate(ctx, aggregate, sh, drv)
	if err != nil {
		return fmt.Errorf("regenerate shipment document: %w", err)
	}

	return aggregate.AttachDocument(path)
}

// buildReturnItems resolves every product reference and snapshots its current
// catalog price into a Return item.
func (h *AddReturnItemsCommandHandler) buildReturnItems(
	ctx context.Context,
	inputs []ReturnItemInput,
) ([]*shipment.Item, error) {
	items := make([]*shipment.Item, 0, len(inputs))
	for _, input := range inputs {
		prod, err := h.catalog.Get(ctx, input.ProductID())
		if err != nil {
			return nil, err
		}

		item, err := shipment.NewItem(
			prod.ID(),
			input.Quantity(),
			prod.UnitPrice(),
			shipment.Return,
			input.Reason(),
			input.Notes(),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
