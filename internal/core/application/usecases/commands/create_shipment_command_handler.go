package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
)

// CreateShipmentCommandHandler handles the business logic for shipment creation.
// Resolves the shop, driver and product references through the directory
// collaborators, snapshots the catalog unit price onto every line, generates
// a unique shipment number and persists the aggregate in Draft status.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	shops      ports.ShopDirectory
	drivers    ports.DriverDirectory
	catalog    ports.ProductCatalog
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation operations.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	shops ports.ShopDirectory,
	drivers ports.DriverDirectory,
	catalog ports.ProductCatalog,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		drivers:    drivers,
		catalog:    catalog,
	}
}

// Handle processes the shipment creation command.
// Fails with an ObjectNotFoundError if any shop/driver/product reference
// does not resolve; nothing is persisted in that case.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.shops.Get(ctx, cmd.ShopID()); err != nil {
		return nil, err
	}

	if cmd.DriverID() != nil {
		if _, err := h.drivers.Get(ctx, *cmd.DriverID()); err != nil {
			return nil, err
		}
	}

	items, err := h.buildItems(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	number := shipment.GenerateNumber(cmd.Date(), time.Now().UnixMilli())
	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(),
		number,
		cmd.ShopID(),
		cmd.DriverID(),
		cmd.Date(),
		items,
		cmd.Notes(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// buildItems resolves every product reference and snapshots its current
// catalog price into a Regular item.
func (h *CreateShipmentCommandHandler) buildItems(
	ctx context.Context,
	inputs []ItemInput,
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
			shipment.Regular,
			nil,
			input.Notes(),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
