package commands

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"

	"github.com/shopspring/decimal"
)

// UpdateShipmentCommandHandler handles partial edits of a shipment.
// Item lists, when supplied, replace the shipment's whole set of lines of
// that type; replacement lines are priced from the current catalog snapshot.
// When the shipment carries a generated document it is regenerated after the
// edit.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	shops      ports.ShopDirectory
	drivers    ports.DriverDirectory
	catalog    ports.ProductCatalog
	documents  ports.DocumentGenerator
}

// NewUpdateShipmentCommandHandler creates a handler for shipment edit operations.
func NewUpdateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	shops ports.ShopDirectory,
	drivers ports.DriverDirectory,
	catalog ports.ProductCatalog,
	documents ports.DocumentGenerator,
) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		shops:      shops,
		drivers:    drivers,
		catalog:    catalog,
		documents:  documents,
	}
}

// Handle processes the shipment edit command.
func (h *UpdateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipmentCommand,
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

	if err = h.applyReferences(ctx, aggregate, cmd); err != nil {
		return nil, err
	}

	if cmd.Date() != nil {
		if err = aggregate.ChangeDate(*cmd.Date()); err != nil {
			return nil, err
		}
	}

	if cmd.Notes() != nil {
		aggregate.ChangeNotes(*cmd.Notes())
	}

	if err = h.applyItems(ctx, aggregate, cmd); err != nil {
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

// applyReferences resolves and applies the new shop and driver references.
// Both are checked against their directories before the aggregate changes.
// A nil driver reference means "unchanged", so the patch never clears an
// assigned driver.
func (h *UpdateShipmentCommandHandler) applyReferences(
	ctx context.Context,
	aggregate *shipment.Shipment,
	cmd UpdateShipmentCommand,
) error {
	if cmd.ShopID() != nil {
		if _, err := h.shops.Get(ctx, *cmd.ShopID()); err != nil {
			return err
		}
		if err := aggregate.ChangeShop(*cmd.ShopID()); err != nil {
			return err
		}
	}

	if cmd.DriverID() != nil {
		if _, err := h.drivers.Get(ctx, *cmd.DriverID()); err != nil {
			return err
		}
		if err := aggregate.ChangeDriver(cmd.DriverID()); err != nil {
			return err
		}
	}

	return nil
}

func (h *UpdateShipmentCommandHandler) applyItems(
	ctx context.Context,
	aggregate *shipment.Shipment,
	cmd UpdateShipmentCommand,
) error {
	if cmd.RegularItems() != nil {
		items := make([]*shipment.Item, 0, len(cmd.RegularItems()))
		for _, input := range cmd.RegularItems() {
			item, err := h.priceItem(ctx, input.ProductID(), input.Quantity(),
				shipment.Regular, nil, input.Notes())
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		if err := aggregate.ReplaceItems(shipment.Regular, items); err != nil {
			return err
		}
	}

	if cmd.ReturnItems() != nil {
		items := make([]*shipment.Item, 0, len(cmd.ReturnItems()))
		for _, input := range cmd.ReturnItems() {
			item, err := h.priceItem(ctx, input.ProductID(), input.Quantity(),
				shipment.Return, input.Reason(), input.Notes())
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		if err := aggregate.ReplaceItems(shipment.Return, items); err != nil {
			return err
		}
	}

	return nil
}

func (h *UpdateShipmentCommandHandler) priceItem(
	ctx context.Context,
	productID kernel.UUID,
	quantity decimal.Decimal,
	itemType shipment.ItemType,
	reason *shipment.ReturnReason,
	notes string,
) (*shipment.Item, error) {
	prod, err := h.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	return shipment.NewItem(prod.ID(), quantity, prod.UnitPrice(), itemType, reason, notes)
}

func (h *UpdateShipmentCommandHandler) regenerateDocument(
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
