package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
)

// ShipmentPage is one page of a filtered shipment listing, together with the
// size of the whole filtered set for pagination math.
type ShipmentPage struct {
	Shipments     []*shipment.Shipment
	TotalElements int64
}

// ShipmentRepository provides persistence operations for the Shipment
// aggregate. Writes persist the aggregate with its full owned item
// collection atomically; Update enforces the optimistic version check and
// returns errs.VersionIsInvalidError on a conflict.
type ShipmentRepository interface {
	// Add persists a new shipment with its items.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists an existing shipment, replacing its item collection,
	// guarded by the aggregate's version token.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its items by ID.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// Delete removes a shipment and cascades to its owned items.
	Delete(ctx context.Context, id kernel.UUID) error

	// FindByFilter returns the whole filtered set ordered by
	// (date desc, id desc). Listing and reporting share this path so both
	// observe the exact same result set for identical filters.
	FindByFilter(ctx context.Context, filter shipment.Filter) ([]*shipment.Shipment, error)

	// FindPageByFilter returns one page of the filtered set in the same order.
	FindPageByFilter(ctx context.Context, filter shipment.Filter, page, size int) (ShipmentPage, error)

	// FindDocumentPaths returns the document references of all shipments that
	// have one. Used by the artifact cleanup job.
	FindDocumentPaths(ctx context.Context) ([]string, error)
}
