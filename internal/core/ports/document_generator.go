package ports

import (
	"context"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
)

// DocumentGenerator produces the delivery document for a shipment's current
// item snapshot and returns an opaque artifact reference (a storage path).
// The document is always rebuilt whole, never patched incrementally.
//
// Generation failure is fatal for the operation that requested it: the
// artifact is part of that operation's contract.
type DocumentGenerator interface {
	Generate(ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver) (string, error)
}
