package ports

import (
	"context"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/core/domain/model/shop"
)

// External collaborator lookups. These are plain key-value directories with
// no computed invariants: the lifecycle resolves references through them and
// snapshots what it needs (e.g. product prices onto items).
type (
	// ProductCatalog resolves product references and current unit prices.
	ProductCatalog interface {
		Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
	}

	// ShopDirectory resolves shop references and contact fields.
	ShopDirectory interface {
		Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)
	}

	// DriverDirectory resolves driver references and contact fields.
	DriverDirectory interface {
		Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
	}
)
