// Package product provides the catalog read model consumed by the shipment
// lifecycle: item lines snapshot the product's unit price at attach time.
// Catalog maintenance itself lives outside this service.
package product

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrProductIsNotConstructed is returned when a Product instance was not created
// through the NewProduct factory method.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog entry: the priced good that shipment lines reference.
type Product struct {
	id        kernel.UUID
	code      string
	name      string
	unit      string
	unitPrice decimal.Decimal
	active    bool

	isConstructed bool
}

// NewProduct creates a catalog entry with validation.
// The unit is a free-form measure label such as "kg", "pcs" or "box".
func NewProduct(
	id kernel.UUID,
	code string,
	name string,
	unit string,
	unitPrice decimal.Decimal,
	active bool,
) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if unitPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidError("unitPrice")
	}

	return &Product{
		id:            id,
		code:          code,
		name:          name,
		unit:          unit,
		unitPrice:     unitPrice,
		active:        active,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product instance was properly constructed through NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Code returns the short catalog code.
func (p *Product) Code() string {
	return p.code
}

// Name returns the display name.
func (p *Product) Name() string {
	return p.name
}

// Unit returns the measure label (e.g. "kg", "pcs", "box").
func (p *Product) Unit() string {
	return p.unit
}

// UnitPrice returns the current catalog price; shipment lines snapshot this.
func (p *Product) UnitPrice() decimal.Decimal {
	return p.unitPrice
}

// Active reports whether the product is currently offered.
func (p *Product) Active() bool {
	return p.active
}
