package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrItemInputIsNotConstructed = errors.New(
		"ItemInput must be created via NewItemInput constructor",
	)
	ErrReturnItemInputIsNotConstructed = errors.New(
		"ReturnItemInput must be created via NewReturnItemInput constructor",
	)
)

// ItemInput is one requested shipment line: a product reference and a
// quantity. The unit price is never part of the input; it is snapshotted
// from the product catalog when the line is attached.
type ItemInput struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  decimal.Decimal
	notes     string

	guard guard.ConstructorGuard
}

// NewItemInput creates a validated line request.
// Quantity must be strictly positive.
func NewItemInput(productID kernel.UUID, quantity decimal.Decimal, notes string) (ItemInput, error) {
	input := ItemInput{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		input.setProductID(productID),
		input.setQuantity(quantity),
	); err != nil {
		return ItemInput{}, err
	}

	input.notes = notes
	return input, nil
}

// Validate ensures the input was created through the constructor.
func (i ItemInput) Validate() error {
	return i.guard.Validate(ErrItemInputIsNotConstructed)
}

// ProductID returns the referenced catalog product.
func (i ItemInput) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the requested quantity.
func (i ItemInput) Quantity() decimal.Decimal {
	return i.quantity
}

// Notes returns the free-text remarks for the line.
func (i ItemInput) Notes() string {
	return i.notes
}

func (i *ItemInput) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = productID
	return nil
}

func (i *ItemInput) setQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidError("quantity")
	}
	i.quantity = quantity
	return nil
}

// ReturnItemInput is one requested return line: a product reference, a
// quantity and an optional return classification.
type ReturnItemInput struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  decimal.Decimal
	reason    *shipment.ReturnReason
	notes     string

	guard guard.ConstructorGuard
}

// NewReturnItemInput creates a validated return line request.
func NewReturnItemInput(
	productID kernel.UUID,
	quantity decimal.Decimal,
	reason *shipment.ReturnReason,
	notes string,
) (ReturnItemInput, error) {
	base, err := NewItemInput(productID, quantity, notes)
	if err != nil {
		return ReturnItemInput{}, err
	}

	if reason != nil {
		if reasonErr := reason.Validate(); reasonErr != nil {
			return ReturnItemInput{}, reasonErr
		}
	}

	return ReturnItemInput{
		productID: base.productID,
		quantity:  base.quantity,
		reason:    reason,
		notes:     base.notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the input was created through the constructor.
func (i ReturnItemInput) Validate() error {
	return i.guard.Validate(ErrReturnItemInputIsNotConstructed)
}

// ProductID returns the referenced catalog product.
func (i ReturnItemInput) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the requested quantity.
func (i ReturnItemInput) Quantity() decimal.Decimal {
	return i.quantity
}

// Reason returns the return classification, nil when not given.
func (i ReturnItemInput) Reason() *shipment.ReturnReason {
	return i.reason
}

// Notes returns the free-text remarks for the line.
func (i ReturnItemInput) Notes() string {
	return i.notes
}
