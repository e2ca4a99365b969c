package shipment

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created through
// the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemType tags an item as delivered goods or goods taken back.
// The tag lives on the item, not the shipment: a single shipment can carry
// both regular and return items, and every aggregate computation buckets
// by this tag rather than by shipment status.
type ItemType int

const (
	// UnknownItemType represents an invalid or undefined item type.
	UnknownItemType ItemType = iota

	// Regular marks goods delivered to the shop.
	Regular

	// Return marks goods taken back from the shop.
	Return
)

// getItemTypeStrings returns a map of ItemType values to their string representations.
func getItemTypeStrings() map[ItemType]string {
	return map[ItemType]string{
		UnknownItemType: "UNKNOWN",
		Regular:         "REGULAR",
		Return:          "RETURN",
	}
}

// ItemTypeFromString parses an item type from its wire representation.
func ItemTypeFromString(s string) (ItemType, error) {
	switch s {
	case "REGULAR":
		return Regular, nil
	case "RETURN":
		return Return, nil
	default:
		return UnknownItemType, errs.NewValueIsInvalidErrorWithCause(
			"itemType", fmt.Errorf("%q is not a valid item type", s))
	}
}

// Validate checks if the ItemType value is valid.
func (t ItemType) Validate() error {
	if t != Regular && t != Return {
		return errs.NewValueIsInvalidErrorWithCause("itemType", fmt.Errorf("%d is not a valid item type", t))
	}
	return nil
}

// String returns the wire name of the item type, implementing fmt.Stringer.
func (t ItemType) String() string {
	if str, ok := getItemTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// ReturnReason classifies why goods came back. Meaningful only on Return items.
type ReturnReason int

const (
	UnknownReturnReason ReturnReason = iota
	Damaged
	Expired
	WrongProduct
	ExcessQuantity
	QualityIssue
	OtherReason
)

// getReturnReasonStrings returns a map of ReturnReason values to their string representations.
func getReturnReasonStrings() map[ReturnReason]string {
	return map[ReturnReason]string{
		UnknownReturnReason: "UNKNOWN",
		Damaged:             "DAMAGED",
		Expired:             "EXPIRED",
		WrongProduct:        "WRONG_PRODUCT",
		ExcessQuantity:      "EXCESS_QUANTITY",
		QualityIssue:        "QUALITY_ISSUE",
		OtherReason:         "OTHER",
	}
}

// ReturnReasonFromString parses a return reason from its wire representation.
func ReturnReasonFromString(s string) (ReturnReason, error) {
	for reason, str := range getReturnReasonStrings() {
		if str == s && reason != UnknownReturnReason {
			return reason, nil
		}
	}
	return UnknownReturnReason, errs.NewValueIsInvalidErrorWithCause(
		"returnReason", fmt.Errorf("%q is not a valid return reason", s))
}

// Validate checks if the ReturnReason value is valid.
func (r ReturnReason) Validate() error {
	if _, ok := getReturnReasonStrings()[r]; !ok || r == UnknownReturnReason {
		return errs.NewValueIsInvalidErrorWithCause("returnReason", fmt.Errorf("%d is not a valid return reason", r))
	}
	return nil
}

// String returns the wire name of the return reason, implementing fmt.Stringer.
func (r ReturnReason) String() string {
	if str, ok := getReturnReasonStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Item is a line of a shipment: a quantity of one product at a unit price
// snapshotted from the catalog when the item was attached. Items are owned
// by their shipment; their lifetime is bound to it.
//
// Invariant: totalPrice == quantity * unitPrice after every mutation.
// The total is never set directly; it is recomputed whenever quantity or
// unit price change.
type Item struct {
	// id is the unique identifier for the item
	id kernel.UUID

	// productID references the catalog product; the price below is a snapshot,
	// not a live reference
	productID kernel.UUID

	// quantity must be strictly positive
	quantity decimal.Decimal

	// unitPrice is the product's catalog price at attach time
	unitPrice decimal.Decimal

	// totalPrice is derived: quantity * unitPrice
	totalPrice decimal.Decimal

	// itemType buckets the item as Regular (sold) or Return (taken back)
	itemType ItemType

	// returnReason is set only for Return items
	returnReason *ReturnReason

	// notes carries free-text remarks for the line
	notes string

	// isConstructed ensures the item was created via NewItem or RestoreItem
	isConstructed bool
}

// NewItem creates a shipment line with a fresh identifier.
//
// Validation rules:
//   - productID must be a valid UUID
//   - quantity must be strictly positive
//   - unitPrice must not be negative
//   - itemType must be Regular or Return
//   - returnReason, when given, must be valid and only accompanies Return items
//
// The total price is computed here and on every later mutation.
func NewItem(
	productID kernel.UUID,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	itemType ItemType,
	returnReason *ReturnReason,
	notes string,
) (*Item, error) {
	item := &Item{
		id:            kernel.NewUUID(),
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setItemType(itemType),
		item.setReturnReason(returnReason),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence. The stored total is
// discarded and recomputed from quantity and unit price so the derived-total
// invariant holds even against hand-edited rows.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	itemType ItemType,
	returnReason *ReturnReason,
	notes string,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	item, err := NewItem(productID, quantity, unitPrice, itemType, returnReason, notes)
	if err != nil {
		return nil, err
	}

	item.id = id
	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced catalog product.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the item quantity.
func (i *Item) Quantity() decimal.Decimal {
	return i.quantity
}

// UnitPrice returns the snapshotted unit price.
func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// TotalPrice returns the derived line total (quantity * unitPrice).
func (i *Item) TotalPrice() decimal.Decimal {
	return i.totalPrice
}

// Type returns the item's bucket tag.
func (i *Item) Type() ItemType {
	return i.itemType
}

// ReturnReason returns the return classification, nil for Regular items.
func (i *Item) ReturnReason() *ReturnReason {
	return i.returnReason
}

// Notes returns the free-text remarks for the line.
func (i *Item) Notes() string {
	return i.notes
}

// ChangeQuantity replaces the quantity and recomputes the line total.
func (i *Item) ChangeQuantity(quantity decimal.Decimal) error {
	return i.setQuantity(quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = productID
	return nil
}

func (i *Item) setItemType(itemType ItemType) error {
	if err := itemType.Validate(); err != nil {
		return err
	}
	i.itemType = itemType
	return nil
}

func (i *Item) setReturnReason(reason *ReturnReason) error {
	if reason == nil {
		return nil
	}
	if err := reason.Validate(); err != nil {
		return err
	}
	if i.itemType != Return {
		return errs.NewValueIsInvalidErrorWithCause(
			"returnReason", errors.New("return reason is only valid for RETURN items"))
	}
	r := *reason
	i.returnReason = &r
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%s is negative", unitPrice.String()))
	}
	i.unitPrice = unitPrice
	i.recomputeTotal()
	return nil
}

func (i *Item) setQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s is not greater than 0", quantity.String()))
	}
	i.quantity = quantity
	i.recomputeTotal()
	return nil
}

func (i *Item) recomputeTotal() {
	i.totalPrice = i.quantity.Mul(i.unitPrice)
}
