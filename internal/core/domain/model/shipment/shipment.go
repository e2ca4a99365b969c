package shipment

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through the NewShipment or RestoreShipment factory methods.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is the aggregate root for one delivery event to a shop. It owns
// its items (strict composition: items live and die with the shipment) and
// drives the status state machine.
//
// Shipment follows these invariants:
//   - The shipment number is immutable once assigned and unique across all shipments
//   - Every owned item keeps totalPrice == quantity * unitPrice
//   - Net value = sum of Regular item totals - sum of Return item totals
//   - Item type, not shipment status, decides the sold/returned bucket of a line
//   - Validated transitions follow the Status transition table; ForceSetStatus
//     is the deliberate permissive escape hatch for the administrative endpoint
//
// The struct uses private fields and maintains its invariants through
// validated methods.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// number is the human-readable identifier, generated at creation
	number string

	// shopID references the receiving shop
	shopID kernel.UUID

	// driverID references the assigned driver (nil if unassigned)
	driverID *kernel.UUID

	// date is the planned delivery date
	date time.Time

	// status is the current state in the shipment lifecycle
	status Status

	// items is the owned, ordered line collection
	items []*Item

	// notes carries free-text remarks
	notes string

	// documentPath references the generated delivery document ("" when absent)
	documentPath string

	// emailSent / whatsappSent record best-effort notification outcomes;
	// once true they are never reset
	emailSent      bool
	emailSentAt    *time.Time
	whatsappSent   bool
	whatsappSentAt *time.Time

	// version is the optimistic concurrency token, bumped on every update
	version int

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the shipment was created via a factory method
	isConstructed bool
}

// NewShipment creates a shipment in Draft status with its initial item set.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - number: generated shipment number (must match the SHP-<date>-<sequence> format)
//   - shopID: the receiving shop (required)
//   - driverID: the assigned driver (optional)
//   - date: planned delivery date (required)
//   - items: initial lines; all must be Regular, returns are only appended later
//   - notes: free-text remarks
//
// Returns a validation error if any parameter is invalid.
func NewShipment(
	id kernel.UUID,
	number string,
	shopID kernel.UUID,
	driverID *kernel.UUID,
	date time.Time,
	items []*Item,
	notes string,
) (*Shipment, error) {
	now := time.Now().UTC()
	s := &Shipment{
		status:        Draft,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setNumber(number),
		s.setShopID(shopID),
		s.setDriverID(driverID),
		s.setDate(date),
		s.setInitialItems(items),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence with its full state.
// Used by repositories; validates identifiers and status but accepts any
// persisted field combination that individual validators allow.
func RestoreShipment(
	id kernel.UUID,
	number string,
	shopID kernel.UUID,
	driverID *kernel.UUID,
	date time.Time,
	status Status,
	items []*Item,
	notes string,
	documentPath string,
	emailSent bool,
	emailSentAt *time.Time,
	whatsappSent bool,
	whatsappSentAt *time.Time,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Shipment, error) {
	if err := errors.Join(
		id.Validate(),
		ValidateNumber(number),
		shopID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Shipment{
		id:             id,
		number:         number,
		shopID:         shopID,
		driverID:       driverID,
		date:           date,
		status:         status,
		items:          items,
		notes:          notes,
		documentPath:   documentPath,
		emailSent:      emailSent,
		emailSentAt:    emailSentAt,
		whatsappSent:   whatsappSent,
		whatsappSentAt: whatsappSentAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed through a factory method.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Number returns the immutable human-readable shipment number.
func (s *Shipment) Number() string {
	return s.number
}

// ShopID returns the receiving shop's identifier.
func (s *Shipment) ShopID() kernel.UUID {
	return s.shopID
}

// DriverID returns the assigned driver's identifier, nil if unassigned.
func (s *Shipment) DriverID() *kernel.UUID {
	return s.driverID
}

// Date returns the planned delivery date.
func (s *Shipment) Date() time.Time {
	return s.date
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Items returns the owned line collection in attach order.
func (s *Shipment) Items() []*Item {
	return s.items
}

// ItemsOfType returns the lines carrying the given bucket tag, in attach order.
func (s *Shipment) ItemsOfType(itemType ItemType) []*Item {
	var result []*Item
	for _, item := range s.items {
		if item.Type() == itemType {
			result = append(result, item)
		}
	}
	return result
}

// Notes returns the free-text remarks.
func (s *Shipment) Notes() string {
	return s.notes
}

// DocumentPath returns the stored delivery-document reference, "" when absent.
func (s *Shipment) DocumentPath() string {
	return s.documentPath
}

// HasDocument reports whether a delivery document has been generated.
// Several operations (document download, manual text notification,
// regeneration on item changes) are gated on this, independent of status.
func (s *Shipment) HasDocument() bool {
	return s.documentPath != ""
}

// EmailSent reports whether the document email was delivered at least once.
func (s *Shipment) EmailSent() bool {
	return s.emailSent
}

// EmailSentAt returns the time of the last successful email, nil if never sent.
func (s *Shipment) EmailSentAt() *time.Time {
	return s.emailSentAt
}

// WhatsAppSent reports whether the text message was delivered at least once.
func (s *Shipment) WhatsAppSent() bool {
	return s.whatsappSent
}

// WhatsAppSentAt returns the time of the last successful text message, nil if never sent.
func (s *Shipment) WhatsAppSentAt() *time.Time {
	return s.whatsappSentAt
}

// Version returns the optimistic concurrency token.
func (s *Shipment) Version() int {
	return s.version
}

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// RegularTotal returns the summed line totals of Regular items.
func (s *Shipment) RegularTotal() decimal.Decimal {
	return s.totalOfType(Regular)
}

// ReturnTotal returns the summed line totals of Return items.
func (s *Shipment) ReturnTotal() decimal.Decimal {
	return s.totalOfType(Return)
}

// NetTotal returns the shipment's net monetary value:
// Regular item totals minus Return item totals.
func (s *Shipment) NetTotal() decimal.Decimal {
	return s.RegularTotal().Sub(s.ReturnTotal())
}

// Confirm transitions the shipment from Draft to Confirmed.
// Confirming an already-Confirmed shipment is a no-op: the status is kept
// and no error is returned, so the caller may still retry the side effects
// (document generation, notifications) idempotently.
func (s *Shipment) Confirm() error {
	if s.status == Confirmed {
		return nil
	}

	newStatus, err := s.status.TransitionTo(Confirmed)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.touch()
	return nil
}

// ForceSetStatus applies any valid status without consulting the transition
// table. This mirrors the administrative "force-set" endpoint and is kept
// deliberately permissive; use Confirm for the validated path.
func (s *Shipment) ForceSetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	s.status = status
	s.touch()
	return nil
}

// AddReturnItems appends Return-typed lines to the shipment. Returns may be
// appended at any point of the lifecycle, including after confirmation.
func (s *Shipment) AddReturnItems(items []*Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Type() != Return {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", errors.New("only RETURN items may be appended as returns"))
		}
	}

	s.items = append(s.items, items...)
	s.touch()
	return nil
}

// ReplaceItems swaps out all lines of the given type wholesale: existing
// lines of that type are removed and the supplied ones appended. Lines of
// the other type are untouched. Every supplied line must carry the given type.
func (s *Shipment) ReplaceItems(itemType ItemType, items []*Item) error {
	if err := itemType.Validate(); err != nil {
		return err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Type() != itemType {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", errors.New("item type does not match the replaced collection"))
		}
	}

	kept := make([]*Item, 0, len(s.items)+len(items))
	for _, item := range s.items {
		if item.Type() != itemType {
			kept = append(kept, item)
		}
	}

	s.items = append(kept, items...)
	s.touch()
	return nil
}

// ChangeShop re-targets the shipment to another shop.
func (s *Shipment) ChangeShop(shopID kernel.UUID) error {
	if err := s.setShopID(shopID); err != nil {
		return err
	}
	s.touch()
	return nil
}

// ChangeDriver assigns, reassigns or clears the driver.
func (s *Shipment) ChangeDriver(driverID *kernel.UUID) error {
	if err := s.setDriverID(driverID); err != nil {
		return err
	}
	s.touch()
	return nil
}

// ChangeDate moves the planned delivery date.
func (s *Shipment) ChangeDate(date time.Time) error {
	if err := s.setDate(date); err != nil {
		return err
	}
	s.touch()
	return nil
}

// ChangeNotes replaces the free-text remarks.
func (s *Shipment) ChangeNotes(notes string) {
	s.notes = notes
	s.touch()
}

// AttachDocument stores the reference of a freshly generated delivery document.
// Documents are always rebuilt whole, so the previous reference is simply replaced.
func (s *Shipment) AttachDocument(path string) error {
	if path == "" {
		return errs.NewValueIsRequiredError("documentPath")
	}
	s.documentPath = path
	s.touch()
	return nil
}

// MarkEmailSent records a successful document-email delivery.
// The flag only ever moves from false to true.
func (s *Shipment) MarkEmailSent(at time.Time) {
	s.emailSent = true
	s.emailSentAt = &at
	s.touch()
}

// MarkWhatsAppSent records a successful text-message delivery.
// The flag only ever moves from false to true.
func (s *Shipment) MarkWhatsAppSent(at time.Time) {
	s.whatsappSent = true
	s.whatsappSentAt = &at
	s.touch()
}

// BumpVersion advances the optimistic concurrency token. Called by the
// repository after a successful version-guarded write so the in-memory
// aggregate matches the persisted row.
func (s *Shipment) BumpVersion() {
	s.version++
}

func (s *Shipment) totalOfType(itemType ItemType) decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		if item.Type() == itemType {
			total = total.Add(item.TotalPrice())
		}
	}
	return total
}

func (s *Shipment) touch() {
	s.updatedAt = time.Now().UTC()
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setNumber(number string) error {
	if err := ValidateNumber(number); err != nil {
		return err
	}
	s.number = number
	return nil
}

func (s *Shipment) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shopId", err)
	}
	s.shopID = shopID
	return nil
}

func (s *Shipment) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		s.driverID = nil
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	id := *driverID
	s.driverID = &id
	return nil
}

func (s *Shipment) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("shipmentDate")
	}
	s.date = date
	return nil
}

func (s *Shipment) setInitialItems(items []*Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.Type() != Regular {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", errors.New("a shipment starts with REGULAR items only"))
		}
	}
	s.items = items
	return nil
}
