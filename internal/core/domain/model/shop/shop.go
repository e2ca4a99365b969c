// Package shop provides the shop directory read model: the retail points a
// shipment delivers to, with the contact fields used by documents and
// notifications. Directory maintenance lives outside this service.
package shop

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrShopIsNotConstructed is returned when a Shop instance was not created
// through the NewShop factory method.
var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

// Shop is a retail destination for shipments.
type Shop struct {
	id             kernel.UUID
	name           string
	address        string
	city           string
	email          string
	whatsappNumber string

	isConstructed bool
}

// NewShop creates a directory entry with validation.
// Email and WhatsApp number are optional; the notification channels skip
// what is not configured.
func NewShop(
	id kernel.UUID,
	name string,
	address string,
	city string,
	email string,
	whatsappNumber string,
) (*Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Shop{
		id:             id,
		name:           name,
		address:        address,
		city:           city,
		email:          email,
		whatsappNumber: whatsappNumber,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Shop instance was properly constructed through NewShop.
func (s *Shop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShopIsNotConstructed
	}
	return nil
}

// ID returns the shop's unique identifier.
func (s *Shop) ID() kernel.UUID {
	return s.id
}

// Name returns the shop name.
func (s *Shop) Name() string {
	return s.name
}

// Address returns the street address.
func (s *Shop) Address() string {
	return s.address
}

// City returns the city.
func (s *Shop) City() string {
	return s.city
}

// Email returns the notification email address, "" when not configured.
func (s *Shop) Email() string {
	return s.email
}

// WhatsAppNumber returns the text-message number, "" when not configured.
func (s *Shop) WhatsAppNumber() string {
	return s.whatsappNumber
}
