// Package driver provides the driver directory read model: the people who
// carry shipments, with the contact fields copied into documents and
// notification messages. Directory maintenance lives outside this service.
package driver

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrDriverIsNotConstructed is returned when a Driver instance was not created
// through the NewDriver factory method.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is a delivery driver assignable to shipments.
type Driver struct {
	id             kernel.UUID
	fullName       string
	email          string
	whatsappNumber string

	isConstructed bool
}

// NewDriver creates a directory entry with validation.
// Contact fields are optional; notification channels copy drivers in only
// when the corresponding field is configured.
func NewDriver(
	id kernel.UUID,
	fullName string,
	email string,
	whatsappNumber string,
) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, errs.NewValueIsRequiredError("fullName")
	}

	return &Driver{
		id:             id,
		fullName:       fullName,
		email:          email,
		whatsappNumber: whatsappNumber,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Driver instance was properly constructed through NewDriver.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// FullName returns the driver's display name.
func (d *Driver) FullName() string {
	return d.fullName
}

// Email returns the CC address for document emails, "" when not configured.
func (d *Driver) Email() string {
	return d.email
}

// WhatsAppNumber returns the text-message number, "" when not configured.
func (d *Driver) WhatsAppNumber() string {
	return d.whatsappNumber
}
