// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. Implements the repository pattern for the
// shipment aggregate, handling the conversion between domain entities and
// database representations including the owned item collection.
package shipmentrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The shipment number carries a unique index; the version column
// is the optimistic concurrency token checked on every update.
type ShipmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number         string     `gorm:"uniqueIndex;size:32"`
	ShopID         uuid.UUID  `gorm:"type:uuid;index"`
	DriverID       *uuid.UUID `gorm:"type:uuid;index"`
	Date           time.Time  `gorm:"index"`
	Status         int        `gorm:"index"`
	Notes          string
	DocumentPath   string
	EmailSent      bool
	EmailSentAt    *time.Time
	WhatsappSent   bool
	WhatsappSentAt *time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []ItemDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ItemDTO represents one persisted shipment line. Items are owned by their
// shipment row and are deleted with it.
type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;index"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3)"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(14,2)"`
	ItemType     int             `gorm:"index"`
	ReturnReason *int
	Notes        string
}

// TableName specifies the database table name for shipment line entities.
func (ItemDTO) TableName() string {
	return "shipment_items"
}

// fromDomain converts a shipment domain aggregate to its database
// representation, items included.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(aggregate.ID().Bytes(), item))
	}

	return ShipmentDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		ShopID:         aggregate.ShopID().Bytes(),
		DriverID:       driverID,
		Date:           aggregate.Date(),
		Status:         int(aggregate.Status()),
		Notes:          aggregate.Notes(),
		DocumentPath:   aggregate.DocumentPath(),
		EmailSent:      aggregate.EmailSent(),
		EmailSentAt:    aggregate.EmailSentAt(),
		WhatsappSent:   aggregate.WhatsAppSent(),
		WhatsappSentAt: aggregate.WhatsAppSentAt(),
		Version:        aggregate.Version(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Items:          items,
	}
}

func itemFromDomain(shipmentID uuid.UUID, item *shipment.Item) ItemDTO {
	var reason *int
	if item.ReturnReason() != nil {
		r := int(*item.ReturnReason())
		reason = &r
	}

	return ItemDTO{
		ID:           item.ID().Bytes(),
		ShipmentID:   shipmentID,
		ProductID:    item.ProductID().Bytes(),
		Quantity:     item.Quantity(),
		UnitPrice:    item.UnitPrice(),
		TotalPrice:   item.TotalPrice(),
		ItemType:     int(item.Type()),
		ReturnReason: reason,
		Notes:        item.Notes(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate,
// reconstructing the full state including items through RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]*shipment.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return shipment.RestoreShipment(
		id,
		dto.Number,
		shopID,
		driverID,
		dto.Date,
		shipment.Status(dto.Status),
		items,
		dto.Notes,
		dto.DocumentPath,
		dto.EmailSent,
		dto.EmailSentAt,
		dto.WhatsappSent,
		dto.WhatsappSentAt,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemToDomain(dto ItemDTO) (*shipment.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var reason *shipment.ReturnReason
	if dto.ReturnReason != nil {
		r := shipment.ReturnReason(*dto.ReturnReason)
		reason = &r
	}

	return shipment.RestoreItem(
		id,
		productID,
		dto.Quantity,
		dto.UnitPrice,
		shipment.ItemType(dto.ItemType),
		reason,
		dto.Notes,
	)
}
