// Package queries contains read-only operations over the shipment store.
// Listing and reporting share the shipment filter, so for identical
// parameters both observe exactly the same result set.
package queries

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// ShipmentResponse is the read model of one shipment with its items and
// derived totals.
type ShipmentResponse struct {
	ID             kernel.UUID
	Number         string
	ShopID         kernel.UUID
	DriverID       *kernel.UUID
	Date           time.Time
	Status         string
	Items          []ShipmentItemResponse
	Notes          string
	DocumentPath   string
	EmailSent      bool
	EmailSentAt    *time.Time
	WhatsAppSent   bool
	WhatsAppSentAt *time.Time
	RegularTotal   decimal.Decimal
	ReturnTotal    decimal.Decimal
	NetTotal       decimal.Decimal
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShipmentItemResponse is the read model of one shipment line.
type ShipmentItemResponse struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	Type         string
	ReturnReason *string
	Notes        string
}

// SummaryResponse carries the aggregate totals of a filtered shipment set.
type SummaryResponse struct {
	RegularTotal     decimal.Decimal
	RegularItemCount int
	ReturnTotal      decimal.Decimal
	ReturnItemCount  int
	NetTotal         decimal.Decimal
}

// NewShipmentResponse maps a shipment aggregate to its read model. Command
// results reuse this mapping so write and read responses stay identical.
func NewShipmentResponse(s *shipment.Shipment) ShipmentResponse {
	return shipmentToResponse(s)
}

func shipmentToResponse(s *shipment.Shipment) ShipmentResponse {
	items := make([]ShipmentItemResponse, 0, len(s.Items()))
	for _, item := range s.Items() {
		items = append(items, itemToResponse(item))
	}

	return ShipmentResponse{
		ID:             s.ID(),
		Number:         s.Number(),
		ShopID:         s.ShopID(),
		DriverID:       s.DriverID(),
		Date:           s.Date(),
		Status:         s.Status().String(),
		Items:          items,
		Notes:          s.Notes(),
		DocumentPath:   s.DocumentPath(),
		EmailSent:      s.EmailSent(),
		EmailSentAt:    s.EmailSentAt(),
		WhatsAppSent:   s.WhatsAppSent(),
		WhatsAppSentAt: s.WhatsAppSentAt(),
		RegularTotal:   s.RegularTotal(),
		ReturnTotal:    s.ReturnTotal(),
		NetTotal:       s.NetTotal(),
		Version:        s.Version(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func itemToResponse(item *shipment.Item) ShipmentItemResponse {
	var reason *string
	if item.ReturnReason() != nil {
		r := item.ReturnReason().String()
		reason = &r
	}

	return ShipmentItemResponse{
		ID:           item.ID(),
		ProductID:    item.ProductID(),
		Quantity:     item.Quantity(),
		UnitPrice:    item.UnitPrice(),
		TotalPrice:   item.TotalPrice(),
		Type:         item.Type().String(),
		ReturnReason: reason,
		Notes:        item.Notes(),
	}
}

func summaryToResponse(summary services.Summary) SummaryResponse {
	return SummaryResponse{
		RegularTotal:     summary.RegularTotal,
		RegularItemCount: summary.RegularItemCount,
		ReturnTotal:      summary.ReturnTotal,
		ReturnItemCount:  summary.ReturnItemCount,
		NetTotal:         summary.NetTotal,
	}
}
