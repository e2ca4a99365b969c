package http

import (
	"time"

	"warehouse/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ErrorResponse is the uniform error body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type itemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

type returnItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    *string         `json:"reason,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

type createShipmentRequest struct {
	ShopID   string        `json:"shopId"`
	DriverID *string       `json:"driverId,omitempty"`
	Date     string        `json:"date"`
	Notes    string        `json:"notes,omitempty"`
	Items    []itemRequest `json:"items"`
}

// updateShipmentRequest is a partial patch: absent fields keep their current
// values. Supplying an item list replaces the shipment's whole set of lines
// of that type. An absent driverId keeps the current driver; there is no way
// to clear an assigned driver through this endpoint.
type updateShipmentRequest struct {
	ShopID      *string             `json:"shopId,omitempty"`
	DriverID    *string             `json:"driverId,omitempty"`
	Date        *string             `json:"date,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Items       []itemRequest       `json:"items,omitempty"`
	ReturnItems []returnItemRequest `json:"returnItems,omitempty"`
}

type addReturnItemsRequest struct {
	Items []returnItemRequest `json:"items"`
}

type itemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Type         string          `json:"type"`
	ReturnReason *string         `json:"returnReason,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

type shipmentResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	ShopID         string          `json:"shopId"`
	DriverID       *string         `json:"driverId,omitempty"`
	Date           string          `json:"date"`
	Status         string          `json:"status"`
	Items          []itemResponse  `json:"items"`
	Notes          string          `json:"notes,omitempty"`
	HasDocument    bool            `json:"hasDocument"`
	EmailSent      bool            `json:"emailSent"`
	EmailSentAt    *time.Time      `json:"emailSentAt,omitempty"`
	WhatsAppSent   bool            `json:"whatsappSent"`
	WhatsAppSentAt *time.Time      `json:"whatsappSentAt,omitempty"`
	RegularTotal   decimal.Decimal `json:"regularTotal"`
	ReturnTotal    decimal.Decimal `json:"returnTotal"`
	NetTotal       decimal.Decimal `json:"netTotal"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type notificationsResponse struct {
	EmailSent     bool   `json:"emailSent"`
	EmailError    string `json:"emailError,omitempty"`
	WhatsAppSent  bool   `json:"whatsappSent"`
	WhatsAppError string `json:"whatsappError,omitempty"`
}

type confirmShipmentResponse struct {
	Shipment      shipmentResponse      `json:"shipment"`
	Notifications notificationsResponse `json:"notifications"`
}

type summaryResponse struct {
	RegularTotal     decimal.Decimal `json:"regularTotal"`
	RegularItemCount int             `json:"regularItemCount"`
	ReturnTotal      decimal.Decimal `json:"returnTotal"`
	ReturnItemCount  int             `json:"returnItemCount"`
	NetTotal         decimal.Decimal `json:"netTotal"`
}

type listShipmentsResponse struct {
	Shipments     []shipmentResponse `json:"shipments"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
	Summary       summaryResponse    `json:"summary"`
}

type productReportRow struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	ProductCode string          `json:"productCode,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type chartBucketResponse struct {
	Label        string          `json:"label"`
	RegularTotal decimal.Decimal `json:"regularTotal"`
	ReturnTotal  decimal.Decimal `json:"returnTotal"`
	NetTotal     decimal.Decimal `json:"netTotal"`
}

type dashboardReportResponse struct {
	Summary          summaryResponse       `json:"summary"`
	ShipmentCount    int                   `json:"shipmentCount"`
	ProductsSold     []productReportRow    `json:"productsSold"`
	ProductsReturned []productReportRow    `json:"productsReturned"`
	Chart            []chartBucketResponse `json:"chart"`
	Granularity      string                `json:"granularity"`
}

func toShipmentResponse(src queries.ShipmentResponse) shipmentResponse {
	items := make([]itemResponse, 0, len(src.Items))
	for _, item := range src.Items {
		items = append(items, itemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			Type:         item.Type,
			ReturnReason: item.ReturnReason,
			Notes:        item.Notes,
		})
	}

	var driverID *string
	if src.DriverID != nil {
		id := src.DriverID.String()
		driverID = &id
	}

	return shipmentResponse{
		ID:             src.ID.String(),
		Number:         src.Number,
		ShopID:         src.ShopID.String(),
		DriverID:       driverID,
		Date:           src.Date.Format(dateLayout),
		Status:         src.Status,
		Items:          items,
		Notes:          src.Notes,
		HasDocument:    src.DocumentPath != "",
		EmailSent:      src.EmailSent,
		EmailSentAt:    src.EmailSentAt,
		WhatsAppSent:   src.WhatsAppSent,
		WhatsAppSentAt: src.WhatsAppSentAt,
		RegularTotal:   src.RegularTotal,
		ReturnTotal:    src.ReturnTotal,
		NetTotal:       src.NetTotal,
		Version:        src.Version,
		CreatedAt:      src.CreatedAt,
		UpdatedAt:      src.UpdatedAt,
	}
}

func toSummaryResponse(src queries.SummaryResponse) summaryResponse {
	return summaryResponse{
		RegularTotal:     src.RegularTotal,
		RegularItemCount: src.RegularItemCount,
		ReturnTotal:      src.ReturnTotal,
		ReturnItemCount:  src.ReturnItemCount,
		NetTotal:         src.NetTotal,
	}
}
