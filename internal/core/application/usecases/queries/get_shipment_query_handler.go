package queries

import (
	"context"

	"warehouse/internal/core/ports"
)

// GetShipmentQueryHandler retrieves a single shipment read model.
type GetShipmentQueryHandler struct {
	shipments ports.ShipmentRepository
}

// NewGetShipmentQueryHandler creates a handler for single-shipment queries.
func NewGetShipmentQueryHandler(shipments ports.ShipmentRepository) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{shipments: shipments}
}

// Handle executes the query.
// Returns an ObjectNotFoundError when the shipment does not exist.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentResponse{}, err
	}

	aggregate, err := h.shipments.Get(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	return shipmentToResponse(aggregate), nil
}
