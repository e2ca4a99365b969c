package queries

import (
	"context"

	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// ListShipmentsQueryHandler serves the paginated shipment listing.
// The page and the totals come from the same filtered set: the page through
// FindPageByFilter, the totals by aggregating the whole set in memory, so
// the listing's summary always matches what the report for the same filter
// would show.
type ListShipmentsQueryHandler struct {
	shipments  ports.ShipmentRepository
	aggregator services.ReportAggregator
}

// NewListShipmentsQueryHandler creates a handler for shipment listing queries.
func NewListShipmentsQueryHandler(
	shipments ports.ShipmentRepository,
	aggregator services.ReportAggregator,
) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{
		shipments:  shipments,
		aggregator: aggregator,
	}
}

// Handle executes the listing query.
func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) (ListShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	page, err := h.shipments.FindPageByFilter(ctx, query.Filter(), query.Page(), query.Size())
	if err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	all, err := h.shipments.FindByFilter(ctx, query.Filter())
	if err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	shipments := make([]ShipmentResponse, 0, len(page.Shipments))
	for _, s := range page.Shipments {
		shipments = append(shipments, shipmentToResponse(s))
	}

	totalPages := int(page.TotalElements) / query.Size()
	if int(page.TotalElements)%query.Size() != 0 {
		totalPages++
	}

	return ListShipmentsQueryResponse{
		Shipments:     shipments,
		Page:          query.Page(),
		Size:          query.Size(),
		TotalElements: page.TotalElements,
		TotalPages:    totalPages,
		Summary:       summaryToResponse(h.aggregator.Summarize(all)),
	}, nil
}
