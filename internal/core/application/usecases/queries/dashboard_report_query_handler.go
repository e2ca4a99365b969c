package queries

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// DashboardReportQueryHandler serves the dashboard report.
// Loads the whole filtered set once and feeds it to the report aggregator,
// so the summary, the product rollups and the chart are all computed over
// exactly the same shipments.
type DashboardReportQueryHandler struct {
	shipments  ports.ShipmentRepository
	catalog    ports.ProductCatalog
	aggregator services.ReportAggregator
}

// NewDashboardReportQueryHandler creates a handler for dashboard report queries.
func NewDashboardReportQueryHandler(
	shipments ports.ShipmentRepository,
	catalog ports.ProductCatalog,
	aggregator services.ReportAggregator,
) DashboardReportQueryHandler {
	return DashboardReportQueryHandler{
		shipments:  shipments,
		catalog:    catalog,
		aggregator: aggregator,
	}
}

// Handle executes the report query.
func (h DashboardReportQueryHandler) Handle(
	ctx context.Context,
	query DashboardReportQuery,
) (DashboardReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DashboardReportQueryResponse{}, err
	}

	all, err := h.shipments.FindByFilter(ctx, query.Filter())
	if err != nil {
		return DashboardReportQueryResponse{}, err
	}

	sold, err := h.enrich(ctx, h.aggregator.ProductAggregates(all, shipment.Regular))
	if err != nil {
		return DashboardReportQueryResponse{}, err
	}

	returned, err := h.enrich(ctx, h.aggregator.ProductAggregates(all, shipment.Return))
	if err != nil {
		return DashboardReportQueryResponse{}, err
	}

	buckets := h.aggregator.ChartSeries(all, query.Granularity())
	chart := make([]ChartBucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		chart = append(chart, ChartBucketResponse{
			Label:        bucket.Label,
			RegularTotal: bucket.RegularTotal,
			ReturnTotal:  bucket.ReturnTotal,
			NetTotal:     bucket.NetTotal,
		})
	}

	return DashboardReportQueryResponse{
		Summary:          summaryToResponse(h.aggregator.Summarize(all)),
		ShipmentCount:    len(all),
		ProductsSold:     sold,
		ProductsReturned: returned,
		Chart:            chart,
		Granularity:      query.Granularity().String(),
	}, nil
}

// enrich resolves product names and codes for the rollup rows. A product
// deleted from the catalog after shipping keeps its row with blank name and
// code rather than failing the whole report.
func (h DashboardReportQueryHandler) enrich(
	ctx context.Context,
	aggregates []services.ProductAggregate,
) ([]ProductReportRow, error) {
	rows := make([]ProductReportRow, 0, len(aggregates))
	for _, agg := range aggregates {
		row := ProductReportRow{
			ProductID:   agg.ProductID,
			Quantity:    agg.Quantity,
			TotalAmount: agg.TotalAmount,
		}

		prod, err := h.catalog.Get(ctx, agg.ProductID)
		switch {
		case err == nil:
			row.ProductName = prod.Name()
			row.ProductCode = prod.Code()
		case errors.Is(err, errs.ErrObjectNotFound):
			// keep the row unenriched
		default:
			return nil, err
		}

		rows = append(rows, row)
	}
	return rows, nil
}
