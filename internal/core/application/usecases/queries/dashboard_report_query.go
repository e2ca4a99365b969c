package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrDashboardReportQueryIsNotConstructed = errors.New(
		"DashboardReportQuery must be created via NewDashboardReportQuery constructor",
	)
)

// DashboardReportQuery computes the filtered dashboard report: overall
// totals, per-product sold/returned rollups and the time-bucketed chart
// series at the requested granularity.
type DashboardReportQuery struct { //nolint:recvcheck //using for validation
	filter      shipment.Filter
	granularity services.Granularity

	guard guard.ConstructorGuard
}

// NewDashboardReportQuery creates a report query over the given filter.
func NewDashboardReportQuery(
	filter shipment.Filter,
	granularity services.Granularity,
) (DashboardReportQuery, error) {
	return DashboardReportQuery{
		filter:      filter,
		granularity: granularity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q DashboardReportQuery) Validate() error {
	return q.guard.Validate(ErrDashboardReportQueryIsNotConstructed)
}

// Filter returns the shipment filter.
func (q DashboardReportQuery) Filter() shipment.Filter {
	return q.filter
}

// Granularity returns the chart bucketing granularity.
func (q DashboardReportQuery) Granularity() services.Granularity {
	return q.granularity
}

// ProductReportRow is one per-product rollup line, enriched with the catalog
// name and code when the product still exists.
type ProductReportRow struct {
	ProductID   kernel.UUID
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	TotalAmount decimal.Decimal
}

// ChartBucketResponse is one time slice of the report chart.
type ChartBucketResponse struct {
	Label        string
	RegularTotal decimal.Decimal
	ReturnTotal  decimal.Decimal
	NetTotal     decimal.Decimal
}

// DashboardReportQueryResponse is the full dashboard report for one filter.
type DashboardReportQueryResponse struct {
	Summary          SummaryResponse
	ShipmentCount    int
	ProductsSold     []ProductReportRow
	ProductsReturned []ProductReportRow
	Chart            []ChartBucketResponse
	Granularity      string
}
