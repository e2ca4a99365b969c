package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

var (
	ErrListShipmentsQueryIsNotConstructed = errors.New(
		"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
	)
)

// ListShipmentsQuery retrieves one page of the filtered shipment set, plus
// the aggregate totals of the WHOLE filtered set. The totals cover every
// matching shipment, not just the returned page.
type ListShipmentsQuery struct { //nolint:recvcheck //using for validation
	filter shipment.Filter
	page   int
	size   int

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery creates a paginated listing query over the given
// filter. Page is zero-based; a non-positive size falls back to the default.
func NewListShipmentsQuery(filter shipment.Filter, page, size int) (ListShipmentsQuery, error) {
	if page < 0 {
		return ListShipmentsQuery{}, errs.NewValueIsInvalidError("page")
	}
	if size > maxPageSize {
		return ListShipmentsQuery{}, errs.NewValueIsOutOfRangeError("size", size, 1, maxPageSize)
	}
	if size <= 0 {
		size = defaultPageSize
	}

	return ListShipmentsQuery{
		filter: filter,
		page:   page,
		size:   size,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewListShipmentsFilter builds the shared shipment filter from raw optional
// parameters, normalizing the date range to whole days.
func NewListShipmentsFilter(
	dateFrom, dateTo *time.Time,
	shopID, driverID *kernel.UUID,
	statuses []shipment.Status,
) shipment.Filter {
	filter := shipment.NewFilter().WithDateRange(dateFrom, dateTo)
	if shopID != nil {
		filter = filter.WithShop(*shopID)
	}
	if driverID != nil {
		filter = filter.WithDriver(*driverID)
	}
	if len(statuses) > 0 {
		filter = filter.WithStatuses(statuses...)
	}
	return filter
}

// Validate ensures the query was created through the constructor.
func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

// Filter returns the shipment filter.
func (q ListShipmentsQuery) Filter() shipment.Filter {
	return q.filter
}

// Page returns the zero-based page index.
func (q ListShipmentsQuery) Page() int {
	return q.page
}

// Size returns the page size.
func (q ListShipmentsQuery) Size() int {
	return q.size
}

// ListShipmentsQueryResponse is one page of shipments together with
// pagination metadata and whole-set totals.
type ListShipmentsQueryResponse struct {
	Shipments     []ShipmentResponse
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
	Summary       SummaryResponse
}
