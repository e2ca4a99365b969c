package shipment

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// Filter is a composable, conjunctive predicate over shipments. Every
// dimension is optional; an unset dimension imposes no constraint, and all
// set dimensions combine with logical AND.
//
// The same Filter value drives both the listing and reporting paths (the
// postgres adapter translates it to one WHERE clause), so a report always
// reflects exactly the result set a list view would show for identical
// parameters. Matches provides the equivalent in-memory predicate.
//
// The zero value matches every shipment. The With* methods return modified
// copies, so a Filter can be built up fluently:
//
//	f := shipment.NewFilter().
//	    WithDateRange(&from, &to).
//	    WithShop(shopID).
//	    WithStatuses(shipment.Confirmed, shipment.Delivered)
type Filter struct {
	dateFrom *time.Time
	dateTo   *time.Time
	shopID   *kernel.UUID
	driverID *kernel.UUID
	statuses []Status
}

// NewFilter creates an unconstrained filter.
func NewFilter() Filter {
	return Filter{}
}

// WithDateRange constrains the shipment date to [from, to], both ends
// inclusive and independently optional. Dates are compared at calendar-day
// granularity.
func (f Filter) WithDateRange(from, to *time.Time) Filter {
	if from != nil {
		d := truncateToDay(*from)
		f.dateFrom = &d
	}
	if to != nil {
		d := truncateToDay(*to)
		f.dateTo = &d
	}
	return f
}

// WithShop constrains to shipments of one shop.
func (f Filter) WithShop(shopID kernel.UUID) Filter {
	f.shopID = &shopID
	return f
}

// WithDriver constrains to shipments of one driver.
func (f Filter) WithDriver(driverID kernel.UUID) Filter {
	f.driverID = &driverID
	return f
}

// WithStatuses constrains to shipments whose status is in the given set.
// An empty set imposes no constraint.
func (f Filter) WithStatuses(statuses ...Status) Filter {
	f.statuses = statuses
	return f
}

// DateFrom returns the inclusive lower date bound, nil when unset.
func (f Filter) DateFrom() *time.Time {
	return f.dateFrom
}

// DateTo returns the inclusive upper date bound, nil when unset.
func (f Filter) DateTo() *time.Time {
	return f.dateTo
}

// ShopID returns the shop constraint, nil when unset.
func (f Filter) ShopID() *kernel.UUID {
	return f.shopID
}

// DriverID returns the driver constraint, nil when unset.
func (f Filter) DriverID() *kernel.UUID {
	return f.driverID
}

// Statuses returns the status-set constraint, empty when unset.
func (f Filter) Statuses() []Status {
	return f.statuses
}

// Matches evaluates the conjunctive predicate against one shipment.
func (f Filter) Matches(s *Shipment) bool {
	date := truncateToDay(s.Date())

	if f.dateFrom != nil && date.Before(*f.dateFrom) {
		return false
	}
	if f.dateTo != nil && date.After(*f.dateTo) {
		return false
	}
	if f.shopID != nil && !s.ShopID().IsEqual(*f.shopID) {
		return false
	}
	if f.driverID != nil {
		if s.DriverID() == nil || !s.DriverID().IsEqual(*f.driverID) {
			return false
		}
	}
	if len(f.statuses) > 0 {
		found := false
		for _, status := range f.statuses {
			if s.Status() == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
