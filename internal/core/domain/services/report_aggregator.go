package services

import (
	"fmt"
	"sort"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Granularity selects the time-bucket size for chart series.
type Granularity int

const (
	// Daily buckets by calendar date.
	Daily Granularity = iota + 1

	// Weekly buckets by the Monday on or before the shipment date (ISO week start).
	Weekly

	// Monthly buckets by calendar year-month. This is the default.
	Monthly
)

// GranularityFromString parses a granularity from its wire representation.
// An empty string yields the Monthly default.
func GranularityFromString(s string) (Granularity, error) {
	switch s {
	case "DAILY":
		return Daily, nil
	case "WEEKLY":
		return Weekly, nil
	case "MONTHLY", "":
		return Monthly, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"chartGroupBy", fmt.Errorf("%q is not a valid granularity", s))
	}
}

// String returns the wire name of the granularity, implementing fmt.Stringer.
func (g Granularity) String() string {
	switch g {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	default:
		return "UNKNOWN"
	}
}

// Summary carries the aggregate totals over a shipment set. Items contribute
// by their bucket tag (Regular vs Return), never by shipment status.
type Summary struct {
	RegularTotal     decimal.Decimal
	RegularItemCount int
	ReturnTotal      decimal.Decimal
	ReturnItemCount  int
	NetTotal         decimal.Decimal
}

// ProductAggregate carries the per-product rollup of one item bucket.
type ProductAggregate struct {
	ProductID   kernel.UUID
	Quantity    decimal.Decimal
	TotalAmount decimal.Decimal
}

// ChartBucket is one time slice of a chart series with its own summary-style
// totals computed over only its member shipments.
type ChartBucket struct {
	Label        string
	RegularTotal decimal.Decimal
	ReturnTotal  decimal.Decimal
	NetTotal     decimal.Decimal
}

// ReportAggregator is a domain service computing financial/operational
// aggregates over a shipment set already narrowed by a shipment.Filter.
//
// Guarantees:
//   - An empty input set yields zero totals and empty series, never an error
//   - Summary.NetTotal == RegularTotal - ReturnTotal
//   - Chart buckets partition the input exactly: every shipment lands in one
//     bucket, and the per-bucket totals sum to the unbucketed totals
//   - Bucket labels sort lexicographically in chronological order
type ReportAggregator struct{}

// NewReportAggregator creates a new ReportAggregator instance.
func NewReportAggregator() ReportAggregator {
	return ReportAggregator{}
}

// Summarize computes the overall totals of a shipment set.
func (a ReportAggregator) Summarize(shipments []*shipment.Shipment) Summary {
	summary := Summary{
		RegularTotal: decimal.Zero,
		ReturnTotal:  decimal.Zero,
		NetTotal:     decimal.Zero,
	}

	for _, s := range shipments {
		for _, item := range s.Items() {
			switch item.Type() {
			case shipment.Regular:
				summary.RegularTotal = summary.RegularTotal.Add(item.TotalPrice())
				summary.RegularItemCount++
			case shipment.Return:
				summary.ReturnTotal = summary.ReturnTotal.Add(item.TotalPrice())
				summary.ReturnItemCount++
			}
		}
	}

	summary.NetTotal = summary.RegularTotal.Sub(summary.ReturnTotal)
	return summary
}

// ProductAggregates groups the items of one bucket tag by product, summing
// quantity and amount. The result is sorted descending by summed amount;
// ties keep an arbitrary stable order.
func (a ReportAggregator) ProductAggregates(
	shipments []*shipment.Shipment,
	itemType shipment.ItemType,
) []ProductAggregate {
	byProduct := make(map[kernel.UUID]*ProductAggregate)
	order := make([]kernel.UUID, 0)

	for _, s := range shipments {
		for _, item := range s.Items() {
			if item.Type() != itemType {
				continue
			}

			agg, ok := byProduct[item.ProductID()]
			if !ok {
				agg = &ProductAggregate{
					ProductID:   item.ProductID(),
					Quantity:    decimal.Zero,
					TotalAmount: decimal.Zero,
				}
				byProduct[item.ProductID()] = agg
				order = append(order, item.ProductID())
			}

			agg.Quantity = agg.Quantity.Add(item.Quantity())
			agg.TotalAmount = agg.TotalAmount.Add(item.TotalPrice())
		}
	}

	result := make([]ProductAggregate, 0, len(order))
	for _, id := range order {
		result = append(result, *byProduct[id])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAmount.GreaterThan(result[j].TotalAmount)
	})

	return result
}

// ChartSeries partitions a shipment set into time buckets of the given
// granularity and computes per-bucket totals. Buckets are returned sorted
// by label, which equals chronological order by construction.
func (a ReportAggregator) ChartSeries(
	shipments []*shipment.Shipment,
	granularity Granularity,
) []ChartBucket {
	grouped := make(map[string][]*shipment.Shipment)
	for _, s := range shipments {
		label := a.bucketLabel(s.Date(), granularity)
		grouped[label] = append(grouped[label], s)
	}

	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := make([]ChartBucket, 0, len(labels))
	for _, label := range labels {
		summary := a.Summarize(grouped[label])
		series = append(series, ChartBucket{
			Label:        label,
			RegularTotal: summary.RegularTotal,
			ReturnTotal:  summary.ReturnTotal,
			NetTotal:     summary.NetTotal,
		})
	}

	return series
}

// bucketLabel formats the bucket key of one shipment date. Labels are zero
// padded so lexicographic order equals chronological order.
func (a ReportAggregator) bucketLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case Daily:
		return date.Format("2006-01-02")
	case Weekly:
		monday := mondayOnOrBefore(date)
		year, week := monday.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return date.Format("2006-01")
	}
}

// mondayOnOrBefore returns the ISO week start for a date.
func mondayOnOrBefore(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
