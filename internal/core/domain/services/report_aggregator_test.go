package services_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItem(t *testing.T, productID kernel.UUID, quantity, unitPrice float64, itemType shipment.ItemType) *shipment.Item {
	t.Helper()
	var reason *shipment.ReturnReason
	if itemType == shipment.Return {
		r := shipment.Damaged
		reason = &r
	}
	item, err := shipment.NewItem(
		productID,
		decimal.NewFromFloat(quantity),
		decimal.NewFromFloat(unitPrice),
		itemType,
		reason,
		"",
	)
	require.NoError(t, err)
	return item
}

func makeShipment(t *testing.T, date time.Time, regulars, returns []*shipment.Item) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		shipment.GenerateNumber(date, 1),
		kernel.NewUUID(),
		nil,
		date,
		regulars,
		"",
	)
	require.NoError(t, err)
	if len(returns) > 0 {
		require.NoError(t, s.AddReturnItems(returns))
	}
	return s
}

func TestReportAggregator_Summarize(t *testing.T) {
	aggregator := services.NewReportAggregator()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("should net return totals against regular totals", func(t *testing.T) {
		// 100 + 50 delivered, 20 returned
		shipments := []*shipment.Shipment{
			makeShipment(t, date,
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 100, 1.00, shipment.Regular)},
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 20, 1.00, shipment.Return)},
			),
			makeShipment(t, date,
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 50, 1.00, shipment.Regular)},
				nil,
			),
		}

		summary := aggregator.Summarize(shipments)

		assert.True(t, summary.RegularTotal.Equal(decimal.NewFromInt(150)),
			"expected 150, got %s", summary.RegularTotal)
		assert.True(t, summary.ReturnTotal.Equal(decimal.NewFromInt(20)),
			"expected 20, got %s", summary.ReturnTotal)
		assert.True(t, summary.NetTotal.Equal(decimal.NewFromInt(130)),
			"expected 130, got %s", summary.NetTotal)
		assert.Equal(t, 2, summary.RegularItemCount)
		assert.Equal(t, 1, summary.ReturnItemCount)
	})

	t.Run("should bucket by item tag not shipment status", func(t *testing.T) {
		s := makeShipment(t, date,
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 10, 2.00, shipment.Regular)},
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 5, 2.00, shipment.Return)},
		)
		require.NoError(t, s.ForceSetStatus(shipment.Cancelled))

		summary := aggregator.Summarize([]*shipment.Shipment{s})

		assert.True(t, summary.RegularTotal.Equal(decimal.NewFromInt(20)))
		assert.True(t, summary.ReturnTotal.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should yield zero totals for empty set", func(t *testing.T) {
		summary := aggregator.Summarize(nil)

		assert.True(t, summary.RegularTotal.Equal(decimal.Zero))
		assert.True(t, summary.ReturnTotal.Equal(decimal.Zero))
		assert.True(t, summary.NetTotal.Equal(decimal.Zero))
		assert.Zero(t, summary.RegularItemCount)
		assert.Zero(t, summary.ReturnItemCount)
	})

	t.Run("should go negative when returns exceed deliveries", func(t *testing.T) {
		shipments := []*shipment.Shipment{
			makeShipment(t, date,
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 10, 1.00, shipment.Regular)},
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 15, 1.00, shipment.Return)},
			),
		}

		summary := aggregator.Summarize(shipments)

		assert.True(t, summary.NetTotal.Equal(decimal.NewFromInt(-5)))
	})
}

func TestReportAggregator_ProductAggregates(t *testing.T) {
	aggregator := services.NewReportAggregator()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("should sum quantity and amount per product across shipments", func(t *testing.T) {
		bread := kernel.NewUUID()
		cake := kernel.NewUUID()

		shipments := []*shipment.Shipment{
			makeShipment(t, date, []*shipment.Item{
				makeItem(t, bread, 10, 1.00, shipment.Regular),
				makeItem(t, cake, 2, 5.00, shipment.Regular),
			}, nil),
			makeShipment(t, date, []*shipment.Item{
				makeItem(t, bread, 5, 1.00, shipment.Regular),
			}, nil),
		}

		aggregates := aggregator.ProductAggregates(shipments, shipment.Regular)

		require.Len(t, aggregates, 2)
		byProduct := make(map[kernel.UUID]services.ProductAggregate)
		for _, agg := range aggregates {
			byProduct[agg.ProductID] = agg
		}

		assert.True(t, byProduct[bread].Quantity.Equal(decimal.NewFromInt(15)))
		assert.True(t, byProduct[bread].TotalAmount.Equal(decimal.NewFromInt(15)))
		assert.True(t, byProduct[cake].Quantity.Equal(decimal.NewFromInt(2)))
		assert.True(t, byProduct[cake].TotalAmount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should only include the requested bucket", func(t *testing.T) {
		productID := kernel.NewUUID()
		shipments := []*shipment.Shipment{
			makeShipment(t, date,
				[]*shipment.Item{makeItem(t, productID, 10, 1.00, shipment.Regular)},
				[]*shipment.Item{makeItem(t, productID, 3, 1.00, shipment.Return)},
			),
		}

		sold := aggregator.ProductAggregates(shipments, shipment.Regular)
		returned := aggregator.ProductAggregates(shipments, shipment.Return)

		require.Len(t, sold, 1)
		require.Len(t, returned, 1)
		assert.True(t, sold[0].Quantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, returned[0].Quantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("should sort descending by summed amount", func(t *testing.T) {
		small := kernel.NewUUID()
		big := kernel.NewUUID()
		shipments := []*shipment.Shipment{
			makeShipment(t, date, []*shipment.Item{
				makeItem(t, small, 1, 1.00, shipment.Regular),
				makeItem(t, big, 1, 100.00, shipment.Regular),
			}, nil),
		}

		aggregates := aggregator.ProductAggregates(shipments, shipment.Regular)

		require.Len(t, aggregates, 2)
		assert.True(t, aggregates[0].ProductID.IsEqual(big))
		assert.True(t, aggregates[1].ProductID.IsEqual(small))
	})

	t.Run("should return empty slice for empty set", func(t *testing.T) {
		assert.Empty(t, aggregator.ProductAggregates(nil, shipment.Regular))
	})
}

func TestReportAggregator_ChartSeries(t *testing.T) {
	aggregator := services.NewReportAggregator()

	t.Run("should bucket by calendar month", func(t *testing.T) {
		january := makeShipment(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 100, 1.00, shipment.Regular)}, nil)
		januaryLate := makeShipment(t, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 50, 1.00, shipment.Regular)},
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 20, 1.00, shipment.Return)})
		february := makeShipment(t, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 30, 1.00, shipment.Regular)}, nil)

		series := aggregator.ChartSeries(
			[]*shipment.Shipment{january, januaryLate, february}, services.Monthly)

		require.Len(t, series, 2)
		assert.Equal(t, "2024-01", series[0].Label)
		assert.True(t, series[0].RegularTotal.Equal(decimal.NewFromInt(150)))
		assert.True(t, series[0].ReturnTotal.Equal(decimal.NewFromInt(20)))
		assert.True(t, series[0].NetTotal.Equal(decimal.NewFromInt(130)))

		assert.Equal(t, "2024-02", series[1].Label)
		assert.True(t, series[1].RegularTotal.Equal(decimal.NewFromInt(30)))
	})

	t.Run("should bucket by calendar day", func(t *testing.T) {
		first := makeShipment(t, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 1, 1.00, shipment.Regular)}, nil)
		second := makeShipment(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 2, 1.00, shipment.Regular)}, nil)
		nextDay := makeShipment(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 3, 1.00, shipment.Regular)}, nil)

		series := aggregator.ChartSeries(
			[]*shipment.Shipment{first, second, nextDay}, services.Daily)

		require.Len(t, series, 2)
		assert.Equal(t, "2024-03-15", series[0].Label)
		assert.True(t, series[0].RegularTotal.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, "2024-03-16", series[1].Label)
	})

	t.Run("should bucket by ISO week", func(t *testing.T) {
		// 2024-03-11 is a Monday; the 13th and 17th share its week,
		// the 18th starts the next one
		wednesday := makeShipment(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 1, 1.00, shipment.Regular)}, nil)
		sunday := makeShipment(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 2, 1.00, shipment.Regular)}, nil)
		nextMonday := makeShipment(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
			[]*shipment.Item{makeItem(t, kernel.NewUUID(), 4, 1.00, shipment.Regular)}, nil)

		series := aggregator.ChartSeries(
			[]*shipment.Shipment{wednesday, sunday, nextMonday}, services.Weekly)

		require.Len(t, series, 2)
		assert.Equal(t, "2024-W11", series[0].Label)
		assert.True(t, series[0].RegularTotal.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, "2024-W12", series[1].Label)
	})

	t.Run("should partition the set exactly", func(t *testing.T) {
		// per-bucket totals must sum to the unbucketed totals for every
		// granularity
		shipments := []*shipment.Shipment{
			makeShipment(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 100, 1.00, shipment.Regular)},
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 7, 1.00, shipment.Return)}),
			makeShipment(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 50, 1.00, shipment.Regular)}, nil),
			makeShipment(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 25, 2.00, shipment.Regular)},
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 3, 2.00, shipment.Return)}),
			makeShipment(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 5, 1.00, shipment.Regular)}, nil),
		}
		whole := aggregator.Summarize(shipments)

		for _, granularity := range []services.Granularity{
			services.Daily, services.Weekly, services.Monthly,
		} {
			series := aggregator.ChartSeries(shipments, granularity)

			regular := decimal.Zero
			returned := decimal.Zero
			net := decimal.Zero
			for _, bucket := range series {
				regular = regular.Add(bucket.RegularTotal)
				returned = returned.Add(bucket.ReturnTotal)
				net = net.Add(bucket.NetTotal)
			}

			assert.True(t, regular.Equal(whole.RegularTotal),
				"%s regular totals do not sum up", granularity)
			assert.True(t, returned.Equal(whole.ReturnTotal),
				"%s return totals do not sum up", granularity)
			assert.True(t, net.Equal(whole.NetTotal),
				"%s net totals do not sum up", granularity)
		}
	})

	t.Run("should return sorted labels", func(t *testing.T) {
		shipments := []*shipment.Shipment{
			makeShipment(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 1, 1.00, shipment.Regular)}, nil),
			makeShipment(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 1, 1.00, shipment.Regular)}, nil),
			makeShipment(t, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
				[]*shipment.Item{makeItem(t, kernel.NewUUID(), 1, 1.00, shipment.Regular)}, nil),
		}

		series := aggregator.ChartSeries(shipments, services.Monthly)

		require.Len(t, series, 3)
		assert.Equal(t, "2023-11", series[0].Label)
		assert.Equal(t, "2024-02", series[1].Label)
		assert.Equal(t, "2024-12", series[2].Label)
	})

	t.Run("should return empty series for empty set", func(t *testing.T) {
		assert.Empty(t, aggregator.ChartSeries(nil, services.Monthly))
	})
}

func TestGranularityFromString(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected services.Granularity
		}{
			{"DAILY", services.Daily},
			{"WEEKLY", services.Weekly},
			{"MONTHLY", services.Monthly},
		}

		for _, tc := range testCases {
			granularity, err := services.GranularityFromString(tc.input)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, granularity)
		}
	})

	t.Run("should default empty input to monthly", func(t *testing.T) {
		granularity, err := services.GranularityFromString("")

		require.NoError(t, err)
		assert.Equal(t, services.Monthly, granularity)
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		for _, input := range []string{"daily", "YEARLY", "HOURLY"} {
			_, err := services.GranularityFromString(input)
			require.Error(t, err, "expected %q to be rejected", input)
		}
	})

	t.Run("should round-trip with String", func(t *testing.T) {
		for _, granularity := range []services.Granularity{
			services.Daily, services.Weekly, services.Monthly,
		} {
			parsed, err := services.GranularityFromString(granularity.String())
			require.NoError(t, err)
			assert.Equal(t, granularity, parsed)
		}
	})
}
