package analytics

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

// AggregateQuarters rolls twelve monthly totals (January first) into four
// quarters. Months beyond the end of monthly count as zero.
func AggregateQuarters(year int, monthly []domain.MonthlyTotals) [4]domain.QuarterRollup {
	var quarters [4]domain.QuarterRollup
	var sales, orders, basket [4]float64

	for q := range quarters {
		for m := q * 3; m < q*3+3; m++ {
			if m < len(monthly) {
				sales[q] += monthly[m].Sales
				orders[q] += monthly[m].Orders
			}
		}
		basket[q] = safeDivide(sales[q], orders[q])

		quarters[q] = domain.QuarterRollup{
			AggregatedBucket: domain.AggregatedBucket{
				Label:       fmt.Sprintf("Q%d %d", q+1, year),
				PeriodStart: civil.Date{Year: year, Month: time.Month(q*3 + 1), Day: 1},
				Value:       sales[q],
			},
			SalesTotal:  sales[q],
			OrdersTotal: orders[q],
			BasketSize:  basket[q],
		}
	}

	salesGrowth := GrowthSeries(sales[:])
	ordersGrowth := GrowthSeries(orders[:])
	basketGrowth := GrowthSeries(basket[:])
	for q := range quarters {
		quarters[q].GrowthVsPreviousQuarter = salesGrowth[q]
		quarters[q].OrdersGrowth = ordersGrowth[q]
		quarters[q].BasketSizeGrowth = basketGrowth[q]
	}

	return quarters
}

// MonthlyTotalsFromSeries folds a year's daily sales and orders into twelve
// monthly totals, January first.
func MonthlyTotalsFromSeries(year int, sales, orders []domain.TimeSeriesPoint) []domain.MonthlyTotals {
	r := domain.YearRange(year)
	salesByMonth := Bucket(sales, domain.GranularityMonthly, r.Start, r.End, domain.AggregationSum)
	ordersByMonth := Bucket(orders, domain.GranularityMonthly, r.Start, r.End, domain.AggregationSum)

	monthly := make([]domain.MonthlyTotals, 12)
	for i := range monthly {
		monthly[i] = domain.MonthlyTotals{
			Sales:  salesByMonth[i].Value,
			Orders: ordersByMonth[i].Value,
		}
	}
	return monthly
}

// YearOverYear compares each month of current with the same month of previous.
func YearOverYear(current, previous []domain.MonthlyTotals) []domain.YearOverYearMonth {
	months := make([]domain.YearOverYearMonth, 12)
	for i := range months {
		var cur, prev float64
		if i < len(current) {
			cur = current[i].Sales
		}
		if i < len(previous) {
			prev = previous[i].Sales
		}
		month := time.Month(i + 1)
		months[i] = domain.YearOverYearMonth{
			Month:    month,
			Label:    month.String()[:3],
			Current:  cur,
			Previous: prev,
			Growth:   PercentChange(prev, cur),
		}
	}
	return months
}
