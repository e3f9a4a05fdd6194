package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

type AggregatedBucket struct {
	Label       string     `json:"label"`
	PeriodStart civil.Date `json:"period_start"`
	Value       float64    `json:"value"`
}

type MonthlyTotals struct {
	Sales  float64 `json:"sales"`
	Orders float64 `json:"orders"`
}

// QuarterRollup carries sales as the bucket value. Growth fields are nil for
// the first quarter and whenever the previous quarter's base is zero.
type QuarterRollup struct {
	AggregatedBucket
	SalesTotal              float64  `json:"sales_total"`
	OrdersTotal             float64  `json:"orders_total"`
	BasketSize              float64  `json:"basket_size"`
	GrowthVsPreviousQuarter *float64 `json:"growth_vs_previous_quarter"`
	OrdersGrowth            *float64 `json:"orders_growth"`
	BasketSizeGrowth        *float64 `json:"basket_size_growth"`
}

type WeekdayBucket struct {
	Weekday         time.Weekday `json:"weekday"`
	Label           string       `json:"label"`
	TotalValue      float64      `json:"total_value"`
	OccurrenceCount int          `json:"occurrence_count"`
	AverageValue    float64      `json:"average_value"`
}

type YearOverYearMonth struct {
	Month    time.Month `json:"month"`
	Label    string     `json:"label"`
	Current  float64    `json:"current"`
	Previous float64    `json:"previous"`
	Growth   *float64   `json:"growth"`
}
