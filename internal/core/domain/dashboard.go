package domain

import "errors"

var (
	ErrInvalidRange  = errors.New("start_date cannot be after end_date")
	ErrRangeTooLarge = errors.New("date range too large, max 1 year allowed")
	ErrInvalidYear   = errors.New("invalid year")
)

// MaxRangeDays bounds a single dashboard query.
const MaxRangeDays = 366

// MetricCard is one reconciled metric. Growth is recomputed from the merged
// current and previous values, since a multi-store PercentChange is always 0.
type MetricCard struct {
	Metric Metric `json:"metric"`
	MetricSnapshot
	Growth *float64 `json:"growth"`
}

type Summary struct {
	Range        DateRange    `json:"range"`
	StoreIDs     []string     `json:"store_ids"`
	Cards        []MetricCard `json:"cards"`
	FailedStores []string     `json:"failed_stores"`
}

type SeriesResult struct {
	Metric       Metric             `json:"metric"`
	Granularity  Granularity        `json:"granularity"`
	Range        DateRange          `json:"range"`
	Buckets      []AggregatedBucket `json:"buckets"`
	Growth       []*float64         `json:"growth"`
	FailedStores []string           `json:"failed_stores"`
}

type WeekdayResult struct {
	Metric       Metric           `json:"metric"`
	Range        DateRange        `json:"range"`
	Buckets      [7]WeekdayBucket `json:"buckets"`
	FailedStores []string         `json:"failed_stores"`
}

type QuarterResult struct {
	Year         int              `json:"year"`
	Quarters     [4]QuarterRollup `json:"quarters"`
	FailedStores []string         `json:"failed_stores"`
}

type YearOverYearResult struct {
	Year         int                 `json:"year"`
	Months       []YearOverYearMonth `json:"months"`
	FailedStores []string            `json:"failed_stores"`
}
