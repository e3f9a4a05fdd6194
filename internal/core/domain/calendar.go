package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var (
	ErrInvalidDate        = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidGranularity = errors.New("invalid granularity (must be daily, weekly, monthly or quarterly)")
)

const DateLayout = "2006-01-02"

type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityQuarterly:
		return g, nil
	default:
		return "", ErrInvalidGranularity
	}
}

// Aggregation selects how points falling in the same bucket are combined.
type Aggregation string

const (
	AggregationSum     Aggregation = "sum"
	AggregationAverage Aggregation = "average"
)

type DateRange struct {
	Start civil.Date `json:"start_date"`
	End   civil.Date `json:"end_date"`
}

func NewDateRange(start, end civil.Date) DateRange {
	return DateRange{Start: start, End: end}
}

// YearRange covers 1 January through 31 December of year.
func YearRange(year int) DateRange {
	return DateRange{
		Start: civil.Date{Year: year, Month: time.January, Day: 1},
		End:   civil.Date{Year: year, Month: time.December, Day: 31},
	}
}

func (r DateRange) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid() && !r.Start.After(r.End)
}

// Days returns the inclusive number of calendar days in the range, 0 when inverted.
func (r DateRange) Days() int {
	if r.Start.After(r.End) {
		return 0
	}
	return r.End.DaysSince(r.Start) + 1
}

func (r DateRange) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
