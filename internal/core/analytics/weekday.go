package analytics

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

var ErrSeriesOutOfRange = errors.New("series contains points outside the requested range")

// weekdayOrder lists weekdays Monday first.
var weekdayOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

func weekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// AggregateByWeekday buckets a series by weekday, Monday first.
//
// OccurrenceCount is how many times each weekday occurs in [start, end],
// whether or not the series has data for those dates. The series is expected
// to be pre-filtered to the range: points outside it are still summed into
// their weekday but reported through ErrSeriesOutOfRange.
func AggregateByWeekday(series []domain.TimeSeriesPoint, start, end civil.Date) ([7]domain.WeekdayBucket, error) {
	var buckets [7]domain.WeekdayBucket
	for i, wd := range weekdayOrder {
		buckets[i].Weekday = wd
		buckets[i].Label = wd.String()[:3]
	}

	r := domain.NewDateRange(start, end)
	if days := r.Days(); days > 0 {
		first := weekdayIndex(domain.Weekday(start))
		for i := range buckets {
			buckets[i].OccurrenceCount = days / 7
		}
		for k := 0; k < days%7; k++ {
			buckets[(first+k)%7].OccurrenceCount++
		}
	}

	outside := 0
	for _, p := range series {
		if !r.Contains(p.Date) {
			outside++
		}
		buckets[weekdayIndex(domain.Weekday(p.Date))].TotalValue += p.Total
	}

	for i := range buckets {
		if buckets[i].OccurrenceCount > 0 {
			buckets[i].AverageValue = buckets[i].TotalValue / float64(buckets[i].OccurrenceCount)
		}
	}

	if outside > 0 {
		return buckets, fmt.Errorf("%w: %d points outside %s", ErrSeriesOutOfRange, outside, r)
	}
	return buckets, nil
}
