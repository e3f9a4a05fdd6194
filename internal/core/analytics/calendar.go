package analytics

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

// PeriodStart returns the first day of the period containing d.
// Weeks start on Monday.
func PeriodStart(d civil.Date, g domain.Granularity) civil.Date {
	switch g {
	case domain.GranularityWeekly:
		daysBack := (int(domain.Weekday(d)) + 6) % 7
		return d.AddDays(-daysBack)
	case domain.GranularityMonthly:
		return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	case domain.GranularityQuarterly:
		firstMonth := ((int(d.Month)-1)/3)*3 + 1
		return civil.Date{Year: d.Year, Month: time.Month(firstMonth), Day: 1}
	default:
		return d
	}
}

// NextPeriod expects a period start and returns the start of the following period.
func NextPeriod(start civil.Date, g domain.Granularity) civil.Date {
	switch g {
	case domain.GranularityWeekly:
		return start.AddDays(7)
	case domain.GranularityMonthly:
		return addMonths(start, 1)
	case domain.GranularityQuarterly:
		return addMonths(start, 3)
	default:
		return start.AddDays(1)
	}
}

func addMonths(d civil.Date, n int) civil.Date {
	months := int(d.Month) - 1 + n
	year := d.Year + months/12
	months %= 12
	if months < 0 {
		months += 12
		year--
	}
	return civil.Date{Year: year, Month: time.Month(months + 1), Day: d.Day}
}

func PeriodLabel(start civil.Date, g domain.Granularity) string {
	t := start.In(time.UTC)
	switch g {
	case domain.GranularityWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("W%02d %d", week, year)
	case domain.GranularityMonthly:
		return t.Format("Jan 2006")
	case domain.GranularityQuarterly:
		return fmt.Sprintf("Q%d %d", (int(start.Month)-1)/3+1, start.Year)
	default:
		return t.Format("02 Jan 2006")
	}
}
