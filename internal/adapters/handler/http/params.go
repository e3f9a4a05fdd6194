package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

const defaultRangeDays = 7

// today is replaced in tests.
var today = func() civil.Date {
	return civil.DateOf(time.Now().UTC())
}

// parseDateRange reads start_date/end_date. A missing end_date means today;
// a missing start_date means the week ending at end_date.
func parseDateRange(c *gin.Context) (domain.DateRange, error) {
	var (
		end   civil.Date
		start civil.Date
		err   error
	)

	if raw := c.Query("end_date"); raw == "" {
		end = today()
	} else if end, err = domain.ParseDate(raw); err != nil {
		return domain.DateRange{}, fmt.Errorf("end_date: %w", err)
	}

	if raw := c.Query("start_date"); raw == "" {
		start = end.AddDays(-(defaultRangeDays - 1))
	} else if start, err = domain.ParseDate(raw); err != nil {
		return domain.DateRange{}, fmt.Errorf("start_date: %w", err)
	}

	return domain.NewDateRange(start, end), nil
}

// parseStoreIDs accepts store_ids=a,b and repeated store_ids params.
func parseStoreIDs(c *gin.Context) []string {
	var ids []string
	for _, raw := range c.QueryArray("store_ids") {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// parseYear defaults to the current year.
func parseYear(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("year"))
	if raw == "" {
		return today().Year, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidYear, raw)
	}
	return year, nil
}
