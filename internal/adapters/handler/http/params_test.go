package http

import (
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

func contextFor(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func withToday(t *testing.T, d civil.Date) {
	original := today
	today = func() civil.Date { return d }
	t.Cleanup(func() { today = original })
}

func TestParseDateRange(t *testing.T) {
	withToday(t, civil.Date{Year: 2024, Month: 3, Day: 10})

	tests := []struct {
		name      string
		query     string
		wantStart string
		wantEnd   string
	}{
		{"No dates", "", "2024-03-04", "2024-03-10"},
		{"Only end", "end_date=2024-01-07", "2024-01-01", "2024-01-07"},
		{"Only start", "start_date=2024-03-01", "2024-03-01", "2024-03-10"},
		{"Both", "start_date=2023-12-25&end_date=2024-01-07", "2023-12-25", "2024-01-07"},
		{"Inverted is passed through", "start_date=2024-02-01&end_date=2024-01-01", "2024-02-01", "2024-01-01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := parseDateRange(contextFor(tc.query))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, r.Start.String())
			assert.Equal(t, tc.wantEnd, r.End.String())
		})
	}

	t.Run("Malformed", func(t *testing.T) {
		_, err := parseDateRange(contextFor("start_date=01/02/2024"))
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}

func TestParseStoreIDs(t *testing.T) {
	assert.Nil(t, parseStoreIDs(contextFor("")))
	assert.Equal(t, []string{"a", "b", "c"}, parseStoreIDs(contextFor("store_ids=a,%20b,,&store_ids=c")))
}

func TestParseYear(t *testing.T) {
	withToday(t, civil.Date{Year: 2025, Month: 6, Day: 1})

	year, err := parseYear(contextFor(""))
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	year, err = parseYear(contextFor("year=2023"))
	require.NoError(t, err)
	assert.Equal(t, 2023, year)

	_, err = parseYear(contextFor("year=soon"))
	assert.ErrorIs(t, err, domain.ErrInvalidYear)
}
