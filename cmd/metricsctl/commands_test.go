package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
)

const exportJSON = `[
	{"tanggal": "2024-01-01", "total": 10},
	{"tanggal": "2024-01-02", "total": "5"},
	{"tanggal": "2024-01-08", "total": 30},
	{"tanggal": "not-a-date", "total": 99}
]`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBucketCommand(t *testing.T) {
	path := writeExport(t, exportJSON)

	t.Run("Weekly sums with growth", func(t *testing.T) {
		out, err := execute(t, "", "bucket", "--file", path, "--granularity", "weekly")
		require.NoError(t, err)

		var result domain.SeriesResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result.Buckets, 2)
		assert.Equal(t, 15.0, result.Buckets[0].Value)
		assert.Equal(t, 30.0, result.Buckets[1].Value)
		assert.Nil(t, result.Growth[0])
		require.NotNil(t, result.Growth[1])
		assert.Equal(t, 100.0, *result.Growth[1])
	})

	t.Run("Reads stdin", func(t *testing.T) {
		out, err := execute(t, exportJSON, "bucket", "-f", "-", "-g", "monthly", "-a", "average")
		require.NoError(t, err)

		var result domain.SeriesResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result.Buckets, 1)
		assert.Equal(t, 15.0, result.Buckets[0].Value)
	})

	t.Run("Invalid granularity", func(t *testing.T) {
		_, err := execute(t, "", "bucket", "--file", path, "--granularity", "hourly")
		assert.ErrorIs(t, err, domain.ErrInvalidGranularity)
	})

	t.Run("Invalid aggregation", func(t *testing.T) {
		_, err := execute(t, "", "bucket", "--file", path, "--aggregation", "median")
		assert.Error(t, err)
	})

	t.Run("Empty export", func(t *testing.T) {
		_, err := execute(t, "", "bucket", "--file", writeExport(t, `[]`))
		assert.ErrorIs(t, err, errEmptyExport)
	})

	t.Run("Inverted range", func(t *testing.T) {
		_, err := execute(t, "", "bucket", "--file", path, "--start", "2024-02-01", "--end", "2024-01-01")
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestWeekdayCommand(t *testing.T) {
	path := writeExport(t, exportJSON)

	out, err := execute(t, "", "weekday", "--file", path, "--start", "2024-01-01", "--end", "2024-01-07")
	require.NoError(t, err)

	var buckets [7]domain.WeekdayBucket
	require.NoError(t, json.Unmarshal([]byte(out), &buckets))
	assert.Equal(t, "Mon", buckets[0].Label)
	assert.Equal(t, 10.0, buckets[0].TotalValue)
	assert.Equal(t, 1, buckets[0].OccurrenceCount)
	assert.Equal(t, 5.0, buckets[1].TotalValue)
}

func TestGrowthCommand(t *testing.T) {
	out, err := execute(t, "", "growth", "0", "50", "75")
	require.NoError(t, err)
	assert.Equal(t, "0\t-\n50\t-\n75\t50.00%\n", out)

	_, err = execute(t, "", "growth", "ten")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "", "token", "--merchant", "merchant-7", "--secret", "cli-secret", "--ttl", "5m")
	require.NoError(t, err)

	merchantID, err := services.NewTokenService("cli-secret", "sellermetrics", time.Minute).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "merchant-7", merchantID)

	t.Setenv("SELLERMETRICS_JWT_SECRET", "")
	_, err = execute(t, "", "token", "--merchant", "merchant-7")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
