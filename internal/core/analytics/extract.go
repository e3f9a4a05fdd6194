package analytics

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

// The seller backend answers with loosely typed JSON:
//
//	{"data": {"total": 1, "previous_total": 1, "percent": 0, "trend": "Up",
//	          "sparkline": [{"tanggal": "2024-01-01", "total": 1}]}}
//
// Everything below degrades to neutral values instead of failing: missing or
// mistyped numbers become 0, unknown trends are derived from the totals, and
// series points without a parsable date are skipped.

// ExtractSnapshot normalizes one store's metric response.
func ExtractSnapshot(raw []byte) domain.MetricSnapshot {
	snap := domain.ZeroSnapshot()

	data := objectField(decodeObject(raw), "data")
	if data == nil {
		return snap
	}

	snap.Current = parseNumber(data["total"])
	snap.Previous = parseNumber(data["previous_total"])
	snap.PercentChange = parseNumber(data["percent"])
	snap.Sparkline = parseSeries(data["sparkline"])

	if trend, ok := parseTrend(data["trend"]); ok {
		snap.TrendDirection = trend
	} else {
		snap.TrendDirection = domain.TrendOf(snap.Current, snap.Previous)
	}

	return snap
}

// ExtractSeries normalizes a daily series given either as a bare array or
// wrapped in {"data": [...]}.
func ExtractSeries(raw []byte) []domain.TimeSeriesPoint {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		obj := decodeObject(trimmed)
		if obj == nil {
			return []domain.TimeSeriesPoint{}
		}
		return parseSeries(obj["data"])
	}
	return parseSeries(trimmed)
}

func decodeObject(raw []byte) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

func objectField(obj map[string]json.RawMessage, key string) map[string]json.RawMessage {
	if obj == nil {
		return nil
	}
	return decodeObject(obj[key])
}

func parseNumber(raw json.RawMessage) float64 {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		text = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func parseTrend(raw json.RawMessage) (domain.TrendDirection, bool) {
	s, ok := parseString(raw)
	if !ok {
		return "", false
	}
	return domain.ParseTrend(s)
}

func parseSeries(raw json.RawMessage) []domain.TimeSeriesPoint {
	points := []domain.TimeSeriesPoint{}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return points
	}

	for _, item := range items {
		obj := decodeObject(item)
		if obj == nil {
			continue
		}

		dateStr, ok := parseString(obj["tanggal"])
		if !ok {
			dateStr, ok = parseString(obj["date"])
		}
		if !ok {
			continue
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			continue
		}

		points = append(points, domain.TimeSeriesPoint{
			Date:  date,
			Total: parseNumber(obj["total"]),
		})
	}

	return points
}
