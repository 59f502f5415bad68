package common

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatUSD renders a whole-dollar amount with thousands separators.
func FormatUSD(amount float64) string {
	rounded := int64(math.Round(amount))
	return "$" + formatWithCommas(strconv.FormatInt(rounded, 10))
}

func formatWithCommas(input string) string {
	neg := strings.HasPrefix(input, "-")
	if neg {
		input = strings.TrimPrefix(input, "-")
	}
	if len(input) <= 3 {
		if neg {
			return "-" + input
		}
		return input
	}

	n := len(input)
	first := n % 3
	if first == 0 {
		first = 3
	}

	parts := []string{input[:first]}
	for i := first; i < n; i += 3 {
		parts = append(parts, input[i:i+3])
	}

	result := strings.Join(parts, ",")
	if neg {
		return "-" + result
	}
	return result
}

func ToFloat64(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case jsonNumber:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

type jsonNumber interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func ToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case jsonNumber:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999-07",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToTime accepts an ISO-like timestamp string or an epoch value in
// milliseconds. The second return is false when nothing usable was found.
func ToTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		if ms, err := strconv.ParseFloat(s, 64); err == nil {
			return fromEpochMillis(ms)
		}
		return time.Time{}, false
	case jsonNumber:
		ms, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpochMillis(ms)
	case float64:
		return fromEpochMillis(v)
	case int64:
		return fromEpochMillis(float64(v))
	case int:
		return fromEpochMillis(float64(v))
	}
	return time.Time{}, false
}

// Epoch values outside years 1..9999 are treated as unparseable; they cannot
// be stored as timestamptz nor encoded as RFC 3339.
var (
	minEpochMillis = float64(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
	maxEpochMillis = float64(time.Date(9999, 12, 31, 23, 59, 59, 999e6, time.UTC).UnixMilli())
)

func fromEpochMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms < minEpochMillis || ms > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
