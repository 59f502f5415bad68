package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	cases := map[float64]string{
		0:        "$0",
		999:      "$999",
		1000:     "$1,000",
		12500.4:  "$12,500",
		1234567:  "$1,234,567",
		-2500:    "$-2,500",
		-250:     "$-250",
		99999.5:  "$100,000",
		100000.0: "$100,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatUSD(in), "amount %v", in)
	}
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, 250.5, ToFloat64(json.Number("250.5")))
	assert.Equal(t, 100.0, ToFloat64(float64(100)))
	assert.Equal(t, 42.0, ToFloat64("42"))
	assert.Equal(t, 0.0, ToFloat64("n/a"))
	assert.Equal(t, 0.0, ToFloat64(nil))
	assert.Equal(t, 0.0, ToFloat64(true))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "17", ToString(json.Number("17")))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "", ToString(nil))
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	got, ok := ToTime("2024-03-05T10:30:00Z")
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = ToTime("2024-03-05T10:30:00.123456+00:00")
	assert.True(t, ok)
	assert.Equal(t, want.Add(123456*time.Microsecond).UnixMilli(), got.UnixMilli())

	got, ok = ToTime(json.Number("1709634600000"))
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = ToTime("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	for _, outOfRange := range []any{
		json.Number("1e20"),
		json.Number("-1e20"),
		"1e20",
		1e20,
		json.Number("253402300800000"),
	} {
		_, ok = ToTime(outOfRange)
		assert.False(t, ok, "value %v", outOfRange)
	}

	got, ok = ToTime(json.Number("253402300799999"))
	assert.True(t, ok)
	assert.Equal(t, 9999, got.Year())

	_, ok = ToTime("yesterday")
	assert.False(t, ok)
	_, ok = ToTime("")
	assert.False(t, ok)
	_, ok = ToTime(nil)
	assert.False(t, ok)
}
