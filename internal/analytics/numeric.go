package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// toFloat coerces a loosely-typed numeric value to a finite float64.
// Anything non-finite or non-numeric yields nil, never NaN or zero.
func toFloat(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toMillis coerces a loosely-typed value to a millisecond timestamp.
func toMillis(v any) *int64 {
	f := toFloat(v)
	if f == nil {
		return nil
	}
	ms := int64(*f)
	return &ms
}

// roundPct rounds a win ratio to the nearest whole percent.
func roundPct(wins, trades int) int {
	return int(math.Round(float64(wins) / float64(trades) * 100))
}

// roundDiv rounds an integer division to the nearest whole unit.
func roundDiv(sum, count, unit int64) int64 {
	return int64(math.Round(float64(sum) / float64(count) / float64(unit)))
}
