package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeResponses converts loosely typed input (decoded JSON, form values)
// into a ResponseSet. Numbers and numeric strings are kept; anything else is
// stored as NaN so that it resolves to the midpoint.
func NormalizeResponses(in map[string]any) ResponseSet {
	out := make(ResponseSet, len(in))
	for id, v := range in {
		out[strings.TrimSpace(id)] = toRating(v)
	}
	return out
}

func toRating(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

// Finite returns a copy of r without non-finite ratings. Dropped entries
// resolve to the midpoint exactly as before, and the copy is safe to encode.
func (r ResponseSet) Finite() ResponseSet {
	out := make(ResponseSet, len(r))
	for id, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[id] = v
	}
	return out
}
