package extractor

import (
	"math"
	"strconv"
	"strings"
)

// Coerce turns one raw cell into a score. It is the only numeric
// normalization in the pipeline and is used for direct dimension cells and
// for every sub-indicator cell alike.
//
//   - numbers are returned as float64
//   - non-blank text keeps only its digits and '.' and is parsed if anything
//     remains ("7.5 pts" -> 7.5, "N/A" -> no value)
//   - anything else is no value
//
// Coerce never fails: text that still does not parse after stripping
// ("1.2.3", ".") is no value. NaN and infinities are no value.
func Coerce(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		return coerceText(v)
	default:
		return 0, false
	}
}

func coerceText(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if kept == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(kept, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
