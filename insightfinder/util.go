package insightfinder

import (
	"strconv"
)

// Helper function to convert any numeric value to float64
func convertToFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
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
	case bool:
		if v {
			return 1.0, true
		}
		return 0.0, true
	case string:
		if parsedFloat, err := strconv.ParseFloat(v, 64); err == nil {
			return parsedFloat, true
		}
		return 0, false
	default:
		return 0, false
	}
}
