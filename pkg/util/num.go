package util

import (
	"encoding/json"
	"strconv"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ToInt64 coerces loosely-typed JSON values to int64, falling back to def.
// The price API is not strict about numeric types, so fields may arrive as
// float64, json.Number, string, or be missing entirely.
func ToInt64(v interface{}, def int64) int64 {
	switch x := v.(type) {
	case nil:
		return def
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return int64(f)
		}
		return def
	case string:
		if n, err := strconv.ParseInt(x, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return int64(f)
		}
		return def
	default:
		return def
	}
}
