package util

import (
	"encoding/json"
	"testing"
)

func TestToInt64(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		def  int64
		want int64
	}{
		{"nil", nil, 7, 7},
		{"float64", float64(123.9), 0, 123},
		{"int", 42, 0, 42},
		{"int64", int64(9_000_000_000), 0, 9_000_000_000},
		{"number", json.Number("1500"), 0, 1500},
		{"number float", json.Number("1500.5"), 0, 1500},
		{"string", "250", 0, 250},
		{"string float", "250.75", 0, 250},
		{"garbage string", "abc", 5, 5},
		{"bool", true, 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToInt64(tc.in, tc.def); got != tc.want {
				t.Fatalf("ToInt64(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 9); got != 9 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("12", 9); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := ParseIntDefault("x", 9); got != 9 {
		t.Fatalf("expected default for garbage, got %d", got)
	}
}
