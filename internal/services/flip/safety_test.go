package flip

import "testing"

func TestAlchSafety(t *testing.T) {
	cases := []struct {
		name       string
		value      int64
		runeCost   int64
		buy        int64
		wantFloor  int64
		wantProfit int64
		wantSafe   bool
	}{
		{"safe buy under floor", 1000, 180, 700, 820, 120, true},
		{"safe at exact floor", 1000, 180, 820, 820, 0, true},
		{"unsafe above floor", 1000, 180, 900, 820, -80, false},
		{"no alch value", 0, 180, 100, 0, 0, false},
		{"rune cost above value", 100, 180, 10, -80, -90, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := AlchSafety(tc.value, tc.runeCost, tc.buy)
			if s.Floor != tc.wantFloor || s.Profit != tc.wantProfit || s.Safe != tc.wantSafe {
				t.Fatalf("AlchSafety(%d, %d, %d) = {floor %d, profit %d, safe %v}, want {%d, %d, %v}",
					tc.value, tc.runeCost, tc.buy, s.Floor, s.Profit, s.Safe,
					tc.wantFloor, tc.wantProfit, tc.wantSafe)
			}
		})
	}
}

func TestAlchSafetyEquivalence(t *testing.T) {
	// safe flag <=> buy <= value - runeCost for all items with a value.
	for buy := int64(1); buy <= 2000; buy += 7 {
		s := AlchSafety(1500, 180, buy)
		want := buy <= 1500-180
		if s.Safe != want {
			t.Fatalf("buy %d: safe = %v, want %v", buy, s.Safe, want)
		}
	}
}
