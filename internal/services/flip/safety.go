package flip

// Safety is the high-alch exit: what the item converts to if the resale
// never fills. Floor is the break-even buy price; Safe means the suggested
// buy is at or below it.
type Safety struct {
	Value    int64
	RuneCost int64
	Floor    int64
	Profit   int64
	Safe     bool
}

// AlchSafety computes the alch fallback for a suggested buy. An item with
// no alch value (0) has no floor and is never safe.
func AlchSafety(alchValue, runeCost, buy int64) Safety {
	s := Safety{Value: alchValue, RuneCost: runeCost}
	if alchValue <= 0 {
		return s
	}
	s.Floor = alchValue - runeCost
	s.Profit = s.Floor - buy
	s.Safe = buy <= s.Floor
	return s
}
