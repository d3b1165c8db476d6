package units

import "github.com/jonboulle/clockwork"

// clock is the package-level time source stamping fallback events.
// Tests freeze it via SetClock for deterministic timestamps.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
