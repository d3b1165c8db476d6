package units

import (
	"time"

	"github.com/shopspring/decimal"
)

// FallbackEvent describes a conversion that found no registered factor for
// its (from, to, category) triple and returned the input unchanged.
type FallbackEvent struct {
	From       SystemID
	To         SystemID
	Category   CategoryID
	ObservedAt time.Time
}

// FallbackFunc observes fallback events. Convert calls it synchronously;
// hooks must be fast and must not panic.
type FallbackFunc func(FallbackEvent)

// Converter performs scalar and batch conversions against a fixed
// registry. It holds no mutable state; one instance serves any number of
// concurrent callers.
type Converter struct {
	reg        *Registry
	onFallback FallbackFunc
}

// NewConverter builds a converter over reg. onFallback may be nil when no
// diagnostics sink exists (tests, one-shot CLI calls).
func NewConverter(reg *Registry, onFallback FallbackFunc) *Converter {
	return &Converter{reg: reg, onFallback: onFallback}
}

// Registry returns the catalog this converter reads from.
func (c *Converter) Registry() *Registry {
	return c.reg
}

// Convert translates value between unit systems for one category.
// Identical from/to identifiers return value unchanged without touching
// the factor table. A triple with no registered factor also returns value
// unchanged: calculation callers rely on that identity result, so a miss
// is reported through the fallback hook rather than as an error.
func (c *Converter) Convert(value decimal.Decimal, from, to SystemID, category CategoryID) decimal.Decimal {
	if from == to {
		return value
	}
	factor, ok := c.reg.factorFor(from, to, category)
	if !ok {
		if c.onFallback != nil {
			c.onFallback(FallbackEvent{
				From:       from,
				To:         to,
				Category:   category,
				ObservedAt: clock.Now(),
			})
		}
		return value
	}
	return value.Mul(factor)
}

// BatchEntry pairs a value with its category for batch conversion.
type BatchEntry struct {
	Value    decimal.Decimal `json:"value"`
	Category CategoryID      `json:"category"`
}

// ConvertBatch converts every entry independently between the two systems.
// All keys are preserved; a fallback on one entry leaves the others
// untouched.
func (c *Converter) ConvertBatch(entries map[string]BatchEntry, from, to SystemID) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(entries))
	for key, e := range entries {
		out[key] = c.Convert(e.Value, from, to, e.Category)
	}
	return out
}
