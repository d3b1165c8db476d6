// Package anchorstore persists water property anchor points and serves
// them to the interpolator. Two implementations exist: an immutable
// in-memory table for standalone deployments and a postgres-backed one
// for installations that maintain the table centrally. Cached wraps
// either with a TTL read cache.
package anchorstore

import (
	"context"
	"slices"

	"github.com/spardeck/marine-measure/internal/water"
)

var _ water.AnchorSource = (*Memory)(nil)

// Memory serves anchor points from process memory. The table is copied
// and sorted at construction time and never mutated afterwards, so it
// is safe for concurrent use.
type Memory struct {
	byMedium map[water.Medium][]water.AnchorPoint
}

// NewMemory builds a Memory store holding the given anchor points.
func NewMemory(points []water.AnchorPoint) *Memory {
	byMedium := make(map[water.Medium][]water.AnchorPoint)
	for _, p := range points {
		byMedium[p.Medium] = append(byMedium[p.Medium], p)
	}
	for medium := range byMedium {
		slices.SortFunc(byMedium[medium], func(a, b water.AnchorPoint) int {
			return a.TemperatureC.Cmp(b.TemperatureC)
		})
	}
	return &Memory{byMedium: byMedium}
}

// NewMemoryDefault builds a Memory store preloaded with the built-in
// ITTC table.
func NewMemoryDefault() *Memory {
	return NewMemory(water.DefaultAnchorPoints())
}

// FetchAnchorPoints implements water.AnchorSource. Unknown media yield
// an empty table, not an error.
func (m *Memory) FetchAnchorPoints(_ context.Context, medium water.Medium) ([]water.AnchorPoint, error) {
	return slices.Clone(m.byMedium[medium]), nil
}
