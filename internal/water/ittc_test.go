package water

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAnchorPoints(t *testing.T) {
	points := DefaultAnchorPoints()
	require.Len(t, points, 14)

	t.Run("ordered by medium then temperature", func(t *testing.T) {
		for i, p := range points {
			wantMedium := Fresh
			if i >= 7 {
				wantMedium = Sea
			}
			assert.Equal(t, wantMedium, p.Medium, "row %d", i)

			wantTemp := int64((i % 7) * 5)
			assert.True(t, p.TemperatureC.IsInteger(), "row %d temperature %s", i, p.TemperatureC)
			assert.Equal(t, wantTemp, p.TemperatureC.IntPart(), "row %d", i)
		}
	})

	t.Run("covers the full lookup domain", func(t *testing.T) {
		for _, medium := range []Medium{Fresh, Sea} {
			var low, high bool
			for _, p := range points {
				if p.Medium != medium {
					continue
				}
				low = low || p.TemperatureC.Equal(MinTemperatureC)
				high = high || p.TemperatureC.Equal(MaxTemperatureC)
			}
			assert.True(t, low, "%s water missing anchor at %s°C", medium, MinTemperatureC)
			assert.True(t, high, "%s water missing anchor at %s°C", medium, MaxTemperatureC)
		}
	})

	t.Run("plausible magnitudes", func(t *testing.T) {
		for _, p := range points {
			density := p.Density.InexactFloat64()
			viscosity := p.KinematicViscosity.InexactFloat64()
			assert.Greater(t, density, 990.0, "%s at %s°C", p.Medium, p.TemperatureC)
			assert.Less(t, density, 1030.0, "%s at %s°C", p.Medium, p.TemperatureC)
			assert.Greater(t, viscosity, 0.7e-6, "%s at %s°C", p.Medium, p.TemperatureC)
			assert.Less(t, viscosity, 2.0e-6, "%s at %s°C", p.Medium, p.TemperatureC)
		}
	})

	t.Run("sea water is denser than fresh at every temperature", func(t *testing.T) {
		for i := 0; i < 7; i++ {
			fresh, sea := points[i], points[i+7]
			assert.True(t, sea.Density.GreaterThan(fresh.Density),
				"at %s°C: sea %s vs fresh %s", fresh.TemperatureC, sea.Density, fresh.Density)
		}
	})

	t.Run("each call returns an independent slice", func(t *testing.T) {
		first := DefaultAnchorPoints()
		first[0].Medium = "scratch"
		assert.Equal(t, Fresh, DefaultAnchorPoints()[0].Medium)
	})
}
