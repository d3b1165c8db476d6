package water

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesExactMatch(t *testing.T) {
	ip := NewInterpolator(newStubSource())

	got, err := ip.Properties(context.Background(), dec("10"), dec("0"))
	require.NoError(t, err)

	assert.Equal(t, Fresh, got.Medium)
	assert.True(t, got.Density.Equal(dec("999.7")), "density %s", got.Density)
	assert.True(t, got.KinematicViscosity.Equal(dec("1.31e-6")), "viscosity %s", got.KinematicViscosity)
	assert.False(t, got.Interpolated)
	assert.Equal(t, ReferenceStandard, got.Source)
	assert.Equal(t, DensityUnit, got.DensityUnit)
	assert.Equal(t, ViscosityUnit, got.ViscosityUnit)

	t.Run("scale does not defeat the match", func(t *testing.T) {
		got, err := ip.Properties(context.Background(), dec("10.0"), dec("0"))
		require.NoError(t, err)
		assert.False(t, got.Interpolated)
		assert.True(t, got.Density.Equal(dec("999.7")))
	})

	t.Run("domain boundary anchor", func(t *testing.T) {
		got, err := ip.Properties(context.Background(), dec("0"), dec("0"))
		require.NoError(t, err)
		assert.False(t, got.Interpolated)
		assert.True(t, got.Density.Equal(dec("999.8")))
	})
}

func TestPropertiesInterpolated(t *testing.T) {
	ip := NewInterpolator(newStubSource())

	t.Run("midpoint between 10 and 20", func(t *testing.T) {
		got, err := ip.Properties(context.Background(), dec("15"), dec("0"))
		require.NoError(t, err)

		assert.True(t, got.Interpolated)
		assert.True(t, got.Density.Equal(dec("998.95")), "density %s", got.Density)
		assert.InDelta(t, 1.155e-6, got.KinematicViscosity.InexactFloat64(), 1e-12)
		assert.Equal(t, "Interpolated between 10°C and 20°C (ITTC 7.5-02-01-03)", got.Source)
		assert.Equal(t, Fresh, got.Medium)
		assert.True(t, got.TemperatureC.Equal(dec("15")))
	})

	t.Run("midpoint between 0 and 10", func(t *testing.T) {
		got, err := ip.Properties(context.Background(), dec("5"), dec("0"))
		require.NoError(t, err)

		assert.True(t, got.Interpolated)
		assert.InDelta(t, 999.75, got.Density.InexactFloat64(), 1e-9)
		assert.InDelta(t, 1.55e-6, got.KinematicViscosity.InexactFloat64(), 1e-12)
	})

	t.Run("uneven split", func(t *testing.T) {
		got, err := ip.Properties(context.Background(), dec("12.5"), dec("0"))
		require.NoError(t, err)

		// 999.7 + (998.2-999.7)*0.25
		assert.True(t, got.Interpolated)
		assert.InDelta(t, 999.325, got.Density.InexactFloat64(), 1e-9)
		assert.Equal(t, "Interpolated between 10°C and 20°C (ITTC 7.5-02-01-03)", got.Source)
	})
}

func TestPropertiesMediumSelection(t *testing.T) {
	ip := NewInterpolator(newStubSource())

	tests := []struct {
		name        string
		salinity    string
		wantMedium  Medium
		wantDensity string
	}{
		{"zero salinity is fresh", "0", Fresh, "999.7"},
		{"brackish below threshold is fresh", "0.5", Fresh, "999.7"},
		{"threshold itself is sea", "1", Sea, "1026.9"},
		{"standard sea water", "35", Sea, "1026.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ip.Properties(context.Background(), dec("10"), dec(tt.salinity))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMedium, got.Medium)
			assert.True(t, got.Density.Equal(dec(tt.wantDensity)), "density %s", got.Density)
			assert.True(t, got.SalinityPSU.Equal(dec(tt.salinity)))
		})
	}
}

func TestSeaWater(t *testing.T) {
	ip := NewInterpolator(newStubSource())

	got, err := ip.SeaWater(context.Background(), dec("10"))
	require.NoError(t, err)

	assert.Equal(t, Sea, got.Medium)
	assert.True(t, got.SalinityPSU.Equal(dec("35")))
	assert.True(t, got.Density.Equal(dec("1026.9")), "density %s", got.Density)
}

func TestPropertiesRangeError(t *testing.T) {
	tests := []struct {
		name        string
		temperature string
	}{
		{"below minimum", "-1"},
		{"just below minimum", "-0.01"},
		{"above maximum", "31"},
		{"just above maximum", "30.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newStubSource()
			ip := NewInterpolator(src)

			_, err := ip.Properties(context.Background(), dec(tt.temperature), dec("0"))
			require.Error(t, err)
			assert.True(t, IsRangeError(err), "got %v", err)
			assert.False(t, IsLookupError(err))
			assert.Zero(t, src.calls, "source must not be consulted for out-of-range temperatures")

			var re *RangeError
			require.ErrorAs(t, err, &re)
			assert.True(t, re.MinC.Equal(dec("0")))
			assert.True(t, re.MaxC.Equal(dec("30")))
		})
	}
}

func TestPropertiesLookupError(t *testing.T) {
	t.Run("empty anchor table", func(t *testing.T) {
		ip := NewInterpolator(&stubSource{})

		_, err := ip.Properties(context.Background(), dec("10"), dec("0"))
		require.Error(t, err)
		assert.True(t, IsLookupError(err), "got %v", err)
		assert.False(t, IsRangeError(err))
		assert.Contains(t, err.Error(), "no anchor points available")
	})

	t.Run("in range but above the anchor span", func(t *testing.T) {
		// 30 °C is a legal lookup temperature, but the stub table stops
		// at 20 °C, so there is no upper bound to interpolate against.
		ip := NewInterpolator(newStubSource())

		_, err := ip.Properties(context.Background(), dec("30"), dec("0"))
		require.Error(t, err)
		assert.True(t, IsLookupError(err), "got %v", err)
		assert.False(t, IsRangeError(err))

		var le *LookupError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, Fresh, le.Medium)
		assert.Contains(t, le.Reason, "bracket")
		assert.Contains(t, le.Reason, "0°C to 20°C")
	})

	t.Run("single anchor cannot bracket", func(t *testing.T) {
		src := &stubSource{anchors: map[Medium][]AnchorPoint{
			Fresh: {anchor(Fresh, "10", "999.7", "1.31e-6")},
		}}
		ip := NewInterpolator(src)

		_, err := ip.Properties(context.Background(), dec("12"), dec("0"))
		assert.True(t, IsLookupError(err), "got %v", err)
	})
}

func TestPropertiesSourceError(t *testing.T) {
	sentinel := errors.New("connection refused")
	ip := NewInterpolator(&stubSource{err: sentinel})

	_, err := ip.Properties(context.Background(), dec("10"), dec("0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, IsRangeError(err))
	assert.False(t, IsLookupError(err))
	assert.Contains(t, err.Error(), "fetch anchor points for fresh water")
}

func TestAnchorPoints(t *testing.T) {
	// Stub rows arrive out of order on purpose.
	src := &stubSource{anchors: map[Medium][]AnchorPoint{
		Fresh: {
			anchor(Fresh, "20", "998.2", "1.00e-6"),
			anchor(Fresh, "0", "999.8", "1.79e-6"),
			anchor(Fresh, "10", "999.7", "1.31e-6"),
		},
	}}
	ip := NewInterpolator(src)

	got, err := ip.AnchorPoints(context.Background(), Fresh)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].TemperatureC.Equal(dec("0")))
	assert.True(t, got[1].TemperatureC.Equal(dec("10")))
	assert.True(t, got[2].TemperatureC.Equal(dec("20")))

	// Sorting must not reorder the source's own slice.
	assert.True(t, src.anchors[Fresh][0].TemperatureC.Equal(dec("20")))
}

func TestAllAnchorPoints(t *testing.T) {
	ip := NewInterpolator(newStubSource())

	got, err := ip.AllAnchorPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 6)

	for i, want := range []Medium{Fresh, Fresh, Fresh, Sea, Sea, Sea} {
		assert.Equal(t, want, got[i].Medium, "row %d", i)
	}
	assert.True(t, got[0].TemperatureC.Equal(dec("0")))
	assert.True(t, got[2].TemperatureC.Equal(dec("20")))
	assert.True(t, got[3].TemperatureC.Equal(dec("0")))
	assert.True(t, got[5].TemperatureC.Equal(dec("20")))
}

func TestCheckReadiness(t *testing.T) {
	t.Run("both media populated", func(t *testing.T) {
		ip := NewInterpolator(newStubSource())
		assert.NoError(t, ip.CheckReadiness(context.Background()))
	})

	t.Run("source failure", func(t *testing.T) {
		sentinel := errors.New("boom")
		ip := NewInterpolator(&stubSource{err: sentinel})
		assert.ErrorIs(t, ip.CheckReadiness(context.Background()), sentinel)
	})

	t.Run("missing medium", func(t *testing.T) {
		src := newStubSource()
		delete(src.anchors, Sea)
		ip := NewInterpolator(src)

		err := ip.CheckReadiness(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sea water")
	})
}

func TestMediumForSalinity(t *testing.T) {
	tests := []struct {
		salinity string
		want     Medium
	}{
		{"0", Fresh},
		{"0.5", Fresh},
		{"0.999", Fresh},
		{"1", Sea},
		{"35", Sea},
		{"40", Sea},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MediumForSalinity(dec(tt.salinity)), "salinity %s", tt.salinity)
	}
}

func TestParseMedium(t *testing.T) {
	got, err := ParseMedium("fresh")
	require.NoError(t, err)
	assert.Equal(t, Fresh, got)

	got, err = ParseMedium("Sea")
	require.NoError(t, err)
	assert.Equal(t, Sea, got)

	_, err = ParseMedium("brackish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"brackish"`)
}

// stubSource serves a reduced anchor table and records how often it is
// consulted.
type stubSource struct {
	anchors map[Medium][]AnchorPoint
	err     error
	calls   int
}

func newStubSource() *stubSource {
	return &stubSource{anchors: map[Medium][]AnchorPoint{
		Fresh: {
			anchor(Fresh, "0", "999.8", "1.79e-6"),
			anchor(Fresh, "10", "999.7", "1.31e-6"),
			anchor(Fresh, "20", "998.2", "1.00e-6"),
		},
		Sea: {
			anchor(Sea, "0", "1028.1", "1.828e-6"),
			anchor(Sea, "10", "1026.9", "1.356e-6"),
			anchor(Sea, "20", "1024.7", "1.054e-6"),
		},
	}}
}

func (s *stubSource) FetchAnchorPoints(_ context.Context, medium Medium) ([]AnchorPoint, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.anchors[medium], nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
