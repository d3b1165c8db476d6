package water

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Interpolator answers water property lookups against an anchor table.
// It holds no table itself; anchors come from the source on every
// lookup so stores stay the single owner of the data.
type Interpolator struct {
	source AnchorSource
}

// NewInterpolator returns an Interpolator backed by source.
func NewInterpolator(source AnchorSource) *Interpolator {
	return &Interpolator{source: source}
}

// Properties returns density and kinematic viscosity at temperatureC
// for water of the given salinity. The medium is classified from the
// salinity, the temperature must be within 0-30 °C, and the result is
// either an exact anchor row or a linear interpolation between the two
// nearest anchors (see the package documentation).
func (ip *Interpolator) Properties(ctx context.Context, temperatureC, salinityPSU decimal.Decimal) (Properties, error) {
	medium := MediumForSalinity(salinityPSU)

	if temperatureC.LessThan(MinTemperatureC) || temperatureC.GreaterThan(MaxTemperatureC) {
		return Properties{}, &RangeError{TemperatureC: temperatureC, MinC: MinTemperatureC, MaxC: MaxTemperatureC}
	}

	points, err := ip.anchorsFor(ctx, medium)
	if err != nil {
		return Properties{}, err
	}
	if len(points) == 0 {
		return Properties{}, &LookupError{Medium: medium, TemperatureC: temperatureC, Reason: "no anchor points available"}
	}

	result := Properties{
		Medium:        medium,
		TemperatureC:  temperatureC,
		SalinityPSU:   salinityPSU,
		DensityUnit:   DensityUnit,
		ViscosityUnit: ViscosityUnit,
	}

	// Exact anchor hit: decimal equality, so 10 matches 10.0.
	for _, p := range points {
		if p.TemperatureC.Equal(temperatureC) {
			result.Density = p.Density
			result.KinematicViscosity = p.KinematicViscosity
			result.Source = ReferenceStandard
			return result, nil
		}
	}

	lower, upper, ok := bracket(points, temperatureC)
	if !ok {
		return Properties{}, &LookupError{
			Medium:       medium,
			TemperatureC: temperatureC,
			Reason: fmt.Sprintf("no anchor points bracket %s°C (table covers %s°C to %s°C)",
				temperatureC, points[0].TemperatureC, points[len(points)-1].TemperatureC),
		}
	}

	frac := fraction(lower.TemperatureC, upper.TemperatureC, temperatureC)
	result.Density = lerp(lower.Density, upper.Density, frac)
	result.KinematicViscosity = lerp(lower.KinematicViscosity, upper.KinematicViscosity, frac)
	result.Interpolated = true
	result.Source = fmt.Sprintf("Interpolated between %s°C and %s°C (%s)",
		lower.TemperatureC, upper.TemperatureC, ReferenceStandard)
	return result, nil
}

// SeaWater is Properties at the standard 35 PSU sea water salinity.
func (ip *Interpolator) SeaWater(ctx context.Context, temperatureC decimal.Decimal) (Properties, error) {
	return ip.Properties(ctx, temperatureC, DefaultSalinityPSU)
}

// AnchorPoints returns the anchor table for one medium, ordered by
// temperature.
func (ip *Interpolator) AnchorPoints(ctx context.Context, medium Medium) ([]AnchorPoint, error) {
	return ip.anchorsFor(ctx, medium)
}

// AllAnchorPoints returns the full anchor table, fresh water rows
// first, each medium ordered by temperature.
func (ip *Interpolator) AllAnchorPoints(ctx context.Context) ([]AnchorPoint, error) {
	var all []AnchorPoint
	for _, medium := range []Medium{Fresh, Sea} {
		points, err := ip.anchorsFor(ctx, medium)
		if err != nil {
			return nil, err
		}
		all = append(all, points...)
	}
	return all, nil
}

// CheckReadiness verifies that both media have at least one anchor
// point. Used by the readiness probe.
func (ip *Interpolator) CheckReadiness(ctx context.Context) error {
	for _, medium := range []Medium{Fresh, Sea} {
		points, err := ip.anchorsFor(ctx, medium)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			return fmt.Errorf("no anchor points for %s water", medium)
		}
	}
	return nil
}

func (ip *Interpolator) anchorsFor(ctx context.Context, medium Medium) ([]AnchorPoint, error) {
	points, err := ip.source.FetchAnchorPoints(ctx, medium)
	if err != nil {
		return nil, fmt.Errorf("fetch anchor points for %s water: %w", medium, err)
	}
	points = slices.Clone(points)
	slices.SortFunc(points, func(a, b AnchorPoint) int {
		return a.TemperatureC.Cmp(b.TemperatureC)
	})
	return points, nil
}

// bracket finds the nearest anchors strictly below and strictly above
// t in a temperature-sorted table. ok is false when either side is
// missing.
func bracket(points []AnchorPoint, t decimal.Decimal) (lower, upper AnchorPoint, ok bool) {
	var haveLower, haveUpper bool
	for _, p := range points {
		switch {
		case p.TemperatureC.LessThan(t):
			lower = p
			haveLower = true
		case p.TemperatureC.GreaterThan(t):
			if !haveUpper {
				upper = p
				haveUpper = true
			}
		}
	}
	return lower, upper, haveLower && haveUpper
}

// fraction is the position of t between t0 and t1 as a float64 in (0, 1).
func fraction(t0, t1, t decimal.Decimal) float64 {
	return (t.InexactFloat64() - t0.InexactFloat64()) / (t1.InexactFloat64() - t0.InexactFloat64())
}

// lerp interpolates between a and b in float64 and converts the result
// back to decimal.
func lerp(a, b decimal.Decimal, frac float64) decimal.Decimal {
	af := a.InexactFloat64()
	bf := b.InexactFloat64()
	return decimal.NewFromFloat(af + (bf-af)*frac)
}
