package water

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Medium identifies the kind of water a property lookup refers to.
type Medium string

const (
	Fresh Medium = "fresh"
	Sea   Medium = "sea"
)

// Units of the property values carried by [AnchorPoint] and [Properties].
const (
	DensityUnit   = "kg/m³"
	ViscosityUnit = "m²/s"
)

var (
	// MinTemperatureC and MaxTemperatureC bound the supported lookup
	// domain. Temperatures outside it fail with [RangeError] before any
	// anchor points are fetched.
	MinTemperatureC = decimal.NewFromInt(0)
	MaxTemperatureC = decimal.NewFromInt(30)

	// DefaultSalinityPSU is standard sea water, used when a caller does
	// not supply a salinity.
	DefaultSalinityPSU = decimal.NewFromInt(35)

	// freshSalinityLimit splits fresh from sea water.
	freshSalinityLimit = decimal.NewFromInt(1)
)

// MediumForSalinity classifies water by salinity: below 1 PSU is fresh,
// everything else is sea.
func MediumForSalinity(salinityPSU decimal.Decimal) Medium {
	if salinityPSU.LessThan(freshSalinityLimit) {
		return Fresh
	}
	return Sea
}

// ParseMedium converts user input ("fresh", "sea", any case) to a
// Medium.
func ParseMedium(s string) (Medium, error) {
	switch Medium(strings.ToLower(s)) {
	case Fresh:
		return Fresh, nil
	case Sea:
		return Sea, nil
	}
	return "", fmt.Errorf("unknown water medium %q", s)
}

// AnchorPoint is one tabulated row of water properties at an exact
// temperature.
type AnchorPoint struct {
	Medium             Medium          `json:"medium"`
	TemperatureC       decimal.Decimal `json:"temperature_c"`
	Density            decimal.Decimal `json:"density"`
	KinematicViscosity decimal.Decimal `json:"kinematic_viscosity"`
}

// Properties is the result of a water property lookup.
//
// Density is in kg/m³ and KinematicViscosity in m²/s; the unit fields
// repeat that so serialized results are self-describing. Source names
// where the values came from: the reference standard for an exact
// anchor hit, or the bounding anchor temperatures for an interpolated
// result.
type Properties struct {
	Medium             Medium          `json:"medium"`
	TemperatureC       decimal.Decimal `json:"temperature_c"`
	SalinityPSU        decimal.Decimal `json:"salinity_psu"`
	Density            decimal.Decimal `json:"density"`
	DensityUnit        string          `json:"density_unit"`
	KinematicViscosity decimal.Decimal `json:"kinematic_viscosity"`
	ViscosityUnit      string          `json:"viscosity_unit"`
	Interpolated       bool            `json:"interpolated"`
	Source             string          `json:"source"`
}

// AnchorSource supplies the anchor points for a medium. Implementations
// may return the rows in any order; callers sort. The in-memory and
// postgres stores in internal/anchorstore implement this.
type AnchorSource interface {
	FetchAnchorPoints(ctx context.Context, medium Medium) ([]AnchorPoint, error)
}
