// Package water derives density and kinematic viscosity of fresh and
// sea water from tabulated anchor points.
//
// # Media
//
// Water is classified by salinity in practical salinity units (PSU):
//
//	salinity < 1 PSU  →  fresh
//	salinity ≥ 1 PSU  →  sea
//
// The 1 PSU threshold is the conventional upper limit for fresh water;
// standard sea water is 35 PSU, which is the default when a caller does
// not supply a salinity (see [Interpolator.SeaWater]).
//
// # Anchor points
//
// Property values are anchored to the tabulated fresh and sea water
// rows of ITTC Recommended Procedure 7.5-02-01-03 ("Fresh Water and
// Seawater Properties"), sampled at 5 °C steps. [DefaultAnchorPoints]
// carries the table; deployments that maintain the table elsewhere
// provide it through [AnchorSource].
//
//	Density:              kg/m³
//	Kinematic viscosity:  m²/s
//
// # Interpolation
//
// Lookups are valid for 0-30 °C inclusive. A temperature that equals an
// anchor temperature exactly (decimal equality, so 10 and 10.0 match)
// returns the stored values unchanged. Any other in-range temperature
// is linearly interpolated between the nearest anchors below and above;
// the arithmetic runs in float64 and the result is converted back to
// decimal, so interpolated values are approximations of the published
// table, not authoritative entries. [Properties.Interpolated] records
// which case produced the result.
//
// # Errors
//
// Temperatures outside 0-30 °C fail with [RangeError]. An anchor set
// that is empty, or that does not bracket an in-range temperature,
// fails with [LookupError]. The two are distinct so callers can tell
// "ask a different question" apart from "the table is incomplete".
package water
