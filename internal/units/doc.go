// Package units holds the unit-system catalog and the conversion engine
// built on it. Every displayed engineering quantity passes through this
// package, so both the catalog data and the arithmetic are treated as
// canonical: the client-side engine is validated against the same
// conformance vector (see [ConformanceVector]).
//
// # Catalog
//
// Two unit systems exist: SI (the default) and Imperial. Every system
// covers the same six physical categories used by the hydrostatic
// calculations: Length, Mass, Area, Volume, Density and MomentOfInertia.
// Each (system, category) pair designates exactly one base unit; the
// system-to-system factor table is keyed by base-unit ids.
//
// The canonical catalog ships embedded as YAML (catalog.yaml) and is
// validated on first use. Factor magnitudes follow NIST SP 811 conversion
// tables, e.g.
//
//	meter → foot   3.28084
//	foot  → meter  0.3048 (exact, international foot)
//
// Every registered A→B factor must have a B→A inverse whose product with
// the forward factor is 1 within 1e-6.
//
// # Numeric representation
//
// Factors and values are decimal (shopspring/decimal), not binary floats,
// so repeated conversions do not accumulate representation error. Display
// rounding is half-away-from-zero via Decimal.StringFixed.
//
// # Locales
//
// Display strings (system names, category names, unit symbols and
// singular/plural names) are keyed by BCP 47 locale. The catalog carries
// "en" and "es"; "en" is the fallback for any locale the catalog does not
// carry. Symbol and name accessors never fail on a locale problem, only on
// unknown system/category ids. ListSystems and System reject a locale only
// when the tag cannot be parsed at all.
//
// # Unknown conversion pairs
//
// Convert returns its input unchanged when no factor is registered for a
// (from, to, category) triple. Calculation callers depend on that identity
// result, so it is not an error; a [FallbackFunc] hook observes every such
// miss for diagnostics.
package units
