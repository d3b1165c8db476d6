package units

import "github.com/shopspring/decimal"

// DefaultDecimals is the fractional digit count used when the caller does
// not specify one.
const DefaultDecimals = 2

// FormatValue renders value followed by the base-unit symbol for (system,
// category), e.g. "10.00 m". decimals < 0 selects DefaultDecimals.
// Rounding is half-away-from-zero; no thousands separators; the decimal
// separator is "." in every locale. The locale affects only the symbol
// lookup and follows UnitSymbol's fallback rules.
func (c *Converter) FormatValue(value decimal.Decimal, system SystemID, category CategoryID, locale string, decimals int) (string, error) {
	symbol, err := c.reg.UnitSymbol(system, category, locale)
	if err != nil {
		return "", err
	}
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	return value.StringFixed(int32(decimals)) + " " + symbol, nil
}
