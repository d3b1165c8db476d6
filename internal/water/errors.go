package water

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RangeError reports a lookup temperature outside the supported domain.
type RangeError struct {
	TemperatureC decimal.Decimal
	MinC         decimal.Decimal
	MaxC         decimal.Decimal
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("temperature %s°C outside supported range %s°C to %s°C",
		e.TemperatureC, e.MinC, e.MaxC)
}

// LookupError reports that the anchor table cannot answer an in-range
// lookup: the table is empty, or no anchors bracket the temperature.
type LookupError struct {
	Medium       Medium
	TemperatureC decimal.Decimal
	Reason       string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s water properties at %s°C: %s", e.Medium, e.TemperatureC, e.Reason)
}

// IsRangeError reports whether err is a *RangeError.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

// IsLookupError reports whether err is a *LookupError.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}
