package water

import "github.com/shopspring/decimal"

// ReferenceStandard names the publication the anchor table is taken
// from. It appears verbatim in [Properties.Source].
const ReferenceStandard = "ITTC 7.5-02-01-03"

// DefaultAnchorPoints returns the built-in anchor table: the fresh
// water and 35 PSU sea water rows of ITTC 7.5-02-01-03 at 5 °C steps,
// ordered by medium then temperature. Each call returns a fresh slice.
func DefaultAnchorPoints() []AnchorPoint {
	return []AnchorPoint{
		anchor(Fresh, "0", "999.8", "1.787e-6"),
		anchor(Fresh, "5", "1000.0", "1.519e-6"),
		anchor(Fresh, "10", "999.7", "1.307e-6"),
		anchor(Fresh, "15", "999.1", "1.139e-6"),
		anchor(Fresh, "20", "998.2", "1.004e-6"),
		anchor(Fresh, "25", "997.0", "0.893e-6"),
		anchor(Fresh, "30", "995.6", "0.801e-6"),
		anchor(Sea, "0", "1028.1", "1.828e-6"),
		anchor(Sea, "5", "1027.6", "1.561e-6"),
		anchor(Sea, "10", "1026.9", "1.356e-6"),
		anchor(Sea, "15", "1025.9", "1.187e-6"),
		anchor(Sea, "20", "1024.7", "1.054e-6"),
		anchor(Sea, "25", "1023.3", "0.946e-6"),
		anchor(Sea, "30", "1021.7", "0.853e-6"),
	}
}

func anchor(medium Medium, temperatureC, density, viscosity string) AnchorPoint {
	return AnchorPoint{
		Medium:             medium,
		TemperatureC:       decimal.RequireFromString(temperatureC),
		Density:            decimal.RequireFromString(density),
		KinematicViscosity: decimal.RequireFromString(viscosity),
	}
}
