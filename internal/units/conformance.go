package units

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ConformanceCase is one tuple of the conversion test vector shared
// between the server-side engine (this package) and the client-side
// engine. Values and expectations are decimal strings so neither side
// parses through binary floats.
type ConformanceCase struct {
	Value    string     `json:"value"`
	From     SystemID   `json:"from"`
	To       SystemID   `json:"to"`
	Category CategoryID `json:"category"`
	Expected string     `json:"expected"`
}

// conformanceValues are the probe magnitudes applied to every system pair
// and category.
var conformanceValues = []decimal.Decimal{
	decimal.NewFromInt(10),
	decimal.RequireFromString("0.5"),
}

// ConformanceVector derives the shared test vector from reg. The tail rows
// pin the two behaviors both engines must agree on beyond plain factor
// application: identity conversion within one system, and the identity
// result for a triple with no registered factor.
func ConformanceVector(reg *Registry) []ConformanceCase {
	conv := NewConverter(reg, nil)

	systems := reg.Systems()
	var cases []ConformanceCase
	for _, cat := range reg.Categories() {
		for _, from := range systems {
			for _, to := range systems {
				if from == to {
					continue
				}
				for _, v := range conformanceValues {
					cases = append(cases, ConformanceCase{
						Value:    v.String(),
						From:     from,
						To:       to,
						Category: cat,
						Expected: conv.Convert(v, from, to, cat).String(),
					})
				}
			}
		}
	}

	cases = append(cases,
		ConformanceCase{Value: "42.42", From: SI, To: SI, Category: Length, Expected: "42.42"},
		ConformanceCase{Value: "42.42", From: Imperial, To: Imperial, Category: Density, Expected: "42.42"},
		ConformanceCase{Value: "7.5", From: SI, To: Imperial, Category: "Speed", Expected: "7.5"},
	)
	return cases
}

// ConformanceJSON renders the vector as stable, indented JSON suitable for
// checking into both repositories.
func ConformanceJSON(reg *Registry) ([]byte, error) {
	data, err := json.MarshalIndent(ConformanceVector(reg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode conformance vector: %w", err)
	}
	return data, nil
}
