package units

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformanceVector(t *testing.T) {
	cases := ConformanceVector(Default())

	t.Run("covers every category in both directions", func(t *testing.T) {
		type pair struct {
			from, to SystemID
			category CategoryID
		}
		seen := map[pair]int{}
		for _, c := range cases {
			seen[pair{c.From, c.To, c.Category}]++
		}
		for _, cat := range Default().Categories() {
			assert.Positive(t, seen[pair{SI, Imperial, cat}], "missing SI→Imperial %s", cat)
			assert.Positive(t, seen[pair{Imperial, SI, cat}], "missing Imperial→SI %s", cat)
		}
	})

	t.Run("identity rows expect their input", func(t *testing.T) {
		var identityRows int
		for _, c := range cases {
			if c.From == c.To {
				identityRows++
				assert.Equal(t, c.Value, c.Expected)
			}
		}
		assert.Equal(t, 2, identityRows)
	})

	t.Run("unregistered-pair row expects its input", func(t *testing.T) {
		var found bool
		for _, c := range cases {
			if c.Category == "Speed" {
				found = true
				assert.Equal(t, c.Value, c.Expected)
			}
		}
		assert.True(t, found)
	})

	t.Run("replays through the engine", func(t *testing.T) {
		conv := NewConverter(Default(), nil)
		for _, c := range cases {
			v := decimal.RequireFromString(c.Value)
			got := conv.Convert(v, c.From, c.To, c.Category)
			assert.Equal(t, c.Expected, got.String(),
				"%s %s→%s %s", c.Value, c.From, c.To, c.Category)
		}
	})
}

func TestConformanceJSONGolden(t *testing.T) {
	data, err := ConformanceJSON(Default())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "conformance_vector", data)
}
