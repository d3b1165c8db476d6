package units

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ParseDefinition decodes a YAML catalog definition. Decoding performs no
// validation; pass the result to NewRegistry.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse unit catalog: %w", err)
	}
	return def, nil
}

var defaultRegistry = sync.OnceValue(buildDefaultRegistry)

func buildDefaultRegistry() *Registry {
	def, err := ParseDefinition(catalogYAML)
	if err != nil {
		panic("units: embedded catalog: " + err.Error())
	}
	reg, err := NewRegistry(def)
	if err != nil {
		panic("units: embedded catalog: " + err.Error())
	}
	return reg
}

// Default returns the registry built from the embedded canonical catalog.
// It is constructed once, is immutable, and is safe for concurrent use.
// Callers receive the registry by reference and hand it to the engines
// that need it; nothing in this package reads it ambiently.
func Default() *Registry {
	return defaultRegistry()
}
