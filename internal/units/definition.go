package units

// SystemID identifies a unit system. The set is closed for this domain:
// calculations run in SI or Imperial, nothing else.
type SystemID string

const (
	SI       SystemID = "SI"
	Imperial SystemID = "Imperial"
)

// CategoryID identifies a physical quantity kind.
type CategoryID string

const (
	Length          CategoryID = "Length"
	Mass            CategoryID = "Mass"
	Area            CategoryID = "Area"
	Volume          CategoryID = "Volume"
	Density         CategoryID = "Density"
	MomentOfInertia CategoryID = "MomentOfInertia"
)

// Definition is the serialized form of a unit catalog. The canonical
// definition ships embedded in this package as catalog.yaml; tests build
// smaller ones inline. NewRegistry validates a Definition in full before
// any of it becomes visible.
type Definition struct {
	Categories []CategoryDef `yaml:"categories"`
	Systems    []SystemDef   `yaml:"systems"`
	Factors    []FactorDef   `yaml:"factors"`
}

// CategoryDef names a category and its localized display names. Category
// display names are system-independent.
type CategoryDef struct {
	ID   CategoryID        `yaml:"id"`
	Name map[string]string `yaml:"name"`
}

// SystemDef declares one unit system and the units it provides per
// category. Every system must provide units for every declared category.
type SystemDef struct {
	ID          SystemID                 `yaml:"id"`
	Default     bool                     `yaml:"default"`
	Name        map[string]string        `yaml:"name"`
	Description map[string]string        `yaml:"description"`
	Units       map[CategoryID][]UnitDef `yaml:"units"`
}

// UnitDef declares one unit. Exactly one unit per (system, category) is
// the base; non-base units carry a positive factor to their base unit.
type UnitDef struct {
	ID       string            `yaml:"id"`
	Base     bool              `yaml:"base,omitempty"`
	Symbol   map[string]string `yaml:"symbol"`
	Singular map[string]string `yaml:"singular"`
	Plural   map[string]string `yaml:"plural"`
	Factor   string            `yaml:"factor,omitempty"`
	BaseUnit string            `yaml:"base_unit,omitempty"`
}

// FactorDef registers a direct base-unit-to-base-unit multiplier used for
// system-to-system conversion in one category. Every entry needs a
// registered inverse.
type FactorDef struct {
	Category CategoryID `yaml:"category"`
	From     string     `yaml:"from"`
	To       string     `yaml:"to"`
	Value    string     `yaml:"value"`
}
