package units

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// DefaultLocale is the catalog's fallback locale. Every localized string
// in a valid definition carries an entry for it.
const DefaultLocale = "en"

// factorTolerance bounds |f(A→B)·f(B→A) − 1| for every registered factor
// pair.
var factorTolerance = decimal.New(1, -6)

type unit struct {
	id       string
	base     bool
	symbol   map[string]string
	singular map[string]string
	plural   map[string]string
	factor   decimal.Decimal // multiplier to the base unit, non-base only
	baseUnit string
}

type system struct {
	id          SystemID
	isDefault   bool
	name        map[string]string
	description map[string]string
	units       map[CategoryID][]unit
	base        map[CategoryID]*unit
}

type factorKey struct {
	from string // base unit id in the source system
	to   string
}

// Registry is the validated, immutable unit catalog. It is constructed
// once (NewRegistry or Default) and passed by reference into converters
// and handlers; concurrent reads need no locking.
type Registry struct {
	categoryOrder []CategoryID
	categoryNames map[CategoryID]map[string]string
	systems       map[SystemID]*system
	systemOrder   []SystemID
	defaultSystem SystemID
	factors       map[factorKey]decimal.Decimal

	// locale matching: locales[i] is the catalog key for matcher tag i.
	locales []string
	matcher language.Matcher
}

// SystemInfo is the localized read-only view of a unit system.
type SystemInfo struct {
	ID          SystemID     `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Default     bool         `json:"default"`
	Categories  []CategoryID `json:"categories"`
}

// NewRegistry validates def and builds a registry from it. Any invariant
// violation returns a ConfigurationError and no registry: an incomplete
// system/category matrix must fail at startup, not at call time.
func NewRegistry(def Definition) (*Registry, error) {
	if len(def.Categories) == 0 {
		return nil, configErrorf("no categories defined")
	}
	if len(def.Systems) == 0 {
		return nil, configErrorf("no unit systems defined")
	}

	r := &Registry{
		categoryNames: make(map[CategoryID]map[string]string, len(def.Categories)),
		systems:       make(map[SystemID]*system, len(def.Systems)),
		factors:       make(map[factorKey]decimal.Decimal, len(def.Factors)),
	}

	for _, c := range def.Categories {
		if c.ID == "" {
			return nil, configErrorf("category with empty id")
		}
		if _, dup := r.categoryNames[c.ID]; dup {
			return nil, configErrorf("duplicate category %q", c.ID)
		}
		if err := requireLocalized(c.Name, "category", string(c.ID), "name"); err != nil {
			return nil, err
		}
		r.categoryOrder = append(r.categoryOrder, c.ID)
		r.categoryNames[c.ID] = c.Name
	}

	if err := r.buildSystems(def.Systems); err != nil {
		return nil, err
	}
	if err := r.buildFactors(def.Factors); err != nil {
		return nil, err
	}
	if err := r.buildLocaleMatcher(def); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) buildSystems(defs []SystemDef) error {
	for _, sd := range defs {
		if sd.ID == "" {
			return configErrorf("unit system with empty id")
		}
		if _, dup := r.systems[sd.ID]; dup {
			return configErrorf("duplicate unit system %q", sd.ID)
		}
		if err := requireLocalized(sd.Name, "unit system", string(sd.ID), "name"); err != nil {
			return err
		}
		if err := requireLocalized(sd.Description, "unit system", string(sd.ID), "description"); err != nil {
			return err
		}
		if sd.Default {
			if r.defaultSystem != "" {
				return configErrorf("multiple default unit systems: %q and %q", r.defaultSystem, sd.ID)
			}
			r.defaultSystem = sd.ID
		}

		sys := &system{
			id:          sd.ID,
			isDefault:   sd.Default,
			name:        sd.Name,
			description: sd.Description,
			units:       make(map[CategoryID][]unit, len(r.categoryOrder)),
			base:        make(map[CategoryID]*unit, len(r.categoryOrder)),
		}
		for cat := range sd.Units {
			if _, known := r.categoryNames[cat]; !known {
				return configErrorf("unit system %q defines unknown category %q", sd.ID, cat)
			}
		}
		for _, cat := range r.categoryOrder {
			built, err := buildCategoryUnits(sd.ID, cat, sd.Units[cat])
			if err != nil {
				return err
			}
			sys.units[cat] = built
			for i := range built {
				if built[i].base {
					sys.base[cat] = &built[i]
				}
			}
		}
		r.systems[sd.ID] = sys
		r.systemOrder = append(r.systemOrder, sd.ID)
	}

	if r.defaultSystem == "" {
		return configErrorf("no default unit system")
	}
	return nil
}

func buildCategoryUnits(sysID SystemID, cat CategoryID, defs []UnitDef) ([]unit, error) {
	if len(defs) == 0 {
		return nil, configErrorf("unit system %q has no units for category %q", sysID, cat)
	}

	units := make([]unit, 0, len(defs))
	var baseID string
	for _, ud := range defs {
		if ud.ID == "" {
			return nil, configErrorf("unit system %q category %q has a unit with empty id", sysID, cat)
		}
		for _, m := range []struct {
			field string
			value map[string]string
		}{
			{"symbol", ud.Symbol},
			{"singular name", ud.Singular},
			{"plural name", ud.Plural},
		} {
			if err := requireLocalized(m.value, "unit", ud.ID, m.field); err != nil {
				return nil, err
			}
		}

		u := unit{
			id:       ud.ID,
			base:     ud.Base,
			symbol:   ud.Symbol,
			singular: ud.Singular,
			plural:   ud.Plural,
			baseUnit: ud.BaseUnit,
		}
		if ud.Base {
			if baseID != "" {
				return nil, configErrorf("unit system %q category %q has multiple base units: %q and %q", sysID, cat, baseID, ud.ID)
			}
			baseID = ud.ID
			if ud.Factor != "" {
				return nil, configErrorf("base unit %q must not declare a factor", ud.ID)
			}
		} else {
			f, err := parsePositiveDecimal(ud.Factor)
			if err != nil {
				return nil, configErrorf("unit %q factor: %v", ud.ID, err)
			}
			u.factor = f
		}
		units = append(units, u)
	}
	if baseID == "" {
		return nil, configErrorf("unit system %q category %q has no base unit", sysID, cat)
	}
	for _, u := range units {
		if !u.base && u.baseUnit != baseID {
			return nil, configErrorf("unit %q references base unit %q, want %q", u.id, u.baseUnit, baseID)
		}
	}
	return units, nil
}

func (r *Registry) buildFactors(defs []FactorDef) error {
	one := decimal.NewFromInt(1)

	for _, fd := range defs {
		if _, known := r.categoryNames[fd.Category]; !known {
			return configErrorf("factor %s→%s references unknown category %q", fd.From, fd.To, fd.Category)
		}
		if fd.From == fd.To {
			return configErrorf("factor %s→%s maps a unit onto itself", fd.From, fd.To)
		}
		if !r.isBaseUnit(fd.Category, fd.From) || !r.isBaseUnit(fd.Category, fd.To) {
			return configErrorf("factor %s→%s must connect base units of category %q", fd.From, fd.To, fd.Category)
		}
		v, err := parsePositiveDecimal(fd.Value)
		if err != nil {
			return configErrorf("factor %s→%s: %v", fd.From, fd.To, err)
		}
		key := factorKey{from: fd.From, to: fd.To}
		if _, dup := r.factors[key]; dup {
			return configErrorf("duplicate factor %s→%s", fd.From, fd.To)
		}
		r.factors[key] = v
	}

	// Every forward entry needs an inverse whose product round-trips to 1.
	for key, fwd := range r.factors {
		rev, ok := r.factors[factorKey{from: key.to, to: key.from}]
		if !ok {
			return configErrorf("factor %s→%s has no inverse entry", key.from, key.to)
		}
		if fwd.Mul(rev).Sub(one).Abs().GreaterThan(factorTolerance) {
			return configErrorf("factor pair %s↔%s breaks round-trip symmetry: product %s", key.from, key.to, fwd.Mul(rev))
		}
	}
	return nil
}

func (r *Registry) isBaseUnit(cat CategoryID, unitID string) bool {
	for _, sys := range r.systems {
		if b := sys.base[cat]; b != nil && b.id == unitID {
			return true
		}
	}
	return false
}

func (r *Registry) buildLocaleMatcher(def Definition) error {
	seen := map[string]bool{DefaultLocale: true}
	collect := func(m map[string]string) {
		for loc := range m {
			seen[loc] = true
		}
	}
	for _, c := range def.Categories {
		collect(c.Name)
	}
	for _, s := range def.Systems {
		collect(s.Name)
		collect(s.Description)
		for _, uds := range s.Units {
			for _, ud := range uds {
				collect(ud.Symbol)
				collect(ud.Singular)
				collect(ud.Plural)
			}
		}
	}

	locales := make([]string, 0, len(seen))
	for loc := range seen {
		if loc != DefaultLocale {
			locales = append(locales, loc)
		}
	}
	slices.Sort(locales)
	r.locales = append([]string{DefaultLocale}, locales...)

	tags := make([]language.Tag, len(r.locales))
	for i, loc := range r.locales {
		tag, err := language.Parse(loc)
		if err != nil {
			return configErrorf("catalog locale %q: %v", loc, err)
		}
		tags[i] = tag
	}
	r.matcher = language.NewMatcher(tags)
	return nil
}

// resolveLocale maps a requested locale to a catalog locale key. Unknown
// but well-formed locales match to DefaultLocale; a tag that cannot be
// parsed has no fallback and is a ConfigurationError. The empty string
// means DefaultLocale.
func (r *Registry) resolveLocale(locale string) (string, error) {
	if locale == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", configErrorf("locale %q has no fallback: %v", locale, err)
	}
	_, idx, _ := r.matcher.Match(tag)
	return r.locales[idx], nil
}

// localeOrDefault resolves a locale for accessors that must never fail on
// locale problems: anything unresolvable falls back to DefaultLocale.
func (r *Registry) localeOrDefault(locale string) string {
	loc, err := r.resolveLocale(locale)
	if err != nil {
		return DefaultLocale
	}
	return loc
}

func pickLocalized(m map[string]string, locale string) string {
	if s, ok := m[locale]; ok {
		return s
	}
	return m[DefaultLocale]
}

func requireLocalized(m map[string]string, kind, id, field string) error {
	if strings.TrimSpace(m[DefaultLocale]) == "" {
		return configErrorf("%s %q has no %q %s", kind, id, DefaultLocale, field)
	}
	return nil
}

// ListSystems returns the localized view of every unit system in catalog
// order. It fails only when the requested locale cannot be resolved to any
// fallback.
func (r *Registry) ListSystems(locale string) ([]SystemInfo, error) {
	loc, err := r.resolveLocale(locale)
	if err != nil {
		return nil, err
	}
	infos := make([]SystemInfo, 0, len(r.systemOrder))
	for _, id := range r.systemOrder {
		infos = append(infos, r.systemInfo(r.systems[id], loc))
	}
	return infos, nil
}

// System returns the localized view of one unit system.
func (r *Registry) System(systemID SystemID, locale string) (SystemInfo, error) {
	sys, ok := r.systems[systemID]
	if !ok {
		return SystemInfo{}, &NotFoundError{Kind: "unit system", ID: string(systemID)}
	}
	loc, err := r.resolveLocale(locale)
	if err != nil {
		return SystemInfo{}, err
	}
	return r.systemInfo(sys, loc), nil
}

func (r *Registry) systemInfo(sys *system, locale string) SystemInfo {
	return SystemInfo{
		ID:          sys.id,
		Name:        pickLocalized(sys.name, locale),
		Description: pickLocalized(sys.description, locale),
		Default:     sys.isDefault,
		Categories:  slices.Clone(r.categoryOrder),
	}
}

// UnitSymbol returns the localized symbol of the base unit for (system,
// category). Locale misses fall back to DefaultLocale and never fail.
func (r *Registry) UnitSymbol(systemID SystemID, categoryID CategoryID, locale string) (string, error) {
	base, err := r.baseUnit(systemID, categoryID)
	if err != nil {
		return "", err
	}
	return pickLocalized(base.symbol, r.localeOrDefault(locale)), nil
}

// UnitName returns the localized singular or plural name of the base unit
// for (system, category). Locale misses fall back to DefaultLocale and
// never fail.
func (r *Registry) UnitName(systemID SystemID, categoryID CategoryID, locale string, plural bool) (string, error) {
	base, err := r.baseUnit(systemID, categoryID)
	if err != nil {
		return "", err
	}
	loc := r.localeOrDefault(locale)
	if plural {
		return pickLocalized(base.plural, loc), nil
	}
	return pickLocalized(base.singular, loc), nil
}

// CategoryName returns the localized display name of a category. Locale
// misses fall back to DefaultLocale and never fail.
func (r *Registry) CategoryName(categoryID CategoryID, locale string) (string, error) {
	names, ok := r.categoryNames[categoryID]
	if !ok {
		return "", &NotFoundError{Kind: "category", ID: string(categoryID)}
	}
	return pickLocalized(names, r.localeOrDefault(locale)), nil
}

// DefaultSystem returns the id of the system flagged as default.
func (r *Registry) DefaultSystem() SystemID {
	return r.defaultSystem
}

// Systems returns the system ids in catalog order.
func (r *Registry) Systems() []SystemID {
	return slices.Clone(r.systemOrder)
}

// Categories returns the category ids in catalog order.
func (r *Registry) Categories() []CategoryID {
	return slices.Clone(r.categoryOrder)
}

func (r *Registry) baseUnit(systemID SystemID, categoryID CategoryID) (*unit, error) {
	sys, ok := r.systems[systemID]
	if !ok {
		return nil, &NotFoundError{Kind: "unit system", ID: string(systemID)}
	}
	if _, known := r.categoryNames[categoryID]; !known {
		return nil, &NotFoundError{Kind: "category", ID: string(categoryID)}
	}
	return sys.base[categoryID], nil
}

// factorFor resolves the registered multiplier between the base units of
// (from, category) and (to, category). ok is false for any triple without
// a registered factor, including unknown systems or categories.
func (r *Registry) factorFor(from, to SystemID, category CategoryID) (decimal.Decimal, bool) {
	fromSys, ok := r.systems[from]
	if !ok {
		return decimal.Decimal{}, false
	}
	toSys, ok := r.systems[to]
	if !ok {
		return decimal.Decimal{}, false
	}
	fromBase := fromSys.base[category]
	toBase := toSys.base[category]
	if fromBase == nil || toBase == nil {
		return decimal.Decimal{}, false
	}
	f, ok := r.factors[factorKey{from: fromBase.id, to: toBase.id}]
	return f, ok
}

func parsePositiveDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("value %s is not positive", s)
	}
	return d, nil
}
