package params

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/cometgo/internal/catalog"
	"github.com/vk/cometgo/internal/version"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Entry is a stored parameter value.
type Entry struct {
	Raw   string
	Value cty.Value
}

// Params is the search-parameter set. It is not safe for concurrent writes;
// the search manager only reads it once a search starts.
type Params struct {
	cat     *catalog.Catalog
	entries map[string]Entry
}

// New returns a parameter set seeded with every catalog default and the
// catalog's enzyme table.
func New(cat *catalog.Catalog) (*Params, error) {
	p := &Params{cat: cat, entries: make(map[string]Entry)}
	for _, def := range cat.Params() {
		v, raw, err := parseValue(def.Kind, def.Default)
		if err != nil {
			return nil, fmt.Errorf("invalid default for %q: %w", def.Name, err)
		}
		if err := p.store(def.StoreName(), raw, v); err != nil {
			return nil, err
		}
	}
	if err := p.store(VersionKey, version.Release, version.Release); err != nil {
		return nil, err
	}

	info, table, err := defaultEnzymeInfo(p, cat)
	if err != nil {
		return nil, err
	}
	if err := p.store(EnzymeInfoKey, table, info); err != nil {
		return nil, err
	}
	return p, nil
}

// Catalog returns the allow-list the set was built from.
func (p *Params) Catalog() *catalog.Catalog {
	return p.cat
}

// Set parses raw according to the catalog kind of name and stores it.
func (p *Params) Set(name, raw string) error {
	def, ok := p.cat.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	v, norm, err := parseValue(def.Kind, raw)
	if err != nil {
		return fmt.Errorf("parameter %s: %w", name, err)
	}
	v, norm = clampMin(def, v, norm)
	return p.store(def.StoreName(), norm, v)
}

// clampMin raises a double below the parameter's floor to the floor.
func clampMin(def *catalog.Param, v any, norm string) (any, string) {
	f, ok := v.(float64)
	if !ok || def.Min == nil || f >= *def.Min {
		return v, norm
	}
	return *def.Min, formatFloat(*def.Min)
}

// SetValue stores a Go value under name with raw as its text form. The value
// must be representable in cty (ints, floats, strings, slices and the
// structs of this package).
func (p *Params) SetValue(name, raw string, v any) error {
	return p.store(name, raw, v)
}

func (p *Params) store(name, raw string, v any) error {
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return fmt.Errorf("parameter %s: %w", name, err)
	}
	val, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return fmt.Errorf("parameter %s: %w", name, err)
	}
	p.entries[name] = Entry{Raw: raw, Value: val}
	return nil
}

// Lookup returns the entry stored under name.
func (p *Params) Lookup(name string) (Entry, bool) {
	e, ok := p.entries[name]
	return e, ok
}

// Raw returns the normalized text of name, or "" when unset.
func (p *Params) Raw(name string) string {
	return p.entries[name].Raw
}

// Names returns every stored key in sorted order.
func (p *Params) Names() []string {
	names := make([]string, 0, len(p.entries))
	for n := range p.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the text form of every stored value.
func (p *Params) Snapshot() map[string]string {
	out := make(map[string]string, len(p.entries))
	for n, e := range p.entries {
		out[n] = e.Raw
	}
	return out
}

// Get decodes the value stored under name into T, converting between cty
// types where possible.
func Get[T any](p *Params, name string) (T, error) {
	var out T
	e, ok := p.entries[name]
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	ty, err := gocty.ImpliedType(out)
	if err != nil {
		return out, fmt.Errorf("parameter %s: %w", name, err)
	}
	val, err := convert.Convert(e.Value, ty)
	if err != nil {
		return out, fmt.Errorf("parameter %s: cannot convert %s to %s: %w", name, e.Value.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return out, fmt.Errorf("parameter %s: %w", name, err)
	}
	return out, nil
}

// defaultEnzymeInfo resolves the catalog's enzyme table against the enzyme
// numbers already stored in p.
func defaultEnzymeInfo(p *Params, cat *catalog.Catalog) (EnzymeInfo, string, error) {
	var table strings.Builder
	rows := make(map[int]Enzyme, len(cat.Enzymes))
	for _, e := range cat.Enzymes {
		table.WriteString(e.Line())
		table.WriteString("\n")
		rows[e.Number] = Enzyme{Number: e.Number, Name: e.Name, Offset: e.Offset, Cut: e.Cut, NoCut: e.NoCut}
	}
	sel, err := selectedEnzymes(p)
	if err != nil {
		return EnzymeInfo{}, "", err
	}
	info := EnzymeInfo{AllowedMissedCleavage: sel.missedCleavages}
	var ok bool
	if info.Search, ok = rows[sel.search]; !ok {
		return info, "", fmt.Errorf("%w: search_enzyme_number %d", ErrMissingEnzyme, sel.search)
	}
	if info.Search2, ok = rows[sel.search2]; !ok {
		return info, "", fmt.Errorf("%w: search_enzyme2_number %d", ErrMissingEnzyme, sel.search2)
	}
	if info.Sample, ok = rows[sel.sample]; !ok {
		return info, "", fmt.Errorf("%w: sample_enzyme_number %d", ErrMissingEnzyme, sel.sample)
	}
	return info, table.String(), nil
}

type enzymeSelection struct {
	search, search2, sample, missedCleavages int
}

func selectedEnzymes(p *Params) (enzymeSelection, error) {
	var sel enzymeSelection
	var err error
	if sel.search, err = Get[int](p, "search_enzyme_number"); err != nil {
		return sel, err
	}
	if sel.search2, err = Get[int](p, "search_enzyme2_number"); err != nil {
		return sel, err
	}
	if sel.sample, err = Get[int](p, "sample_enzyme_number"); err != nil {
		return sel, err
	}
	if sel.missedCleavages, err = Get[int](p, "allowed_missed_cleavage"); err != nil {
		return sel, err
	}
	return sel, nil
}
