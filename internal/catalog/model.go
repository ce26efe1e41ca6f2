package catalog

import (
	"fmt"
	"strings"
)

// Kind selects the value parser used for a parameter.
type Kind string

const (
	KindInt         Kind = "int"
	KindDouble      Kind = "double"
	KindString      Kind = "string"       // first whitespace-delimited token
	KindPath        Kind = "path"         // whole trimmed value, spaces allowed
	KindIntRange    Kind = "int_range"    // "<start> <end>"
	KindDoubleRange Kind = "double_range" // "<start> <end>"
	KindMassList    Kind = "mass_list"    // zero or more non-negative masses
	KindVarMod      Kind = "varmod"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInt, KindDouble, KindString, KindPath, KindIntRange, KindDoubleRange, KindMassList, KindVarMod:
		return true
	}
	return false
}

// Param describes one recognized parameter.
type Param struct {
	Name     string
	Kind     Kind
	Default  string
	Comment  string
	Notes    []string
	Hidden   bool
	Required bool
	Alias    string
	Gap      bool
	// Min is the floor applied to double values below it.
	Min     *float64
	Section string
}

// StoreName is the key under which the parameter's value is kept.
func (p *Param) StoreName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// Section groups parameters in a template file.
type Section struct {
	ID     string
	Title  string
	Notes  []string
	Params []*Param
}

// Visible returns the parameters written to templates.
func (s *Section) Visible() []*Param {
	var out []*Param
	for _, p := range s.Params {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}

// Enzyme is one row of the default enzyme table.
type Enzyme struct {
	Number int
	Name   string
	Offset int
	Cut    string
	NoCut  string
}

// Line formats the enzyme as a fixed-column table row.
func (e Enzyme) Line() string {
	return fmt.Sprintf("%-4s%-23s%-7d%-12s%s", fmt.Sprintf("%d.", e.Number), e.Name, e.Offset, e.Cut, e.NoCut)
}

// Catalog is the parsed allow-list.
type Catalog struct {
	Sections []*Section
	Enzymes  []Enzyme

	byName map[string]*Param
}

// varModPrefix names the variable modification slots accepted beyond the
// ones declared in params.hcl: the prefix plus any two-byte suffix.
const varModPrefix = "variable_mod"

func isVarModSlot(name string) bool {
	return len(name) == len(varModPrefix)+2 && strings.HasPrefix(name, varModPrefix)
}

// Lookup returns the parameter definition for name. Undeclared variable
// modification slots resolve to a hidden varmod definition.
func (c *Catalog) Lookup(name string) (*Param, bool) {
	if p, ok := c.byName[name]; ok {
		return p, true
	}
	if isVarModSlot(name) {
		return &Param{
			Name:    name,
			Kind:    KindVarMod,
			Default: "0.0 X 0 3 -1 0 0 0.0",
			Hidden:  true,
			Section: "variable_mods",
		}, true
	}
	return nil, false
}

// Params returns every declared parameter in declaration order.
func (c *Catalog) Params() []*Param {
	var out []*Param
	for _, s := range c.Sections {
		out = append(out, s.Params...)
	}
	return out
}

// Required returns the parameters whose absence marks a file as outdated.
func (c *Catalog) Required() []*Param {
	var out []*Param
	for _, p := range c.Params() {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}
