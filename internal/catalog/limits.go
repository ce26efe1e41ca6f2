package catalog

import "github.com/zclconf/go-cty/cty"

// Build limits shared by the template comments and the search manager.
const (
	MaxThreads         = 128
	MinPeptideLen      = 1
	MaxPeptideLen      = 63
	MaxFragmentCharge  = 5
	MaxPrecursorCharge = 9
	MaxVariableMods    = 15
)

// limitVariables exposes the limits to comment templates.
func limitVariables() map[string]cty.Value {
	return map[string]cty.Value{
		"max_threads":          cty.NumberIntVal(MaxThreads),
		"min_peptide_len":      cty.NumberIntVal(MinPeptideLen),
		"max_peptide_len":      cty.NumberIntVal(MaxPeptideLen),
		"max_fragment_charge":  cty.NumberIntVal(MaxFragmentCharge),
		"max_precursor_charge": cty.NumberIntVal(MaxPrecursorCharge),
		"max_variable_mods":    cty.NumberIntVal(MaxVariableMods),
	}
}
