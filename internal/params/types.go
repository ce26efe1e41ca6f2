package params

// IntRange is an inclusive integer interval such as scan_range.
type IntRange struct {
	Start int `cty:"start"`
	End   int `cty:"end"`
}

// DoubleRange is an inclusive interval of masses or m/z values.
type DoubleRange struct {
	Start float64 `cty:"start"`
	End   float64 `cty:"end"`
}

// VarMod is one variable modification slot:
//
//	<mass> <residues> <binary> <[min,]max> <term_distance> <which_term> <required> <neutral_loss>
type VarMod struct {
	Mass          float64 `cty:"mass"`
	Residues      string  `cty:"residues"`
	BinaryMod     int     `cty:"binary_mod"`
	MinPerPeptide int     `cty:"min_per_peptide"`
	MaxPerPeptide int     `cty:"max_per_peptide"`
	TermDistance  int     `cty:"term_distance"`
	WhichTerm     int     `cty:"which_term"`
	Required      int     `cty:"required"`
	NeutralLoss   float64 `cty:"neutral_loss"`
}

// Enzyme is one selected row of the enzyme table.
type Enzyme struct {
	Number int    `cty:"number"`
	Name   string `cty:"name"`
	Offset int    `cty:"offset"`
	Cut    string `cty:"cut"`
	NoCut  string `cty:"no_cut"`
}

// EnzymeInfo is the resolved enzyme configuration of a search.
type EnzymeInfo struct {
	Search                Enzyme `cty:"search"`
	Search2               Enzyme `cty:"search2"`
	Sample                Enzyme `cty:"sample"`
	AllowedMissedCleavage int    `cty:"allowed_missed_cleavage"`
}

// Keys of entries that are not catalog parameters.
const (
	VersionKey    = "# comet_version"
	EnzymeInfoKey = "[COMET_ENZYME_INFO]"
)
