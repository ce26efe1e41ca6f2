package params

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/cometgo/internal/catalog"
)

var (
	errMissingValue = errors.New("missing value")

	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ScanInt reads the integer at the start of tok, ignoring trailing text, so
// "20.0" yields 20 and "1." yields 1.
func ScanInt(tok string) (int, error) {
	m := leadingInt.FindString(strings.TrimSpace(tok))
	if m == "" {
		return 0, fmt.Errorf("%q is not an integer", tok)
	}
	return strconv.Atoi(m)
}

// ScanFloat reads the number at the start of tok, ignoring trailing text.
func ScanFloat(tok string) (float64, error) {
	m := leadingFloat.FindString(strings.TrimSpace(tok))
	if m == "" {
		return 0, fmt.Errorf("%q is not a number", tok)
	}
	return strconv.ParseFloat(m, 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// parseValue converts the text to the right of '=' into a Go value of the
// given kind and returns it together with its normalized text form.
func parseValue(kind catalog.Kind, raw string) (any, string, error) {
	fields := strings.Fields(raw)

	switch kind {
	case catalog.KindInt:
		if len(fields) == 0 {
			return nil, "", errMissingValue
		}
		v, err := ScanInt(fields[0])
		if err != nil {
			return nil, "", err
		}
		return v, strconv.Itoa(v), nil

	case catalog.KindDouble:
		if len(fields) == 0 {
			return nil, "", errMissingValue
		}
		v, err := ScanFloat(fields[0])
		if err != nil {
			return nil, "", err
		}
		return v, formatFloat(v), nil

	case catalog.KindString:
		if len(fields) == 0 {
			return "", "", nil
		}
		return fields[0], fields[0], nil

	case catalog.KindPath:
		v := strings.TrimSpace(raw)
		return v, v, nil

	case catalog.KindIntRange:
		if len(fields) == 0 {
			return nil, "", errMissingValue
		}
		var r IntRange
		var err error
		if r.Start, err = ScanInt(fields[0]); err != nil {
			return nil, "", err
		}
		if len(fields) > 1 {
			// An unreadable end is left at zero, matching a partial scanf.
			r.End, _ = ScanInt(fields[1])
		}
		return r, fmt.Sprintf("%d %d", r.Start, r.End), nil

	case catalog.KindDoubleRange:
		if len(fields) == 0 {
			return nil, "", errMissingValue
		}
		var r DoubleRange
		var err error
		if r.Start, err = ScanFloat(fields[0]); err != nil {
			return nil, "", err
		}
		if len(fields) > 1 {
			r.End, _ = ScanFloat(fields[1])
		}
		return r, formatFloat(r.Start) + " " + formatFloat(r.End), nil

	case catalog.KindMassList:
		masses := make([]float64, 0, len(fields))
		for _, tok := range fields {
			m, err := ScanFloat(tok)
			if err != nil {
				return nil, "", err
			}
			if m >= 0 {
				masses = append(masses, m)
			}
		}
		sort.Float64s(masses)
		return masses, strings.Join(fields, " "), nil

	case catalog.KindVarMod:
		vm, err := parseVarMod(fields)
		if err != nil {
			return nil, "", err
		}
		return vm, strings.Join(fields, " "), nil
	}

	return nil, "", fmt.Errorf("unsupported kind %q", kind)
}

// parseVarMod reads a variable modification. Mass and residues are required;
// trailing fields fall back to their defaults when omitted.
func parseVarMod(fields []string) (VarMod, error) {
	vm := VarMod{TermDistance: -1}
	if len(fields) < 2 {
		return vm, fmt.Errorf("variable modification needs at least <mass> <residues>, got %d fields", len(fields))
	}

	var err error
	if vm.Mass, err = ScanFloat(fields[0]); err != nil {
		return vm, fmt.Errorf("mass: %w", err)
	}
	vm.Residues = fields[1]

	ints := []struct {
		idx  int
		name string
		dst  *int
	}{
		{2, "binary_mod", &vm.BinaryMod},
		{4, "term_distance", &vm.TermDistance},
		{5, "which_term", &vm.WhichTerm},
		{6, "required", &vm.Required},
	}
	for _, f := range ints {
		if f.idx >= len(fields) {
			continue
		}
		if *f.dst, err = ScanInt(fields[f.idx]); err != nil {
			return vm, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	if len(fields) > 3 {
		// Either "<max>" or "<min>,<max>".
		if lo, hi, ok := strings.Cut(fields[3], ","); ok {
			if vm.MinPerPeptide, err = ScanInt(lo); err != nil {
				return vm, fmt.Errorf("min_per_peptide: %w", err)
			}
			if vm.MaxPerPeptide, err = ScanInt(hi); err != nil {
				return vm, fmt.Errorf("max_per_peptide: %w", err)
			}
		} else if vm.MaxPerPeptide, err = ScanInt(fields[3]); err != nil {
			return vm, fmt.Errorf("max_per_peptide: %w", err)
		}
	}

	if len(fields) > 7 {
		if vm.NeutralLoss, err = ScanFloat(fields[7]); err != nil {
			return vm, fmt.Errorf("neutral_loss: %w", err)
		}
	}
	return vm, nil
}
