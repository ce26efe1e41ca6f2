package params

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/cometgo/internal/catalog"
	"github.com/vk/cometgo/internal/ctxlog"
	"github.com/vk/cometgo/internal/version"
)

const (
	versionPrefix = "# comet_version "
	enzymeHeader  = "[COMET_ENZYME_INFO]"
	maxLineBytes  = 1 << 20
)

// Load reads a parameter file into a new parameter set seeded with catalog
// defaults.
//
// Fatal problems (unreadable file, missing or incompatible version marker,
// missing required parameter, undefined enzyme) are returned as errors
// wrapping the sentinels in errors.go. Unknown keys and unparseable values are
// logged as warnings and skipped.
func Load(ctx context.Context, path string, cat *catalog.Catalog) (*Params, error) {
	logger := ctxlog.FromContext(ctx).With("params_file", path)
	logger.Debug("Loading parameter file.")

	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrOpen, path, err)
	}

	marker, err := findVersion(lines)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parameter file version accepted.", "version", marker)

	p, err := New(cat)
	if err != nil {
		return nil, err
	}
	if err := p.store(VersionKey, marker, marker); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, enzymeHeader) {
			break
		}
		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields := strings.Fields(key)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]

		if _, known := cat.Lookup(name); !known {
			logger.Warn("Invalid parameter found. Parameter will be ignored.", "param", name, "line", i+1)
			continue
		}
		seen[name] = true
		if err := p.Set(name, value); err != nil {
			logger.Warn("Invalid parameter value. Previous value kept.", "param", name, "line", i+1, "error", err)
		}
	}

	for _, req := range cat.Required() {
		if !seen[req.Name] {
			return nil, fmt.Errorf("%w: %s is missing; generate an updated parameter file using the '-p' option", ErrOutdated, req.Name)
		}
	}

	var tableLines []string
	if i < len(lines) {
		tableLines = lines[i+1:]
	}
	if err := loadEnzymes(p, tableLines); err != nil {
		return nil, err
	}

	logger.Debug("Parameter file loaded.", "params_set", len(seen))
	return p, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// findVersion returns "<ver> <rev1> <rev2>" from the first version marker
// naming a compatible release.
func findVersion(lines []string) (string, error) {
	found := "unknown"
	for _, line := range lines {
		if !strings.HasPrefix(line, versionPrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, versionPrefix))
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 3 {
			fields = fields[:3]
		}
		found = strings.Join(fields, " ")
		if version.IsCompatible(fields[0]) {
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: the parameter file is from version %s; generate a new parameters file using \"comet -p\"", ErrIncompatibleVersion, found)
}

// loadEnzymes reads "<n>. <name> <offset> <cut> <no_cut>" rows and stores the
// enzymes selected by the *_enzyme_number parameters.
func loadEnzymes(p *Params, lines []string) error {
	sel, err := selectedEnzymes(p)
	if err != nil {
		return err
	}

	var table strings.Builder
	found := make(map[int]Enzyme)
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		table.WriteString(strings.TrimRight(line, " \t"))
		table.WriteString("\n")
		if len(fields) < 5 {
			continue
		}
		num, err := ScanInt(fields[0])
		if err != nil {
			continue
		}
		offset, err := ScanInt(fields[2])
		if err != nil {
			continue
		}
		found[num] = Enzyme{Number: num, Name: fields[1], Offset: offset, Cut: fields[3], NoCut: fields[4]}
	}

	info := EnzymeInfo{AllowedMissedCleavage: sel.missedCleavages}
	var ok bool
	if info.Search, ok = found[sel.search]; !ok {
		return fmt.Errorf("%w: search_enzyme_number %d", ErrMissingEnzyme, sel.search)
	}
	if info.Search2, ok = found[sel.search2]; !ok {
		return fmt.Errorf("%w: search_enzyme2_number %d", ErrMissingEnzyme, sel.search2)
	}
	if info.Sample, ok = found[sel.sample]; !ok {
		return fmt.Errorf("%w: sample_enzyme_number %d", ErrMissingEnzyme, sel.sample)
	}
	return p.store(EnzymeInfoKey, table.String(), info)
}
