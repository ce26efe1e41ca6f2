package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cometgo/internal/ctxlog"
)

//go:embed params.hcl
var embedded []byte

// fileRoot is a struct used to decode all top-level blocks of a catalog file.
type fileRoot struct {
	Sections []*sectionBlock `hcl:"section,block"`
	Enzymes  []*enzymeBlock  `hcl:"enzyme,block"`
}

type sectionBlock struct {
	ID     string        `hcl:"id,label"`
	Title  string        `hcl:"title,optional"`
	Notes  []string      `hcl:"notes,optional"`
	Params []*paramBlock `hcl:"param,block"`
}

type paramBlock struct {
	Name     string   `hcl:"name,label"`
	Kind     string   `hcl:"kind"`
	Default  string   `hcl:"default"`
	Comment  string   `hcl:"comment,optional"`
	Notes    []string `hcl:"notes,optional"`
	Hidden   bool     `hcl:"hidden,optional"`
	Required bool     `hcl:"required,optional"`
	Alias    string   `hcl:"alias,optional"`
	Gap      bool     `hcl:"gap,optional"`
	Min      *float64 `hcl:"min,optional"`
}

type enzymeBlock struct {
	Name   string `hcl:"name,label"`
	Number int    `hcl:"number"`
	Offset int    `hcl:"offset"`
	Cut    string `hcl:"cut"`
	NoCut  string `hcl:"no_cut"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog compiled into the binary. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(context.Background(), "params.hcl", embedded)
	})
	return defaultCat, defaultErr
}

// Load parses and validates a catalog document.
func Load(ctx context.Context, filename string, src []byte) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loader started.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	evalCtx := &hcl.EvalContext{Variables: limitVariables()}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	cat := &Catalog{byName: make(map[string]*Param)}
	for _, sb := range root.Sections {
		section := &Section{ID: sb.ID, Title: sb.Title, Notes: sb.Notes}
		for _, pb := range sb.Params {
			p, err := translateParam(pb, sb.ID)
			if err != nil {
				return nil, err
			}
			if _, dup := cat.byName[p.Name]; dup {
				return nil, fmt.Errorf("parameter %q declared more than once", p.Name)
			}
			cat.byName[p.Name] = p
			section.Params = append(section.Params, p)
		}
		cat.Sections = append(cat.Sections, section)
	}

	seen := make(map[int]string)
	for _, eb := range root.Enzymes {
		if prev, dup := seen[eb.Number]; dup {
			return nil, fmt.Errorf("enzyme number %d used by both %q and %q", eb.Number, prev, eb.Name)
		}
		seen[eb.Number] = eb.Name
		cat.Enzymes = append(cat.Enzymes, Enzyme{
			Number: eb.Number,
			Name:   eb.Name,
			Offset: eb.Offset,
			Cut:    eb.Cut,
			NoCut:  eb.NoCut,
		})
	}

	logger.Debug("Catalog loaded.", "sections", len(cat.Sections), "params", len(cat.byName), "enzymes", len(cat.Enzymes))
	return cat, nil
}

func translateParam(pb *paramBlock, section string) (*Param, error) {
	kind := Kind(pb.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("parameter %q has unknown kind %q", pb.Name, pb.Kind)
	}
	if pb.Min != nil && kind != KindDouble {
		return nil, fmt.Errorf("parameter %q: min is only supported for double parameters", pb.Name)
	}
	if pb.Hidden && pb.Required {
		return nil, fmt.Errorf("parameter %q cannot be both hidden and required", pb.Name)
	}
	return &Param{
		Name:     pb.Name,
		Kind:     kind,
		Default:  pb.Default,
		Comment:  pb.Comment,
		Notes:    pb.Notes,
		Hidden:   pb.Hidden,
		Required: pb.Required,
		Alias:    pb.Alias,
		Gap:      pb.Gap,
		Min:      pb.Min,
		Section:  section,
	}, nil
}
