package params

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/cometgo/internal/catalog"
)

// TemplateName is the file written by the -p option.
const TemplateName = "comet.params.new"

// commentColumn is the width the "name = value" text is padded to before
// its trailing comment.
const commentColumn = 38

// WriteTemplate writes a parameter file holding every visible catalog
// parameter at its default, followed by the enzyme table.
func WriteTemplate(w io.Writer, cat *catalog.Catalog, ver string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s%s\n", versionPrefix, ver)
	fmt.Fprintln(bw, "# Comet MS/MS search engine parameters file.")
	fmt.Fprintln(bw, "# Everything following the '#' symbol is treated as a comment.")

	for _, s := range cat.Sections {
		visible := s.Visible()
		if len(visible) == 0 {
			continue
		}
		fmt.Fprintln(bw)
		if s.Title != "" {
			fmt.Fprintln(bw, "#")
			fmt.Fprintf(bw, "# %s\n", s.Title)
			for _, n := range s.Notes {
				fmt.Fprintf(bw, "# %s\n", n)
			}
			fmt.Fprintln(bw, "#")
		}
		for _, p := range visible {
			if p.Gap {
				fmt.Fprintln(bw)
			}
			fmt.Fprintln(bw, templateLine(p))
			for _, n := range p.Notes {
				fmt.Fprintf(bw, "%s # %s\n", strings.Repeat(" ", commentColumn), n)
			}
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "#")
	fmt.Fprintln(bw, "# COMET_ENZYME_INFO _must_ be at the end of this parameters file")
	fmt.Fprintln(bw, "#")
	fmt.Fprintln(bw, enzymeHeader)
	for _, e := range cat.Enzymes {
		fmt.Fprintln(bw, e.Line())
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

func templateLine(p *catalog.Param) string {
	line := p.Name + " = " + p.Default
	if p.Comment == "" {
		return strings.TrimRight(line, " ")
	}
	return fmt.Sprintf("%-*s # %s", commentColumn, line, p.Comment)
}

// WriteTemplateFile creates path and writes the template into it.
func WriteTemplateFile(path string, cat *catalog.Catalog, ver string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrWriteTemplate, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w %s: %v", ErrWriteTemplate, path, cerr)
		}
	}()
	if err := WriteTemplate(f, cat, ver); err != nil {
		return fmt.Errorf("%w %s: %v", ErrWriteTemplate, path, err)
	}
	return nil
}
