package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/cometgo/internal/app"
	"github.com/vk/cometgo/internal/params"
	"github.com/vk/cometgo/internal/version"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const programName = "comet"

// Usage writes the help text.
func Usage(output io.Writer) {
	fmt.Fprintf(output, `
 Comet version "%s"

 Comet usage:  %[2]s [options] <input_files>

 Supported input formats include mzXML, mzML, Thermo raw, mgf, and ms2 variants (cms2, bms2, ms2)

       options:  -p         to print out a comet.params file (named comet.params.new)
                 -P<params> to specify an alternate parameters file (default comet.params)
                 -N<name>   to specify an alternate output base name; valid only with one input file
                 -D<dbase>  to specify a sequence database, overriding entry in parameters file
                 -F<num>    to specify the first/start scan to search, overriding entry in parameters file
                 -L<num>    to specify the last/end scan to search, overriding entry in parameters file
                            (-L option is required if -F option is used)
                 -B<num>    to specify the spectrum batch size, overriding entry in parameters file
                 -i         create peptide index file only (specify .idx file as database for index search)

                 --log-level=<debug|info|warn|error>   log verbosity (default info)
                 --log-format=<text|json>              log output format (default text)

       example:  %[2]s file1.mzXML file2.mzXML
            or   %[2]s -F1000 -L1500 file1.mzXML    <- to search scans 1000 through 1500
            or   %[2]s -PParams.txt *.mzXML         <- use parameters in the file 'Params.txt'

`, version.String(), programName)
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
//
// Single-dash tokens are comet switches with their value glued on
// ("-Pfile"); unknown switches are ignored. Tokens starting with "--log-"
// are ambient flags handled by a flag.FlagSet. Everything else is an input
// file.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if len(args) == 0 {
		Usage(output)
		return nil, false, &ExitError{Code: 1}
	}

	cfg := app.Config{ParamsFile: app.DefaultParamsFile}
	var long []string

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--log-"):
			long = append(long, arg)
		case strings.HasPrefix(arg, "-"):
			setOption(arg, &cfg)
		default:
			cfg.Inputs = append(cfg.Inputs, arg)
		}
	}

	flagSet := flag.NewFlagSet(programName, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() { Usage(output) }
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	if err := flagSet.Parse(long); err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}
	cfg.LogFormat = strings.ToLower(*logFormatFlag)
	cfg.LogLevel = strings.ToLower(*logLevelFlag)
	slog.Debug("Arguments parsed successfully.", "inputs", len(cfg.Inputs))

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// setOption applies one single-dash switch to cfg.
func setOption(arg string, cfg *app.Config) {
	if len(arg) < 2 {
		return
	}
	text := arg[2:]
	missing := func(form string) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("Missing text for parameter option -%c%s.  Ignored.", arg[1], form))
	}

	switch arg[1] {
	case 'D':
		if text == "" {
			missing("<database>")
			return
		}
		cfg.Overrides.Database = text
	case 'P':
		if text == "" {
			missing("<params>")
			return
		}
		cfg.ParamsFile = text
	case 'N':
		if text == "" {
			missing("<basename>")
			return
		}
		cfg.BaseName = text
	case 'F':
		if n, ok := number(text); ok {
			cfg.Overrides.FirstScan = &n
		} else {
			missing("<num>")
		}
	case 'L':
		if n, ok := number(text); ok {
			cfg.Overrides.LastScan = &n
		} else {
			missing("<num>")
		}
	case 'B':
		if n, ok := number(text); ok {
			cfg.Overrides.BatchSize = &n
		} else {
			missing("<num>")
		}
	case 'p':
		cfg.PrintParams = true
	case 'i':
		cfg.Overrides.CreateIndex = true
	}
}

// number reads the leading integer of text. Non-numeric text counts as 0;
// only empty text is missing.
func number(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	n, err := params.ScanInt(text)
	if err != nil {
		return 0, true
	}
	return n, true
}
