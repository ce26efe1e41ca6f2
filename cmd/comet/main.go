package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/cometgo/internal/app"
	"github.com/vk/cometgo/internal/cli"
	"github.com/vk/cometgo/internal/version"
)

// main is the entrypoint for the comet application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	comet, err := app.NewApp(logW, config, nil)
	if err != nil {
		return err
	}
	return comet.Run(context.Background())
}

// report prints err under the version header and returns the exit code.
func report(w io.Writer, err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintf(w, "\n Comet version \"%s\"\n\n Error - %s\n\n", version.String(), exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintf(w, "\n Comet version \"%s\"\n\n Error - %s\n\n", version.String(), err)
	return 1
}
