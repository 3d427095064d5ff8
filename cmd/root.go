// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/secreporting/openvas-report/internal/aggregate"
	"github.com/secreporting/openvas-report/internal/config"
	"github.com/secreporting/openvas-report/internal/output"
	"github.com/secreporting/openvas-report/internal/parser"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options holds all CLI flag values.
type Options struct {
	Inputs   []string
	Output   string
	Format   string
	MinLevel string
	Debug    bool
}

// NewRootCommand creates the root cobra command with all flags.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "openvas-report",
		Short:   "Convert OpenVAS XML reports into xlsx, csv, json or terminal tables",
		Version: Version,
		Long: `openvas-report reads one or more OpenVAS XML report exports, merges
repeated findings across hosts and ports, classifies them by CVSS score,
and renders the aggregated result.

Usage:
  openvas-report -i scan.xml
  openvas-report -i scan1.xml -i scan2.xml -f csv -o findings.csv
  openvas-report -i scan.xml -f table -l high`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.Inputs, "input", "i", nil, "Input OpenVAS XML file (repeatable)")
	flags.StringVarP(&opts.Output, "output", "o", "", "Output file (default depends on format, \"-\" for stdout)")
	flags.StringVarP(&opts.Format, "format", "f", "xlsx", "Output format: xlsx, csv, json, table")
	flags.StringVarP(&opts.MinLevel, "min-level", "l", "none", "Minimum severity level: critical, high, medium, low, none")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// run orchestrates the full conversion pipeline.
func run(opts *Options) error {
	setupLogging(opts.Debug)

	minLevel, err := config.ParseLevel(opts.MinLevel)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	cfg := config.New(minLevel)

	// Parse all documents into one store; later documents extend the
	// occurrence lists of findings seen earlier.
	p := parser.New(cfg)
	for _, input := range opts.Inputs {
		if err := p.ParseFile(input); err != nil {
			return err
		}
	}

	sum := aggregate.Build(p.Findings())
	slog.Debug("report aggregated",
		"findings", sum.Total(), "families", len(sum.Families))

	// Determine output writer. File-bound formats get a conventional
	// default filename; the rest default to stdout.
	dest := opts.Output
	if dest == "" {
		dest = output.DefaultFilename(opts.Format)
	}
	var w io.Writer
	if dest != "" && dest != "-" {
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	renderer, err := output.ForFormat(opts.Format, output.IsOutputToTerminal(w))
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return renderer.Render(w, sum)
}

// setupLogging installs a tinted slog handler on stderr.
func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}
