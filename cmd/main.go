// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"ocr-datecheck/internal/casefile"
	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/config"
	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/formatters"
	"ocr-datecheck/internal/observability"
	"ocr-datecheck/internal/version"

	// Import formatters to register them
	_ "ocr-datecheck/internal/formatters/csv"
	_ "ocr-datecheck/internal/formatters/json"
	_ "ocr-datecheck/internal/formatters/junit"
	_ "ocr-datecheck/internal/formatters/text"
	_ "ocr-datecheck/internal/formatters/yaml"
)

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitLowGrade = 2
)

// cliFlags holds command line flag values
type cliFlags struct {
	manifest     string
	configFile   string
	profile      string
	listProfiles bool
	format       string
	output       string
	workers      int
	validated    bool
	diagnose     bool
	verbose      bool
	debug        bool
	noColor      bool
	quiet        bool
	showVersion  bool
}

// finalConfiguration holds values resolved from the config file and flags
type finalConfiguration struct {
	format    string
	workers   int
	verbose   bool
	noColor   bool
	validated bool
	diagnose  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("datecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &cliFlags{}

	fs.StringVar(&flags.manifest, "manifest", "", "Path to the case manifest (JSON array of {name, type, baseline_file, ocr_file})")
	fs.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&flags.profile, "profile", "", "Validator profile to use (default: from config, else strict)")
	fs.BoolVar(&flags.listProfiles, "list-profiles", false, "List available validator profiles")
	fs.StringVar(&flags.format, "format", "", "Output format: "+strings.Join(formatters.List(), ", ")+" (default: text)")
	fs.StringVar(&flags.output, "output", "", "Path to output file (if not specified, output to stdout)")
	fs.IntVar(&flags.workers, "workers", 0, "Number of cases validated in parallel (default: from config)")
	fs.BoolVar(&flags.validated, "validated", false, "Drop impossible and out-of-range dates during extraction")
	fs.BoolVar(&flags.diagnose, "diagnose", true, "Classify flagged and missing dates against the OCR blocks")
	fs.BoolVar(&flags.verbose, "verbose", false, "Display date samples and diagnoses for each case")
	fs.BoolVar(&flags.debug, "debug", false, "Enable debug logging of each validation step")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.quiet, "quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	if flags.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	logger := setupLogger(stderr, flags.debug, flags.quiet)

	cfg, err := loadConfiguration(flags.configFile)
	if err != nil {
		printError(stderr, fmt.Sprintf("Error loading config file: %v", err),
			"Check the YAML syntax and the values in the config file")
		return exitError
	}

	if flags.listProfiles {
		printProfiles(stdout, cfg)
		return exitOK
	}

	if flags.manifest == "" {
		printError(stderr, "No manifest given",
			"Usage: datecheck -manifest cases.json [-format json] [-output report.json]")
		return exitError
	}

	final := resolveConfiguration(cfg, flags, isFlagSet(fs))
	if _, ok := formatters.Get(final.format); !ok {
		printError(stderr, fmt.Sprintf("Unsupported format '%s'", final.format),
			"Available formats: "+strings.Join(formatters.List(), ", "))
		return exitError
	}

	engine, err := core.BuildEngine(cfg, core.EngineOptions{
		Profile:   flags.profile,
		Validated: &final.validated,
		Diagnose:  &final.diagnose,
	})
	if err != nil {
		guidance := "Check the profile settings in the config file"
		if errors.Is(err, config.ErrUnknownProfile) {
			guidance = "Available profiles: " + strings.Join(cfg.ListProfiles(), ", ")
		}
		printError(stderr, err.Error(), guidance)
		return exitError
	}

	cases, err := casefile.LoadManifest(flags.manifest)
	if err != nil {
		printError(stderr, fmt.Sprintf("Error loading manifest: %v", err),
			"Check that the manifest exists and is a JSON array of cases")
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observer *observability.StandardObserver
	if flags.debug {
		observer = observability.NewDebugObserver(logger).StandardObserver
	} else {
		observer = observability.NewLoggerObserver(observability.ObservabilityMetrics, logger)
	}

	batch := core.BatchConfig{Workers: final.workers, Observer: observer}
	showProgress := !shouldSuppressProgressOutput(flags.quiet, flags.debug, stderr)
	if showProgress {
		batch.Progress = func(completed, total int, _ string) {
			fmt.Fprintf(stderr, "\rValidated %d/%d cases", completed, total)
			if completed == total {
				fmt.Fprintln(stderr)
			}
		}
	}

	logger.Info().
		Str("manifest", flags.manifest).
		Int("cases", len(cases)).
		Str("profile", engine.Validator().Profile().Name).
		Msg("starting validation")

	report := engine.RunBatch(ctx, cases, batch)

	logger.Info().
		Str("run_id", report.RunID).
		Int("validated", report.Summary.ValidatedCases).
		Int("skipped", report.Summary.SkippedCases).
		Float64("average_accuracy", report.Summary.AverageAccuracy).
		Dur("duration", report.Duration).
		Msg("validation finished")

	noColor := final.noColor || flags.output != "" || !writerIsTerminal(stdout)
	result, err := formatters.Export(final.format, report, formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: noColor,
	})
	if err != nil {
		printError(stderr, fmt.Sprintf("Error formatting output: %v", err),
			"Check output format")
		return exitError
	}

	if err := writeOutput(stdout, flags.output, result); err != nil {
		printError(stderr, err.Error(), "Check file permissions and available disk space")
		return exitError
	}

	if report.HasGrade(compare.GradeLow) {
		return exitLowGrade
	}
	return exitOK
}

// setupLogger configures zerolog for the CLI. Interactive sessions get the
// console writer, anything else gets JSON lines.
func setupLogger(stderr io.Writer, debug, quiet bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	switch {
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var out io.Writer = stderr
	if writerIsTerminal(stderr) {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// loadConfiguration loads the configuration file, or the defaults when
// none is given or found
func loadConfiguration(configFile string) (*config.Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	return config.LoadConfig(configPath)
}

// resolveConfiguration resolves final values from the config file and
// command line flags; an explicitly set flag wins
func resolveConfiguration(cfg *config.Config, flags *cliFlags, set map[string]bool) *finalConfiguration {
	final := &finalConfiguration{
		format:    cfg.Defaults.Format,
		workers:   cfg.Defaults.Workers,
		verbose:   cfg.Defaults.Verbose || flags.verbose,
		noColor:   cfg.Defaults.NoColor || flags.noColor,
		validated: cfg.Defaults.ValidatedExtraction,
		diagnose:  cfg.Defaults.Diagnose,
	}
	if flags.format != "" {
		final.format = strings.ToLower(flags.format)
	}
	if final.format == "" {
		final.format = "text"
	}
	if flags.workers > 0 {
		final.workers = flags.workers
	}
	if set["validated"] {
		final.validated = flags.validated
	}
	if set["diagnose"] {
		final.diagnose = flags.diagnose
	}
	return final
}

// printProfiles lists the validator profiles
func printProfiles(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Available profiles:")
	for _, name := range cfg.ListProfiles() {
		profile := cfg.GetProfile(name)
		marker := " "
		if name == cfg.Defaults.Profile {
			marker = "*"
		}
		line := fmt.Sprintf(" %s %s (years %d-%d, future tolerance %d days)",
			marker, name, profile.MinYear, profile.MaxYear, profile.FutureToleranceDays)
		if profile.Description != "" {
			line += ": " + profile.Description
		}
		fmt.Fprintln(w, line)
	}
}

// writeOutput writes the rendered report to path, or to stdout when path is empty
func writeOutput(stdout io.Writer, path, result string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, result)
		return err
	}

	cleanOutputPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("invalid output file path %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(cleanOutputPath), 0700); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(cleanOutputPath, []byte(result), 0600); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}

// shouldSuppressProgressOutput reports whether the progress line stays off
func shouldSuppressProgressOutput(quiet, debug bool, stderr io.Writer) bool {
	if quiet || debug {
		return true
	}
	return !writerIsTerminal(stderr)
}

// isFlagSet returns the flags explicitly set on the command line
func isFlagSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// printError prints an error message followed by resolution guidance
func printError(stderr io.Writer, errorMsg string, resolutionGuidance ...string) {
	fmt.Fprintf(stderr, "Error: %s\n", errorMsg)
	for _, guidance := range resolutionGuidance {
		fmt.Fprintf(stderr, "%s\n", guidance)
	}
}

// writerIsTerminal checks if w is a terminal
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
