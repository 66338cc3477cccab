// Package cli implements the cobra command for maffilter.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/maffilter/internal/config"
	"github.com/hupe1980/maffilter/internal/logging"
	"github.com/hupe1980/maffilter/internal/version"
)

// Process exit codes.
const (
	ExitCodeError  = 1 // unclassified failure
	ExitCodeUsage  = 2 // bad arguments, flags, or configuration
	ExitCodeInput  = 3 // input missing or unreadable
	ExitCodeOutput = 4 // output not writable
	ExitCodeFormat = 5 // empty input, missing FILTER field, malformed row
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command, runs it, reports any error on stderr, and
// returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return ExitCodeError
	}

	return 0
}

// NewRootCommand constructs the maffilter command.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "maffilter <input-file> <output-file>",
		Short: "Keep only PASS records of a tab-delimited MAF file",
		Long: `maffilter reads a tab-delimited mutation annotation file and writes a copy
containing the header line and only those records whose FILTER field is
exactly "PASS". Retained lines are written unchanged and in input order.

The output is written to a temporary file beside <output-file> and moved
into place only when the whole input has been processed, so a failed run
leaves no partial output. Symlinks are followed. Pipes and devices such as
/dev/stdout are written directly.

Exit codes:
  0  success
  1  unexpected failure
  2  wrong number of arguments, bad flag, or invalid configuration
  3  input file missing or unreadable
  4  output file not writable
  5  empty input, no FILTER column, or a row with the wrong field count`,
		Version:       version.GetInfo().String(),
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: ExitCodeUsage, Err: err}
			}

			logger := logging.Setup(cfg)

			cmd.SetContext(logging.NewContext(cmd.Context(), logger))

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("configFile", cfg.ConfigFile),
				slog.Any("build", version.GetInfo()),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, args[0], args[1])
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	// Global persistent flags. They only affect diagnostics.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .maffilter.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitCodeUsage, Err: err}
	})

	return cmd
}

// exactArgs is cobra.ExactArgs mapped to the usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	validate := cobra.ExactArgs(n)

	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &ExitError{Code: ExitCodeUsage, Err: err}
		}

		return nil
	}
}
