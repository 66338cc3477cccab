package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/hupe1980/maffilter/internal/maf"
)

func runFilter(cmd *cobra.Command, inPath, outPath string) error {
	if _, err := maf.FilterFile(cmd.Context(), inPath, outPath); err != nil {
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	return nil
}

// exitCodeFor maps a filter failure to its process exit code.
func exitCodeFor(err error) int {
	var (
		inErr  *maf.InputError
		outErr *maf.OutputError
	)

	switch {
	case maf.IsFormatError(err):
		return ExitCodeFormat
	case errors.As(err, &inErr):
		return ExitCodeInput
	case errors.As(err, &outErr):
		return ExitCodeOutput
	default:
		return ExitCodeError
	}
}
