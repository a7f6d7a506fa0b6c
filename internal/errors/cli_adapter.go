package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Exit codes by classification. Aborts are ordinary command failures; bugs use
// the sysexits software-error code so wrappers can distinguish them.
const (
	ExitOK    = 0
	ExitAbort = 1
	ExitBug   = 70
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the command layer.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	if ClassificationOf(err) == ClassificationBug {
		return ExitBug
	}
	return ExitAbort
}

// FormatError formats an error for user-facing display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	bfe, ok := err.(*BuildForgeError)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if bfe.Classification == ClassificationBug {
		return fmt.Sprintf("Internal error (please report): %s", bfe.Error())
	}
	if a.verbose {
		return bfe.Error()
	}
	return bfe.Message
}

// HandleError processes an error and exits the program with the appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}

// shouldLog determines if an error warrants a structured log entry in
// addition to the stderr message.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	return ClassificationOf(err) == ClassificationBug
}

func (a *CLIErrorAdapter) logError(err error) {
	bfe, ok := err.(*BuildForgeError)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []slog.Attr{
		slog.String("kind", string(bfe.Kind)),
		slog.String("classification", string(bfe.Classification)),
	}
	for k, v := range bfe.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.LogAttrs(context.Background(), slog.LevelError, bfe.Message, attrs...)
}
