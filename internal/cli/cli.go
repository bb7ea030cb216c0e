package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/vk/sqlrake/internal/catalog"
	"github.com/vk/sqlrake/internal/ctxlog"
	"github.com/vk/sqlrake/internal/normalize"
	"github.com/vk/sqlrake/internal/options"
	"github.com/vk/sqlrake/internal/shell"
)

// banner identifies the build; the part after the last '/' is the version.
const banner = "sqlrake/1.1.8#dev"

const usageLine = "sqlrake [options]"

// ExitError is a fatal pipeline outcome carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ErrShellQuit reports a controlled quit from the interactive shell.
var ErrShellQuit = shell.ErrQuit

// Version returns the bare version string of the banner.
func Version() string {
	return banner[strings.LastIndex(banner, "/")+1:]
}

// Parse runs args through the front-end pipeline. It returns the validated
// options, a boolean indicating the program should exit cleanly (help or
// version output), or an error: *ExitError for fatal input problems,
// ErrShellQuit when the operator left the shell.
func Parse(ctx context.Context, args []string, output io.Writer) (*options.Options, bool, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("loading option catalogue: %v", err)}
	}

	argv := slices.Clone(args)
	shellMode := slices.Contains(argv, "--shell")
	if shellMode {
		tokens, err := shell.Run(ctx, cat, output)
		if err != nil {
			if errors.Is(err, shell.ErrQuit) {
				return nil, false, err
			}
			// Shell syntax errors are fatal to the run.
			return nil, false, &ExitError{Code: 1, Message: err.Error()}
		}
		argv = append(argv, tokens...)
	}

	res, err := normalize.Rewrite(ctx, argv, cat)
	if err != nil {
		return nil, false, usageError(output, err)
	}

	if res.ShowVersion {
		fmt.Fprintln(output, Version())
		return nil, true, nil
	}

	vals, err := options.Parse(res.Argv, cat)
	if err != nil {
		return nil, false, usageError(output, err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ctxlog.Level(effectiveVerbosity(vals, res)),
	})
	ctx = ctxlog.WithLogger(ctx, slog.New(handler))

	if vals.Bool("help") {
		usage := usageLine
		if shellMode {
			usage = ""
		}
		if filtered := cat.Usage(output, usage, res.BasicHelp); filtered {
			fmt.Fprintf(output, "\n%s to see full list of options run with '-hh'\n",
				color.YellowString("[!]"))
		}
		return nil, true, nil
	}

	opts, err := options.Finalize(ctx, vals, res, cat)
	if err != nil {
		return nil, false, usageError(output, err)
	}
	return opts, false, nil
}

// effectiveVerbosity resolves the final verbosity level: the -v..v shorthand
// and --silent win over the parsed -v value, which in turn carries the
// catalogue default.
func effectiveVerbosity(vals options.Values, res *normalize.Result) int {
	if res.VerbositySet {
		return res.Verbosity
	}
	return vals.Int("verbose")
}

// usageError prints the usage line and wraps err as an exit-code-2 failure.
func usageError(output io.Writer, err error) error {
	fmt.Fprintf(output, "Usage: %s\n", usageLine)
	return &ExitError{Code: 2, Message: err.Error()}
}
