package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"github.com/vk/sqlrake/internal/cli"
	"github.com/vk/sqlrake/internal/ctxlog"
)

// main is the entrypoint for the sqlrake front end.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrShellQuit) {
			os.Exit(0)
		}
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			exitPause()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		exitPause()
		os.Exit(1)
	}
}

// run encapsulates the main logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(ctx, args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Downstream scanning hangs off here. The front end only reports what
	// it resolved.
	logger := ctxlog.FromContext(ctx)
	logger.Info("options resolved", "target", opts.URL, "verbosity", opts.Verbose)
	return nil
}

// exitPause keeps the console window open on Windows double-click runs so
// the error stays readable.
func exitPause() {
	if runtime.GOOS != "windows" || slices.Contains(os.Args, "--non-interactive") {
		return
	}
	fmt.Fprint(os.Stderr, "Press Enter to continue...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
