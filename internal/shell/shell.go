package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/google/shlex"
	"github.com/peterh/liner"

	"github.com/vk/sqlrake/internal/catalog"
	"github.com/vk/sqlrake/internal/ctxlog"
)

// ErrQuit signals a controlled exit requested at the prompt, either by a
// quit word or by an interrupt. Callers translate it into a clean shutdown.
var ErrQuit = errors.New("shell quit")

const (
	prompt      = "sqlrake > "
	historyFile = "shell.hst"
)

var (
	newPrefix = regexp.MustCompile(`(?i)^new\s+`)
	helpWord  = regexp.MustCompile(`(?i)^(\?|help)$`)
)

// quitWords are the literal inputs that leave the shell.
var quitWords = map[string]struct{}{
	"x": {}, "q": {}, "exit": {}, "quit": {},
}

// LineReader is the prompt capability Run needs, satisfied by *liner.State.
type LineReader interface {
	Prompt(string) (string, error)
	AppendHistory(string)
	ClearHistory()
	ReadHistory(io.Reader) (int, error)
	WriteHistory(io.Writer) (int, error)
	Close() error
}

// Run opens the interactive prompt and returns the tokens of the first
// accepted command line. It returns ErrQuit when the operator leaves the
// shell without issuing a command.
func Run(ctx context.Context, cat *catalog.Catalog, out io.Writer) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	historyPath, err := historyLocation()
	if err != nil {
		logger.Warn("shell history unavailable", "error", err)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(vocabulary(cat)))

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	return run(line, historyPath, out)
}

// run drives the prompt loop. Split from Run so tests can substitute a
// scripted LineReader for the terminal.
func run(reader LineReader, historyPath string, out io.Writer) ([]string, error) {
	for {
		input, err := reader.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil, ErrQuit
		}
		if err != nil {
			return nil, fmt.Errorf("reading prompt: %w", err)
		}

		input = strings.TrimSpace(input)
		input = newPrefix.ReplaceAllString(input, "")
		if input == "" {
			continue
		}

		if strings.EqualFold(input, "clear") {
			reader.ClearHistory()
			if historyPath != "" {
				_ = os.WriteFile(historyPath, nil, 0o600)
			}
			infof(out, "history cleared")
			continue
		}

		if _, quit := quitWords[strings.ToLower(input)]; quit {
			return nil, ErrQuit
		}

		if !strings.HasPrefix(input, "-") {
			if !helpWord.MatchString(input) {
				warnf(out, "invalid option(s) provided")
			}
			infof(out, "valid example: '-u http://www.site.com/vuln.php?id=1 --banner'")
			continue
		}

		reader.AppendHistory(input)
		saveHistory(reader, historyPath)

		tokens, err := shlex.Split(input)
		if err != nil {
			// Malformed quoting is a syntax error fatal to the run, not a
			// re-prompt.
			return nil, fmt.Errorf("something went wrong during command line parsing ('%v')", err)
		}
		return tokens, nil
	}
}

// historyLocation ensures the application home directory exists and returns
// the history file path inside it.
func historyLocation() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".sqlrake")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return filepath.Join(dir, historyFile), nil
}

func saveHistory(reader LineReader, historyPath string) {
	if historyPath == "" {
		return
	}
	f, err := os.Create(historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = reader.WriteHistory(f)
}

// vocabulary collects every completable word: the shell's own verbs plus
// every option invocation string.
func vocabulary(cat *catalog.Catalog) []string {
	words := []string{"x", "q", "exit", "quit", "clear"}
	return append(words, cat.AllNames()...)
}

// completer completes the last whitespace-separated word of the line.
func completer(words []string) liner.Completer {
	return func(line string) []string {
		cut := strings.LastIndexAny(line, " \t") + 1
		head, word := line[:cut], line[cut:]
		if word == "" {
			return nil
		}
		var completions []string
		for _, candidate := range words {
			if strings.HasPrefix(candidate, word) {
				completions = append(completions, head+candidate)
			}
		}
		return completions
	}
}

func warnf(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.YellowString("[!]"), fmt.Sprintf(format, a...))
}

func infof(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, color.CyanString("[i]"), fmt.Sprintf(format, a...))
}
