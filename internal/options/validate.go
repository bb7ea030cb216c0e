package options

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/vk/sqlrake/internal/catalog"
	"github.com/vk/sqlrake/internal/ctxlog"
	"github.com/vk/sqlrake/internal/mnemonic"
	"github.com/vk/sqlrake/internal/normalize"
)

// dummyURL substitutes for a missing target under --dummy.
const dummyURL = "http://www.example.com/vuln.php?id=1"

// ErrMissingTarget is the fatal diagnostic for a run that names nothing to
// work on.
var ErrMissingTarget = errors.New("missing a mandatory option (-d, -u, -l, -m, -r, -g, -c, " +
	"--wizard, --shell, --update, --purge, --list-tampers or --dependencies). " +
	"Use -h for basic and -hh for advanced help")

// Finalize applies the post-parse pipeline over the destination values:
// mnemonic expansion, header merging, target substitution, stdin detection
// and the mandatory-target rule. It returns the canonical Options value.
func Finalize(ctx context.Context, vals Values, res *normalize.Result, cat *catalog.Catalog) (*Options, error) {
	logger := ctxlog.FromContext(ctx)

	for _, spec := range mnemonicSpecs(res.Argv) {
		for _, a := range mnemonic.Expand(ctx, spec, cat) {
			vals[a.Dest] = a.Value
		}
	}

	mergeHeaders(vals, res.ExtraHeaders)

	opts := fromValues(vals)
	opts.SkipThreadCheck = res.SkipThreadCheck
	if res.VerbositySet {
		opts.Verbose = res.Verbosity
	}

	if opts.Dummy && opts.URL == "" {
		opts.URL = dummyURL
		logger.Debug("substituted placeholder target", "url", opts.URL)
	}

	if opts.DisableColoring {
		color.NoColor = true
	}

	if _, ci := os.LookupEnv("GITHUB_ACTIONS"); !ci && stdinPiped() && !opts.API && !opts.IgnoreStdin {
		opts.StdinPipe = stdinLines(os.Stdin)
	}

	if !hasTarget(opts) {
		return nil, ErrMissingTarget
	}
	return opts, nil
}

// mnemonicSpecs collects the value of every -z occurrence, in argv order.
func mnemonicSpecs(argv []string) []string {
	var specs []string
	for i, token := range argv {
		if token == "-z" && i+1 < len(argv) {
			specs = append(specs, argv[i+1])
		}
	}
	return specs
}

// mergeHeaders appends the rewriter's accumulated header values onto the
// bulk headers destination. The join delimiter follows what the operator
// already used: a literal two-character \n escape when present, a real
// newline otherwise.
func mergeHeaders(vals Values, extra []string) {
	if len(extra) == 0 {
		return
	}
	headers := vals.String("headers")
	delimiter := "\n"
	if strings.Contains(headers, `\n`) {
		delimiter = `\n`
	}
	for _, header := range extra {
		if headers == "" {
			headers = header
		} else {
			headers += delimiter + header
		}
	}
	vals["headers"] = headers
}

func stdinPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// stdinLines returns a lazy line iterator over r. The second result turns
// false once the input is exhausted.
func stdinLines(r *os.File) func() (string, bool) {
	scanner := bufio.NewScanner(r)
	return func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}
}

// hasTarget reports whether the run names at least one target or standalone
// action.
func hasTarget(opts *Options) bool {
	switch {
	case opts.Direct != "", opts.URL != "", opts.LogFile != "", opts.BulkFile != "",
		opts.RequestFile != "", opts.GoogleDork != "", opts.ConfigFile != "":
		return true
	case opts.UpdateAll, opts.SmokeTest, opts.VulnTest, opts.Wizard,
		opts.Dependencies, opts.Purge, opts.ListTampers:
		return true
	case opts.HashFile != "":
		return true
	case opts.StdinPipe != nil:
		return true
	}
	return false
}
