package normalize

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/vk/sqlrake/internal/catalog"
	"github.com/vk/sqlrake/internal/ctxlog"
)

// Result carries the rewritten argument vector together with the side
// channels individual rules write into.
type Result struct {
	// Argv is the rewritten token sequence, empty tokens compacted out.
	Argv []string
	// ExtraHeaders holds every header value captured from -H/--header
	// occurrences, in argv order.
	ExtraHeaders []string
	// Verbosity is the level set by the -v..v shorthand or --silent.
	// Meaningful only when VerbositySet is true.
	Verbosity    int
	VerbositySet bool
	// SkipThreadCheck is set by the trailing '!' force marker on a
	// --threads value.
	SkipThreadCheck bool
	// BasicHelp records that -h/--help was seen directly, enabling
	// basic-help filtering and the later -hh hint.
	BasicHelp bool
	// ShowVersion short-circuits the pipeline into a version print.
	ShowVersion bool
}

var (
	bareURL        = regexp.MustCompile(`^(http|www\.|\w[\w.-]+\.\w{2,})`)
	shortWithEqual = regexp.MustCompile(`^-\w=.+`)
	shortOverlong  = regexp.MustCompile(`^-\w{3,}`)
	tamperMangled  = regexp.MustCompile(`^--tamper[^=\s]`)
	aggregated     = regexp.MustCompile(`^--(tamper|ignore-code|skip)(?:=|$)`)
	threadsForce   = regexp.MustCompile(`^\d+!$`)
	threadsInline  = regexp.MustCompile(`^--threads.+\d+!$`)
	optionLike     = regexp.MustCompile(`^-{1,2}\w`)
	verbosityRun   = regexp.MustCompile(`^-v+$`)
	digitsOnly     = regexp.MustCompile(`^\d+$`)
)

// aggregationState maps a multi-valued option's key to the argv position
// holding its accumulated value. Once an anchor is recorded every later
// occurrence of that option appends to the anchor token and is deleted.
type aggregationState map[string]int

// Rewrite applies the ordered rewrite rules over argv and returns the
// normalized sequence. Rules form a single left-to-right pass; each token is
// matched against the chain in priority order and at most one rule fires per
// token. The rule order is load-bearing and must not be rearranged: the -r
// loader only blanks tokens ahead of the cursor and the missing-hyphen
// heuristic only reads the token behind it, which is what lets the pass stay
// single-directional.
func Rewrite(ctx context.Context, argv []string, cat *catalog.Catalog) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{}
	argv = slices.Clone(argv)
	anchors := make(aggregationState)

	for i := 0; i < len(argv); i++ {
		argv[i] = NormalizeDashes(argv[i])
		argv[i] = TrimQuotes(argv[i])
		token := argv[i]

		switch {
		case token == "-hh":
			// Rewritten to the parser-known form without marking basic
			// help, so the advanced output is left unfiltered.
			argv[i] = "-h"

		case i == 0 && bareURL.MatchString(token):
			argv[i] = "--url=" + token
			logger.Debug("rewrote positional URL shorthand", "token", token)

		case hasSmartQuotes(token):
			return nil, fmt.Errorf("copy-pasting illegal (non-console) quote characters from Internet is illegal (%s)", token)

		case hasWideComma(token):
			return nil, fmt.Errorf("copy-pasting illegal (non-console) comma characters from Internet is illegal (%s)", token)

		case shortWithEqual.MatchString(token):
			return nil, fmt.Errorf("potentially miswritten (illegal '=') short option detected ('%s')", token)

		case shortOverlong.MatchString(token):
			name, _, _ := strings.Cut(strings.TrimLeft(token, "-"), "=")
			if cat.IsLongName(name) {
				argv[i] = "-" + token
			}

		case slices.Contains(cat.Compat.Ignored, token):
			argv[i] = ""

		case slices.Contains(cat.Compat.Deprecated, token):
			argv[i] = ""

		case token == "-s" || token == "--silent":
			// Only a convenience verbosity switch when not followed by a
			// value of its own (-s doubles as the session file option).
			if i+1 == len(argv) || strings.HasPrefix(argv[i+1], "-") {
				argv[i] = ""
				res.Verbosity = 0
				res.VerbositySet = true
			}

		case renamedPrefix(cat, token) != "":
			legacy := renamedPrefix(cat, token)
			argv[i] = strings.Replace(token, legacy, cat.Compat.Renamed[legacy], 1)

		case tamperMangled.MatchString(token):
			argv[i] = ""

		case aggregated.MatchString(token):
			aggregate(argv, i, anchors)

		case isHeaderOption(token):
			if _, value, found := strings.Cut(token, "="); found {
				res.ExtraHeaders = append(res.ExtraHeaders, value)
			} else if i+1 < len(argv) {
				res.ExtraHeaders = append(res.ExtraHeaders, argv[i+1])
			}

		case cat.Compat.Aliases[token] != "":
			argv[i] = cat.Compat.Aliases[token]

		case token == "-r":
			loadRequestFiles(argv, i)

		case threadsForce.MatchString(token) && i > 0 && argv[i-1] == "--threads",
			threadsInline.MatchString(token):
			argv[i] = token[:len(token)-1]
			res.SkipThreadCheck = true

		case token == "--version":
			res.ShowVersion = true
			return res, nil

		case token == "-h" || token == "--help":
			res.BasicHelp = true

		case strings.Contains(token, "=") && !strings.HasPrefix(token, "-"):
			name, _, _ := strings.Cut(token, "=")
			if cat.IsLongValueName(name) && (i == 0 || !optionLike.MatchString(argv[i-1])) {
				return nil, fmt.Errorf("detected usage of long-option without a starting hyphen ('%s')", token)
			}
		}
	}

	// Verbosity shorthand: -v, -vv, ... set the level to the repeat count
	// and disappear, unless a bare number follows (then -v keeps its value).
	for i := range argv {
		if !verbosityRun.MatchString(argv[i]) {
			continue
		}
		if i == len(argv)-1 || !digitsOnly.MatchString(argv[i+1]) {
			res.Verbosity = strings.Count(argv[i], "v")
			res.VerbositySet = true
			argv[i] = ""
		}
	}

	res.Argv = slices.DeleteFunc(argv, func(tok string) bool { return tok == "" })
	return res, nil
}

// aggregate folds repeat occurrences of a multi-valued option into the
// first occurrence's value position using a comma delimiter. Values arrive
// either inline (--skip=a) or as the following bare token (--skip a).
func aggregate(argv []string, i int, anchors aggregationState) {
	key := strings.TrimLeft(strings.SplitN(argv[i], "=", 2)[0], "-")

	anchor, seen := anchors[key]
	if !seen {
		if strings.Contains(argv[i], "=") {
			anchors[key] = i
		} else if i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
			anchors[key] = i + 1
		}
		return
	}

	var value string
	if _, inline, found := strings.Cut(argv[i], "="); found {
		value = inline
	} else if i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
		value = argv[i+1]
		argv[i+1] = ""
	}
	argv[anchor] += "," + value
	argv[i] = ""
}

// loadRequestFiles consumes every token after the -r value that names an
// existing regular file, appending each path to the value token, and stops
// at the first token that does not.
func loadRequestFiles(argv []string, i int) {
	for j := i + 2; j < len(argv); j++ {
		if !isRegularFile(argv[j]) {
			break
		}
		argv[i+1] += "," + argv[j]
		argv[j] = ""
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isHeaderOption(token string) bool {
	return token == "-H" || token == "--header" ||
		strings.HasPrefix(token, "-H=") || strings.HasPrefix(token, "--header=")
}

// renamedPrefix returns the legacy spelling that prefixes token, or "".
func renamedPrefix(cat *catalog.Catalog, token string) string {
	for _, legacy := range cat.RenamedKeys() {
		if strings.HasPrefix(token, legacy) {
			return legacy
		}
	}
	return ""
}
