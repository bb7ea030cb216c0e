package catalog

import (
	"fmt"
	"io"
	"strings"
)

// maxInvocationLength bounds the invocation column so long option lists do
// not push help text onto a second line.
const maxInvocationLength = 26

// Usage writes the help output for the catalogue. When basic is true only
// options marked basic are shown and groups left with no visible member are
// elided entirely. It reports whether any visible option was filtered out,
// so the caller can hint at the advanced help flag.
func (c *Catalog) Usage(w io.Writer, usage string, basic bool) bool {
	filtered := false
	if usage != "" {
		fmt.Fprintf(w, "Usage: %s\n", usage)
	}

	fmt.Fprintf(w, "\nOptions:\n")
	fmt.Fprintf(w, "  %-*s %s\n", maxInvocationLength, "-h, --help", "Show basic help message and exit")
	for _, opt := range c.TopLevel {
		if opt.Hidden {
			continue
		}
		if basic && !opt.Basic {
			filtered = true
			continue
		}
		writeOption(w, opt)
	}

	for _, group := range c.Groups {
		visible := make([]*Option, 0, len(group.Options))
		for _, opt := range group.Options {
			if opt.Hidden {
				continue
			}
			if basic && !opt.Basic {
				filtered = true
				continue
			}
			visible = append(visible, opt)
		}
		if len(visible) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", group.Name)
		if group.Description != "" {
			fmt.Fprintf(w, "  %s\n\n", group.Description)
		}
		for _, opt := range visible {
			writeOption(w, opt)
		}
	}
	return filtered
}

func writeOption(w io.Writer, opt *Option) {
	fmt.Fprintf(w, "  %-*s %s\n", maxInvocationLength, invocation(opt), opt.Help)
}

// invocation renders the option's invocation strings the way the help
// column shows them, e.g. "-u URL, --url=URL".
func invocation(opt *Option) string {
	metavar := strings.ToUpper(opt.Dest)
	parts := make([]string, 0, len(opt.Names))
	for _, name := range opt.Names {
		switch {
		case !opt.TakesValue():
			parts = append(parts, name)
		case strings.HasPrefix(name, "--"):
			parts = append(parts, name+"="+metavar)
		default:
			parts = append(parts, name+" "+metavar)
		}
	}

	joined := strings.Join(parts, ", ")
	if len(joined) > maxInvocationLength {
		joined = joined[:maxInvocationLength-2] + ".."
	}
	return joined
}
