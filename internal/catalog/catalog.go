package catalog

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Kind describes the arity and value type of an option.
type Kind int

const (
	// KindSwitch is a boolean flag taking no value.
	KindSwitch Kind = iota
	// KindString takes a single string value.
	KindString
	// KindInt takes a single integer value.
	KindInt
	// KindFloat takes a single floating point value.
	KindFloat
)

// Option is a single declarative option spec. It is read-only during
// normalization and parsing.
type Option struct {
	// Dest is the canonical destination name, e.g. "ignoreCode".
	Dest string
	// Names holds every invocation string, dashes included, short forms
	// first, e.g. ["-u", "--url"].
	Names []string
	// Kind is the option arity/type.
	Kind Kind
	// Help is the help text, or "" for hidden options.
	Help string
	// Basic marks the option as part of the basic (-h) help output.
	Basic bool
	// Hidden suppresses the option from all help output.
	Hidden bool
	// Default is the optional typed default value.
	Default *cty.Value
}

// Long returns the longest invocation string without its leading dashes,
// which doubles as the option's canonical long name.
func (o *Option) Long() string {
	name := ""
	for _, n := range o.Names {
		if trimmed := strings.TrimLeft(n, "-"); len(trimmed) > len(name) {
			name = trimmed
		}
	}
	return name
}

// TakesValue reports whether the option consumes a value token.
func (o *Option) TakesValue() bool {
	return o.Kind != KindSwitch
}

// Group is a named set of options sharing a help section.
type Group struct {
	Name        string
	Description string
	Options     []*Option
}

// Compat holds the tables consulted for legacy and obsolete spellings.
type Compat struct {
	// Ignored tokens are silently elided from argv.
	Ignored []string
	// Deprecated tokens are elided from argv.
	Deprecated []string
	// Renamed maps a legacy spelling prefix to its canonical replacement,
	// substituted once at the start of a token.
	Renamed map[string]string
	// Aliases maps an exact legacy token to its canonical replacement.
	Aliases map[string]string
}

// Catalog is the build-once, immutable option catalogue.
type Catalog struct {
	// TopLevel holds ungrouped options (help, version, verbosity).
	TopLevel []*Option
	// Groups holds the option groups in declaration order.
	Groups []*Group
	// Compat holds the legacy spelling tables.
	Compat Compat

	byName      map[string]*Option
	longValue   map[string]struct{}
	longSwitch  map[string]struct{}
	ordered     []*Option
	renamedKeys []string
}

// Lookup resolves an invocation string (dashes included) to its option.
func (c *Catalog) Lookup(name string) (*Option, bool) {
	opt, ok := c.byName[name]
	return opt, ok
}

// Options returns every option in declaration order, top-level first.
func (c *Catalog) Options() []*Option {
	return c.ordered
}

// IsLongName reports whether name (without dashes, without any =value part)
// matches a known long option or switch.
func (c *Catalog) IsLongName(name string) bool {
	if _, ok := c.longValue[name]; ok {
		return true
	}
	_, ok := c.longSwitch[name]
	return ok
}

// IsLongValueName reports whether name (without dashes) matches a known
// long option that takes a value.
func (c *Catalog) IsLongValueName(name string) bool {
	_, ok := c.longValue[name]
	return ok
}

// RenamedKeys returns the legacy renamed spellings in sorted order, so
// prefix substitution over them is deterministic.
func (c *Catalog) RenamedKeys() []string {
	return c.renamedKeys
}

// AllNames returns every invocation string across all options, used to
// build the interactive shell's completion vocabulary.
func (c *Catalog) AllNames() []string {
	names := make([]string, 0, len(c.byName))
	for _, opt := range c.ordered {
		names = append(names, opt.Names...)
	}
	return names
}

// index builds the lookup tables after decoding.
func (c *Catalog) index() {
	c.byName = make(map[string]*Option)
	c.longValue = make(map[string]struct{})
	c.longSwitch = make(map[string]struct{})
	c.ordered = nil

	register := func(opt *Option) {
		c.ordered = append(c.ordered, opt)
		for _, name := range opt.Names {
			c.byName[name] = opt
			if strings.HasPrefix(name, "--") {
				long := strings.TrimPrefix(name, "--")
				if opt.TakesValue() {
					c.longValue[long] = struct{}{}
				} else {
					c.longSwitch[long] = struct{}{}
				}
			}
		}
	}

	for _, opt := range c.TopLevel {
		register(opt)
	}
	for _, group := range c.Groups {
		for _, opt := range group.Options {
			register(opt)
		}
	}

	c.renamedKeys = nil
	for legacy := range c.Compat.Renamed {
		c.renamedKeys = append(c.renamedKeys, legacy)
	}
	sort.Strings(c.renamedKeys)
}
