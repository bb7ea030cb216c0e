// Package mnemonic expands compact macro tokens (-z "flu,bat,ban,tec=EU")
// into canonical option destinations by prefix lookup over the catalogue.
package mnemonic

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vk/sqlrake/internal/catalog"
	"github.com/vk/sqlrake/internal/ctxlog"
)

// Assignment is one destination value produced by expanding a mnemonic.
type Assignment struct {
	Dest  string
	Value any
}

// Expand resolves every comma-separated mnemonic code (optionally carrying
// an =value suffix) against the catalogue's option names. Codes are
// processed left to right and the first code to claim a destination wins;
// later codes never override it. An unresolvable code is reported and
// skipped so the remaining codes still expand.
func Expand(ctx context.Context, mnemonics string, cat *catalog.Catalog) []Assignment {
	logger := ctxlog.FromContext(ctx)

	var assignments []Assignment
	claimed := make(map[string]struct{})

	for _, code := range strings.Split(mnemonics, ",") {
		name, value, hasValue := strings.Cut(code, "=")
		name = strings.TrimSpace(strings.ReplaceAll(name, "-", ""))
		if name == "" {
			continue
		}

		opt := resolve(cat, name, logger.With("mnemonic", name))
		if opt == nil {
			logger.Error("mnemonic can't be resolved to any parameter name",
				"mnemonic", name)
			continue
		}
		if _, taken := claimed[opt.Dest]; taken {
			continue
		}
		claimed[opt.Dest] = struct{}{}

		switch {
		case !opt.TakesValue():
			assignments = append(assignments, Assignment{Dest: opt.Dest, Value: true})
		case hasValue:
			converted, err := opt.Convert(value)
			if err != nil {
				logger.Warn("mnemonic value ignored", "error", err)
				continue
			}
			assignments = append(assignments, Assignment{Dest: opt.Dest, Value: converted})
		case opt.DefaultValue() != nil:
			assignments = append(assignments, Assignment{Dest: opt.Dest, Value: opt.DefaultValue()})
		}
	}

	return assignments
}

// resolve finds the option a mnemonic code stands for: an exact long-name
// match wins, otherwise the shortest long name carrying the code as prefix.
// Returns nil when no option matches.
func resolve(cat *catalog.Catalog, name string, logger *slog.Logger) *catalog.Option {
	var candidates []*catalog.Option
	for _, opt := range cat.Options() {
		for _, invocation := range opt.Names {
			if strings.HasPrefix(strings.TrimLeft(invocation, "-"), name) {
				candidates = append(candidates, opt)
				break
			}
		}
	}

	switch len(candidates) {
	case 0:
		return nil
	case 1:
		logger.Debug("mnemonic resolved", "option", candidates[0].Long())
		return candidates[0]
	}

	best := candidates[0]
	for _, opt := range candidates[1:] {
		if opt.Long() == name {
			best = opt
			break
		}
		if len(opt.Long()) < len(best.Long()) && best.Long() != name {
			best = opt
		}
	}

	names := make([]string, 0, len(candidates))
	for _, opt := range candidates {
		names = append(names, "'"+opt.Long()+"'")
	}
	logger.Warn("detected ambiguity, resolved to shortest match",
		"candidates", strings.Join(names, ", "), "resolved", best.Long())
	return best
}
