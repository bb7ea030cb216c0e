// Package options turns a rewritten argv into the canonical Options value.
// Parsing is catalogue-driven (exact invocation match, typed coercion) and
// followed by a validation pass that merges the rewriter's side channels,
// expands mnemonics and enforces the mandatory-target rule.
package options
