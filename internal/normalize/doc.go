// Package normalize implements the argv preprocessing pass that runs before
// the option parser: per-token unicode sanitization, an ordered chain of
// rewrite rules (legacy aliasing, multi-valued aggregation, short/long
// disambiguation, special consumption rules) and the verbosity shorthand
// sweep. Tokens are rewritten in place; a deleted token becomes the empty
// string so positions stay stable for lookahead/lookbehind rules, and empty
// tokens are compacted out only after the pass.
package normalize
