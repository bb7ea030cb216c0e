// Package catalog owns the declarative option catalogue: every invocation
// string, destination, arity and help text the front end knows about, plus
// the compatibility tables for legacy spellings. The catalogue is decoded
// once from an embedded HCL schema and is read-only afterwards; the argv
// rewriter consults it as a capability, never as a global.
package catalog
