// Package cli wires the whole front-end pipeline: optional interactive
// shell, argv rewriting, option parsing and validation. It translates
// user input problems into ExitError values carrying the process exit code;
// it never terminates the process itself.
package cli
