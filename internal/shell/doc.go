// Package shell implements the interactive prompt that collects one command
// line from the operator and tokenizes it into argv form. The prompt carries
// persistent history under the user's home directory and tab completion over
// the full option vocabulary.
package shell
