// Package cli builds the cobra command tree, validates user input, and maps
// failures to process exit codes. It translates flags into the
// application's internal configuration.
package cli
