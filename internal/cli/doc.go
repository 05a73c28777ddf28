// Package cli implements the obo-gen command line: the generate and migrate
// subcommands and the root --list and --export flags.
//
// Deck text goes to stdout (or --output). Logs, warnings and errors go to
// stderr. Execute maps errors to process exit codes.
package cli
