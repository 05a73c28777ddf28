// Package main is the entry point of obo-gen, a command-line generator of
// flashcard decks for children.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/billdonner/obo-gen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Deps{})
	stop()
	os.Exit(code)
}
