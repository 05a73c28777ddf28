package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/store"
)

const createdLayout = "2006-01-02 15:04"

func (a *app) runList(cmd *cobra.Command) error {
	if err := a.setup(cmd); err != nil {
		return err
	}

	svc, err := a.deckService(cmd, false)
	if err != nil {
		return err
	}

	decks, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}

	return writeTable(cmd, decks)
}

func writeTable(cmd *cobra.Command, decks []domain.DeckSummary) error {
	out := cmd.OutOrStdout()
	if len(decks) == 0 {
		_, err := fmt.Fprintln(out, "No decks found.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTOPIC\tAGE\tCARDS\tCREATED")
	for _, d := range decks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			d.ShortID(), d.Title, d.AgeRange, d.CardCount, d.CreatedAt.Local().Format(createdLayout))
	}
	return tw.Flush()
}

func (a *app) runExport(cmd *cobra.Command, ref string) error {
	if _, err := store.ParseDeckRef(ref); err != nil {
		return &UsageError{Err: fmt.Errorf("--export: %w", err)}
	}

	if err := a.setup(cmd); err != nil {
		return err
	}

	svc, err := a.deckService(cmd, false)
	if err != nil {
		return err
	}

	text, err := svc.Export(cmd.Context(), ref)
	if err != nil {
		return err
	}

	return writeOutput(cmd, "", text)
}

// writeOutput writes text to path (created 0644) or to stdout when path is
// empty. The text always ends with a newline.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
