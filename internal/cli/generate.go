package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billdonner/obo-gen/internal/domain"
	"github.com/billdonner/obo-gen/internal/generation"
	"github.com/billdonner/obo-gen/internal/service"
)

type generateOptions struct {
	ageRange string
	count    int
	output   string
	voice    string
	noSave   bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate a deck about a topic",
		Long: `Generate asks the language model for a deck about <topic>, prints the
deck text and saves the deck unless --no-save is given.

A deck with no parsable cards, or one that cannot be saved, is still
printed; the problem is reported as a warning.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, strings.Join(args, " "), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ageRange, "age", "", "target age range, e.g. 4-6 (default from config)")
	f.IntVarP(&opts.count, "count", "n", 0, fmt.Sprintf("number of cards, %d-%d (default from config)", generation.MinCount, generation.MaxCount))
	f.StringVarP(&opts.output, "output", "o", "", "write the deck to this file instead of stdout")
	f.StringVar(&opts.voice, "voice", "", "narration voice hint appended to the deck")
	f.BoolVar(&opts.noSave, "no-save", false, "do not save the deck")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, topic string, opts *generateOptions) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return usageErrorf("topic must not be empty")
	}
	if cmd.Flags().Changed("age") && strings.TrimSpace(opts.ageRange) == "" {
		return usageErrorf("--age must not be empty")
	}
	if cmd.Flags().Changed("count") && (opts.count < generation.MinCount || opts.count > generation.MaxCount) {
		return usageErrorf("--count must be between %d and %d, got %d", generation.MinCount, generation.MaxCount, opts.count)
	}

	if err := a.setup(cmd); err != nil {
		return err
	}

	req := service.GenerateRequest{
		Topic:    topic,
		AgeRange: strings.TrimSpace(opts.ageRange),
		Count:    opts.count,
		Voice:    domain.SomeVoice(opts.voice),
		Save:     !opts.noSave,
	}
	if req.AgeRange == "" {
		req.AgeRange = a.cfg.Deck.DefaultAgeRange
	}
	if !cmd.Flags().Changed("count") {
		req.Count = a.cfg.Deck.DefaultCount
	}

	genReq := generation.Request{Topic: req.Topic, AgeRange: req.AgeRange, Count: req.Count}
	if err := genReq.Validate(); err != nil {
		return &UsageError{Err: err}
	}

	svc, err := a.deckService(cmd, true)
	if err != nil {
		return err
	}

	res, err := svc.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		printWarning(cmd, w)
	}

	if err := writeOutput(cmd, opts.output, res.Text); err != nil {
		return err
	}

	if res.DeckID != nil {
		sum := domain.DeckSummary{ID: *res.DeckID}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved deck %s (%d cards)\n", sum.ShortID(), res.Deck.CardCount())
	}
	return nil
}
