package cli

import (
	"context"
	"fmt"
	"log/slog"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/billdonner/obo-gen/internal/config"
	"github.com/billdonner/obo-gen/internal/platform/logger"
	"github.com/billdonner/obo-gen/internal/redact"
	"github.com/billdonner/obo-gen/internal/service"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	deps Deps

	configFile string
	envFile    string
	logLevel   string
	list       bool
	export     string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the obo-gen command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	a := &app{deps: deps.withDefaults()}

	root := &cobra.Command{
		Use:   "obo-gen",
		Short: "Generate flashcard decks for children",
		Long: `obo-gen asks a language model for a deck of question and answer cards
about a topic, prints it in the deck text format and saves it.

Examples:
  obo-gen generate "Planets" --age 4-6 -n 8
  obo-gen generate Dinosaurs --voice "friendly narrator" --output dinos.txt
  obo-gen --list
  obo-gen --export 3f2a9c1e`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runRoot,
	}

	root.SetOut(a.deps.Stdout)
	root.SetErr(a.deps.Stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./obo-gen.yaml or $HOME/.config/obo-gen/obo-gen.yaml)")
	pf.StringVar(&a.envFile, "env-file", "", "environment file to load (default .env)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.Flags().BoolVar(&a.list, "list", false, "list saved decks")
	root.Flags().StringVar(&a.export, "export", "", "print the saved deck with this id or id prefix")

	root.AddCommand(newGenerateCmd(a), newMigrateCmd(a))
	return root
}

// Execute runs the command line with args and returns the exit code.
func Execute(ctx context.Context, args []string, deps Deps) int {
	root := NewRootCmd(deps)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(root, err)
	}
	return ExitCode(err)
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	exporting := cmd.Flags().Changed("export")
	switch {
	case a.list && exporting:
		return usageErrorf("--list and --export cannot be combined")
	case a.list:
		return a.runList(cmd)
	case exporting:
		return a.runExport(cmd, a.export)
	default:
		_ = cmd.Help()
		return usageErrorf("no operation given: use a subcommand, --list or --export")
	}
}

// setup loads configuration and builds the logger. It runs after argument
// validation so usage errors never touch config, network or store.
func (a *app) setup(cmd *cobra.Command) error {
	if a.logLevel != "" {
		if _, ok := logger.ParseLevel(a.logLevel); !ok {
			return usageErrorf("invalid --log-level %q", a.logLevel)
		}
	}

	cfg, err := a.deps.LoadConfig(config.Options{ConfigFile: a.configFile, EnvFile: a.envFile})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger = logger.Setup(cfg.Log, a.deps.Stderr)
	cmd.SetContext(logger.WithLogger(cmd.Context(), a.logger))
	return nil
}

func (a *app) deckService(cmd *cobra.Command, withGenerator bool) (*service.DeckService, error) {
	opener, err := a.deps.NewOpener(a.cfg.Database, a.logger)
	if err != nil {
		return nil, err
	}

	if !withGenerator {
		return service.NewDeckService(nil, opener, a.logger), nil
	}

	gen, err := a.deps.NewGenerator(cmd.Context(), a.logger, a.cfg.LLM)
	if err != nil {
		return nil, err
	}
	return service.NewDeckService(gen, opener, a.logger), nil
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func printWarning(cmd *cobra.Command, err error) {
	yellow := colorize.New(colorize.FgYellow)
	_, _ = yellow.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", redact.Error(err))
}

func printError(cmd *cobra.Command, err error) {
	red := colorize.New(colorize.FgRed, colorize.Bold)
	_, _ = red.Fprint(cmd.ErrOrStderr(), "Error: ")
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), redact.String(describe(err)))

	if ExitCode(err) == ExitUsage {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
}
