package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [command] [args...]",
		Short: "Apply the deck schema to the configured database",
		Long: `Migrate runs a schema migration command against the configured
database. The default command is "up". PostgreSQL accepts every goose
command (up, down, status, version, redo, reset, up-to N, down-to N).
SQLite is migrated automatically and accepts only "up" and "status".`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command, args = args[0], args[1:]
			}

			if err := a.setup(cmd); err != nil {
				return err
			}

			if err := a.deps.Migrate(cmd.Context(), a.cfg.Database, command, a.logger, args...); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Migration %q completed\n", command)
			return nil
		},
	}
}
