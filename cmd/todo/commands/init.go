package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/todolist/todolist/pkg/config"
)

func newInitCommand() *cobra.Command {
	var (
		driver string
		dsn    string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the items table",
		Long: `Write a configuration file and bootstrap the database it points at.

Without flags the config selects a SQLite file under ./data. The schema is
created by running the embedded migrations, so init is safe to repeat
against an existing database.`,
		Example: `  # Local SQLite list
  todo init

  # Shared MySQL list
  todo init --driver mysql --dsn "todo:todo@tcp(127.0.0.1:3306)/todo"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			path := configPath
			if path == "" {
				path = config.DefaultPath
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			// Defaults plus environment, then flags
			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.Database.Driver = driver
			}
			if dsn != "" {
				cfg.Database.DSN = dsn
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info().
				Str("config", path).
				Str("driver", cfg.Database.Driver).
				Msg("Initializing to-do list")

			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote config: %s\n", path)

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(out, "✓ Database ready: %s (%s)\n", cfg.Database.DSN, cfg.Database.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "database driver (sqlite or mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
