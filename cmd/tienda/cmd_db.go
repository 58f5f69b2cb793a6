package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tiendaonline/tienda-api/app/database"
)

// tienda migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the categoria and producto tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := boot()
		if err != nil {
			return err
		}

		db, closeDB, err := database.New(cfg.Database, log)
		if err != nil {
			return err
		}
		defer closeDB()

		log.Info("running migrations", "driver", cfg.Database.Driver)
		return database.Migrate(db)
	},
}

var pingTimeout time.Duration

// tienda ping
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the database accepts connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := boot()
		if err != nil {
			return err
		}

		db, closeDB, err := database.New(cfg.Database, log)
		if err != nil {
			return fmt.Errorf("unhealthy: %w", err)
		}
		defer closeDB()

		ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
		defer cancel()
		if err := database.NewChecker(db).Ping(ctx); err != nil {
			return fmt.Errorf("unhealthy: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "healthy")
		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 5*time.Second, "how long to wait for a connection")
}
