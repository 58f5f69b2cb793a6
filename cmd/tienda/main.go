// Command tienda runs the categories and products API and its database chores.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiendaonline/tienda-api/app/config"
	"github.com/tiendaonline/tienda-api/app/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tienda",
	Short:         "Categories and products API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(pingCmd)
}

// boot loads configuration and installs the process logger.
func boot() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logging.New(os.Stdout, cfg.IsProduction())
	slog.SetDefault(log)
	return cfg, log, nil
}
