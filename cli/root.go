package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/junaidrashid-git/sunrise-cafe/config"
	"github.com/junaidrashid-git/sunrise-cafe/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	// Overrides DATABASE_URL when set.
	DatabaseURL string
}

// NewRootCommand creates the root command. Running it without a subcommand serves the site.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	serve := NewServeCommand(opts)
	cmd := &cobra.Command{
		Use:           "sunrise",
		Short:         "Sunrise Café ordering site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database", "", "database URL or sqlite path (overrides DATABASE_URL)")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewExportInventoryCommand(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies flag overrides and the log level.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if opts.DatabaseURL != "" {
		cfg.DatabaseURL = opts.DatabaseURL
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg, nil
}

// openDatabase connects, migrates and seeds.
func openDatabase(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Seed(ctx, db, cfg.Admin); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return db, nil
}
