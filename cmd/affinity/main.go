package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/affinity/internal/core/config"
	"github.com/aevon-lab/affinity/internal/core/storage/sqlstore"
	"github.com/aevon-lab/affinity/internal/migrations"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=..."
var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *corecfg.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "affinity",
	Short:        "Group chat affinity metrics",
	Long:         color.CyanString("affinity") + " counts how members of a group chat interact and turns a day of activity into a social profile.",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		// Skip config loading for commands that don't touch storage.
		if cmd.Name() == "version" || cmd.Name() == "schema" {
			return nil
		}

		var err error
		cfg, err = corecfg.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults and AFFINITY_ env vars apply without one)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(backfillCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("affinity", version)
	},
}

// openStore opens the configured database. With migrate set, pending
// migrations run (subject to database.auto_migrate) and the schema is checked.
func openStore(cmd *cobra.Command, migrate bool) (*sqlstore.Adapter, error) {
	var (
		adapter *sqlstore.Adapter
		err     error
	)
	switch sqlstore.Dialect(cfg.Database.Driver) {
	case sqlstore.DialectPostgres:
		adapter, err = sqlstore.OpenPostgres(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	case sqlstore.DialectSQLite:
		adapter, err = sqlstore.OpenSQLite(cfg.Database.DSN)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if !migrate {
		return adapter, nil
	}

	if err := migrations.RunMigrations(adapter.DB(), cfg.Database.Driver, cfg.Database.AutoMigrate); err != nil {
		adapter.Close()
		return nil, err
	}
	if err := adapter.ValidateSchema(cmd.Context()); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("database schema is not ready (run `affinity migrate`): %w", err)
	}
	return adapter, nil
}
