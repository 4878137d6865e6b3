package main

import (
	"fmt"

	"github.com/aevon-lab/affinity/internal/migrations"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd, false)
		if err != nil {
			return err
		}
		defer store.Close()

		if !migrateStatus {
			// database.auto_migrate only governs serve; an explicit migrate always applies.
			if err := migrations.RunMigrations(store.DB(), cfg.Database.Driver, true); err != nil {
				return err
			}
		}

		version, dirty, err := migrations.Version(store.DB(), cfg.Database.Driver)
		if err != nil {
			return err
		}

		state := color.GreenString("clean")
		if dirty {
			state = color.RedString("dirty")
		}
		fmt.Printf("driver:  %s\nversion: %d\nstate:   %s\n", cfg.Database.Driver, version, state)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Only print the applied schema version")
}
