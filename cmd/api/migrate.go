package main

import (
	"github.com/spf13/cobra"

	"example.com/notes-api/internal/db"
	"example.com/notes-api/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations ahead of the first request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		pool := db.NewPool(cfg.DatabaseURL, db.Options{
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		})
		defer pool.Close()

		conn, err := pool.Get(cmd.Context())
		if err != nil {
			return err
		}
		if err := migrations.Up(cmd.Context(), conn); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}
