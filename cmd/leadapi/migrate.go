package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/thermocore/leadapi/pkg/db"
	"github.com/thermocore/leadapi/pkg/logger"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the job queue tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if !cfg.DB.Enabled() {
				return errNoDatabase
			}

			log := logger.New(cfg.Logger, os.Stderr)
			pool, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.Migrate(cmd.Context(), pool, log)
		},
	}
}
