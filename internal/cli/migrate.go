package cli

import (
	"fmt"

	"greenleaf/internal/database/migration"
	dbpostgres "greenleaf/internal/database/postgres"
	"greenleaf/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lg, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = lg.Sync() }()

		db, err := dbpostgres.Connect(cmd.Context(), cfg.Database, lg)
		if err != nil {
			return err
		}
		defer db.Close()

		r := migration.Runner{Source: migrations.FS, Logger: lg}
		if err := r.Run(cmd.Context(), db.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		lg.Info("migrations up to date", zap.String("db", cfg.Database.DBName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
