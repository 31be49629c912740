package cmd

import (
	"log/slog"

	"github.com/questpilot/hackquest-bot/questpilot"
	"github.com/questpilot/hackquest-bot/questpilot/logger"
	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "create the ledger schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := questpilot.Migrate(cmd.Context(), cfg.DB); err != nil {
			slog.Error("Migration failed", "error", err)
			return err
		}

		logger.LogSystem("Migration completed successfully!", slog.String("driver", cfg.DB.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
