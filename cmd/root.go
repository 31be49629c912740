package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/questpilot/hackquest-bot/questpilot"
	"github.com/questpilot/hackquest-bot/questpilot/config"
	"github.com/questpilot/hackquest-bot/questpilot/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg       *questpilot.Config
	logCloser io.Closer

	rootCmd = &cobra.Command{
		Use:           "questpilot",
		Short:         "Progress HackQuest accounts through the learning ecosystem",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				slog.Warn("Failed to load .env", slog.Any("error", err))
			}
			if !cmd.Flags().Changed("config") {
				if env := os.Getenv(questpilot.EnvConfigPath); env != "" {
					configPath = env
				}
			}

			loaded, err := questpilot.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			logCloser, err = logger.Setup(logger.Options{
				Level:     cfg.Log.Level,
				File:      cfg.Log.File,
				AddSource: cfg.Log.AddSource,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to config")
}

// Execute runs the CLI. With no subcommand it behaves like run.
func Execute() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, slog.LevelInfo)))

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		logger.LogError("Command failed", err)
		os.Exit(1)
	}
}
