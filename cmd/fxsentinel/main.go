package main

import (
	"os"

	"github.com/spf13/cobra"

	"fxsentinel/internal/config"
	"fxsentinel/internal/logger"
)

var (
	cfgPath string
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:   "fxsentinel",
		Short: "Forex signal bot: polls a rate, scores indicators and mails a trade alert",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			logger.Init(loaded.Log.Level, loaded.Log.Pretty)
			cfg = loaded
			return nil
		},
		SilenceUsage: true,
	}
)

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "path to the YAML config file")
	rootCmd.AddCommand(runCmd, onceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.L().Error().Err(err).Msg("fxsentinel exited")
		os.Exit(1)
	}
}
