package config

import (
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "config",
	Short: "Configuration related commands",
	Long:  ``,
}

func loadConfig() error {
	// note: config file path parameter comes from the root command (-c)
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	return configuration.LoadConfig()
}
