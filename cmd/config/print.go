package config

import (
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the effective configuration, including defaults",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		data, err := yaml.Marshal(configuration.EffectiveSettings())
		if err != nil {
			return err
		}
		ui.Printf("%s", string(data))
		return nil
	},
}

func init() {
	Command.AddCommand(printCmd)
}
