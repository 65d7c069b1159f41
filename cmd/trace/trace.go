package trace

import (
	"errors"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var runId string

var Command = &cobra.Command{
	Use:              "trace",
	Short:            "Commands for recorded controller runs",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&runId,
		"id", "i",
		"",
		"Run ID as printed by 'trace list'",
	)
}

func openPersistence() (persistence.Persistence, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	if err := configuration.LoadConfig(); err != nil {
		return nil, err
	}
	dbPath := configuration.CurrentConfig.Trace.DbPath
	ui.Debug("Using trace database at: %s", dbPath)
	return persistence.NewPersistence(dbPath), nil
}

func requireRunId() error {
	if len(runId) <= 0 {
		return errors.New("missing run id, use --id")
	}
	return nil
}
