package trace

import (
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
	"time"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists all recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPersistence()
		if err != nil {
			return err
		}
		runs, err := p.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			ui.Info("No recorded runs")
			return nil
		}

		tableString, err := ui.RenderTable([]string{"ID", "Mode", "Started", "Samples"}, runRows(runs), !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		return nil
	},
}

func runRows(runs []persistence.RunInfo) [][]string {
	var rows [][]string
	for _, run := range runs {
		rows = append(rows, []string{
			run.Id,
			run.Mode.String(),
			run.Started.Format(time.RFC3339),
			strconv.Itoa(run.Samples),
		})
	}
	return rows
}

func init() {
	Command.AddCommand(listCmd)
}
