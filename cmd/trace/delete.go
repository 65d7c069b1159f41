package trace

import (
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Deletes a recorded run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRunId(); err != nil {
			return err
		}
		p, err := openPersistence()
		if err != nil {
			return err
		}
		if err = p.DeleteRun(runId); err != nil {
			return err
		}
		ui.Success("Deleted run %s", runId)
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
