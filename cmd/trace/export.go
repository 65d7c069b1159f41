package trace

import (
	"bytes"
	"fmt"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/spf13/cobra"
)

var outputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the samples of a recorded run as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRunId(); err != nil {
			return err
		}
		p, err := openPersistence()
		if err != nil {
			return err
		}
		samples, err := p.LoadSamples(runId)
		if err != nil {
			return fmt.Errorf("unable to load run '%s': %w", runId, err)
		}

		var buf bytes.Buffer
		if err = persistence.WriteCsv(&buf, samples); err != nil {
			return err
		}

		if len(outputPath) <= 0 {
			ui.Printf("%s", buf.String())
			return nil
		}
		if err = util.WriteFileAtomic(outputPath, buf.Bytes()); err != nil {
			return err
		}
		ui.Success("Exported %d samples of run %s to %s", len(samples), runId, outputPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, prints to stdout if empty")

	Command.AddCommand(exportCmd)
}
