package trace

import (
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
	"time"
)

var lastSamples int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the samples of a recorded run and plots its position",
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
		if len(samples) == 0 {
			ui.Info("Run %s has no samples", runId)
			return nil
		}

		tableString, err := ui.RenderTable(
			[]string{"Time", "Setpoint", "Position", "Output", "Kp", "Ki", "Kd", "Escalated"},
			sampleRows(tail(samples, lastSamples)),
			!global.NoColor,
		)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		positions := make([]float64, len(samples))
		for i, sample := range samples {
			positions[i] = sample.Position
		}
		graph := asciigraph.Plot(positions, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("Position"))
		ui.Printfln(graph)
		return nil
	},
}

func tail(samples []persistence.Sample, count int) []persistence.Sample {
	if count <= 0 || count >= len(samples) {
		return samples
	}
	return samples[len(samples)-count:]
}

func sampleRows(samples []persistence.Sample) [][]string {
	var rows [][]string
	for _, sample := range samples {
		escalated := ""
		if sample.Escalated {
			escalated = "yes"
		}
		rows = append(rows, []string{
			sample.Time.Format(time.StampMilli),
			fmt.Sprintf("%.2f", sample.Setpoint),
			fmt.Sprintf("%.2f", sample.Position),
			fmt.Sprintf("%.2f", sample.Output),
			fmt.Sprintf("%.4f", sample.Kp),
			fmt.Sprintf("%.4f", sample.Ki),
			fmt.Sprintf("%.4f", sample.Kd),
			escalated,
		})
	}
	return rows
}

func init() {
	showCmd.Flags().IntVarP(&lastSamples, "last", "l", 20, "Number of samples to print, 0 prints all")

	Command.AddCommand(showCmd)
}
