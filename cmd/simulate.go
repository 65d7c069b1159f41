package cmd

import (
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
	"strings"
)

var (
	simulationTicks  int
	simulationTarget float64
	disturbanceFlags []string
	graphHeight      int
	graphWidth       int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Runs the configured controller against the simulated plant and plots the result",
	Long: `Runs the configured control loop against a fake clock, as fast as possible.
Disturbances shift the plant position right before the given tick, e.g. --disturb 200:-20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		if err := configuration.LoadConfig(); err != nil {
			return err
		}
		if err := configuration.Validate(); err != nil {
			ui.Fatal("%v", err)
		}

		disturbances, err := parseDisturbances(disturbanceFlags)
		if err != nil {
			return err
		}

		config := configuration.CurrentConfig
		if cmd.Flags().Changed("setpoint") {
			config.Setpoint.Initial = simulationTarget
		}

		result, err := internal.Simulate(config, internal.SimulationOptions{
			Ticks:        simulationTicks,
			Disturbances: disturbances,
		})
		if err != nil {
			return err
		}
		if len(result.Snapshots) == 0 {
			return nil
		}

		tableString, err := ui.RenderTable(
			[]string{"Ticks", "Mode", "Position", "Kp", "Ki", "Kd", "Retunes", "Boosts", "Reverts", "Settled", "Overshoot", "Mean |Error|"},
			[][]string{summaryRow(result)},
			!global.NoColor,
		)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		setpoints := make([]float64, len(result.Snapshots))
		for i, snapshot := range result.Snapshots {
			setpoints[i] = snapshot.Setpoint
		}

		options := []asciigraph.Option{
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("Position / Setpoint"),
		}
		if !global.NoColor {
			options = append(options, asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red))
		}
		graph := asciigraph.PlotMany([][]float64{result.Positions, setpoints}, options...)
		ui.Printfln(graph)

		return nil
	},
}

func summaryRow(result internal.SimulationResult) []string {
	last := result.Snapshots[len(result.Snapshots)-1]

	settled := "never"
	if result.SettledAt >= 0 {
		settled = fmt.Sprintf("tick %d", result.SettledAt)
	}

	return []string{
		strconv.Itoa(len(result.Snapshots)),
		last.Mode.String(),
		fmt.Sprintf("%.3f", result.Positions[len(result.Positions)-1]),
		fmt.Sprintf("%.4f", last.Kp),
		fmt.Sprintf("%.4f", last.Ki),
		fmt.Sprintf("%.4f", last.Kd),
		strconv.FormatUint(last.Retunes, 10),
		strconv.FormatUint(last.Boosts, 10),
		strconv.FormatUint(last.Reverts, 10),
		settled,
		fmt.Sprintf("%.3f", result.Overshoot()),
		fmt.Sprintf("%.3f", result.MeanAbsError()),
	}
}

// parseDisturbances parses values of the form "tick:offset"
func parseDisturbances(values []string) ([]internal.Disturbance, error) {
	var result []internal.Disturbance
	for _, value := range values {
		parts := strings.SplitN(value, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid disturbance '%s', expected tick:offset", value)
		}
		tick, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || tick < 0 {
			return nil, fmt.Errorf("invalid disturbance tick '%s'", parts[0])
		}
		offset, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid disturbance offset '%s'", parts[1])
		}
		result = append(result, internal.Disturbance{Tick: tick, Offset: offset})
	}
	return result, nil
}

func init() {
	simulateCmd.Flags().IntVarP(&simulationTicks, "ticks", "n", 300, "Number of ticks to simulate")
	simulateCmd.Flags().Float64VarP(&simulationTarget, "setpoint", "s", 0, "Setpoint to approach, defaults to setpoint.initial")
	simulateCmd.Flags().StringSliceVarP(&disturbanceFlags, "disturb", "d", []string{}, "Disturbances as tick:offset")
	simulateCmd.Flags().IntVar(&graphHeight, "height", 15, "Height of the plot")
	simulateCmd.Flags().IntVar(&graphWidth, "width", 100, "Width of the plot")

	rootCmd.AddCommand(simulateCmd)
}
