package cmd

import (
	"github.com/markusressel/pid2go/internal"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseDisturbances(t *testing.T) {
	// GIVEN
	values := []string{"200:-20", " 10 : 5.5"}

	// WHEN
	result, err := parseDisturbances(values)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []internal.Disturbance{
		{Tick: 200, Offset: -20},
		{Tick: 10, Offset: 5.5},
	}, result)
}

func TestParseDisturbances_Invalid(t *testing.T) {
	for _, value := range []string{"200", "x:1", "-1:1", "5:abc"} {
		t.Run(value, func(t *testing.T) {
			// WHEN
			_, err := parseDisturbances([]string{value})

			// THEN
			assert.Error(t, err)
		})
	}
}

func TestSummaryRow(t *testing.T) {
	// GIVEN
	result := internal.SimulationResult{
		Snapshots: []pid.Snapshot{
			{Mode: pid.ModeAutomatic, Setpoint: 50, PreviousError: 30},
			{Mode: pid.ModeAutomatic, Setpoint: 50, PreviousError: 1, Kp: 1, Ki: 0.1, Kd: 0.05, Retunes: 2, Boosts: 3, Reverts: 1},
		},
		Positions: []float64{40, 49.5},
		SettledAt: 1,
	}

	// WHEN
	row := summaryRow(result)

	// THEN
	assert.Equal(t, []string{"2", "automatic", "49.500", "1.0000", "0.1000", "0.0500", "2", "3", "1", "tick 1", "0.000", "15.500"}, row)
}
