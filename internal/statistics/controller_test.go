package statistics

import (
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

type staticSnapshot pid.Snapshot

func (s staticSnapshot) Log() pid.Snapshot {
	return pid.Snapshot(s)
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(staticSnapshot{
		Mode:          pid.ModeAutomatic,
		Kp:            1.5,
		Ki:            0.12,
		Kd:            0.055,
		Setpoint:      50,
		Position:      20,
		PreviousError: 30,
		Escalated:     true,
		Ticks:         12,
		Boosts:        2,
	})

	expected := `
# HELP pid2go_controller_escalation_active 1 while an escalation episode is running
# TYPE pid2go_controller_escalation_active gauge
pid2go_controller_escalation_active{mode="automatic"} 1
# HELP pid2go_controller_escalation_boosts_total Number of ticks on which gains were boosted by the escalation policy
# TYPE pid2go_controller_escalation_boosts_total counter
pid2go_controller_escalation_boosts_total{mode="automatic"} 2
# HELP pid2go_controller_gain Currently active gain of the controller
# TYPE pid2go_controller_gain gauge
pid2go_controller_gain{mode="automatic",term="d"} 0.055
pid2go_controller_gain{mode="automatic",term="i"} 0.12
pid2go_controller_gain{mode="automatic",term="p"} 1.5
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"pid2go_controller_escalation_active",
		"pid2go_controller_escalation_boosts_total",
		"pid2go_controller_gain",
	)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 15, testutil.CollectAndCount(collector))
}
