package internal

import (
	"github.com/markusressel/pid2go/internal/clock"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/util"
	"math"
	"time"
)

var simulationStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Disturbance shifts the plant position by Offset right before the given tick
type Disturbance struct {
	Tick   int
	Offset float64
}

type SimulationOptions struct {
	Ticks        int
	Disturbances []Disturbance
}

type SimulationResult struct {
	Snapshots []pid.Snapshot
	// Positions holds the plant position after every tick
	Positions []float64
	// index of the first tick from which on the error stays within
	// the tolerance, -1 if the loop never settled
	SettledAt int
}

// Simulate runs the configured control loop against a fake clock,
// as fast as possible and without tracing.
func Simulate(config configuration.Configuration, options SimulationOptions) (SimulationResult, error) {
	config.Trace.Enabled = false

	clk := clock.NewFake(simulationStart)
	daemon, err := NewDaemon(config, clk)
	if err != nil {
		return SimulationResult{}, err
	}

	disturbances := map[int]float64{}
	for _, disturbance := range options.Disturbances {
		disturbances[disturbance.Tick] += disturbance.Offset
	}

	result := SimulationResult{
		Snapshots: make([]pid.Snapshot, 0, options.Ticks),
		Positions: make([]float64, 0, options.Ticks),
	}
	for i := 0; i < options.Ticks; i++ {
		clk.Advance(config.Controller.TickRate)
		if offset, ok := disturbances[i]; ok {
			daemon.Plant.Disturb(offset)
		}
		result.Snapshots = append(result.Snapshots, daemon.Driver.Step())
		result.Positions = append(result.Positions, daemon.Plant.Position())
	}
	result.SettledAt = settledAt(result.Snapshots, config.Controller.Tolerance)

	return result, nil
}

func settledAt(snapshots []pid.Snapshot, tolerance float64) int {
	settled := -1
	for i := len(snapshots) - 1; i >= 0; i-- {
		if math.Abs(snapshots[i].PreviousError) > tolerance {
			break
		}
		settled = i
	}
	return settled
}

// MeanAbsError of all simulated ticks
func (r SimulationResult) MeanAbsError() float64 {
	absErrors := make([]float64, len(r.Snapshots))
	for i, snapshot := range r.Snapshots {
		absErrors[i] = math.Abs(snapshot.PreviousError)
	}
	return util.Avg(absErrors)
}

// Overshoot is the largest distance the position travelled past the setpoint
func (r SimulationResult) Overshoot() float64 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	initialError := r.Snapshots[0].PreviousError
	overshoot := 0.0
	for i, snapshot := range r.Snapshots {
		past := r.Positions[i] - snapshot.Setpoint
		if initialError < 0 {
			past = -past
		}
		overshoot = math.Max(overshoot, past)
	}
	return overshoot
}
