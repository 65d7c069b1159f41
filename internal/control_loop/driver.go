package control_loop

import (
	"context"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	"time"
)

// Driver is the fixed-period caller of a Controller. On every tick it feeds
// the current position into the controller, ticks it with the ramped
// setpoint and hands the resulting snapshot to all observers.
type Driver struct {
	controller Controller
	position   PositionSource
	setpoint   *SetpointRamp
	tickRate   time.Duration
	observers  []Observer
}

func NewDriver(
	controller Controller,
	position PositionSource,
	setpoint *SetpointRamp,
	tickRate time.Duration,
	observers ...Observer,
) *Driver {
	return &Driver{
		controller: controller,
		position:   position,
		setpoint:   setpoint,
		tickRate:   tickRate,
		observers:  observers,
	}
}

// Run ticks the controller until the context is cancelled
func (d *Driver) Run(ctx context.Context) error {
	ui.Info("Starting control loop with a tick rate of %v", d.tickRate)

	ticker := time.NewTicker(d.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping control loop...")
			return nil
		case <-ticker.C:
			d.Step()
		}
	}
}

// Step runs a single tick
func (d *Driver) Step() pid.Snapshot {
	d.controller.SetPosition(d.position.Position())
	output := d.controller.Tick(d.setpoint.Next())
	snapshot := d.controller.Log()

	ui.Debug("Tick %d: setpoint: %.4f, position: %.4f, output: %.4f", snapshot.Ticks, snapshot.Setpoint, snapshot.Position, output)

	for _, observer := range d.observers {
		observer.Observe(snapshot)
	}
	return snapshot
}
