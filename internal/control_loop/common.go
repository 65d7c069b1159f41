package control_loop

import "github.com/markusressel/pid2go/internal/pid"

// Controller is the part of a pid.Controller driven by a Driver
type Controller interface {
	SetPosition(position float64)
	// Tick advances the control loop
	Tick(setpoint float64) float64
	Log() pid.Snapshot
}

// PositionSource provides the measured value of the controlled system
type PositionSource interface {
	Position() float64
}

// Observer is notified with a snapshot after every tick
type Observer interface {
	Observe(snapshot pid.Snapshot)
}

type ObserverFunc func(snapshot pid.Snapshot)

func (f ObserverFunc) Observe(snapshot pid.Snapshot) {
	f(snapshot)
}
