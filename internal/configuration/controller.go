package configuration

import (
	"github.com/markusressel/pid2go/internal/pid"
	"time"
)

type GainsConfig struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

type ControllerConfig struct {
	// Either "manual" or "automatic"
	Mode  pid.Mode    `json:"mode"`
	Gains GainsConfig `json:"gains"`

	OutputMin float64 `json:"outputMin"`
	OutputMax float64 `json:"outputMax"`

	// Time step assumed for the first tick
	DefaultDt time.Duration `json:"defaultDt"`
	// Smallest time step used for the derivative
	MinDt time.Duration `json:"minDt"`

	Tolerance float64 `json:"tolerance"`

	// Interval between two ticks of the daemon
	TickRate time.Duration `json:"tickRate"`

	ErrorWindowSize int `json:"errorWindowSize"`
}

type TuningConfig struct {
	WindowSize         int           `json:"windowSize"`
	ThresholdTime      time.Duration `json:"thresholdTime"`
	StabilityThreshold float64       `json:"stabilityThreshold"`
	Damping            float64       `json:"damping"`
	MaxGains           GainsConfig   `json:"maxGains"`
}

type EscalationConfig struct {
	Enabled    bool          `json:"enabled"`
	Deadline   time.Duration `json:"deadline"`
	Boost      GainsConfig   `json:"boost"`
	ClampGains bool          `json:"clampGains"`
}

func (g GainsConfig) toGains() pid.Gains {
	return pid.Gains{Kp: g.Kp, Ki: g.Ki, Kd: g.Kd}
}

// ToParameters converts the controller related sections to pid.Parameters
func (c Configuration) ToParameters() pid.Parameters {
	return pid.Parameters{
		Gains:           c.Controller.Gains.toGains(),
		OutputMin:       c.Controller.OutputMin,
		OutputMax:       c.Controller.OutputMax,
		DefaultDt:       c.Controller.DefaultDt,
		MinDt:           c.Controller.MinDt,
		Tolerance:       c.Controller.Tolerance,
		ErrorWindowSize: c.Controller.ErrorWindowSize,
		Tuning: pid.TuningParameters{
			WindowSize:         c.Tuning.WindowSize,
			ThresholdTime:      c.Tuning.ThresholdTime,
			StabilityThreshold: c.Tuning.StabilityThreshold,
			Damping:            c.Tuning.Damping,
			MaxGains:           c.Tuning.MaxGains.toGains(),
		},
		Escalation: pid.EscalationParameters{
			Enabled:    c.Escalation.Enabled,
			Deadline:   c.Escalation.Deadline,
			Boost:      c.Escalation.Boost.toGains(),
			ClampGains: c.Escalation.ClampGains,
		},
	}
}
