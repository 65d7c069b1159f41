package pid

import "time"

type Gains struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

// TuningParameters configure the self-tuning estimator.
type TuningParameters struct {
	// Capacity of the oscillation window
	WindowSize int
	// Minimum observed time within the window before a retune is considered
	ThresholdTime time.Duration
	// Gains are damped after a retune if the latest error magnitude is below this value
	StabilityThreshold float64
	// Factor applied to all gains when the system is close to the setpoint
	Damping float64
	// Upper bounds for estimated gains
	MaxGains Gains
}

// EscalationParameters configure the deadline driven gain boost.
type EscalationParameters struct {
	Enabled bool
	// Time after which an out of tolerance error triggers a boost
	Deadline time.Duration
	// Factors gains are multiplied with on every boosted tick
	Boost Gains
	// Clamp boosted gains to the tuning upper bounds
	ClampGains bool
}

type Parameters struct {
	// Initial gains
	Gains Gains

	OutputMin float64
	OutputMax float64

	// Time step assumed for the very first tick
	DefaultDt time.Duration
	// Lower bound for the time step, protects the derivative against a repeated timestamp
	MinDt time.Duration

	// Error magnitude considered "on target", shared by estimator and escalation
	Tolerance float64

	// Number of ticks used for the mean absolute error telemetry
	ErrorWindowSize int

	Tuning     TuningParameters
	Escalation EscalationParameters
}

// DefaultParameters returns the canonical constants: a window of 10 samples,
// one second observation and escalation deadlines, a tolerance of 2.0,
// damping of 0.95 and boost factors of 1.5, 1.2 and 1.1.
func DefaultParameters() Parameters {
	return Parameters{
		Gains: Gains{
			Kp: 1.0,
			Ki: 0.1,
			Kd: 0.05,
		},
		OutputMin:       -100,
		OutputMax:       100,
		DefaultDt:       100 * time.Millisecond,
		MinDt:           time.Microsecond,
		Tolerance:       2.0,
		ErrorWindowSize: 50,
		Tuning: TuningParameters{
			WindowSize:         10,
			ThresholdTime:      1 * time.Second,
			StabilityThreshold: 1.0,
			Damping:            0.95,
			MaxGains: Gains{
				Kp: 10,
				Ki: 2,
				Kd: 1,
			},
		},
		Escalation: EscalationParameters{
			Enabled:  true,
			Deadline: 1 * time.Second,
			Boost: Gains{
				Kp: 1.5,
				Ki: 1.2,
				Kd: 1.1,
			},
			ClampGains: true,
		},
	}
}

// Validate checks the parameters for values that would make the controller unstable or divide by zero.
func (p Parameters) Validate() error {
	if p.OutputMin >= p.OutputMax {
		return &InvalidConfigurationError{Field: "outputMin", Value: p.OutputMin, Reason: "must be smaller than outputMax"}
	}
	if p.DefaultDt <= 0 {
		return &InvalidConfigurationError{Field: "defaultDt", Value: p.DefaultDt, Reason: "must be positive"}
	}
	if p.MinDt <= 0 {
		return &InvalidConfigurationError{Field: "minDt", Value: p.MinDt, Reason: "must be positive"}
	}
	if p.MinDt > p.DefaultDt {
		return &InvalidConfigurationError{Field: "minDt", Value: p.MinDt, Reason: "must not exceed defaultDt"}
	}
	if p.Tolerance < 0 {
		return &InvalidConfigurationError{Field: "tolerance", Value: p.Tolerance, Reason: "must not be negative"}
	}
	if p.ErrorWindowSize <= 0 {
		return &InvalidConfigurationError{Field: "errorWindowSize", Value: p.ErrorWindowSize, Reason: "must be positive"}
	}

	tuning := p.Tuning
	if tuning.WindowSize <= 0 {
		return &InvalidConfigurationError{Field: "tuning.windowSize", Value: tuning.WindowSize, Reason: "must be positive"}
	}
	if tuning.ThresholdTime < 0 {
		return &InvalidConfigurationError{Field: "tuning.thresholdTime", Value: tuning.ThresholdTime, Reason: "must not be negative"}
	}
	if tuning.Damping <= 0 || tuning.Damping > 1 {
		return &InvalidConfigurationError{Field: "tuning.damping", Value: tuning.Damping, Reason: "must be in (0..1]"}
	}
	if tuning.MaxGains.Kp <= 0 || tuning.MaxGains.Ki <= 0 || tuning.MaxGains.Kd <= 0 {
		return &InvalidConfigurationError{Field: "tuning.maxGains", Value: tuning.MaxGains, Reason: "all upper bounds must be positive"}
	}

	escalation := p.Escalation
	if escalation.Enabled {
		if escalation.Deadline < 0 {
			return &InvalidConfigurationError{Field: "escalation.deadline", Value: escalation.Deadline, Reason: "must not be negative"}
		}
		if escalation.Boost.Kp <= 0 || escalation.Boost.Ki <= 0 || escalation.Boost.Kd <= 0 {
			return &InvalidConfigurationError{Field: "escalation.boost", Value: escalation.Boost, Reason: "all boost factors must be positive"}
		}
	}

	return nil
}
