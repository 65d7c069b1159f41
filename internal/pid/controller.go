package pid

import (
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/pid2go/internal/clock"
	"github.com/markusressel/pid2go/internal/util"
	"math"
	"sync"
	"time"
)

// Controller is a PID controller which, in automatic mode, tunes its own
// gains and escalates them if the setpoint is not reached in time.
// All methods are safe for concurrent use, a single mutex covers each call.
type Controller struct {
	mu sync.Mutex

	mode     Mode
	params   Parameters
	actuator Actuator
	clock    clock.Clock

	gains    Gains
	setpoint float64
	position float64
	// accumulated error * time
	integral      float64
	previousError float64
	previousTime  time.Time
	initialized   bool
	lastOutput    float64

	estimator  *estimator
	escalation *escalation

	// rolling |error| used for telemetry only
	errorWindow *rolling.PointPolicy

	ticks   uint64
	retunes uint64
	boosts  uint64
	reverts uint64
}

// GainUpdate describes a partial gain change, nil fields are left unchanged
type GainUpdate struct {
	Kp *float64 `json:"kp,omitempty"`
	Ki *float64 `json:"ki,omitempty"`
	Kd *float64 `json:"kd,omitempty"`
}

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	Mode          Mode    `json:"mode"`
	Kp            float64 `json:"kp"`
	Ki            float64 `json:"ki"`
	Kd            float64 `json:"kd"`
	Setpoint      float64 `json:"setpoint"`
	Position      float64 `json:"position"`
	Integral      float64 `json:"integral"`
	PreviousError float64 `json:"previousError"`

	Output       float64 `json:"output"`
	Escalated    bool    `json:"escalated"`
	WindowSize   int     `json:"windowSize"`
	MeanAbsError float64 `json:"meanAbsError"`
	Ticks        uint64  `json:"ticks"`
	Retunes      uint64  `json:"retunes"`
	Boosts       uint64  `json:"boosts"`
	Reverts      uint64  `json:"reverts"`
}

// NewController creates a Controller. A nil actuator is allowed,
// a nil clock falls back to the system clock.
func NewController(mode Mode, params Parameters, actuator Actuator, clk clock.Clock) (*Controller, error) {
	if !mode.Valid() {
		_, err := ParseMode(string(mode))
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System()
	}

	return &Controller{
		mode:        mode,
		params:      params,
		actuator:    actuator,
		clock:       clk,
		gains:       params.Gains,
		estimator:   newEstimator(params.Tuning, params.Tolerance),
		escalation:  newEscalation(params.Escalation, params.Tuning.MaxGains, params.Tolerance),
		errorWindow: util.CreateRollingWindow(params.ErrorWindowSize),
	}, nil
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// SetGains overwrites the given gains, only allowed in manual mode
func (c *Controller) SetGains(update GainUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeManual {
		return &InvalidModeError{Operation: "setting gains", Mode: c.mode}
	}

	if update.Kp != nil {
		c.gains.Kp = *update.Kp
	}
	if update.Ki != nil {
		c.gains.Ki = *update.Ki
	}
	if update.Kd != nil {
		c.gains.Kd = *update.Kd
	}
	return nil
}

// SetPosition updates the measured value of the controlled system
func (c *Controller) SetPosition(position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

// Tick advances the controller towards the given setpoint, notifies
// the actuator and returns the clamped output.
func (c *Controller) Tick(setpoint float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setpoint = setpoint
	err := c.setpoint - c.position

	now := c.clock.Now()
	dt := c.params.DefaultDt.Seconds()
	if c.initialized {
		dt = now.Sub(c.previousTime).Seconds()
	}
	// a repeated (or non monotonic) timestamp must not zero the derivative divisor
	dt = math.Max(dt, c.params.MinDt.Seconds())
	c.previousTime = now
	c.initialized = true

	if c.mode == ModeAutomatic {
		if c.params.Escalation.Enabled {
			switch c.escalation.step(now, err, &c.gains) {
			case escalationBoosted:
				c.boosts++
			case escalationReverted:
				c.reverts++
			}
		}
		if c.estimator.step(err, dt, &c.gains) {
			c.retunes++
		}
	}

	c.integral += err * dt
	derivative := (err - c.previousError) / dt
	c.previousError = err

	output := c.gains.Kp*err + c.gains.Ki*c.integral + c.gains.Kd*derivative
	output = util.Coerce(output, c.params.OutputMin, c.params.OutputMax)
	c.lastOutput = output

	if c.ticks == 0 {
		util.FillWindow(c.errorWindow, c.params.ErrorWindowSize, math.Abs(err))
	} else {
		c.errorWindow.Append(math.Abs(err))
	}
	c.ticks++

	if c.actuator != nil {
		c.actuator.Apply(output)
	}

	return output
}

// Log returns a snapshot of the current controller state
func (c *Controller) Log() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := Snapshot{
		Mode:          c.mode,
		Kp:            c.gains.Kp,
		Ki:            c.gains.Ki,
		Kd:            c.gains.Kd,
		Setpoint:      c.setpoint,
		Position:      c.position,
		Integral:      c.integral,
		PreviousError: c.previousError,
		Output:        c.lastOutput,
		Escalated:     c.escalation.active(),
		WindowSize:    c.estimator.window.len(),
		Ticks:         c.ticks,
		Retunes:       c.retunes,
		Boosts:        c.boosts,
		Reverts:       c.reverts,
	}
	if c.ticks > 0 {
		snapshot.MeanAbsError = util.GetWindowAvg(c.errorWindow)
	}
	return snapshot
}

// Gains returns the currently active gains
func (c *Controller) Gains() Gains {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gains
}
