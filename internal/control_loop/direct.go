package control_loop

import (
	"github.com/markusressel/pid2go/internal/clock"
	"github.com/markusressel/pid2go/internal/util"
	"sync"
	"time"
)

// SetpointRamp gracefully approaches a target setpoint by changing the
// effective setpoint at most by maxChangePerSecond. A limit of 0 applies
// new targets immediately.
type SetpointRamp struct {
	mu sync.Mutex

	clock              clock.Clock
	maxChangePerSecond float64

	target   float64
	current  float64
	lastTime time.Time
}

func NewSetpointRamp(
	clk clock.Clock,
	initial float64,
	// limits the setpoint change per second, 0 disables the limit
	maxChangePerSecond float64,
) *SetpointRamp {
	return &SetpointRamp{
		clock:              clk,
		maxChangePerSecond: maxChangePerSecond,
		target:             initial,
		current:            initial,
		lastTime:           clk.Now(),
	}
}

func (r *SetpointRamp) SetTarget(target float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
}

func (r *SetpointRamp) Target() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

// Next returns the setpoint for the current tick
func (r *SetpointRamp) Next() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	dt := now.Sub(r.lastTime).Seconds()
	r.lastTime = now

	if r.maxChangePerSecond <= 0 {
		r.current = r.target
		return r.current
	}

	// we can be above or below the target,
	// so we add or subtract at most the max change,
	// capped to having reached the target
	maxChangeThisStep := r.maxChangePerSecond * dt
	diff := r.target - r.current
	if diff > 0 {
		r.current += util.Coerce(maxChangeThisStep, 0, diff)
	} else {
		r.current += util.Coerce(-maxChangeThisStep, diff, 0)
	}
	return r.current
}
