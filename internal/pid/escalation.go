package pid

import (
	"github.com/markusressel/pid2go/internal/ui"
	"math"
	"time"
)

type escalationEvent int

const (
	escalationNone escalationEvent = iota
	escalationStarted
	escalationBoosted
	escalationReverted
)

// escalation temporarily amplifies gains if the setpoint is not reached within a deadline
type escalation struct {
	params    EscalationParameters
	maxGains  Gains
	tolerance float64

	// start of the current episode, nil while idle
	startTime *time.Time
	// number of boosts applied in the current episode
	boosts int
}

func newEscalation(params EscalationParameters, maxGains Gains, tolerance float64) *escalation {
	return &escalation{
		params:    params,
		maxGains:  maxGains,
		tolerance: tolerance,
	}
}

func (e *escalation) active() bool {
	return e.startTime != nil
}

// step advances the policy for one tick, possibly modifying the given gains
func (e *escalation) step(now time.Time, err float64, gains *Gains) escalationEvent {
	if e.startTime == nil {
		start := now
		e.startTime = &start
		e.boosts = 0
		return escalationStarted
	}

	if now.Sub(*e.startTime) <= e.params.Deadline {
		return escalationNone
	}

	absErr := math.Abs(err)
	switch {
	case absErr > e.tolerance:
		e.boost(gains)
		e.boosts++
		ui.Debug("Escalation deadline exceeded (error: %.4f, boost #%d): Kp %.4f, Ki %.4f, Kd %.4f",
			err, e.boosts, gains.Kp, gains.Ki, gains.Kd)
		return escalationBoosted
	case absErr < e.tolerance:
		event := escalationNone
		if e.boosts > 0 {
			e.revert(gains)
			event = escalationReverted
			ui.Debug("Escalation finished after %d boosts: Kp %.4f, Ki %.4f, Kd %.4f",
				e.boosts, gains.Kp, gains.Ki, gains.Kd)
		}
		e.startTime = nil
		e.boosts = 0
		return event
	}

	return escalationNone
}

func (e *escalation) boost(gains *Gains) {
	gains.Kp = e.boosted(gains.Kp, e.params.Boost.Kp, e.maxGains.Kp)
	gains.Ki = e.boosted(gains.Ki, e.params.Boost.Ki, e.maxGains.Ki)
	gains.Kd = e.boosted(gains.Kd, e.params.Boost.Kd, e.maxGains.Kd)
}

// boosted never lowers a gain, even one that already exceeds its upper bound
func (e *escalation) boosted(gain float64, factor float64, upperBound float64) float64 {
	result := gain * factor
	if e.params.ClampGains {
		result = math.Max(gain, math.Min(result, upperBound))
	}
	return result
}

// revert undoes a single boost step
func (e *escalation) revert(gains *Gains) {
	gains.Kp /= e.params.Boost.Kp
	gains.Ki /= e.params.Boost.Ki
	gains.Kd /= e.params.Boost.Kd
}
