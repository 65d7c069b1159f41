package pid

import (
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"math"
)

const (
	// critical gain numerator applied to the oscillation amplitude
	criticalGainFactor = 4.0
	// used as critical gain if no amplitude could be measured
	fallbackCriticalGain = 1.0

	proportionalFactor = 0.6
	integralFactor     = 2.0
	derivativeDivisor  = 8.0
)

// estimator re-estimates gains from the oscillation observed in the error signal
type estimator struct {
	params    TuningParameters
	tolerance float64
	window    *oscillationWindow
}

func newEstimator(params TuningParameters, tolerance float64) *estimator {
	return &estimator{
		params:    params,
		tolerance: tolerance,
		window:    newOscillationWindow(params.WindowSize),
	}
}

// step records a sample and retunes the given gains once enough
// oscillation has been observed. Returns true if gains were changed.
func (e *estimator) step(err float64, dt float64, gains *Gains) bool {
	e.window.push(err, dt)

	elapsed := e.window.elapsed()
	if elapsed <= e.params.ThresholdTime.Seconds() {
		return false
	}

	errors := e.window.errors()
	amplitude := util.Max(errors) - util.Min(errors)
	if amplitude <= e.tolerance {
		// stable, nothing to tune
		return false
	}

	ku := util.SafeDiv(criticalGainFactor, amplitude, fallbackCriticalGain)
	tu := util.SafeDiv(elapsed, float64(e.window.len()), 0)

	maxGains := e.params.MaxGains
	kp := math.Min(proportionalFactor*ku, maxGains.Kp)
	ki := math.Min(util.SafeDiv(integralFactor*kp, tu, maxGains.Ki), maxGains.Ki)
	kd := math.Min(kp*tu/derivativeDivisor, maxGains.Kd)

	latest, _ := e.window.latest()
	if math.Abs(latest.err) < e.params.StabilityThreshold {
		kp *= e.params.Damping
		ki *= e.params.Damping
		kd *= e.params.Damping
	}

	ui.Debug("Retuned gains from amplitude %.4f over %.4fs (Ku: %.4f, Tu: %.4f): Kp %.4f -> %.4f, Ki %.4f -> %.4f, Kd %.4f -> %.4f",
		amplitude, elapsed, ku, tu, gains.Kp, kp, gains.Ki, ki, gains.Kd, kd)

	gains.Kp = kp
	gains.Ki = ki
	gains.Kd = kd

	e.window.reset()
	return true
}
