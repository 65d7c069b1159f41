package pid

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func feedEstimator(e *estimator, gains *Gains, dt float64, errors ...float64) (retuned bool) {
	for _, err := range errors {
		retuned = e.step(err, dt, gains)
	}
	return retuned
}

func TestOscillationWindow_FIFO(t *testing.T) {
	// GIVEN
	window := newOscillationWindow(3)

	// WHEN
	for i := 1; i <= 5; i++ {
		window.push(float64(i), 0.1)
	}

	// THEN
	assert.Equal(t, 3, window.len())
	assert.Equal(t, []float64{3, 4, 5}, window.errors())
	latest, ok := window.latest()
	assert.True(t, ok)
	assert.Equal(t, 5.0, latest.err)
}

func TestOscillationWindow_Reset(t *testing.T) {
	// GIVEN
	window := newOscillationWindow(3)
	window.push(1, 0.5)
	window.push(2, 0.25)
	assert.Equal(t, 0.75, window.elapsed())

	// WHEN
	window.reset()

	// THEN
	assert.Equal(t, 0, window.len())
	assert.Equal(t, 0.0, window.elapsed())
	_, ok := window.latest()
	assert.False(t, ok)
}

func TestEstimator_WaitsForThresholdTime(t *testing.T) {
	// GIVEN
	e := newEstimator(DefaultParameters().Tuning, 2.0)
	gains := DefaultParameters().Gains

	// WHEN
	// 4 * 0.25s is not more than the 1s threshold
	retuned := feedEstimator(e, &gains, 0.25, 5, -5, 5, -5)

	// THEN
	assert.False(t, retuned)
	assert.Equal(t, DefaultParameters().Gains, gains)
	assert.Equal(t, 4, e.window.len())
}

func TestEstimator_StableSystemIsNotRetuned(t *testing.T) {
	// GIVEN
	e := newEstimator(DefaultParameters().Tuning, 2.0)
	gains := DefaultParameters().Gains

	// WHEN
	retuned := feedEstimator(e, &gains, 0.25, 1, 2, 1, 2, 1, 2)

	// THEN
	assert.False(t, retuned)
	assert.Equal(t, DefaultParameters().Gains, gains)
	assert.Equal(t, 6, e.window.len())
}

func TestEstimator_Retune(t *testing.T) {
	// GIVEN
	e := newEstimator(DefaultParameters().Tuning, 2.0)
	gains := DefaultParameters().Gains

	// WHEN
	retuned := feedEstimator(e, &gains, 0.25, 5, -5, 5, -5, 5)

	// THEN
	// amplitude 10 -> Ku 0.4, Tu 1.25s / 5 = 0.25s
	assert.True(t, retuned)
	assert.InDelta(t, 0.24, gains.Kp, 1e-9)
	assert.InDelta(t, 1.92, gains.Ki, 1e-9)
	assert.InDelta(t, 0.0075, gains.Kd, 1e-9)
	assert.Equal(t, 0, e.window.len())
}

func TestEstimator_DampingNearSetpoint(t *testing.T) {
	// GIVEN
	e := newEstimator(DefaultParameters().Tuning, 2.0)
	gains := DefaultParameters().Gains

	// WHEN
	retuned := feedEstimator(e, &gains, 0.25, 5, -5, 5, -5, 0.5)

	// THEN
	assert.True(t, retuned)
	assert.InDelta(t, 0.24*0.95, gains.Kp, 1e-9)
	assert.InDelta(t, 1.92*0.95, gains.Ki, 1e-9)
	assert.InDelta(t, 0.0075*0.95, gains.Kd, 1e-9)
}

func TestEstimator_ClampsGains(t *testing.T) {
	// GIVEN
	params := DefaultParameters().Tuning
	params.StabilityThreshold = 0
	e := newEstimator(params, 0.1)
	gains := DefaultParameters().Gains

	// WHEN
	// amplitude 0.2 -> Ku 20 -> Kp 12
	retuned := feedEstimator(e, &gains, 0.25, 0.1, 0.3, 0.1, 0.3, 0.1)

	// THEN
	assert.True(t, retuned)
	assert.Equal(t, params.MaxGains.Kp, gains.Kp)
	assert.Equal(t, params.MaxGains.Ki, gains.Ki)
	assert.InDelta(t, 10*0.25/8, gains.Kd, 1e-9)
}

func TestEstimator_SmallWindowVariant(t *testing.T) {
	// GIVEN
	params := DefaultParameters().Tuning
	params.WindowSize = 5
	params.ThresholdTime = 2 * time.Second
	e := newEstimator(params, 2.0)
	gains := DefaultParameters().Gains

	// WHEN
	// the window only ever covers 5 * 0.25s, which never exceeds the threshold
	retuned := feedEstimator(e, &gains, 0.25, 5, -5, 5, -5, 5, -5, 5, -5, 5, -5)

	// THEN
	assert.False(t, retuned)
	assert.Equal(t, 5, e.window.len())
}
