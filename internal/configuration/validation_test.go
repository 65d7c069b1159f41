package configuration

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func defaultTestConfig(t *testing.T) Configuration {
	config, err := loadTestConfig(t, "")
	require.NoError(t, err)
	return config
}

func TestValidateInvalidMode(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Controller.Mode = "semi"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: unsupported mode 'semi', use one of: manual | automatic")
}

func TestValidateTickRate(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Controller.TickRate = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: tickRate must be positive")
}

func TestValidateOutputRange(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Controller.OutputMin = 100

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: invalid configuration value for outputMin (100): must be smaller than outputMax")
}

func TestValidateWindowSize(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Tuning.WindowSize = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: invalid configuration value for tuning.windowSize (0): must be positive")
}

func TestValidateBoostFactors(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Escalation.Boost.Kd = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.ErrorContains(t, err, "escalation.boost")
}

func TestValidateBoostFactorsIgnoredWhenDisabled(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Escalation.Enabled = false
	config.Escalation.Boost.Kd = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidatePlantRange(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Plant.InitialPosition = 150

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "plant: initialPosition (150) must be within [0..100]")
}

func TestValidateApiPort(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Api.Enabled = true
	config.Api.Port = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "api: invalid port 0")
}

func TestValidateTraceDbPath(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Trace.Enabled = true
	config.Trace.DbPath = ""

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "trace: dbPath is required when tracing is enabled")
}

func TestValidateProfilingPort(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Profiling.Enabled = true
	config.Profiling.Port = 70000

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "profiling: invalid port 70000")
}

func TestValidateMinDtExceedsDefaultDt(t *testing.T) {
	// GIVEN
	config := defaultTestConfig(t)
	config.Controller.DefaultDt = time.Microsecond
	config.Controller.MinDt = time.Millisecond

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "controller: invalid configuration value for minDt (1ms): must not exceed defaultDt")
}
