package internal

import (
	"github.com/markusressel/pid2go/internal/clock"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func createTestConfig(t *testing.T) configuration.Configuration {
	viper.Reset()
	configuration.InitConfig("")
	require.NoError(t, configuration.LoadConfig())
	return configuration.CurrentConfig
}

func TestNewDaemon_Defaults(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)
	clk := clock.NewFake(testStart)

	// WHEN
	daemon, err := NewDaemon(config, clk)

	// THEN
	require.NoError(t, err)
	assert.Nil(t, daemon.Recorder)
	assert.Equal(t, pid.ModeAutomatic, daemon.Controller.Mode())
	assert.Equal(t, config.Setpoint.Initial, daemon.Setpoint.Target())
	assert.Equal(t, config.Plant.InitialPosition, daemon.Plant.Position())
}

func TestNewDaemon_StepMovesPlant(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)
	clk := clock.NewFake(testStart)
	daemon, err := NewDaemon(config, clk)
	require.NoError(t, err)

	// WHEN
	clk.Advance(config.Controller.TickRate)
	snapshot := daemon.Driver.Step()

	// THEN
	assert.EqualValues(t, 1, snapshot.Ticks)
	assert.Equal(t, config.Setpoint.Initial, snapshot.Setpoint)
	assert.Greater(t, daemon.Plant.Position(), config.Plant.InitialPosition)
}

func TestNewDaemon_InvalidMode(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)
	config.Controller.Mode = "semi"

	// WHEN
	daemon, err := NewDaemon(config, clock.NewFake(testStart))

	// THEN
	assert.Error(t, err)
	assert.Nil(t, daemon)
}

func TestNewDaemon_RecordsTrace(t *testing.T) {
	// GIVEN
	config := createTestConfig(t)
	config.Trace.Enabled = true
	config.Trace.DbPath = filepath.Join(t.TempDir(), "trace.db")
	clk := clock.NewFake(testStart)
	daemon, err := NewDaemon(config, clk)
	require.NoError(t, err)
	require.NotNil(t, daemon.Recorder)

	// WHEN
	for i := 0; i < 60; i++ {
		clk.Advance(config.Controller.TickRate)
		daemon.Driver.Step()
	}
	require.NoError(t, daemon.Recorder.Flush())

	// THEN
	assert.Equal(t, "20240301-120000", daemon.Recorder.RunId())
	samples, err := persistence.NewPersistence(config.Trace.DbPath).LoadSamples(daemon.Recorder.RunId())
	require.NoError(t, err)
	assert.Len(t, samples, 60)
	assert.WithinDuration(t, testStart.Add(config.Controller.TickRate), samples[0].Time, 0)
}

func TestProfilingHandler(t *testing.T) {
	// GIVEN
	handler := profilingHandler()
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	rec := httptest.NewRecorder()

	// WHEN
	handler.ServeHTTP(rec, req)

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}
