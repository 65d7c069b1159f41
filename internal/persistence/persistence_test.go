package persistence

import (
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createPersistence(t *testing.T) Persistence {
	p := NewPersistence(filepath.Join(t.TempDir(), "nested", "trace.db"))
	require.NoError(t, p.Init())
	return p
}

func createSamples(count int) []Sample {
	var result []Sample
	start := time.Unix(1700000000, 0).UTC()
	for i := 0; i < count; i++ {
		result = append(result, Sample{
			Time:     start.Add(time.Duration(i) * 100 * time.Millisecond),
			Setpoint: 50,
			Position: float64(i),
			Output:   50 - float64(i),
			Kp:       1.0,
			Ki:       0.1,
			Kd:       0.05,
		})
	}
	return result
}

func TestPersistence_SaveAndLoadSamples(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	run := RunInfo{Id: "run1", Mode: pid.ModeAutomatic, Started: time.Unix(1700000000, 0).UTC()}
	require.NoError(t, p.StartRun(run))
	samples := createSamples(300)

	// WHEN
	err := p.SaveSamples(run.Id, samples[:200])
	assert.NoError(t, err)
	err = p.SaveSamples(run.Id, samples[200:])
	assert.NoError(t, err)

	// THEN
	loaded, err := p.LoadSamples(run.Id)
	assert.NoError(t, err)
	assert.Equal(t, samples, loaded)

	runs, err := p.ListRuns()
	assert.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, 300, runs[0].Samples)
	assert.Equal(t, pid.ModeAutomatic, runs[0].Mode)
}

func TestPersistence_SaveSamplesUnknownRun(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	err := p.SaveSamples("missing", createSamples(1))

	// THEN
	assert.EqualError(t, err, "unknown run: missing")
}

func TestPersistence_LoadSamplesUnknownRun(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	samples, err := p.LoadSamples("missing")

	// THEN
	assert.Nil(t, samples)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_StartRunResetsSamples(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	run := RunInfo{Id: "run1", Mode: pid.ModeManual, Started: time.Unix(0, 0).UTC()}
	require.NoError(t, p.StartRun(run))
	require.NoError(t, p.SaveSamples(run.Id, createSamples(5)))

	// WHEN
	err := p.StartRun(run)

	// THEN
	assert.NoError(t, err)
	samples, err := p.LoadSamples(run.Id)
	assert.NoError(t, err)
	assert.Empty(t, samples)
}

func TestPersistence_ListRunsSorted(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	require.NoError(t, p.StartRun(RunInfo{Id: "b", Started: time.Unix(200, 0).UTC()}))
	require.NoError(t, p.StartRun(RunInfo{Id: "a", Started: time.Unix(300, 0).UTC()}))
	require.NoError(t, p.StartRun(RunInfo{Id: "c", Started: time.Unix(100, 0).UTC()}))

	// WHEN
	runs, err := p.ListRuns()

	// THEN
	assert.NoError(t, err)
	var ids []string
	for _, run := range runs {
		ids = append(ids, run.Id)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestPersistence_ListRunsEmpty(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	runs, err := p.ListRuns()

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestPersistence_DeleteRun(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	run := RunInfo{Id: "run1", Started: time.Unix(0, 0).UTC()}
	require.NoError(t, p.StartRun(run))
	require.NoError(t, p.SaveSamples(run.Id, createSamples(3)))

	// WHEN
	err := p.DeleteRun(run.Id)

	// THEN
	assert.NoError(t, err)
	_, err = p.LoadSamples(run.Id)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, p.DeleteRun(run.Id), os.ErrNotExist)
}
