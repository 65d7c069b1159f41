package persistence

import (
	"github.com/markusressel/pid2go/internal/clock"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	"sync"
)

const defaultFlushSize = 50

// Recorder buffers controller snapshots and writes them to a run trace in batches
type Recorder struct {
	mu          sync.Mutex
	persistence Persistence
	clock       clock.Clock
	runId       string
	flushSize   int
	buffer      []Sample
}

func NewRecorder(persistence Persistence, clk clock.Clock, run RunInfo) (*Recorder, error) {
	if err := persistence.StartRun(run); err != nil {
		return nil, err
	}
	return &Recorder{
		persistence: persistence,
		clock:       clk,
		runId:       run.Id,
		flushSize:   defaultFlushSize,
	}, nil
}

func (r *Recorder) RunId() string {
	return r.runId
}

// Observe records the given snapshot, flushing the buffer once it is full
func (r *Recorder) Observe(snapshot pid.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, Sample{
		Time:      r.clock.Now(),
		Setpoint:  snapshot.Setpoint,
		Position:  snapshot.Position,
		Output:    snapshot.Output,
		Integral:  snapshot.Integral,
		Kp:        snapshot.Kp,
		Ki:        snapshot.Ki,
		Kd:        snapshot.Kd,
		Escalated: snapshot.Escalated,
	})
	if len(r.buffer) >= r.flushSize {
		if err := r.flush(); err != nil {
			ui.Warning("Unable to write trace of run %s: %v", r.runId, err)
		}
	}
}

// Flush writes all buffered samples
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush()
}

func (r *Recorder) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}
	err := r.persistence.SaveSamples(r.runId, r.buffer)
	// samples are dropped on error, the trace must not grow without bounds
	r.buffer = r.buffer[:0]
	return err
}
