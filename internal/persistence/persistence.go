package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	BucketRuns    = "runs"
	BucketSamples = "samples"
)

// Sample is a single recorded controller tick
type Sample struct {
	Time      time.Time `json:"time"`
	Setpoint  float64   `json:"setpoint"`
	Position  float64   `json:"position"`
	Output    float64   `json:"output"`
	Integral  float64   `json:"integral"`
	Kp        float64   `json:"kp"`
	Ki        float64   `json:"ki"`
	Kd        float64   `json:"kd"`
	Escalated bool      `json:"escalated"`
}

// RunInfo describes a recorded controller run
type RunInfo struct {
	Id      string    `json:"id"`
	Mode    pid.Mode  `json:"mode"`
	Started time.Time `json:"started"`
	Samples int       `json:"samples"`
}

// Persistence stores tick traces of controller runs.
// Traces are write-only telemetry, nothing is ever restored into a controller.
type Persistence interface {
	Init() error

	StartRun(run RunInfo) error
	SaveSamples(runId string, samples []Sample) error
	LoadSamples(runId string) ([]Sample, error)
	ListRuns() ([]RunInfo, error)
	DeleteRun(runId string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// StartRun registers a new run, overwriting any previous run with the same id
func (p persistence) StartRun(run RunInfo) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	run.Samples = 0
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		runs, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		samples, err := tx.CreateBucketIfNotExists([]byte(BucketSamples))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		if samples.Bucket([]byte(run.Id)) != nil {
			if err = samples.DeleteBucket([]byte(run.Id)); err != nil {
				return err
			}
		}
		if _, err = samples.CreateBucket([]byte(run.Id)); err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return runs.Put([]byte(run.Id), data)
	})
}

// SaveSamples appends the given samples to the run
func (p persistence) SaveSamples(runId string, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket([]byte(BucketRuns))
		sampleBuckets := tx.Bucket([]byte(BucketSamples))
		if runs == nil || sampleBuckets == nil {
			return fmt.Errorf("unknown run: %s", runId)
		}
		b := sampleBuckets.Bucket([]byte(runId))
		v := runs.Get([]byte(runId))
		if b == nil || v == nil {
			return fmt.Errorf("unknown run: %s", runId)
		}

		for _, sample := range samples {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			data, err := json.Marshal(sample)
			if err != nil {
				return err
			}
			if err = b.Put(sequenceKey(seq), data); err != nil {
				return err
			}
		}

		var run RunInfo
		if err := json.Unmarshal(v, &run); err != nil {
			return err
		}
		run.Samples += len(samples)
		data, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return runs.Put([]byte(runId), data)
	})
}

// LoadSamples loads all samples of the given run in recording order
func (p persistence) LoadSamples(runId string) ([]Sample, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []Sample
	err = db.View(func(tx *bolt.Tx) error {
		sampleBuckets := tx.Bucket([]byte(BucketSamples))
		if sampleBuckets == nil {
			return os.ErrNotExist
		}
		b := sampleBuckets.Bucket([]byte(runId))
		if b == nil {
			return os.ErrNotExist
		}

		return b.ForEach(func(k, v []byte) error {
			var sample Sample
			if err := json.Unmarshal(v, &sample); err != nil {
				ui.Warning("Skipping unreadable sample %d of run %s: %v", binary.BigEndian.Uint64(k), runId, err)
				return nil
			}
			result = append(result, sample)
			return nil
		})
	})

	return result, err
}

// ListRuns returns all recorded runs, oldest first
func (p persistence) ListRuns() ([]RunInfo, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []RunInfo
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			// nothing recorded yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var run RunInfo
			if err := json.Unmarshal(v, &run); err != nil {
				ui.Warning("Unable to unmarshal run %s: %v", string(k), err)
				return nil
			}
			result = append(result, run)
			return nil
		})
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].Started.Before(result[j].Started)
	})
	return result, err
}

func (p persistence) DeleteRun(runId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket([]byte(BucketRuns))
		if runs == nil || runs.Get([]byte(runId)) == nil {
			return os.ErrNotExist
		}
		if err := runs.Delete([]byte(runId)); err != nil {
			return err
		}

		sampleBuckets := tx.Bucket([]byte(BucketSamples))
		if sampleBuckets == nil || sampleBuckets.Bucket([]byte(runId)) == nil {
			return nil
		}
		return sampleBuckets.DeleteBucket([]byte(runId))
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
