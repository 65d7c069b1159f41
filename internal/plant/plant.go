package plant

import (
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/util"
	"sync"
)

// Plant is a simulated integrating process. Every applied controller
// output moves the position by output * gain, bounded to [min..max].
// It implements pid.Actuator and serves as the position source of the loop.
type Plant struct {
	mu       sync.Mutex
	config   configuration.PlantConfig
	position float64
	applied  uint64
}

func NewPlant(config configuration.PlantConfig) *Plant {
	return &Plant{
		config:   config,
		position: util.Coerce(config.InitialPosition, config.Min, config.Max),
	}
}

// Apply integrates the given controller output into the plant position
func (p *Plant) Apply(output float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = util.Coerce(p.position+output*p.config.Gain, p.config.Min, p.config.Max)
	p.applied++
}

// Position returns the current measured value
func (p *Plant) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// SetPosition overwrites the position, bounded to [min..max]
func (p *Plant) SetPosition(position float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = util.Coerce(position, p.config.Min, p.config.Max)
}

// Disturb adds an external offset to the position, e.g. to simulate a load change
func (p *Plant) Disturb(offset float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = util.Coerce(p.position+offset, p.config.Min, p.config.Max)
}

// AppliedCount returns how often the plant received an output
func (p *Plant) AppliedCount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applied
}
