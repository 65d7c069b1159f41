package pid

type oscillationSample struct {
	err float64
	dt  float64
}

// oscillationWindow is a bounded FIFO of (error, dt) samples
type oscillationWindow struct {
	capacity int
	samples  []oscillationSample
}

func newOscillationWindow(capacity int) *oscillationWindow {
	return &oscillationWindow{
		capacity: capacity,
		samples:  make([]oscillationSample, 0, capacity+1),
	}
}

// push appends a sample, evicting the oldest one if the capacity is exceeded
func (w *oscillationWindow) push(err float64, dt float64) {
	w.samples = append(w.samples, oscillationSample{err: err, dt: dt})
	if len(w.samples) > w.capacity {
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:len(w.samples)-1]
	}
}

func (w *oscillationWindow) len() int {
	return len(w.samples)
}

func (w *oscillationWindow) elapsed() float64 {
	total := 0.0
	for _, s := range w.samples {
		total += s.dt
	}
	return total
}

func (w *oscillationWindow) errors() []float64 {
	result := make([]float64, len(w.samples))
	for i, s := range w.samples {
		result[i] = s.err
	}
	return result
}

func (w *oscillationWindow) latest() (oscillationSample, bool) {
	if len(w.samples) == 0 {
		return oscillationSample{}, false
	}
	return w.samples[len(w.samples)-1], true
}

func (w *oscillationWindow) reset() {
	w.samples = w.samples[:0]
}
