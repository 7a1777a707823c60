// Package meter provides level meters that are written from an audio
// goroutine and read from other goroutines without locking.
package meter

import (
	"fmt"
	"math"
	"sync/atomic"
)

// DefaultDecayMs is the time for the peak reading to fall by a factor of
// four (about 12 dB) after the input goes silent.
const DefaultDecayMs = 150.0

// Peak tracks peak amplitude with instant attack and geometric decay.
//
// Update must be called from a single goroutine, normally the audio thread.
// Read and Reset may be called concurrently from any goroutine; the value is
// kept as atomic bits so a reader never observes a torn float.
type Peak struct {
	bits        uint64
	decayWeight float64
}

// NewPeak creates a meter whose decay rate follows the sample rate, so a
// given decay time takes the same wall-clock duration regardless of rate.
func NewPeak(sampleRate, decayMs float64) (*Peak, error) {
	m := &Peak{}
	if err := m.Configure(sampleRate, decayMs); err != nil {
		return nil, err
	}
	return m, nil
}

// Configure rederives the decay weight for a new sample rate or decay time.
// Call it while processing is stopped, never concurrently with Update.
func (m *Peak) Configure(sampleRate, decayMs float64) error {
	if sampleRate <= 0 || math.IsInf(sampleRate, 0) || math.IsNaN(sampleRate) {
		return fmt.Errorf("meter: sample rate must be > 0 and finite: %f", sampleRate)
	}
	if decayMs <= 0 {
		return fmt.Errorf("meter: decay time must be > 0 ms: %f", decayMs)
	}

	m.decayWeight = math.Pow(0.25, 1/(sampleRate*decayMs/1000))
	return nil
}

// Update folds a new peak amplitude into the meter. A value above the
// current reading replaces it immediately; a lower value pulls the reading
// down along the geometric decay curve.
func (m *Peak) Update(peak float64) {
	current := math.Float64frombits(atomic.LoadUint64(&m.bits))

	next := peak
	if peak <= current {
		next = current*m.decayWeight + peak*(1-m.decayWeight)
	}

	atomic.StoreUint64(&m.bits, math.Float64bits(next))
}

// Read returns the current peak amplitude.
func (m *Peak) Read() float64 {
	return math.Float64frombits(atomic.LoadUint64(&m.bits))
}

// Reset drops the reading back to silence.
func (m *Peak) Reset() {
	atomic.StoreUint64(&m.bits, 0)
}

// DecayWeight returns the per-update decay factor currently in effect.
func (m *Peak) DecayWeight() float64 { return m.decayWeight }
