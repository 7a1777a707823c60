package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-multiband/dsp/filter/crossover"
	"github.com/cwbudde/algo-multiband/dsp/meter"
)

// Band indices into BlockParams.Bands.
const (
	BandLow = iota
	BandMid
	BandHigh
	NumBands
)

// BandParams holds one band's musician-facing compression parameters.
type BandParams struct {
	ThresholdDB float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64
	MakeupDB    float64
}

// Settings folds the parameters into per-sample form for the given sample
// rate, applying the same clamping as NewSettings.
func (bp BandParams) Settings(sampleRate float64) Settings {
	return NewSettings(bp.ThresholdDB, bp.Ratio, bp.AttackMs, bp.ReleaseMs, bp.MakeupDB, sampleRate)
}

// BlockParams is the full parameter snapshot consumed by ProcessBlock.
// Values are read once per block; changing them mid-block has no effect.
type BlockParams struct {
	Bands     [NumBands]BandParams
	LowMidHz  float64
	MidHighHz float64
}

// DefaultBlockParams returns the stock parameter set: compression gets
// faster and harder going up the bands, with splits at 200 Hz and 2 kHz.
func DefaultBlockParams() BlockParams {
	return BlockParams{
		Bands: [NumBands]BandParams{
			BandLow:  {ThresholdDB: -12, Ratio: 2, AttackMs: 20, ReleaseMs: 150},
			BandMid:  {ThresholdDB: -10, Ratio: 3, AttackMs: 10, ReleaseMs: 100},
			BandHigh: {ThresholdDB: -8, Ratio: 4, AttackMs: 5, ReleaseMs: 80},
		},
		LowMidHz:  200,
		MidHighHz: 2000,
	}
}

// Processor is the three-band compression engine. It owns one crossover
// splitter and one compressor trio per channel, processes blocks in place
// and can feed an attached peak meter with the block output peak.
type Processor struct {
	sampleRate float64
	channels   int

	filters     []crossover.Filters
	compressors [][NumBands]BandCompressor

	// Last accepted crossover requests. Compared against incoming values
	// before clamping, so an out-of-range request is still cached as-is.
	currentLoMid float64
	currentMidHi float64

	peak         *meter.Peak
	meterDecayMs float64
}

// Option configures a Processor.
type Option func(*processorConfig)

type processorConfig struct {
	withMeter    bool
	meterDecayMs float64
}

// WithMeter attaches a peak meter with the default decay time. The meter is
// updated once per processed block and can be read from any goroutine.
func WithMeter() Option {
	return func(cfg *processorConfig) { cfg.withMeter = true }
}

// WithMeterDecay attaches a peak meter with a custom decay time in
// milliseconds.
func WithMeterDecay(decayMs float64) Option {
	return func(cfg *processorConfig) {
		cfg.withMeter = true
		cfg.meterDecayMs = decayMs
	}
}

// New creates an engine for the given sample rate and channel count.
// The crossover filters are designed on the first ProcessBlock call from
// that block's parameter snapshot.
func New(sampleRate float64, channels int, opts ...Option) (*Processor, error) {
	cfg := processorConfig{meterDecayMs: meter.DefaultDecayMs}
	for _, o := range opts {
		o(&cfg)
	}

	p := &Processor{meterDecayMs: cfg.meterDecayMs}
	if cfg.withMeter {
		m, err := meter.NewPeak(sampleRate, cfg.meterDecayMs)
		if err != nil {
			return nil, fmt.Errorf("dynamics: peak meter: %w", err)
		}
		p.peak = m
	}

	if err := p.Initialize(sampleRate, channels); err != nil {
		return nil, err
	}

	return p, nil
}

// Initialize resizes the engine for a new sample rate or channel count and
// returns all filters and compressors to rest. The cached crossover requests
// are dropped, so the next ProcessBlock call redesigns the filters.
func (p *Processor) Initialize(sampleRate float64, channels int) error {
	if sampleRate <= 0 || math.IsInf(sampleRate, 0) || math.IsNaN(sampleRate) {
		return fmt.Errorf("dynamics: sample rate must be > 0 and finite: %f", sampleRate)
	}
	if channels < 1 {
		return fmt.Errorf("dynamics: channel count must be >= 1: %d", channels)
	}

	p.sampleRate = sampleRate
	p.channels = channels

	p.filters = make([]crossover.Filters, channels)
	p.compressors = make([][NumBands]BandCompressor, channels)
	for ch := range p.compressors {
		for b := range p.compressors[ch] {
			p.compressors[ch][b] = NewBandCompressor()
		}
	}

	p.currentLoMid = 0
	p.currentMidHi = 0

	if p.peak != nil {
		if err := p.peak.Configure(sampleRate, p.meterDecayMs); err != nil {
			return fmt.Errorf("dynamics: peak meter: %w", err)
		}
		p.peak.Reset()
	}

	return nil
}

// ProcessBlock compresses one block in place. block holds one buffer per
// channel and all buffers must be the same length. The parameter snapshot
// applies for the whole block.
func (p *Processor) ProcessBlock(block [][]float64, params BlockParams) error {
	if len(block) != p.channels {
		return fmt.Errorf("dynamics: channel count mismatch: got %d buffers, engine configured for %d",
			len(block), p.channels)
	}
	frames := len(block[0])
	for ch := 1; ch < len(block); ch++ {
		if len(block[ch]) != frames {
			return fmt.Errorf("dynamics: channel buffer length mismatch: channel %d has %d frames, channel 0 has %d",
				ch, len(block[ch]), frames)
		}
	}

	lowSet := params.Bands[BandLow].Settings(p.sampleRate)
	midSet := params.Bands[BandMid].Settings(p.sampleRate)
	highSet := params.Bands[BandHigh].Settings(p.sampleRate)

	p.updateCrossovers(params.LowMidHz, params.MidHighHz)

	blockPeak := 0.0
	for ch := range block {
		f := &p.filters[ch]
		bands := &p.compressors[ch]
		buf := block[ch]
		for i, x := range buf {
			lowIn, midIn, highIn := f.Split(x)

			out := bands[BandLow].ProcessSample(lowIn, &lowSet) +
				bands[BandMid].ProcessSample(midIn, &midSet) +
				bands[BandHigh].ProcessSample(highIn, &highSet)
			buf[i] = out

			if a := math.Abs(out); a > blockPeak {
				blockPeak = a
			}
		}
	}

	if p.peak != nil {
		p.peak.Update(blockPeak)
	}

	return nil
}

// updateCrossovers applies the crossover request with hysteresis: a side
// must move by more than the threshold against its last accepted value to
// count as changed. Any accepted change redesigns both splits on every
// channel from the cached requests, clamped to the legal range.
func (p *Processor) updateCrossovers(loMid, midHi float64) {
	needsUpdate := false

	if crossover.ShouldRecompute(loMid, p.currentLoMid, crossover.DefaultHysteresisHz) {
		p.currentLoMid = loMid
		needsUpdate = true
	}
	if crossover.ShouldRecompute(midHi, p.currentMidHi, crossover.DefaultHysteresisHz) {
		p.currentMidHi = midHi
		needsUpdate = true
	}

	if !needsUpdate {
		return
	}

	low, high := crossover.ClampFrequencies(p.currentLoMid, p.currentMidHi, p.sampleRate)
	for ch := range p.filters {
		p.filters[ch].Design(low, high, p.sampleRate)
	}
}

// Reset clears all filter and compressor state while keeping the current
// crossover design and configuration.
func (p *Processor) Reset() {
	for ch := range p.filters {
		p.filters[ch].Reset()
	}
	for ch := range p.compressors {
		for b := range p.compressors[ch] {
			p.compressors[ch][b].Reset()
		}
	}
	if p.peak != nil {
		p.peak.Reset()
	}
}

// SampleRate returns the configured sample rate.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Channels returns the configured channel count.
func (p *Processor) Channels() int { return p.channels }

// Meter returns the attached peak meter, or nil if the engine was built
// without one.
func (p *Processor) Meter() *meter.Peak { return p.peak }

// GainReductionDB returns the current gain reduction of one band on one
// channel. channel must be in [0, Channels()) and band one of BandLow,
// BandMid, BandHigh.
func (p *Processor) GainReductionDB(channel, band int) float64 {
	return p.compressors[channel][band].GainReductionDB()
}

// CrossoverFrequencies returns the split frequencies of the current filter
// design. Before the first ProcessBlock call both are zero.
func (p *Processor) CrossoverFrequencies() (low, high float64) {
	if len(p.filters) == 0 {
		return 0, 0
	}
	return p.filters[0].LowFrequency(), p.filters[0].HighFrequency()
}
