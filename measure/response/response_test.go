package response

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-multiband/dsp/filter/crossover"
)

const (
	sampleRate = 44100.0
	fftSize    = 4096
)

func newTestFilters(t *testing.T) *crossover.Filters {
	t.Helper()
	f, err := crossover.NewFilters(200, 2000, sampleRate)
	if err != nil {
		t.Fatalf("NewFilters failed: %v", err)
	}
	return f
}

// binAt returns the bin whose center frequency is closest to freq.
func binAt(r *BandResponse, freq float64) int {
	return int(math.Round(freq * float64(r.FFTSize) / r.SampleRate))
}

func TestBands_Validation(t *testing.T) {
	f := newTestFilters(t)

	tests := []struct {
		name    string
		filters *crossover.Filters
		size    int
	}{
		{"nil filters", nil, 1024},
		{"zero size", f, 0},
		{"size one", f, 1},
		{"not power of two", f, 1000},
		{"negative size", f, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Bands(tt.filters, tt.size); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBands_PassbandsAreFlat(t *testing.T) {
	r, err := Bands(newTestFilters(t), fftSize)
	if err != nil {
		t.Fatalf("Bands failed: %v", err)
	}

	// Well inside each passband the cascades contribute almost no loss.
	if db := r.LowDB[binAt(r, 50)]; math.Abs(db) > 0.5 {
		t.Errorf("low band at 50 Hz: got %.3f dB, want ~0", db)
	}
	if db := r.MidDB[binAt(r, 632)]; math.Abs(db) > 1.0 {
		t.Errorf("mid band at 632 Hz: got %.3f dB, want ~0", db)
	}
	if db := r.HighDB[binAt(r, 8000)]; math.Abs(db) > 0.5 {
		t.Errorf("high band at 8 kHz: got %.3f dB, want ~0", db)
	}
}

func TestBands_StopbandsRejected(t *testing.T) {
	r, err := Bands(newTestFilters(t), fftSize)
	if err != nil {
		t.Fatalf("Bands failed: %v", err)
	}

	// A 4th-order slope is 80 dB/decade; a decade past each split the
	// opposite band should be far down.
	if db := r.LowDB[binAt(r, 2000)]; db > -60 {
		t.Errorf("low band at 2 kHz: got %.1f dB, want < -60", db)
	}
	if db := r.HighDB[binAt(r, 200)]; db > -60 {
		t.Errorf("high band at 200 Hz: got %.1f dB, want < -60", db)
	}
}

func TestBands_SplitPointsAtMinusSix(t *testing.T) {
	r, err := Bands(newTestFilters(t), fftSize)
	if err != nil {
		t.Fatalf("Bands failed: %v", err)
	}

	// Each band edge is a 4th-order Linkwitz-Riley slope, -6 dB at the
	// split frequency. Allow a bin of frequency quantization.
	tests := []struct {
		name string
		band []float64
		freq float64
	}{
		{"low at low split", r.LowDB, 200},
		{"high at high split", r.HighDB, 2000},
	}
	for _, tt := range tests {
		db := tt.band[binAt(r, tt.freq)]
		if math.Abs(db-(-6)) > 0.7 {
			t.Errorf("%s: got %.2f dB, want ~-6", tt.name, db)
		}
	}
}

func TestBands_SumNearlyFlat(t *testing.T) {
	r, err := Bands(newTestFilters(t), fftSize)
	if err != nil {
		t.Fatalf("Bands failed: %v", err)
	}

	dev, err := r.MaxSumDeviationDB(40, 18000)
	if err != nil {
		t.Fatalf("MaxSumDeviationDB failed: %v", err)
	}
	if dev > 1.0 {
		t.Errorf("sum deviates %.3f dB from unity, want <= 1", dev)
	}
}

func TestBands_DoesNotDisturbFilterState(t *testing.T) {
	measured := newTestFilters(t)
	control := newTestFilters(t)

	// Put both splitters in the same mid-stream state.
	for i := range 128 {
		x := math.Sin(0.1 * float64(i))
		measured.Split(x)
		control.Split(x)
	}

	if _, err := Bands(measured, 256); err != nil {
		t.Fatalf("Bands failed: %v", err)
	}

	// The measured splitter must continue exactly like the untouched one.
	for i := range 128 {
		x := math.Sin(0.1 * float64(128+i))
		l1, m1, h1 := measured.Split(x)
		l2, m2, h2 := control.Split(x)
		if l1 != l2 || m1 != m2 || h1 != h2 {
			t.Fatalf("sample %d: measurement disturbed filter state", i)
		}
	}
}

func TestFrequencyAt(t *testing.T) {
	r := &BandResponse{SampleRate: 48000, FFTSize: 1024}

	if got := r.FrequencyAt(0); got != 0 {
		t.Errorf("bin 0: got %v Hz, want 0", got)
	}
	if got, want := r.FrequencyAt(1), 48000.0/1024; got != want {
		t.Errorf("bin 1: got %v Hz, want %v", got, want)
	}
	if got, want := r.FrequencyAt(512), 24000.0; got != want {
		t.Errorf("Nyquist bin: got %v Hz, want %v", got, want)
	}
}

func TestMaxSumDeviationDB_EmptyRange(t *testing.T) {
	r, err := Bands(newTestFilters(t), 256)
	if err != nil {
		t.Fatalf("Bands failed: %v", err)
	}

	// Bin spacing at 256 points is ~172 Hz; nothing falls in (1, 2) Hz.
	if _, err := r.MaxSumDeviationDB(1, 2); err == nil {
		t.Error("expected error for a range containing no bins")
	}
}
