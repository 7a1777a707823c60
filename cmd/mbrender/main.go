// Command mbrender renders a synthetic test signal through the three-band
// compressor and writes the result as a 32-bit float WAV file.
//
// The input is a stereo sum of three sines (100 Hz, 1 kHz, 5 kHz) so all
// three bands carry signal. Band parameters start from the stock defaults;
// the flags override selected values across all bands.
//
// Examples:
//
//	mbrender -out compressed.wav
//	mbrender -seconds 5 -threshold -20 -ratio 8
//	mbrender -low-mid 150 -mid-high 3000 -makeup 3
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"math"
	"os"

	"github.com/cwbudde/algo-multiband/dsp/effects/dynamics"
)

const channels = 2

func main() {
	var (
		outPath    = flag.String("out", "mbrender.wav", "output WAV path")
		sampleRate = flag.Float64("rate", 44100, "sample rate in Hz")
		seconds    = flag.Float64("seconds", 2, "render duration")
		blockSize  = flag.Int("block", 512, "processing block size in frames")
		lowMid     = flag.Float64("low-mid", 200, "low/mid split frequency in Hz")
		midHigh    = flag.Float64("mid-high", 2000, "mid/high split frequency in Hz")
		threshold  = flag.Float64("threshold", math.NaN(), "threshold in dB for all bands (default per-band)")
		ratio      = flag.Float64("ratio", math.NaN(), "ratio for all bands (default per-band)")
		makeup     = flag.Float64("makeup", 0, "makeup gain in dB for all bands")
	)
	flag.Parse()

	if *seconds <= 0 {
		log.Fatalf("duration must be positive: %f", *seconds)
	}
	if *blockSize < 1 {
		log.Fatalf("block size must be at least 1: %d", *blockSize)
	}

	params := dynamics.DefaultBlockParams()
	params.LowMidHz = *lowMid
	params.MidHighHz = *midHigh
	for b := range params.Bands {
		if !math.IsNaN(*threshold) {
			params.Bands[b].ThresholdDB = *threshold
		}
		if !math.IsNaN(*ratio) {
			params.Bands[b].Ratio = *ratio
		}
		params.Bands[b].MakeupDB = *makeup
	}

	proc, err := dynamics.New(*sampleRate, channels, dynamics.WithMeter())
	if err != nil {
		log.Fatal(err)
	}

	frames := int(*sampleRate * *seconds)
	left := testSignal(*sampleRate, frames)
	right := testSignal(*sampleRate, frames)

	block := make([][]float64, channels)
	for pos := 0; pos < frames; pos += *blockSize {
		end := min(pos+*blockSize, frames)
		block[0] = left[pos:end]
		block[1] = right[pos:end]
		if err := proc.ProcessBlock(block, params); err != nil {
			log.Fatal(err)
		}
	}

	wav := encodeWAVFloat32LE(interleave(left, right), int(*sampleRate), channels)
	if err := os.WriteFile(*outPath, wav, 0o644); err != nil {
		log.Fatal(err)
	}

	low, high := proc.CrossoverFrequencies()
	log.Printf("wrote %d frames to %s (splits %.1f / %.1f Hz)", frames, *outPath, low, high)
	log.Printf("output peak %.4f, gain reduction low/mid/high %.2f / %.2f / %.2f dB",
		proc.Meter().Read(),
		proc.GainReductionDB(0, dynamics.BandLow),
		proc.GainReductionDB(0, dynamics.BandMid),
		proc.GainReductionDB(0, dynamics.BandHigh))
}

// testSignal sums one sine per band at -9.5 dBFS each.
func testSignal(sampleRate float64, frames int) []float64 {
	freqs := [3]float64{100, 1000, 5000}
	out := make([]float64, frames)
	for i := range out {
		t := float64(i) / sampleRate
		for _, f := range freqs {
			out[i] += math.Sin(2*math.Pi*f*t) / 3
		}
	}
	return out
}

func interleave(left, right []float64) []float32 {
	out := make([]float32, 0, 2*len(left))
	for i := range left {
		out = append(out, float32(left[i]), float32(right[i]))
	}
	return out
}

// encodeWAVFloat32LE wraps interleaved samples in a RIFF/WAVE container
// with IEEE-float format (fmt tag 3, 32 bits per sample).
func encodeWAVFloat32LE(samples []float32, sampleRate, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4

	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
