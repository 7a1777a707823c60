// Command mblive runs the three-band compressor on a live stereo stream,
// reading from the default input device and writing to the default output.
// The compressor runs inside the PortAudio callback; the peak meter is read
// once per second from the main goroutine, demonstrating the lock-free
// cross-thread meter. Press Enter to stop.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-multiband/dsp/effects/dynamics"
)

const channels = 2

func main() {
	var (
		sampleRate = flag.Float64("rate", 44100, "sample rate in Hz")
		frames     = flag.Int("frames", 512, "frames per callback")
		lowMid     = flag.Float64("low-mid", 200, "low/mid split frequency in Hz")
		midHigh    = flag.Float64("mid-high", 2000, "mid/high split frequency in Hz")
	)
	flag.Parse()

	params := dynamics.DefaultBlockParams()
	params.LowMidHz = *lowMid
	params.MidHighHz = *midHigh

	proc, err := dynamics.New(*sampleRate, channels, dynamics.WithMeter())
	if err != nil {
		log.Fatal(err)
	}

	if err := portaudio.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer portaudio.Terminate()

	// Scratch buffers are sized once here; the callback must not allocate.
	scratch := make([][]float64, channels)
	block := make([][]float64, channels)
	for ch := range scratch {
		scratch[ch] = make([]float64, *frames)
	}

	callback := func(in, out [][]float32) {
		for ch := range block {
			block[ch] = scratch[ch][:len(in[ch])]
			for i, s := range in[ch] {
				block[ch][i] = float64(s)
			}
		}
		if err := proc.ProcessBlock(block, params); err != nil {
			return
		}
		for ch := range out {
			for i := range out[ch] {
				out[ch][i] = float32(block[ch][i])
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(channels, channels, *sampleRate, *frames, callback)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		log.Fatal(err)
	}
	defer stream.Stop()

	log.Printf("processing at %.0f Hz, splits %.0f / %.0f Hz; press Enter to stop",
		*sampleRate, *lowMid, *midHigh)

	done := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(done)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			log.Printf("peak %.4f", proc.Meter().Read())
		case <-done:
			return
		}
	}
}
