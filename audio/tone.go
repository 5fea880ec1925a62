package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	toneVolume = 0.2
	toneFade   = 5 * time.Millisecond
)

// ToneGenerator is a sine wave with a short linear fade at both ends
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	total int
	fade  int
	pos   int
}

func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:    sr,
		freq:  freq,
		total: sr.N(d),
		fade:  sr.N(toneFade),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := toneVolume * math.Sin(2*math.Pi*g.freq*t) * g.envelope()
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) envelope() float64 {
	if g.fade <= 0 {
		return 1
	}
	if g.pos < g.fade {
		return float64(g.pos) / float64(g.fade)
	}
	if left := g.total - g.pos; left < g.fade {
		return math.Max(float64(left)/float64(g.fade), 0)
	}
	return 1
}

func (g *ToneGenerator) Err() error {
	return nil
}
