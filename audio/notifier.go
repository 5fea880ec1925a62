// Package audio plays short synthesized cues for gameplay events.
package audio

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"snake-web/game"
)

const sampleRate = beep.SampleRate(44100)

// Tone is one note of a cue
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// Cues maps events to the notes played for them
var Cues = map[game.Event][]Tone{
	game.EventEat:       {{Freq: 660, Duration: 60 * time.Millisecond}},
	game.EventGameOver:  {{Freq: 330, Duration: 150 * time.Millisecond}, {Freq: 220, Duration: 150 * time.Millisecond}, {Freq: 165, Duration: 300 * time.Millisecond}},
	game.EventPowerUp:   {{Freq: 523, Duration: 80 * time.Millisecond}, {Freq: 784, Duration: 120 * time.Millisecond}},
	game.EventMine:      {{Freq: 110, Duration: 250 * time.Millisecond}},
	game.EventStart:     {{Freq: 440, Duration: 100 * time.Millisecond}, {Freq: 880, Duration: 100 * time.Millisecond}},
	game.EventTurn:      {{Freq: 1200, Duration: 15 * time.Millisecond}},
	game.EventCountdown: {{Freq: 440, Duration: 120 * time.Millisecond}},
	game.EventPause:     {{Freq: 300, Duration: 80 * time.Millisecond}},
	game.EventResume:    {{Freq: 500, Duration: 80 * time.Millisecond}},
	game.EventShieldEnd: {{Freq: 392, Duration: 100 * time.Millisecond}, {Freq: 262, Duration: 150 * time.Millisecond}},
}

// Notifier implements game.Notifier on the system speaker. Until Init
// succeeds, and while muted, events are dropped.
type Notifier struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	muted  bool
	logger *log.Logger
}

func NewNotifier() *Notifier {
	return &Notifier{
		mixer:  &beep.Mixer{},
		logger: log.New(os.Stderr, "[audio] ", log.LstdFlags|log.Lmsgprefix),
	}
}

func (n *Notifier) SetLogger(l *log.Logger) {
	n.logger = l
}

// Init opens the speaker. On failure the notifier stays silent.
func (n *Notifier) Init() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		n.logger.Printf("speaker unavailable, audio muted: %v", err)
		return err
	}
	speaker.Play(n.mixer)
	n.ready = true
	return nil
}

func (n *Notifier) SetMuted(muted bool) {
	n.mu.Lock()
	n.muted = muted
	n.mu.Unlock()
}

func (n *Notifier) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted || !n.ready
}

func (n *Notifier) Notify(e game.Event) {
	if n.Muted() {
		return
	}
	s := Cue(e)
	if s == nil {
		return
	}
	speaker.Lock()
	n.mixer.Add(s)
	speaker.Unlock()
}

// Close silences anything still playing
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.ready {
		return
	}
	speaker.Lock()
	n.mixer.Clear()
	speaker.Unlock()
	n.ready = false
}

// Cue builds the streamer for e, nil for events without a sound
func Cue(e game.Event) beep.Streamer {
	tones, ok := Cues[e]
	if !ok || len(tones) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, beep.Take(sampleRate.N(t.Duration), NewToneGenerator(sampleRate, t.Freq, t.Duration)))
	}
	return beep.Seq(parts...)
}
