package audio

import (
	"io"
	"log"
	"testing"
	"time"

	"snake-web/game"
)

func drain(t *testing.T, e game.Event) int {
	t.Helper()
	s := Cue(e)
	if s == nil {
		t.Fatalf("no cue for %s", e)
	}
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %f out of range", buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueLength(t *testing.T) {
	for e, tones := range Cues {
		var d time.Duration
		for _, tone := range tones {
			d += tone.Duration
		}
		want := 0
		for _, tone := range tones {
			want += sampleRate.N(tone.Duration)
		}
		if got := drain(t, e); got != want {
			t.Errorf("%s: %d samples, want %d (%v)", e, got, want, d)
		}
	}
}

func TestCueUnknownEvent(t *testing.T) {
	if Cue(game.Event("applause")) != nil {
		t.Error("unknown events should have no cue")
	}
}

func TestToneFadesIn(t *testing.T) {
	g := NewToneGenerator(sampleRate, 440, 50*time.Millisecond)
	buf := make([][2]float64, 1)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", buf[0][0])
	}
}

func TestUninitializedNotifierIsSilent(t *testing.T) {
	n := NewNotifier()
	n.SetLogger(log.New(io.Discard, "", 0))
	if !n.Muted() {
		t.Error("notifier without a speaker should report muted")
	}
	n.Notify(game.EventEat)
	n.Close()
}
