package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/Garsondee/Kissing-Discs/internal/game"
)

// Cue is a short sound tied to a match event.
type Cue int

const (
	CueNone Cue = iota
	CuePlace
	CueReject
	CueCapture
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CuePlace:
		return "place"
	case CueReject:
		return "reject"
	case CueCapture:
		return "capture"
	case CueGameOver:
		return "game_over"
	}
	return "none"
}

// CueFor maps a match log entry to the cue it should trigger.
func CueFor(e game.LogEntry) Cue {
	switch {
	case e.Category == game.CatBoard && e.Key == "placed":
		return CuePlace
	case e.Category == game.CatBoard && e.Key == "capture":
		return CueCapture
	case e.Category == game.CatDrag && e.Key == "rejected":
		return CueReject
	case e.Category == game.CatMatch && e.Key == "over":
		return CueGameOver
	}
	return CueNone
}

// note is one tone of a cue; a zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CuePlace:    {{660, 60 * time.Millisecond}},
	CueReject:   {{180, 90 * time.Millisecond}, {0, 20 * time.Millisecond}, {140, 90 * time.Millisecond}},
	CueCapture:  {{523, 70 * time.Millisecond}, {784, 70 * time.Millisecond}, {1046, 110 * time.Millisecond}},
	CueGameOver: {{784, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {523, 240 * time.Millisecond}},
}

// buildCue renders c as a finite streamer at the given level (a power-of-two
// gain, 0 is unity). It returns nil for CueNone.
func buildCue(c Cue, sr beep.SampleRate, level float64) (beep.Streamer, error) {
	notes := cueNotes[c]
	if len(notes) == 0 {
		return nil, nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, nt := range notes {
		n := sr.N(nt.dur)
		if nt.freq == 0 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		tone, err := generators.SineTone(sr, nt.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(n, tone))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   level,
	}, nil
}
