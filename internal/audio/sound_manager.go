// Package audio plays short synthesized cues for match events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Kissing-Discs/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	cueLevel   = -2.0 // quarter amplitude
)

// SoundManager mixes cues onto the speaker. The speaker pulls samples on its
// own goroutine, so every mixer access holds mu. An uninitialised manager
// accepts every call and stays silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	initialized bool
	muted       bool
}

// NewSoundManager creates a silent manager; call Initialize to open the speaker.
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer: mixer,
		ctrl:  &beep.Ctrl{Streamer: mixer},
	}
}

// Initialize opens the speaker with a 100ms buffer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(sm.ctrl)
	sm.initialized = true
	return nil
}

// Cleanup drops any queued cues and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	if !sm.initialized {
		sm.mu.Unlock()
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
	sm.mu.Unlock()
	speaker.Close()
}

// Play queues c on the mixer.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s, err := buildCue(c, sampleRate, cueLevel)
	if err != nil || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Observe plays the cue of every entry in entries. Several captures in one
// sweep collapse into a single capture cue.
func (sm *SoundManager) Observe(entries []game.LogEntry) {
	for _, c := range cuesFor(entries) {
		sm.Play(c)
	}
}

// ToggleMute flips the mute state and returns the new one.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.initialized {
		speaker.Lock()
		sm.ctrl.Paused = sm.muted
		speaker.Unlock()
	}
	return sm.muted
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

func cuesFor(entries []game.LogEntry) []Cue {
	var out []Cue
	seen := map[Cue]bool{}
	for _, e := range entries {
		c := CueFor(e)
		if c == CueNone || (c == CueCapture && seen[c]) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
