package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Kissing-Discs/internal/game"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 11
)

// catUI marks feed lines produced by the front-end itself.
const catUI = "ui"

// Feed is a ring buffer of recent match events rendered on-screen.
type Feed struct {
	entries []game.LogEntry
	head    int
	count   int
	cursor  game.LogCursor
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{
		entries: make([]game.LogEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *Feed) Add(e game.LogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Sync pulls the entries ml gained since the last call, adds them to the
// feed and returns them. Verbose drag moves are not shown.
func (f *Feed) Sync(ml *game.MatchLog) []game.LogEntry {
	fresh := f.cursor.Next(ml)
	for _, e := range fresh {
		if e.Category == game.CatDrag && e.Key == "move" {
			continue
		}
		f.Add(e)
	}
	return fresh
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []game.LogEntry {
	result := make([]game.LogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Last returns the newest entry.
func (f *Feed) Last() (game.LogEntry, bool) {
	if f.count == 0 {
		return game.LogEntry{}, false
	}
	return f.entries[(f.head-1+feedMaxEntries)%feedMaxEntries], true
}

func feedDotColour(player string) color.RGBA {
	switch player {
	case game.PlayerA.String():
		return color.RGBA{R: 240, G: 240, B: 240, A: 255}
	case game.PlayerB.String():
		return color.RGBA{R: 20, G: 20, B: 20, A: 255}
	}
	return color.RGBA{R: 160, G: 90, B: 200, A: 255}
}

// Draw renders the feed panel on the right side of the screen.
func (f *Feed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 28, G: 12, B: 34, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 90, G: 50, B: 110, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 44, G: 20, B: 54, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 90, G: 50, B: 110, A: 200}, false)

	entries := f.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / feedLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 50, G: 26, B: 60, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, feedDotColour(e.Player), false)

		line := fmt.Sprintf("%3d %-8s %s", e.Turn, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += feedLineHeight
	}
}
