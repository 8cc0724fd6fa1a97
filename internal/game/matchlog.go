package game

import (
	"fmt"
	"strings"
)

// Log categories.
const (
	CatDrag     = "drag"
	CatBoard    = "board"
	CatTurn     = "turn"
	CatGeometry = "geometry"
	CatMatch    = "match"
)

// LogEntry is one recorded event of a match.
type LogEntry struct {
	Turn     int
	Player   string  // "A", "B", or "--" for match-wide events
	Category string  // drag, board, turn, geometry, match
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=004] B  board     capture          #3 r=12.0 (41.2,-7.0)
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-2s %-9s %-16s %s",
		e.Turn, e.Player, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for one match. Front-ends read it
// incrementally with Since to drive their feeds and sound cues; the
// headless report and the tests filter it after the fact.
type MatchLog struct {
	entries []LogEntry
	verbose bool
}

// NewMatchLog creates a MatchLog. If verbose is true, per-frame drag entries
// are also recorded.
func NewMatchLog(verbose bool) *MatchLog {
	return &MatchLog{verbose: verbose}
}

// Add records a new entry.
func (ml *MatchLog) Add(turn int, player, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, LogEntry{
		Turn:     turn,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(turn int, player, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(turn, player, category, key, value, numVal)
}

// Len returns the number of entries recorded so far.
func (ml *MatchLog) Len() int { return len(ml.entries) }

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []LogEntry {
	return ml.entries
}

// Since returns the entries recorded after the first n. Callers keep n as a
// cursor between frames.
func (ml *MatchLog) Since(n int) []LogEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(ml.entries) {
		return nil
	}
	return ml.entries[n:]
}

// matches reports whether e belongs to category and key; an empty string
// matches anything.
func (e LogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns the entries of category and key, in order. Empty strings
// act as wildcards.
func (ml *MatchLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range ml.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range ml.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category and key.
func (ml *MatchLog) LastOf(category, key string) (LogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		if ml.entries[i].matches(category, key) {
			return ml.entries[i], true
		}
	}
	return LogEntry{}, false
}

// HasEntry reports whether some entry matches category and key and mentions
// detail in its value.
func (ml *MatchLog) HasEntry(category, key, detail string) bool {
	for _, e := range ml.entries {
		if e.matches(category, key) && strings.Contains(e.Value, detail) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one line per entry.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		fmt.Fprintln(&sb, e)
	}
	return sb.String()
}

// LogCursor follows a Game's MatchLog across frames. A reset swaps in a new
// log, so Next starts over from the first entry whenever the log changes.
type LogCursor struct {
	log *MatchLog
	n   int
}

// Next returns the entries of ml not yet seen through this cursor.
func (c *LogCursor) Next(ml *MatchLog) []LogEntry {
	if ml != c.log {
		c.log = ml
		c.n = 0
	}
	out := ml.Since(c.n)
	c.n += len(out)
	return out
}
