// Package game is the rules engine: discs, the contact graph, piles and the
// turn controller. It has no rendering or input dependency; front-ends feed
// it pointer positions already translated into game space.
package game

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

// Outcome is the result of ending a drag.
type Outcome int

const (
	OutcomeNone     Outcome = iota // no drag was active
	OutcomePlaced                  // disc committed to the board, turn ended
	OutcomeRejected                // disc returned to its pile slot
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeRejected:
		return "rejected"
	}
	return "none"
}

// Game owns the registry, both piles, the board and the score. It is driven
// from a single update loop and is not safe for concurrent use.
type Game struct {
	cfg Config
	rng *rand.Rand

	reg   *Registry
	piles [2]*Pile
	board []DiscID

	player Player
	score  [2]int
	turn   int

	pileGap float64 // current rim-to-pile gap, see LayoutPiles

	dragged  DiscID
	snapOK   bool // last snap of the dragged disc was accepted
	snapFail bool // last snap hit an infeasible tangency

	matchID uuid.UUID
	log     *MatchLog

	boardBuf []*Disc // reused per DragMove
}

// New validates cfg and starts a match with random piles.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- disc sizes only
		pileGap: cfg.PileGap,
	}
	g.Reset()
	return g, nil
}

// Reset clears the board and scores and deals fresh random piles.
func (g *Game) Reset() {
	g.resetWith(g.randomRadii(), g.randomRadii())
}

func (g *Game) randomRadii() []float64 {
	out := make([]float64, g.cfg.DiscsPerPile)
	span := g.cfg.MaxRadius - g.cfg.MinRadius + 1
	for i := range out {
		out[i] = float64(g.cfg.MinRadius + g.rng.Intn(span))
	}
	return out
}

// resetWith starts a match with the given pile radii, top first.
func (g *Game) resetWith(radiiA, radiiB []float64) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		id = uuid.New()
	}
	g.matchID = id
	g.reg = NewRegistry()
	g.board = nil
	g.player = PlayerA
	g.score = [2]int{}
	g.turn = 0
	g.dragged = NoDisc
	g.snapOK = false
	g.snapFail = false
	g.log = NewMatchLog(g.cfg.VerboseLog)

	ar := g.cfg.ArenaRadius
	g.piles[PlayerA] = NewPile(g.reg, PlayerA, g.pileOrigin(PlayerA), g.cfg.PileMargin, radiiA)
	g.piles[PlayerB] = NewPile(g.reg, PlayerB, g.pileOrigin(PlayerB), g.cfg.PileMargin, radiiB)

	g.log.Add(0, "--", CatMatch, "start",
		fmt.Sprintf("%s arena=%.0f piles=%d/%d", g.matchID, ar, len(radiiA), len(radiiB)), ar)
}

// pileOrigin is the top of p's pile: level with the top of the arena,
// pileGap outside its rim, white on the left.
func (g *Game) pileOrigin(p Player) geom.Vec2 {
	x := g.cfg.ArenaRadius + g.pileGap
	if p == PlayerA {
		x = -x
	}
	return geom.Vec2{X: x, Y: -g.cfg.ArenaRadius}
}

// LayoutPiles moves both piles to sit gap outside the arena rim. The gap
// also applies to piles dealt by later resets. A held disc keeps its live
// position.
func (g *Game) LayoutPiles(gap float64) {
	if gap == g.pileGap {
		return
	}
	g.pileGap = gap
	for _, p := range []Player{PlayerA, PlayerB} {
		g.piles[p].MoveTo(g.pileOrigin(p))
	}
}

// PileGap returns the current rim-to-pile gap.
func (g *Game) PileGap() float64 { return g.pileGap }

// DragStart picks up the disc of the current player's pile under p, the
// closest one if several contain it. It refuses while another drag is live
// or the match is over.
func (g *Game) DragStart(p geom.Vec2) (*Disc, bool) {
	if g.dragged != NoDisc || g.GameOver() {
		return nil, false
	}
	var hit *Disc
	best := math.MaxFloat64
	for _, d := range g.piles[g.player].Discs() {
		if !d.Contains(p) {
			continue
		}
		if dist := geom.Distance(d, p); dist < best {
			best = dist
			hit = d
		}
	}
	if hit == nil {
		return nil, false
	}
	hit.Dragged = true
	g.dragged = hit.ID
	g.snapOK = false
	g.snapFail = false
	g.log.Add(g.turn, g.player.String(), CatDrag, "start", describe(hit), hit.Radius)
	return hit, true
}

// DragMove resolves where the dragged disc rests for pointer position p.
// It runs every frame while the button is held.
func (g *Game) DragMove(p geom.Vec2) {
	d, ok := g.reg.Get(g.dragged)
	if !ok {
		return
	}
	g.boardBuf = g.boardBuf[:0]
	for _, id := range g.board {
		if b, ok := g.reg.Get(id); ok {
			g.boardBuf = append(g.boardBuf, b)
		}
	}
	res := d.Snap(p, g.boardBuf)
	g.snapOK = res.Accepted
	if res.Err != nil {
		if !g.snapFail {
			g.log.Add(g.turn, g.player.String(), CatGeometry, "infeasible_tangent", res.Err.Error(), 0)
		}
		g.snapFail = true
	} else {
		g.snapFail = false
	}
	g.log.AddVerbose(g.turn, g.player.String(), CatDrag, "move",
		fmt.Sprintf("%s -> %s contacts=%d ok=%t", p, d.Pos, res.Contacts, res.Accepted), float64(res.Contacts))
}

// DragEnd releases the dragged disc. It lands on the board when the last
// snap was accepted and the disc sits wholly inside the arena; otherwise it
// goes back to its pile slot.
func (g *Game) DragEnd() Outcome {
	d, ok := g.reg.Get(g.dragged)
	g.dragged = NoDisc
	if !ok {
		return OutcomeNone
	}

	if !g.snapOK || !g.Arena().Encloses(d.Circle()) {
		at := d.Pos
		d.Reset()
		g.log.Add(g.turn, g.player.String(), CatDrag, "rejected",
			fmt.Sprintf("#%d at %s", d.ID, at), d.Radius)
		return OutcomeRejected
	}

	pile := g.piles[g.player]
	if err := pile.Remove(d.ID); err != nil {
		d.Reset()
		g.log.Add(g.turn, g.player.String(), CatDrag, "rejected", err.Error(), d.Radius)
		return OutcomeRejected
	}
	// Place checks every contact before touching any score, so a failure
	// leaves the graph as it was and the disc can go back on the pile.
	if err := g.reg.Place(d.ID); err != nil {
		pile.Append(d)
		d.Reset()
		g.log.Add(g.turn, g.player.String(), CatBoard, "inconsistent", err.Error(), d.Radius)
		return OutcomeRejected
	}
	g.board = append(g.board, d.ID)
	g.log.Add(g.turn, g.player.String(), CatBoard, "placed",
		fmt.Sprintf("%s contacts=%d score=%d", describe(d), len(d.Contacts), d.Score), float64(d.Score))
	g.endTurn()
	return OutcomePlaced
}

// endTurn passes the move and sweeps the board: every disc of the player
// who just moved that is left with a negative score goes to the new player
// on move. A player with an empty pile passes, and the sweep then runs again
// on behalf of the player who gets the move back.
func (g *Game) endTurn() {
	g.player = g.player.Other()
	g.sweep()

	g.turn++
	if g.piles[g.player].Len() == 0 && !g.GameOver() {
		g.log.Add(g.turn, g.player.String(), CatTurn, "pass", "pile empty", 0)
		g.player = g.player.Other()
		g.sweep()
	}
	g.log.Add(g.turn, g.player.String(), CatTurn, "begin", g.Message(), float64(g.turn))
	if g.GameOver() {
		g.log.Add(g.turn, "--", CatMatch, "over", g.Message(), float64(g.score[PlayerA]-g.score[PlayerB]))
	}
}

// sweep captures, in board order, every disc the player on move may take.
// Scores are read live, so an earlier capture can save a later disc.
func (g *Game) sweep() {
	for _, id := range slices.Clone(g.board) {
		d, ok := g.reg.Get(id)
		if !ok || !d.Capturable(g.player) {
			continue
		}
		desc := describe(d)
		if err := g.reg.Remove(id); err != nil {
			continue
		}
		g.board = slices.DeleteFunc(g.board, func(b DiscID) bool { return b == id })
		g.score[g.player]++
		g.log.Add(g.turn, g.player.String(), CatBoard, "capture", desc, float64(g.score[g.player]))
	}
}

// GameOver reports whether both piles are exhausted.
func (g *Game) GameOver() bool {
	return g.piles[PlayerA].Len() == 0 && g.piles[PlayerB].Len() == 0
}

// Winner returns the player with the higher score. ok is false while the
// match is running or when it ended in a draw.
func (g *Game) Winner() (p Player, ok bool) {
	if !g.GameOver() || g.score[PlayerA] == g.score[PlayerB] {
		return PlayerA, false
	}
	if g.score[PlayerA] > g.score[PlayerB] {
		return PlayerA, true
	}
	return PlayerB, true
}

// Message is the scoreline shown above the arena, with the result appended
// once the match is over.
func (g *Game) Message() string {
	s := fmt.Sprintf("%d - %d", g.score[PlayerA], g.score[PlayerB])
	if !g.GameOver() {
		return s
	}
	if w, ok := g.Winner(); ok {
		return s + " " + w.Colour() + " wins"
	}
	return s + " draw"
}

// Summary returns a short multi-line description of the table.
func (g *Game) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Match %s at T=%03d ---\n", g.matchID, g.turn)
	fmt.Fprintf(&sb, "Score: %s  on move: %s\n", g.Message(), g.player)
	fmt.Fprintf(&sb, "Piles: A=%d  B=%d\n", g.piles[PlayerA].Len(), g.piles[PlayerB].Len())
	counts := [2]int{}
	threatened := 0
	for _, d := range g.Board() {
		counts[d.Owner]++
		if d.Score < 0 {
			threatened++
		}
	}
	fmt.Fprintf(&sb, "Board: A=%d  B=%d  negative=%d\n", counts[PlayerA], counts[PlayerB], threatened)
	return sb.String()
}

// Transcript is the summary followed by the full match log, as copied to
// the clipboard by the front-ends.
func (g *Game) Transcript() string {
	return g.Summary() + g.log.Format()
}

// CheckInvariants verifies the contact graph and that no two board discs
// overlap or leave the arena.
func (g *Game) CheckInvariants() error {
	if err := g.reg.CheckInvariants(); err != nil {
		return err
	}
	discs := g.Board()
	arena := g.Arena()
	for i, a := range discs {
		if !arena.Encloses(a.Circle()) {
			return fmt.Errorf("disc %d at %s leaves the arena", a.ID, a.Pos)
		}
		for _, b := range discs[i+1:] {
			if a.overlaps(b) {
				return fmt.Errorf("discs %d and %d overlap", a.ID, b.ID)
			}
		}
	}
	return nil
}

// Arena returns the playable circle.
func (g *Game) Arena() geom.Circle { return geom.Circle{R: g.cfg.ArenaRadius} }

// Board returns the placed discs in placement order.
func (g *Game) Board() []*Disc { return g.reg.Resolve(g.board) }

// Pile returns p's remaining pile.
func (g *Game) Pile(p Player) *Pile { return g.piles[p] }

// Disc resolves a handle.
func (g *Game) Disc(id DiscID) (*Disc, bool) { return g.reg.Get(id) }

// Dragged returns the disc currently held, if any.
func (g *Game) Dragged() (*Disc, bool) {
	if g.dragged == NoDisc {
		return nil, false
	}
	return g.reg.Get(g.dragged)
}

// SnapAccepted reports whether the held disc currently sits at a legal rest
// position. Front-ends use it to tint the preview.
func (g *Game) SnapAccepted() bool {
	d, ok := g.Dragged()
	return ok && g.snapOK && g.Arena().Encloses(d.Circle())
}

func (g *Game) Score() [2]int { return g.score }

func (g *Game) CurrentPlayer() Player { return g.player }

func (g *Game) Turn() int { return g.turn }

// MatchID identifies the current match; Reset draws a new one.
func (g *Game) MatchID() uuid.UUID { return g.matchID }

func (g *Game) Log() *MatchLog { return g.log }

func (g *Game) Config() Config { return g.cfg }

func describe(d *Disc) string {
	return fmt.Sprintf("#%d r=%.1f %s", d.ID, d.Radius, d.Pos)
}
