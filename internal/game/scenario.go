package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

// Scenario is a headless harness around a Game with fixed or seeded piles.
// Tests and the headless report drive it with pointer-free drops instead of
// mouse events.
type Scenario struct {
	Game *Game

	cfg    Config
	radiiA []float64
	radiiB []float64
	rng    *rand.Rand // drop points; separate from the game's own rng
}

// scenarioOptionKind controls the pass in which an option is applied.
type scenarioOptionKind int

const (
	scenarioOptConfig scenarioOptionKind = iota // arena, margins, seed, verbose; applied first
	scenarioOptPiles                            // fixed pile contents; applied once the game exists
)

// ScenarioOption is a builder function applied to a Scenario during construction.
type ScenarioOption struct {
	kind scenarioOptionKind
	fn   func(*Scenario)
}

// WithArenaRadius sets the playable radius.
func WithArenaRadius(r float64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(sc *Scenario) {
		sc.cfg.ArenaRadius = r
	}}
}

// WithPileMargin sets the vertical gap between pile slots.
func WithPileMargin(m float64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(sc *Scenario) {
		sc.cfg.PileMargin = m
	}}
}

// WithDiscsPerPile sets the size of randomly dealt piles.
func WithDiscsPerPile(n int) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(sc *Scenario) {
		sc.cfg.DiscsPerPile = n
	}}
}

// WithSeed seeds both the game's pile sizes and the scenario's drop points.
func WithSeed(seed int64) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(sc *Scenario) {
		sc.cfg.Seed = seed
		sc.rng = rand.New(rand.NewSource(seed ^ 0x5eed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-frame drag logging.
func WithVerbose(v bool) ScenarioOption {
	return ScenarioOption{scenarioOptConfig, func(sc *Scenario) {
		sc.cfg.VerboseLog = v
	}}
}

// WithPiles replaces the random deal with fixed radii, top of pile first.
func WithPiles(a, b []float64) ScenarioOption {
	return ScenarioOption{scenarioOptPiles, func(sc *Scenario) {
		sc.radiiA = append([]float64(nil), a...)
		sc.radiiB = append([]float64(nil), b...)
		sc.Game.resetWith(sc.radiiA, sc.radiiB)
	}}
}

// NewScenario builds a Scenario in two passes: configuration, then piles.
func NewScenario(opts ...ScenarioOption) (*Scenario, error) {
	sc := &Scenario{
		cfg: DefaultConfig(),
		rng: rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	sc.cfg.Seed = 1
	for _, o := range opts {
		if o.kind == scenarioOptConfig {
			o.fn(sc)
		}
	}
	g, err := New(sc.cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	sc.Game = g
	for _, o := range opts {
		if o.kind == scenarioOptPiles {
			o.fn(sc)
		}
	}
	return sc, nil
}

// Restart begins a new match with the same fixed piles, or a fresh random
// deal when none were given.
func (sc *Scenario) Restart() {
	if sc.radiiA != nil || sc.radiiB != nil {
		sc.Game.resetWith(sc.radiiA, sc.radiiB)
		return
	}
	sc.Game.Reset()
}

// Drop drags the top disc of the current player's pile to pos and releases it.
func (sc *Scenario) Drop(pos geom.Vec2) Outcome {
	return sc.DropAt(0, pos)
}

// DropAt drags the index-th disc of the current player's pile along path,
// one DragMove per point, and releases it at the last point.
func (sc *Scenario) DropAt(index int, path ...geom.Vec2) Outcome {
	g := sc.Game
	discs := g.Pile(g.CurrentPlayer()).Discs()
	if index < 0 || index >= len(discs) || len(path) == 0 {
		return OutcomeNone
	}
	if _, ok := g.DragStart(discs[index].Pos); !ok {
		return OutcomeNone
	}
	for _, p := range path {
		g.DragMove(p)
	}
	return g.DragEnd()
}

// RandomDrop tries up to attempts random drops of random pile discs at
// uniformly random points that keep the disc inside the arena. It returns
// OutcomePlaced and the attempt count on the first success.
func (sc *Scenario) RandomDrop(attempts int) (Outcome, int) {
	g := sc.Game
	for i := 1; i <= attempts; i++ {
		discs := g.Pile(g.CurrentPlayer()).Discs()
		if len(discs) == 0 {
			return OutcomeNone, i - 1
		}
		idx := sc.rng.Intn(len(discs))
		reach := g.Config().ArenaRadius - discs[idx].Radius
		theta := sc.rng.Float64() * 2 * math.Pi
		rho := math.Sqrt(sc.rng.Float64()) * reach
		p := geom.Vec2{X: rho * math.Cos(theta), Y: rho * math.Sin(theta)}
		if sc.DropAt(idx, p) == OutcomePlaced {
			return OutcomePlaced, i
		}
	}
	return OutcomeRejected, attempts
}

// PlayResult summarises a randomly played match.
type PlayResult struct {
	Turns    int
	Attempts int
	Captures [2]int
	Stalled  bool // some player could not place within the attempt budget
	Message  string
}

// PlayRandom plays RandomDrop turns until the match ends or a player stalls.
func (sc *Scenario) PlayRandom(attempts int) PlayResult {
	var res PlayResult
	g := sc.Game
	for !g.GameOver() {
		out, n := sc.RandomDrop(attempts)
		res.Attempts += n
		if out != OutcomePlaced {
			res.Stalled = true
			break
		}
	}
	res.Turns = g.Turn()
	res.Captures = g.Score()
	res.Message = g.Message()
	return res
}
