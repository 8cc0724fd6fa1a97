package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Kissing-Discs/internal/game"
	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

type fakeSounds struct {
	observed int
	muted    bool
}

func (f *fakeSounds) Observe(entries []game.LogEntry) { f.observed += len(entries) }

func (f *fakeSounds) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}

func (f *fakeSounds) Muted() bool { return f.muted }

func newTestApp(t *testing.T, sounds CuePlayer) *App {
	t.Helper()
	sc, err := game.NewScenario(game.WithPiles([]float64{20, 10}, []float64{20, 10}))
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}
	return NewApp(sc.Game, sounds)
}

func TestWindowSize_DefaultConfig(t *testing.T) {
	w, h := WindowSize(game.DefaultConfig())
	if w != 1096 || h != 752 {
		t.Fatalf("WindowSize = %dx%d, want 1096x752", w, h)
	}
}

func TestLayout_CentresArenaLeftOfFeed(t *testing.T) {
	a := newTestApp(t, nil)
	w, h := a.Layout(1000, 800)
	if w != 1000 || h != 800 {
		t.Fatalf("Layout returned %dx%d", w, h)
	}
	if got := a.toGame(340, 400); got != (geom.Vec2{}) {
		t.Fatalf("arena centre maps to %s, want origin", got)
	}
	if got := a.toGame(350, 380); got != (geom.Vec2{X: 10, Y: -20}) {
		t.Fatalf("toGame(350,380) = %s", got)
	}
	x, y := a.toScreen(geom.Vec2{X: -40, Y: 15})
	if x != 300 || y != 415 {
		t.Fatalf("toScreen = (%v,%v), want (300,415)", x, y)
	}
}

func TestLayout_NarrowWindowPullsPilesIn(t *testing.T) {
	a := newTestApp(t, nil)
	g := a.Game()
	if g.PileGap() != game.DefaultPileGap {
		t.Fatalf("default window gap = %v, want %v", g.PileGap(), game.DefaultPileGap)
	}

	a.Layout(700, 800)
	if g.PileGap() != game.DefaultMaxRadius {
		t.Fatalf("narrow window gap = %v, want %v", g.PileGap(), float64(game.DefaultMaxRadius))
	}
	if got := g.Pile(game.PlayerA).Origin(); got != (geom.Vec2{X: -250, Y: -200}) {
		t.Fatalf("pile A origin = %s", got)
	}
	top := g.Pile(game.PlayerB).Discs()[0]
	if top.Home.X != 250 || top.Pos != top.Home {
		t.Fatalf("pile B top disc at %s home %s", top.Pos, top.Home)
	}

	// A reset deals into the narrowed layout.
	g.Reset()
	if got := g.Pile(game.PlayerB).Origin(); got.X != 250 {
		t.Fatalf("pile B origin after reset = %s", got)
	}

	a.Layout(WindowSize(g.Config()))
	if got := g.Pile(game.PlayerA).Origin(); got != (geom.Vec2{X: -264, Y: -200}) {
		t.Fatalf("pile A origin after widening = %s", got)
	}
}

func TestFooterShowsSoundAndLastEvent(t *testing.T) {
	silent := newTestApp(t, nil)
	if !strings.Contains(silent.footer(), "[M] sound off") {
		t.Fatalf("footer without audio = %q", silent.footer())
	}

	snd := &fakeSounds{}
	a := newTestApp(t, snd)
	if !strings.Contains(a.footer(), "white to move") || !strings.Contains(a.footer(), "[M] sound on") {
		t.Fatalf("footer = %q", a.footer())
	}
	a.toggleMute()
	if !strings.Contains(a.footer(), "[M] sound off") || !strings.HasSuffix(a.footer(), "| mute on") {
		t.Fatalf("footer after mute = %q", a.footer())
	}
}

func TestPointerDragPlacesDisc(t *testing.T) {
	a := newTestApp(t, nil)
	g := a.Game()
	top := g.Pile(game.PlayerA).Discs()[0]

	a.pointerDown(top.Pos)
	if _, ok := g.Dragged(); !ok {
		t.Fatal("pointer down on the top pile disc should start a drag")
	}
	a.pointerMove(geom.Vec2{X: 30, Y: -10})
	a.pointerUp()

	board := g.Board()
	if len(board) != 1 || board[0].ID != top.ID {
		t.Fatalf("board = %v, want the dragged disc", board)
	}
	if g.CurrentPlayer() != game.PlayerB {
		t.Fatalf("turn did not pass, on move: %s", g.CurrentPlayer())
	}
}

func TestPointerMoveWithoutDragIsIgnored(t *testing.T) {
	a := newTestApp(t, nil)
	a.pointerMove(geom.Vec2{})
	a.pointerUp()
	if a.Game().Turn() != 0 || len(a.Game().Board()) != 0 {
		t.Fatal("stray pointer events changed the match")
	}
}

func TestResetButton(t *testing.T) {
	a := newTestApp(t, nil)
	g := a.Game()
	g.DragStart(g.Pile(game.PlayerA).Discs()[0].Pos)
	g.DragMove(geom.Vec2{})
	g.DragEnd()
	before := g.MatchID()

	a.pointerDown(geom.Vec2{X: 59, Y: g.Arena().R + resetButtonDrop + 19})
	if g.MatchID() == before {
		t.Fatal("click inside the reset button should start a new match")
	}
	if len(g.Board()) != 0 {
		t.Fatal("board not cleared by reset")
	}

	after := g.MatchID()
	a.pointerDown(geom.Vec2{X: 61, Y: g.Arena().R + resetButtonDrop})
	if g.MatchID() != after {
		t.Fatal("click right of the button should not reset")
	}
}

func TestButtonContains(t *testing.T) {
	b := Button{Center: geom.Vec2{X: 10, Y: 10}, W: 20, H: 10}
	if !b.Contains(geom.Vec2{X: 0, Y: 5}) {
		t.Error("top-left corner should be inside")
	}
	if b.Contains(geom.Vec2{X: 20, Y: 10}) {
		t.Error("right edge should be outside")
	}
	if b.Contains(geom.Vec2{X: 10, Y: 15}) {
		t.Error("bottom edge should be outside")
	}
}

func TestScoreLabel(t *testing.T) {
	cases := map[int]string{0: "0", 2: "2", -1: "-1!"}
	for score, want := range cases {
		if got := scoreLabel(&game.Disc{Score: score}); got != want {
			t.Errorf("scoreLabel(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestCopyReportsIntoFeed(t *testing.T) {
	a := newTestApp(t, nil)
	orig := writeClipboard
	defer func() { writeClipboard = orig }()

	var copied string
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	a.copy()
	if !strings.Contains(copied, "--- Match ") || !strings.Contains(copied, "match") {
		t.Fatalf("transcript missing header or log: %q", copied)
	}
	last, ok := a.feed.Last()
	if !ok || last.Key != "clipboard" || last.Value != "transcript copied" {
		t.Fatalf("feed last = %+v", last)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	a.copy()
	last, _ = a.feed.Last()
	if !strings.Contains(last.Value, "no clipboard utility") {
		t.Fatalf("clipboard failure not shown: %+v", last)
	}
}

func TestFeedSyncAndMute(t *testing.T) {
	snd := &fakeSounds{}
	a := newTestApp(t, snd)
	entries := a.feed.Sync(a.Game().Log())
	if len(entries) == 0 {
		t.Fatal("expected the match start entry")
	}

	a.toggleMute()
	if !snd.muted {
		t.Fatal("mute not forwarded")
	}
	last, _ := a.feed.Last()
	if last.Key != "mute" || last.Value != "on" {
		t.Fatalf("feed last = %+v", last)
	}
}
