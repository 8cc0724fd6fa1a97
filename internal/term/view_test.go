package term

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Kissing-Discs/internal/game"
	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

type countingSounds struct{ entries []game.LogEntry }

func (c *countingSounds) Observe(entries []game.LogEntry) {
	c.entries = append(c.entries, entries...)
}

func newTestView(t *testing.T, sounds CuePlayer) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(160, 50)

	sc, err := game.NewScenario(game.WithPiles([]float64{20}, []float64{20}))
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}
	return New(screen, sc.Game, sounds), screen
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestResize_ScaleFitsTable(t *testing.T) {
	v, _ := newTestView(t, nil)
	if v.offX != 80 || v.offY != 24 {
		t.Fatalf("centre cell = (%d,%d), want (80,24)", v.offX, v.offY)
	}
	if v.scale < 5.49 || v.scale > 5.51 {
		t.Fatalf("scale = %.3f, want 5.5", v.scale)
	}
	if got := v.toGame(80, 24); got != (geom.Vec2{}) {
		t.Fatalf("centre cell maps to %s", got)
	}
	x, y := v.toCell(geom.Vec2{X: -264, Y: -174})
	if x != 32 || y != 8 {
		t.Fatalf("pile A top disc in cell (%d,%d), want (32,8)", x, y)
	}
}

func TestMouseDragPlacesDisc(t *testing.T) {
	snd := &countingSounds{}
	v, _ := newTestView(t, snd)
	g := v.game

	x, y := v.toCell(g.Pile(game.PlayerA).Discs()[0].Pos)
	v.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if _, ok := g.Dragged(); !ok {
		t.Fatal("press on the pile disc should start a drag")
	}
	v.HandleEvent(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(80, 24, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(80, 24, tcell.ButtonNone, tcell.ModNone))

	board := g.Board()
	if len(board) != 1 || board[0].Pos != (geom.Vec2{}) {
		t.Fatalf("board = %v, want one disc at the origin", board)
	}
	if v.status != "placed" {
		t.Fatalf("status = %q", v.status)
	}

	placed := false
	for _, e := range snd.entries {
		if e.Category == game.CatBoard && e.Key == "placed" {
			placed = true
		}
	}
	if !placed {
		t.Fatal("sound observer never saw the placement")
	}
}

func TestReleaseOutsideArenaRejects(t *testing.T) {
	v, _ := newTestView(t, nil)
	g := v.game
	x, y := v.toCell(g.Pile(game.PlayerA).Discs()[0].Pos)
	v.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(x+1, y, tcell.ButtonNone, tcell.ModNone))

	if v.status != "rejected" {
		t.Fatalf("status = %q, want rejected", v.status)
	}
	if g.Pile(game.PlayerA).Len() != 1 || g.CurrentPlayer() != game.PlayerA {
		t.Fatal("rejected drop must leave the pile and the turn alone")
	}
}

func TestKeys(t *testing.T) {
	v, _ := newTestView(t, nil)
	first := v.game.MatchID()

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)) {
		t.Fatal("r should not quit")
	}
	if v.game.MatchID() == first {
		t.Fatal("r should start a new match")
	}

	orig := writeClipboard
	defer func() { writeClipboard = orig }()
	writeClipboard = func(string) error { return errors.New("no xclip") }
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if !strings.Contains(v.status, "no xclip") {
		t.Fatalf("status = %q", v.status)
	}

	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("Esc should quit")
	}
}

func TestDrawShowsMessageDiscsAndRim(t *testing.T) {
	v, screen := newTestView(t, nil)
	g := v.game
	g.DragStart(g.Pile(game.PlayerA).Discs()[0].Pos)
	g.DragMove(geom.Vec2{})
	g.DragEnd()
	v.Draw()

	if row := rowText(screen, 0, 160); !strings.Contains(row, "0 - 0") {
		t.Fatalf("score line missing from row 0: %q", row)
	}
	if r, _, _, _ := screen.GetContent(80, 24); r != '0' {
		t.Fatalf("board disc label = %q, want '0'", r)
	}
	if r, _, _, _ := screen.GetContent(82, 24); r != '█' {
		t.Fatalf("board disc body = %q", r)
	}
	if r, _, _, _ := screen.GetContent(116, 24); r != '·' {
		t.Fatalf("arena rim = %q", r)
	}
	if row := rowText(screen, 48, 160); !strings.Contains(row, "black to move") {
		t.Fatalf("footer = %q", row)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	v, screen := newTestView(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after q")
	}
}
