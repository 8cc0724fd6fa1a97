// Package render is the ebiten window front-end.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Kissing-Discs/internal/game"
	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

// borderWidth is the pixel gap kept around the piles.
const borderWidth = 24

// messageScale is the integer upscale applied to the score line.
const messageScale = 3

const (
	resetButtonDrop = 128 // below the arena rim
	messageRise     = 64  // above the arena rim
)

var (
	backgroundColour = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	arenaColour      = color.RGBA{A: 255}
	labelColour      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	snapOKColour     = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	snapBadColour    = color.RGBA{R: 230, G: 70, B: 70, A: 255}
)

// CuePlayer receives the new match log entries every frame.
type CuePlayer interface {
	Observe(entries []game.LogEntry)
	ToggleMute() bool
	Muted() bool
}

// Button is a labelled rectangle centred on a game-space point.
type Button struct {
	Label  string
	Center geom.Vec2
	W, H   float64
}

// Contains reports whether p falls on the button.
func (b Button) Contains(p geom.Vec2) bool {
	left := b.Center.X - b.W/2
	top := b.Center.Y - b.H/2
	return p.X >= left && p.X < left+b.W && p.Y >= top && p.Y < top+b.H
}

// App implements ebiten.Game around one match.
type App struct {
	game   *game.Game
	feed   *Feed
	sounds CuePlayer
	reset  Button
	face   text.Face

	width, height int     // window size from the last Layout
	offX, offY    float64 // screen position of the arena centre

	prevKeys map[ebiten.Key]bool
}

// NewApp wraps g. sounds may be nil.
func NewApp(g *game.Game, sounds CuePlayer) *App {
	ar := g.Arena().R
	w, h := WindowSize(g.Config())
	a := &App{
		game:     g,
		feed:     NewFeed(),
		sounds:   sounds,
		reset:    Button{Label: "reset", Center: geom.Vec2{Y: ar + resetButtonDrop}, W: 120, H: 40},
		face:     text.NewGoXFace(basicfont.Face7x13),
		prevKeys: make(map[ebiten.Key]bool),
	}
	a.Layout(w, h)
	return a
}

// WindowSize is the initial window size that fits the arena, both piles'
// top discs, the score line, the reset button and the feed panel.
func WindowSize(cfg game.Config) (int, int) {
	halfW := cfg.ArenaRadius + cfg.PileGap + 2*float64(cfg.MaxRadius) + borderWidth
	halfH := cfg.ArenaRadius + resetButtonDrop + 2*borderWidth
	return int(2*halfW) + feedPanelWidth, int(2 * halfH)
}

// Game returns the match being shown.
func (a *App) Game() *game.Game { return a.game }

func (a *App) Update() error {
	a.handleInput()
	entries := a.feed.Sync(a.game.Log())
	if a.sounds != nil && len(entries) > 0 {
		a.sounds.Observe(entries)
	}
	return nil
}

// handleInput turns mouse and keyboard state into game calls.
func (a *App) handleInput() {
	mx, my := ebiten.CursorPosition()
	p := a.toGame(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.pointerDown(p)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.pointerMove(p)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.pointerUp()
	}

	currentKeys := map[ebiten.Key]bool{}
	for _, k := range []ebiten.Key{ebiten.KeyR, ebiten.KeyC, ebiten.KeyM} {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		if !currentKeys[k] || a.prevKeys[k] {
			continue
		}
		switch k {
		case ebiten.KeyR:
			a.restart()
		case ebiten.KeyC:
			a.copy()
		case ebiten.KeyM:
			a.toggleMute()
		}
	}
	a.prevKeys = currentKeys
}

// pointerDown presses the reset button or picks up a pile disc.
func (a *App) pointerDown(p geom.Vec2) {
	if a.reset.Contains(p) {
		a.restart()
		return
	}
	a.game.DragStart(p)
}

func (a *App) pointerMove(p geom.Vec2) {
	if _, ok := a.game.Dragged(); ok {
		a.game.DragMove(p)
	}
}

func (a *App) pointerUp() {
	a.game.DragEnd()
}

func (a *App) restart() {
	a.game.Reset()
}

func (a *App) copy() {
	e := game.LogEntry{Turn: a.game.Turn(), Player: "--", Category: catUI, Key: "clipboard", Value: "transcript copied"}
	if err := copyTranscript(a.game); err != nil {
		e.Value = err.Error()
	}
	a.feed.Add(e)
}

func (a *App) toggleMute() {
	if a.sounds == nil {
		return
	}
	state := "off"
	if a.sounds.ToggleMute() {
		state = "on"
	}
	a.feed.Add(game.LogEntry{Turn: a.game.Turn(), Player: "--", Category: catUI, Key: "mute", Value: state})
}

// toGame converts a cursor position to game space.
func (a *App) toGame(x, y int) geom.Vec2 {
	return geom.Vec2{X: float64(x) - a.offX, Y: float64(y) - a.offY}
}

func (a *App) toScreen(p geom.Vec2) (float32, float32) {
	return float32(p.X + a.offX), float32(p.Y + a.offY)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColour)

	cx, cy := a.toScreen(geom.Vec2{})
	vector.StrokeCircle(screen, cx, cy, float32(a.game.Arena().R), 4, arenaColour, true)

	for _, d := range a.game.Board() {
		a.drawDisc(screen, d)
	}
	for _, p := range []game.Player{game.PlayerA, game.PlayerB} {
		for _, d := range a.game.Pile(p).Discs() {
			if !d.Dragged {
				a.drawDisc(screen, d)
			}
		}
	}
	if d, ok := a.game.Dragged(); ok {
		a.drawDisc(screen, d)
		ring := snapBadColour
		if a.game.SnapAccepted() {
			ring = snapOKColour
		}
		x, y := a.toScreen(d.Pos)
		vector.StrokeCircle(screen, x, y, float32(d.Radius)+2, 2, ring, true)
	}

	a.drawMessage(screen)
	a.drawButton(screen, a.reset)
	a.feed.Draw(screen, a.width-feedPanelWidth, a.height)

	ebitenutil.DebugPrintAt(screen, a.footer(), 8, a.height-20)
}

// footer is the status line under the table, ending with the newest feed
// line.
func (a *App) footer() string {
	s := fmt.Sprintf("%s to move  T=%d", a.game.CurrentPlayer().Colour(), a.game.Turn())
	if a.game.GameOver() {
		s = "match over"
	}
	sound := "on"
	if a.sounds == nil || a.sounds.Muted() {
		sound = "off"
	}
	s += "   [R] reset  [C] copy log  [M] sound " + sound
	if e, ok := a.feed.Last(); ok {
		s += "   | " + e.Key + " " + e.Value
	}
	return s
}

func discColour(p game.Player) color.RGBA {
	if p == game.PlayerA {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{A: 255}
}

// scoreLabel is the text drawn on a disc: its score, flagged when negative.
func scoreLabel(d *game.Disc) string {
	s := strconv.Itoa(d.Score)
	if d.Score < 0 {
		s += "!"
	}
	return s
}

func (a *App) drawDisc(screen *ebiten.Image, d *game.Disc) {
	x, y := a.toScreen(d.Pos)
	vector.FillCircle(screen, x, y, float32(d.Radius), discColour(d.Owner), true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(labelColour)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, scoreLabel(d), a.face, op)
}

func (a *App) drawMessage(screen *ebiten.Image) {
	x, y := a.toScreen(geom.Vec2{Y: -a.game.Arena().R - messageRise})
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(messageScale, messageScale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(labelColour)
	text.Draw(screen, a.game.Message(), a.face, op)
}

func (a *App) drawButton(screen *ebiten.Image, b Button) {
	x, y := a.toScreen(geom.Vec2{X: b.Center.X - b.W/2, Y: b.Center.Y - b.H/2})
	vector.FillRect(screen, x, y, float32(b.W), float32(b.H), labelColour, false)

	cx, cy := a.toScreen(b.Center)
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(float64(cx), float64(cy))
	text.Draw(screen, b.Label, a.face, op)
}

// pileGapFor is the widest rim-to-pile gap, up to the configured one, that
// keeps the piles inside a window width wide. It never drops below the
// largest disc radius, so pile discs stay clear of the arena.
func pileGapFor(cfg game.Config, width int) float64 {
	room := float64(width-feedPanelWidth)/2 - borderWidth - cfg.ArenaRadius - float64(cfg.MaxRadius)
	floor := math.Min(cfg.PileGap, float64(cfg.MaxRadius))
	return math.Max(math.Min(room, cfg.PileGap), floor)
}

// Layout keeps the arena centred in the space left of the feed panel and
// pulls the piles in when the window gets narrow.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	a.offX = float64(outsideWidth-feedPanelWidth) / 2
	a.offY = float64(outsideHeight) / 2
	a.game.LayoutPiles(pileGapFor(a.game.Config(), outsideWidth))
	return outsideWidth, outsideHeight
}
