// Package term is a tcell front-end: the table rasterised into character
// cells, played with the mouse.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Kissing-Discs/internal/game"
	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

const (
	frameInterval = 33 * time.Millisecond
	cellAspect    = 2.0 // a cell is about twice as tall as it is wide
	messageRise   = 64
	footerRows    = 2
)

var (
	styleTable    = tcell.StyleDefault.Background(tcell.ColorPurple).Foreground(tcell.ColorSilver)
	styleRim      = styleTable.Foreground(tcell.ColorBlack)
	styleWhite    = styleTable.Foreground(tcell.ColorWhite)
	styleBlack    = styleTable.Foreground(tcell.ColorBlack)
	styleHeldOK   = styleTable.Foreground(tcell.ColorLime)
	styleHeldBad  = styleTable.Foreground(tcell.ColorRed)
	styleLabel    = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	styleFooter   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleNegative = tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite)
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// CuePlayer receives the new match log entries after every event.
type CuePlayer interface {
	Observe(entries []game.LogEntry)
}

// View owns one Game and draws it onto a tcell screen.
type View struct {
	screen tcell.Screen
	game   *game.Game
	sounds CuePlayer
	cursor game.LogCursor

	width, height int
	scale         float64 // game units per cell column
	offX, offY    int     // cell holding the arena centre

	held   bool // button 1 is down
	status string
}

// New wraps an initialised screen. sounds may be nil.
func New(screen tcell.Screen, g *game.Game, sounds CuePlayer) *View {
	v := &View{screen: screen, game: g, sounds: sounds}
	screen.EnableMouse()
	v.Resize()
	return v
}

// Resize fits the table, both piles' widest discs and the score line into
// the current screen size.
func (v *View) Resize() {
	v.width, v.height = v.screen.Size()
	cfg := v.game.Config()
	halfW := cfg.ArenaRadius + cfg.PileGap + 2*float64(cfg.MaxRadius)
	halfH := cfg.ArenaRadius + messageRise

	cols := math.Max(float64(v.width)/2, 1)
	rows := math.Max(float64(v.height-footerRows)/2, 1)
	v.scale = math.Max(halfW/cols, halfH/rows/cellAspect)
	v.offX = v.width / 2
	v.offY = (v.height - footerRows) / 2
}

// toGame returns the game-space centre of cell (x, y).
func (v *View) toGame(x, y int) geom.Vec2 {
	return geom.Vec2{
		X: float64(x-v.offX) * v.scale,
		Y: float64(y-v.offY) * v.scale * cellAspect,
	}
}

// toCell returns the cell containing game point p.
func (v *View) toCell(p geom.Vec2) (int, int) {
	x := int(math.Round(p.X/v.scale)) + v.offX
	y := int(math.Round(p.Y/(v.scale*cellAspect))) + v.offY
	return x, y
}

// HandleEvent applies one tcell event. It returns false when the user quits.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.held = false
				v.game.Reset()
				v.status = "new match"
			case 'c':
				v.copyTranscript()
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		v.pointer(v.toGame(x, y), ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		v.Resize()
		v.screen.Sync()
	}

	if v.sounds != nil {
		if entries := v.cursor.Next(v.game.Log()); len(entries) > 0 {
			v.sounds.Observe(entries)
		}
	}
	return true
}

// pointer folds press, drag and release into one call: tcell reports them
// all as mouse events carrying the current button mask.
func (v *View) pointer(p geom.Vec2, down bool) {
	switch {
	case down && !v.held:
		v.held = true
		v.status = ""
		if _, ok := v.game.DragStart(p); ok {
			v.game.DragMove(p)
		}
	case down:
		v.game.DragMove(p)
	case v.held:
		v.held = false
		if _, ok := v.game.Dragged(); ok {
			v.game.DragMove(p)
			v.status = v.game.DragEnd().String()
		}
	}
}

func (v *View) copyTranscript() {
	if err := writeClipboard(v.game.Transcript()); err != nil {
		v.status = fmt.Sprintf("copy transcript: %v", err)
		return
	}
	v.status = "transcript copied"
}

// Draw rasterises the table: each cell shows whatever covers its centre.
func (v *View) Draw() {
	v.screen.Clear()
	held, holding := v.game.Dragged()
	board := v.game.Board()
	piles := append(v.game.Pile(game.PlayerA).Discs(), v.game.Pile(game.PlayerB).Discs()...)
	arena := v.game.Arena()
	rim := v.scale * 0.75

	for y := 0; y < v.height-footerRows; y++ {
		for x := 0; x < v.width; x++ {
			p := v.toGame(x, y)
			ch, style := ' ', styleTable
			if math.Abs(p.Len()-arena.R) < rim {
				ch, style = '·', styleRim
			}
			if d := topDisc(p, board, piles, held); d != nil {
				ch, style = '█', discStyle(d.Owner)
				if holding && d.ID == held.ID {
					style = styleHeldBad
					if v.game.SnapAccepted() {
						style = styleHeldOK
					}
				}
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}

	for _, d := range board {
		v.drawLabel(d)
	}
	for _, d := range piles {
		if !d.Dragged {
			v.drawLabel(d)
		}
	}

	mx, my := v.toCell(geom.Vec2{Y: -arena.R - messageRise})
	msg := v.game.Message()
	v.putString(mx-len(msg)/2, my, msg, styleLabel)

	turn := fmt.Sprintf("T=%d %s to move", v.game.Turn(), v.game.CurrentPlayer().Colour())
	if v.game.GameOver() {
		turn = "match over"
	}
	v.putString(0, v.height-2, turn+"  drag: mouse  r: reset  c: copy log  q: quit", styleFooter)
	if last, ok := v.game.Log().LastOf(game.CatBoard, ""); ok && v.status == "" {
		v.putString(0, v.height-1, last.String(), styleFooter)
	} else {
		v.putString(0, v.height-1, v.status, styleFooter)
	}
	v.screen.Show()
}

// topDisc picks the disc drawn over p: the held disc, then pile discs, then
// the board.
func topDisc(p geom.Vec2, board, piles []*game.Disc, held *game.Disc) *game.Disc {
	if held != nil && held.Contains(p) {
		return held
	}
	for _, d := range piles {
		if !d.Dragged && d.Contains(p) {
			return d
		}
	}
	for _, d := range board {
		if d.Contains(p) {
			return d
		}
	}
	return nil
}

func discStyle(p game.Player) tcell.Style {
	if p == game.PlayerA {
		return styleWhite
	}
	return styleBlack
}

func (v *View) drawLabel(d *game.Disc) {
	x, y := v.toCell(d.Pos)
	label := fmt.Sprint(d.Score)
	style := styleLabel
	if d.Score < 0 {
		label += "!"
		style = styleNegative
	}
	v.putString(x-len(label)/2, y, label, style)
}

func (v *View) putString(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= v.height {
		return
	}
	for _, r := range s {
		if x >= 0 && x < v.width {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// Run draws at a fixed frame rate and applies events until the user quits
// or ctx ends. Events are read on their own goroutine.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Draw()
		}
	}
}
