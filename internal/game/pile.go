package game

import (
	"fmt"
	"slices"

	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

// Pile is one player's column of unplaced discs, stacked downward from
// origin. Each slot spans the margin above it plus the disc's diameter.
type Pile struct {
	Owner  Player
	reg    *Registry
	origin geom.Vec2
	end    geom.Vec2 // bottom edge of the last slot
	margin float64
	ids    []DiscID
}

// NewPile creates a pile for owner and stacks a fresh disc per radius.
func NewPile(reg *Registry, owner Player, origin geom.Vec2, margin float64, radii []float64) *Pile {
	p := &Pile{
		Owner:  owner,
		reg:    reg,
		origin: origin,
		end:    origin,
		margin: margin,
		ids:    make([]DiscID, 0, len(radii)),
	}
	for _, r := range radii {
		p.Append(reg.New(owner, r))
	}
	return p
}

// Append stacks d below the current last slot.
func (p *Pile) Append(d *Disc) {
	slot := geom.Vec2{X: p.end.X, Y: p.end.Y + p.margin + d.Radius}
	d.Home = slot
	d.Pos = slot
	p.end.Y += 2*d.Radius + p.margin
	p.ids = append(p.ids, d.ID)
}

// Remove takes a disc out of the pile and closes the gap: every disc below
// it moves up by the freed slot height. Discs being dragged keep their live
// position; only their Home moves.
func (p *Pile) Remove(id DiscID) error {
	i := slices.Index(p.ids, id)
	if i < 0 {
		return fmt.Errorf("pile %s: remove disc %d: %w", p.Owner, id, ErrUnknownDisc)
	}
	d, ok := p.reg.Get(id)
	if !ok {
		return fmt.Errorf("pile %s: remove disc %d: %w", p.Owner, id, ErrUnknownDisc)
	}
	disp := geom.Vec2{Y: -(2*d.Radius + p.margin)}
	p.ids = slices.Delete(p.ids, i, i+1)
	for _, c := range p.reg.Resolve(p.ids[i:]) {
		c.Home = c.Home.Add(disp)
		if !c.Dragged {
			c.Pos = c.Home
		}
	}
	p.end = p.end.Add(disp)
	return nil
}

// MoveTo translates the whole pile so its top sits at origin.
func (p *Pile) MoveTo(origin geom.Vec2) {
	disp := origin.Sub(p.origin)
	for _, c := range p.Discs() {
		c.Home = c.Home.Add(disp)
		if !c.Dragged {
			c.Pos = c.Home
		}
	}
	p.origin = origin
	p.end = p.end.Add(disp)
}

// Origin returns the top of the pile.
func (p *Pile) Origin() geom.Vec2 { return p.origin }

// Len returns the number of discs left.
func (p *Pile) Len() int { return len(p.ids) }

// Contains reports whether id is still in the pile.
func (p *Pile) Contains(id DiscID) bool { return slices.Contains(p.ids, id) }

// Discs resolves the pile top first.
func (p *Pile) Discs() []*Disc { return p.reg.Resolve(p.ids) }
