package game

import (
	"sort"

	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

// ContactEpsilon absorbs floating-point error in the touching test, so a
// disc snapped exactly tangent to a neighbour counts as touching it but not
// as overlapping it.
const ContactEpsilon = 1e-6

// DiscID is a handle into a Registry. IDs are never reused within a game.
type DiscID int

// NoDisc is the zero handle; no live disc carries it.
const NoDisc DiscID = -1

// Disc is one playing piece. Neighbours are referenced by ID only; the
// Registry resolves them.
type Disc struct {
	ID       DiscID
	Home     geom.Vec2 // rest position: pile slot, or board spot once placed
	Pos      geom.Vec2 // live position, differs from Home while dragged
	Radius   float64
	Owner    Player
	Contacts []DiscID
	Score    int // Σ over contacts of +1 same owner, -1 opponent
	Dragged  bool
}

// Position implements geom.Positioner.
func (d *Disc) Position() geom.Vec2 { return d.Pos }

// Circle returns the disc's current footprint.
func (d *Disc) Circle() geom.Circle {
	return geom.Circle{Center: d.Pos, R: d.Radius}
}

// Contains reports whether p lies on the disc.
func (d *Disc) Contains(p geom.Vec2) bool {
	return d.Circle().Contains(p)
}

// Capturable reports whether the disc is surrounded and the player on move
// is its opponent.
func (d *Disc) Capturable(onMove Player) bool {
	return d.Owner != onMove && d.Score < 0
}

// Reset returns the disc to Home and forgets any provisional contacts.
func (d *Disc) Reset() {
	d.Pos = d.Home
	d.Dragged = false
	d.Contacts = d.Contacts[:0]
}

func (d *Disc) overlaps(o *Disc) bool {
	return geom.Distance(d, o) < d.Radius+o.Radius-ContactEpsilon
}

func (d *Disc) touches(o *Disc) bool {
	return geom.Distance(d, o) <= d.Radius+o.Radius+ContactEpsilon
}

// Contact pairs a neighbouring disc with its centre distance.
type Contact struct {
	Disc *Disc
	Dist float64
}

// Overlapping returns the discs from others that overlap d, closest first.
// Equal distances keep their input order. d itself is skipped.
func (d *Disc) Overlapping(others []*Disc) []Contact {
	var out []Contact
	for _, o := range others {
		if o.ID == d.ID {
			continue
		}
		dist := geom.Distance(d, o)
		if dist < d.Radius+o.Radius-ContactEpsilon {
			out = append(out, Contact{Disc: o, Dist: dist})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}

// SnapResult describes one Snap call.
type SnapResult struct {
	Accepted bool
	Contacts int   // neighbours touching at the resolved position
	Err      error // set only when the tangency solve was infeasible
}

// Snap drops d at target and lets it settle against the neighbours it
// overlaps: pushed out to rest on a single neighbour, or moved to the
// kissing position of the two closest. A position that still overlaps
// anything afterwards is rejected and d falls back to Home. On success
// d.Contacts lists every neighbour it touches; scores are left alone until
// the Registry commits the placement.
func (d *Disc) Snap(target geom.Vec2, neighbours []*Disc) SnapResult {
	d.Pos = target
	hits := d.Overlapping(neighbours)

	switch {
	case len(hits) == 1:
		c := hits[0]
		d.Pos = geom.MoveTowards(d.Pos, c.Disc.Pos, c.Dist-d.Radius-c.Disc.Radius)
	case len(hits) > 1:
		a, b := hits[0].Disc, hits[1].Disc
		cands, err := geom.SolveTangent(a.Circle(), b.Circle(), d.Radius)
		if err != nil {
			d.fallBack()
			return SnapResult{Err: err}
		}
		d.Pos = geom.Nearest(target, cands)
	}

	if len(d.Overlapping(neighbours)) > 0 {
		d.fallBack()
		return SnapResult{}
	}

	d.Contacts = d.Contacts[:0]
	for _, n := range neighbours {
		if n.ID != d.ID && d.touches(n) {
			d.Contacts = append(d.Contacts, n.ID)
		}
	}
	return SnapResult{Accepted: true, Contacts: len(d.Contacts)}
}

// fallBack is the rejected-snap path. Dragged stays set: the pointer still
// holds the disc.
func (d *Disc) fallBack() {
	d.Pos = d.Home
	d.Contacts = d.Contacts[:0]
}
