package game

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownDisc is returned for handles the Registry does not hold.
var ErrUnknownDisc = errors.New("unknown disc")

// Registry owns every disc of a game and maintains the contact graph.
// Contacts are stored as IDs on both ends, so capturing a disc only has to
// touch its direct neighbours.
type Registry struct {
	discs map[DiscID]*Disc
	next  DiscID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{discs: make(map[DiscID]*Disc)}
}

// New creates a disc for owner, registers it and returns it.
func (r *Registry) New(owner Player, radius float64) *Disc {
	d := &Disc{ID: r.next, Radius: radius, Owner: owner}
	r.discs[d.ID] = d
	r.next++
	return d
}

// Get resolves a handle.
func (r *Registry) Get(id DiscID) (*Disc, bool) {
	d, ok := r.discs[id]
	return d, ok
}

// Len returns the number of live discs.
func (r *Registry) Len() int { return len(r.discs) }

// Resolve maps handles to discs, skipping any that are gone.
func (r *Registry) Resolve(ids []DiscID) []*Disc {
	out := make([]*Disc, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.discs[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Place commits a snapped disc: it gains one point per friendly contact and
// loses one per opposing contact, each neighbour gets the mirror adjustment
// and a back-reference, and Home is pinned to the placed position.
func (r *Registry) Place(id DiscID) error {
	d, ok := r.discs[id]
	if !ok {
		return fmt.Errorf("place disc %d: %w", id, ErrUnknownDisc)
	}
	neighbours := make([]*Disc, 0, len(d.Contacts))
	for _, cid := range d.Contacts {
		n, ok := r.discs[cid]
		if !ok {
			return fmt.Errorf("place disc %d: contact %d: %w", id, cid, ErrUnknownDisc)
		}
		neighbours = append(neighbours, n)
	}

	for _, n := range neighbours {
		a := affinity(n.Owner, d.Owner)
		d.Score += a
		n.Score += a
		n.Contacts = append(n.Contacts, d.ID)
	}
	d.Dragged = false
	d.Home = d.Pos
	return nil
}

// Remove takes a disc off the table, undoing exactly what Place applied to
// its neighbours, and drops it from the registry.
func (r *Registry) Remove(id DiscID) error {
	d, ok := r.discs[id]
	if !ok {
		return fmt.Errorf("remove disc %d: %w", id, ErrUnknownDisc)
	}
	for _, cid := range d.Contacts {
		n, ok := r.discs[cid]
		if !ok {
			continue
		}
		if i := slices.Index(n.Contacts, d.ID); i >= 0 {
			n.Contacts = slices.Delete(n.Contacts, i, i+1)
		}
		n.Score -= affinity(n.Owner, d.Owner)
	}
	d.Contacts = nil
	d.Score = 0
	delete(r.discs, id)
	return nil
}

// CheckInvariants verifies that every contact is mutual and every score
// equals the signed count of its contacts. Diagnostic only.
func (r *Registry) CheckInvariants() error {
	ids := make([]DiscID, 0, len(r.discs))
	for id := range r.discs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		d := r.discs[id]
		if d.Dragged {
			// provisional contacts from the live snap
			continue
		}
		want := 0
		for _, cid := range d.Contacts {
			n, ok := r.discs[cid]
			if !ok {
				return fmt.Errorf("disc %d: contact %d: %w", id, cid, ErrUnknownDisc)
			}
			if !slices.Contains(n.Contacts, id) {
				return fmt.Errorf("disc %d lists %d but not the reverse", id, cid)
			}
			want += affinity(n.Owner, d.Owner)
		}
		if d.Score != want {
			return fmt.Errorf("disc %d score %d, contacts say %d", id, d.Score, want)
		}
	}
	return nil
}
