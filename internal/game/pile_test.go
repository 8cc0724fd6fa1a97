package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Kissing-Discs/internal/geom"
)

func TestPile_StacksDownwardWithMargin(t *testing.T) {
	reg := NewRegistry()
	p := NewPile(reg, PlayerA, geom.Vec2{X: -264, Y: -200}, 6, []float64{10, 20, 5})

	discs := p.Discs()
	require.Len(t, discs, 3)
	assert.Equal(t, geom.Vec2{X: -264, Y: -184}, discs[0].Home)
	assert.Equal(t, geom.Vec2{X: -264, Y: -148}, discs[1].Home)
	assert.Equal(t, geom.Vec2{X: -264, Y: -117}, discs[2].Home)
	for _, d := range discs {
		assert.Equal(t, d.Home, d.Pos)
		assert.Equal(t, PlayerA, d.Owner)
	}
}

func TestPile_RemoveClosesGap(t *testing.T) {
	reg := NewRegistry()
	p := NewPile(reg, PlayerB, geom.Vec2{}, 6, []float64{10, 20, 5})
	discs := p.Discs()
	top, mid, last := discs[0], discs[1], discs[2]

	require.NoError(t, p.Remove(top.ID))
	assert.Equal(t, 2, p.Len())
	assert.False(t, p.Contains(top.ID))
	// freed slot is 2*10 + 6 tall
	assert.Equal(t, geom.Vec2{Y: 26}, mid.Home)
	assert.Equal(t, geom.Vec2{Y: 26}, mid.Pos)
	assert.Equal(t, geom.Vec2{Y: 57}, last.Home)

	// the top slot now starts where the removed disc's did
	next := reg.New(PlayerB, 10)
	p.Append(next)
	assert.Equal(t, geom.Vec2{Y: 78}, next.Home)
}

func TestPile_RemoveKeepsDraggedDiscUnderPointer(t *testing.T) {
	reg := NewRegistry()
	p := NewPile(reg, PlayerA, geom.Vec2{}, 6, []float64{10, 10})
	top, held := p.Discs()[0], p.Discs()[1]
	held.Dragged = true
	held.Pos = geom.Vec2{X: 55, Y: 55}

	require.NoError(t, p.Remove(top.ID))
	assert.Equal(t, geom.Vec2{Y: 16}, held.Home)
	assert.Equal(t, geom.Vec2{X: 55, Y: 55}, held.Pos)
}

func TestPile_RemoveUnknown(t *testing.T) {
	reg := NewRegistry()
	p := NewPile(reg, PlayerA, geom.Vec2{}, 6, []float64{10})
	assert.ErrorIs(t, p.Remove(77), ErrUnknownDisc)
	assert.Equal(t, 1, p.Len())
}

func TestPile_MoveTo(t *testing.T) {
	reg := NewRegistry()
	p := NewPile(reg, PlayerA, geom.Vec2{}, 6, []float64{10, 10})
	p.MoveTo(geom.Vec2{X: 100, Y: -50})

	assert.Equal(t, geom.Vec2{X: 100, Y: -50}, p.Origin())
	discs := p.Discs()
	assert.Equal(t, geom.Vec2{X: 100, Y: -34}, discs[0].Pos)
	assert.Equal(t, geom.Vec2{X: 100, Y: -8}, discs[1].Pos)
}
