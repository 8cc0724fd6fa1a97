package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveTowards_BoundedStep(t *testing.T) {
	got := MoveTowards(Vec2{0, 0}, Vec2{10, 0}, 4)
	assert.InDelta(t, 4, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
}

func TestMoveTowards_ClampsAtTarget(t *testing.T) {
	got := MoveTowards(Vec2{0, 0}, Vec2{3, 4}, 50)
	assert.Equal(t, Vec2{3, 4}, got)
}

func TestMoveTowards_NegativeStepBacksOff(t *testing.T) {
	got := MoveTowards(Vec2{6, 8}, Vec2{0, 0}, -5)
	assert.InDelta(t, 15, got.Len(), 1e-12)
	assert.InDelta(t, 9, got.X, 1e-12)
	assert.InDelta(t, 12, got.Y, 1e-12)
}

func TestMoveTowards_ZeroLengthStaysPut(t *testing.T) {
	got := MoveTowards(Vec2{2, 2}, Vec2{2, 2}, -3)
	assert.Equal(t, Vec2{2, 2}, got)
}

func TestDistance_AcceptsAnyPositioner(t *testing.T) {
	assert.InDelta(t, 5, Distance(Vec2{0, 0}, Vec2{3, 4}), 1e-12)
}

func TestCircle_EnclosesIsStrict(t *testing.T) {
	arena := Circle{R: 200}
	assert.True(t, arena.Encloses(Circle{Center: Vec2{100, 0}, R: 99}))
	assert.False(t, arena.Encloses(Circle{Center: Vec2{100, 0}, R: 100}))
	assert.False(t, arena.Encloses(Circle{Center: Vec2{0, 190}, R: 20}))
}

func TestCircle_Contains(t *testing.T) {
	c := Circle{Center: Vec2{10, 10}, R: 5}
	assert.True(t, c.Contains(Vec2{12, 12}))
	assert.False(t, c.Contains(Vec2{15, 10}))
}
