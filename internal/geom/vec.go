// Package geom holds the plane geometry used by the disc engine: points,
// circles and the kissing-circle solver.
package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or displacement in game space.
type Vec2 struct {
	X, Y float64
}

// Positioner is anything with a location in game space. Both a bare Vec2
// and a placed disc satisfy it, so helpers can take either.
type Positioner interface {
	Position() Vec2
}

// Position lets a Vec2 stand in wherever a Positioner is expected.
func (v Vec2) Position() Vec2 { return v }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Perp returns v rotated a quarter turn counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", v.X, v.Y)
}

// Distance returns the distance between the positions of a and b.
func Distance(a, b Positioner) float64 {
	return a.Position().Sub(b.Position()).Len()
}

// MoveTowards steps from toward to by at most maxStep. A step that would
// overshoot lands exactly on to. A negative step moves away from to. When
// from and to coincide there is no direction and from is returned.
func MoveTowards(from, to Vec2, maxStep float64) Vec2 {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist < 1e-12 {
		return from
	}
	if maxStep >= dist {
		return to
	}
	return from.Add(delta.Scale(maxStep / dist))
}

// Circle is a centre and a radius.
type Circle struct {
	Center Vec2
	R      float64
}

// Contains reports whether p lies strictly inside c.
func (c Circle) Contains(p Vec2) bool {
	return c.Center.Sub(p).Len() < c.R
}

// Encloses reports whether o lies entirely within c without touching its rim.
func (c Circle) Encloses(o Circle) bool {
	return o.Center.Sub(c.Center).Len()+o.R < c.R
}
