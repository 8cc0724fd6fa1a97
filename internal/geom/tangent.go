package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoTangent means no circle of the requested radius can touch both
	// inputs at once.
	ErrNoTangent = errors.New("geom: no tangent circle exists")
	// ErrCoincidentCentres means the two input circles share a centre, so
	// there is no axis to solve along.
	ErrCoincidentCentres = errors.New("geom: circles share a centre")
)

// Epsilon is the relative tolerance applied to the tangency discriminant.
const Epsilon = 1e-9

// SolveTangent returns the centres of circles of radius r that touch both c1
// and c2 from the outside. These are the intersections of the circles of
// radius r+c1.R and r+c2.R about the two centres, found along the radical
// line. Zero, one or two centres come back; two are ordered left of the
// c1→c2 axis first.
func SolveTangent(c1, c2 Circle, r float64) ([]Vec2, error) {
	axis := c2.Center.Sub(c1.Center)
	d := axis.Len()
	if d < 1e-12 {
		return nil, fmt.Errorf("solve tangent at %s: %w", c1.Center, ErrCoincidentCentres)
	}

	s1 := r + c1.R
	s2 := r + c2.R
	a := (s1*s1 - s2*s2 + d*d) / (2 * d)
	h2 := s1*s1 - a*a

	tol := Epsilon * math.Max(1, s1*s1)
	if h2 < -tol {
		return nil, fmt.Errorf("solve tangent %s r=%.2f / %s r=%.2f (h²=%.3g): %w",
			c1.Center, c1.R, c2.Center, c2.R, h2, ErrNoTangent)
	}

	u := axis.Scale(1 / d)
	base := c1.Center.Add(u.Scale(a))
	if h2 <= tol {
		return []Vec2{base}, nil
	}

	n := u.Perp().Scale(math.Sqrt(h2))
	return []Vec2{base.Add(n), base.Sub(n)}, nil
}

// Nearest returns the candidate closest to p. It panics on an empty slice.
func Nearest(p Vec2, candidates []Vec2) Vec2 {
	best := candidates[0]
	bestD := Distance(p, best)
	for _, c := range candidates[1:] {
		if d := Distance(p, c); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}
