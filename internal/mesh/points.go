package mesh

import (
	"fmt"
	"math"
	"math/rand/v2"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// pointFactory generates vertex positions and velocities from one owned
// random source.
type pointFactory struct {
	rng         *rand.Rand
	maxAttempts int
}

// build lays out a fresh vertex set for layout: corners, side anchors,
// interior points and the current hole vertices. Velocities cover the
// movable range only. A non-nil error is a sampling warning; the returned
// set is complete either way.
func (f *pointFactory) build(p Params, layout Layout, holes [][]pmath.Vec2) (vertices, velocities []pmath.Vec2, err error) {
	w, h := float64(p.Width), float64(p.Height)

	vertices = make([]pmath.Vec2, 0, layout.Len())
	velocities = make([]pmath.Vec2, layout.Movable())

	vertices = append(vertices,
		pmath.Vec2{X: 0, Y: 0},
		pmath.Vec2{X: w, Y: 0},
		pmath.Vec2{X: 0, Y: h},
		pmath.Vec2{X: w, Y: h},
	)

	for i := firstSide; i < firstInterior; i++ {
		side, _ := layout.SideOf(i)
		speed := f.speed(p.MinSpeed, p.MaxSpeed)
		if f.rng.IntN(2) == 0 {
			speed = -speed
		}
		if side.Horizontal() {
			vertices = append(vertices, pmath.Vec2{X: f.rng.Float64() * w, Y: side.Pinned(w, h)})
			velocities[i] = pmath.Vec2{X: speed}
		} else {
			vertices = append(vertices, pmath.Vec2{X: side.Pinned(w, h), Y: f.rng.Float64() * h})
			velocities[i] = pmath.Vec2{Y: speed}
		}
	}

	var avoid [][]pmath.Vec2
	if p.AvoidHoles {
		avoid = holes
	}
	exhausted := 0
	start, end := layout.InteriorRange()
	for i := start; i < end; i++ {
		pt, ok := f.samplePoint(w, h, avoid)
		if !ok {
			exhausted++
		}
		vertices = append(vertices, pt)
		velocities[i] = f.randomVelocity(p.MinSpeed, p.MaxSpeed)
	}

	for _, poly := range holes {
		vertices = append(vertices, poly...)
	}

	if exhausted > 0 {
		err = fmt.Errorf("%w: %d of %d interior points placed after %d attempts",
			ErrSamplingExhausted, exhausted, layout.Interior, f.attempts())
	}
	return vertices, velocities, err
}

func (f *pointFactory) attempts() int {
	return max(1, f.maxAttempts)
}

// samplePoint draws a uniform point in [0,w]x[0,h] outside every polygon in
// holes. When every attempt lands inside a hole, the candidate closest to a
// hole boundary is returned with ok false.
func (f *pointFactory) samplePoint(w, h float64, holes [][]pmath.Vec2) (pt pmath.Vec2, ok bool) {
	best, bestDepth := pmath.Vec2{}, math.Inf(1)
	for range f.attempts() {
		c := pmath.Vec2{X: f.rng.Float64() * w, Y: f.rng.Float64() * h}
		depth := penetration(c, holes)
		if depth == 0 {
			return c, true
		}
		if depth < bestDepth {
			best, bestDepth = c, depth
		}
	}
	return best, false
}

// penetration returns how far p lies inside the deepest containing polygon,
// or 0 when p is outside all of them.
func penetration(p pmath.Vec2, holes [][]pmath.Vec2) float64 {
	var depth float64
	for _, poly := range holes {
		if !pmath.PointInPolygon(p, poly) {
			continue
		}
		_, d := pmath.ClosestPointOnPolygon(p, poly)
		// a point on the boundary itself still counts as inside
		depth = max(depth, d, math.SmallestNonzeroFloat64)
	}
	return depth
}

func (f *pointFactory) speed(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// randomVelocity returns a speed in [lo, hi] at a uniform heading.
func (f *pointFactory) randomVelocity(lo, hi float64) pmath.Vec2 {
	speed := f.speed(lo, hi)
	theta := f.rng.Float64() * 2 * math.Pi
	return pmath.Vec2{}.Polar(speed, theta)
}
