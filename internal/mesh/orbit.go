package mesh

import (
	"math"
	"math/rand/v2"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// Orbit drives one hole vertex around its rest position.
type Orbit struct {
	Center       pmath.Vec2 // rest position
	Radius       float64
	AngularSpeed float64 // radians per tick, signed
	Angle        float64
}

// Position returns the point on the orbit circle at the current angle.
func (o Orbit) Position() pmath.Vec2 {
	return o.Center.Polar(o.Radius, o.Angle)
}

// Step advances the angle by one tick.
func (o *Orbit) Step() {
	o.Angle = math.Mod(o.Angle+o.AngularSpeed, 2*math.Pi)
}

// newOrbits gives every hole vertex its own radius, speed, direction and
// starting phase.
func newOrbits(holes [][]pmath.Vec2, radius, speed Span, rng *rand.Rand) [][]Orbit {
	orbits := make([][]Orbit, len(holes))
	for h, poly := range holes {
		orbits[h] = make([]Orbit, len(poly))
		for k, rest := range poly {
			w := speed.sample(rng.Float64)
			if rng.IntN(2) == 0 {
				w = -w
			}
			orbits[h][k] = Orbit{
				Center:       rest,
				Radius:       radius.sample(rng.Float64),
				AngularSpeed: w,
				Angle:        rng.Float64() * 2 * math.Pi,
			}
		}
	}
	return orbits
}

// orbitPolygons returns the current hole polygons.
func orbitPolygons(orbits [][]Orbit) [][]pmath.Vec2 {
	polys := make([][]pmath.Vec2, len(orbits))
	for h, ring := range orbits {
		polys[h] = make([]pmath.Vec2, len(ring))
		for k, o := range ring {
			polys[h][k] = o.Position()
		}
	}
	return polys
}

// advanceOrbits steps every orbit and writes the new hole vertex positions
// into their slots. Hole motion is free: no reflection, no collision.
func advanceOrbits(orbits [][]Orbit, vertices []pmath.Vec2, layout Layout) {
	for h := range orbits {
		start, _ := layout.HoleRange(h)
		for k := range orbits[h] {
			o := &orbits[h][k]
			o.Step()
			vertices[start+k] = o.Position()
		}
	}
}
