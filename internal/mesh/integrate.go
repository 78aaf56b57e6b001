package mesh

import (
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// integrate moves side anchors and interior points one tick. Corners and
// hole vertices are left alone.
//
// Per vertex, in order: velocity step, hole deflection (interior points,
// avoidance on), canvas fold-back per axis, then pin reset for anchors.
func integrate(vertices, velocities []pmath.Vec2, layout Layout, speed, width, height float64, holes [][]pmath.Vec2, avoid bool) {
	for i := firstSide; i < layout.Movable(); i++ {
		old, v := vertices[i], velocities[i]
		next := old.Add(v.Scale(speed))

		if avoid && layout.Kind(i) == KindInterior {
			for _, poly := range holes {
				if !pmath.PointInPolygon(next, poly) {
					continue
				}
				v = deflect(old, v, poly)
				next = old.Add(v.Scale(speed))
			}
		}

		next.X, v.X = foldAxis(next.X, v.X, width)
		next.Y, v.Y = foldAxis(next.Y, v.Y, height)

		if side, ok := layout.SideOf(i); ok {
			if side.Horizontal() {
				next.Y = side.Pinned(width, height)
			} else {
				next.X = side.Pinned(width, height)
			}
		}

		vertices[i], velocities[i] = next, v
	}
}

// deflect reflects v off poly using the normal from the boundary point
// closest to old towards old.
func deflect(old, v pmath.Vec2, poly []pmath.Vec2) pmath.Vec2 {
	closest, _ := pmath.ClosestPointOnPolygon(old, poly)
	n := old.Sub(closest)
	if n.Length() == 0 {
		n = pmath.Vec2{X: 1}
	} else {
		n = n.Normalize()
	}
	return v.Reflect(n)
}

// foldAxis mirrors p back into [0, bound] and flips v when it crossed an
// edge. A step longer than the canvas is clamped after the fold.
func foldAxis(p, v, bound float64) (float64, float64) {
	switch {
	case p < 0:
		p, v = -p, -v
	case p > bound:
		p, v = 2*bound-p, -v
	}
	return min(max(p, 0), bound), v
}
