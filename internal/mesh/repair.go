package mesh

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// repairBatch is the number of interior points one repair pass adds.
const repairBatch = 5

// ensureConnected checks that every vertex is part of a triangle. If not,
// it adds up to repairBatch interior points and triangulates once more.
// A mesh that is still disconnected afterwards is reported as a warning.
func (e *Engine) ensureConnected() {
	missing := unreferenced(e.triangles, len(e.vertices))
	if len(missing) == 0 {
		return
	}

	holes := e.holePolygons()
	if e.trappedInHoles(missing, holes) {
		e.warn(fmt.Errorf("%w: %d of %d, all inside holes", ErrDisconnected, len(missing), len(e.vertices)))
		return
	}

	budget := e.limits.Points.Max - (SideCount + e.layout.Interior)
	n := min(repairBatch, budget)
	if n <= 0 {
		e.warn(fmt.Errorf("%w: %d of %d, point budget %d used up",
			ErrDisconnected, len(missing), len(e.vertices), e.limits.Points.Max))
		return
	}

	w, h := float64(e.params.Width), float64(e.params.Height)
	pts := make([]pmath.Vec2, n)
	vels := make([]pmath.Vec2, n)
	exhausted := 0
	for k := range n {
		p, ok := e.factory.samplePoint(w, h, holes)
		if !ok {
			exhausted++
		}
		pts[k] = p
		vels[k] = e.factory.randomVelocity(e.params.MinSpeed, e.params.MaxSpeed)
	}
	if exhausted > 0 {
		e.warn(fmt.Errorf("%w: %d of %d repair points", ErrSamplingExhausted, exhausted, n))
	}

	// new points go to the end of the interior range so the hole tail
	// keeps its relative order
	_, end := e.layout.InteriorRange()
	e.vertices = slices.Insert(e.vertices, end, pts...)
	e.velocities = slices.Insert(e.velocities, end, vels...)
	e.layout.Interior += n

	e.log.Debug("repairing mesh connectivity",
		zap.Int("unreferenced", len(missing)),
		zap.Int("added", n),
		zap.Uint64("tick", e.tick),
	)

	e.retriangulate()
	if missing := unreferenced(e.triangles, len(e.vertices)); len(missing) > 0 {
		e.warn(fmt.Errorf("%w: %d of %d after repair", ErrDisconnected, len(missing), len(e.vertices)))
	}
}

// trappedInHoles reports whether every missing vertex lies inside a hole.
// Such a vertex stays out of the triangulation however many points are
// added around it.
func (e *Engine) trappedInHoles(missing []int, holes [][]pmath.Vec2) bool {
	if len(holes) == 0 {
		return false
	}
	for _, i := range missing {
		if penetration(e.vertices[i], holes) == 0 {
			return false
		}
	}
	return true
}
