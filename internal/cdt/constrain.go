package cdt

import (
	"fmt"
	"sort"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// constrain forces every segment into the triangulation.
func (t *triangulation) constrain(segments []Segment) error {
	for _, s := range segments {
		for _, part := range t.split(t.dup[s.A], t.dup[s.B]) {
			if err := t.recover(part.a, part.b); err != nil {
				return err
			}
		}
	}
	return nil
}

// split breaks a->b at every input point lying on it, ordered from a to b.
func (t *triangulation) split(a, b int) []edge {
	if a == b {
		return nil
	}
	pa, pb := t.pts[a], t.pts[b]
	ab := pb.Sub(pa)
	l2 := ab.Dot(ab)

	type hit struct {
		v   int
		pos float64
	}
	var hits []hit
	for k := 0; k < t.n; k++ {
		if t.dup[k] != k || k == a || k == b {
			continue
		}
		pk := t.pts[k]
		pos := pk.Sub(pa).Dot(ab) / l2
		if pos <= 0 || pos >= 1 {
			continue
		}
		// distance from the line, relative to the segment length
		if d := pmath.Orient(pa, pb, pk); d*d > 1e-18*l2*l2 {
			continue
		}
		hits = append(hits, hit{k, pos})
	}
	if len(hits) == 0 {
		return []edge{{a, b}}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	parts := make([]edge, 0, len(hits)+1)
	prev := a
	for _, h := range hits {
		parts = append(parts, edge{prev, h.v})
		prev = h.v
	}
	return append(parts, edge{prev, b})
}

func (t *triangulation) hasEdge(a, b int) bool {
	if _, ok := t.half[edge{a, b}]; ok {
		return true
	}
	_, ok := t.half[edge{b, a}]
	return ok
}

// recover makes a-b an edge by flipping away every edge that crosses it.
func (t *triangulation) recover(a, b int) error {
	if a == b {
		return nil
	}
	if t.hasEdge(a, b) {
		t.fixed[edge{a, b}.undirected()] = true
		return nil
	}

	queue, err := t.crossing(a, b)
	if err != nil {
		return err
	}
	budget := 1000 + 50*len(queue)*len(queue)
	for len(queue) > 0 {
		if budget--; budget < 0 {
			return fmt.Errorf("%w: segment %d-%d", ErrNoConvergence, a, b)
		}
		e := queue[0]
		queue = queue[1:]

		f1, ok1 := t.half[edge{e.a, e.b}]
		f2, ok2 := t.half[edge{e.b, e.a}]
		if !ok1 || !ok2 {
			return fmt.Errorf("%w: crossing edge %d-%d vanished", ErrNoConvergence, e.a, e.b)
		}
		w1 := t.third(f1, e.a, e.b)
		w2 := t.third(f2, e.b, e.a)
		if !t.flippable(e.a, e.b, w1, w2) {
			queue = append(queue, e)
			continue
		}
		t.flip(f1, f2, e.a, e.b, w1, w2)
		if w1 != a && w1 != b && w2 != a && w2 != b && t.crosses(a, b, w1, w2) {
			queue = append(queue, edge{w1, w2})
		}
	}

	if !t.hasEdge(a, b) {
		return fmt.Errorf("%w: segment %d-%d missing after flips", ErrNoConvergence, a, b)
	}
	t.fixed[edge{a, b}.undirected()] = true
	return nil
}

// crossing lists the undirected edges that properly cross a-b.
func (t *triangulation) crossing(a, b int) ([]edge, error) {
	var out []edge
	for _, f := range t.faces {
		if f.dead {
			continue
		}
		for k := 0; k < 3; k++ {
			u, v := f.v[k], f.v[(k+1)%3]
			if _, twin := t.half[edge{v, u}]; twin && u > v {
				continue
			}
			if u == a || u == b || v == a || v == b {
				continue
			}
			if !t.crosses(a, b, u, v) {
				continue
			}
			if t.fixed[edge{u, v}.undirected()] {
				return nil, fmt.Errorf("%w: %d-%d crosses %d-%d", ErrSegmentConflict, a, b, u, v)
			}
			out = append(out, edge{u, v})
		}
	}
	return out, nil
}

// crosses reports whether segments a-b and u-v intersect at a single
// interior point of both.
func (t *triangulation) crosses(a, b, u, v int) bool {
	pa, pb, pu, pv := t.pts[a], t.pts[b], t.pts[u], t.pts[v]
	o1 := pmath.Orient(pa, pb, pu)
	o2 := pmath.Orient(pa, pb, pv)
	o3 := pmath.Orient(pu, pv, pa)
	o4 := pmath.Orient(pu, pv, pb)
	return ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) &&
		((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0))
}

// flippable reports whether the quad u, w2, v, w1 around edge u-v is
// strictly convex, so that the diagonal can be swapped to w1-w2.
func (t *triangulation) flippable(u, v, w1, w2 int) bool {
	return pmath.Orient(t.pts[u], t.pts[w2], t.pts[w1]) > 0 &&
		pmath.Orient(t.pts[w2], t.pts[v], t.pts[w1]) > 0
}

// flip replaces faces (u,v,w1) and (v,u,w2) with (u,w2,w1) and (w2,v,w1).
func (t *triangulation) flip(f1, f2, u, v, w1, w2 int) {
	t.setFace(f1, u, w2, w1)
	t.setFace(f2, w2, v, w1)
}

// legalize restores the Delaunay property on unconstrained edges with
// Lawson flips.
func (t *triangulation) legalize() {
	var stack []edge
	for _, f := range t.faces {
		if f.dead {
			continue
		}
		for k := 0; k < 3; k++ {
			stack = append(stack, edge{f.v[k], f.v[(k+1)%3]})
		}
	}

	budget := 20*len(stack) + 1000
	for len(stack) > 0 && budget > 0 {
		budget--
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.fixed[e.undirected()] {
			continue
		}
		f1, ok1 := t.half[edge{e.a, e.b}]
		f2, ok2 := t.half[edge{e.b, e.a}]
		if !ok1 || !ok2 {
			continue
		}
		w1 := t.third(f1, e.a, e.b)
		w2 := t.third(f2, e.b, e.a)
		if !pmath.InCircle(t.pts[e.a], t.pts[e.b], t.pts[w1], t.pts[w2]) {
			continue
		}
		if !t.flippable(e.a, e.b, w1, w2) {
			continue
		}
		t.flip(f1, f2, e.a, e.b, w1, w2)
		stack = append(stack,
			edge{e.a, w2}, edge{w2, e.b}, edge{e.b, w1}, edge{w1, e.a})
	}
}
