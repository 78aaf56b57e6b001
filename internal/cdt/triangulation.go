package cdt

import (
	"fmt"
	"math"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// superScale sets the size of the enclosing triangle relative to the point
// set's extent.
const superScale = 20

// edge is a directed edge a->b. Each live face owns its three directed
// edges in counter-clockwise order.
type edge struct {
	a, b int
}

func (e edge) undirected() edge {
	if e.a > e.b {
		return edge{e.b, e.a}
	}
	return e
}

type face struct {
	v       [3]int
	dead    bool // replaced during insertion
	outside bool // carved away as exterior or hole
}

type triangulation struct {
	pts   []pmath.Vec2 // input points followed by the three super vertices
	n     int          // number of input points
	dup   []int        // dup[i] is the index point i collapsed into
	faces []face
	half  map[edge]int  // directed edge -> owning face
	fixed map[edge]bool // undirected constrained edges
	last  int           // a live face to start point location from
	eps   float64       // coincidence tolerance
}

func newTriangulation(points []pmath.Vec2) *triangulation {
	n := len(points)
	lo, hi := pmath.Bounds(points)
	d := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if d == 0 {
		d = 1
	}
	mid := pmath.Vec2{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}

	pts := make([]pmath.Vec2, n, n+3)
	copy(pts, points)
	pts = append(pts,
		pmath.Vec2{X: mid.X - superScale*d, Y: mid.Y - d},
		pmath.Vec2{X: mid.X + superScale*d, Y: mid.Y - d},
		pmath.Vec2{X: mid.X, Y: mid.Y + superScale*d},
	)

	dup := make([]int, n)
	for i := range dup {
		dup[i] = i
	}

	t := &triangulation{
		pts:   pts,
		n:     n,
		dup:   dup,
		half:  make(map[edge]int, 6*n+6),
		fixed: make(map[edge]bool),
		last:  -1,
		eps:   d * 1e-10,
	}
	t.addFace(n, n+1, n+2)
	return t
}

func (t *triangulation) isSuper(v int) bool {
	return v >= t.n
}

func (t *triangulation) addFace(a, b, c int) int {
	idx := len(t.faces)
	t.faces = append(t.faces, face{v: [3]int{a, b, c}})
	t.half[edge{a, b}] = idx
	t.half[edge{b, c}] = idx
	t.half[edge{c, a}] = idx
	t.last = idx
	return idx
}

func (t *triangulation) killFace(idx int) {
	f := &t.faces[idx]
	f.dead = true
	for k := 0; k < 3; k++ {
		e := edge{f.v[k], f.v[(k+1)%3]}
		if t.half[e] == idx {
			delete(t.half, e)
		}
	}
}

// setFace rewrites a live face in place, keeping the half-edge map current.
func (t *triangulation) setFace(idx, a, b, c int) {
	f := &t.faces[idx]
	for k := 0; k < 3; k++ {
		e := edge{f.v[k], f.v[(k+1)%3]}
		if t.half[e] == idx {
			delete(t.half, e)
		}
	}
	f.v = [3]int{a, b, c}
	t.half[edge{a, b}] = idx
	t.half[edge{b, c}] = idx
	t.half[edge{c, a}] = idx
}

// third returns the vertex of face idx that is not on directed edge a->b.
func (t *triangulation) third(idx, a, b int) int {
	v := t.faces[idx].v
	for k := 0; k < 3; k++ {
		if v[k] == a && v[(k+1)%3] == b {
			return v[(k+2)%3]
		}
	}
	panic(fmt.Sprintf("face %d does not own edge %d->%d", idx, a, b))
}

func (t *triangulation) insertAll() error {
	for i := 0; i < t.n; i++ {
		if err := t.insert(i); err != nil {
			return err
		}
	}
	return nil
}

// insert adds point i with a Bowyer-Watson cavity grown from the face that
// contains it.
func (t *triangulation) insert(i int) error {
	p := t.pts[i]
	start := t.locate(p)
	if start < 0 {
		return fmt.Errorf("%w: point %d could not be located", ErrInvalidInput, i)
	}
	for _, v := range t.faces[start].v {
		if t.pts[v].Distance(p) <= t.eps {
			t.dup[i] = t.dup[v]
			return nil
		}
	}

	bad := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := t.faces[c].v
		for k := 0; k < 3; k++ {
			nb, ok := t.half[edge{v[(k+1)%3], v[k]}]
			if !ok || bad[nb] {
				continue
			}
			w := t.faces[nb].v
			if pmath.InCircle(t.pts[w[0]], t.pts[w[1]], t.pts[w[2]], p) {
				bad[nb] = true
				stack = append(stack, nb)
			}
		}
	}

	// Rounding can leave the cavity not star-shaped from p. Grow it across
	// any boundary edge that p does not see strictly from the inside.
	var boundary []edge
	for {
		boundary = boundary[:0]
		grown := false
		for c := range bad {
			v := t.faces[c].v
			for k := 0; k < 3; k++ {
				a, b := v[k], v[(k+1)%3]
				nb, ok := t.half[edge{b, a}]
				if ok && bad[nb] {
					continue
				}
				if pmath.Orient(t.pts[a], t.pts[b], p) <= 0 {
					if !ok {
						return fmt.Errorf("%w: point %d lies on the hull", ErrInvalidInput, i)
					}
					bad[nb] = true
					grown = true
					continue
				}
				boundary = append(boundary, edge{a, b})
			}
		}
		if !grown {
			break
		}
	}

	for c := range bad {
		t.killFace(c)
	}
	for _, e := range boundary {
		t.addFace(e.a, e.b, i)
	}
	return nil
}

// locate returns a live face containing p, or -1.
func (t *triangulation) locate(p pmath.Vec2) int {
	f := t.last
	if f < 0 || t.faces[f].dead {
		return t.scan(p)
	}
	for steps := 0; steps < len(t.faces)+8; steps++ {
		v := t.faces[f].v
		moved := false
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			if pmath.Orient(t.pts[a], t.pts[b], p) < 0 {
				nb, ok := t.half[edge{b, a}]
				if !ok {
					return -1
				}
				f = nb
				moved = true
				break
			}
		}
		if !moved {
			return f
		}
	}
	return t.scan(p)
}

func (t *triangulation) scan(p pmath.Vec2) int {
	for idx, f := range t.faces {
		if f.dead {
			continue
		}
		a, b, c := t.pts[f.v[0]], t.pts[f.v[1]], t.pts[f.v[2]]
		if pmath.Orient(a, b, p) >= 0 && pmath.Orient(b, c, p) >= 0 && pmath.Orient(c, a, p) >= 0 {
			return idx
		}
	}
	return -1
}

// triangles returns the surviving faces that use only input points.
func (t *triangulation) triangles() []Triangle {
	var out []Triangle
	for _, f := range t.faces {
		if f.dead || f.outside {
			continue
		}
		if t.isSuper(f.v[0]) || t.isSuper(f.v[1]) || t.isSuper(f.v[2]) {
			continue
		}
		out = append(out, Triangle(f.v))
	}
	return out
}
