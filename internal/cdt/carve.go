package cdt

import (
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// carve drops the faces that touch the super triangle, then every region
// reachable from a hole marker without crossing a constrained edge.
func (t *triangulation) carve(holes []pmath.Vec2) {
	for idx := range t.faces {
		f := &t.faces[idx]
		if f.dead {
			continue
		}
		if t.isSuper(f.v[0]) || t.isSuper(f.v[1]) || t.isSuper(f.v[2]) {
			f.outside = true
		}
	}

	for _, h := range holes {
		start := t.locate(h)
		if start < 0 || t.faces[start].outside {
			continue
		}
		t.flood(start)
	}
}

func (t *triangulation) flood(start int) {
	t.faces[start].outside = true
	stack := []int{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v := t.faces[c].v
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			if t.fixed[edge{a, b}.undirected()] {
				continue
			}
			nb, ok := t.half[edge{b, a}]
			if !ok || t.faces[nb].outside {
				continue
			}
			t.faces[nb].outside = true
			stack = append(stack, nb)
		}
	}
}
