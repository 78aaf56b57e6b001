package mesh

import (
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// State is a read-only snapshot of the mesh after Initialize or Advance.
type State struct {
	Width, Height float64
	Tick          uint64

	Layout     Layout
	Vertices   []pmath.Vec2
	Velocities []pmath.Vec2 // parallel to Vertices over Layout.Movable()
	Triangles  []Triangle
	Orbits     [][]Orbit // one ring per hole, parallel to its vertex range

	// Warnings lists the degradations raised by the operation that
	// produced this snapshot.
	Warnings []error
}

// Unreferenced returns the vertex indices no triangle uses.
func (s State) Unreferenced() []int {
	return unreferenced(s.Triangles, len(s.Vertices))
}

// Connected reports whether every vertex is part of a triangle.
func (s State) Connected() bool {
	return len(s.Triangles) > 0 && len(s.Unreferenced()) == 0
}
