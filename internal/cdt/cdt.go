// Package cdt builds constrained Delaunay triangulations of planar
// straight-line graphs: a point set, a list of segments that must appear as
// triangle edges, and hole markers whose enclosing region is left empty.
//
// The convex hull of the points bounds the output. Segments are split at any
// input point lying on them, so collinear boundary chains may be given as
// overlapping segments. Duplicate points are kept in the index space but are
// never referenced by a triangle.
package cdt

import (
	"errors"
	"fmt"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

var (
	// ErrInvalidInput reports too few points, non-finite coordinates or
	// out-of-range segment indices.
	ErrInvalidInput = errors.New("cdt: invalid input")

	// ErrSegmentConflict reports two segments that cross each other.
	ErrSegmentConflict = errors.New("cdt: intersecting segments")

	// ErrNoConvergence reports a segment that could not be recovered by
	// edge flips within the iteration budget.
	ErrNoConvergence = errors.New("cdt: segment recovery did not converge")

	// ErrDegenerate reports input that yields no triangle at all, such as a
	// collinear point set.
	ErrDegenerate = errors.New("cdt: degenerate input")

	// ErrInternal wraps a recovered panic.
	ErrInternal = errors.New("cdt: internal error")
)

// Segment is a required edge between two point indices.
type Segment struct {
	A, B int
}

// Triangle holds three point indices in counter-clockwise order.
type Triangle [3]int

// Input describes a planar straight-line graph.
type Input struct {
	Points   []pmath.Vec2
	Segments []Segment
	Holes    []pmath.Vec2 // one point inside each region to leave empty
}

// Triangulate returns the constrained Delaunay triangulation of in.
// Triangle indices always refer to in.Points.
func Triangulate(in Input) (result []Triangle, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := validate(in); err != nil {
		return nil, err
	}

	t := newTriangulation(in.Points)
	if err := t.insertAll(); err != nil {
		return nil, err
	}
	if err := t.constrain(in.Segments); err != nil {
		return nil, err
	}
	t.legalize()
	t.carve(in.Holes)

	result = t.triangles()
	if len(result) == 0 {
		return nil, ErrDegenerate
	}
	return result, nil
}

func validate(in Input) error {
	if len(in.Points) < 3 {
		return fmt.Errorf("%w: need at least 3 points, got %d", ErrInvalidInput, len(in.Points))
	}
	for i, p := range in.Points {
		if !p.IsFinite() {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidInput, i)
		}
	}
	for i, s := range in.Segments {
		if s.A < 0 || s.A >= len(in.Points) || s.B < 0 || s.B >= len(in.Points) {
			return fmt.Errorf("%w: segment %d (%d-%d) out of range", ErrInvalidInput, i, s.A, s.B)
		}
	}
	for i, h := range in.Holes {
		if !h.IsFinite() {
			return fmt.Errorf("%w: hole marker %d is not finite", ErrInvalidInput, i)
		}
	}
	return nil
}
