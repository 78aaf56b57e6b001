package mesh

import (
	"fmt"

	"github.com/Faultbox/lowpoly/internal/cdt"
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// Triangle is three vertex indices in counter-clockwise order.
type Triangle = cdt.Triangle

// canvasSegments are the fixed boundary edges: the four corner-to-corner
// edges followed by one edge per side-anchor pair.
var canvasSegments = []cdt.Segment{
	{A: CornerBottomLeft, B: CornerBottomRight},
	{A: CornerBottomRight, B: CornerTopRight},
	{A: CornerTopRight, B: CornerTopLeft},
	{A: CornerTopLeft, B: CornerBottomLeft},
	{A: 4, B: 5},
	{A: 6, B: 7},
	{A: 8, B: 9},
	{A: 10, B: 11},
}

// triangulate builds the constrained triangulation of vertices. Hole
// interiors are left empty. On failure no triangles are returned and the
// error wraps ErrTooFewVertices or ErrTriangulation.
func triangulate(vertices []pmath.Vec2, layout Layout) ([]Triangle, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: have %d", ErrTooFewVertices, len(vertices))
	}

	in := cdt.Input{Points: vertices}
	if len(vertices) >= firstInterior {
		in.Segments = append(in.Segments, canvasSegments...)
	}
	for h := range layout.Holes {
		start, end := layout.HoleRange(h)
		for k := start; k < end; k++ {
			next := k + 1
			if next == end {
				next = start
			}
			in.Segments = append(in.Segments, cdt.Segment{A: k, B: next})
		}
		in.Holes = append(in.Holes, holeMarker(vertices[start:end]))
	}

	tris, err := cdt.Triangulate(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTriangulation, err)
	}
	return tris, nil
}

// holeMarker returns a point strictly inside poly: its centroid when that
// works, otherwise a point found near one of its corners.
func holeMarker(poly []pmath.Vec2) pmath.Vec2 {
	if p, ok := pmath.InteriorPoint(poly); ok {
		return p
	}
	return pmath.Centroid(poly)
}

// unreferenced lists the vertex indices in [0, n) that no triangle uses.
func unreferenced(tris []Triangle, n int) []int {
	seen := make([]bool, n)
	for _, tr := range tris {
		for _, v := range tr {
			if v >= 0 && v < n {
				seen[v] = true
			}
		}
	}
	var missing []int
	for i, ok := range seen {
		if !ok {
			missing = append(missing, i)
		}
	}
	return missing
}
