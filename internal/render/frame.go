package render

import (
	"github.com/Faultbox/lowpoly/internal/mesh"
)

// Stride is the number of float32 values per buffer vertex: x, y, r, g, b.
const Stride = 5

// Style selects what is drawn and how.
type Style struct {
	Points    bool
	PointSize float32
	Lines     bool
	LineWidth float32
	Fill      bool

	Color      HSV
	Background HSV
}

// Frame holds the interleaved buffers for one snapshot. A disabled layer
// has a nil buffer.
type Frame struct {
	Width, Height float64

	Points []float32 // GL_POINTS
	Lines  []float32 // GL_LINES, two vertices per edge
	Fill   []float32 // GL_TRIANGLES

	PointSize  float32
	LineWidth  float32
	Background RGB
}

// Build converts a mesh snapshot into draw buffers. The shade cache is
// pruned to the snapshot's triangles.
func Build(s mesh.State, style Style, shades *ShadeCache) Frame {
	f := Frame{
		Width:      s.Width,
		Height:     s.Height,
		PointSize:  style.PointSize,
		LineWidth:  style.LineWidth,
		Background: style.Background.RGB(),
	}
	base := style.Color.RGB()

	if style.Fill {
		shades.Retain(s.Triangles)
		f.Fill = make([]float32, 0, len(s.Triangles)*3*Stride)
		for _, tr := range s.Triangles {
			c := style.Color.Brighten(shades.Shade(tr)).RGB()
			for _, v := range tr {
				f.Fill = appendVertex(f.Fill, s.Vertices[v].X, s.Vertices[v].Y, c)
			}
		}
	}

	if style.Lines {
		edges := uniqueEdges(s.Triangles)
		f.Lines = make([]float32, 0, len(edges)*2*Stride)
		for _, e := range edges {
			a, b := s.Vertices[e[0]], s.Vertices[e[1]]
			f.Lines = appendVertex(f.Lines, a.X, a.Y, base)
			f.Lines = appendVertex(f.Lines, b.X, b.Y, base)
		}
	}

	if style.Points {
		f.Points = make([]float32, 0, len(s.Vertices)*Stride)
		for _, v := range s.Vertices {
			f.Points = appendVertex(f.Points, v.X, v.Y, base)
		}
	}
	return f
}

func appendVertex(buf []float32, x, y float64, c RGB) []float32 {
	return append(buf, float32(x), float32(y), c.R, c.G, c.B)
}

// uniqueEdges returns each triangle edge once, lower index first, in first
// seen order.
func uniqueEdges(tris []mesh.Triangle) [][2]int {
	seen := make(map[[2]int]struct{}, len(tris)*2)
	edges := make([][2]int, 0, len(tris)*2)
	for _, tr := range tris {
		for k := range 3 {
			a, b := tr[k], tr[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}
