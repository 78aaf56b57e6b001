package render

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/lowpoly/internal/mesh"
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   HSV
		want RGB
	}{
		{"red", HSV{0, 100, 100}, RGB{1, 0, 0}},
		{"green", HSV{120, 100, 100}, RGB{0, 1, 0}},
		{"blue", HSV{240, 100, 100}, RGB{0, 0, 1}},
		{"white", HSV{0, 0, 100}, RGB{1, 1, 1}},
		{"black", HSV{200, 50, 0}, RGB{0, 0, 0}},
		{"hue wraps", HSV{480, 100, 100}, RGB{0, 1, 0}},
		{"negative hue", HSV{-120, 100, 100}, RGB{0, 0, 1}},
		{"half value yellow", HSV{60, 100, 50}, RGB{0.5, 0.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.RGB()
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestBrightenClamps(t *testing.T) {
	c := HSV{H: 10, S: 20, V: 90}
	if got := c.Brighten(30).V; got != 100 {
		t.Errorf("expected 100, got %v", got)
	}
	if got := c.Brighten(-120).V; got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestShadeCacheIsStable(t *testing.T) {
	c := NewShadeCache(20, rand.New(rand.NewPCG(1, 2)))

	a := c.Shade(mesh.Triangle{3, 1, 2})
	b := c.Shade(mesh.Triangle{2, 3, 1})
	if a != b {
		t.Errorf("expected the same shade for the same vertex set, got %v and %v", a, b)
	}
	if a < -20 || a > 20 {
		t.Errorf("shade %v outside [-20,20]", a)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cached shade, got %d", c.Len())
	}
}

func TestShadeCacheRetain(t *testing.T) {
	c := NewShadeCache(10, rand.New(rand.NewPCG(3, 4)))
	keep := mesh.Triangle{0, 1, 2}
	c.Shade(keep)
	c.Shade(mesh.Triangle{1, 2, 3})

	c.Retain([]mesh.Triangle{{2, 0, 1}})
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached shade, got %d", c.Len())
	}

	c.SetSpread(50)
	if c.Len() != 0 {
		t.Errorf("expected cache cleared after spread change, got %d", c.Len())
	}
	if c.Spread() != 50 {
		t.Errorf("expected spread 50, got %v", c.Spread())
	}
}

func squareState() mesh.State {
	return mesh.State{
		Width:  10,
		Height: 10,
		Vertices: []pmath.Vec2{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10},
		},
		Triangles: []mesh.Triangle{{0, 1, 3}, {0, 3, 2}},
	}
}

func TestBuildLayers(t *testing.T) {
	shades := NewShadeCache(0, rand.New(rand.NewPCG(5, 6)))
	style := Style{
		Points: true, PointSize: 3,
		Lines: true, LineWidth: 1,
		Fill:       true,
		Color:      HSV{0, 100, 100},
		Background: HSV{0, 0, 0},
	}

	f := Build(squareState(), style, shades)

	if got := len(f.Points) / Stride; got != 4 {
		t.Errorf("expected 4 points, got %d", got)
	}
	// 4 outer edges plus the shared diagonal
	if got := len(f.Lines) / (2 * Stride); got != 5 {
		t.Errorf("expected 5 edges, got %d", got)
	}
	if got := len(f.Fill) / (3 * Stride); got != 2 {
		t.Errorf("expected 2 filled triangles, got %d", got)
	}
	if f.Fill[2] != 1 || f.Fill[3] != 0 || f.Fill[4] != 0 {
		t.Errorf("expected unshaded red fill, got %v", f.Fill[2:5])
	}
	if f.Background != (RGB{}) {
		t.Errorf("expected black background, got %+v", f.Background)
	}
	if shades.Len() != 2 {
		t.Errorf("expected 2 cached shades, got %d", shades.Len())
	}
}

func TestBuildDisabledLayers(t *testing.T) {
	shades := NewShadeCache(10, rand.New(rand.NewPCG(7, 8)))
	f := Build(squareState(), Style{Lines: true}, shades)
	if f.Points != nil || f.Fill != nil {
		t.Error("expected disabled layers to be nil")
	}
	if shades.Len() != 0 {
		t.Error("fill disabled should not touch the shade cache")
	}
}

func TestUniqueEdges(t *testing.T) {
	edges := uniqueEdges([]mesh.Triangle{{0, 1, 2}, {2, 1, 3}})
	if len(edges) != 5 {
		t.Fatalf("expected 5 edges, got %d: %v", len(edges), edges)
	}
	for _, e := range edges {
		if e[0] >= e[1] {
			t.Errorf("edge %v not ordered", e)
		}
	}
}

func TestProjectionLetterbox(t *testing.T) {
	// 800x600 canvas in a wider 1000x600 viewport leaves 100px bars left and right
	m := Projection(800, 600, 1000, 600)
	tests := []struct {
		x, y         float32
		wantX, wantY float32
	}{
		{0, 0, -0.8, -1},
		{800, 600, 0.8, 1},
		{400, 300, 0, 0},
	}
	for _, tt := range tests {
		x, y := m.TransformPoint2(tt.x, tt.y)
		if !near(x, tt.wantX) || !near(y, tt.wantY) {
			t.Errorf("(%v, %v): expected (%v, %v), got (%v, %v)", tt.x, tt.y, tt.wantX, tt.wantY, x, y)
		}
	}
}

func TestProjectionDegenerate(t *testing.T) {
	if m := Projection(0, 600, 1000, 600); m != pmath.Identity() {
		t.Errorf("expected identity, got %v", m)
	}
}
