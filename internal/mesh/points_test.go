package mesh

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

func newTestFactory(seed uint64, attempts int) *pointFactory {
	return &pointFactory{rng: rand.New(rand.NewPCG(seed, seed+1)), maxAttempts: attempts}
}

func TestBuildLayout(t *testing.T) {
	p := testParams()
	p.MinSpeed, p.MaxSpeed = 1, 2
	hole := squareHole()
	layout := Layout{Interior: 30, Holes: []int{len(hole)}}

	vertices, velocities, err := newTestFactory(1, 1000).build(p, layout, [][]pmath.Vec2{hole})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vertices) != layout.Len() {
		t.Fatalf("expected %d vertices, got %d", layout.Len(), len(vertices))
	}
	if len(velocities) != layout.Movable() {
		t.Fatalf("expected %d velocities, got %d", layout.Movable(), len(velocities))
	}

	want := []pmath.Vec2{{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 0, Y: 600}, {X: 800, Y: 600}}
	for i, c := range want {
		if vertices[i] != c {
			t.Errorf("corner %d: expected %v, got %v", i, c, vertices[i])
		}
		if velocities[i] != (pmath.Vec2{}) {
			t.Errorf("corner %d: expected zero velocity, got %v", i, velocities[i])
		}
	}

	for i := firstSide; i < firstInterior; i++ {
		side, _ := layout.SideOf(i)
		v, vel := vertices[i], velocities[i]
		pinned, free, pinnedVel, freeVel := v.X, v.Y, vel.X, vel.Y
		if side.Horizontal() {
			pinned, free, pinnedVel, freeVel = v.Y, v.X, vel.Y, vel.X
		}
		if pinned != side.Pinned(800, 600) {
			t.Errorf("side anchor %d at %v is off its edge", i, v)
		}
		if free < 0 || free > 800 {
			t.Errorf("side anchor %d at %v outside the canvas", i, v)
		}
		if pinnedVel != 0 {
			t.Errorf("side anchor %d has velocity %v on its pinned axis", i, vel)
		}
		if s := math.Abs(freeVel); s < 1 || s > 2 {
			t.Errorf("side anchor %d speed %v not in [1,2]", i, s)
		}
	}

	start, end := layout.InteriorRange()
	for i := start; i < end; i++ {
		if pmath.PointInPolygon(vertices[i], hole) {
			t.Errorf("interior point %d at %v inside the hole", i, vertices[i])
		}
		if s := velocities[i].Length(); s < 1-1e-9 || s > 2+1e-9 {
			t.Errorf("interior point %d speed %v not in [1,2]", i, s)
		}
	}

	hs, _ := layout.HoleRange(0)
	for k, v := range hole {
		if vertices[hs+k] != v {
			t.Errorf("hole vertex %d: expected %v, got %v", k, v, vertices[hs+k])
		}
	}
}

func TestBuildWithoutAvoidanceIgnoresHoles(t *testing.T) {
	p := testParams()
	p.AvoidHoles = false
	cover := [][]pmath.Vec2{{{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 600}, {X: 0, Y: 600}}}
	layout := Layout{Interior: 10, Holes: []int{4}}

	_, _, err := newTestFactory(2, 1).build(p, layout, cover)
	if err != nil {
		t.Errorf("expected no sampling warning, got %v", err)
	}
}

func TestBuildReportsExhaustion(t *testing.T) {
	p := testParams()
	cover := [][]pmath.Vec2{{{X: -1, Y: -1}, {X: 801, Y: -1}, {X: 801, Y: 601}, {X: -1, Y: 601}}}
	layout := Layout{Interior: 3, Holes: []int{4}}

	vertices, _, err := newTestFactory(3, 10).build(p, layout, cover)
	if !errors.Is(err, ErrSamplingExhausted) {
		t.Fatalf("expected ErrSamplingExhausted, got %v", err)
	}
	if len(vertices) != layout.Len() {
		t.Errorf("expected a complete vertex set of %d, got %d", layout.Len(), len(vertices))
	}
}

func TestSamplePointPicksShallowestCandidate(t *testing.T) {
	cover := [][]pmath.Vec2{{{X: -1, Y: -1}, {X: 101, Y: -1}, {X: 101, Y: 101}, {X: -1, Y: 101}}}
	f := newTestFactory(4, 50)

	// replay the same draws to find the expected winner
	replay := newTestFactory(4, 50)
	best := math.Inf(1)
	for range 50 {
		c := pmath.Vec2{X: replay.rng.Float64() * 100, Y: replay.rng.Float64() * 100}
		best = min(best, penetration(c, cover))
	}

	p, ok := f.samplePoint(100, 100, cover)
	if ok {
		t.Fatal("expected sampling to fail")
	}
	if got := penetration(p, cover); got != best {
		t.Errorf("expected depth %v, got %v", best, got)
	}
}

func TestSamplePointWithoutHoles(t *testing.T) {
	f := newTestFactory(5, 0)
	for range 100 {
		p, ok := f.samplePoint(100, 50, nil)
		if !ok {
			t.Fatal("expected success without holes")
		}
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 50 {
			t.Fatalf("point %v outside [0,100]x[0,50]", p)
		}
	}
}

func TestPenetration(t *testing.T) {
	square := [][]pmath.Vec2{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	if d := penetration(pmath.Vec2{X: 20, Y: 5}, square); d != 0 {
		t.Errorf("expected 0 outside, got %v", d)
	}
	if d := penetration(pmath.Vec2{X: 3, Y: 5}, square); d != 3 {
		t.Errorf("expected 3, got %v", d)
	}
}
