package mesh

import (
	"errors"
	"fmt"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// Range is an inclusive bound for a parameter.
type Range[T int | float64] struct {
	Min, Max T
}

// Contains reports whether v lies within the range.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

// Span is an interval random values are drawn from.
type Span struct {
	Min, Max float64
}

func (s Span) sample(f func() float64) float64 {
	return s.Min + f()*(s.Max-s.Min)
}

// Params are the generation and animation settings of an engine.
type Params struct {
	Width, Height int

	// Points counts side anchors plus interior points. Corners are always
	// added on top, so Points = 20 yields 24 vertices.
	Points int

	AnimationSpeed     float64 // velocity multiplier per tick
	MinSpeed, MaxSpeed float64 // point speed bounds

	AvoidHoles bool
	Holes      [][]pmath.Vec2 // rest polygons, at least 3 vertices each

	OrbitRadius Span // hole vertex orbit radius
	OrbitSpeed  Span // hole vertex angular speed, radians per tick

	// MaxSampleAttempts bounds rejection sampling of a single interior
	// point. Zero means one attempt.
	MaxSampleAttempts int
}

// interiorCount returns the number of free interior points to generate.
func (p Params) interiorCount() int {
	return max(0, p.Points-SideCount)
}

func (p Params) clone() Params {
	c := p
	c.Holes = make([][]pmath.Vec2, len(p.Holes))
	for i, h := range p.Holes {
		c.Holes[i] = append([]pmath.Vec2(nil), h...)
	}
	return c
}

// Limits bound the parameters a caller may set.
type Limits struct {
	Width          Range[int]
	Height         Range[int]
	Points         Range[int]
	AnimationSpeed Range[float64]
	MinSpeed       Range[float64]
	MaxSpeed       Range[float64]
}

// Check validates p against the limits and returns every problem found.
func (l Limits) Check(p Params) error {
	var errs []error
	checkInt := func(name string, v int, r Range[int]) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, name, v, r.Min, r.Max))
		}
	}
	checkFloat := func(name string, v float64, r Range[float64]) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%w: %s %g not in [%g, %g]", ErrOutOfRange, name, v, r.Min, r.Max))
		}
	}

	checkInt("width", p.Width, l.Width)
	checkInt("height", p.Height, l.Height)
	checkInt("points", p.Points, l.Points)
	checkFloat("animation speed", p.AnimationSpeed, l.AnimationSpeed)
	checkFloat("min speed", p.MinSpeed, l.MinSpeed)
	checkFloat("max speed", p.MaxSpeed, l.MaxSpeed)
	if p.MinSpeed > p.MaxSpeed {
		errs = append(errs, fmt.Errorf("%w: %g > %g", ErrSpeedOrder, p.MinSpeed, p.MaxSpeed))
	}
	if p.OrbitRadius.Min < 0 || p.OrbitRadius.Min > p.OrbitRadius.Max {
		errs = append(errs, fmt.Errorf("%w: orbit radius [%g, %g]", ErrOutOfRange, p.OrbitRadius.Min, p.OrbitRadius.Max))
	}
	if p.OrbitSpeed.Min > p.OrbitSpeed.Max {
		errs = append(errs, fmt.Errorf("%w: orbit speed [%g, %g]", ErrOutOfRange, p.OrbitSpeed.Min, p.OrbitSpeed.Max))
	}

	w, h, r := float64(p.Width), float64(p.Height), p.OrbitRadius.Max
	for i, poly := range p.Holes {
		if len(poly) < 3 {
			errs = append(errs, fmt.Errorf("%w: hole %d has %d vertices", ErrInvalidHole, i, len(poly)))
			continue
		}
		for _, v := range poly {
			if !v.IsFinite() {
				errs = append(errs, fmt.Errorf("%w: hole %d has a non-finite vertex", ErrInvalidHole, i))
				break
			}
			if v.X-r < 0 || v.X+r > w || v.Y-r < 0 || v.Y+r > h {
				errs = append(errs, fmt.Errorf("%w: hole %d vertex (%g, %g) with radius %g on a %dx%d canvas",
					ErrHoleOutside, i, v.X, v.Y, r, p.Width, p.Height))
				break
			}
		}
	}
	return errors.Join(errs...)
}
