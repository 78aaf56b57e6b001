// Package mesh generates and animates the low-poly point mesh: corner and
// side anchors, drifting interior points and orbiting hole polygons,
// re-triangulated on every tick.
//
// An Engine is not safe for concurrent use. The caller serialises
// Initialize, Advance and the setters.
package mesh

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// Engine owns the mesh state.
type Engine struct {
	params Params
	limits Limits

	log     *zap.Logger
	rng     *rand.Rand
	factory pointFactory

	orbits     [][]Orbit
	layout     Layout
	vertices   []pmath.Vec2
	velocities []pmath.Vec2
	triangles  []Triangle
	tick       uint64
	warnings   []error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger warnings and debug output go to.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRand sets the random source used for every generated value.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// New validates p against limits and builds the initial mesh.
func New(p Params, limits Limits, opts ...Option) (*Engine, error) {
	if err := limits.Check(p); err != nil {
		return nil, err
	}

	e := &Engine{
		params: p.clone(),
		limits: limits,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		now := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(now, now>>32))
	}
	e.factory = pointFactory{rng: e.rng, maxAttempts: p.MaxSampleAttempts}
	e.orbits = newOrbits(e.params.Holes, e.params.OrbitRadius, e.params.OrbitSpeed, e.rng)

	e.Initialize()
	return e, nil
}

// Initialize discards the current mesh and generates a new one from the
// current parameters. Hole orbits keep their phase.
func (e *Engine) Initialize() {
	e.warnings = nil
	e.tick = 0

	holes := make([]int, len(e.orbits))
	for h, ring := range e.orbits {
		holes[h] = len(ring)
	}
	e.layout = Layout{Interior: e.params.interiorCount(), Holes: holes}

	var err error
	e.vertices, e.velocities, err = e.factory.build(e.params, e.layout, orbitPolygons(e.orbits))
	if err != nil {
		e.warn(err)
	}

	if e.retriangulate() {
		e.ensureConnected()
	}

	e.log.Debug("mesh initialized",
		zap.Int("width", e.params.Width),
		zap.Int("height", e.params.Height),
		zap.Int("vertices", len(e.vertices)),
		zap.Int("triangles", len(e.triangles)),
	)
}

// Advance runs one animation tick.
func (e *Engine) Advance() {
	e.warnings = nil
	e.tick++

	advanceOrbits(e.orbits, e.vertices, e.layout)
	integrate(e.vertices, e.velocities, e.layout,
		e.params.AnimationSpeed,
		float64(e.params.Width), float64(e.params.Height),
		e.holePolygons(), e.params.AvoidHoles,
	)

	if e.retriangulate() {
		e.ensureConnected()
	}
}

// retriangulate replaces the triangle set. It reports false when the
// triangulation failed and the set is empty.
func (e *Engine) retriangulate() bool {
	tris, err := triangulate(e.vertices, e.layout)
	e.triangles = tris
	if err != nil {
		e.warn(err)
		return false
	}
	return true
}

// holePolygons returns the current hole polygons as views into the vertex
// slice.
func (e *Engine) holePolygons() [][]pmath.Vec2 {
	polys := make([][]pmath.Vec2, len(e.layout.Holes))
	for h := range e.layout.Holes {
		start, end := e.layout.HoleRange(h)
		polys[h] = e.vertices[start:end:end]
	}
	return polys
}

func (e *Engine) warn(err error) {
	e.warnings = append(e.warnings, err)
	e.log.Warn("mesh degraded", zap.Error(err), zap.Uint64("tick", e.tick))
}

// Params returns a copy of the current parameters.
func (e *Engine) Params() Params {
	return e.params.clone()
}

// Limits returns the bounds setters are checked against.
func (e *Engine) Limits() Limits {
	return e.limits
}

// State returns a snapshot of the mesh that shares no memory with the
// engine.
func (e *Engine) State() State {
	s := State{
		Width:      float64(e.params.Width),
		Height:     float64(e.params.Height),
		Tick:       e.tick,
		Layout:     e.layout.Clone(),
		Vertices:   append([]pmath.Vec2(nil), e.vertices...),
		Velocities: append([]pmath.Vec2(nil), e.velocities...),
		Triangles:  append([]Triangle(nil), e.triangles...),
		Orbits:     make([][]Orbit, len(e.orbits)),
		Warnings:   append([]error(nil), e.warnings...),
	}
	for h, ring := range e.orbits {
		s.Orbits[h] = append([]Orbit(nil), ring...)
	}
	return s
}

// rebuild applies change to a copy of the parameters and, if the result is
// within limits, adopts it and regenerates the mesh. A rejected change
// leaves the engine untouched.
func (e *Engine) rebuild(change func(*Params)) error {
	next := e.params.clone()
	change(&next)
	if err := e.limits.Check(next); err != nil {
		return fmt.Errorf("mesh: parameter change rejected: %w", err)
	}
	e.params = next
	e.Initialize()
	return nil
}

// SetWidth changes the canvas width and rebuilds the mesh.
func (e *Engine) SetWidth(width int) error {
	return e.rebuild(func(p *Params) { p.Width = width })
}

// SetHeight changes the canvas height and rebuilds the mesh.
func (e *Engine) SetHeight(height int) error {
	return e.rebuild(func(p *Params) { p.Height = height })
}

// SetSize changes both canvas dimensions with a single rebuild.
func (e *Engine) SetSize(width, height int) error {
	return e.rebuild(func(p *Params) { p.Width, p.Height = width, height })
}

// SetPoints changes the side-plus-interior point count and rebuilds.
func (e *Engine) SetPoints(n int) error {
	return e.rebuild(func(p *Params) { p.Points = n })
}

// SetMinSpeed changes the lower speed bound and rebuilds.
func (e *Engine) SetMinSpeed(v float64) error {
	return e.rebuild(func(p *Params) { p.MinSpeed = v })
}

// SetMaxSpeed changes the upper speed bound and rebuilds.
func (e *Engine) SetMaxSpeed(v float64) error {
	return e.rebuild(func(p *Params) { p.MaxSpeed = v })
}

// SetSpeedRange changes both speed bounds with a single rebuild.
func (e *Engine) SetSpeedRange(lo, hi float64) error {
	return e.rebuild(func(p *Params) { p.MinSpeed, p.MaxSpeed = lo, hi })
}

// SetAvoidHoles toggles hole avoidance and rebuilds.
func (e *Engine) SetAvoidHoles(on bool) {
	e.params.AvoidHoles = on
	e.Initialize()
}

// SetAnimationSpeed changes the velocity multiplier. The mesh is kept.
func (e *Engine) SetAnimationSpeed(v float64) error {
	next := e.params
	next.AnimationSpeed = v
	if err := e.limits.Check(next); err != nil {
		return fmt.Errorf("mesh: parameter change rejected: %w", err)
	}
	e.params.AnimationSpeed = v
	return nil
}
