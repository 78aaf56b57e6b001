// Package control drives a mesh engine from user actions and wall time,
// and keeps the draw style the renderer works from. It holds no SDL or GL
// state, so the application shell stays a thin event pump around it.
package control

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/mesh"
	"github.com/Faultbox/lowpoly/internal/render"
)

// Step sizes for the adjust actions.
const (
	pointsStep    = 10
	speedStep     = 0.5
	animationStep = 0.25
	variationStep = 5
	hueStep       = 10
	colorStep     = 5 // saturation and value, percent
	sizeStep      = 1 // point size and line width, pixels
)

// Action is a user command.
type Action int

const (
	ActionNone Action = iota
	ActionMorePoints
	ActionFewerPoints
	ActionFaster
	ActionSlower
	ActionAnimationFaster
	ActionAnimationSlower
	ActionToggleHoles
	ActionRegenerate
	ActionPause
	ActionTogglePoints
	ActionToggleLines
	ActionToggleFill
	ActionMoreVariation
	ActionLessVariation
	ActionHueUp
	ActionHueDown
	ActionSaturationUp
	ActionSaturationDown
	ActionBrightnessUp
	ActionBrightnessDown
	ActionBackgroundLighter
	ActionBackgroundDarker
	ActionLargerPoints
	ActionSmallerPoints
	ActionWiderLines
	ActionThinnerLines
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionMorePoints:      "more-points",
	ActionFewerPoints:     "fewer-points",
	ActionFaster:          "faster",
	ActionSlower:          "slower",
	ActionAnimationFaster: "animation-faster",
	ActionAnimationSlower: "animation-slower",
	ActionToggleHoles:     "toggle-holes",
	ActionRegenerate:      "regenerate",
	ActionPause:           "pause",
	ActionTogglePoints:    "toggle-points",
	ActionToggleLines:     "toggle-lines",
	ActionToggleFill:      "toggle-fill",
	ActionMoreVariation:   "more-variation",
	ActionLessVariation:   "less-variation",
	ActionHueUp:           "hue-up",
	ActionHueDown:         "hue-down",

	ActionSaturationUp:      "saturation-up",
	ActionSaturationDown:    "saturation-down",
	ActionBrightnessUp:      "brightness-up",
	ActionBrightnessDown:    "brightness-down",
	ActionBackgroundLighter: "background-lighter",
	ActionBackgroundDarker:  "background-darker",
	ActionLargerPoints:      "larger-points",
	ActionSmallerPoints:     "smaller-points",
	ActionWiderLines:        "wider-lines",
	ActionThinnerLines:      "thinner-lines",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Controller owns the engine, the draw style and the tick schedule.
type Controller struct {
	log       *zap.Logger
	engine    *mesh.Engine
	scheduler *Scheduler
	shades    *render.ShadeCache
	style     render.Style
	variation config.IntRange
	pointSize config.IntRange
	lineWidth config.IntRange
	paused    bool
}

// New builds the engine from cfg. A zero seed picks one from the clock.
func New(cfg *config.Config, log *zap.Logger) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	engine, err := mesh.New(MeshParams(cfg), MeshLimits(cfg),
		mesh.WithSeed(seed),
		mesh.WithLogger(log.Named("mesh")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mesh engine: %w", err)
	}

	c := &Controller{
		log:       log,
		engine:    engine,
		scheduler: NewScheduler(cfg.Image.FPS.Default),
		shades: render.NewShadeCache(
			float64(cfg.Render.FillVariation.Default),
			rand.New(rand.NewPCG(seed, seed+1)),
		),
		style:     RenderStyle(cfg),
		variation: cfg.Render.FillVariation,
		pointSize: cfg.Render.PointSize,
		lineWidth: cfg.Render.LineWidth,
	}
	log.Info("mesh engine ready",
		zap.Uint64("seed", seed),
		zap.Int("vertices", len(engine.State().Vertices)),
	)
	return c, nil
}

// Engine returns the controlled engine.
func (c *Controller) Engine() *mesh.Engine {
	return c.engine
}

// Style returns the current draw style.
func (c *Controller) Style() render.Style {
	return c.style
}

// Paused reports whether ticks are suspended.
func (c *Controller) Paused() bool {
	return c.paused
}

// Update advances the engine by the ticks due after dt and returns how
// many ran.
func (c *Controller) Update(dt time.Duration) int {
	if c.paused {
		return 0
	}
	n := c.scheduler.Due(dt)
	for range n {
		c.engine.Advance()
	}
	return n
}

// Frame builds the draw buffers for the current mesh.
func (c *Controller) Frame() render.Frame {
	return render.Build(c.engine.State(), c.style, c.shades)
}

// Apply performs a user action. Rejected parameter changes are logged and
// leave the mesh as it was.
func (c *Controller) Apply(a Action) {
	c.log.Debug("action", zap.Stringer("action", a))

	p := c.engine.Params()
	var err error
	switch a {
	case ActionMorePoints:
		err = c.engine.SetPoints(p.Points + pointsStep)
	case ActionFewerPoints:
		err = c.engine.SetPoints(p.Points - pointsStep)
	case ActionFaster:
		err = c.engine.SetMaxSpeed(p.MaxSpeed + speedStep)
	case ActionSlower:
		err = c.engine.SetMaxSpeed(p.MaxSpeed - speedStep)
	case ActionAnimationFaster:
		err = c.engine.SetAnimationSpeed(p.AnimationSpeed + animationStep)
	case ActionAnimationSlower:
		err = c.engine.SetAnimationSpeed(p.AnimationSpeed - animationStep)
	case ActionToggleHoles:
		c.engine.SetAvoidHoles(!p.AvoidHoles)
	case ActionRegenerate:
		c.engine.Initialize()
		c.scheduler.Reset()
	case ActionPause:
		c.paused = !c.paused
		c.scheduler.Reset()
	case ActionTogglePoints:
		c.style.Points = !c.style.Points
	case ActionToggleLines:
		c.style.Lines = !c.style.Lines
	case ActionToggleFill:
		c.style.Fill = !c.style.Fill
	case ActionMoreVariation:
		c.shades.SetSpread(float64(c.variation.Clamp(int(c.shades.Spread()) + variationStep)))
	case ActionLessVariation:
		c.shades.SetSpread(float64(c.variation.Clamp(int(c.shades.Spread()) - variationStep)))
	case ActionHueUp:
		c.style.Color.H = math.Mod(c.style.Color.H+hueStep, 360)
	case ActionHueDown:
		c.style.Color.H = math.Mod(c.style.Color.H+360-hueStep, 360)
	case ActionSaturationUp:
		c.style.Color.S = percent(c.style.Color.S + colorStep)
	case ActionSaturationDown:
		c.style.Color.S = percent(c.style.Color.S - colorStep)
	case ActionBrightnessUp:
		c.style.Color.V = percent(c.style.Color.V + colorStep)
	case ActionBrightnessDown:
		c.style.Color.V = percent(c.style.Color.V - colorStep)
	case ActionBackgroundLighter:
		c.style.Background.V = percent(c.style.Background.V + colorStep)
	case ActionBackgroundDarker:
		c.style.Background.V = percent(c.style.Background.V - colorStep)
	case ActionLargerPoints:
		c.style.PointSize = float32(c.pointSize.Clamp(int(c.style.PointSize) + sizeStep))
	case ActionSmallerPoints:
		c.style.PointSize = float32(c.pointSize.Clamp(int(c.style.PointSize) - sizeStep))
	case ActionWiderLines:
		c.style.LineWidth = float32(c.lineWidth.Clamp(int(c.style.LineWidth) + sizeStep))
	case ActionThinnerLines:
		c.style.LineWidth = float32(c.lineWidth.Clamp(int(c.style.LineWidth) - sizeStep))
	}
	if err != nil {
		c.log.Error("parameter change rejected",
			zap.Stringer("action", a),
			zap.Error(err),
		)
	}
}

// percent clamps a saturation or value to [0, 100].
func percent(v float64) float64 {
	return min(max(v, 0), 100)
}
