package control

import (
	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/mesh"
	"github.com/Faultbox/lowpoly/internal/render"
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// MeshParams builds the engine parameters from the configured defaults.
func MeshParams(cfg *config.Config) mesh.Params {
	g := cfg.Generation
	holes := make([][]pmath.Vec2, len(g.Holes))
	for i, poly := range g.Holes {
		holes[i] = make([]pmath.Vec2, len(poly))
		for k, v := range poly {
			holes[i][k] = pmath.Vec2{X: v[0], Y: v[1]}
		}
	}
	return mesh.Params{
		Width:             cfg.Image.Width.Default,
		Height:            cfg.Image.Height.Default,
		Points:            g.Points.Default,
		AnimationSpeed:    cfg.Animation.Speed.Default,
		MinSpeed:          g.MinSpeed.Default,
		MaxSpeed:          g.MaxSpeed.Default,
		AvoidHoles:        g.AvoidHoles,
		Holes:             holes,
		OrbitRadius:       mesh.Span{Min: g.OrbitRadius.Min, Max: g.OrbitRadius.Max},
		OrbitSpeed:        mesh.Span{Min: g.OrbitSpeed.Min, Max: g.OrbitSpeed.Max},
		MaxSampleAttempts: g.MaxSampleAttempts,
	}
}

// MeshLimits builds the setter bounds from the configured ranges.
func MeshLimits(cfg *config.Config) mesh.Limits {
	return mesh.Limits{
		Width:          intRange(cfg.Image.Width),
		Height:         intRange(cfg.Image.Height),
		Points:         intRange(cfg.Generation.Points),
		AnimationSpeed: floatRange(cfg.Animation.Speed),
		MinSpeed:       floatRange(cfg.Generation.MinSpeed),
		MaxSpeed:       floatRange(cfg.Generation.MaxSpeed),
	}
}

func intRange(r config.IntRange) mesh.Range[int] {
	return mesh.Range[int]{Min: r.Min, Max: r.Max}
}

func floatRange(r config.FloatRange) mesh.Range[float64] {
	return mesh.Range[float64]{Min: r.Min, Max: r.Max}
}

// RenderStyle builds the initial draw style.
func RenderStyle(cfg *config.Config) render.Style {
	r := cfg.Render
	return render.Style{
		Points:     r.Points,
		PointSize:  float32(r.PointSize.Default),
		Lines:      r.Lines,
		LineWidth:  float32(r.LineWidth.Default),
		Fill:       r.Fill,
		Color:      render.HSV{H: r.Color.H, S: r.Color.S, V: r.Color.V},
		Background: render.HSV{H: r.Background.H, S: r.Background.S, V: r.Background.V},
	}
}
