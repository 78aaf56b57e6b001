// Package render turns mesh snapshots into vertex buffers for the GL
// renderer: per-vertex colours, unique edges and shaded triangle fills.
package render

import "math"

// HSV is a colour with hue in degrees and saturation and value in percent.
type HSV struct {
	H, S, V float64
}

// RGB is a colour with components in [0, 1].
type RGB struct {
	R, G, B float32
}

// RGB converts the colour. Hue wraps; saturation and value are clamped to
// [0, 100].
func (c HSV) RGB() RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp(c.S, 0, 100) / 100
	v := clamp(c.V, 0, 100) / 100

	chroma := v * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - chroma

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = chroma, x, 0
	case h < 120:
		r, g, b = x, chroma, 0
	case h < 180:
		r, g, b = 0, chroma, x
	case h < 240:
		r, g, b = 0, x, chroma
	case h < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return RGB{R: float32(r + m), G: float32(g + m), B: float32(b + m)}
}

// Brighten shifts the value by delta percent, clamped to [0, 100].
func (c HSV) Brighten(delta float64) HSV {
	c.V = clamp(c.V+delta, 0, 100)
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
