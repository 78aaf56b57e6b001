package render

import (
	pmath "github.com/Faultbox/lowpoly/pkg/math"
)

// Projection maps canvas coordinates into a viewport of vw x vh pixels.
// The canvas keeps its aspect ratio and is centred, leaving bars of
// background on the longer axis. A degenerate canvas or viewport yields
// the identity.
func Projection(cw, ch float64, vw, vh int) pmath.Mat4 {
	if cw <= 0 || ch <= 0 || vw <= 0 || vh <= 0 {
		return pmath.Identity()
	}
	w, h := float32(vw), float32(vh)
	s := min(w/float32(cw), h/float32(ch))
	dx := (w - float32(cw)*s) / 2
	dy := (h - float32(ch)*s) / 2

	proj := pmath.Ortho(0, w, 0, h, -1, 1)
	return proj.Mul(pmath.Translate(dx, dy, 0)).Mul(pmath.Scale(s, s, 1))
}
