package math

import "math"

// Orient returns twice the signed area of triangle abc.
// Positive when a, b, c turn counter-clockwise.
func Orient(a, b, c Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// InCircle reports whether d lies strictly inside the circumcircle of the
// counter-clockwise triangle abc. For a collinear abc the test degrades to a
// half-plane test, which keeps incremental insertion consistent.
func InCircle(a, b, c, d Vec2) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	det := adx*(bdy*cd-bd*cdy) -
		ady*(bdx*cd-bd*cdx) +
		ad*(bdx*cdy-bdy*cdx)
	return det > 0
}

// PointInPolygon tests p against a closed polygon using ray casting.
// Points exactly on an edge may land on either side.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

// ClosestPointOnPolygon returns the point on the polygon boundary nearest to p
// together with its distance.
func ClosestPointOnPolygon(p Vec2, poly []Vec2) (Vec2, float64) {
	best := Vec2{}
	bestDist := math.Inf(1)
	n := len(poly)
	for i := 0; i < n; i++ {
		c := ClosestPointOnSegment(p, poly[i], poly[(i+1)%n])
		if d := p.Distance(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// Centroid returns the average of the polygon's vertices.
func Centroid(poly []Vec2) Vec2 {
	if len(poly) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, v := range poly {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(poly)))
}

// InteriorPoint returns a point strictly inside the polygon. The centroid is
// used when it qualifies; otherwise a point between a corner and the centroid
// of its corner triangle, taken from the first corner where that lands
// inside. ok is false for degenerate polygons.
func InteriorPoint(poly []Vec2) (p Vec2, ok bool) {
	if len(poly) < 3 {
		return Vec2{}, false
	}
	if c := Centroid(poly); PointInPolygon(c, poly) {
		return c, true
	}
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b, c := poly[(i+n-1)%n], poly[i], poly[(i+1)%n]
		if Orient(a, b, c) == 0 {
			continue
		}
		m := Vec2{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
		m = b.Add(m.Sub(b).Scale(0.5))
		if PointInPolygon(m, poly) {
			return m, true
		}
	}
	return Vec2{}, false
}

// Bounds returns the axis-aligned bounding box of the points.
func Bounds(pts []Vec2) (lo, hi Vec2) {
	if len(pts) == 0 {
		return Vec2{}, Vec2{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
