package render

import (
	"math/rand/v2"
	"slices"

	"github.com/Faultbox/lowpoly/internal/mesh"
)

// ShadeCache remembers a brightness offset per triangle so a face keeps its
// shade while it survives from tick to tick. Keys are the sorted vertex
// triple, so the winding the triangulator emits does not matter.
type ShadeCache struct {
	rng    *rand.Rand
	spread float64
	shades map[[3]int]float64
}

// NewShadeCache returns a cache whose offsets lie in [-spread, spread]
// percent of value.
func NewShadeCache(spread float64, rng *rand.Rand) *ShadeCache {
	return &ShadeCache{rng: rng, spread: spread, shades: make(map[[3]int]float64)}
}

func shadeKey(tr mesh.Triangle) [3]int {
	k := [3]int(tr)
	slices.Sort(k[:])
	return k
}

// Spread returns the current offset range.
func (c *ShadeCache) Spread() float64 {
	return c.spread
}

// SetSpread changes the offset range and forgets every cached shade.
func (c *ShadeCache) SetSpread(spread float64) {
	if spread == c.spread {
		return
	}
	c.spread = spread
	clear(c.shades)
}

// Shade returns the offset for tr, drawing a new one the first time tr is
// seen.
func (c *ShadeCache) Shade(tr mesh.Triangle) float64 {
	k := shadeKey(tr)
	if s, ok := c.shades[k]; ok {
		return s
	}
	s := (c.rng.Float64()*2 - 1) * c.spread
	c.shades[k] = s
	return s
}

// Retain drops every cached shade whose triangle is not in tris.
func (c *ShadeCache) Retain(tris []mesh.Triangle) {
	live := make(map[[3]int]struct{}, len(tris))
	for _, tr := range tris {
		live[shadeKey(tr)] = struct{}{}
	}
	for k := range c.shades {
		if _, ok := live[k]; !ok {
			delete(c.shades, k)
		}
	}
}

// Len returns the number of cached shades.
func (c *ShadeCache) Len() int {
	return len(c.shades)
}
