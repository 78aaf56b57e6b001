package mesh

import "fmt"

// Fixed vertex slots. The four corners come first, followed by two side
// anchors per canvas edge in the order top, bottom, left, right.
const (
	CornerBottomLeft = iota
	CornerBottomRight
	CornerTopLeft
	CornerTopRight

	CornerCount = 4
	SideCount   = 8

	firstSide     = CornerCount
	firstInterior = CornerCount + SideCount
)

// Kind tags the role of a vertex slot.
type Kind uint8

const (
	KindCorner Kind = iota
	KindSide
	KindInterior
	KindHole
)

func (k Kind) String() string {
	switch k {
	case KindCorner:
		return "corner"
	case KindSide:
		return "side"
	case KindInterior:
		return "interior"
	case KindHole:
		return "hole"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Side names the canvas edge a side anchor is pinned to.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// Horizontal reports whether anchors on this edge slide along X.
func (s Side) Horizontal() bool {
	return s == SideTop || s == SideBottom
}

// Pinned returns the fixed coordinate of the edge: Y for top and bottom,
// X for left and right.
func (s Side) Pinned(width, height float64) float64 {
	switch s {
	case SideTop:
		return height
	case SideRight:
		return width
	default:
		return 0
	}
}

// Layout records how the vertex sequence is partitioned. Indices are
// derived from the counts, so growing the interior range shifts the hole
// tail without any caller tracking offsets.
type Layout struct {
	Interior int   // free interior points
	Holes    []int // vertex count of each hole polygon, in order
}

// Movable returns the number of vertices that carry a velocity entry:
// corners, side anchors and interior points.
func (l Layout) Movable() int {
	return firstInterior + l.Interior
}

// Len returns the total vertex count.
func (l Layout) Len() int {
	n := l.Movable()
	for _, h := range l.Holes {
		n += h
	}
	return n
}

// InteriorRange returns the half-open index range of interior points.
func (l Layout) InteriorRange() (start, end int) {
	return firstInterior, l.Movable()
}

// HoleRange returns the half-open index range of hole h's vertices.
func (l Layout) HoleRange(h int) (start, end int) {
	start = l.Movable()
	for i := 0; i < h; i++ {
		start += l.Holes[i]
	}
	return start, start + l.Holes[h]
}

// Kind returns the role of vertex i.
func (l Layout) Kind(i int) Kind {
	switch {
	case i < firstSide:
		return KindCorner
	case i < firstInterior:
		return KindSide
	case i < l.Movable():
		return KindInterior
	default:
		return KindHole
	}
}

// SideOf returns the edge a side anchor is pinned to. ok is false for any
// other kind of vertex.
func (l Layout) SideOf(i int) (s Side, ok bool) {
	if l.Kind(i) != KindSide {
		return 0, false
	}
	return Side((i - firstSide) / 2), true
}

// Clone returns a copy that shares no memory with l.
func (l Layout) Clone() Layout {
	holes := make([]int, len(l.Holes))
	copy(holes, l.Holes)
	return Layout{Interior: l.Interior, Holes: holes}
}
