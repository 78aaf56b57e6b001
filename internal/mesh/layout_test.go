package mesh

import "testing"

func TestLayoutRanges(t *testing.T) {
	l := Layout{Interior: 5, Holes: []int{4, 3}}

	if got := l.Movable(); got != 17 {
		t.Errorf("expected 17 movable, got %d", got)
	}
	if got := l.Len(); got != 24 {
		t.Errorf("expected 24 vertices, got %d", got)
	}
	if s, e := l.InteriorRange(); s != 12 || e != 17 {
		t.Errorf("expected interior [12,17), got [%d,%d)", s, e)
	}
	if s, e := l.HoleRange(1); s != 21 || e != 24 {
		t.Errorf("expected hole 1 at [21,24), got [%d,%d)", s, e)
	}
}

func TestLayoutKind(t *testing.T) {
	l := Layout{Interior: 2, Holes: []int{3}}
	tests := []struct {
		index int
		want  Kind
	}{
		{0, KindCorner},
		{3, KindCorner},
		{4, KindSide},
		{11, KindSide},
		{12, KindInterior},
		{13, KindInterior},
		{14, KindHole},
		{16, KindHole},
	}
	for _, tt := range tests {
		if got := l.Kind(tt.index); got != tt.want {
			t.Errorf("Kind(%d): expected %s, got %s", tt.index, tt.want, got)
		}
	}
}

func TestLayoutSideOf(t *testing.T) {
	l := Layout{}
	want := []Side{SideTop, SideTop, SideBottom, SideBottom, SideLeft, SideLeft, SideRight, SideRight}
	for k, w := range want {
		got, ok := l.SideOf(firstSide + k)
		if !ok || got != w {
			t.Errorf("SideOf(%d): expected %d, got %d (ok=%v)", firstSide+k, w, got, ok)
		}
	}
	if _, ok := l.SideOf(CornerTopRight); ok {
		t.Error("corner should not report a side")
	}
}

func TestLayoutCloneIsIndependent(t *testing.T) {
	l := Layout{Interior: 1, Holes: []int{3}}
	c := l.Clone()
	c.Holes[0] = 9
	if l.Holes[0] != 3 {
		t.Errorf("expected original hole size 3, got %d", l.Holes[0])
	}
}
