package sketch

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestAddAndLookup(t *testing.T) {
	s := New()
	a := s.AddPoint(v2.Vec{X: 1, Y: 2})
	b := s.AddPoint(v2.Vec{X: 3})
	l := s.AddLine(a, b)
	c := s.AddCircle(a, 5)
	arc := s.AddArc(a, b, a)

	if p := s.Point(a); p == nil || p.Position.X != 1 || p.Position.Y != 2 {
		t.Errorf("Point(%d) = %+v", a, s.Point(a))
	}

	line, ok := s.Line(l)
	if !ok || line.Start != a || line.End != b {
		t.Errorf("Line(%d) = %+v, %v", l, line, ok)
	}

	circle, ok := s.Entity(c).(CircleEntity)
	if !ok || circle.Center != a || circle.Radius != 5 {
		t.Errorf("Entity(%d) = %+v", c, s.Entity(c))
	}

	if _, ok := s.Entity(arc).(ArcEntity); !ok {
		t.Errorf("Entity(%d) = %T, want ArcEntity", arc, s.Entity(arc))
	}
}

func TestLookupOutOfRange(t *testing.T) {
	s := New()
	if s.Point(0) != nil {
		t.Error("Point(0) on empty sketch is not nil")
	}
	if s.Point(-1) != nil {
		t.Error("Point(-1) is not nil")
	}
	if s.Entity(5) != nil {
		t.Error("Entity(5) on empty sketch is not nil")
	}
	if _, ok := s.Line(0); ok {
		t.Error("Line(0) on empty sketch reports ok")
	}
}

func TestLineRejectsOtherEntities(t *testing.T) {
	s := New()
	p := s.AddPoint(v2.Vec{})
	c := s.AddCircle(p, 1)
	if _, ok := s.Line(c); ok {
		t.Error("Line accepted a circle entity")
	}
}

func TestHandlesAreSequential(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		if id := s.AddPoint(v2.Vec{}); id != PointID(i) {
			t.Fatalf("point %d got handle %d", i, id)
		}
	}
	a, b := s.Point(0), s.Point(1)
	if id := s.AddLine(a.ID, b.ID); id != 0 {
		t.Errorf("first entity got handle %d", id)
	}
}
