// Package sketch provides the 2D point/entity container that profiles
// and constraints are defined on. The constraint solver mutates point
// positions in place; everything else reads the sketch.
package sketch

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// PointID indexes a sketch's point array.
type PointID int

// EntityID indexes a sketch's entity array.
type EntityID int

// Point is a 2D sketch point.
type Point struct {
	ID       PointID
	Position v2.Vec
}

// Entity is the interface for sketch entity payloads.
type Entity interface {
	entity() // marker method restricting implementations to this package
}

// LineEntity is a straight segment between two sketch points.
type LineEntity struct {
	ID    EntityID
	Start PointID
	End   PointID
}

func (LineEntity) entity() {}

// CircleEntity is a full circle around a center point.
type CircleEntity struct {
	ID     EntityID
	Center PointID
	Radius float64
}

func (CircleEntity) entity() {}

// ArcEntity is a circular arc around a center point from Start to End,
// counterclockwise.
type ArcEntity struct {
	ID     EntityID
	Center PointID
	Start  PointID
	End    PointID
}

func (ArcEntity) entity() {}

// Sketch owns 2D points and the entities connecting them. Entities keeps
// insertion order; profile extraction depends on it.
type Sketch struct {
	Points   []Point
	Entities []Entity

	// IsSolved is written by the constraint solver: true after a solve
	// converges, false after one that does not.
	IsSolved bool
}

// New returns an empty sketch.
func New() *Sketch {
	return &Sketch{}
}

// AddPoint appends a point and returns its handle.
func (s *Sketch) AddPoint(pos v2.Vec) PointID {
	id := PointID(len(s.Points))
	s.Points = append(s.Points, Point{ID: id, Position: pos})
	return id
}

// AddLine appends a line entity between two points.
func (s *Sketch) AddLine(start, end PointID) EntityID {
	id := EntityID(len(s.Entities))
	s.Entities = append(s.Entities, LineEntity{ID: id, Start: start, End: end})
	return id
}

// AddCircle appends a circle entity.
func (s *Sketch) AddCircle(center PointID, radius float64) EntityID {
	id := EntityID(len(s.Entities))
	s.Entities = append(s.Entities, CircleEntity{ID: id, Center: center, Radius: radius})
	return id
}

// AddArc appends an arc entity.
func (s *Sketch) AddArc(center, start, end PointID) EntityID {
	id := EntityID(len(s.Entities))
	s.Entities = append(s.Entities, ArcEntity{ID: id, Center: center, Start: start, End: end})
	return id
}

// Point returns the point with the given handle, or nil when out of
// range.
func (s *Sketch) Point(id PointID) *Point {
	if id < 0 || int(id) >= len(s.Points) {
		return nil
	}
	return &s.Points[id]
}

// Entity returns the entity with the given handle, or nil when out of
// range.
func (s *Sketch) Entity(id EntityID) Entity {
	if id < 0 || int(id) >= len(s.Entities) {
		return nil
	}
	return s.Entities[id]
}

// Line returns the line entity with the given handle. The second return
// is false when the handle is out of range or not a line.
func (s *Sketch) Line(id EntityID) (LineEntity, bool) {
	e := s.Entity(id)
	if e == nil {
		return LineEntity{}, false
	}
	l, ok := e.(LineEntity)
	return l, ok
}
