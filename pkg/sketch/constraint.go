package sketch

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burl/pkg/geom"
)

// ConstraintKind separates geometric constraints (shape relations) from
// dimensional ones (explicit measurements).
type ConstraintKind int

const (
	Geometric ConstraintKind = iota
	Dimensional
)

// PointGradient is one constraint's partial derivative with respect to
// one sketch point's position.
type PointGradient struct {
	Point PointID
	Grad  v2.Vec
}

// Constraint is a scalar residual over a sketch together with its
// gradient. Evaluate returns a non-negative residual (zero means
// satisfied); Gradient returns the descent direction the solver subtracts
// from each involved point.
type Constraint interface {
	Kind() ConstraintKind
	Evaluate(s *Sketch) float64
	Gradient(s *Sketch) []PointGradient
}

// Compile-time interface checks.
var (
	_ Constraint = Horizontal{}
	_ Constraint = Vertical{}
	_ Constraint = Coincident{}
	_ Constraint = Parallel{}
	_ Constraint = Perpendicular{}
	_ Constraint = Fixed{}
	_ Constraint = Distance{}
	_ Constraint = Length{}
)

// Horizontal constrains a line's endpoints to equal Y.
type Horizontal struct {
	Line EntityID
}

func (Horizontal) Kind() ConstraintKind { return Geometric }

func (c Horizontal) Evaluate(s *Sketch) float64 {
	start, end, ok := lineEndpoints(s, c.Line)
	if !ok {
		return 0
	}
	return math.Abs(start.Position.Y - end.Position.Y)
}

func (c Horizontal) Gradient(s *Sketch) []PointGradient {
	start, end, ok := lineEndpoints(s, c.Line)
	if !ok {
		return nil
	}
	d := start.Position.Y - end.Position.Y
	return []PointGradient{
		{Point: start.ID, Grad: v2.Vec{Y: d}},
		{Point: end.ID, Grad: v2.Vec{Y: -d}},
	}
}

// Vertical constrains a line's endpoints to equal X.
type Vertical struct {
	Line EntityID
}

func (Vertical) Kind() ConstraintKind { return Geometric }

func (c Vertical) Evaluate(s *Sketch) float64 {
	start, end, ok := lineEndpoints(s, c.Line)
	if !ok {
		return 0
	}
	return math.Abs(start.Position.X - end.Position.X)
}

func (c Vertical) Gradient(s *Sketch) []PointGradient {
	start, end, ok := lineEndpoints(s, c.Line)
	if !ok {
		return nil
	}
	d := start.Position.X - end.Position.X
	return []PointGradient{
		{Point: start.ID, Grad: v2.Vec{X: d}},
		{Point: end.ID, Grad: v2.Vec{X: -d}},
	}
}

// Coincident pulls two points onto each other.
type Coincident struct {
	A PointID
	B PointID
}

func (Coincident) Kind() ConstraintKind { return Geometric }

func (c Coincident) Evaluate(s *Sketch) float64 {
	a, b := s.Point(c.A), s.Point(c.B)
	if a == nil || b == nil {
		return 0
	}
	return a.Position.Sub(b.Position).Length()
}

func (c Coincident) Gradient(s *Sketch) []PointGradient {
	a, b := s.Point(c.A), s.Point(c.B)
	if a == nil || b == nil {
		return nil
	}
	d := a.Position.Sub(b.Position)
	return []PointGradient{
		{Point: a.ID, Grad: d},
		{Point: b.ID, Grad: d.Neg()},
	}
}

// Parallel constrains two lines' directions to be parallel.
type Parallel struct {
	A EntityID
	B EntityID
}

func (Parallel) Kind() ConstraintKind { return Geometric }

func (c Parallel) Evaluate(s *Sketch) float64 {
	d1, d2, ok := lineDirections(s, c.A, c.B)
	if !ok {
		return 0
	}
	return math.Abs(d1.Cross(d2))
}

func (c Parallel) Gradient(s *Sketch) []PointGradient {
	a1, a2, ok1 := lineEndpoints(s, c.A)
	b1, b2, ok2 := lineEndpoints(s, c.B)
	if !ok1 || !ok2 {
		return nil
	}
	d1 := a2.Position.Sub(a1.Position)
	d2 := b2.Position.Sub(b1.Position)
	e := d1.Cross(d2) // d1.X*d2.Y - d1.Y*d2.X

	// Partials of the cross product with respect to each endpoint,
	// scaled by the signed residual.
	return []PointGradient{
		{Point: a1.ID, Grad: v2.Vec{X: -d2.Y, Y: d2.X}.MulScalar(e)},
		{Point: a2.ID, Grad: v2.Vec{X: d2.Y, Y: -d2.X}.MulScalar(e)},
		{Point: b1.ID, Grad: v2.Vec{X: d1.Y, Y: -d1.X}.MulScalar(e)},
		{Point: b2.ID, Grad: v2.Vec{X: -d1.Y, Y: d1.X}.MulScalar(e)},
	}
}

// Perpendicular constrains two lines' directions to be perpendicular.
type Perpendicular struct {
	A EntityID
	B EntityID
}

func (Perpendicular) Kind() ConstraintKind { return Geometric }

func (c Perpendicular) Evaluate(s *Sketch) float64 {
	d1, d2, ok := lineDirections(s, c.A, c.B)
	if !ok {
		return 0
	}
	return math.Abs(d1.Dot(d2))
}

func (c Perpendicular) Gradient(s *Sketch) []PointGradient {
	a1, a2, ok1 := lineEndpoints(s, c.A)
	b1, b2, ok2 := lineEndpoints(s, c.B)
	if !ok1 || !ok2 {
		return nil
	}
	d1 := a2.Position.Sub(a1.Position)
	d2 := b2.Position.Sub(b1.Position)
	e := d1.Dot(d2)

	return []PointGradient{
		{Point: a1.ID, Grad: d2.Neg().MulScalar(e)},
		{Point: a2.ID, Grad: d2.MulScalar(e)},
		{Point: b1.ID, Grad: d1.Neg().MulScalar(e)},
		{Point: b2.ID, Grad: d1.MulScalar(e)},
	}
}

// Fixed anchors a point at a target position.
type Fixed struct {
	Point  PointID
	Target v2.Vec
}

func (Fixed) Kind() ConstraintKind { return Geometric }

func (c Fixed) Evaluate(s *Sketch) float64 {
	p := s.Point(c.Point)
	if p == nil {
		return 0
	}
	return p.Position.Sub(c.Target).Length()
}

func (c Fixed) Gradient(s *Sketch) []PointGradient {
	p := s.Point(c.Point)
	if p == nil {
		return nil
	}
	return []PointGradient{
		{Point: p.ID, Grad: p.Position.Sub(c.Target)},
	}
}

// Distance constrains the separation of two points to Value.
type Distance struct {
	A     PointID
	B     PointID
	Value float64
}

func (Distance) Kind() ConstraintKind { return Dimensional }

func (c Distance) Evaluate(s *Sketch) float64 {
	a, b := s.Point(c.A), s.Point(c.B)
	if a == nil || b == nil {
		return 0
	}
	return math.Abs(a.Position.Sub(b.Position).Length() - c.Value)
}

func (c Distance) Gradient(s *Sketch) []PointGradient {
	a, b := s.Point(c.A), s.Point(c.B)
	if a == nil || b == nil {
		return nil
	}
	diff := a.Position.Sub(b.Position)
	dist := diff.Length()
	if dist < geom.EpsDegenerate {
		// Coincident points give no usable direction to move along.
		return nil
	}
	signed := dist - c.Value
	unit := diff.DivScalar(dist)
	return []PointGradient{
		{Point: a.ID, Grad: unit.MulScalar(signed)},
		{Point: b.ID, Grad: unit.MulScalar(-signed)},
	}
}

// Length constrains a line entity's length to Value.
type Length struct {
	Line  EntityID
	Value float64
}

func (Length) Kind() ConstraintKind { return Dimensional }

func (c Length) Evaluate(s *Sketch) float64 {
	start, end, ok := lineEndpoints(s, c.Line)
	if !ok {
		return 0
	}
	return Distance{A: start.ID, B: end.ID, Value: c.Value}.Evaluate(s)
}

func (c Length) Gradient(s *Sketch) []PointGradient {
	start, end, ok := lineEndpoints(s, c.Line)
	if !ok {
		return nil
	}
	return Distance{A: start.ID, B: end.ID, Value: c.Value}.Gradient(s)
}

func lineEndpoints(s *Sketch, id EntityID) (*Point, *Point, bool) {
	line, ok := s.Line(id)
	if !ok {
		return nil, nil, false
	}
	start := s.Point(line.Start)
	end := s.Point(line.End)
	if start == nil || end == nil {
		return nil, nil, false
	}
	return start, end, true
}

func lineDirections(s *Sketch, a, b EntityID) (v2.Vec, v2.Vec, bool) {
	a1, a2, ok1 := lineEndpoints(s, a)
	b1, b2, ok2 := lineEndpoints(s, b)
	if !ok1 || !ok2 {
		return v2.Vec{}, v2.Vec{}, false
	}
	return a2.Position.Sub(a1.Position), b2.Position.Sub(b1.Position), true
}
