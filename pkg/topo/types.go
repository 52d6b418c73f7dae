// Package topo defines the boundary-representation topology owned by the
// kernel: vertices, edges, loops, faces, and shells, all held in arrays on
// a Solid and referenced by integer handles. Handles are only meaningful
// relative to the Solid that issued them; there are no cross-solid
// references.
package topo

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// VertexID indexes a Solid's vertex array.
type VertexID int

// EdgeID indexes a Solid's edge array.
type EdgeID int

// FaceID indexes a Solid's face array.
type FaceID int

// ShellID indexes a Solid's shell array.
type ShellID int

// NoShell marks a face that has not been assigned to a shell.
const NoShell ShellID = -1

// Curve is the interface for edge geometry payloads.
type Curve interface {
	curve() // marker method restricting implementations to this package
}

// LinearCurve is a straight edge between its two vertices. It is the only
// curve kind the kernel currently produces.
type LinearCurve struct{}

func (LinearCurve) curve() {}

// Surface is the interface for face geometry payloads.
type Surface interface {
	surface() // marker method restricting implementations to this package
}

// PlanarSurface is a flat face with the given unit normal.
type PlanarSurface struct {
	Normal v3.Vec
}

func (PlanarSurface) surface() {}

// Orientation records which side of a face's surface points out of the
// owning solid.
type Orientation int

const (
	Outward Orientation = iota
	Inward
)

func (o Orientation) String() string {
	switch o {
	case Outward:
		return "outward"
	case Inward:
		return "inward"
	default:
		return "unknown"
	}
}

// Vertex is a point in the solid. Edges lists the edges touching this
// vertex; it is maintained for traversal, not ownership.
type Vertex struct {
	ID    VertexID
	Point v3.Vec
	Edges []EdgeID
}

// Edge connects two vertices. Storage is directionless; a loop expresses
// direction per-use via its Directions flags. Faces lists the faces whose
// loops reference this edge.
type Edge struct {
	ID    EdgeID
	Start VertexID
	End   VertexID
	Curve Curve
	Faces []FaceID
}

// Loop is an ordered closed walk of directed edges. Directions[i] is true
// when edge i is traversed start-to-end, false when reversed. The walk
// must close: the end vertex of edge i (respecting its flag) equals the
// start vertex of edge i+1, cyclically.
type Loop struct {
	Edges      []EdgeID
	Directions []bool
}

// Face is a bounded region of a surface. It has exactly one outer loop
// and zero or more inner loops (holes).
type Face struct {
	ID          FaceID
	Surface     Surface
	OuterLoop   Loop
	InnerLoops  []Loop
	Orientation Orientation
	Shell       ShellID
}

// Shell is an unordered set of faces. IsClosed is set by the operation
// that built the shell when its faces form a watertight boundary; it is
// not re-verified automatically.
type Shell struct {
	ID       ShellID
	Faces    []FaceID
	IsClosed bool
}
