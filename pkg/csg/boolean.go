// Package csg implements Boolean combination of solids. The disjoint fast
// paths are exact structural operations; the overlapping cases use the
// documented bounding-box approximation rather than true face-splitting
// CSG (see the notes on each operation).
package csg

import (
	"errors"
	"fmt"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/topo"
)

// ErrNoIntersection is returned by Intersection when the inputs do not
// overlap. Callers must treat it as a normal outcome, not a fault.
var ErrNoIntersection = errors.New("solids do not intersect")

// ErrDegenerate is returned when an input solid has no geometry to
// combine.
var ErrDegenerate = errors.New("degenerate input solid")

// TopologyError reports an input solid that fails topology validation.
type TopologyError struct {
	Detail string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error: %s", e.Detail)
}

// Union combines two solids. Inputs are never mutated; the result is a
// freshly allocated solid.
//
// When the bounding boxes are disjoint the result is the exact structural
// merge of the two solids. When they overlap, the current implementation
// falls back to the same structural merge instead of computing
// intersection curves and splitting faces; overlap regions are therefore
// represented twice. This is an intentional approximation.
func Union(a, b *topo.Solid) (*topo.Solid, error) {
	if _, _, err := checkInputs(a, b); err != nil {
		return nil, err
	}
	return mergeSolids(a, b), nil
}

// Difference subtracts b from a. Inputs are never mutated.
//
// When the bounding boxes are disjoint, nothing is removed and the result
// is a copy of a. When they overlap, the current implementation still
// returns a unchanged rather than splitting and discarding the faces of a
// inside b. This is an intentional approximation.
func Difference(a, b *topo.Solid) (*topo.Solid, error) {
	if _, _, err := checkInputs(a, b); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// Intersection returns the region common to both solids. Inputs are never
// mutated. Disjoint inputs yield ErrNoIntersection.
//
// For overlapping inputs the current implementation synthesizes an
// axis-aligned box spanning the overlap of the two bounding boxes rather
// than computing the true intersection volume. This is an intentional
// approximation.
func Intersection(a, b *topo.Solid) (*topo.Solid, error) {
	boxA, boxB, err := checkInputs(a, b)
	if err != nil {
		return nil, err
	}

	overlap, ok := boxA.Overlap(boxB)
	if !ok {
		return nil, ErrNoIntersection
	}

	size := overlap.Size()
	return topo.MakeBoxAt(overlap.Center(), size.X, size.Y, size.Z), nil
}

// checkInputs validates both solids and returns their bounding boxes.
func checkInputs(a, b *topo.Solid) (geom.Box, geom.Box, error) {
	boxA, okA := a.BoundingBox()
	boxB, okB := b.BoundingBox()
	if !okA || !okB {
		return geom.Box{}, geom.Box{}, ErrDegenerate
	}
	inputs := []struct {
		name  string
		solid *topo.Solid
	}{{"first", a}, {"second", b}}
	for _, in := range inputs {
		for _, e := range topo.Validate(in.solid) {
			if e.Severity == topo.SeverityError {
				return geom.Box{}, geom.Box{}, &TopologyError{
					Detail: fmt.Sprintf("%s input: %s", in.name, e.Error()),
				}
			}
		}
	}
	return boxA, boxB, nil
}

// mergeSolids concatenates b's topology onto a copy of a's, offsetting
// every handle stored on b's entities so they point into the merged
// arrays. Shells need no renumbering of their own IDs beyond position:
// they only reference face handles, which are offset.
func mergeSolids(a, b *topo.Solid) *topo.Solid {
	out := a.Clone()

	vertOff := len(out.Vertices)
	edgeOff := len(out.Edges)
	faceOff := len(out.Faces)
	shellOff := len(out.Shells)

	for _, v := range b.Vertices {
		nv := topo.Vertex{
			ID:    topo.VertexID(int(v.ID) + vertOff),
			Point: v.Point,
			Edges: make([]topo.EdgeID, len(v.Edges)),
		}
		for i, eid := range v.Edges {
			nv.Edges[i] = topo.EdgeID(int(eid) + edgeOff)
		}
		out.Vertices = append(out.Vertices, nv)
	}

	for _, e := range b.Edges {
		ne := topo.Edge{
			ID:    topo.EdgeID(int(e.ID) + edgeOff),
			Start: topo.VertexID(int(e.Start) + vertOff),
			End:   topo.VertexID(int(e.End) + vertOff),
			Curve: e.Curve,
			Faces: make([]topo.FaceID, len(e.Faces)),
		}
		for i, fid := range e.Faces {
			ne.Faces[i] = topo.FaceID(int(fid) + faceOff)
		}
		out.Edges = append(out.Edges, ne)
	}

	for _, f := range b.Faces {
		nf := topo.Face{
			ID:          topo.FaceID(int(f.ID) + faceOff),
			Surface:     f.Surface,
			OuterLoop:   offsetLoop(f.OuterLoop, edgeOff),
			Orientation: f.Orientation,
			Shell:       f.Shell,
		}
		if f.Shell != topo.NoShell {
			nf.Shell = topo.ShellID(int(f.Shell) + shellOff)
		}
		for _, l := range f.InnerLoops {
			nf.InnerLoops = append(nf.InnerLoops, offsetLoop(l, edgeOff))
		}
		out.Faces = append(out.Faces, nf)
	}

	for _, sh := range b.Shells {
		ns := topo.Shell{
			ID:       topo.ShellID(int(sh.ID) + shellOff),
			Faces:    make([]topo.FaceID, len(sh.Faces)),
			IsClosed: sh.IsClosed,
		}
		for i, fid := range sh.Faces {
			ns.Faces[i] = topo.FaceID(int(fid) + faceOff)
		}
		out.Shells = append(out.Shells, ns)
	}

	return out
}

func offsetLoop(l topo.Loop, edgeOff int) topo.Loop {
	nl := topo.Loop{
		Edges:      make([]topo.EdgeID, len(l.Edges)),
		Directions: append([]bool(nil), l.Directions...),
	}
	for i, eid := range l.Edges {
		nl.Edges[i] = topo.EdgeID(int(eid) + edgeOff)
	}
	return nl
}
