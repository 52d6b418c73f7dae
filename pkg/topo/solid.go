package topo

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
)

// Solid owns the four topology arrays. Every other entity is a borrowed
// view into these arrays via its ID. Solids are ordinary values: created
// empty or by a primitive constructor, mutated only through kernel
// operations, and freely cloneable.
type Solid struct {
	Vertices []Vertex
	Edges    []Edge
	Faces    []Face
	Shells   []Shell
}

// NewSolid returns an empty solid.
func NewSolid() *Solid {
	return &Solid{}
}

// AddVertex appends a vertex at p and returns its handle.
func (s *Solid) AddVertex(p v3.Vec) VertexID {
	id := VertexID(len(s.Vertices))
	s.Vertices = append(s.Vertices, Vertex{ID: id, Point: p})
	return id
}

// AddEdge appends a linear edge between two vertices, maintaining the
// vertices' edge back-references.
func (s *Solid) AddEdge(start, end VertexID) EdgeID {
	id := EdgeID(len(s.Edges))
	s.Edges = append(s.Edges, Edge{ID: id, Start: start, End: end, Curve: LinearCurve{}})
	if v := s.Vertex(start); v != nil {
		v.Edges = append(v.Edges, id)
	}
	if v := s.Vertex(end); v != nil {
		v.Edges = append(v.Edges, id)
	}
	return id
}

// AddFace appends a face, maintaining the loop edges' face
// back-references. The face starts unassigned to any shell.
func (s *Solid) AddFace(surface Surface, outer Loop, inner []Loop, orient Orientation) FaceID {
	id := FaceID(len(s.Faces))
	s.Faces = append(s.Faces, Face{
		ID:          id,
		Surface:     surface,
		OuterLoop:   outer,
		InnerLoops:  inner,
		Orientation: orient,
		Shell:       NoShell,
	})
	s.addEdgeBackrefs(id, outer)
	for _, l := range inner {
		s.addEdgeBackrefs(id, l)
	}
	return id
}

func (s *Solid) addEdgeBackrefs(face FaceID, l Loop) {
	for _, eid := range l.Edges {
		if e := s.Edge(eid); e != nil {
			e.Faces = append(e.Faces, face)
		}
	}
}

// AddShell appends a shell over the given faces and records the owning
// shell on each face.
func (s *Solid) AddShell(faces []FaceID, closed bool) ShellID {
	id := ShellID(len(s.Shells))
	s.Shells = append(s.Shells, Shell{ID: id, Faces: faces, IsClosed: closed})
	for _, fid := range faces {
		if f := s.Face(fid); f != nil {
			f.Shell = id
		}
	}
	return id
}

// Vertex returns the vertex with the given handle, or nil when the handle
// is out of range. Lookups never panic on malformed external input.
func (s *Solid) Vertex(id VertexID) *Vertex {
	if id < 0 || int(id) >= len(s.Vertices) {
		return nil
	}
	return &s.Vertices[id]
}

// Edge returns the edge with the given handle, or nil when out of range.
func (s *Solid) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(s.Edges) {
		return nil
	}
	return &s.Edges[id]
}

// Face returns the face with the given handle, or nil when out of range.
func (s *Solid) Face(id FaceID) *Face {
	if id < 0 || int(id) >= len(s.Faces) {
		return nil
	}
	return &s.Faces[id]
}

// Shell returns the shell with the given handle, or nil when out of range.
func (s *Solid) Shell(id ShellID) *Shell {
	if id < 0 || int(id) >= len(s.Shells) {
		return nil
	}
	return &s.Shells[id]
}

// Clone performs a full deep copy of all four arrays, so that two solids
// never alias indices into the same backing storage.
func (s *Solid) Clone() *Solid {
	out := &Solid{
		Vertices: make([]Vertex, len(s.Vertices)),
		Edges:    make([]Edge, len(s.Edges)),
		Faces:    make([]Face, len(s.Faces)),
		Shells:   make([]Shell, len(s.Shells)),
	}
	for i, v := range s.Vertices {
		v.Edges = append([]EdgeID(nil), v.Edges...)
		out.Vertices[i] = v
	}
	for i, e := range s.Edges {
		e.Faces = append([]FaceID(nil), e.Faces...)
		out.Edges[i] = e
	}
	for i, f := range s.Faces {
		f.OuterLoop = cloneLoop(f.OuterLoop)
		if f.InnerLoops != nil {
			inner := make([]Loop, len(f.InnerLoops))
			for j, l := range f.InnerLoops {
				inner[j] = cloneLoop(l)
			}
			f.InnerLoops = inner
		}
		out.Faces[i] = f
	}
	for i, sh := range s.Shells {
		sh.Faces = append([]FaceID(nil), sh.Faces...)
		out.Shells[i] = sh
	}
	return out
}

func cloneLoop(l Loop) Loop {
	return Loop{
		Edges:      append([]EdgeID(nil), l.Edges...),
		Directions: append([]bool(nil), l.Directions...),
	}
}

// BoundingBox returns the axis-aligned bounding box over all vertices.
// The second return is false for a solid with no vertices.
func (s *Solid) BoundingBox() (geom.Box, bool) {
	if len(s.Vertices) == 0 {
		return geom.Box{}, false
	}
	b := geom.Box{Min: s.Vertices[0].Point, Max: s.Vertices[0].Point}
	for _, v := range s.Vertices[1:] {
		b = b.Extend(v.Point)
	}
	return b, true
}

// LoopVertices returns the ordered vertex handles visited by walking the
// loop, one per edge, respecting each edge's direction flag. Edges whose
// handles do not resolve are skipped.
func (s *Solid) LoopVertices(l Loop) []VertexID {
	out := make([]VertexID, 0, len(l.Edges))
	for i, eid := range l.Edges {
		e := s.Edge(eid)
		if e == nil || i >= len(l.Directions) {
			continue
		}
		if l.Directions[i] {
			out = append(out, e.Start)
		} else {
			out = append(out, e.End)
		}
	}
	return out
}

// LoopPoints resolves LoopVertices to positions. Vertices whose handles
// do not resolve are skipped.
func (s *Solid) LoopPoints(l Loop) []v3.Vec {
	ids := s.LoopVertices(l)
	out := make([]v3.Vec, 0, len(ids))
	for _, vid := range ids {
		if v := s.Vertex(vid); v != nil {
			out = append(out, v.Point)
		}
	}
	return out
}
