// Package mesh converts solids into render- and pick-ready triangle
// buffers. Meshes are derived, disposable views: rebuilt on demand and
// never mutated incrementally.
package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/topo"
)

// TriangleMesh is a flat triangle soup. Vertices are duplicated per
// triangle (not deduplicated or indexed); Normals holds one entry per
// vertex, all three sharing the owning face's flat normal.
type TriangleMesh struct {
	Vertices  []v3.Vec
	Triangles [][3]int
	Normals   []v3.Vec
}

// TriangleCount returns the number of triangles.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of (duplicated) vertices.
func (m *TriangleMesh) VertexCount() int {
	return len(m.Vertices)
}

// IsEmpty reports whether the mesh has no geometry.
func (m *TriangleMesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Buffers returns the mesh in the flat array form consumed by GPU
// uploads: 3 float32s per vertex position and normal, 3 uint32s per
// triangle.
func (m *TriangleMesh) Buffers() (vertices, normals []float32, indices []uint32) {
	vertices = make([]float32, 0, len(m.Vertices)*3)
	normals = make([]float32, 0, len(m.Normals)*3)
	indices = make([]uint32, 0, len(m.Triangles)*3)

	for _, v := range m.Vertices {
		vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, n := range m.Normals {
		normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, t := range m.Triangles {
		indices = append(indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return vertices, normals, indices
}

// EdgeSegment is a line segment with the handle of the edge it came from,
// enabling edge-level picking independent of the triangulated surface.
type EdgeSegment struct {
	Start v3.Vec
	End   v3.Vec
	Edge  topo.EdgeID
}

// PickableMesh is a TriangleMesh with provenance: which face produced
// each triangle, and one segment per edge of the solid.
type PickableMesh struct {
	TriangleMesh
	TriangleFaces []topo.FaceID
	EdgeSegments  []EdgeSegment
}

// FromSolid triangulates every face of the solid. Faces whose outer loop
// resolves to fewer than 3 vertices are skipped.
func FromSolid(s *topo.Solid) *TriangleMesh {
	m := &TriangleMesh{}
	for _, f := range s.Faces {
		triangulateFace(m, s, f)
	}
	return m
}

// PickableFromSolid triangulates the solid and records per-triangle face
// provenance plus a segment for every edge.
func PickableFromSolid(s *topo.Solid) *PickableMesh {
	pm := &PickableMesh{}
	for _, f := range s.Faces {
		before := len(pm.Triangles)
		triangulateFace(&pm.TriangleMesh, s, f)
		for i := before; i < len(pm.Triangles); i++ {
			pm.TriangleFaces = append(pm.TriangleFaces, f.ID)
		}
	}

	for _, e := range s.Edges {
		start := s.Vertex(e.Start)
		end := s.Vertex(e.End)
		if start == nil || end == nil {
			continue
		}
		pm.EdgeSegments = append(pm.EdgeSegments, EdgeSegment{
			Start: start.Point,
			End:   end.Point,
			Edge:  e.ID,
		})
	}
	return pm
}

// triangulateFace fan-triangulates a face's outer loop from vertex 0,
// appending duplicated vertices and the face's flat normal.
//
// Fan triangulation is only valid for convex, planar, non-self-
// intersecting polygons; concave faces produce wrong (but non-crashing)
// triangles.
func triangulateFace(m *TriangleMesh, s *topo.Solid, f topo.Face) {
	points := s.LoopPoints(f.OuterLoop)
	if len(points) < 3 {
		return
	}

	normal := faceNormal(points)

	for i := 1; i < len(points)-1; i++ {
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, points[0], points[i], points[i+1])
		m.Normals = append(m.Normals, normal, normal, normal)
		m.Triangles = append(m.Triangles, [3]int{base, base + 1, base + 2})
	}
}

// faceNormal computes one flat normal from the first three points,
// defaulting to +Z when the cross product is degenerate (near-collinear
// points).
func faceNormal(points []v3.Vec) v3.Vec {
	cross := points[1].Sub(points[0]).Cross(points[2].Sub(points[0]))
	if cross.Length() < geom.EpsDegenerate {
		return v3.Vec{Z: 1}
	}
	n, ok := geom.Normalize(cross)
	if !ok {
		return v3.Vec{Z: 1}
	}
	return n
}
