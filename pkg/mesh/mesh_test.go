package mesh

import (
	"math"
	"reflect"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/topo"
)

func TestFromSolidBox(t *testing.T) {
	box := topo.MakeBox(2, 2, 2)
	m := FromSolid(box)

	// 6 quad faces, 2 triangles each.
	if m.TriangleCount() != 12 {
		t.Errorf("got %d triangles, want 12", m.TriangleCount())
	}
	if m.VertexCount() != 36 {
		t.Errorf("got %d vertices, want 36", m.VertexCount())
	}
	if len(m.Normals) != m.VertexCount() {
		t.Errorf("got %d normals for %d vertices", len(m.Normals), m.VertexCount())
	}

	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= m.VertexCount() {
				t.Fatalf("triangle %d index %d out of range [0,%d)", i, idx, m.VertexCount())
			}
		}
	}

	for i, n := range m.Normals {
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Fatalf("normal %d has length %g, want 1", i, n.Length())
		}
	}

	// All vertices lie on the box surface.
	for i, v := range m.Vertices {
		if math.Abs(v.X) > 1+1e-9 || math.Abs(v.Y) > 1+1e-9 || math.Abs(v.Z) > 1+1e-9 {
			t.Fatalf("vertex %d at %v outside the box", i, v)
		}
	}
}

func TestFromSolidDeterministic(t *testing.T) {
	box := topo.MakeBox(3, 1, 2)
	m1 := FromSolid(box)
	m2 := FromSolid(box)

	if !reflect.DeepEqual(m1, m2) {
		t.Error("meshing the same solid twice produced different meshes")
	}
}

func TestFromSolidEmpty(t *testing.T) {
	m := FromSolid(topo.NewSolid())
	if !m.IsEmpty() {
		t.Errorf("got %d vertices from an empty solid", m.VertexCount())
	}
	if m.TriangleCount() != 0 {
		t.Errorf("got %d triangles from an empty solid", m.TriangleCount())
	}
}

func TestFromSolidSkipsShortLoops(t *testing.T) {
	s := topo.NewSolid()
	v0 := s.AddVertex(v3.Vec{})
	v1 := s.AddVertex(v3.Vec{X: 1})
	e := s.AddEdge(v0, v1)
	s.AddFace(topo.PlanarSurface{Normal: v3.Vec{Z: 1}}, topo.Loop{
		Edges:      []topo.EdgeID{e},
		Directions: []bool{true},
	}, nil, topo.Outward)

	m := FromSolid(s)
	if !m.IsEmpty() {
		t.Errorf("got %d triangles from a two-vertex loop, want none", m.TriangleCount())
	}
}

func TestBuffers(t *testing.T) {
	m := FromSolid(topo.MakeBox(1, 1, 1))
	verts, norms, indices := m.Buffers()

	if len(verts) != m.VertexCount()*3 {
		t.Errorf("got %d vertex floats, want %d", len(verts), m.VertexCount()*3)
	}
	if len(norms) != len(m.Normals)*3 {
		t.Errorf("got %d normal floats, want %d", len(norms), len(m.Normals)*3)
	}
	if len(indices) != m.TriangleCount()*3 {
		t.Errorf("got %d indices, want %d", len(indices), m.TriangleCount()*3)
	}

	if verts[0] != float32(m.Vertices[0].X) {
		t.Errorf("verts[0] = %g, want %g", verts[0], m.Vertices[0].X)
	}
	if indices[0] != uint32(m.Triangles[0][0]) {
		t.Errorf("indices[0] = %d, want %d", indices[0], m.Triangles[0][0])
	}
}

func TestFaceNormalDegenerate(t *testing.T) {
	collinear := []v3.Vec{{}, {X: 1}, {X: 2}}
	if n := faceNormal(collinear); n != (v3.Vec{Z: 1}) {
		t.Errorf("got %v for collinear points, want +Z", n)
	}
}

func TestPickableFromSolid(t *testing.T) {
	box := topo.MakeBox(2, 2, 2)
	pm := PickableFromSolid(box)

	if len(pm.TriangleFaces) != pm.TriangleCount() {
		t.Fatalf("got %d face tags for %d triangles", len(pm.TriangleFaces), pm.TriangleCount())
	}
	if len(pm.EdgeSegments) != len(box.Edges) {
		t.Errorf("got %d edge segments, want %d", len(pm.EdgeSegments), len(box.Edges))
	}

	// Each face contributes a contiguous pair of triangles.
	counts := map[topo.FaceID]int{}
	for _, fid := range pm.TriangleFaces {
		counts[fid]++
	}
	if len(counts) != 6 {
		t.Errorf("triangles tagged with %d distinct faces, want 6", len(counts))
	}
	for fid, n := range counts {
		if n != 2 {
			t.Errorf("face %d tagged on %d triangles, want 2", fid, n)
		}
	}

	for i, seg := range pm.EdgeSegments {
		if seg.Edge != topo.EdgeID(i) {
			t.Errorf("segment %d tagged with edge %d", i, seg.Edge)
		}
		if seg.Start.Equals(seg.End, 1e-9) {
			t.Errorf("segment %d is degenerate", i)
		}
	}
}
