package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/topo"
)

// rectPad keeps R-tree rectangles from collapsing to zero extent along
// any axis (rtreego rejects non-positive lengths).
const rectPad = 1e-9

// PickIndex accelerates ray picking over a PickableMesh with an R-tree of
// triangle bounding boxes. The index holds a reference to the mesh; it is
// invalidated if the mesh is rebuilt.
type PickIndex struct {
	mesh    *PickableMesh
	tree    *rtreego.Rtree
	bounds  geom.Box
	maxSpan float64
}

// triangleEntry is one triangle's entry in the R-tree.
type triangleEntry struct {
	rect  rtreego.Rect
	index int
}

var _ rtreego.Spatial = (*triangleEntry)(nil)

func (e *triangleEntry) Bounds() rtreego.Rect {
	return e.rect
}

// NewPickIndex builds a pick index over the mesh's triangles.
func NewPickIndex(pm *PickableMesh) *PickIndex {
	ix := &PickIndex{
		mesh: pm,
		tree: rtreego.NewTree(3, 4, 16),
	}

	if bounds, ok := geom.NewBox(pm.Vertices); ok {
		ix.bounds = bounds
		ix.maxSpan = bounds.Size().Length()
	}

	for i := range pm.Triangles {
		a, b, c := ix.trianglePoints(i)
		box, _ := geom.NewBox([]v3.Vec{a, b, c})
		if rect, err := boxToRect(box); err == nil {
			ix.tree.Insert(&triangleEntry{rect: rect, index: i})
		}
	}
	return ix
}

// CandidateTriangles returns the indices of triangles whose bounding
// boxes intersect the query box.
func (ix *PickIndex) CandidateTriangles(box geom.Box) []int {
	rect, err := boxToRect(box)
	if err != nil {
		return nil
	}
	var out []int
	for _, hit := range ix.tree.SearchIntersect(rect) {
		out = append(out, hit.(*triangleEntry).index)
	}
	return out
}

// PickFace casts a ray at the mesh and returns the face that produced the
// nearest hit triangle, with the hit's ray parameter. The third return is
// false when the ray misses every triangle.
func (ix *PickIndex) PickFace(ray geom.Ray) (topo.FaceID, float64, bool) {
	dir, ok := geom.Normalize(ray.Direction)
	if !ok || ix.maxSpan == 0 {
		return 0, 0, false
	}

	// Search region: the ray clipped to a segment long enough to reach
	// the far side of the mesh from wherever the origin is.
	reach := ray.Origin.Sub(ix.bounds.Center()).Length() + ix.maxSpan
	far := ray.Origin.Add(dir.MulScalar(reach))
	searchBox, _ := geom.NewBox([]v3.Vec{ray.Origin, far})

	bestT := math.Inf(1)
	bestFace := topo.FaceID(0)
	found := false
	for _, i := range ix.CandidateTriangles(searchBox) {
		a, b, c := ix.trianglePoints(i)
		t, hit := rayTriangle(ray.Origin, dir, a, b, c)
		if hit && t < bestT {
			bestT = t
			bestFace = ix.mesh.TriangleFaces[i]
			found = true
		}
	}
	if !found {
		return 0, 0, false
	}
	return bestFace, bestT, true
}

// PickEdge returns the edge whose segment passes closest to the ray,
// provided the closest approach is within maxDist. The third return is
// false when no segment qualifies.
func (ix *PickIndex) PickEdge(ray geom.Ray, maxDist float64) (topo.EdgeID, float64, bool) {
	dir, ok := geom.Normalize(ray.Direction)
	if !ok {
		return 0, 0, false
	}

	best := maxDist
	bestEdge := topo.EdgeID(0)
	found := false
	for _, seg := range ix.mesh.EdgeSegments {
		d := segmentRayDistance(seg.Start, seg.End, ray.Origin, dir)
		if d <= best {
			best = d
			bestEdge = seg.Edge
			found = true
		}
	}
	if !found {
		return 0, 0, false
	}
	return bestEdge, best, true
}

func (ix *PickIndex) trianglePoints(i int) (a, b, c v3.Vec) {
	t := ix.mesh.Triangles[i]
	return ix.mesh.Vertices[t[0]], ix.mesh.Vertices[t[1]], ix.mesh.Vertices[t[2]]
}

func boxToRect(b geom.Box) (rtreego.Rect, error) {
	size := b.Size()
	return rtreego.NewRect(
		rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z},
		[]float64{size.X + rectPad, size.Y + rectPad, size.Z + rectPad},
	)
}

// rayTriangle is the Moller-Trumbore ray/triangle test. It returns the
// ray parameter of the hit and whether the (forward) ray hits.
func rayTriangle(origin, dir, a, b, c v3.Vec) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < geom.EpsDegenerate {
		return 0, false
	}

	inv := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// segmentRayDistance returns the minimum distance between a segment and a
// forward ray with unit direction.
func segmentRayDistance(s0, s1, origin, dir v3.Vec) float64 {
	u := s1.Sub(s0)
	w := s0.Sub(origin)

	a := u.Dot(u)
	b := u.Dot(dir)
	d := u.Dot(w)
	e := dir.Dot(w)

	// Closest parameter on the segment, then re-projection onto the ray
	// so each clamp keeps the other parameter optimal.
	var sc float64
	denom := a - b*b // dir is unit length
	switch {
	case a < geom.EpsDegenerate:
		sc = 0 // degenerate segment
	case denom < geom.EpsDegenerate:
		sc = 0 // segment parallel to ray
	default:
		sc = (b*e - d) / denom
	}
	sc = math.Max(0, math.Min(1, sc))

	tc := dir.Dot(s0.Add(u.MulScalar(sc)).Sub(origin))
	if tc < 0 {
		tc = 0
		if a >= geom.EpsDegenerate {
			sc = math.Max(0, math.Min(1, -d/a))
		}
	}

	onSeg := s0.Add(u.MulScalar(sc))
	onRay := origin.Add(dir.MulScalar(tc))
	return onSeg.Sub(onRay).Length()
}
