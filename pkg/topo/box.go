package topo

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// MakeBox builds an axis-aligned box solid centered at the origin with the
// given width (X), height (Y), and depth (Z): 8 vertices, 12 edges, 6
// planar faces with outward normals, and one closed shell.
func MakeBox(w, h, d float64) *Solid {
	return MakeBoxAt(v3.Vec{}, w, h, d)
}

// MakeBoxAt builds an axis-aligned box solid centered at the given point.
func MakeBoxAt(center v3.Vec, w, h, d float64) *Solid {
	s := NewSolid()

	hx, hy, hz := w/2, h/2, d/2
	corners := []v3.Vec{
		{X: -hx, Y: -hy, Z: -hz}, // 0
		{X: hx, Y: -hy, Z: -hz},  // 1
		{X: hx, Y: hy, Z: -hz},   // 2
		{X: -hx, Y: hy, Z: -hz},  // 3
		{X: -hx, Y: -hy, Z: hz},  // 4
		{X: hx, Y: -hy, Z: hz},   // 5
		{X: hx, Y: hy, Z: hz},    // 6
		{X: -hx, Y: hy, Z: hz},   // 7
	}
	v := make([]VertexID, len(corners))
	for i, c := range corners {
		v[i] = s.AddVertex(center.Add(c))
	}

	// Bottom ring (z-), top ring (z+), then verticals.
	pairs := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	e := make([]EdgeID, len(pairs))
	for i, p := range pairs {
		e[i] = s.AddEdge(v[p[0]], v[p[1]])
	}

	type faceSpec struct {
		normal v3.Vec
		edges  []EdgeID
		dirs   []bool
	}
	specs := []faceSpec{
		// z- : 0 -> 3 -> 2 -> 1
		{v3.Vec{Z: -1}, []EdgeID{e[3], e[2], e[1], e[0]}, []bool{false, false, false, false}},
		// z+ : 4 -> 5 -> 6 -> 7
		{v3.Vec{Z: 1}, []EdgeID{e[4], e[5], e[6], e[7]}, []bool{true, true, true, true}},
		// y- : 0 -> 1 -> 5 -> 4
		{v3.Vec{Y: -1}, []EdgeID{e[0], e[9], e[4], e[8]}, []bool{true, true, false, false}},
		// y+ : 3 -> 7 -> 6 -> 2
		{v3.Vec{Y: 1}, []EdgeID{e[11], e[6], e[10], e[2]}, []bool{true, false, false, true}},
		// x- : 0 -> 4 -> 7 -> 3
		{v3.Vec{X: -1}, []EdgeID{e[8], e[7], e[11], e[3]}, []bool{true, false, false, true}},
		// x+ : 1 -> 2 -> 6 -> 5
		{v3.Vec{X: 1}, []EdgeID{e[1], e[10], e[5], e[9]}, []bool{true, true, false, false}},
	}

	faces := make([]FaceID, 0, len(specs))
	for _, fs := range specs {
		loop := Loop{Edges: fs.edges, Directions: fs.dirs}
		faces = append(faces, s.AddFace(PlanarSurface{Normal: fs.normal}, loop, nil, Outward))
	}

	s.AddShell(faces, true)
	return s
}
