// Package revolve builds solids of revolution by sweeping a 2D sketch
// profile around an axis.
package revolve

import (
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/sketch"
	"github.com/chazu/burl/pkg/topo"
)

// ErrNoProfile is returned when the sketch contains no line entities to
// sweep.
var ErrNoProfile = errors.New("sketch has no profile to revolve")

// ErrInvalidParams is returned for rejected revolve parameters.
var ErrInvalidParams = errors.New("invalid revolve parameters")

// minAngleDegrees rejects effectively-zero sweeps.
const minAngleDegrees = 1e-6

// fullAngleWindow is how close (in degrees) to a full turn an angle must
// be to get seam-welded closed topology instead of end caps.
const fullAngleWindow = 1e-3

// Axis selects the sketch axis to revolve around.
type Axis int

const (
	AxisY Axis = iota
	AxisX
)

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "y"
	case AxisX:
		return "x"
	default:
		return "unknown"
	}
}

// Params configures a revolve.
type Params struct {
	AngleDegrees float64
	Axis         Axis
	Segments     int
}

// Sweep revolves the sketch's profile polyline around the chosen axis and
// returns a new solid: one ring of vertices per angular step, quad side
// faces between adjacent rings, and (for partial sweeps with a polygonal
// profile) fan-capped end faces. Side quads do not share edges between
// neighbors; each quad gets four fresh edges.
func Sweep(sk *sketch.Sketch, params Params) (*topo.Solid, error) {
	if params.Segments < 3 {
		return nil, fmt.Errorf("%w: segments %d, need at least 3", ErrInvalidParams, params.Segments)
	}
	if math.Abs(params.AngleDegrees) < minAngleDegrees {
		return nil, fmt.Errorf("%w: angle %g too small", ErrInvalidParams, params.AngleDegrees)
	}

	profile := extractProfile(sk)
	if len(profile) == 0 {
		return nil, ErrNoProfile
	}

	full := math.Abs(math.Abs(params.AngleDegrees)-360) < fullAngleWindow
	angle := params.AngleDegrees * math.Pi / 180

	// A full revolve wraps its last ring back to ring 0 (no duplicated
	// seam vertices); a partial one keeps segments+1 distinct rings.
	rings := params.Segments
	if !full {
		rings = params.Segments + 1
	}

	s := topo.NewSolid()

	verts := make([][]topo.VertexID, rings)
	for step := 0; step < rings; step++ {
		theta := float64(step) / float64(params.Segments) * angle
		verts[step] = make([]topo.VertexID, len(profile))
		for i, p := range profile {
			verts[step][i] = s.AddVertex(rotatePoint(p, theta, params.Axis))
		}
	}

	var faces []topo.FaceID

	quadRows := params.Segments
	if !full {
		quadRows = rings - 1
	}
	for step := 0; step < quadRows; step++ {
		next := (step + 1) % rings
		for i := 0; i+1 < len(profile); i++ {
			faces = append(faces, addQuad(s,
				verts[step][i], verts[next][i],
				verts[next][i+1], verts[step][i+1],
			))
		}
	}

	// Partial sweeps get both ends capped, provided the profile forms a
	// polygon. A 2-point profile has no cap area.
	if !full && len(profile) >= 3 {
		faces = append(faces, addCap(s, verts[0], false))
		faces = append(faces, addCap(s, verts[rings-1], true))
	}

	s.AddShell(faces, full)
	return s, nil
}

// extractProfile collects the profile polyline: every line entity's start
// point in insertion order, then the last line's end point.
func extractProfile(sk *sketch.Sketch) []v2.Vec {
	var profile []v2.Vec
	var last *sketch.Point

	for _, e := range sk.Entities {
		line, ok := e.(sketch.LineEntity)
		if !ok {
			continue
		}
		start := sk.Point(line.Start)
		end := sk.Point(line.End)
		if start == nil || end == nil {
			continue
		}
		profile = append(profile, start.Position)
		last = end
	}
	if last != nil {
		profile = append(profile, last.Position)
	}
	return profile
}

// rotatePoint places a 2D profile point at angle theta around the axis.
func rotatePoint(p v2.Vec, theta float64, axis Axis) v3.Vec {
	cos, sin := math.Cos(theta), math.Sin(theta)
	switch axis {
	case AxisX:
		return v3.Vec{X: p.X, Y: p.Y * cos, Z: p.Y * sin}
	default:
		return v3.Vec{X: p.X * cos, Y: p.Y, Z: p.X * sin}
	}
}

// addQuad builds one side face a -> b -> c -> d with four fresh edges.
func addQuad(s *topo.Solid, a, b, c, d topo.VertexID) topo.FaceID {
	loop := topo.Loop{
		Edges: []topo.EdgeID{
			s.AddEdge(a, b),
			s.AddEdge(b, c),
			s.AddEdge(c, d),
			s.AddEdge(d, a),
		},
		Directions: []bool{true, true, true, true},
	}
	normal := loopNormal(s, []topo.VertexID{a, b, c})
	return s.AddFace(topo.PlanarSurface{Normal: normal}, loop, nil, topo.Outward)
}

// addCap builds a polygonal end cap over one ring of vertices. The ring
// is reversed for the far end so both caps wind outward.
func addCap(s *topo.Solid, ring []topo.VertexID, reverse bool) topo.FaceID {
	ids := ring
	if reverse {
		ids = make([]topo.VertexID, len(ring))
		for i, v := range ring {
			ids[len(ring)-1-i] = v
		}
	}

	loop := topo.Loop{}
	for i := range ids {
		next := (i + 1) % len(ids)
		loop.Edges = append(loop.Edges, s.AddEdge(ids[i], ids[next]))
		loop.Directions = append(loop.Directions, true)
	}

	normal := loopNormal(s, ids[:3])
	return s.AddFace(topo.PlanarSurface{Normal: normal}, loop, nil, topo.Outward)
}

// loopNormal computes a flat normal from three vertices, defaulting to +Z
// for degenerate triangles.
func loopNormal(s *topo.Solid, ids []topo.VertexID) v3.Vec {
	p0 := s.Vertex(ids[0]).Point
	p1 := s.Vertex(ids[1]).Point
	p2 := s.Vertex(ids[2]).Point
	n, ok := geom.Normalize(p1.Sub(p0).Cross(p2.Sub(p0)))
	if !ok {
		return v3.Vec{Z: 1}
	}
	return n
}
