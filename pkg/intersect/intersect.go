// Package intersect provides the stateless geometric queries used by the
// Boolean operations: plane-plane and ray-quadric intersection, and
// point-in-solid classification. Every query returns a definite result or
// "no intersection"; none of them panic on degenerate input.
package intersect

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/topo"
)

// PlanePlane returns the line of intersection of two planes. The second
// return is false when the planes are parallel or coincident (the cross
// product of their normals is below the degeneracy cutoff).
func PlanePlane(p1, p2 geom.Plane) (geom.Line, bool) {
	dir := p1.Normal.Cross(p2.Normal)
	if dir.Length() < geom.EpsDegenerate {
		return geom.Line{}, false
	}

	d1 := p1.Normal.Dot(p1.Origin)
	d2 := p2.Normal.Dot(p2.Origin)

	// Solve the 2x2 system on the plane perpendicular to the cross
	// product's largest component, avoiding near-singular division.
	abs := dir.Abs()
	var point v3.Vec
	switch {
	case abs.Z >= abs.X && abs.Z >= abs.Y:
		det := p1.Normal.X*p2.Normal.Y - p1.Normal.Y*p2.Normal.X
		point = v3.Vec{
			X: (d1*p2.Normal.Y - d2*p1.Normal.Y) / det,
			Y: (d2*p1.Normal.X - d1*p2.Normal.X) / det,
		}
	case abs.Y >= abs.X:
		det := p1.Normal.X*p2.Normal.Z - p1.Normal.Z*p2.Normal.X
		point = v3.Vec{
			X: (d1*p2.Normal.Z - d2*p1.Normal.Z) / det,
			Z: (d2*p1.Normal.X - d1*p2.Normal.X) / det,
		}
	default:
		det := p1.Normal.Y*p2.Normal.Z - p1.Normal.Z*p2.Normal.Y
		point = v3.Vec{
			Y: (d1*p2.Normal.Z - d2*p1.Normal.Z) / det,
			Z: (d2*p1.Normal.Y - d1*p2.Normal.Y) / det,
		}
	}

	return geom.Line{Origin: point, Direction: dir}, true
}

// RaySphere returns the forward intersection points of a ray with a
// sphere: 0, 1, or 2 points. Roots with negative ray parameter are
// discarded. A discriminant within the degeneracy cutoff of zero is
// treated as exactly tangent (one point).
func RaySphere(ray geom.Ray, center v3.Vec, radius float64) []v3.Vec {
	oc := ray.Origin.Sub(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	return quadraticHits(ray, a, b, c)
}

// RayCylinder returns the forward intersection points of a ray with an
// infinite cylinder around the given axis. The ray is projected onto the
// plane perpendicular to the (normalized) axis and the same quadratic
// form is solved. A ray running parallel to the axis yields no points.
func RayCylinder(ray geom.Ray, axisOrigin, axisDirection v3.Vec, radius float64) []v3.Vec {
	axis, ok := geom.Normalize(axisDirection)
	if !ok {
		return nil
	}

	oc := ray.Origin.Sub(axisOrigin)
	dPerp := ray.Direction.Sub(axis.MulScalar(ray.Direction.Dot(axis)))
	ocPerp := oc.Sub(axis.MulScalar(oc.Dot(axis)))

	a := dPerp.Dot(dPerp)
	if a < geom.EpsDegenerate {
		return nil
	}
	b := 2 * ocPerp.Dot(dPerp)
	c := ocPerp.Dot(ocPerp) - radius*radius
	return quadraticHits(ray, a, b, c)
}

// quadraticHits solves a*t^2 + b*t + c = 0 and maps the non-negative
// roots onto the ray.
func quadraticHits(ray geom.Ray, a, b, c float64) []v3.Vec {
	if a < geom.EpsDegenerate {
		// Zero-length or degenerate ray direction.
		return nil
	}
	disc := b*b - 4*a*c
	if disc < -geom.EpsDegenerate {
		return nil
	}
	if disc < geom.EpsDegenerate {
		// Tangent: a single root.
		t := -b / (2 * a)
		if t < 0 {
			return nil
		}
		return []v3.Vec{ray.At(t)}
	}

	sq := math.Sqrt(disc)
	var hits []v3.Vec
	for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t >= 0 {
			hits = append(hits, ray.At(t))
		}
	}
	return hits
}

// Classification is the result of a point-in-solid query.
type Classification int

const (
	Outside Classification = iota
	Inside
	OnBoundary
)

func (c Classification) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case OnBoundary:
		return "on-boundary"
	default:
		return "unknown"
	}
}

// Classify reports whether a point lies inside, outside, or on the
// boundary of a solid, by casting a ray in the +X direction and counting
// plane crossings across all faces (even crossings mean outside, odd mean
// inside).
//
// Limitation: this counts crossings of each face's supporting plane, not
// the bounded polygon, so it is only correct for convex solids whose
// faces' planes do not overlap outside the polygon extent.
func Classify(point v3.Vec, solid *topo.Solid) Classification {
	ray := geom.Ray{Origin: point, Direction: v3.Vec{X: 1}}

	crossings := 0
	for _, f := range solid.Faces {
		plane, ok := facePlane(solid, f)
		if !ok {
			continue
		}

		dist := point.Sub(plane.Origin).Dot(plane.Normal)
		if math.Abs(dist) < geom.EpsDegenerate {
			return OnBoundary
		}

		if t, ok := ray.IntersectPlane(plane); ok && t > geom.EpsDegenerate {
			crossings++
		}
	}

	if crossings%2 == 1 {
		return Inside
	}
	return Outside
}

// facePlane derives a face's supporting plane from its surface normal and
// the first vertex of its outer loop.
func facePlane(s *topo.Solid, f topo.Face) (geom.Plane, bool) {
	planar, ok := f.Surface.(topo.PlanarSurface)
	if !ok {
		return geom.Plane{}, false
	}
	points := s.LoopPoints(f.OuterLoop)
	if len(points) == 0 {
		return geom.Plane{}, false
	}
	normal, ok := geom.Normalize(planar.Normal)
	if !ok {
		return geom.Plane{}, false
	}
	return geom.Plane{Origin: points[0], Normal: normal}, true
}
