// Package geom provides the geometric primitives shared by the kernel:
// planes, lines, rays, and axis-aligned bounding boxes, built on the
// sdfx vector types. All functions are pure; none of them panic on
// degenerate input.
package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Tolerance is the shared convergence/equality tolerance used across the
// kernel (constraint solving, coordinate comparison).
const Tolerance = 1e-6

// EpsDegenerate is the cutoff below which a squared or linear quantity
// (cross-product length, quadratic discriminant, leading coefficient) is
// treated as degenerate.
const EpsDegenerate = 1e-8

// Normalize returns the unit vector in the direction of v. The second
// return is false when v is too short to normalize; the zero vector is
// returned in that case, never NaN.
func Normalize(v v3.Vec) (v3.Vec, bool) {
	l := v.Length()
	if l < EpsDegenerate {
		return v3.Vec{}, false
	}
	return v.DivScalar(l), true
}

// Plane is an infinite plane through Origin with unit Normal.
type Plane struct {
	Origin v3.Vec
	Normal v3.Vec
}

// Line is an infinite line through Origin along Direction.
type Line struct {
	Origin    v3.Vec
	Direction v3.Vec
}

// Ray is a half-line from Origin along Direction (t >= 0).
type Ray struct {
	Origin    v3.Vec
	Direction v3.Vec
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) v3.Vec {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// IntersectPlane returns the ray parameter t at which the ray crosses the
// plane. The second return is false when the ray runs parallel to the
// plane (including rays lying in the plane).
func (r Ray) IntersectPlane(p Plane) (float64, bool) {
	denom := r.Direction.Dot(p.Normal)
	if denom > -EpsDegenerate && denom < EpsDegenerate {
		return 0, false
	}
	t := p.Origin.Sub(r.Origin).Dot(p.Normal) / denom
	return t, true
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min v3.Vec
	Max v3.Vec
}

// NewBox returns the box spanning the given points. It returns the empty
// box and false when no points are given.
func NewBox(points []v3.Vec) (Box, bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b, true
}

// Extend grows the box to include p.
func (b Box) Extend(p v3.Vec) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Center returns the center point of the box.
func (b Box) Center() v3.Vec {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size returns the box extent along each axis.
func (b Box) Size() v3.Vec {
	return b.Max.Sub(b.Min)
}

// Intersects reports whether the two boxes overlap or touch.
func (b Box) Intersects(other Box) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Overlap returns the box common to b and other. The second return is
// false when the boxes are disjoint.
func (b Box) Overlap(other Box) (Box, bool) {
	if !b.Intersects(other) {
		return Box{}, false
	}
	return Box{Min: b.Min.Max(other.Min), Max: b.Max.Min(other.Max)}, true
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box) Contains(p v3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
