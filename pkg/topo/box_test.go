package topo

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestMakeBoxCounts(t *testing.T) {
	s := MakeBox(2, 4, 6)

	if got := len(s.Vertices); got != 8 {
		t.Errorf("vertices = %d, want 8", got)
	}
	if got := len(s.Edges); got != 12 {
		t.Errorf("edges = %d, want 12", got)
	}
	if got := len(s.Faces); got != 6 {
		t.Errorf("faces = %d, want 6", got)
	}
	if got := len(s.Shells); got != 1 {
		t.Errorf("shells = %d, want 1", got)
	}
	if !s.Shells[0].IsClosed {
		t.Error("box shell should be closed")
	}
}

func TestMakeBoxIsValid(t *testing.T) {
	s := MakeBox(1, 1, 1)
	if errs := Validate(s); len(errs) > 0 {
		t.Fatalf("box fails validation: %v", errs)
	}
	if !IsValid(s) {
		t.Error("IsValid = false for a box")
	}
}

func TestMakeBoxAt(t *testing.T) {
	center := v3.Vec{X: 10, Y: -5, Z: 2}
	s := MakeBoxAt(center, 2, 4, 6)

	box, ok := s.BoundingBox()
	if !ok {
		t.Fatal("expected bounding box")
	}
	if got := box.Center(); !got.Equals(center, 1e-9) {
		t.Errorf("center = %v, want %v", got, center)
	}
	size := box.Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("size = %v, want (2 4 6)", size)
	}
}

func TestMakeBoxNormalsPointOutward(t *testing.T) {
	s := MakeBox(2, 2, 2)
	for _, f := range s.Faces {
		surf := f.Surface.(PlanarSurface)

		// The face centroid should lie in the direction of the normal
		// from the box center (origin).
		points := s.LoopPoints(f.OuterLoop)
		var centroid v3.Vec
		for _, p := range points {
			centroid = centroid.Add(p)
		}
		centroid = centroid.DivScalar(float64(len(points)))

		if dot := centroid.Dot(surf.Normal); dot <= 0 {
			t.Errorf("face %d normal %v does not point outward (dot %g)", f.ID, surf.Normal, dot)
		}

		// Winding agrees with the stored normal.
		cross := points[1].Sub(points[0]).Cross(points[2].Sub(points[0]))
		if dot := cross.Dot(surf.Normal); dot <= 0 {
			t.Errorf("face %d winding disagrees with normal (dot %g)", f.ID, dot)
		}
	}
}

func TestMakeBoxFaceLoopsAreQuads(t *testing.T) {
	s := MakeBox(3, 3, 3)
	for _, f := range s.Faces {
		if got := len(f.OuterLoop.Edges); got != 4 {
			t.Errorf("face %d loop has %d edges, want 4", f.ID, got)
		}
		points := s.LoopPoints(f.OuterLoop)
		if len(points) != 4 {
			t.Fatalf("face %d resolves %d points, want 4", f.ID, len(points))
		}
		// All quad sides have equal length on a cube.
		for i := range points {
			side := points[(i+1)%4].Sub(points[i]).Length()
			if math.Abs(side-3) > 1e-9 {
				t.Errorf("face %d side %d length = %g, want 3", f.ID, i, side)
			}
		}
	}
}
