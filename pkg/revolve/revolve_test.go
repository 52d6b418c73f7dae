package revolve

import (
	"errors"
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burl/pkg/sketch"
	"github.com/chazu/burl/pkg/topo"
)

// twoPointProfile is a single line from (1,0) to (1,2): revolved around Y
// it sweeps an open cylinder wall of radius 1.
func twoPointProfile() *sketch.Sketch {
	s := sketch.New()
	a := s.AddPoint(v2.Vec{X: 1})
	b := s.AddPoint(v2.Vec{X: 1, Y: 2})
	s.AddLine(a, b)
	return s
}

// threePointProfile is an open polyline with three points, enough for end
// caps on partial sweeps.
func threePointProfile() *sketch.Sketch {
	s := sketch.New()
	a := s.AddPoint(v2.Vec{X: 1})
	b := s.AddPoint(v2.Vec{X: 2, Y: 1})
	c := s.AddPoint(v2.Vec{X: 1, Y: 2})
	s.AddLine(a, b)
	s.AddLine(b, c)
	return s
}

func TestSweepRejectsBadParams(t *testing.T) {
	sk := twoPointProfile()
	tests := []struct {
		name   string
		params Params
	}{
		{"too few segments", Params{AngleDegrees: 360, Segments: 2}},
		{"zero segments", Params{AngleDegrees: 360, Segments: 0}},
		{"zero angle", Params{AngleDegrees: 0, Segments: 8}},
		{"tiny angle", Params{AngleDegrees: 1e-9, Segments: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sweep(sk, tt.params)
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("got %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestSweepNoProfile(t *testing.T) {
	t.Run("empty sketch", func(t *testing.T) {
		_, err := Sweep(sketch.New(), Params{AngleDegrees: 360, Segments: 8})
		if !errors.Is(err, ErrNoProfile) {
			t.Errorf("got %v, want ErrNoProfile", err)
		}
	})

	t.Run("circles only", func(t *testing.T) {
		s := sketch.New()
		c := s.AddPoint(v2.Vec{})
		s.AddCircle(c, 3)
		_, err := Sweep(s, Params{AngleDegrees: 360, Segments: 8})
		if !errors.Is(err, ErrNoProfile) {
			t.Errorf("got %v, want ErrNoProfile", err)
		}
	})
}

func TestSweepFull(t *testing.T) {
	const segments = 8
	solid, err := Sweep(twoPointProfile(), Params{AngleDegrees: 360, Segments: segments})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	// A full turn shares ring 0 as the seam: segments rings of 2 profile
	// points each, one quad per segment, no caps.
	if got, want := len(solid.Vertices), segments*2; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if got, want := len(solid.Faces), segments; got != want {
		t.Errorf("got %d faces, want %d", got, want)
	}
	if len(solid.Shells) != 1 {
		t.Fatalf("got %d shells, want 1", len(solid.Shells))
	}
	if !solid.Shells[0].IsClosed {
		t.Error("full revolve shell not marked closed")
	}

	if !topo.IsValid(solid) {
		for _, e := range topo.Validate(solid) {
			t.Logf("validation: %s", e.Error())
		}
		t.Error("full revolve fails validation")
	}

	// Every vertex stays at radius 1 from the Y axis.
	for _, v := range solid.Vertices {
		r := math.Hypot(v.Point.X, v.Point.Z)
		if math.Abs(r-1) > 1e-9 {
			t.Fatalf("vertex %v at radius %g, want 1", v.Point, r)
		}
		if v.Point.Y < -1e-9 || v.Point.Y > 2+1e-9 {
			t.Fatalf("vertex %v outside profile height range", v.Point)
		}
	}
}

func TestSweepPartial(t *testing.T) {
	const segments = 4
	solid, err := Sweep(threePointProfile(), Params{AngleDegrees: 90, Segments: segments})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	// segments+1 rings of 3 profile points, 2 quads per segment, plus two
	// end caps.
	if got, want := len(solid.Vertices), (segments+1)*3; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if got, want := len(solid.Faces), segments*2+2; got != want {
		t.Errorf("got %d faces, want %d", got, want)
	}
	if len(solid.Shells) != 1 {
		t.Fatalf("got %d shells, want 1", len(solid.Shells))
	}
	if solid.Shells[0].IsClosed {
		t.Error("partial revolve shell marked closed")
	}

	if !topo.IsValid(solid) {
		for _, e := range topo.Validate(solid) {
			t.Logf("validation: %s", e.Error())
		}
		t.Error("partial revolve fails validation")
	}
}

func TestSweepPartialTwoPointProfileHasNoCaps(t *testing.T) {
	const segments = 4
	solid, err := Sweep(twoPointProfile(), Params{AngleDegrees: 90, Segments: segments})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	// One quad per segment and nothing to cap.
	if got, want := len(solid.Faces), segments; got != want {
		t.Errorf("got %d faces, want %d", got, want)
	}
}

func TestSweepAxisX(t *testing.T) {
	s := sketch.New()
	a := s.AddPoint(v2.Vec{Y: 1})
	b := s.AddPoint(v2.Vec{X: 2, Y: 1})
	s.AddLine(a, b)

	solid, err := Sweep(s, Params{AngleDegrees: 360, Axis: AxisX, Segments: 6})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	// Around X the radius is measured in the YZ plane.
	for _, v := range solid.Vertices {
		r := math.Hypot(v.Point.Y, v.Point.Z)
		if math.Abs(r-1) > 1e-9 {
			t.Fatalf("vertex %v at radius %g from the x axis, want 1", v.Point, r)
		}
		if v.Point.X < -1e-9 || v.Point.X > 2+1e-9 {
			t.Fatalf("vertex %v outside profile x range", v.Point)
		}
	}
}

func TestSweepNegativeAngle(t *testing.T) {
	solid, err := Sweep(twoPointProfile(), Params{AngleDegrees: -90, Segments: 4})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	// A negative partial sweep keeps the open form with one extra ring.
	if got, want := len(solid.Vertices), 5*2; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if solid.Shells[0].IsClosed {
		t.Error("partial sweep shell marked closed")
	}
}

func TestSweepNegativeFullAngle(t *testing.T) {
	solid, err := Sweep(twoPointProfile(), Params{AngleDegrees: -360, Segments: 6})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if got, want := len(solid.Vertices), 6*2; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if !solid.Shells[0].IsClosed {
		t.Error("full negative revolve shell not marked closed")
	}
}

func TestAxisString(t *testing.T) {
	if AxisY.String() != "y" || AxisX.String() != "x" {
		t.Errorf("got %q and %q", AxisY.String(), AxisX.String())
	}
	if Axis(9).String() != "unknown" {
		t.Errorf("got %q for out-of-range axis", Axis(9))
	}
}
