package export

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/sketch"
)

// SVGOptions controls sketch rendering.
type SVGOptions struct {
	Scale       float64 // sketch units to pixels
	Margin      int     // pixel margin around the drawing
	StrokeStyle string  // SVG style applied to entities
	PointStyle  string  // SVG style applied to point markers
	PointRadius int     // pixel radius of point markers
}

// DefaultSVGOptions returns the stock rendering options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Scale:       10,
		Margin:      20,
		StrokeStyle: "stroke:black;stroke-width:2;fill:none",
		PointStyle:  "fill:firebrick",
		PointRadius: 3,
	}
}

// WriteSVG renders the sketch's entities and points as a 2D SVG drawing.
// The sketch's Y axis points up; SVG's points down, so Y is flipped.
func WriteSVG(w io.Writer, sk *sketch.Sketch, opts SVGOptions) error {
	minX, minY, maxX, maxY := sketchBounds(sk)

	width := int(math.Ceil((maxX-minX)*opts.Scale)) + 2*opts.Margin
	height := int(math.Ceil((maxY-minY)*opts.Scale)) + 2*opts.Margin

	toPx := func(x, y float64) (int, int) {
		px := int(math.Round((x-minX)*opts.Scale)) + opts.Margin
		py := height - (int(math.Round((y-minY)*opts.Scale)) + opts.Margin)
		return px, py
	}

	canvas := svg.New(w)
	canvas.Start(width, height)

	for _, e := range sk.Entities {
		switch ent := e.(type) {
		case sketch.LineEntity:
			start := sk.Point(ent.Start)
			end := sk.Point(ent.End)
			if start == nil || end == nil {
				continue
			}
			x1, y1 := toPx(start.Position.X, start.Position.Y)
			x2, y2 := toPx(end.Position.X, end.Position.Y)
			canvas.Line(x1, y1, x2, y2, opts.StrokeStyle)

		case sketch.CircleEntity:
			center := sk.Point(ent.Center)
			if center == nil {
				continue
			}
			cx, cy := toPx(center.Position.X, center.Position.Y)
			canvas.Circle(cx, cy, int(math.Round(ent.Radius*opts.Scale)), opts.StrokeStyle)

		case sketch.ArcEntity:
			center := sk.Point(ent.Center)
			start := sk.Point(ent.Start)
			end := sk.Point(ent.End)
			if center == nil || start == nil || end == nil {
				continue
			}
			sv := start.Position.Sub(center.Position)
			ev := end.Position.Sub(center.Position)
			r := sv.Length()
			if r < geom.EpsDegenerate || ev.Length() < geom.EpsDegenerate {
				continue
			}
			// The radius comes from the start point; the end point only
			// fixes the sweep angle, so it is projected onto the circle
			// when its own radial distance disagrees.
			endOnCircle := center.Position.Add(ev.MulScalar(r / ev.Length()))

			x1, y1 := toPx(start.Position.X, start.Position.Y)
			x2, y2 := toPx(endOnCircle.X, endOnCircle.Y)
			rp := int(math.Round(r * opts.Scale))

			// Counterclockwise angular extent from start to end. The Y
			// flip maps the sketch's counterclockwise direction to SVG's
			// negative-angle direction, hence sweep stays false; the
			// extent picks the large-arc flag.
			extent := math.Atan2(ev.Y, ev.X) - math.Atan2(sv.Y, sv.X)
			if extent < 0 {
				extent += 2 * math.Pi
			}
			if extent < geom.EpsDegenerate {
				// Coincident endpoints close the full circle.
				cx, cy := toPx(center.Position.X, center.Position.Y)
				canvas.Circle(cx, cy, rp, opts.StrokeStyle)
				continue
			}
			canvas.Arc(x1, y1, rp, rp, 0, extent > math.Pi, false, x2, y2, opts.StrokeStyle)
		}
	}

	for _, p := range sk.Points {
		px, py := toPx(p.Position.X, p.Position.Y)
		canvas.Circle(px, py, opts.PointRadius, opts.PointStyle)
	}

	canvas.End()
	return nil
}

func sketchBounds(sk *sketch.Sketch) (minX, minY, maxX, maxY float64) {
	if len(sk.Points) == 0 {
		return 0, 0, 1, 1
	}
	first := sk.Points[0].Position
	minX, minY, maxX, maxY = first.X, first.Y, first.X, first.Y
	for _, p := range sk.Points[1:] {
		minX = math.Min(minX, p.Position.X)
		minY = math.Min(minY, p.Position.Y)
		maxX = math.Max(maxX, p.Position.X)
		maxY = math.Max(maxY, p.Position.Y)
	}
	return minX, minY, maxX, maxY
}
