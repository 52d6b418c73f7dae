package script

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burl/pkg/csg"
	"github.com/chazu/burl/pkg/revolve"
	"github.com/chazu/burl/pkg/sketch"
	"github.com/chazu/burl/pkg/solver"
	"github.com/chazu/burl/pkg/topo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before handing it to zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal),
//     avoiding keyword symbols that would conflict with user variables.
//
//  2. Kebab-case to underscore: max-iterations -> max_iterations, since
//     zygomys reads a hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments, which is what zygomys expects.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Copy backtick-quoted string literals untouched.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Kebab-case: hyphen between identifier characters becomes _.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing kernel values through the environment
// ---------------------------------------------------------------------------

// sexpSketch wraps a sketch and the constraints declared on it.
type sexpSketch struct {
	sk          *sketch.Sketch
	constraints []sketch.Constraint
}

func (s *sexpSketch) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(sketch :points %d :entities %d)", len(s.sk.Points), len(s.sk.Entities))
}
func (s *sexpSketch) Type() *zygo.RegisteredType { return nil }

// sexpPoint wraps a sketch point handle.
type sexpPoint struct {
	id sketch.PointID
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %d)", p.id)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpEntity wraps a sketch entity handle.
type sexpEntity struct {
	id sketch.EntityID
}

func (e *sexpEntity) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(entity %d)", e.id)
}
func (e *sexpEntity) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a solid.
type sexpSolid struct {
	solid *topo.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(solid :vertices %d :faces %d)", len(s.solid.Vertices), len(s.solid.Faces))
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a 3D vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp,
// handling both preprocessed keywords (__kw_y) and plain strings ("y").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toAxis(s zygo.Sexp) (revolve.Axis, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected axis keyword (:x, :y): %w", err)
	}
	switch name {
	case "x":
		return revolve.AxisX, nil
	case "y":
		return revolve.AxisY, nil
	}
	return 0, fmt.Errorf("invalid axis %q, expected x or y", name)
}

func toSketch(s zygo.Sexp) (*sexpSketch, error) {
	if sk, ok := s.(*sexpSketch); ok {
		return sk, nil
	}
	return nil, fmt.Errorf("expected sketch, got %T (%s)", s, s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (sketch.PointID, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.id, nil
	}
	return 0, fmt.Errorf("expected point reference, got %T (%s)", s, s.SexpString(nil))
}

func toEntity(s zygo.Sexp) (sketch.EntityID, error) {
	if e, ok := s.(*sexpEntity); ok {
		return e.id, nil
	}
	return 0, fmt.Errorf("expected entity reference, got %T (%s)", s, s.SexpString(nil))
}

func toSolid(s zygo.Sexp) (*topo.Solid, error) {
	if sol, ok := s.(*sexpSolid); ok {
		return sol.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// buildContext accumulates the solids a script emits.
type buildContext struct {
	solids []NamedSolid
}

// registerBuiltins installs the kernel DSL into a zygomys environment.
// Source must be preprocessed with preprocessSource first so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, ctx *buildContext) {

	// -----------------------------------------------------------------------
	// (sketch)
	// -----------------------------------------------------------------------
	env.AddFunction("sketch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpSketch{sk: sketch.New()}, nil
	})

	// -----------------------------------------------------------------------
	// (point sk x y)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("point requires a sketch, x, and y")
		}
		sk, err := toSketch(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: %w", err)
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		id := sk.sk.AddPoint(v2Vec(x, y))
		return &sexpPoint{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (line sk start end)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("line requires a sketch and two points")
		}
		sk, err := toSketch(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		start, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: start: %w", err)
		}
		end, err := toPoint(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: end: %w", err)
		}
		return &sexpEntity{id: sk.sk.AddLine(start, end)}, nil
	})

	// -----------------------------------------------------------------------
	// (circle sk center radius)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("circle requires a sketch, center, and radius")
		}
		sk, err := toSketch(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		center, err := toPoint(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
		}
		radius, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}
		return &sexpEntity{id: sk.sk.AddCircle(center, radius)}, nil
	})

	// Constraint forms. Each appends to the sketch's constraint list and
	// returns the sketch so forms can be threaded.
	addConstraint := func(formName string, build func(pa kwArgs, sk *sexpSketch, args []zygo.Sexp) (sketch.Constraint, error)) {
		env.AddFunction(formName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a sketch as first argument", formName)
			}
			sk, err := toSketch(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", formName, err)
			}
			pa := parseArgs(args[1:])
			c, err := build(pa, sk, pa.positional)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", formName, err)
			}
			sk.constraints = append(sk.constraints, c)
			return sk, nil
		})
	}

	// (horizontal sk ln)
	addConstraint("horizontal", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		if len(pos) != 1 {
			return nil, fmt.Errorf("requires a line")
		}
		ln, err := toEntity(pos[0])
		if err != nil {
			return nil, err
		}
		return sketch.Horizontal{Line: ln}, nil
	})

	// (vertical sk ln)
	addConstraint("vertical", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		if len(pos) != 1 {
			return nil, fmt.Errorf("requires a line")
		}
		ln, err := toEntity(pos[0])
		if err != nil {
			return nil, err
		}
		return sketch.Vertical{Line: ln}, nil
	})

	// (coincident sk p1 p2)
	addConstraint("coincident", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		if len(pos) != 2 {
			return nil, fmt.Errorf("requires two points")
		}
		a, err := toPoint(pos[0])
		if err != nil {
			return nil, err
		}
		b, err := toPoint(pos[1])
		if err != nil {
			return nil, err
		}
		return sketch.Coincident{A: a, B: b}, nil
	})

	// (parallel sk l1 l2)
	addConstraint("parallel", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		a, b, err := twoEntities(pos)
		if err != nil {
			return nil, err
		}
		return sketch.Parallel{A: a, B: b}, nil
	})

	// (perpendicular sk l1 l2)
	addConstraint("perpendicular", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		a, b, err := twoEntities(pos)
		if err != nil {
			return nil, err
		}
		return sketch.Perpendicular{A: a, B: b}, nil
	})

	// (fixed sk p x y)
	addConstraint("fixed", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		if len(pos) != 3 {
			return nil, fmt.Errorf("requires a point, x, and y")
		}
		p, err := toPoint(pos[0])
		if err != nil {
			return nil, err
		}
		x, err := toFloat64(pos[1])
		if err != nil {
			return nil, err
		}
		y, err := toFloat64(pos[2])
		if err != nil {
			return nil, err
		}
		return sketch.Fixed{Point: p, Target: v2Vec(x, y)}, nil
	})

	// (distance sk p1 p2 value)
	addConstraint("distance", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		if len(pos) != 3 {
			return nil, fmt.Errorf("requires two points and a value")
		}
		a, err := toPoint(pos[0])
		if err != nil {
			return nil, err
		}
		b, err := toPoint(pos[1])
		if err != nil {
			return nil, err
		}
		value, err := toFloat64(pos[2])
		if err != nil {
			return nil, err
		}
		return sketch.Distance{A: a, B: b, Value: value}, nil
	})

	// (length sk ln value)
	addConstraint("length", func(pa kwArgs, sk *sexpSketch, pos []zygo.Sexp) (sketch.Constraint, error) {
		if len(pos) != 2 {
			return nil, fmt.Errorf("requires a line and a value")
		}
		ln, err := toEntity(pos[0])
		if err != nil {
			return nil, err
		}
		value, err := toFloat64(pos[1])
		if err != nil {
			return nil, err
		}
		return sketch.Length{Line: ln, Value: value}, nil
	})

	// -----------------------------------------------------------------------
	// (solve sk :max-iterations 200 :tolerance 1e-6 :damping 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("solve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("solve requires a sketch")
		}
		sk, err := toSketch(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solve: %w", err)
		}

		pa := parseArgs(args[1:])
		var opts []solver.Option
		if v, ok := pa.kw["max-iterations"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("solve: max-iterations: %w", err)
			}
			opts = append(opts, solver.WithMaxIterations(n))
		}
		if v, ok := pa.kw["tolerance"]; ok {
			tol, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("solve: tolerance: %w", err)
			}
			opts = append(opts, solver.WithTolerance(tol))
		}
		if v, ok := pa.kw["damping"]; ok {
			d, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("solve: damping: %w", err)
			}
			opts = append(opts, solver.WithDamping(d))
		}

		result := solver.New(opts...).Solve(sk.sk, sk.constraints)
		return &zygo.SexpBool{Val: result.Converged}, nil
	})

	// -----------------------------------------------------------------------
	// (revolve sk :angle 360 :axis :y :segments 16)
	// -----------------------------------------------------------------------
	env.AddFunction("revolve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("revolve requires a sketch")
		}
		sk, err := toSketch(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("revolve: %w", err)
		}

		pa := parseArgs(args[1:])
		params := revolve.Params{AngleDegrees: 360, Axis: revolve.AxisY, Segments: 16}
		if v, ok := pa.kw["angle"]; ok {
			if params.AngleDegrees, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: angle: %w", err)
			}
		}
		if v, ok := pa.kw["axis"]; ok {
			if params.Axis, err = toAxis(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: axis: %w", err)
			}
		}
		if v, ok := pa.kw["segments"]; ok {
			if params.Segments, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: segments: %w", err)
			}
		}

		solid, err := revolve.Sweep(sk.sk, params)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("revolve: %w", err)
		}
		return &sexpSolid{solid: solid}, nil
	})

	// -----------------------------------------------------------------------
	// (box :width 10 :height 20 :depth 30 :at (vec3 0 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		w, h, d := 1.0, 1.0, 1.0
		var err error
		if v, ok := pa.kw["width"]; ok {
			if w, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: width: %w", err)
			}
		}
		if v, ok := pa.kw["height"]; ok {
			if h, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: height: %w", err)
			}
		}
		if v, ok := pa.kw["depth"]; ok {
			if d, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: depth: %w", err)
			}
		}
		center := v3.Vec{}
		if v, ok := pa.kw["at"]; ok {
			if center, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: at: %w", err)
			}
		}
		return &sexpSolid{solid: topo.MakeBoxAt(center, w, h, d)}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// Boolean forms.
	addBoolean := func(formName string, op func(a, b *topo.Solid) (*topo.Solid, error)) {
		env.AddFunction(formName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires two solids", formName)
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", formName, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", formName, err)
			}
			out, err := op(a, b)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", formName, err)
			}
			return &sexpSolid{solid: out}, nil
		})
	}
	addBoolean("union", csg.Union)
	addBoolean("difference", csg.Difference)
	addBoolean("intersection", csg.Intersection)

	// -----------------------------------------------------------------------
	// (emit "name" solid)
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("emit requires a name and a solid")
		}
		solidName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emit: name: %w", err)
		}
		solid, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emit: %w", err)
		}
		ctx.solids = append(ctx.solids, NamedSolid{Name: solidName, Solid: solid})
		return args[1], nil
	})
}

func v2Vec(x, y float64) v2.Vec {
	return v2.Vec{X: x, Y: y}
}

func twoEntities(pos []zygo.Sexp) (sketch.EntityID, sketch.EntityID, error) {
	if len(pos) != 2 {
		return 0, 0, fmt.Errorf("requires two lines")
	}
	a, err := toEntity(pos[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := toEntity(pos[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
