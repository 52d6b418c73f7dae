// Package solver adjusts sketch point positions to satisfy constraints.
//
// The algorithm is damped gradient accumulation (steepest descent), not a
// Newton step with an assembled and inverted Jacobian: each iteration
// sums every constraint's residual, and when the sum is above tolerance,
// subtracts each constraint's gradient from the involved points, scaled
// by the damping factor. Upgrading to a true Newton solve is a roadmap
// item, not a bug fix.
package solver

import (
	"log/slog"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/sketch"
)

// negligibleResidual is the cutoff below which a constraint contributes
// no update.
const negligibleResidual = 1e-12

// Config holds the solver's iteration parameters.
type Config struct {
	MaxIterations int
	Tolerance     float64
	Damping       float64
}

// DefaultConfig returns the stock solver configuration.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 100,
		Tolerance:     geom.Tolerance,
		Damping:       0.5,
	}
}

// Result reports the outcome of a solve. When Converged is false the
// sketch is left in its last-attempted state; callers must check
// Converged before trusting point positions.
type Result struct {
	Converged  bool
	Iterations int
	FinalError float64
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations sets the iteration ceiling.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.cfg.MaxIterations = n
		}
	}
}

// WithTolerance sets the convergence tolerance on the summed residual.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.cfg.Tolerance = tol
		}
	}
}

// WithDamping sets the step scale applied to accumulated gradients.
func WithDamping(d float64) Option {
	return func(s *Solver) {
		if d > 0 {
			s.cfg.Damping = d
		}
	}
}

// WithLogger attaches a structured logger; the solver logs one debug
// record per iteration. Nil disables logging (the default).
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = l
	}
}

// Solver runs constraint solves. It holds no per-solve state: a re-solve
// always restarts iteration counting from zero, and the only persisted
// outputs are the sketch's point positions and its IsSolved flag.
type Solver struct {
	cfg    Config
	logger *slog.Logger
}

// New returns a solver with the default configuration, modified by opts.
func New(opts ...Option) *Solver {
	s := &Solver{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the solver's configuration.
func (s *Solver) Config() Config {
	return s.cfg
}

// Solve iterates until the summed residual of all constraints drops below
// tolerance or the iteration ceiling is reached. It mutates the sketch's
// point positions in place and never returns an error; non-convergence is
// reported through Result.Converged.
func (s *Solver) Solve(sk *sketch.Sketch, constraints []sketch.Constraint) Result {
	var total float64

	for iter := 0; iter < s.cfg.MaxIterations; iter++ {
		total = 0
		for _, c := range constraints {
			total += c.Evaluate(sk)
		}

		if s.logger != nil {
			s.logger.Debug("solver iteration", "iteration", iter, "error", total)
		}

		if total < s.cfg.Tolerance {
			sk.IsSolved = true
			return Result{Converged: true, Iterations: iter, FinalError: total}
		}

		updates := s.computeUpdates(sk, constraints)
		for id, delta := range updates {
			p := sk.Point(id)
			if p == nil {
				continue
			}
			p.Position = p.Position.Add(delta.MulScalar(s.cfg.Damping))
		}
	}

	sk.IsSolved = false
	return Result{Converged: false, Iterations: s.cfg.MaxIterations, FinalError: total}
}

// computeUpdates accumulates the negated gradient of every constraint
// with a non-negligible residual into a per-point delta map.
func (s *Solver) computeUpdates(sk *sketch.Sketch, constraints []sketch.Constraint) map[sketch.PointID]v2.Vec {
	updates := make(map[sketch.PointID]v2.Vec)
	for _, c := range constraints {
		if math.Abs(c.Evaluate(sk)) < negligibleResidual {
			continue
		}
		for _, pg := range c.Gradient(sk) {
			updates[pg.Point] = updates[pg.Point].Sub(pg.Grad)
		}
	}
	return updates
}
