package topo

import "fmt"

// Severity grades a validation finding.
type Severity int

const (
	SeverityError   Severity = iota // blocking: downstream components may misbehave
	SeverityWarning                 // advisory
)

// ValidationError describes a topology invariant violation found on a
// solid.
type ValidationError struct {
	Face     FaceID
	Shell    ShellID
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Face >= 0 {
		return fmt.Sprintf("face %d: %s", e.Face, e.Message)
	}
	if e.Shell >= 0 {
		return fmt.Sprintf("shell %d: %s", e.Shell, e.Message)
	}
	return e.Message
}

// Validate runs all topology checks on the solid and returns the findings.
// An empty result means the solid satisfies the invariants downstream
// components rely on: every referenced handle resolves, every loop is a
// closed walk of at least 3 edges, and every outer loop yields at least 3
// vertices for triangulation.
func Validate(s *Solid) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateReferences(s)...)
	errs = append(errs, validateLoops(s)...)
	errs = append(errs, validateShells(s)...)
	return errs
}

// IsValid reports whether Validate finds no blocking errors.
func IsValid(s *Solid) bool {
	for _, e := range Validate(s) {
		if e.Severity == SeverityError {
			return false
		}
	}
	return true
}

// validateReferences checks that every handle stored on an edge or face
// resolves into the owning solid's arrays.
func validateReferences(s *Solid) []ValidationError {
	var errs []ValidationError

	for _, e := range s.Edges {
		if s.Vertex(e.Start) == nil || s.Vertex(e.End) == nil {
			errs = append(errs, ValidationError{
				Face:     -1,
				Shell:    -1,
				Message:  fmt.Sprintf("edge %d references missing vertex (%d, %d)", e.ID, e.Start, e.End),
				Severity: SeverityError,
			})
		}
	}

	for _, f := range s.Faces {
		loops := append([]Loop{f.OuterLoop}, f.InnerLoops...)
		for _, l := range loops {
			for _, eid := range l.Edges {
				if s.Edge(eid) == nil {
					errs = append(errs, ValidationError{
						Face:     f.ID,
						Shell:    -1,
						Message:  fmt.Sprintf("loop references missing edge %d", eid),
						Severity: SeverityError,
					})
				}
			}
		}
	}

	return errs
}

// validateLoops checks that every loop is a closed walk of at least 3
// edges with matching direction flags.
func validateLoops(s *Solid) []ValidationError {
	var errs []ValidationError

	for _, f := range s.Faces {
		loops := append([]Loop{f.OuterLoop}, f.InnerLoops...)
		for li, l := range loops {
			kind := "outer loop"
			if li > 0 {
				kind = fmt.Sprintf("inner loop %d", li-1)
			}

			if len(l.Edges) < 3 {
				errs = append(errs, ValidationError{
					Face:     f.ID,
					Shell:    -1,
					Message:  fmt.Sprintf("%s has %d edges, need at least 3", kind, len(l.Edges)),
					Severity: SeverityError,
				})
				continue
			}
			if len(l.Directions) != len(l.Edges) {
				errs = append(errs, ValidationError{
					Face:     f.ID,
					Shell:    -1,
					Message:  fmt.Sprintf("%s has %d direction flags for %d edges", kind, len(l.Directions), len(l.Edges)),
					Severity: SeverityError,
				})
				continue
			}

			if !loopCloses(s, l) {
				errs = append(errs, ValidationError{
					Face:     f.ID,
					Shell:    -1,
					Message:  fmt.Sprintf("%s is not a closed walk", kind),
					Severity: SeverityError,
				})
			}
		}

		if len(s.LoopVertices(f.OuterLoop)) < 3 {
			errs = append(errs, ValidationError{
				Face:     f.ID,
				Shell:    -1,
				Message:  "outer loop resolves to fewer than 3 vertices",
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// loopCloses checks that the end vertex of each directed edge equals the
// start vertex of the next, cyclically.
func loopCloses(s *Solid, l Loop) bool {
	n := len(l.Edges)
	for i := 0; i < n; i++ {
		cur := s.Edge(l.Edges[i])
		next := s.Edge(l.Edges[(i+1)%n])
		if cur == nil || next == nil {
			return false
		}
		curEnd := cur.End
		if !l.Directions[i] {
			curEnd = cur.Start
		}
		nextStart := next.Start
		if !l.Directions[(i+1)%n] {
			nextStart = next.End
		}
		if curEnd != nextStart {
			return false
		}
	}
	return true
}

// validateShells checks that every shell's face handles resolve and that
// faces agree with their shell's back-reference.
func validateShells(s *Solid) []ValidationError {
	var errs []ValidationError

	for _, sh := range s.Shells {
		for _, fid := range sh.Faces {
			f := s.Face(fid)
			if f == nil {
				errs = append(errs, ValidationError{
					Face:     -1,
					Shell:    sh.ID,
					Message:  fmt.Sprintf("shell references missing face %d", fid),
					Severity: SeverityError,
				})
				continue
			}
			if f.Shell != sh.ID {
				errs = append(errs, ValidationError{
					Face:     fid,
					Shell:    sh.ID,
					Message:  fmt.Sprintf("face records shell %d, listed in shell %d", f.Shell, sh.ID),
					Severity: SeverityWarning,
				})
			}
		}
	}

	return errs
}
