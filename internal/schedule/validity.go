package schedule

import (
	"coursesched/internal/catalog"
	"coursesched/internal/gened"
	"coursesched/internal/prereq"
)

// IsValid reports whether the schedule satisfies program coverage, every
// placed course's prereqs, and every GenEd's fulfillment — spec.md §4.C.
func (s *Schedule) IsValid() bool {
	return s.ProgramsCover() && s.PrereqsValid() && s.GenEdsValid()
}

// ProgramsCover reports whether, for every declared program, every code
// appearing anywhere in its Semesters appears somewhere in the plan
// (Incoming or Courses).
func (s *Schedule) ProgramsCover() bool {
	placed := s.allPlacedCodes()
	for _, c := range s.Incoming {
		placed[c] = true
	}
	for _, progName := range s.Programs {
		prog, ok := s.Catalog.ProgramByName(progName)
		if !ok {
			return false
		}
		for _, sem := range prog.Semesters {
			for _, code := range sem {
				if !placed[code] {
					return false
				}
			}
		}
	}
	return true
}

// PrereqsValid reports whether, for every code placed in semester s, its
// attached CourseReq is satisfied against this schedule.
func (s *Schedule) PrereqsValid() bool {
	for semIdx, sem := range s.Courses {
		for _, code := range sem {
			req := s.Catalog.PrereqFor(code)
			if !prereq.IsSatisfied(req, s, semIdx) {
				return false
			}
		}
	}
	return true
}

// GenEdsValid reports whether every GenEd in the catalog is fulfilled by the
// placed courses. This pure predicate intentionally checks fulfillment
// only, not the Foundation non-overlap / S&P-cap invariants — those are
// enforced as hard constraints during solving (internal/modelbuilder), not
// re-checked here. This asymmetry matches the original source's
// are_geneds_satisfied, which likewise never checks overlap (see
// SPEC_FULL.md supplement #3 and DESIGN.md's Open Question decision), and
// lets a caller validate a hand-edited schedule without over-rejecting it.
func (s *Schedule) GenEdsValid() bool {
	placed := s.allPlacedCodes()
	lookup := creditLookup(s.Catalog)
	for _, ge := range s.Catalog.GenEds {
		if _, ok := gened.Fulfilled(ge.Req, placed, lookup); !ok {
			return false
		}
	}
	return true
}
