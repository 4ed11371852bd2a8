// Package transparency computes, for each course placed in a solved
// schedule, the list of justifications for its presence — spec.md §4.H.
// Reasons are derived post-hoc from the solved model's chooser bools and
// structural catalog facts; the scheduler never backtracks to compute
// them.
package transparency

import (
	"coursesched/internal/catalog"
	"coursesched/internal/modelbuilder"
	"coursesched/internal/schedule"
)

// ReasonKind tags a CourseReasons variant.
type ReasonKind int

const (
	ProgramRequired ReasonKind = iota
	ProgramElective
	Core
	Foundation
	SkillsAndPerspective
	CourseReqReason
)

// CourseReasons is one justification attached to a placed course.
type CourseReasons struct {
	Kind        ReasonKind
	Program     string // ProgramRequired, ProgramElective
	ElectiveName string // ProgramElective
	GenEdName   string // Core, Foundation, SkillsAndPerspective
	Dependent   catalog.CourseCode // CourseReqReason: the course c is a prereq/coreq of
}

// Derive computes every CourseReasons entry for every course placed
// anywhere in s.Courses, reading m's chooser variables (already solved)
// for the disjunctive cases (SetOpts/elective options and Or prereq
// branches) spec.md §4.H calls out by name.
func Derive(s *schedule.Schedule, m *modelbuilder.Model) map[catalog.CourseCode][]CourseReasons {
	out := make(map[catalog.CourseCode][]CourseReasons)
	placed := make(map[catalog.CourseCode]bool)
	for _, sem := range s.Courses {
		for _, c := range sem {
			placed[c] = true
		}
	}

	add := func(c catalog.CourseCode, r CourseReasons) {
		out[c] = append(out[c], r)
	}

	for _, name := range s.Programs {
		prog, ok := s.Catalog.ProgramByName(name)
		if !ok {
			continue
		}
		for _, sem := range prog.Semesters {
			for _, c := range sem {
				if placed[c] {
					add(c, CourseReasons{Kind: ProgramRequired, Program: prog.Name})
				}
			}
		}
	}

	// Foundation is attributed from the solver's use-bool assignment, not a
	// blanket pool scan, so a course is reported against at most one
	// Foundation — matching SPEC_FULL.md supplement #3's strictness
	// commitment. Core and Skills-&-Perspectives have no such exclusivity
	// requirement, so they are reported structurally: every matching
	// GenEd a placed pool course belongs to.
	for _, ge := range s.Catalog.GenEds {
		if ge.Category == catalog.CategoryFoundation {
			continue
		}
		for _, c := range ge.Req.AllPoolCodes() {
			if !placed[c] {
				continue
			}
			if ge.Category == catalog.CategoryCore {
				add(c, CourseReasons{Kind: Core, GenEdName: ge.Name})
			} else {
				add(c, CourseReasons{Kind: SkillsAndPerspective, GenEdName: ge.Name})
			}
		}
	}

	for _, rec := range m.Choosers {
		if !m.Backend.BoolValue(rec.Var) {
			continue
		}
		switch rec.Kind {
		case modelbuilder.ChooserElectiveOption:
			program, elective := splitLabel(rec.Label)
			for _, c := range rec.Members {
				if placed[c] {
					add(c, CourseReasons{Kind: ProgramElective, Program: program, ElectiveName: elective})
				}
			}
		case modelbuilder.ChooserOrBranch:
			// Only Or-branch disjuncts get a CourseReqReason here; a course
			// pulled in solely as a direct PreCourse/CoCourse of rec.Course
			// gets no reason (matches the original's get_reasons).
			for _, c := range rec.Members {
				if placed[c] {
					add(c, CourseReasons{Kind: CourseReqReason, Dependent: rec.Course})
				}
			}
		case modelbuilder.ChooserFoundationUse:
			if placed[rec.Course] {
				add(rec.Course, CourseReasons{Kind: Foundation, GenEdName: rec.Label})
			}
		}
	}

	return out
}

func splitLabel(label string) (program, elective string) {
	for i := len(label) - 1; i >= 0; i-- {
		if label[i] == '/' {
			return label[:i], label[i+1:]
		}
	}
	return "", label
}
