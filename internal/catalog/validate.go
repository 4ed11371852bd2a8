package catalog

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every integrity problem found while checking a
// Catalog, so a caller can fix them all in one pass instead of one error at
// a time — grounded on the teacher repo's loader ValidationError pattern
// (internal/loader/validator.go in the teacher source).
type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("catalog has %d integrity problems:\n- %s",
		len(v.Problems), strings.Join(v.Problems, "\n- "))
}

// collectCodes walks a CourseReq tree collecting every CourseCode any
// PreCourse/CoCourse (graded or not) leaf references.
func collectCodes(req CourseReq, into map[CourseCode]bool) {
	switch req.Kind {
	case ReqAnd, ReqOr:
		for _, child := range req.Children {
			collectCodes(child, into)
		}
	case ReqPreCourse, ReqCoCourse, ReqPreCourseGrade, ReqCoCourseGrade:
		into[req.Code] = true
	}
}

// AllCourseCodes returns every CourseCode referenced anywhere in req,
// following And/Or, at PreCourse/CoCourse leaves (spec.md §4.B).
func AllCourseCodes(req CourseReq) []CourseCode {
	set := make(map[CourseCode]bool)
	collectCodes(req, set)
	out := make([]CourseCode, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Validate checks the catalog-wide invariant from spec.md §3: every code
// referenced by a prereq leaf either exists in Courses, or denotes a
// placeholder — a symbolic-suffix code with no prereq entry of its own and
// (if present at all) zero credits.
func (c Catalog) Validate() error {
	var problems []string

	for code, req := range c.Prereqs {
		if _, known := c.Courses[code]; !known && code.Suffix.Kind == SuffixNumber {
			problems = append(problems, fmt.Sprintf(
				"prereq entry for unknown numeric course code %s", code))
		}
		for _, ref := range AllCourseCodes(req) {
			if _, known := c.Courses[ref]; known {
				continue
			}
			if ref.Suffix.Kind == SuffixSymbolic {
				if _, hasPrereq := c.Prereqs[ref]; hasPrereq {
					problems = append(problems, fmt.Sprintf(
						"placeholder code %s (referenced by %s) has its own prereq entry, violating the placeholder invariant", ref, code))
				}
				continue
			}
			problems = append(problems, fmt.Sprintf(
				"%s references unknown course code %s", code, ref))
		}
	}

	for _, prog := range c.Programs {
		for _, sem := range prog.Semesters {
			for _, code := range sem {
				if _, known := c.Courses[code]; !known && code.Suffix.Kind == SuffixNumber {
					problems = append(problems, fmt.Sprintf(
						"program %q lists unknown course code %s", prog.Name, code))
				}
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
