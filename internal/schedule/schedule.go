// Package schedule holds the Schedule value under construction — the seed
// courses, the incoming bag, and the catalog reference — plus its pure
// lifecycle operations (spec.md §3, §4.C). Solving (turning a seed Schedule
// into a validated one) lives in internal/solverpipeline, orchestrated by
// internal/driver, so this package stays free of any dependency on the
// constraint-model machinery.
package schedule

import (
	"coursesched/internal/catalog"
	"coursesched/internal/gened"
)

// Schedule is the plan under construction: an ordered list of semesters,
// the declared program names, the incoming (already-completed) bag, and a
// reference to the catalog it was built from.
type Schedule struct {
	Courses  []catalog.Semester
	Programs []string
	Incoming catalog.Semester
	Catalog  catalog.Catalog
}

// Seed builds a Schedule by overlaying the declared programs' Semesters
// element-wise (union, preserving position) — spec.md §3's "seeded"
// lifecycle step, grounded on original_source/src/schedule.rs's
// generate_schedule.
func Seed(cat catalog.Catalog, programNames []string, incoming catalog.Semester) Schedule {
	var combined []catalog.Semester
	var declared []string
	for _, name := range programNames {
		prog, ok := cat.ProgramByName(name)
		if !ok {
			continue
		}
		declared = append(declared, prog.Name)
		for idx, sem := range prog.Semesters {
			if idx < len(combined) {
				combined[idx] = append(combined[idx], sem...)
			} else {
				copySem := append(catalog.Semester(nil), sem...)
				combined = append(combined, copySem)
			}
		}
	}
	return Schedule{
		Courses:  combined,
		Programs: declared,
		Incoming: append(catalog.Semester(nil), incoming...),
		Catalog:  cat,
	}
}

// Reduce scans Courses left-to-right, dropping any code that is in Incoming
// or was already seen (in an earlier semester or earlier in the same one),
// preserving relative order within each semester — an idempotent operation
// (Reduce∘Reduce = Reduce).
func (s *Schedule) Reduce() {
	seen := make(map[catalog.CourseCode]bool)
	for _, c := range s.Incoming {
		seen[c] = true
	}
	for i, sem := range s.Courses {
		kept := sem[:0:0]
		for _, code := range sem {
			if seen[code] {
				continue
			}
			seen[code] = true
			kept = append(kept, code)
		}
		s.Courses[i] = kept
	}
}

// HasIncoming implements prereq.Placement.
func (s *Schedule) HasIncoming(code catalog.CourseCode) bool {
	for _, c := range s.Incoming {
		if c == code {
			return true
		}
	}
	return false
}

// HasBefore implements prereq.Placement.
func (s *Schedule) HasBefore(code catalog.CourseCode, sem int) bool {
	for i := 0; i < sem && i < len(s.Courses); i++ {
		for _, c := range s.Courses[i] {
			if c == code {
				return true
			}
		}
	}
	return false
}

// HasAtOrBefore implements prereq.Placement.
func (s *Schedule) HasAtOrBefore(code catalog.CourseCode, sem int) bool {
	limit := sem + 1
	if limit > len(s.Courses) {
		limit = len(s.Courses)
	}
	for i := 0; i < limit; i++ {
		for _, c := range s.Courses[i] {
			if c == code {
				return true
			}
		}
	}
	return false
}

// allPlacedCodes returns the set of every code appearing anywhere in
// Courses (not Incoming).
func (s *Schedule) allPlacedCodes() map[catalog.CourseCode]bool {
	out := make(map[catalog.CourseCode]bool)
	for _, sem := range s.Courses {
		for _, c := range sem {
			out[c] = true
		}
	}
	return out
}

func creditLookup(cat catalog.Catalog) gened.CreditLookup {
	return func(c catalog.CourseCode) int {
		return cat.Courses[c].CreditsOrZero()
	}
}
