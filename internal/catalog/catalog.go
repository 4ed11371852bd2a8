package catalog

import "fmt"

// Semester is an ordered sequence of course codes placed together. Order
// within a semester is preserved by Reduce (first-occurrence wins) but is
// not otherwise semantically meaningful until a deterministic decode step
// (component F) re-sorts it.
type Semester []CourseCode

// Program is a declared course of study: a canonical semester-by-semester
// listing plus named elective demands. Semesters[i] lists courses required
// no later than plan-semester i. AssocStems names department prefixes this
// program "owns", used for elective disambiguation by callers (spec.md §3).
type Program struct {
	Name       string
	Semesters  []Semester
	Electives  []Elective
	AssocStems []string
}

// Catalog is the full static description of a school year's offerings.
// Two catalogs with the same LowYear are considered equal (spec.md §3) —
// this is intentionally a coarse equality used for cache/version checks,
// not a deep structural comparison.
type Catalog struct {
	Programs []Program
	GenEds   []GenEd
	Prereqs  map[CourseCode]CourseReq
	Courses  map[CourseCode]CourseRecord
	LowYear  int
}

// Equal implements the catalog.LowYear-only equality from spec.md §3.
func (c Catalog) Equal(other Catalog) bool {
	return c.LowYear == other.LowYear
}

func (c Catalog) String() string {
	return fmt.Sprintf("<Catalog %d-%d>", c.LowYear, c.LowYear+1)
}

// ProgramByName looks up a declared program by name.
func (c Catalog) ProgramByName(name string) (Program, bool) {
	for _, p := range c.Programs {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

// PrereqFor returns the CourseReq attached to code, or NotRequired if the
// catalog has none recorded (spec.md §4.C: "catalog.prereqs.get(c,
// NotRequired)").
func (c Catalog) PrereqFor(code CourseCode) CourseReq {
	if req, ok := c.Prereqs[code]; ok {
		return req
	}
	return NotRequired
}
