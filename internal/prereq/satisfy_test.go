package prereq

import (
	"testing"

	"coursesched/internal/catalog"

	"github.com/stretchr/testify/assert"
)

// fakePlacement is a minimal Placement fake: a set of (code, semester) pairs
// plus an incoming bag, good enough to drive IsSatisfied in isolation.
type fakePlacement struct {
	incoming map[catalog.CourseCode]bool
	placedAt map[catalog.CourseCode]int
}

func (f fakePlacement) HasIncoming(code catalog.CourseCode) bool {
	return f.incoming[code]
}

func (f fakePlacement) HasBefore(code catalog.CourseCode, sem int) bool {
	s, ok := f.placedAt[code]
	return ok && s < sem
}

func (f fakePlacement) HasAtOrBefore(code catalog.CourseCode, sem int) bool {
	s, ok := f.placedAt[code]
	return ok && s <= sem
}

func TestIsSatisfiedPreCourse(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	req := catalog.PreCourse(math1300)

	p := fakePlacement{placedAt: map[catalog.CourseCode]int{math1300: 1}}
	assert.False(t, IsSatisfied(req, p, 1), "a prereq taken the same semester doesn't satisfy PreCourse")
	assert.True(t, IsSatisfied(req, p, 2))

	incoming := fakePlacement{incoming: map[catalog.CourseCode]bool{math1300: true}}
	assert.True(t, IsSatisfied(req, incoming, 1), "an incoming course always satisfies a PreCourse requirement")
}

func TestIsSatisfiedCoCourse(t *testing.T) {
	chem1100 := catalog.NewCourseCode("CHEM", 1100)
	req := catalog.CoCourse(chem1100)

	p := fakePlacement{placedAt: map[catalog.CourseCode]int{chem1100: 2}}
	assert.True(t, IsSatisfied(req, p, 2), "a corequisite may be taken the same semester")
	assert.False(t, IsSatisfied(req, p, 1))
}

func TestIsSatisfiedAnd(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	phys2010 := catalog.NewCourseCode("PHYS", 2010)
	req := catalog.And(catalog.PreCourse(math1300), catalog.PreCourse(phys2010))

	both := fakePlacement{placedAt: map[catalog.CourseCode]int{math1300: 1, phys2010: 1}}
	assert.True(t, IsSatisfied(req, both, 2))

	onlyOne := fakePlacement{placedAt: map[catalog.CourseCode]int{math1300: 1}}
	assert.False(t, IsSatisfied(req, onlyOne, 2))
}

func TestIsSatisfiedOr(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	math1310 := catalog.NewCourseCode("MATH", 1310)
	req := catalog.Or(catalog.PreCourse(math1300), catalog.PreCourse(math1310))

	neither := fakePlacement{}
	assert.False(t, IsSatisfied(req, neither, 2))

	either := fakePlacement{placedAt: map[catalog.CourseCode]int{math1310: 1}}
	assert.True(t, IsSatisfied(req, either, 2))
}

func TestIsSatisfiedJudgementLeavesAlwaysTrue(t *testing.T) {
	p := fakePlacement{}
	assert.True(t, IsSatisfied(catalog.NotRequired, p, 1))
	assert.True(t, IsSatisfied(catalog.StandingReq(catalog.Junior), p, 1))
}
