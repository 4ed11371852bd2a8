package schedule

import (
	"testing"

	"coursesched/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOverlaysProgramsElementwise(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	csci1100 := catalog.NewCourseCode("CSCI", 1100)
	engl1101 := catalog.NewCourseCode("ENGL", 1101)

	cat := catalog.Catalog{
		LowYear: 2024,
		Programs: []catalog.Program{
			{Name: "BS CS", Semesters: []catalog.Semester{{csci1100}, {math1300}}},
			{Name: "Gen Ed", Semesters: []catalog.Semester{{engl1101}}},
		},
	}

	s := Seed(cat, []string{"BS CS", "Gen Ed"}, nil)
	require.Len(t, s.Courses, 2)
	assert.ElementsMatch(t, []catalog.CourseCode{csci1100, engl1101}, s.Courses[0])
	assert.ElementsMatch(t, []catalog.CourseCode{math1300}, s.Courses[1])
	assert.Equal(t, []string{"BS CS", "Gen Ed"}, s.Programs)
}

func TestSeedIgnoresUnknownProgramNames(t *testing.T) {
	cat := catalog.Catalog{LowYear: 2024}
	s := Seed(cat, []string{"Nonexistent"}, nil)
	assert.Empty(t, s.Programs)
	assert.Empty(t, s.Courses)
}

func TestReduceDropsDuplicatesKeepingFirstOccurrence(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	csci1100 := catalog.NewCourseCode("CSCI", 1100)

	s := Schedule{
		Courses: []catalog.Semester{
			{math1300, csci1100},
			{math1300},
		},
	}
	s.Reduce()
	assert.Equal(t, catalog.Semester{math1300, csci1100}, s.Courses[0])
	assert.Empty(t, s.Courses[1], "a duplicate seen in an earlier semester is dropped")
}

func TestReduceIsIdempotent(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	s := Schedule{Courses: []catalog.Semester{{math1300, math1300}}}
	s.Reduce()
	first := append(catalog.Semester(nil), s.Courses[0]...)
	s.Reduce()
	assert.Equal(t, first, s.Courses[0])
}

func TestReduceDropsIncomingDuplicates(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	s := Schedule{
		Incoming: catalog.Semester{math1300},
		Courses:  []catalog.Semester{{math1300}},
	}
	s.Reduce()
	assert.Empty(t, s.Courses[0], "a course already satisfied by incoming is dropped too")
}

func TestHasBeforeAndHasAtOrBefore(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	s := Schedule{Courses: []catalog.Semester{{}, {math1300}, {}}}

	assert.False(t, s.HasBefore(math1300, 1))
	assert.True(t, s.HasBefore(math1300, 2))
	assert.True(t, s.HasAtOrBefore(math1300, 1))
	assert.False(t, s.HasAtOrBefore(math1300, 0))
}
