package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatchesUnknownPrereqReference(t *testing.T) {
	math2550 := NewCourseCode("MATH", 2550)
	ghost := NewCourseCode("PHYS", 9999)

	cat := Catalog{
		Courses: map[CourseCode]CourseRecord{math2550: {Name: "Calc III"}},
		Prereqs: map[CourseCode]CourseReq{math2550: PreCourse(ghost)},
	}
	err := cat.Validate()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Problems, 1)
}

func TestValidatePlaceholderWithoutOwnPrereqIsFine(t *testing.T) {
	csci2650 := NewCourseCode("CSCI", 2650)
	placeholder := NewSymbolicCode("CSCI", "PLACEMENT")

	cat := Catalog{
		Courses: map[CourseCode]CourseRecord{csci2650: {Name: "Data Structures"}},
		Prereqs: map[CourseCode]CourseReq{csci2650: PreCourse(placeholder)},
	}
	assert.NoError(t, cat.Validate())
}

func TestValidatePlaceholderWithOwnPrereqIsAViolation(t *testing.T) {
	csci2650 := NewCourseCode("CSCI", 2650)
	placeholder := NewSymbolicCode("CSCI", "PLACEMENT")
	math1300 := NewCourseCode("MATH", 1300)

	cat := Catalog{
		Courses: map[CourseCode]CourseRecord{csci2650: {}, math1300: {}},
		Prereqs: map[CourseCode]CourseReq{
			csci2650:    PreCourse(placeholder),
			placeholder: PreCourse(math1300),
		},
	}
	err := cat.Validate()
	require.Error(t, err)
}

func TestValidateCatchesUnknownProgramCourse(t *testing.T) {
	ghost := NewCourseCode("PHYS", 9999)
	cat := Catalog{
		Programs: []Program{{Name: "BS Physics", Semesters: []Semester{{ghost}}}},
		Courses:  map[CourseCode]CourseRecord{},
	}
	assert.Error(t, cat.Validate())
}
