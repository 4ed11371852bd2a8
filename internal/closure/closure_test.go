package closure

import (
	"testing"

	"coursesched/internal/catalog"
	"coursesched/internal/schedule"

	"github.com/stretchr/testify/assert"
)

func TestComputeFollowsPrereqChainTransitively(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	math1310 := catalog.NewCourseCode("MATH", 1310)
	math2550 := catalog.NewCourseCode("MATH", 2550)

	cat := catalog.Catalog{
		Prereqs: map[catalog.CourseCode]catalog.CourseReq{
			math2550: catalog.PreCourse(math1310),
			math1310: catalog.PreCourse(math1300),
		},
	}
	s := &schedule.Schedule{Catalog: cat, Courses: []catalog.Semester{{math2550}}}

	out := Compute(s, nil)
	assert.ElementsMatch(t, []catalog.CourseCode{math2550, math1310, math1300}, out)
}

func TestComputeIncludesGenEdAndElectivePools(t *testing.T) {
	engl1101 := catalog.NewCourseCode("ENGL", 1101)
	csci4800 := catalog.NewCourseCode("CSCI", 4800)
	csci4810 := catalog.NewCourseCode("CSCI", 4810)

	cat := catalog.Catalog{
		GenEds: []catalog.GenEd{
			{Name: "Writing", Req: catalog.GenEdReq{Kind: catalog.ReqSet, Codes: []catalog.CourseCode{engl1101}}},
		},
		Programs: []catalog.Program{
			{Name: "BS CS", Electives: []catalog.Elective{
				{Name: "Upper Div", Req: catalog.GenEdReq{Kind: catalog.ReqCourseCount, Num: 1, Pool: []catalog.CourseCode{csci4800, csci4810}}},
			}},
		},
	}
	s := &schedule.Schedule{Catalog: cat, Programs: []string{"BS CS"}}

	out := Compute(s, nil)
	assert.ElementsMatch(t, []catalog.CourseCode{engl1101, csci4800, csci4810}, out)
}

func TestComputeDoesNotDuplicateEntries(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	s := &schedule.Schedule{
		Incoming: catalog.Semester{math1300},
		Courses:  []catalog.Semester{{math1300}},
	}
	out := Compute(s, nil)
	assert.Equal(t, []catalog.CourseCode{math1300}, out)
}
