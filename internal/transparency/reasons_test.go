package transparency

import (
	"testing"

	"coursesched/internal/catalog"
	"coursesched/internal/modelbuilder"
	"coursesched/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trcr(n int) *int { return &n }

func buildAndSolve(t *testing.T, cat catalog.Catalog, programs []string, incoming catalog.Semester) (*schedule.Schedule, *modelbuilder.Model) {
	t.Helper()
	s := schedule.Seed(cat, programs, incoming)
	if len(s.Courses) == 0 {
		s.Courses = []catalog.Semester{{}}
	}
	var candidates []catalog.CourseCode
	for c := range cat.Courses {
		candidates = append(candidates, c)
	}
	backend := modelbuilder.NewLocalBackend()
	m := modelbuilder.BuildModel(backend, &s, candidates, modelbuilder.Limits{MaxCreditsPerSemester: 18}, nil)
	backend.Minimize(m.TotalCredits)
	require.Equal(t, modelbuilder.StatusOptimal, backend.Solve(0))

	out := make([]catalog.Semester, m.NumSemesters)
	for sem := 0; sem < m.NumSemesters; sem++ {
		for _, c := range candidates {
			if m.PlacedAt(c, sem) {
				out[sem] = append(out[sem], c)
			}
		}
	}
	s.Courses = out[1:]
	return &s, m
}

func TestDeriveAttributesProgramRequired(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	cat := catalog.Catalog{
		Courses: map[catalog.CourseCode]catalog.CourseRecord{
			math1300: {Credits: trcr(4), Offering: catalog.Both},
		},
		Programs: []catalog.Program{
			{Name: "BS CS", Semesters: []catalog.Semester{{math1300}}},
		},
	}
	s, m := buildAndSolve(t, cat, []string{"BS CS"}, nil)

	reasons := Derive(s, m)
	require.NotEmpty(t, reasons[math1300])
	assert.Equal(t, ProgramRequired, reasons[math1300][0].Kind)
	assert.Equal(t, "BS CS", reasons[math1300][0].Program)
}

func TestDeriveAttributesFoundationToAtMostOne(t *testing.T) {
	phil1000 := catalog.NewCourseCode("PHIL", 1000)
	cat := catalog.Catalog{
		Courses: map[catalog.CourseCode]catalog.CourseRecord{
			phil1000: {Credits: trcr(3), Offering: catalog.Both},
		},
		GenEds: []catalog.GenEd{
			{Category: catalog.CategoryFoundation, Name: "Ethical Reasoning",
				Req: catalog.GenEdReq{Kind: catalog.ReqSet, Codes: []catalog.CourseCode{phil1000}}},
			{Category: catalog.CategoryFoundation, Name: "Critical Thinking",
				Req: catalog.GenEdReq{Kind: catalog.ReqSet, Codes: []catalog.CourseCode{phil1000}}},
		},
	}
	s, m := buildAndSolve(t, cat, nil, nil)

	reasons := Derive(s, m)
	foundationCount := 0
	for _, r := range reasons[phil1000] {
		if r.Kind == Foundation {
			foundationCount++
		}
	}
	assert.LessOrEqual(t, foundationCount, 1, "a course must never be attributed to more than one Foundation")
}

func TestDeriveAttributesCoreStructurally(t *testing.T) {
	engl1101 := catalog.NewCourseCode("ENGL", 1101)
	cat := catalog.Catalog{
		Courses: map[catalog.CourseCode]catalog.CourseRecord{
			engl1101: {Credits: trcr(3), Offering: catalog.Both},
		},
		GenEds: []catalog.GenEd{
			{Category: catalog.CategoryCore, Name: "Writing",
				Req: catalog.GenEdReq{Kind: catalog.ReqSet, Codes: []catalog.CourseCode{engl1101}}},
		},
	}
	s, m := buildAndSolve(t, cat, nil, nil)

	reasons := Derive(s, m)
	require.NotEmpty(t, reasons[engl1101])
	assert.Equal(t, Core, reasons[engl1101][0].Kind)
	assert.Equal(t, "Writing", reasons[engl1101][0].GenEdName)
}
