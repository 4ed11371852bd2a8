package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONParsesCourseAndPrereqKeys(t *testing.T) {
	doc := `{
		"low_year": 2024,
		"courses": {
			"MATH-1300": {"Name": "Calc I", "Credits": 4, "Offering": 2},
			"MATH-1310": {"Name": "Calc II", "Credits": 4, "Offering": 2}
		},
		"prereqs": {
			"MATH-1310": {"Kind": 2, "Code": {"Stem": "MATH", "Suffix": {"Kind": 0, "Number": 1300}}}
		}
	}`

	cat, err := LoadJSON(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2024, cat.LowYear)

	math1300 := NewCourseCode("MATH", 1300)
	math1310 := NewCourseCode("MATH", 1310)
	require.Contains(t, cat.Courses, math1300)
	assert.Equal(t, "Calc I", cat.Courses[math1300].Name)

	req := cat.PrereqFor(math1310)
	assert.Equal(t, ReqPreCourse, req.Kind)
	assert.Equal(t, math1300, req.Code)
}

func TestLoadJSONRejectsMalformedCourseKey(t *testing.T) {
	doc := `{"low_year": 2024, "courses": {"nodash": {"Name": "x"}}}`
	_, err := LoadJSON(strings.NewReader(doc))
	assert.Error(t, err)
}
