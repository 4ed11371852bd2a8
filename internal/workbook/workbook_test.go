package workbook

import (
	"path/filepath"
	"testing"

	"coursesched/internal/catalog"
	"coursesched/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wcr(n int) *int { return &n }

func TestSaveFileVersionEncoding(t *testing.T) {
	assert.Equal(t, uint32(1_000_000), SaveFileVersion())
}

func TestWriteThenReadRoundTripsTheSchedule(t *testing.T) {
	math1300 := catalog.NewCourseCode("MATH", 1300)
	csci1100 := catalog.NewCourseCode("CSCI", 1100)

	cat := catalog.Catalog{
		LowYear: 2024,
		Courses: map[catalog.CourseCode]catalog.CourseRecord{
			math1300: {Name: "Calc I", Credits: wcr(4), Offering: catalog.Both},
			csci1100: {Name: "Intro CS", Credits: wcr(3), Offering: catalog.Both},
		},
		Programs: []catalog.Program{
			{Name: "BS CS", Semesters: []catalog.Semester{{csci1100}, {math1300}}},
		},
	}

	s := schedule.Schedule{
		Catalog:  cat,
		Programs: []string{"BS CS"},
		Courses:  []catalog.Semester{{csci1100}, {math1300}},
	}

	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, Write(path, s))

	got, tables, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, s.Programs, got.Programs)
	assert.Equal(t, s.Courses, got.Courses)
	assert.True(t, cat.Equal(got.Catalog))

	progTable, ok := tables["Prog_BS CS"]
	require.True(t, ok, "the per-program sheet should round-trip as a table")
	assert.Len(t, progTable, 2)
}

func TestDecodeBlobRejectsFutureVersion(t *testing.T) {
	blob, err := encodeBlob(schedule.Schedule{})
	require.NoError(t, err)

	// Corrupt the version field to be one past what this reader supports.
	future := append([]byte(nil), blob...)
	future[len(magic)+3] = future[len(magic)+3] + 1

	_, err = decodeBlob(future)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationVersion)
}

func TestDecodeBlobRejectsGarbage(t *testing.T) {
	_, err := decodeBlob([]byte("not a save blob at all"))
	assert.Error(t, err)
}
