package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCodeString(t *testing.T) {
	c := NewCourseCode("math", 1300)
	assert.Equal(t, "MATH-1300", c.String())

	sym := NewSymbolicCode("csci", "comp")
	assert.Equal(t, "CSCI-COMP", sym.String())
}

func TestSuffixCompare(t *testing.T) {
	lo, hi := NumberSuffix(100), NumberSuffix(200)
	cmp, ok := lo.Compare(hi)
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	_, ok = lo.Compare(SymbolSuffix("COMP"))
	assert.False(t, ok, "a numeric suffix is incomparable with a symbolic one")
}

func TestCourseCodeLess(t *testing.T) {
	a := NewCourseCode("MATH", 1300)
	b := NewCourseCode("MATH", 1350)
	c := NewSymbolicCode("MATH", "PLACEMENT")
	d := NewCourseCode("CSCI", 1140)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Less(c), "numeric suffixes sort before symbolic ones for the same stem")
	assert.True(t, d.Less(a), "stems compare first")
}

func TestParseCourseCode(t *testing.T) {
	code, err := ParseCourseCode("MATH-1300")
	require.NoError(t, err)
	assert.Equal(t, NewCourseCode("MATH", 1300), code)

	code, err = ParseCourseCode("CSCI-COMP")
	require.NoError(t, err)
	assert.Equal(t, NewSymbolicCode("CSCI", "COMP"), code)

	_, err = ParseCourseCode("nodash")
	assert.Error(t, err)
}
