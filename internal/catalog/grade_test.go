package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeCompareLetters(t *testing.T) {
	aGrade := Grade{Letter: A}
	bGrade := Grade{Letter: B}
	assert.Equal(t, 1, aGrade.Compare(bGrade))
	assert.Equal(t, -1, bGrade.Compare(aGrade))
	assert.Equal(t, 0, aGrade.Compare(Grade{Letter: A}))
}

func TestGradeCompareQualifiers(t *testing.T) {
	plus := Grade{Letter: B, Qualifier: QualPlus}
	none := Grade{Letter: B, Qualifier: QualNone}
	minus := Grade{Letter: B, Qualifier: QualMinus}

	assert.Equal(t, 1, plus.Compare(none))
	assert.Equal(t, 1, none.Compare(minus))
	assert.Equal(t, 1, plus.Compare(minus))
	assert.Equal(t, -1, minus.Compare(plus))
}
