package catalog

// Letter is the letter-grade component of a Grade.
type Letter int

const (
	A Letter = iota
	B
	C
	D
	F
)

// Qualifier is the +/- modifier on a letter grade.
type Qualifier int

const (
	QualNone Qualifier = iota
	QualPlus
	QualMinus
)

// Grade is a total-ordered student grade: A > B > C > D > F, and within a
// letter, + > none > -. The scheduler never needs to evaluate grades itself
// (a graded prereq leaf is evaluated exactly like its ungraded counterpart
// and its grade is never checked — grade checking is a student-transcript
// concern external to the core), but the
// type is part of the catalog schema because CourseReq's graded leaves carry
// one.
type Grade struct {
	Letter    Letter
	Qualifier Qualifier
}

// Compare returns -1, 0, or 1 as g is less than, equal to, or greater than
// other, under the total order described above.
func (g Grade) Compare(other Grade) int {
	if g.Letter != other.Letter {
		// Lower Letter value means a better grade (A=0 is best).
		if g.Letter < other.Letter {
			return 1
		}
		return -1
	}
	if g.Qualifier == other.Qualifier {
		return 0
	}
	rank := func(q Qualifier) int {
		switch q {
		case QualPlus:
			return 2
		case QualNone:
			return 1
		default:
			return 0
		}
	}
	if rank(g.Qualifier) > rank(other.Qualifier) {
		return 1
	}
	return -1
}
