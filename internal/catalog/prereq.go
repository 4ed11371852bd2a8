package catalog

// ReqKind tags the variant of a CourseReq node. CourseReq is a tagged union
// rather than an interface hierarchy (spec.md §9: "do not use inheritance";
// arena-allocate nodes or use tagged unions") — evaluation and emission are
// both folds over this tag.
type ReqKind int

const (
	ReqAnd ReqKind = iota
	ReqOr
	ReqPreCourse
	ReqPreCourseGrade
	ReqCoCourse
	ReqCoCourseGrade
	ReqProgram
	ReqInstructor
	ReqStanding
	// ReqNotRequired is the identity leaf — always satisfied. The original
	// source spells this CourseReq::None in one file and
	// CourseReq::NotRequired in another (spec.md §9 Open Question); this
	// repo unifies them under one name.
	ReqNotRequired
)

// ClassStanding is a non-course predicate leaf's standing requirement.
type ClassStanding int

const (
	Freshman ClassStanding = iota
	Sophomore
	Junior
	Senior
)

// CourseReq is a recursive sum-of-products prerequisite/corequisite
// expression. Leaves reference a CourseCode (PreCourse/CoCourse, optionally
// graded) or a non-course predicate (Program/Instructor/Standing) that the
// scheduler treats as always satisfiable, since it models a human-judgement
// gate rather than a placement fact — spec.md §3.
type CourseReq struct {
	Kind     ReqKind
	Children []CourseReq // And, Or
	Code     CourseCode  // PreCourse, CoCourse and their graded variants
	Grade    Grade       // PreCourseGrade, CoCourseGrade
	Program  string      // Program
	Standing ClassStanding
}

// NotRequired is the trivially-satisfied leaf.
var NotRequired = CourseReq{Kind: ReqNotRequired}

func And(children ...CourseReq) CourseReq { return CourseReq{Kind: ReqAnd, Children: children} }
func Or(children ...CourseReq) CourseReq  { return CourseReq{Kind: ReqOr, Children: children} }

func PreCourse(code CourseCode) CourseReq { return CourseReq{Kind: ReqPreCourse, Code: code} }
func CoCourse(code CourseCode) CourseReq  { return CourseReq{Kind: ReqCoCourse, Code: code} }

func PreCourseGrade(code CourseCode, g Grade) CourseReq {
	return CourseReq{Kind: ReqPreCourseGrade, Code: code, Grade: g}
}

func CoCourseGrade(code CourseCode, g Grade) CourseReq {
	return CourseReq{Kind: ReqCoCourseGrade, Code: code, Grade: g}
}

func ProgramReq(name string) CourseReq { return CourseReq{Kind: ReqProgram, Program: name} }

var Instructor = CourseReq{Kind: ReqInstructor}

func StandingReq(s ClassStanding) CourseReq { return CourseReq{Kind: ReqStanding, Standing: s} }

// IsCourseLeaf reports whether this node directly references a CourseCode,
// i.e. is one of the four Pre/CoCourse variants.
func (r CourseReq) IsCourseLeaf() bool {
	switch r.Kind {
	case ReqPreCourse, ReqPreCourseGrade, ReqCoCourse, ReqCoCourseGrade:
		return true
	default:
		return false
	}
}

// IsEarlierOnly reports whether satisfying this leaf requires a strictly
// earlier semester (PreCourse family) as opposed to same-or-earlier
// (CoCourse family).
func (r CourseReq) IsEarlierOnly() bool {
	return r.Kind == ReqPreCourse || r.Kind == ReqPreCourseGrade
}
