package catalog

// GenEdReqKind tags the shape of a GenEdReq/ElectiveReq node. Both share an
// identical shape in the original source (spec.md §3: "ElectiveReq:
// identical shape to GenEdReq"), so this repo models them with one type,
// used under either name depending on context.
type GenEdReqKind int

const (
	// ReqSet: every listed course must appear (a conjunction).
	ReqSet GenEdReqKind = iota
	// ReqSetOpts: at least one full option set must appear (a disjunction
	// of conjunctions).
	ReqSetOpts
	// ReqCourseCount: at least Num distinct courses from Pool.
	ReqCourseCount
	// ReqCreditCount: at least Num credits' worth of courses from Pool.
	ReqCreditCount
)

// GenEdReq is shared by GenEd requirements and program ElectiveReq demands.
type GenEdReq struct {
	Kind    Kind
	Codes   []CourseCode   // ReqSet
	Options [][]CourseCode // ReqSetOpts
	Num     int            // ReqCourseCount, ReqCreditCount
	Pool    []CourseCode   // ReqCourseCount, ReqCreditCount
}

// Kind is an alias so GenEdReq reads naturally as GenEdReq{Kind: ReqSet, ...}
// without stuttering GenEdReqKind twice at call sites.
type Kind = GenEdReqKind

// AllPoolCodes returns every CourseCode this requirement could possibly be
// satisfied by, across whichever shape it is — used by the candidate-set
// closure (component D).
func (r GenEdReq) AllPoolCodes() []CourseCode {
	switch r.Kind {
	case ReqSet:
		return append([]CourseCode(nil), r.Codes...)
	case ReqSetOpts:
		var out []CourseCode
		for _, opt := range r.Options {
			out = append(out, opt...)
		}
		return out
	case ReqCourseCount, ReqCreditCount:
		return append([]CourseCode(nil), r.Pool...)
	default:
		return nil
	}
}

// GenEdCategory distinguishes the three GenEd variants, each carrying
// different overlap semantics (spec.md §3, §4.E-6/7/8).
type GenEdCategory int

const (
	CategoryCore GenEdCategory = iota
	CategoryFoundation
	CategorySkillAndPerspective
)

// GenEd is a single named general-education requirement.
type GenEd struct {
	Category GenEdCategory
	Name     string
	Req      GenEdReq
}

// Elective is a single named program elective demand.
type Elective struct {
	Name string
	Req  GenEdReq
}
