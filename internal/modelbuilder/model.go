// Package modelbuilder compiles a Schedule seed, a catalog, and a candidate
// set (internal/closure) into the boolean placement model spec.md §4.E
// describes, against the Backend adapter in backend.go.
package modelbuilder

import (
	"fmt"
	"sort"

	"coursesched/internal/catalog"
	"coursesched/internal/schedule"

	"go.uber.org/zap"
)

// Limits carries the per-semester credit cap the model enforces. The
// caller (internal/driver) fills this from internal/config.
type Limits struct {
	MaxCreditsPerSemester int
}

// ChooserKind tags what an auxiliary chooser variable represents, so
// component H (internal/transparency) can interpret ValueOf(Var) without
// re-deriving the model structure.
type ChooserKind int

const (
	ChooserOrBranch ChooserKind = iota
	ChooserGenEdOption
	ChooserElectiveOption
	ChooserFoundationUse
	ChooserSkillPerspectiveUse
)

// ChooserRecord documents one auxiliary boolean the builder introduced.
type ChooserRecord struct {
	Var       VarID
	Kind      ChooserKind
	Course    catalog.CourseCode // the course whose placement this chooser concerns, when applicable
	Sem       int                // -1 when not semester-specific
	Label     string             // GenEd/elective/program name, when applicable
	OptionIdx int
	Members   []catalog.CourseCode
}

// Model is a fully-built constraint model: the backend holding every
// variable and constraint, plus the bookkeeping a solver pipeline and the
// transparency pass need to read results back out.
type Model struct {
	Backend      Backend
	Catalog      catalog.Catalog
	Candidates   []catalog.CourseCode
	NumSemesters int
	PlaceVar     map[catalog.CourseCode][]VarID // [code][sem] -> VarID
	Required     map[catalog.CourseCode]bool
	Choosers     []ChooserRecord
	TotalCredits Expr // objective expression: total scheduled credits, sem >= 1

	log *zap.Logger
}

// PlacedAt reports whether, in the last Solve() of m.Backend, code was
// placed in semester s.
func (m *Model) PlacedAt(code catalog.CourseCode, s int) bool {
	vars, ok := m.PlaceVar[code]
	if !ok || s < 0 || s >= len(vars) {
		return false
	}
	return m.Backend.BoolValue(vars[s])
}

// build is the mutable state threaded through model construction.
type build struct {
	backend      Backend
	cat          catalog.Catalog
	numSemesters int
	placeVar     map[catalog.CourseCode][]VarID
	required     map[catalog.CourseCode]bool
	choosers     []ChooserRecord
	log          *zap.Logger
}

// BuildModel emits every constraint family spec.md §4.E lists, over the
// given candidate set, for a schedule seed with s.Courses already sized to
// its final NumSemesters. Grounded on
// original_source/src/model/{context,courses,semester,prereqs,geneds}.rs.
func BuildModel(backend Backend, s *schedule.Schedule, candidates []catalog.CourseCode, limits Limits, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	b := &build{
		backend: backend,
		cat:     s.Catalog,
		// +1 for the model's reserved index-0 incoming slot (spec.md §4.E);
		// real plan semesters occupy indices 1..len(s.Courses), mapping
		// directly onto s.Courses[0..len(s.Courses)-1].
		numSemesters: len(s.Courses) + 1,
		placeVar:     make(map[catalog.CourseCode][]VarID, len(candidates)),
		required:     requiredSet(s),
		log:          log,
	}

	incoming := make(map[catalog.CourseCode]bool, len(s.Incoming))
	for _, c := range s.Incoming {
		incoming[c] = true
	}

	sorted := append([]catalog.CourseCode(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	for _, code := range sorted {
		vars := make([]VarID, b.numSemesters)
		for sem := 0; sem < b.numSemesters; sem++ {
			if sem == 0 && !incoming[code] {
				vars[sem] = backend.NewInt(0, 0) // pinned: s=0 is incoming-only
				continue
			}
			vars[sem] = backend.NewBoolNamed(fmt.Sprintf("%s@%d", code, sem))
		}
		b.placeVar[code] = vars
	}

	b.emitCardinality(incoming)
	b.emitIncomingPin(incoming)
	b.emitTermOfferingMasks()
	b.emitCreditBound(limits)
	b.emitPrereqConstraints(incoming)
	for _, ge := range b.cat.GenEds {
		b.emitGenEdReq(ge.Req, ge.Name, ChooserGenEdOption)
	}
	b.emitFoundationNonOverlap()
	b.emitSkillPerspectiveCap()
	b.emitProgramElectives(s)

	total := b.totalCreditsExpr()

	log.Debug("model built",
		zap.Int("candidates", len(sorted)),
		zap.Int("semesters", b.numSemesters),
		zap.Int("choosers", len(b.choosers)))

	return &Model{
		Backend:      backend,
		Catalog:      s.Catalog,
		Candidates:   sorted,
		NumSemesters: b.numSemesters,
		PlaceVar:     b.placeVar,
		Required:     b.required,
		Choosers:     b.choosers,
		TotalCredits: total,
		log:          log,
	}
}

// requiredSet computes spec.md §4.E(1)'s "courses[i].required": incoming
// codes, plus every code directly listed in a declared program's
// Semesters (the catalog's canonical listing, not the seed's possibly
// reduced Courses).
func requiredSet(s *schedule.Schedule) map[catalog.CourseCode]bool {
	out := make(map[catalog.CourseCode]bool)
	for _, c := range s.Incoming {
		out[c] = true
	}
	for _, name := range s.Programs {
		prog, ok := s.Catalog.ProgramByName(name)
		if !ok {
			continue
		}
		for _, sem := range prog.Semesters {
			for _, c := range sem {
				out[c] = true
			}
		}
	}
	return out
}

// boundBy emits "v <= expr" as v - expr <= 0.
func (b *build) boundBy(v VarID, expr Expr) {
	b.backend.AddLinearLE(ExprFromVar(v).Sub(expr), 0)
}

func (b *build) varsFor(code catalog.CourseCode) ([]VarID, bool) {
	v, ok := b.placeVar[code]
	return v, ok
}

func (b *build) sumAllSems(code catalog.CourseCode) Expr {
	vars, ok := b.varsFor(code)
	if !ok {
		return ExprFromConst(0)
	}
	return SumVars(vars)
}

// 1. Cardinality per course.
func (b *build) emitCardinality(incoming map[catalog.CourseCode]bool) {
	for code, vars := range b.placeVar {
		if b.required[code] {
			b.backend.AddExactlyOne(vars)
		} else {
			b.backend.AddAtMostOne(vars)
		}
	}
}

// 2. Incoming pin.
func (b *build) emitIncomingPin(incoming map[catalog.CourseCode]bool) {
	for code := range incoming {
		vars, ok := b.varsFor(code)
		if !ok || len(vars) == 0 {
			continue
		}
		b.backend.AddLinearEQ(ExprFromVar(vars[0]), 1)
	}
}

// 3. Term offering mask, s >= 1 (s == 0 is already pinned/zeroed above).
func (b *build) emitTermOfferingMasks() {
	for code, vars := range b.placeVar {
		rec, ok := b.cat.Courses[code]
		if !ok {
			continue
		}
		for sem := 1; sem < len(vars); sem++ {
			if rec.Offering.AllowedAt(sem) {
				continue
			}
			b.backend.AddLinearEQ(ExprFromVar(vars[sem]), 0)
		}
		if rec.Offering == catalog.Summer {
			// Summer is forbidden at every index, including 0, for
			// non-incoming candidates (already zeroed); for an incoming
			// Summer code there is nothing to forbid, it's already placed.
		}
	}
}

// 4. Per-semester credit bound, s >= 1.
func (b *build) emitCreditBound(limits Limits) {
	if limits.MaxCreditsPerSemester <= 0 {
		return
	}
	for sem := 1; sem < b.numSemesters; sem++ {
		var terms []Term
		for code, vars := range b.placeVar {
			credits := int64(b.cat.Courses[code].CreditsOrZero())
			if credits == 0 {
				continue
			}
			terms = append(terms, Term{Coeff: credits, Var: vars[sem]})
		}
		b.backend.AddLinearLE(Expr{Terms: terms}, int64(limits.MaxCreditsPerSemester))
	}
}

// totalCreditsExpr builds Σ_{i,s>=1} credits(i)*x[i,s].
func (b *build) totalCreditsExpr() Expr {
	var terms []Term
	for code, vars := range b.placeVar {
		credits := int64(b.cat.Courses[code].CreditsOrZero())
		if credits == 0 {
			continue
		}
		for sem := 1; sem < len(vars); sem++ {
			terms = append(terms, Term{Coeff: credits, Var: vars[sem]})
		}
	}
	return Expr{Terms: terms}
}

// 5. Prereq / coreq constraints, skipped for incoming codes.
func (b *build) emitPrereqConstraints(incoming map[catalog.CourseCode]bool) {
	for code, vars := range b.placeVar {
		if incoming[code] {
			continue
		}
		req := b.cat.PrereqFor(code)
		if req.Kind == catalog.ReqNotRequired {
			continue
		}
		for sem := 0; sem < len(vars); sem++ {
			if sem == 0 {
				continue // s=0 already forced to 0 for non-incoming codes
			}
			if req.Kind == catalog.ReqAnd {
				for _, child := range req.Children {
					b.boundBy(vars[sem], b.satisfactionExpr(child, sem, code))
				}
				continue
			}
			b.boundBy(vars[sem], b.satisfactionExpr(req, sem, code))
		}
	}
}

// satisfactionExpr returns an Expr valued in [0,1] (given the model's
// 0/1 variables) representing whether req holds at plan-semester sem. For
// leaf kinds this is a direct linear expression; for And/Or it introduces
// an auxiliary boolean (spec.md §4.E-5/§9: "arena-allocate nodes ... do
// not use inheritance; evaluation is a fold"). owner is the course this
// requirement is attached to, recorded on Or choosers for transparency.
func (b *build) satisfactionExpr(req catalog.CourseReq, sem int, owner catalog.CourseCode) Expr {
	switch req.Kind {
	case catalog.ReqPreCourse, catalog.ReqPreCourseGrade:
		vars, ok := b.varsFor(req.Code)
		if !ok {
			return ExprFromConst(0)
		}
		var terms []VarID
		for t := 0; t < sem && t < len(vars); t++ {
			terms = append(terms, vars[t])
		}
		return SumVars(terms)

	case catalog.ReqCoCourse, catalog.ReqCoCourseGrade:
		vars, ok := b.varsFor(req.Code)
		if !ok {
			return ExprFromConst(0)
		}
		var terms []VarID
		for t := 0; t <= sem && t < len(vars); t++ {
			terms = append(terms, vars[t])
		}
		return SumVars(terms)

	case catalog.ReqProgram, catalog.ReqInstructor, catalog.ReqStanding, catalog.ReqNotRequired:
		return ExprFromConst(1)

	case catalog.ReqAnd:
		aux := b.backend.NewBool()
		for _, child := range req.Children {
			b.boundBy(aux, b.satisfactionExpr(child, sem, owner))
		}
		return ExprFromVar(aux)

	case catalog.ReqOr:
		var choosers []VarID
		for idx, child := range req.Children {
			chooser := b.backend.NewBoolNamed(fmt.Sprintf("or@%s@%d@%d", owner, sem, idx))
			b.boundBy(chooser, b.satisfactionExpr(child, sem, owner))
			choosers = append(choosers, chooser)
			b.choosers = append(b.choosers, ChooserRecord{
				Var: chooser, Kind: ChooserOrBranch, Course: owner, Sem: sem,
				OptionIdx: idx, Members: childCourseCodes(child),
			})
		}
		aux := b.backend.NewBool()
		b.boundBy(aux, SumVars(choosers))
		return ExprFromVar(aux)

	default:
		return ExprFromConst(1)
	}
}

func childCourseCodes(req catalog.CourseReq) []catalog.CourseCode {
	if req.IsCourseLeaf() {
		return []catalog.CourseCode{req.Code}
	}
	return nil
}

// emitGenEdReq emits spec.md §4.E-6 (and, under a different label, §4.E-9
// for program electives, which share GenEdReq's shape).
func (b *build) emitGenEdReq(req catalog.GenEdReq, label string, kind ChooserKind) {
	switch req.Kind {
	case catalog.ReqSet:
		for _, c := range req.Codes {
			b.backend.AddLinearGE(b.sumAllSems(c), 1)
		}

	case catalog.ReqSetOpts:
		var choosers []VarID
		for idx, opt := range req.Options {
			chooser := b.backend.NewBoolNamed(fmt.Sprintf("opt@%s@%d", label, idx))
			for _, c := range opt {
				b.boundBy(chooser, b.sumAllSems(c))
			}
			choosers = append(choosers, chooser)
			b.choosers = append(b.choosers, ChooserRecord{
				Var: chooser, Kind: kind, Label: label, Sem: -1, OptionIdx: idx, Members: opt,
			})
		}
		b.backend.AddLinearGE(SumVars(choosers), 1)

	case catalog.ReqCourseCount:
		var terms []Term
		for _, c := range req.Pool {
			terms = append(terms, sumAllSemsTerms(b, c)...)
		}
		b.backend.AddLinearGE(Expr{Terms: terms}, int64(req.Num))

	case catalog.ReqCreditCount:
		var terms []Term
		for _, c := range req.Pool {
			credits := int64(b.cat.Courses[c].CreditsOrZero())
			vars, ok := b.varsFor(c)
			if !ok || credits == 0 {
				continue
			}
			for _, v := range vars {
				terms = append(terms, Term{Coeff: credits, Var: v})
			}
		}
		b.backend.AddLinearGE(Expr{Terms: terms}, int64(req.Num))
	}
}

func sumAllSemsTerms(b *build, code catalog.CourseCode) []Term {
	vars, ok := b.varsFor(code)
	if !ok {
		return nil
	}
	var terms []Term
	for _, v := range vars {
		terms = append(terms, Term{Coeff: 1, Var: v})
	}
	return terms
}

// emitFoundationNonOverlap implements spec.md §4.E-7 with the strictness
// policy SPEC_FULL.md supplement #3 resolves: a required course eligible
// for at least one Foundation must satisfy exactly one (equality-1); an
// optional/elective course eligible for one or more is capped at one
// (at-most-1).
func (b *build) emitFoundationNonOverlap() {
	byCourse := make(map[catalog.CourseCode][]catalog.GenEd)
	for _, ge := range b.cat.GenEds {
		if ge.Category != catalog.CategoryFoundation {
			continue
		}
		for _, c := range ge.Req.AllPoolCodes() {
			byCourse[c] = append(byCourse[c], ge)
		}
	}
	for code, geneds := range byCourse {
		if len(geneds) == 0 {
			continue
		}
		var uses []VarID
		for _, ge := range geneds {
			u := b.backend.NewBoolNamed(fmt.Sprintf("found@%s@%s", code, ge.Name))
			b.boundBy(u, b.sumAllSems(code))
			uses = append(uses, u)
			b.choosers = append(b.choosers, ChooserRecord{
				Var: u, Kind: ChooserFoundationUse, Course: code, Sem: -1, Label: ge.Name,
			})
		}
		if b.required[code] {
			b.backend.AddExactlyOne(uses)
		} else {
			b.backend.AddAtMostOne(uses)
		}
	}
}

// emitSkillPerspectiveCap implements spec.md §4.E-8: a course may count
// toward at most three Skills-&-Perspectives.
func (b *build) emitSkillPerspectiveCap() {
	byCourse := make(map[catalog.CourseCode][]catalog.GenEd)
	for _, ge := range b.cat.GenEds {
		if ge.Category != catalog.CategorySkillAndPerspective {
			continue
		}
		for _, c := range ge.Req.AllPoolCodes() {
			byCourse[c] = append(byCourse[c], ge)
		}
	}
	for code, geneds := range byCourse {
		var uses []VarID
		for _, ge := range geneds {
			u := b.backend.NewBoolNamed(fmt.Sprintf("sp@%s@%s", code, ge.Name))
			b.boundBy(u, b.sumAllSems(code))
			uses = append(uses, u)
			b.choosers = append(b.choosers, ChooserRecord{
				Var: u, Kind: ChooserSkillPerspectiveUse, Course: code, Sem: -1, Label: ge.Name,
			})
		}
		b.backend.AddLinearLE(SumVars(uses), 3)
	}
}

// emitProgramElectives implements spec.md §4.E-9.
func (b *build) emitProgramElectives(s *schedule.Schedule) {
	for _, name := range s.Programs {
		prog, ok := s.Catalog.ProgramByName(name)
		if !ok {
			continue
		}
		for _, elective := range prog.Electives {
			label := fmt.Sprintf("%s/%s", prog.Name, elective.Name)
			b.emitGenEdReq(elective.Req, label, ChooserElectiveOption)
		}
	}
}
