// Package solverpipeline runs the two-stage lexicographic optimization
// spec.md §4.F describes over internal/modelbuilder's model, and decodes
// the result back into a schedule.Schedule.
package solverpipeline

import (
	"sort"

	"coursesched/internal/catalog"
	"coursesched/internal/modelbuilder"
	"coursesched/internal/schedule"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Limits bundles the knobs the two stages need.
type Limits struct {
	MaxCreditsPerSemester int
	TimeLimitSeconds      float64
}

// Result is what a successful two-stage solve produces, kept around for
// component H (internal/transparency) to read chooser values back out of.
type Result struct {
	Stage1Model   *modelbuilder.Model
	Stage2Model   *modelbuilder.Model
	TotalCredits  int64
	LoadDeviation int64
}

// ErrInfeasible is returned (wrapped with cause context) when stage 1
// finds no feasible schedule at all — spec.md §7's Infeasible error kind.
var ErrInfeasible = errors.New("no feasible schedule")

// ErrSolverBackend is returned (wrapped) when a stage's backend reports an
// unexpected status — spec.md §7's SolverBackend error kind.
var ErrSolverBackend = errors.New("solver backend returned an unexpected status")

// Run executes stage 1 (minimize total scheduled credits) then stage 2
// (fix that minimum, minimize per-semester load spread), and overwrites
// s.Courses with the decoded stage-2 solution. s.Courses must already be
// sized to its final semester count (the seed's NumSemesters); candidates
// is the closure (internal/closure) computed against that seed.
func Run(s *schedule.Schedule, candidates []catalog.CourseCode, limits Limits, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mbLimits := modelbuilder.Limits{MaxCreditsPerSemester: limits.MaxCreditsPerSemester}

	stage1Backend := modelbuilder.NewLocalBackend()
	stage1 := modelbuilder.BuildModel(stage1Backend, s, candidates, mbLimits, log)
	stage1Backend.Minimize(stage1.TotalCredits)

	status := stage1Backend.Solve(limits.TimeLimitSeconds)
	log.Info("stage 1 solved", zap.String("stage", "1"), zap.String("status", status.String()))
	switch status {
	case modelbuilder.StatusOptimal, modelbuilder.StatusFeasible:
	case modelbuilder.StatusInfeasible:
		return nil, errors.Wrap(ErrInfeasible, "stage 1: no placement satisfies all hard constraints")
	default:
		return nil, errors.Wrap(ErrSolverBackend, "stage 1: backend returned Unknown (timeout)")
	}
	cStar := evalExpr(stage1.TotalCredits, stage1Backend)

	// Stage 2 rebuilds the model from scratch (fresh variables), per
	// spec.md §4.F, so stage 1's branch-and-bound search state cannot leak
	// into stage 2's.
	stage2Backend := modelbuilder.NewLocalBackend()
	stage2 := modelbuilder.BuildModel(stage2Backend, s, candidates, mbLimits, log)
	stage2Backend.AddLinearEQ(stage2.TotalCredits, cStar)

	dVars := buildLoadBalanceObjective(stage2Backend, stage2, cStar)

	status2 := stage2Backend.Solve(limits.TimeLimitSeconds)
	log.Info("stage 2 solved", zap.String("stage", "2"), zap.String("status", status2.String()))

	switch status2 {
	case modelbuilder.StatusOptimal, modelbuilder.StatusFeasible:
		decode(s, stage2, candidates)
		return &Result{
			Stage1Model:   stage1,
			Stage2Model:   stage2,
			TotalCredits:  cStar,
			LoadDeviation: sumVals(dVars, stage2Backend),
		}, nil

	default:
		// spec.md §4.F failure semantics: if stage 2 is infeasible under the
		// C* equality, return stage 1's solution unchanged rather than
		// failing the whole run.
		log.Warn("stage 2 infeasible or unknown under equality constraint; falling back to stage 1 solution")
		decode(s, stage1, candidates)
		return &Result{Stage1Model: stage1, Stage2Model: stage1, TotalCredits: cStar}, nil
	}
}

// buildLoadBalanceObjective introduces L[s] and D[s] >= |L[s]-mean| per
// semester s >= 1, and sets the stage-2 minimization objective to
// Σ D[s] — spec.md §4.F.
func buildLoadBalanceObjective(b modelbuilder.Backend, m *modelbuilder.Model, cStar int64) []modelbuilder.VarID {
	numPlan := m.NumSemesters - 1
	if numPlan <= 0 {
		b.Minimize(modelbuilder.ExprFromConst(0))
		return nil
	}
	mean := cStar / int64(numPlan)

	var dVars []modelbuilder.VarID
	var objTerms []modelbuilder.Term
	maxCredit := maxPossibleSemesterCredit(m)

	for sem := 1; sem < m.NumSemesters; sem++ {
		loadExpr := semesterCreditExpr(m, sem)
		l := b.NewInt(0, maxCredit)
		b.AddLinearEQ(modelbuilder.ExprFromVar(l).Sub(loadExpr), 0)

		d := b.NewInt(0, maxCredit)
		// D[s] >= L[s] - mean  =>  D[s] - L[s] >= -mean
		b.AddLinearGE(modelbuilder.ExprFromVar(d).Sub(modelbuilder.ExprFromVar(l)), -mean)
		// D[s] >= mean - L[s]  =>  D[s] + L[s] >= mean
		b.AddLinearGE(modelbuilder.ExprFromVar(d).Add(modelbuilder.ExprFromVar(l)), mean)

		dVars = append(dVars, d)
		objTerms = append(objTerms, modelbuilder.Term{Coeff: 1, Var: d})
	}
	b.Minimize(modelbuilder.Expr{Terms: objTerms})
	return dVars
}

func semesterCreditExpr(m *modelbuilder.Model, sem int) modelbuilder.Expr {
	var terms []modelbuilder.Term
	for code, vars := range m.PlaceVar {
		credits := int64(m.Catalog.Courses[code].CreditsOrZero())
		if credits == 0 || sem >= len(vars) {
			continue
		}
		terms = append(terms, modelbuilder.Term{Coeff: credits, Var: vars[sem]})
	}
	return modelbuilder.Expr{Terms: terms}
}

func maxPossibleSemesterCredit(m *modelbuilder.Model) int64 {
	var total int64
	for code := range m.PlaceVar {
		total += int64(m.Catalog.Courses[code].CreditsOrZero())
	}
	return total
}

func evalExpr(e modelbuilder.Expr, b modelbuilder.Backend) int64 {
	total := e.Const
	for _, t := range e.Terms {
		total += t.Coeff * b.ValueOf(t.Var)
	}
	return total
}

func sumVals(vars []modelbuilder.VarID, b modelbuilder.Backend) int64 {
	var total int64
	for _, v := range vars {
		total += b.ValueOf(v)
	}
	return total
}

// decode overwrites s.Courses from the solved model, with a deterministic
// stem-then-suffix within-semester ordering for reproducibility (spec.md
// §4.F "Decode").
func decode(s *schedule.Schedule, m *modelbuilder.Model, candidates []catalog.CourseCode) {
	out := make([]catalog.Semester, m.NumSemesters)
	for sem := 0; sem < m.NumSemesters; sem++ {
		var placed catalog.Semester
		for _, code := range candidates {
			if m.PlacedAt(code, sem) {
				placed = append(placed, code)
			}
		}
		sort.Slice(placed, func(i, j int) bool { return placed[i].Less(placed[j]) })
		out[sem] = placed
	}
	// Semester 0 is the incoming slot; it is never written into Courses.
	if len(out) > 0 {
		s.Courses = out[1:]
	} else {
		s.Courses = nil
	}
}
