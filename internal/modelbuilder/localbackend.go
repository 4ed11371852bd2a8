package modelbuilder

import "time"

// relation tags which direction a linear constraint constrains its
// expression.
type relation int8

const (
	relLE relation = iota
	relGE
	relEQ
)

type linConstraint struct {
	expr Expr
	rel  relation
	rhs  int64
}

type varRec struct {
	lb, ub int64
	name   string
}

// LocalBackend is a bounded-domain branch-and-bound solver over boolean and
// small-range integer variables connected by linear (in)equalities. No
// CP-SAT or MILP binding was found anywhere in the retrieved reference
// corpus (see DESIGN.md), so this repo hand-rolls the minimum engine the
// model in model.go actually needs: branch over the boolean
// placement/chooser variables, and use interval (bounds-consistency)
// propagation to narrow — and in the common case fully determine — the
// auxiliary integer variables (per-semester credit sums, load-balance
// deviations) those booleans drive. It is not a general-purpose MILP
// solver and is not meant to be one.
type LocalBackend struct {
	vars        []varRec
	constraints []linConstraint
	objective   Expr

	lb, ub   []int64 // live working domains during search
	best     []int64
	bestObj  int64
	hasBest  bool
	deadline time.Time
	nodes    int
}

// NewLocalBackend constructs an empty backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

func (b *LocalBackend) NewBool() VarID { return b.NewBoolNamed("") }

func (b *LocalBackend) NewBoolNamed(name string) VarID {
	b.vars = append(b.vars, varRec{lb: 0, ub: 1, name: name})
	return VarID(len(b.vars) - 1)
}

func (b *LocalBackend) NewInt(lb, ub int64) VarID {
	b.vars = append(b.vars, varRec{lb: lb, ub: ub})
	return VarID(len(b.vars) - 1)
}

func (b *LocalBackend) AddLinearLE(expr Expr, rhs int64) {
	b.constraints = append(b.constraints, linConstraint{expr: expr, rel: relLE, rhs: rhs})
}

func (b *LocalBackend) AddLinearGE(expr Expr, rhs int64) {
	b.constraints = append(b.constraints, linConstraint{expr: expr, rel: relGE, rhs: rhs})
}

func (b *LocalBackend) AddLinearEQ(expr Expr, rhs int64) {
	b.constraints = append(b.constraints, linConstraint{expr: expr, rel: relEQ, rhs: rhs})
}

func (b *LocalBackend) AddAtMostOne(vars []VarID) {
	b.AddLinearLE(SumVars(vars), 1)
}

func (b *LocalBackend) AddExactlyOne(vars []VarID) {
	b.AddLinearEQ(SumVars(vars), 1)
}

// AddImplication encodes "a => b" over booleans as the linear inequality
// b - a >= 0.
func (b *LocalBackend) AddImplication(a, c VarID) {
	b.AddLinearGE(Expr{Terms: []Term{{Coeff: 1, Var: c}, {Coeff: -1, Var: a}}}, 0)
}

func (b *LocalBackend) Minimize(expr Expr) {
	b.objective = expr
}

// Solve runs branch-and-bound to completion or until timeLimitSeconds
// elapses (<= 0 means no limit). It returns StatusOptimal when the search
// tree was fully explored (or bounded by the objective) without being cut
// off by the time limit, StatusFeasible when cut off with a solution in
// hand, StatusInfeasible when the whole tree was exhausted with no
// solution, and StatusUnknown when cut off before any feasible solution
// was found.
func (b *LocalBackend) Solve(timeLimitSeconds float64) Status {
	n := len(b.vars)
	b.lb = make([]int64, n)
	b.ub = make([]int64, n)
	for i, v := range b.vars {
		b.lb[i] = v.lb
		b.ub[i] = v.ub
	}
	b.best = nil
	b.hasBest = false
	b.nodes = 0
	if timeLimitSeconds > 0 {
		b.deadline = time.Now().Add(time.Duration(timeLimitSeconds * float64(time.Second)))
	} else {
		b.deadline = time.Time{}
	}

	if !b.propagate() {
		return StatusInfeasible
	}
	cutoff := b.search()

	switch {
	case b.hasBest && !cutoff:
		return StatusOptimal
	case b.hasBest && cutoff:
		return StatusFeasible
	case !b.hasBest && !cutoff:
		return StatusInfeasible
	default:
		return StatusUnknown
	}
}

func (b *LocalBackend) timedOut() bool {
	return !b.deadline.IsZero() && time.Now().After(b.deadline)
}

// search runs depth-first branch-and-bound over b.lb/b.ub in place,
// restoring domains on backtrack. It returns true if it was cut off by the
// time limit before exhausting the tree.
func (b *LocalBackend) search() bool {
	if b.timedOut() {
		return true
	}
	b.nodes++

	if b.hasBest && b.lowerBound() >= b.bestObj {
		return false
	}

	branchVar := -1
	for i := range b.vars {
		if b.lb[i] < b.ub[i] {
			branchVar = i
			break
		}
	}
	if branchVar == -1 {
		b.recordSolution()
		return false
	}

	savedLB := append([]int64(nil), b.lb...)
	savedUB := append([]int64(nil), b.ub...)

	// Try the low branch first: for minimization this is the branch most
	// likely to extend the incumbent, since most model variables carry a
	// nonnegative objective coefficient.
	for _, val := range [2]int64{b.lb[branchVar], b.ub[branchVar]} {
		copy(b.lb, savedLB)
		copy(b.ub, savedUB)
		b.lb[branchVar] = val
		b.ub[branchVar] = val
		if b.propagate() {
			if b.search() {
				return true
			}
		}
		if b.timedOut() {
			return true
		}
	}
	copy(b.lb, savedLB)
	copy(b.ub, savedUB)
	return false
}

func (b *LocalBackend) recordSolution() {
	obj := b.objective.Const
	for _, t := range b.objective.Terms {
		obj += t.Coeff * b.lb[t.Var]
	}
	if !b.hasBest || obj < b.bestObj {
		b.hasBest = true
		b.bestObj = obj
		b.best = append([]int64(nil), b.lb...)
	}
}

// lowerBound returns the best achievable objective value given the current
// domains, used to prune subtrees that cannot beat the incumbent.
func (b *LocalBackend) lowerBound() int64 {
	lo := b.objective.Const
	for _, t := range b.objective.Terms {
		if t.Coeff >= 0 {
			lo += t.Coeff * b.lb[t.Var]
		} else {
			lo += t.Coeff * b.ub[t.Var]
		}
	}
	return lo
}

// propagate runs bounds-consistency propagation to a fixpoint, tightening
// b.lb/b.ub from every constraint in turn. It returns false as soon as any
// variable's domain becomes empty or any constraint is proven unsatisfiable
// given the current domains.
func (b *LocalBackend) propagate() bool {
	for {
		changed := false
		for _, c := range b.constraints {
			ok, ch := b.propagateOne(c)
			if !ok {
				return false
			}
			changed = changed || ch
		}
		if !changed {
			return true
		}
	}
}

// propagateOne tightens domains from a single constraint expr.Const +
// sum(coeff*var) {<=,>=,==} rhs, using interval arithmetic: for each term,
// bound that term's variable using the constraint's slack against the
// achievable range of every other term.
func (b *LocalBackend) propagateOne(c linConstraint) (ok bool, changed bool) {
	minSum, maxSum := c.expr.Const, c.expr.Const
	for _, t := range c.expr.Terms {
		lo, hi := b.termRange(t)
		minSum += lo
		maxSum += hi
	}

	switch c.rel {
	case relLE:
		if minSum > c.rhs {
			return false, false
		}
	case relGE:
		if maxSum < c.rhs {
			return false, false
		}
	case relEQ:
		if minSum > c.rhs || maxSum < c.rhs {
			return false, false
		}
	}

	for _, t := range c.expr.Terms {
		otherMin, otherMax := minSum-c.expr.Const, maxSum-c.expr.Const
		lo, hi := b.termRange(t)
		otherMin -= lo
		otherMax -= hi

		var newLB, newUB = b.lb[t.Var], b.ub[t.Var]
		hasUpper, hasLower := false, false
		var upperRHS, lowerRHS int64

		switch c.rel {
		case relLE:
			upperRHS = c.rhs
			hasUpper = true
		case relGE:
			lowerRHS = c.rhs
			hasLower = true
		case relEQ:
			upperRHS = c.rhs
			lowerRHS = c.rhs
			hasUpper = true
			hasLower = true
		}

		if hasUpper {
			// otherMin + coeff*x <= upperRHS + c.expr.Const-adjustment already
			// folded into upperRHS via c.rhs (expr.Const handled via minSum
			// bookkeeping above, so operate on raw rhs minus const).
			slack := upperRHS - c.expr.Const - otherMin
			if t.Coeff > 0 {
				bound := floorDiv(slack, t.Coeff)
				if bound < newUB {
					newUB = bound
				}
			} else if t.Coeff < 0 {
				bound := ceilDiv(slack, t.Coeff)
				if bound > newLB {
					newLB = bound
				}
			}
		}
		if hasLower {
			slack := lowerRHS - c.expr.Const - otherMax
			if t.Coeff > 0 {
				bound := ceilDiv(slack, t.Coeff)
				if bound > newLB {
					newLB = bound
				}
			} else if t.Coeff < 0 {
				bound := floorDiv(slack, t.Coeff)
				if bound < newUB {
					newUB = bound
				}
			}
		}

		if newLB > b.lb[t.Var] {
			b.lb[t.Var] = newLB
			changed = true
		}
		if newUB < b.ub[t.Var] {
			b.ub[t.Var] = newUB
			changed = true
		}
		if b.lb[t.Var] > b.ub[t.Var] {
			return false, changed
		}
	}
	return true, changed
}

func (b *LocalBackend) termRange(t Term) (lo, hi int64) {
	if t.Coeff >= 0 {
		return t.Coeff * b.lb[t.Var], t.Coeff * b.ub[t.Var]
	}
	return t.Coeff * b.ub[t.Var], t.Coeff * b.lb[t.Var]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

func (b *LocalBackend) ValueOf(v VarID) int64 {
	if b.best == nil {
		return 0
	}
	return b.best[v]
}

func (b *LocalBackend) BoolValue(v VarID) bool {
	return b.ValueOf(v) != 0
}
