// Package modelbuilder compiles a schedule seed + catalog into a boolean
// placement model (spec.md §4.E) and exposes the tiny backend-adapter
// surface (spec.md §9 Design Notes) that keeps the constraint model itself
// decoupled from whatever engine actually solves it.
package modelbuilder

// VarID identifies a variable inside a Backend. It is opaque to callers —
// they thread it back through Term/AddImplication/ValueOf, never inspect it.
type VarID int

// Status is a solver outcome, matching the four CP-SAT-style statuses spec.md
// §4.F/§9 names.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	default:
		return "Unknown"
	}
}

// Term is one coefficient*variable addend of a linear expression.
type Term struct {
	Coeff int64
	Var   VarID
}

// Expr is a linear expression: a constant plus a sum of terms.
type Expr struct {
	Const int64
	Terms []Term
}

// Backend is the thin adapter spec.md §9 Design Notes calls for: "the model
// builder is the only component that touches the CP/IP backend API." Any
// engine — CP-SAT, a MILP solver, or (as here) a hand-rolled bounded
// branch-and-bound solver — can sit behind it without the model builder
// changing. See DESIGN.md for why this repo's Backend implementation is
// hand-rolled rather than built on a found third-party library.
type Backend interface {
	NewBool() VarID
	NewBoolNamed(name string) VarID
	NewInt(lb, ub int64) VarID

	AddLinearLE(expr Expr, rhs int64)
	AddLinearGE(expr Expr, rhs int64)
	AddLinearEQ(expr Expr, rhs int64)
	AddAtMostOne(vars []VarID)
	AddExactlyOne(vars []VarID)
	// AddImplication adds the constraint "if a then b" over two boolean
	// variables.
	AddImplication(a, b VarID)

	Minimize(expr Expr)

	// Solve runs the backend. TimeLimitSeconds <= 0 means no limit.
	Solve(timeLimitSeconds float64) Status

	// ValueOf returns a variable's value in the last Solve() response. For
	// a boolean variable this is 0 or 1.
	ValueOf(v VarID) int64
	BoolValue(v VarID) bool
}

// ExprFromConst builds a constant-only Expr.
func ExprFromConst(c int64) Expr { return Expr{Const: c} }

// ExprFromVar builds a single-variable Expr with coefficient 1.
func ExprFromVar(v VarID) Expr { return Expr{Terms: []Term{{Coeff: 1, Var: v}}} }

// Add returns a new Expr equal to e + other.
func (e Expr) Add(other Expr) Expr {
	out := Expr{Const: e.Const + other.Const}
	out.Terms = append(out.Terms, e.Terms...)
	out.Terms = append(out.Terms, other.Terms...)
	return out
}

// Sub returns a new Expr equal to e - other.
func (e Expr) Sub(other Expr) Expr {
	out := Expr{Const: e.Const - other.Const}
	out.Terms = append(out.Terms, e.Terms...)
	for _, t := range other.Terms {
		out.Terms = append(out.Terms, Term{Coeff: -t.Coeff, Var: t.Var})
	}
	return out
}

// Scale returns a new Expr equal to e * k.
func (e Expr) Scale(k int64) Expr {
	out := Expr{Const: e.Const * k}
	for _, t := range e.Terms {
		out.Terms = append(out.Terms, Term{Coeff: t.Coeff * k, Var: t.Var})
	}
	return out
}

// SumVars builds an Expr summing each listed variable with coefficient 1.
func SumVars(vars []VarID) Expr {
	e := Expr{}
	for _, v := range vars {
		e.Terms = append(e.Terms, Term{Coeff: 1, Var: v})
	}
	return e
}
