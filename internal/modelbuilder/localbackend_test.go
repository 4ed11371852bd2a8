package modelbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBackendExactlyOneMinimizesToOneTrue(t *testing.T) {
	b := NewLocalBackend()
	a, c, d := b.NewBool(), b.NewBool(), b.NewBool()
	b.AddExactlyOne([]VarID{a, c, d})
	b.Minimize(Expr{Terms: []Term{{Coeff: 1, Var: a}, {Coeff: 2, Var: c}, {Coeff: 3, Var: d}}})

	status := b.Solve(0)
	require.Equal(t, StatusOptimal, status)
	assert.True(t, b.BoolValue(a), "the cheapest variable should be the one picked true")
	assert.False(t, b.BoolValue(c))
	assert.False(t, b.BoolValue(d))
	assert.Equal(t, int64(1), b.ValueOf(a)+b.ValueOf(c)+b.ValueOf(d))
}

func TestLocalBackendImplicationForcesDependent(t *testing.T) {
	b := NewLocalBackend()
	a := b.NewBool()
	dependent := b.NewBool()
	b.AddLinearEQ(ExprFromVar(a), 1) // force a true
	b.AddImplication(a, dependent)

	status := b.Solve(0)
	require.Equal(t, StatusOptimal, status)
	assert.True(t, b.BoolValue(dependent), "a=>dependent with a forced true must force dependent true")
}

func TestLocalBackendAtMostOneAllowsZero(t *testing.T) {
	b := NewLocalBackend()
	a, c := b.NewBool(), b.NewBool()
	b.AddAtMostOne([]VarID{a, c})
	b.Minimize(Expr{})

	status := b.Solve(0)
	require.Equal(t, StatusOptimal, status)
	assert.Equal(t, int64(0), b.ValueOf(a))
	assert.Equal(t, int64(0), b.ValueOf(c))
}

func TestLocalBackendDetectsInfeasibility(t *testing.T) {
	b := NewLocalBackend()
	a := b.NewBool()
	b.AddLinearEQ(ExprFromVar(a), 1)
	b.AddLinearEQ(ExprFromVar(a), 0)

	assert.Equal(t, StatusInfeasible, b.Solve(0))
}

func TestLocalBackendBoundedIntSumConstraint(t *testing.T) {
	b := NewLocalBackend()
	x := b.NewInt(0, 10)
	y := b.NewInt(0, 10)
	b.AddLinearEQ(Expr{Terms: []Term{{Coeff: 1, Var: x}, {Coeff: 1, Var: y}}}, 7)
	b.Minimize(ExprFromVar(x))

	status := b.Solve(0)
	require.Equal(t, StatusOptimal, status)
	assert.Equal(t, int64(0), b.ValueOf(x))
	assert.Equal(t, int64(7), b.ValueOf(y))
}

func TestLocalBackendAbsoluteValueReformulation(t *testing.T) {
	// D >= L - mu, D >= mu - L, minimize D, with L fixed at 9 and mu = 6.
	b := NewLocalBackend()
	l := b.NewInt(0, 20)
	d := b.NewInt(0, 20)
	b.AddLinearEQ(ExprFromVar(l), 9)
	mu := int64(6)
	b.AddLinearGE(Expr{Terms: []Term{{Coeff: 1, Var: d}, {Coeff: -1, Var: l}}}, -mu)
	b.AddLinearGE(Expr{Terms: []Term{{Coeff: 1, Var: d}, {Coeff: 1, Var: l}}}, mu)
	b.Minimize(ExprFromVar(d))

	status := b.Solve(0)
	require.Equal(t, StatusOptimal, status)
	assert.Equal(t, int64(3), b.ValueOf(d))
}
