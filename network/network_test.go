package network

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeta1999/quantum-optimization/tensor"
)

func seqTensor(t *testing.T, shape ...int) *tensor.Dense {
	t.Helper()
	data := make([]complex128, tensor.Prod(shape))
	for i := range data {
		data[i] = complex(float64(i+1), float64(i%3))
	}
	d, err := tensor.New(data, shape...)
	require.NoError(t, err)
	return d
}

func TestConnectValidation(t *testing.T) {
	net := New()
	a := net.Add("a", seqTensor(t, 2, 3))
	b := net.Add("b", seqTensor(t, 3, 4))

	require.NoError(t, net.Connect(a, 1, b, 0))
	assert.False(t, a.Edge(1).Dangling())
	assert.Same(t, a.Edge(1), b.Edge(0))

	err := net.Connect(a, 1, b, 1)
	assert.True(t, errors.Is(err, ErrAlreadyBound))
	err = net.Connect(a, 0, b, 1)
	assert.True(t, errors.Is(err, ErrDimMismatch))
	err = net.Connect(a, 5, b, 1)
	assert.True(t, errors.Is(err, ErrNoAxis))
	err = net.Connect(a, 0, a, 0)
	assert.True(t, errors.Is(err, ErrAlreadyBound))

	other := New()
	c := other.Add("c", seqTensor(t, 2))
	assert.True(t, errors.Is(net.Connect(a, 0, c, 0), ErrForeignNode))

	dangling := net.Dangling()
	require.Len(t, dangling, 2)
	assert.Same(t, a.Edge(0), dangling[0])
	assert.Same(t, b.Edge(1), dangling[1])
}

func TestChainMatchesMatMul(t *testing.T) {
	a := seqTensor(t, 2, 3)
	b := seqTensor(t, 3, 4)
	c := seqTensor(t, 4, 5)

	net := New()
	na := net.Add("a", a)
	nb := net.Add("b", b)
	nc := net.Add("c", c)
	require.NoError(t, net.Connect(na, 1, nb, 0))
	require.NoError(t, net.Connect(nb, 1, nc, 0))

	got, plan, err := Contract(net, nil, []*Edge{na.Edge(0), nc.Edge(1)})
	require.NoError(t, err)
	assert.Len(t, plan.Steps, 2)

	ab, err := tensor.MatMul(a, b)
	require.NoError(t, err)
	want, err := tensor.MatMul(ab, c)
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(want, got, 1e-9))

	// same edges, reversed order, gives the transpose
	gotT, _, err := Contract(net, Greedy{}, []*Edge{nc.Edge(1), na.Edge(0)})
	require.NoError(t, err)
	wantT, err := want.Transpose()
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(wantT, gotT, 1e-9))
}

func TestGreedyPrefersSmallIntermediates(t *testing.T) {
	// a(2,8) - b(8,16) - v(16): b·v shrinks the working set more than a·b
	net := New()
	na := net.Add("a", seqTensor(t, 2, 8))
	nb := net.Add("b", seqTensor(t, 8, 16))
	nv := net.Add("v", seqTensor(t, 16))
	require.NoError(t, net.Connect(na, 1, nb, 0))
	require.NoError(t, net.Connect(nb, 1, nv, 0))

	plan, err := Greedy{}.Plan(net)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, Step{Left: 1, Right: 2, Result: 3, Shared: 1, Size: 8, Cost: 128}, plan.Steps[0])
	assert.Equal(t, Step{Left: 0, Right: 3, Result: 4, Shared: 1, Size: 2, Cost: 16}, plan.Steps[1])
	assert.Equal(t, float64(144), plan.Cost())
	assert.Equal(t, 8, plan.PeakSize())
	assert.Contains(t, plan.String(), "2 steps")

	again, err := Greedy{}.Plan(net)
	require.NoError(t, err)
	assert.Equal(t, plan, again)
}

func TestDisconnectedComponentsUseOuterProduct(t *testing.T) {
	a := seqTensor(t, 2)
	b := seqTensor(t, 3)

	net := New()
	na := net.Add("a", a)
	nb := net.Add("b", b)

	got, plan, err := Contract(net, nil, []*Edge{nb.Edge(0), na.Edge(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Steps[0].Shared)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, b.At(i)*a.At(j), got.At(i, j))
		}
	}
}

func TestMultiEdgeContractionToScalar(t *testing.T) {
	a := seqTensor(t, 2, 3)
	b := seqTensor(t, 3, 2)

	net := New()
	na := net.Add("a", a)
	nb := net.Add("b", b)
	require.NoError(t, net.Connect(na, 0, nb, 1))
	require.NoError(t, net.Connect(na, 1, nb, 0))

	got, plan, err := Contract(net, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Steps[0].Shared)
	assert.Equal(t, 0, got.Rank())

	var want complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			want += a.At(i, j) * b.At(j, i)
		}
	}
	assert.InDelta(t, real(want), real(got.At()), 1e-9)
	assert.InDelta(t, imag(want), imag(got.At()), 1e-9)
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	_, _, err := Contract(New(), nil, nil)
	assert.True(t, errors.Is(err, ErrEmpty))

	net := New()
	na := net.Add("a", seqTensor(t, 2, 2))
	nb := net.Add("b", seqTensor(t, 2, 2))
	require.NoError(t, net.Connect(na, 1, nb, 0))

	_, _, err = Contract(net, nil, []*Edge{na.Edge(0)})
	assert.True(t, errors.Is(err, ErrBadOutput))
	_, _, err = Contract(net, nil, []*Edge{na.Edge(0), na.Edge(0)})
	assert.True(t, errors.Is(err, ErrBadOutput))
	_, _, err = Contract(net, nil, []*Edge{na.Edge(0), na.Edge(1)})
	assert.True(t, errors.Is(err, ErrBadOutput))

	_, err = Evaluate(net, &Plan{Inputs: 2}, nil)
	assert.True(t, errors.Is(err, ErrBadPlan))
	_, err = Evaluate(net, &Plan{Inputs: 2, Steps: []Step{{Left: 0, Right: 0, Result: 2}}}, nil)
	assert.True(t, errors.Is(err, ErrBadPlan))
	_, err = Evaluate(net, &Plan{Inputs: 3}, nil)
	assert.True(t, errors.Is(err, ErrBadPlan))
}

func TestFreshNetworkGivesIndependentLegs(t *testing.T) {
	shared := seqTensor(t, 2, 2)

	first := New()
	a := first.Add("a", shared)
	b := first.Add("b", shared)
	require.NoError(t, first.Connect(a, 1, b, 0))

	// rewiring the same tensors in a new network is unaffected
	second := New()
	c := second.Add("a", shared)
	d := second.Add("b", shared)
	require.NoError(t, second.Connect(c, 0, d, 1))
	assert.True(t, c.Edge(1).Dangling())
	assert.True(t, a.Edge(0).Dangling())
	assert.True(t, b.Edge(1).Dangling())
	assert.Same(t, shared, c.Tensor())
}
