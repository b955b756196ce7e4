package tensor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(float64(i), 0)
	}
	return out
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := New(seq(5), 2, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape))

	_, err = New(nil, 0)
	require.Error(t, err)
}

func TestNewCopiesData(t *testing.T) {
	data := seq(4)
	d, err := New(data, 2, 2)
	require.NoError(t, err)
	data[0] = 99
	assert.Equal(t, complex128(0), d.At(0, 0))
}

func TestReshapeInfersDimension(t *testing.T) {
	d, err := New(seq(24), 2, 3, 4)
	require.NoError(t, err)

	r, err := d.Reshape(6, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4}, r.Shape())
	assert.Equal(t, complex128(23), r.At(5, 3))

	_, err = d.Reshape(5, -1)
	assert.True(t, errors.Is(err, ErrShape))
	_, err = d.Reshape(-1, -1)
	assert.Error(t, err)
}

func TestPermute(t *testing.T) {
	d, err := New(seq(24), 2, 3, 4)
	require.NoError(t, err)

	p, err := d.Permute(2, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, p.Shape())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				assert.Equal(t, d.At(i, j, k), p.At(k, i, j))
			}
		}
	}

	same, err := d.Permute(0, 1, 2)
	require.NoError(t, err)
	assert.Same(t, d, same)

	_, err = d.Permute(0, 0, 1)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestMatMul(t *testing.T) {
	a := FromRows([][]complex128{{1, 2}, {3, 4}})
	b := FromRows([][]complex128{{0, 1i}, {1, 0}})

	c, err := MatMul(a, b)
	require.NoError(t, err)
	want := FromRows([][]complex128{{2, 1i}, {4, 3i}})
	assert.True(t, AllClose(want, c, 1e-12), "got %v", c)

	_, err = MatMul(a, FromRows([][]complex128{{1, 2, 3}}))
	assert.True(t, errors.Is(err, ErrShape))
}

func TestKron(t *testing.T) {
	x := FromRows([][]complex128{{0, 1}, {1, 0}})
	z := FromRows([][]complex128{{1, 0}, {0, -1}})

	xz, err := Kron(x, z)
	require.NoError(t, err)
	want := FromRows([][]complex128{
		{0, 0, 1, 0},
		{0, 0, 0, -1},
		{1, 0, 0, 0},
		{0, -1, 0, 0},
	})
	assert.True(t, AllClose(want, xz, 0), "got %v", xz)

	all, err := KronAll(x, Identity(2), z)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8}, all.Shape())
	// |1,0,0> -> |0,0,0> with phase +1, |1,0,1> -> |0,0,1> with phase -1
	assert.Equal(t, complex128(1), all.At(0, 4))
	assert.Equal(t, complex128(-1), all.At(1, 5))

	_, err = KronAll()
	assert.Error(t, err)
}

func TestContractMatchesMatMul(t *testing.T) {
	a, err := New(seq(6), 2, 3)
	require.NoError(t, err)
	b, err := New(seq(12), 3, 4)
	require.NoError(t, err)

	want, err := MatMul(a, b)
	require.NoError(t, err)
	got, err := Contract(a, b, [][2]int{{1, 0}})
	require.NoError(t, err)
	assert.True(t, AllClose(want, got, 1e-12))

	// contracting the other way round puts b's free axis first
	bt, err := b.Transpose()
	require.NoError(t, err)
	got, err = Contract(bt, a, [][2]int{{1, 1}})
	require.NoError(t, err)
	wantT, err := want.Transpose()
	require.NoError(t, err)
	assert.True(t, AllClose(wantT, got, 1e-12))
}

func TestContractMultipleAxes(t *testing.T) {
	a, err := New(seq(24), 2, 3, 4)
	require.NoError(t, err)
	b, err := New(seq(12), 4, 3)
	require.NoError(t, err)

	got, err := Contract(a, b, [][2]int{{2, 0}, {1, 1}})
	require.NoError(t, err)
	require.Equal(t, []int{2}, got.Shape())
	for i := 0; i < 2; i++ {
		var sum complex128
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				sum += a.At(i, j, k) * b.At(k, j)
			}
		}
		assert.Equal(t, sum, got.At(i))
	}

	_, err = Contract(a, b, [][2]int{{1, 0}})
	assert.True(t, errors.Is(err, ErrShape))
	_, err = Contract(a, b, [][2]int{{2, 0}, {2, 1}})
	assert.True(t, errors.Is(err, ErrShape))
}

func TestOuterOfScalars(t *testing.T) {
	a := FromRows([][]complex128{{1, 2}})
	b, err := New([]complex128{3, 4, 5}, 3)
	require.NoError(t, err)

	o := Outer(a, b)
	assert.Equal(t, []int{1, 2, 3}, o.Shape())
	assert.Equal(t, complex128(10), o.At(0, 1, 2))

	two, err := New([]complex128{2i})
	require.NoError(t, err)
	three, err := New([]complex128{3})
	require.NoError(t, err)
	s := Outer(two, three)
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, complex128(6i), s.At())
}

func TestConjScaleAdd(t *testing.T) {
	a := FromRows([][]complex128{{1 + 1i, 2}})
	sum, err := a.Conj().Add(a)
	require.NoError(t, err)
	assert.True(t, AllClose(FromRows([][]complex128{{2, 4}}), sum, 0))
	assert.Equal(t, complex128(-1+1i), a.Scale(1i).At(0, 0))

	_, err = a.Add(Identity(2))
	assert.True(t, errors.Is(err, ErrShape))
}

func TestAtPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { Identity(2).At(2, 0) })
	assert.Panics(t, func() { Identity(2).At(0) })
	assert.Panics(t, func() { FromRows([][]complex128{{1}, {1, 2}}) })
}
