package tensor

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// MatMul returns the matrix product a·b.
func MatMul(a, b *Dense) (*Dense, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, errors.Wrapf(ErrShape, "matmul of %v and %v", a.shape, b.shape)
	}
	if a.shape[1] != b.shape[0] {
		return nil, errors.Wrapf(ErrShape, "matmul of %v and %v", a.shape, b.shape)
	}
	return gemm(a.data, b.data, a.shape[0], a.shape[1], b.shape[1], []int{a.shape[0], b.shape[1]}), nil
}

// gemm multiplies the n×k row-major matrix a by the k×m matrix b and wraps
// the product in a tensor of the given shape.
func gemm(a, b []complex128, n, k, m int, shape []int) *Dense {
	c := Zeros(shape...)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1,
		cblas128.General{Rows: n, Cols: k, Stride: k, Data: a},
		cblas128.General{Rows: k, Cols: m, Stride: m, Data: b},
		0,
		cblas128.General{Rows: n, Cols: m, Stride: m, Data: c.data},
	)
	return c
}

// Kron returns the Kronecker product a⊗b of two matrices. The row index of
// the result is i*rows(b)+k for a's row i and b's row k, so a is the most
// significant factor.
func Kron(a, b *Dense) (*Dense, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, errors.Wrapf(ErrShape, "kron of %v and %v", a.shape, b.shape)
	}
	n1, m1 := a.shape[0], a.shape[1]
	n2, m2 := b.shape[0], b.shape[1]
	out := Zeros(n1*n2, m1*m2)
	cols := m1 * m2
	for i := 0; i < n1; i++ {
		for j := 0; j < m1; j++ {
			x := a.data[i*m1+j]
			if x == 0 {
				continue
			}
			for k := 0; k < n2; k++ {
				row := (i*n2 + k) * cols
				for l := 0; l < m2; l++ {
					out.data[row+j*m2+l] = x * b.data[k*m2+l]
				}
			}
		}
	}
	return out, nil
}

// KronAll folds Kron over factors from left to right.
func KronAll(factors ...*Dense) (*Dense, error) {
	if len(factors) == 0 {
		return nil, errors.Wrap(ErrShape, "kron of no factors")
	}
	acc := factors[0]
	for i, f := range factors[1:] {
		var err error
		if acc, err = Kron(acc, f); err != nil {
			return nil, errors.Wrapf(err, "factor %d", i+1)
		}
	}
	return acc, nil
}

// Contract sums over the axis pairs {a axis, b axis} in pairs. The result's
// axes are the remaining axes of a in order followed by the remaining axes of
// b in order. With no pairs it is the outer product.
func Contract(a, b *Dense, pairs [][2]int) (*Dense, error) {
	ca := make([]int, 0, len(pairs))
	cb := make([]int, 0, len(pairs))
	for _, p := range pairs {
		if p[0] < 0 || p[0] >= len(a.shape) || p[1] < 0 || p[1] >= len(b.shape) {
			return nil, errors.Wrapf(ErrShape, "axis pair %v for shapes %v and %v", p, a.shape, b.shape)
		}
		if containsInt(ca, p[0]) || containsInt(cb, p[1]) {
			return nil, errors.Wrapf(ErrShape, "axis repeated in %v", pairs)
		}
		if a.shape[p[0]] != b.shape[p[1]] {
			return nil, errors.Wrapf(ErrShape, "contracting dim %d with dim %d", a.shape[p[0]], b.shape[p[1]])
		}
		ca = append(ca, p[0])
		cb = append(cb, p[1])
	}

	freeA := make([]int, 0, len(a.shape)-len(ca))
	for ax := range a.shape {
		if !containsInt(ca, ax) {
			freeA = append(freeA, ax)
		}
	}
	freeB := make([]int, 0, len(b.shape)-len(cb))
	for ax := range b.shape {
		if !containsInt(cb, ax) {
			freeB = append(freeB, ax)
		}
	}

	// a -> (free, contracted), b -> (contracted, free), then one matrix product
	ap, err := a.Permute(append(slices.Clone(freeA), ca...)...)
	if err != nil {
		return nil, err
	}
	bp, err := b.Permute(append(slices.Clone(cb), freeB...)...)
	if err != nil {
		return nil, err
	}

	shape := make([]int, 0, len(freeA)+len(freeB))
	n, m, k := 1, 1, 1
	for _, ax := range freeA {
		shape = append(shape, a.shape[ax])
		n *= a.shape[ax]
	}
	for _, ax := range freeB {
		shape = append(shape, b.shape[ax])
		m *= b.shape[ax]
	}
	for _, ax := range ca {
		k *= a.shape[ax]
	}
	return gemm(ap.data, bp.data, n, k, m, shape), nil
}

// Outer returns the outer product; its axes are a's followed by b's.
func Outer(a, b *Dense) *Dense {
	out, err := Contract(a, b, nil)
	if err != nil {
		// no pairs means nothing to mismatch
		panic(err)
	}
	return out
}
