// Package tensor implements dense complex128 tensors with the handful of
// operations a tree tensor network needs: reshaping, axis permutation,
// Kronecker and matrix products, and pairwise contraction over axis pairs.
//
// A Dense is immutable. Every operation returns a new tensor (or shares the
// backing array when nothing changes), so tensors can be cached and shared
// between networks freely.
package tensor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// ErrShape is returned when the shapes of operands are incompatible.
var ErrShape = errors.New("tensor shape mismatch")

// Dense is a row-major complex128 tensor.
type Dense struct {
	shape []int
	data  []complex128
}

// New copies data into a tensor of the given shape.
func New(data []complex128, shape ...int) (*Dense, error) {
	if Prod(shape) != len(data) {
		return nil, errors.Wrapf(ErrShape, "%d values for shape %v", len(data), shape)
	}
	for _, d := range shape {
		if d <= 0 {
			return nil, errors.Wrapf(ErrShape, "non-positive dimension in %v", shape)
		}
	}
	return &Dense{shape: slices.Clone(shape), data: slices.Clone(data)}, nil
}

// Zeros returns a zero tensor.
func Zeros(shape ...int) *Dense {
	return &Dense{shape: slices.Clone(shape), data: make([]complex128, Prod(shape))}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Dense {
	t := Zeros(n, n)
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}

// FromRows builds a matrix from its rows. It panics on ragged input.
func FromRows(rows [][]complex128) *Dense {
	if len(rows) == 0 {
		panic("tensor: no rows")
	}
	cols := len(rows[0])
	t := Zeros(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("tensor: row %d has %d entries, want %d", i, len(row), cols))
		}
		copy(t.data[i*cols:], row)
	}
	return t
}

// Shape returns a copy of the tensor's shape.
func (t *Dense) Shape() []int {
	return slices.Clone(t.shape)
}

// Rank is the number of axes.
func (t *Dense) Rank() int {
	return len(t.shape)
}

// Len is the number of elements.
func (t *Dense) Len() int {
	return len(t.data)
}

// Data returns a copy of the row-major elements.
func (t *Dense) Data() []complex128 {
	return slices.Clone(t.data)
}

// At returns the element at idx. It panics when idx does not address an
// element, like slice indexing does.
func (t *Dense) At(idx ...int) complex128 {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for ax, i := range idx {
		if i < 0 || i >= t.shape[ax] {
			panic(fmt.Sprintf("tensor: index %d out of range on axis %d (dim %d)", i, ax, t.shape[ax]))
		}
		off = off*t.shape[ax] + i
	}
	return t.data[off]
}

// Reshape returns the tensor viewed with a new shape. At most one dimension
// may be -1, in which case it is inferred.
func (t *Dense) Reshape(shape ...int) (*Dense, error) {
	shape = slices.Clone(shape)
	infer := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d <= 0:
			return nil, errors.Wrapf(ErrShape, "bad reshape %v", shape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if len(t.data)%known != 0 {
			return nil, errors.Wrapf(ErrShape, "cannot infer %v from %d elements", shape, len(t.data))
		}
		shape[infer] = len(t.data) / known
	}
	if Prod(shape) != len(t.data) {
		return nil, errors.Wrapf(ErrShape, "reshape %v to %v", t.shape, shape)
	}
	return &Dense{shape: shape, data: t.data}, nil
}

// Permute reorders the axes: axis i of the result is axis axes[i] of t.
func (t *Dense) Permute(axes ...int) (*Dense, error) {
	r := len(t.shape)
	if len(axes) != r {
		return nil, errors.Wrapf(ErrShape, "permutation %v for rank %d", axes, r)
	}
	seen := make([]bool, r)
	trivial := true
	for i, ax := range axes {
		if ax < 0 || ax >= r || seen[ax] {
			return nil, errors.Wrapf(ErrShape, "invalid permutation %v", axes)
		}
		seen[ax] = true
		if ax != i {
			trivial = false
		}
	}
	if trivial {
		return t, nil
	}

	src := Strides(t.shape)
	shape := make([]int, r)
	step := make([]int, r)
	for i, ax := range axes {
		shape[i] = t.shape[ax]
		step[i] = src[ax]
	}

	out := make([]complex128, len(t.data))
	idx := make([]int, r)
	off := 0
	for i := range out {
		out[i] = t.data[off]
		// odometer over the destination index, tracking the source offset
		for ax := r - 1; ax >= 0; ax-- {
			idx[ax]++
			off += step[ax]
			if idx[ax] < shape[ax] {
				break
			}
			off -= step[ax] * shape[ax]
			idx[ax] = 0
		}
	}
	return &Dense{shape: shape, data: out}, nil
}

// Transpose swaps the axes of a matrix.
func (t *Dense) Transpose() (*Dense, error) {
	if len(t.shape) != 2 {
		return nil, errors.Wrapf(ErrShape, "transpose of rank %d tensor", len(t.shape))
	}
	return t.Permute(1, 0)
}

// Scale multiplies every element by c.
func (t *Dense) Scale(c complex128) *Dense {
	out := make([]complex128, len(t.data))
	for i, v := range t.data {
		out[i] = c * v
	}
	return &Dense{shape: slices.Clone(t.shape), data: out}
}

// Conj returns the elementwise complex conjugate.
func (t *Dense) Conj() *Dense {
	out := make([]complex128, len(t.data))
	for i, v := range t.data {
		out[i] = complex(real(v), -imag(v))
	}
	return &Dense{shape: slices.Clone(t.shape), data: out}
}

// Add returns t + o.
func (t *Dense) Add(o *Dense) (*Dense, error) {
	if !slices.Equal(t.shape, o.shape) {
		return nil, errors.Wrapf(ErrShape, "add %v and %v", t.shape, o.shape)
	}
	out := make([]complex128, len(t.data))
	for i, v := range t.data {
		out[i] = v + o.data[i]
	}
	return &Dense{shape: slices.Clone(t.shape), data: out}, nil
}

// AllClose reports whether a and b have the same shape and every pair of
// elements differs by at most tol in both the real and imaginary part.
func AllClose(a, b *Dense, tol float64) bool {
	if !slices.Equal(a.shape, b.shape) {
		return false
	}
	for i, v := range a.data {
		if absComplex(v-b.data[i]) > tol {
			return false
		}
	}
	return true
}

func (t *Dense) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dense%v", t.shape)
	if len(t.data) <= 16 {
		fmt.Fprintf(&sb, "%v", t.data)
	}
	return sb.String()
}
