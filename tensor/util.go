package tensor

// Prod returns the number of elements of a tensor with the given shape.
// Example: Prod([]int{2, 2, 2}) = 8, Prod(nil) = 1
func Prod(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Strides returns the row-major strides of shape.
// Example: Strides([]int{2, 3, 4}) = [12 4 1]
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= shape[i]
	}
	return strides
}

// Qubits returns the shape (2, 2, ..., 2) with n entries.
func Qubits(n int) []int {
	shape := make([]int, n)
	for i := range shape {
		shape[i] = 2
	}
	return shape
}

// Pow2 returns 2^n for n >= 0.
func Pow2(n int) int {
	return 1 << n
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func absComplex(c complex128) float64 {
	re, im := real(c), imag(c)
	if re < 0 {
		re = -re
	}
	if im < 0 {
		im = -im
	}
	// max-norm is enough for tolerance checks
	if re > im {
		return re
	}
	return im
}
