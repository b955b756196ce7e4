package qaoa

// slot addresses one child leg in a node's stack: the tensor at index
// tensor, on its input side when in is set and on its output side
// otherwise.
type slot struct {
	tensor int
	in     bool
}

// leg returns the axis of child c (0-based) on a tensor acting on k qubits.
func (s slot) leg(k, c int) int {
	if s.in {
		return k + 1 + c
	}
	return 1 + c
}

// legSlot returns where leg position of a child's contracted subtree
// attaches in its parent's stack of stackLen tensors. A child result has
// 2(stackLen-1) legs; position i and its mirror 2(stackLen-1)-1-i are
// wired together, the first to front and the second to back, for
// i in 0..stackLen-2.
//
// Stacks at even depth (the root included) start and end with a k-leg
// boundary tensor. Stacks at odd depth are full 2k-leg tensors throughout.
// The two parities walk the stack from opposite ends with shifted pairing.
func legSlot(position int, oddDepth bool, stackLen int) (front, back slot) {
	i := position
	if oddDepth {
		front = slot{tensor: i / 2, in: i%2 == 0}
		back = slot{tensor: stackLen - 1 - i/2, in: i%2 == 1}
		return front, back
	}
	front = slot{tensor: (i + 1) / 2, in: i%2 == 1}
	back = slot{tensor: stackLen - 1 - (i+1)/2, in: !(i%2 == 1 || i == 0)}
	return front, back
}
