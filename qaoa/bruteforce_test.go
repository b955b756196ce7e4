package qaoa

import (
	"math"
	"math/cmplx"

	"github.com/zeta1999/quantum-optimization/gate"
	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

// stateVector is a dense simulator used as the reference for the tensor
// network. Qubit q is bit n-1-q of the basis index.
type stateVector struct {
	n   int
	amp []complex128
}

func uniformState(n int) *stateVector {
	dim := tensor.Pow2(n)
	amp := make([]complex128, dim)
	for i := range amp {
		amp[i] = complex(1/math.Sqrt(float64(dim)), 0)
	}
	return &stateVector{n: n, amp: amp}
}

func (s *stateVector) bit(b, q int) int {
	return (b >> (s.n - 1 - q)) & 1
}

func (s *stateVector) apply1(q int, m *tensor.Dense) {
	out := make([]complex128, len(s.amp))
	shift := s.n - 1 - q
	for b, a := range s.amp {
		if a == 0 {
			continue
		}
		in := s.bit(b, q)
		for o := 0; o < 2; o++ {
			b2 := b ^ ((in ^ o) << shift)
			out[b2] += m.At(o, in) * a
		}
	}
	s.amp = out
}

func (s *stateVector) clone() *stateVector {
	return &stateVector{n: s.n, amp: append([]complex128(nil), s.amp...)}
}

func (s *stateVector) inner(o *stateVector) complex128 {
	var sum complex128
	for i, a := range s.amp {
		sum += cmplx.Conj(a) * o.amp[i]
	}
	return sum
}

// bruteForce simulates the QAOA circuit on every qubit of t, applying the
// mixer to the qubits for which mixed returns true, and returns
// ⟨ψ|O|ψ⟩ for the observables in obs.
func bruteForce(betas, gammas []float64, t *tree.Tree, obs Operators, mixed func(int64) bool) complex128 {
	var nodes []int64
	for d := 0; d <= t.Depth(); d++ {
		nodes = append(nodes, t.NodesAtDepth(d)...)
	}
	idx := make(map[int64]int, len(nodes))
	for i, n := range nodes {
		idx[n] = i
	}

	psi := uniformState(len(nodes))
	for l := range betas {
		for b := range psi.amp {
			var zz float64
			for _, p := range nodes {
				sp := 1 - 2*psi.bit(b, idx[p])
				for _, c := range t.Children(p) {
					zz += float64(sp * (1 - 2*psi.bit(b, idx[c])))
				}
			}
			psi.amp[b] *= cmplx.Exp(complex(0, -gammas[l]/2*zz))
		}
		for _, q := range nodes {
			if mixed(q) {
				psi.apply1(idx[q], gate.MixerRotation(betas[l]))
			}
		}
	}

	phi := psi.clone()
	for _, q := range obs.Nodes() {
		phi.apply1(idx[q], obs[q])
	}
	return psi.inner(phi)
}
