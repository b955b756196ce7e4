// Package gate builds the dense gate matrices of a QAOA layer: Ising ZZ
// rotations along the edges of a star, single-qubit X mixers, and the
// Pauli operators used as observables.
//
// Qubit order is always the order of the qubits slice given by the caller;
// the first qubit is the most significant Kronecker factor.
package gate

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/zeta1999/quantum-optimization/tensor"
)

var (
	// ErrUnknownQubit is returned when an edge references a qubit that is
	// not in the declared qubit list.
	ErrUnknownQubit = errors.New("edge references unknown qubit")
	// ErrUnknownOperator is returned by Named for unsupported names.
	ErrUnknownOperator = errors.New("unknown operator")
)

// PauliI returns the 2×2 identity.
func PauliI() *tensor.Dense { return tensor.Identity(2) }

// PauliX returns the bit flip.
func PauliX() *tensor.Dense {
	return tensor.FromRows([][]complex128{{0, 1}, {1, 0}})
}

// PauliY returns the Pauli Y operator.
func PauliY() *tensor.Dense {
	return tensor.FromRows([][]complex128{{0, -1i}, {1i, 0}})
}

// PauliZ returns the phase flip.
func PauliZ() *tensor.Dense {
	return tensor.FromRows([][]complex128{{1, 0}, {0, -1}})
}

// Named returns the single-qubit operator called name ("I", "X", "Y" or
// "Z", case-insensitive).
func Named(name string) (*tensor.Dense, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "I":
		return PauliI(), nil
	case "X":
		return PauliX(), nil
	case "Y":
		return PauliY(), nil
	case "Z":
		return PauliZ(), nil
	}
	return nil, errors.Wrapf(ErrUnknownOperator, "%q", name)
}

// IsingRotation returns the product over edges (j,k) of
// exp(-i γ/2 Z_j Z_k) on the qubits, each factor written out as
// cos(γ/2)·I − i·sin(γ/2)·Z_j⊗Z_k and multiplied on in edge order.
func IsingRotation(gamma float64, qubits []int64, edges [][2]int64) (*tensor.Dense, error) {
	pos := make(map[int64]int, len(qubits))
	for i, q := range qubits {
		pos[q] = i
	}

	n := len(qubits)
	dim := tensor.Pow2(n)
	c, s := math.Cos(gamma/2), math.Sin(gamma/2)
	acc := tensor.Identity(dim)
	for _, e := range edges {
		j, ok := pos[e[0]]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownQubit, "qubit %d in edge %v", e[0], e)
		}
		k, ok := pos[e[1]]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownQubit, "qubit %d in edge %v", e[1], e)
		}

		factors := make([]*tensor.Dense, n)
		for i := range factors {
			factors[i] = PauliI()
		}
		// Z_j Z_j is the identity, so a self-loop only contributes a phase
		if j != k {
			factors[j] = PauliZ()
			factors[k] = PauliZ()
		}
		zz, err := tensor.KronAll(factors...)
		if err != nil {
			return nil, err
		}
		factor, err := tensor.Identity(dim).Scale(complex(c, 0)).Add(zz.Scale(complex(0, -s)))
		if err != nil {
			return nil, err
		}
		if acc, err = tensor.MatMul(acc, factor); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// StarIsing is IsingRotation on a parent followed by arity children, with
// one edge from the parent to each child.
func StarIsing(gamma float64, arity int) (*tensor.Dense, error) {
	qubits := make([]int64, arity+1)
	edges := make([][2]int64, arity)
	for i := range qubits {
		qubits[i] = int64(i)
	}
	for c := 0; c < arity; c++ {
		edges[c] = [2]int64{0, int64(c + 1)}
	}
	return IsingRotation(gamma, qubits, edges)
}

// MixerRotation returns exp(-i β/2 X) = cos(β/2)·I − i·sin(β/2)·X.
func MixerRotation(beta float64) *tensor.Dense {
	c, s := math.Cos(beta/2), math.Sin(beta/2)
	return tensor.FromRows([][]complex128{
		{complex(c, 0), complex(0, -s)},
		{complex(0, -s), complex(c, 0)},
	})
}

// MixerLayer returns MixerRotation(β) on each of n qubits.
func MixerLayer(beta float64, n int) *tensor.Dense {
	if n <= 0 {
		return tensor.Identity(1)
	}
	factors := make([]*tensor.Dense, n)
	for i := range factors {
		factors[i] = MixerRotation(beta)
	}
	m, err := tensor.KronAll(factors...)
	if err != nil {
		// every factor is 2×2
		panic(err)
	}
	return m
}
