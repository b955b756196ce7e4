package qaoa

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zeta1999/quantum-optimization/gate"
	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

// LayerParams selects one layer pass.
type LayerParams struct {
	Beta, Gamma float64
	Tree        *tree.Tree

	// Odd selects the stars rooted at odd depths; otherwise the stars
	// rooted at even depths, including the tree root.
	Odd bool
	// InitialFinal closes the pass against the uniform superposition |+…+⟩.
	InitialFinal bool
	// Dag builds the adjoint pass.
	Dag bool
	// Extra holds the observables; nil inserts none.
	Extra Operators
}

// LayerTensor is one gate tensor of a layer, anchored at Base and acting on
// Base followed by Children.
//
// Legs 0..k-1 are the outputs of Base, Children[0], ... and legs k..2k-1
// the matching inputs, k = 1+len(Children). A tensor closed against the
// boundary state only has k legs: outputs for a forward pass, inputs for an
// adjoint one.
type LayerTensor struct {
	Tensor   *tensor.Dense
	Base     int64
	Children []int64
}

// Layer builds one tensor for every internal node at the pass's depth
// parity. For every star (node plus its children):
//
//	forward:  extra · mixer · ising
//	adjoint:  ising · mixer · extra, with β and γ negated
//
// Odd passes put the mixer and the observables on every qubit of the star.
// Even passes put them on the tree root only; every other even star gets the
// identity.
func (e *Engine) Layer(p LayerParams) ([]LayerTensor, error) {
	beta, gamma := p.Beta, p.Gamma
	if p.Dag {
		beta, gamma = -beta, -gamma
	}

	t := p.Tree
	start := 0
	if p.Odd {
		start = 1
	}

	var out []LayerTensor
	for d := start; d < t.Depth(); d += 2 {
		for _, root := range t.NodesAtDepth(d) {
			children := t.Children(root)
			qubits := append([]int64{root}, children...)
			n := len(qubits)

			ising, err := e.isingMatrix(gamma, qubits)
			if err != nil {
				return nil, errors.Wrapf(err, "ising rotation at %v", t.PathTo(root))
			}

			// mixer and observable coverage
			var mixer, extra *tensor.Dense
			switch {
			case p.Odd:
				mixer = e.mixerMatrix(beta, n)
				extra, err = p.Extra.kronLookup(qubits)
			case root == t.Root():
				mixer, err = tensor.Kron(gate.MixerRotation(beta), tensor.Identity(tensor.Pow2(n-1)))
				if err == nil {
					extra, err = tensor.Kron(p.Extra.Lookup(root), tensor.Identity(tensor.Pow2(n-1)))
				}
			default:
				mixer = tensor.Identity(tensor.Pow2(n))
				extra = mixer
			}
			if err != nil {
				return nil, err
			}

			m, err := compose(p.Dag, ising, mixer, extra)
			if err != nil {
				return nil, err
			}

			var tt *tensor.Dense
			if p.InitialFinal {
				tt, err = closeBoundary(m, n, p.Dag)
			} else {
				tt, err = m.Reshape(tensor.Qubits(2 * n)...)
			}
			if err != nil {
				return nil, err
			}
			out = append(out, LayerTensor{Tensor: tt, Base: root, Children: children})
		}
	}

	parity, direction := "even", "forward"
	if p.Odd {
		parity = "odd"
	}
	if p.Dag {
		direction = "adjoint"
	}
	LayersBuilt.WithLabelValues(parity, direction).Inc()
	TensorsBuilt.Add(float64(len(out)))
	e.logger.Debug("built layer pass",
		zap.String("parity", parity),
		zap.String("direction", direction),
		zap.Bool("boundary", p.InitialFinal),
		zap.Int("tensors", len(out)),
	)
	return out, nil
}

// isingMatrix returns the ZZ rotation along every edge of the star whose
// center is qubits[0].
func (e *Engine) isingMatrix(gamma float64, qubits []int64) (*tensor.Dense, error) {
	if e.cache != nil {
		return e.cache.StarIsing(gamma, len(qubits)-1)
	}
	edges := make([][2]int64, 0, len(qubits)-1)
	for _, c := range qubits[1:] {
		edges = append(edges, [2]int64{qubits[0], c})
	}
	return gate.IsingRotation(gamma, qubits, edges)
}

func (e *Engine) mixerMatrix(beta float64, n int) *tensor.Dense {
	if e.cache != nil {
		return e.cache.MixerLayer(beta, n)
	}
	return gate.MixerLayer(beta, n)
}

func compose(dag bool, ising, mixer, extra *tensor.Dense) (*tensor.Dense, error) {
	first, last := extra, ising
	if dag {
		first, last = ising, extra
	}
	m, err := tensor.MatMul(first, mixer)
	if err != nil {
		return nil, err
	}
	return tensor.MatMul(m, last)
}

// closeBoundary contracts m with |+…+⟩ on its input side (forward) or with
// ⟨+…+| on its output side (adjoint) and returns the n-leg result.
func closeBoundary(m *tensor.Dense, n int, dag bool) (*tensor.Dense, error) {
	dim := tensor.Pow2(n)
	amp := complex(1/math.Sqrt(float64(dim)), 0)
	ones := make([]complex128, dim)
	for i := range ones {
		ones[i] = amp
	}

	var (
		v   *tensor.Dense
		err error
	)
	if dag {
		var bra *tensor.Dense
		if bra, err = tensor.New(ones, 1, dim); err == nil {
			v, err = tensor.MatMul(bra, m)
		}
	} else {
		var ket *tensor.Dense
		if ket, err = tensor.New(ones, dim, 1); err == nil {
			v, err = tensor.MatMul(m, ket)
		}
	}
	if err != nil {
		return nil, err
	}
	return v.Reshape(tensor.Qubits(n)...)
}
