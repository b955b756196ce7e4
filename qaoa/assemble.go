package qaoa

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

// TensorsByRoot maps every internal tree node to the ordered stack of gate
// tensors anchored at it.
type TensorsByRoot map[int64][]*tensor.Dense

// TensorNetwork lays out the QAOA circuit with len(betas) layers on t.
//
// The forward sweep runs layers 0..L-1, each as an even pass followed by an
// odd pass; layer 0's even pass starts from |+…+⟩ and layer L-1 carries the
// observables. The adjoint sweep then runs layers L-1..0 and appends, per
// layer, its even tensors before its odd ones; layer 0's even pass closes
// the network against ⟨+…+|.
func (e *Engine) TensorNetwork(betas, gammas []float64, t *tree.Tree, extra Operators) (TensorsByRoot, error) {
	if len(betas) == 0 || len(betas) != len(gammas) {
		return nil, errors.Wrapf(ErrAngleCount, "%d betas, %d gammas", len(betas), len(gammas))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := extra.validate(t); err != nil {
		return nil, err
	}
	for _, n := range extra.Nodes() {
		if !covered(t, n) {
			e.logger.Debug("operator is never inserted", zap.Ints("path", t.PathTo(n)))
		}
	}

	tbr := make(TensorsByRoot)
	add := func(layer []LayerTensor) {
		for _, lt := range layer {
			tbr[lt.Base] = append(tbr[lt.Base], lt.Tensor)
		}
	}

	last := len(betas) - 1
	for layer := 0; layer <= last; layer++ {
		var ops Operators
		if layer == last {
			ops = extra
		}
		even, err := e.Layer(LayerParams{
			Beta: betas[layer], Gamma: gammas[layer], Tree: t,
			InitialFinal: layer == 0, Extra: ops,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "forward layer %d", layer)
		}
		odd, err := e.Layer(LayerParams{
			Beta: betas[layer], Gamma: gammas[layer], Tree: t,
			Odd: true, Extra: ops,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "forward layer %d", layer)
		}
		add(even)
		add(odd)
	}

	for layer := last; layer >= 0; layer-- {
		odd, err := e.Layer(LayerParams{
			Beta: betas[layer], Gamma: gammas[layer], Tree: t,
			Odd: true, Dag: true,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "adjoint layer %d", layer)
		}
		even, err := e.Layer(LayerParams{
			Beta: betas[layer], Gamma: gammas[layer], Tree: t,
			InitialFinal: layer == 0, Dag: true,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "adjoint layer %d", layer)
		}
		add(even)
		add(odd)
	}

	e.logger.Debug("built tensor network",
		zap.Int("layers", len(betas)),
		zap.Int("stacks", len(tbr)),
	)
	return tbr, nil
}

// StackLen returns the number of tensors anchored at n.
func (tbr TensorsByRoot) StackLen(n int64) int {
	return len(tbr[n])
}
