package qaoa

import (
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

// Expectation returns ⟨O⟩ for the observables in extra: the closed network
// with the observables divided by the closed network without them. Every
// observable must pass extra.CheckReach for len(betas) layers; the identity
// leaves only reproduce the real circuit inside that region.
func (e *Engine) Expectation(betas, gammas []float64, t *tree.Tree, extra Operators) (complex128, error) {
	value, _, err := e.ExpectationAndNorm(betas, gammas, t, extra)
	return value, err
}

// ExpectationAndNorm is Expectation that also returns the norm it divided
// by, so callers reporting both contract the observable-free network once.
func (e *Engine) ExpectationAndNorm(betas, gammas []float64, t *tree.Tree, extra Operators) (value, norm complex128, err error) {
	if err := extra.CheckReach(t, len(betas)); err != nil {
		return 0, 0, err
	}
	norm, err = e.Norm(betas, gammas, t)
	if err != nil {
		return 0, 0, errors.Wrap(err, "norm")
	}
	if cmplx.Abs(norm) == 0 {
		return 0, norm, ErrZeroNorm
	}
	if len(extra) == 0 {
		return 1, norm, nil
	}
	value, err = e.closed(betas, gammas, t, extra)
	if err != nil {
		return 0, 0, err
	}
	return value / norm, norm, nil
}

// Norm returns the closed network without observables. Each even-depth leaf
// contributes a factor of 2.
func (e *Engine) Norm(betas, gammas []float64, t *tree.Tree) (complex128, error) {
	return e.closed(betas, gammas, t, nil)
}

func (e *Engine) closed(betas, gammas []float64, t *tree.Tree, extra Operators) (complex128, error) {
	tbr, err := e.TensorNetwork(betas, gammas, t, extra)
	if err != nil {
		return 0, err
	}
	res, err := e.ContractChildren(t, tbr, nil)
	if err != nil {
		return 0, err
	}
	if res.Rank() != 0 {
		return 0, errors.Wrapf(tensor.ErrShape, "closed network has shape %v", res.Shape())
	}
	return res.At(), nil
}
