package network

import (
	"github.com/pkg/errors"

	"github.com/zeta1999/quantum-optimization/tensor"
)

// Evaluate executes plan on net and returns the final tensor with its axes
// in the order of output. A nil output keeps the order of net.Dangling().
//
// The plan must consume every node exactly once and end with a single
// operand; output must list every dangling edge of the network exactly
// once.
func Evaluate(net *Network, plan *Plan, output []*Edge) (*tensor.Dense, error) {
	if net.Len() == 0 {
		return nil, ErrEmpty
	}
	if plan == nil || plan.Inputs != net.Len() {
		return nil, errors.Wrapf(ErrBadPlan, "plan does not match a network of %d nodes", net.Len())
	}

	live := make(map[int]*operand, net.Len())
	values := make(map[int]*tensor.Dense, net.Len())
	for i, op := range initialOperands(net) {
		live[i] = op
		values[i] = net.nodes[i].tensor
	}

	for i, s := range plan.Steps {
		l, lok := live[s.Left]
		r, rok := live[s.Right]
		if !lok || !rok || s.Left == s.Right {
			return nil, errors.Wrapf(ErrBadPlan, "step %d uses %d and %d", i, s.Left, s.Right)
		}
		if s.Result != plan.Inputs+i {
			return nil, errors.Wrapf(ErrBadPlan, "step %d produces %d, want %d", i, s.Result, plan.Inputs+i)
		}

		pairs, legs, _ := merge(l, r)
		var v *tensor.Dense
		if len(pairs) == 0 {
			v = tensor.Outer(values[s.Left], values[s.Right])
		} else {
			var err error
			v, err = tensor.Contract(values[s.Left], values[s.Right], pairs)
			if err != nil {
				return nil, errors.Wrapf(err, "step %d", i)
			}
		}
		delete(live, s.Left)
		delete(live, s.Right)
		delete(values, s.Left)
		delete(values, s.Right)
		live[s.Result] = &operand{id: s.Result, legs: legs}
		values[s.Result] = v
	}

	if len(live) != 1 {
		return nil, errors.Wrapf(ErrBadPlan, "%d operands left after %d steps", len(live), len(plan.Steps))
	}
	var final *operand
	for _, op := range live {
		final = op
	}
	result := values[final.id]

	if output == nil {
		output = net.Dangling()
	}
	perm, err := outputPermutation(final.legs, output)
	if err != nil {
		return nil, err
	}
	return result.Permute(perm...)
}

// outputPermutation maps each requested output edge to its axis in the
// final tensor.
func outputPermutation(legs, output []*Edge) ([]int, error) {
	if len(output) != len(legs) {
		return nil, errors.Wrapf(ErrBadOutput, "%d output edges for %d dangling", len(output), len(legs))
	}
	axis := make(map[*Edge]int, len(legs))
	for i, e := range legs {
		axis[e] = i
	}
	perm := make([]int, len(output))
	used := make(map[*Edge]bool, len(output))
	for i, e := range output {
		ax, ok := axis[e]
		if !ok || used[e] {
			return nil, errors.Wrapf(ErrBadOutput, "output %d is not a distinct dangling edge", i)
		}
		used[e] = true
		perm[i] = ax
	}
	return perm, nil
}

// Contract plans net with solver (Greedy when nil) and evaluates the plan.
func Contract(net *Network, solver Solver, output []*Edge) (*tensor.Dense, *Plan, error) {
	if solver == nil {
		solver = Greedy{}
	}
	plan, err := solver.Plan(net)
	if err != nil {
		return nil, nil, errors.Wrap(err, "plan contraction")
	}
	out, err := Evaluate(net, plan, output)
	if err != nil {
		return nil, nil, err
	}
	return out, plan, nil
}
