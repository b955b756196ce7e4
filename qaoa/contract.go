package qaoa

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zeta1999/quantum-optimization/network"
	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

// ContractChildren contracts the subtree below the node reached by path and
// returns the result:
//
//   - for the root (empty path) the fully closed network, a rank-0 tensor;
//   - for a leaf the identity on 2^(S-1) dimensions as 2(S-1) legs, S being
//     the root's stack length;
//   - for any other node a 2(S-1)-leg tensor whose legs pair up, outside
//     in, with the legs of the node's stack that still face its parent.
func (e *Engine) ContractChildren(t *tree.Tree, tbr TensorsByRoot, path []int) (*tensor.Dense, error) {
	if len(path) > t.Depth() {
		return nil, errors.Wrapf(ErrPathTooDeep, "path %v in a tree of depth %d", path, t.Depth())
	}
	node, err := t.Resolve(path)
	if err != nil {
		return nil, err
	}
	return e.contract(t, tbr, node, path)
}

func (e *Engine) contract(t *tree.Tree, tbr TensorsByRoot, node int64, path []int) (*tensor.Dense, error) {
	if len(path) > 0 && t.IsLeaf(node) {
		return e.leaf(t, tbr)
	}

	children := t.Children(node)
	parts := make([]*tensor.Dense, len(children))
	for c, child := range children {
		sub := append(append(make([]int, 0, len(path)+1), path...), t.Label(child))
		part, err := e.contract(t, tbr, child, sub)
		if err != nil {
			return nil, err
		}
		parts[c] = part
	}

	start := time.Now()
	stack := tbr[node]
	n := len(stack)
	if n < 2 {
		return nil, errors.Wrapf(ErrMissingStack, "node %v has %d tensors", path, n)
	}
	k := len(children) + 1

	// fresh nodes give this pass its own legs on the shared tensors
	net := network.New()
	ts := make([]*network.Node, n)
	for i, st := range stack {
		ts[i] = net.Add(fmt.Sprintf("stack[%d]", i), st)
	}
	oddDepth := len(path)%2 == 1
	for c, part := range parts {
		pn := net.Add(fmt.Sprintf("child[%d]", c), part)
		plen := part.Rank()
		for i := 0; i < n-1; i++ {
			front, back := legSlot(i, oddDepth, n)
			if err := net.Connect(ts[front.tensor], front.leg(k, c), pn, i); err != nil {
				return nil, errors.Wrapf(err, "child %d position %d", c, i)
			}
			if err := net.Connect(ts[back.tensor], back.leg(k, c), pn, plen-1-i); err != nil {
				return nil, errors.Wrapf(err, "child %d position %d", c, plen-1-i)
			}
		}
	}

	kind := kindInternal
	var output []*network.Edge
	switch {
	case len(path) == 0:
		// chain the root qubit through the stack and close it
		kind = kindApex
		for i := 0; i < n-1; i++ {
			to := k
			if i == n-2 {
				to = 0
			}
			if err := net.Connect(ts[i], 0, ts[i+1], to); err != nil {
				return nil, errors.Wrapf(err, "root chain %d", i)
			}
		}
	case oddDepth:
		// the two middle tensors meet: forward output into adjoint input
		h := n / 2
		for j := 0; j < k; j++ {
			if err := net.Connect(ts[h-1], j, ts[h], k+j); err != nil {
				return nil, errors.Wrapf(err, "turn leg %d", j)
			}
		}
		for i := 0; i < h-1; i++ {
			output = append(output, ts[i].Edge(k), ts[i].Edge(0))
		}
		output = append(output, ts[h-1].Edge(k), ts[h].Edge(0))
		for i := h + 1; i < n; i++ {
			output = append(output, ts[i].Edge(k), ts[i].Edge(0))
		}
	default:
		output = append(output, ts[0].Edge(0))
		for i := 1; i < n-1; i++ {
			output = append(output, ts[i].Edge(k), ts[i].Edge(0))
		}
		output = append(output, ts[n-1].Edge(0))
	}

	res, plan, err := network.Contract(net, e.solver, output)
	if err != nil {
		return nil, errors.Wrapf(err, "contract node %v", path)
	}

	ContractionsTotal.WithLabelValues(kind).Inc()
	ContractionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	ContractionCost.Observe(plan.Cost())
	e.logger.Debug("contracted stack",
		zap.Ints("path", path),
		zap.String("kind", kind),
		zap.Int("tensors", net.Len()),
		zap.Int("steps", len(plan.Steps)),
		zap.Float64("cost", plan.Cost()),
		zap.Int("peak", plan.PeakSize()),
	)
	return res, nil
}

// leaf closes a leaf with the identity on as many legs as a child result
// carries.
func (e *Engine) leaf(t *tree.Tree, tbr TensorsByRoot) (*tensor.Dense, error) {
	s := len(tbr[t.Root()])
	if s < 2 {
		return nil, errors.Wrapf(ErrMissingStack, "root has %d tensors", s)
	}
	m := s - 1
	ContractionsTotal.WithLabelValues(kindLeaf).Inc()
	return tensor.Identity(tensor.Pow2(m)).Reshape(tensor.Qubits(2 * m)...)
}
