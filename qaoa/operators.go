package qaoa

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/zeta1999/quantum-optimization/gate"
	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

// Operators maps tree nodes to the single-qubit operators inserted between
// the forward circuit and its adjoint. A node without an entry gets the
// identity, and a nil map is the empty mapping.
type Operators map[int64]*tensor.Dense

// Lookup returns the operator on n, or the identity.
func (o Operators) Lookup(n int64) *tensor.Dense {
	if m, ok := o[n]; ok && m != nil {
		return m
	}
	return gate.PauliI()
}

// Nodes returns the nodes carrying an operator, in ascending order.
func (o Operators) Nodes() []int64 {
	nodes := make([]int64, 0, len(o))
	for n := range o {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

// validate checks that every operator is 2×2 and sits on a node of t.
func (o Operators) validate(t *tree.Tree) error {
	for _, n := range o.Nodes() {
		if !t.Has(n) {
			return errors.Wrapf(tree.ErrUnknownNode, "operator on node %d", n)
		}
		if m := o[n]; m != nil && !slices.Equal(m.Shape(), []int{2, 2}) {
			return errors.Wrapf(tensor.ErrShape, "operator on node %v has shape %v", t.PathTo(n), m.Shape())
		}
	}
	return nil
}

// covered reports whether a layer ever inserts an operator on n. Only the
// root and the stars of odd-depth internal nodes carry operators, so an
// odd-depth leaf is never reached.
func covered(t *tree.Tree, n int64) bool {
	if n == t.Root() {
		return true
	}
	return len(t.PathTo(n))%2 == 0 || !t.IsLeaf(n)
}

// CheckReach returns ErrOutOfReach for the first operator, in node order,
// that a circuit of the given number of layers cannot evaluate: one on an
// odd-depth leaf, or one with an even-depth leaf fewer than layers edges
// below it.
func (o Operators) CheckReach(t *tree.Tree, layers int) error {
	if err := o.validate(t); err != nil {
		return err
	}
	for _, n := range o.Nodes() {
		path := t.PathTo(n)
		if !covered(t, n) {
			return errors.Wrapf(ErrOutOfReach, "operator on %v is never inserted", path)
		}
		for d := 0; d < layers; d++ {
			for _, m := range t.NodesAtDistance(n, d) {
				if t.IsLeaf(m) && (len(path)+d)%2 == 0 {
					return errors.Wrapf(ErrOutOfReach,
						"operator on %v is %d edges above an even-depth leaf, circuit has %d layers", path, d, layers)
				}
			}
		}
	}
	return nil
}

// kronLookup returns the Kronecker product of the operators on qubits.
func (o Operators) kronLookup(qubits []int64) (*tensor.Dense, error) {
	factors := make([]*tensor.Dense, len(qubits))
	for i, q := range qubits {
		factors[i] = o.Lookup(q)
	}
	return tensor.KronAll(factors...)
}
