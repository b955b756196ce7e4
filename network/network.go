// Package network is a small tensor-network builder and contractor.
//
// A Network wraps dense tensors in Nodes. Every axis of a node is an Edge;
// an edge starts out dangling and becomes bound once Connect joins it to an
// axis of another node. Deciding in which order to multiply the nodes is the
// job of a Solver, which turns the network into a Plan of pairwise steps;
// Evaluate then executes the plan.
//
// Tensors are never modified. Wrapping the same tensors in a fresh Network
// gives an independent copy whose legs can be wired differently.
package network

import (
	"github.com/pkg/errors"

	"github.com/zeta1999/quantum-optimization/tensor"
)

var (
	// ErrAlreadyBound is returned when connecting an axis that is already
	// bound to another one.
	ErrAlreadyBound = errors.New("axis already bound")
	// ErrDimMismatch is returned when connecting axes of different size.
	ErrDimMismatch = errors.New("axis dimension mismatch")
	// ErrNoAxis is returned for axis numbers outside a node's rank.
	ErrNoAxis = errors.New("no such axis")
	// ErrForeignNode is returned when a node from another network is used.
	ErrForeignNode = errors.New("node belongs to another network")
	// ErrBadOutput is returned when the requested output edges are not
	// exactly the dangling edges of the network.
	ErrBadOutput = errors.New("output edges do not match dangling edges")
	// ErrBadPlan is returned when a plan does not consume every node of the
	// network exactly once.
	ErrBadPlan = errors.New("invalid contraction plan")
	// ErrEmpty is returned when contracting a network without nodes.
	ErrEmpty = errors.New("empty network")
)

// Edge is one leg of the network. A dangling edge has a single endpoint; a
// bound edge joins two axes that will be summed over.
type Edge struct {
	dim    int
	a, b   *Node
	ai, bi int
}

// Dim is the size of the axes the edge joins.
func (e *Edge) Dim() int { return e.dim }

// Dangling reports whether the edge has only one endpoint.
func (e *Edge) Dangling() bool { return e.b == nil }

// Node is a tensor placed in a network.
type Node struct {
	id     int
	name   string
	tensor *tensor.Dense
	edges  []*Edge
	net    *Network
}

// Tensor returns the wrapped tensor.
func (n *Node) Tensor() *tensor.Dense { return n.tensor }

// Rank is the number of legs.
func (n *Node) Rank() int { return len(n.edges) }

// Edge returns the edge attached to the given axis, or nil if there is no
// such axis.
func (n *Node) Edge(axis int) *Edge {
	if axis < 0 || axis >= len(n.edges) {
		return nil
	}
	return n.edges[axis]
}

// Network is a set of nodes and the edges between them.
type Network struct {
	nodes []*Node
}

// New returns an empty network.
func New() *Network {
	return &Network{}
}

// Add wraps t in a new node; every axis starts out dangling.
func (net *Network) Add(name string, t *tensor.Dense) *Node {
	n := &Node{id: len(net.nodes), name: name, tensor: t, net: net}
	shape := t.Shape()
	n.edges = make([]*Edge, len(shape))
	for ax, d := range shape {
		n.edges[ax] = &Edge{dim: d, a: n, ai: ax}
	}
	net.nodes = append(net.nodes, n)
	return n
}

// Len is the number of nodes.
func (net *Network) Len() int { return len(net.nodes) }

// Connect binds axis ai of a to axis bi of b. Both axes must be dangling
// and of equal size, and a and b must be distinct nodes of this network.
func (net *Network) Connect(a *Node, ai int, b *Node, bi int) error {
	if a.net != net || b.net != net {
		return ErrForeignNode
	}
	ea, eb := a.Edge(ai), b.Edge(bi)
	if ea == nil {
		return errors.Wrapf(ErrNoAxis, "axis %d of %s (rank %d)", ai, a.name, a.Rank())
	}
	if eb == nil {
		return errors.Wrapf(ErrNoAxis, "axis %d of %s (rank %d)", bi, b.name, b.Rank())
	}
	if a == b {
		return errors.Wrapf(ErrAlreadyBound, "%s cannot be bound to itself", a.name)
	}
	if !ea.Dangling() {
		return errors.Wrapf(ErrAlreadyBound, "axis %d of %s", ai, a.name)
	}
	if !eb.Dangling() {
		return errors.Wrapf(ErrAlreadyBound, "axis %d of %s", bi, b.name)
	}
	if ea.dim != eb.dim {
		return errors.Wrapf(ErrDimMismatch, "%s[%d]=%d vs %s[%d]=%d", a.name, ai, ea.dim, b.name, bi, eb.dim)
	}

	// ea absorbs eb; b's axis now points at the shared edge
	ea.b, ea.bi = b, bi
	b.edges[bi] = ea
	return nil
}

// Dangling returns the unbound edges in node insertion order, then axis
// order.
func (net *Network) Dangling() []*Edge {
	var out []*Edge
	for _, n := range net.nodes {
		for _, e := range n.edges {
			if e.Dangling() {
				out = append(out, e)
			}
		}
	}
	return out
}
