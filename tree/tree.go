// Package tree holds the rooted, branch-labelled trees that QAOA tensor
// networks are laid out on. A Tree is built once, either node by node with
// AddChild or in one go with RegularPrefix, and is read-only afterwards.
package tree

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	// ErrUnknownNode is returned when a node ID is not part of the tree.
	ErrUnknownNode = errors.New("unknown tree node")
	// ErrDuplicateLabel is returned when a parent already has a child with
	// the requested branch label.
	ErrDuplicateLabel = errors.New("duplicate branch label")
	// ErrInvalidShape is returned for impossible tree parameters.
	ErrInvalidShape = errors.New("invalid tree shape")
	// ErrInvalidPath is returned when a branch label has no matching child.
	ErrInvalidPath = errors.New("invalid edge-choice path")
	// ErrIrregular is returned when leaves do not all lie at the same depth.
	ErrIrregular = errors.New("irregular tree")
)

// Tree is a rooted tree whose non-root nodes carry a branch label.
// Node identity is the gonum node ID; the root is always 0.
type Tree struct {
	g      *simple.DirectedGraph
	labels map[int64]int     // child -> branch label
	parent map[int64]int64   // child -> parent
	kids   map[int64][]int64 // parent -> children, sorted by label
	nextID int64
}

// New returns a tree holding only its root.
func New() *Tree {
	t := &Tree{
		g:      simple.NewDirectedGraph(),
		labels: make(map[int64]int),
		parent: make(map[int64]int64),
		kids:   make(map[int64][]int64),
		nextID: 1,
	}
	t.g.AddNode(simple.Node(0))
	return t
}

// AddChild attaches a new node under parent with the given branch label and
// returns its ID.
func (t *Tree) AddChild(parent int64, label int) (int64, error) {
	if t.g.Node(parent) == nil {
		return 0, errors.Wrapf(ErrUnknownNode, "parent %d", parent)
	}
	for _, c := range t.kids[parent] {
		if t.labels[c] == label {
			return 0, errors.Wrapf(ErrDuplicateLabel, "label %d under node %d", label, parent)
		}
	}

	id := t.nextID
	t.nextID++
	t.g.AddNode(simple.Node(id))
	t.g.SetEdge(t.g.NewEdge(simple.Node(parent), simple.Node(id)))
	t.labels[id] = label
	t.parent[id] = parent

	// keep siblings ordered by label so every caller iterates the same way
	kids := append(t.kids[parent], id)
	slices.SortFunc(kids, func(a, b int64) int { return t.labels[a] - t.labels[b] })
	t.kids[parent] = kids
	return id, nil
}

// RegularPrefix builds the regular tree used for QAOA on d-regular graphs:
// the root has degree children labelled 0..degree-1, every other internal
// node has degree-1 children labelled 0..degree-2, and all leaves sit at
// depth.
func RegularPrefix(degree, depth int) (*Tree, error) {
	if degree < 2 || depth < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "degree %d, depth %d", degree, depth)
	}
	t := New()
	frontier := []int64{t.Root()}
	for d := 0; d < depth; d++ {
		fanout := degree - 1
		if d == 0 {
			fanout = degree
		}
		next := make([]int64, 0, len(frontier)*fanout)
		for _, p := range frontier {
			for label := 0; label < fanout; label++ {
				c, err := t.AddChild(p, label)
				if err != nil {
					return nil, err
				}
				next = append(next, c)
			}
		}
		frontier = next
	}
	return t, nil
}

// Root returns the root's ID.
func (t *Tree) Root() int64 { return 0 }

// Len returns the number of nodes.
func (t *Tree) Len() int { return t.g.Nodes().Len() }

// Has reports whether n is a node of the tree.
func (t *Tree) Has(n int64) bool { return t.g.Node(n) != nil }

// Label returns the branch label of n. The root has no label and reports -1.
func (t *Tree) Label(n int64) int {
	if l, ok := t.labels[n]; ok {
		return l
	}
	return -1
}

// Parent returns n's parent, or false for the root and unknown nodes.
func (t *Tree) Parent(n int64) (int64, bool) {
	p, ok := t.parent[n]
	return p, ok
}

// Children returns n's children ordered by branch label.
func (t *Tree) Children(n int64) []int64 {
	return slices.Clone(t.kids[n])
}

// IsLeaf reports whether n has no children.
func (t *Tree) IsLeaf(n int64) bool {
	return len(t.kids[n]) == 0
}
