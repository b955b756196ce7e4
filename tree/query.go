package tree

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// walk runs a breadth-first traversal from n and calls visit with every
// reached node and its distance from n. visit returns true to stop early.
func (t *Tree) walk(n int64, visit func(id int64, d int) bool) {
	var bf traverse.BreadthFirst
	bf.Walk(t.g, simple.Node(n), func(v graph.Node, d int) bool {
		return visit(v.ID(), d)
	})
}

// SubtreeDepth returns the length of the longest downward path from n to a
// leaf. A leaf has depth 0. Unknown nodes report -1.
func (t *Tree) SubtreeDepth(n int64) int {
	if !t.Has(n) {
		return -1
	}
	depth := 0
	t.walk(n, func(_ int64, d int) bool {
		if d > depth {
			depth = d
		}
		return false
	})
	return depth
}

// Depth is the subtree depth of the root.
func (t *Tree) Depth() int {
	return t.SubtreeDepth(t.Root())
}

// ResolveFrom walks down from the given node, following one branch label
// per step, and returns the node reached.
func (t *Tree) ResolveFrom(from int64, path []int) (int64, error) {
	if !t.Has(from) {
		return 0, errors.Wrapf(ErrUnknownNode, "node %d", from)
	}
	cur := from
	for i, label := range path {
		next, ok := t.child(cur, label)
		if !ok {
			return 0, errors.Wrapf(ErrInvalidPath, "no child with label %d at position %d of %v", label, i, path)
		}
		cur = next
	}
	return cur, nil
}

// Resolve is ResolveFrom the root.
func (t *Tree) Resolve(path []int) (int64, error) {
	return t.ResolveFrom(t.Root(), path)
}

func (t *Tree) child(n int64, label int) (int64, bool) {
	for _, c := range t.kids[n] {
		if t.labels[c] == label {
			return c, true
		}
	}
	return 0, false
}

// PathTo returns the branch labels leading from the root to n, the inverse
// of Resolve. The root's path is empty.
func (t *Tree) PathTo(n int64) []int {
	var path []int
	for {
		p, ok := t.Parent(n)
		if !ok {
			break
		}
		path = append(path, t.labels[n])
		n = p
	}
	slices.Reverse(path)
	return path
}

// NodesAtDistance returns every node exactly d edges below from, ordered
// by their label paths.
func (t *Tree) NodesAtDistance(from int64, d int) []int64 {
	if !t.Has(from) || d < 0 {
		return nil
	}
	var nodes []int64
	t.walk(from, func(id int64, dist int) bool {
		if dist == d {
			nodes = append(nodes, id)
		}
		// breadth-first: nothing past d is interesting
		return dist > d
	})
	t.sortByPath(nodes)
	return nodes
}

// NodesAtDepth returns every node exactly d edges below the root.
func (t *Tree) NodesAtDepth(d int) []int64 {
	return t.NodesAtDistance(t.Root(), d)
}

func (t *Tree) sortByPath(nodes []int64) {
	paths := make(map[int64][]int, len(nodes))
	for _, n := range nodes {
		paths[n] = t.PathTo(n)
	}
	slices.SortFunc(nodes, func(a, b int64) int {
		return slices.Compare(paths[a], paths[b])
	})
}

// Validate checks the regularity invariant: every leaf lies at the same
// depth.
func (t *Tree) Validate() error {
	want := -1
	var bad int64 = -1
	t.walk(t.Root(), func(id int64, d int) bool {
		if !t.IsLeaf(id) {
			return false
		}
		if want < 0 {
			want = d
			return false
		}
		if d != want {
			bad = id
			return true
		}
		return false
	})
	if bad >= 0 {
		return errors.Wrapf(ErrIrregular, "leaf %v at depth %d, expected %d", t.PathTo(bad), len(t.PathTo(bad)), want)
	}
	return nil
}
