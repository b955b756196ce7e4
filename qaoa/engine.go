// Package qaoa builds and contracts the tree tensor network of a QAOA
// circuit on a tree-shaped interaction graph.
//
// TensorNetwork lays the forward circuit U and its adjoint U† out as
// per-node stacks of gate tensors. ContractChildren contracts those stacks
// from the leaves up; at the root it closes the network into the scalar
// ⟨+|U† O U|+⟩ for the single-qubit observables O inserted between the two
// halves. Expectation divides that scalar by the same contraction without
// observables.
//
// Leaves are closed with the identity rather than a boundary state, which
// traces out every leaf at even depth. The ratio is ⟨O⟩ only for
// observables the circuit's light cone keeps away from those leaves: at
// least len(betas) edges above every even-depth leaf, and never on an
// odd-depth leaf, which no layer reaches. Expectation rejects anything else
// with ErrOutOfReach.
package qaoa

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zeta1999/quantum-optimization/gate"
	"github.com/zeta1999/quantum-optimization/network"
	"github.com/zeta1999/quantum-optimization/tensor"
	"github.com/zeta1999/quantum-optimization/tree"
)

var (
	// ErrAngleCount is returned when betas and gammas differ in length or
	// are empty.
	ErrAngleCount = errors.New("betas and gammas must have the same non-zero length")
	// ErrPathTooDeep is returned when a contraction path is longer than the
	// depth of the tree.
	ErrPathTooDeep = errors.New("contraction path deeper than tree")
	// ErrMissingStack is returned when a node that must carry tensors has
	// none in the network.
	ErrMissingStack = errors.New("node has no tensor stack")
	// ErrZeroNorm is returned by Expectation when the closed network without
	// observables contracts to zero.
	ErrZeroNorm = errors.New("network norm is zero")
	// ErrOutOfReach is returned by Expectation for an observable whose value
	// the closed network does not reproduce.
	ErrOutOfReach = errors.New("observable out of reach of the network")
)

// Engine builds and contracts QAOA tree tensor networks. The zero value is
// not usable; use NewEngine. An Engine holds no per-network state and is
// safe for concurrent use.
type Engine struct {
	logger *zap.Logger
	cache  *gate.Cache
	solver network.Solver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithGateCache makes the engine reuse star Ising and mixer matrices
// across nodes and layers.
func WithGateCache(cache *gate.Cache) Option {
	return func(e *Engine) { e.cache = cache }
}

// WithSolver sets the contraction-order solver. The default is
// network.Greedy.
func WithSolver(solver network.Solver) Option {
	return func(e *Engine) { e.solver = solver }
}

// NewEngine returns an engine configured by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		solver: network.Greedy{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache != nil && e.cache.OnLookup == nil {
		e.cache.OnLookup = observeCacheLookup
	}
	return e
}

var defaultEngine = NewEngine()

// TensorNetwork builds the tensor stacks of a QAOA circuit with the default
// engine.
func TensorNetwork(betas, gammas []float64, t *tree.Tree, extra Operators) (TensorsByRoot, error) {
	return defaultEngine.TensorNetwork(betas, gammas, t, extra)
}

// ContractChildren contracts the subtree below the node at path with the
// default engine.
func ContractChildren(t *tree.Tree, tbr TensorsByRoot, path []int) (*tensor.Dense, error) {
	return defaultEngine.ContractChildren(t, tbr, path)
}

// Expectation computes the normalised expectation value of the observables
// in extra with the default engine.
func Expectation(betas, gammas []float64, t *tree.Tree, extra Operators) (complex128, error) {
	return defaultEngine.Expectation(betas, gammas, t, extra)
}
