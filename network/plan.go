package network

import (
	"fmt"
	"strings"
)

// Step is one pairwise contraction. Operands are numbered the way Evaluate
// sees them: the network's nodes are 0..n-1 in insertion order and the
// result of step i gets number n+i.
type Step struct {
	Left, Right int
	Result      int
	Shared      int     // number of edges summed over
	Size        int     // elements in the result
	Cost        float64 // complex multiply-adds
}

// Plan is an ordered list of steps that reduces a network to one tensor.
type Plan struct {
	Inputs int
	Steps  []Step
}

// Cost is the total number of multiply-adds.
func (p *Plan) Cost() float64 {
	var total float64
	for _, s := range p.Steps {
		total += s.Cost
	}
	return total
}

// PeakSize is the largest intermediate the plan produces.
func (p *Plan) PeakSize() int {
	peak := 0
	for _, s := range p.Steps {
		if s.Size > peak {
			peak = s.Size
		}
	}
	return peak
}

func (p *Plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "plan: %d inputs, %d steps, cost %.0f, peak %d\n", p.Inputs, len(p.Steps), p.Cost(), p.PeakSize())
	for i, s := range p.Steps {
		fmt.Fprintf(&sb, "  [%d] %d x %d -> %d  shared=%d size=%d cost=%.0f\n",
			i, s.Left, s.Right, s.Result, s.Shared, s.Size, s.Cost)
	}
	return sb.String()
}

// Solver chooses a contraction order for a network.
type Solver interface {
	Plan(net *Network) (*Plan, error)
}

// operand is a node or intermediate result during planning and evaluation:
// axis i of its tensor is legs[i].
type operand struct {
	id   int
	legs []*Edge
}

func (o *operand) size() int {
	n := 1
	for _, e := range o.legs {
		n *= e.dim
	}
	return n
}

func initialOperands(net *Network) []*operand {
	ops := make([]*operand, len(net.nodes))
	for i, n := range net.nodes {
		ops[i] = &operand{id: i, legs: append([]*Edge(nil), n.edges...)}
	}
	return ops
}

// merge describes contracting l with r: the axis pairs to sum over and the
// legs of the result (free legs of l, then free legs of r).
func merge(l, r *operand) (pairs [][2]int, legs []*Edge, sharedDim int) {
	inR := make(map[*Edge]int, len(r.legs))
	for j, e := range r.legs {
		inR[e] = j
	}
	sharedDim = 1
	inL := make(map[*Edge]bool, len(l.legs))
	for i, e := range l.legs {
		if j, ok := inR[e]; ok {
			pairs = append(pairs, [2]int{i, j})
			inL[e] = true
			sharedDim *= e.dim
			continue
		}
		legs = append(legs, e)
	}
	for _, e := range r.legs {
		if !inL[e] {
			legs = append(legs, e)
		}
	}
	return pairs, legs, sharedDim
}
