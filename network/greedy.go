package network

// Greedy picks, at every step, the pair of connected operands whose
// contraction grows the working set the least:
//
//	size(result) - size(left) - size(right)
//
// Ties go to the pair that appears first, with input nodes ordered by
// insertion and intermediates appended as they are produced, so the same
// network always yields the same plan. Operands that share no edge are
// joined by outer products once nothing connected is left.
type Greedy struct{}

// Plan implements Solver.
func (Greedy) Plan(net *Network) (*Plan, error) {
	if net.Len() == 0 {
		return nil, ErrEmpty
	}

	live := initialOperands(net)
	plan := &Plan{Inputs: len(live)}
	next := len(live)

	for len(live) > 1 {
		bi, bj := -1, -1
		best := 0
		for i := 0; i < len(live); i++ {
			for j := i + 1; j < len(live); j++ {
				pairs, legs, _ := merge(live[i], live[j])
				if len(pairs) == 0 {
					continue
				}
				growth := legsSize(legs) - live[i].size() - live[j].size()
				if bi < 0 || growth < best {
					bi, bj, best = i, j, growth
				}
			}
		}
		if bi < 0 {
			// only disconnected components remain
			bi, bj = 0, 1
		}

		l, r := live[bi], live[bj]
		pairs, legs, sharedDim := merge(l, r)
		res := &operand{id: next, legs: legs}
		size := res.size()
		plan.Steps = append(plan.Steps, Step{
			Left:   l.id,
			Right:  r.id,
			Result: next,
			Shared: len(pairs),
			Size:   size,
			Cost:   float64(size) * float64(sharedDim),
		})
		next++

		// drop bj before bi so the lower index stays valid
		live = append(live[:bj], live[bj+1:]...)
		live = append(live[:bi], live[bi+1:]...)
		live = append(live, res)
	}
	return plan, nil
}

func legsSize(legs []*Edge) int {
	n := 1
	for _, e := range legs {
		n *= e.dim
	}
	return n
}
