package main

import (
	"github.com/spf13/cobra"

	"github.com/zeta1999/quantum-optimization/internal/config"
	"github.com/zeta1999/quantum-optimization/internal/report"
)

func newStacksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stacks",
		Short: "List the tensor ranks anchored at every node of the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStacks(cmd)
		},
	}
}

func (a *app) runStacks(cmd *cobra.Command) error {
	p := a.cfg.Problem
	t, err := p.Tree()
	if err != nil {
		return err
	}
	ops, err := p.Operators(t)
	if err != nil {
		return err
	}

	tbr, err := a.engine().TensorNetwork(p.Betas, p.Gammas, t, ops)
	if err != nil {
		return err
	}

	r := a.newResult("stacks")
	for d := 0; d <= t.Depth(); d++ {
		for _, n := range t.NodesAtDepth(d) {
			if tbr.StackLen(n) == 0 {
				continue
			}
			ranks := make([]int, 0, tbr.StackLen(n))
			for _, x := range tbr[n] {
				ranks = append(ranks, x.Rank())
			}
			r.Stacks = append(r.Stacks, report.Stack{
				Path:  config.FormatPath(t.PathTo(n)),
				Ranks: ranks,
			})
		}
	}
	return a.finish(cmd, r)
}
