package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zeta1999/quantum-optimization/internal/report"
)

func newExpectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expect",
		Short: "Contract the configured circuit to the expectation value of its observables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExpect(cmd)
		},
	}
}

func (a *app) runExpect(cmd *cobra.Command) error {
	p := a.cfg.Problem
	t, err := p.Tree()
	if err != nil {
		return err
	}
	ops, err := p.Operators(t)
	if err != nil {
		return err
	}

	value, norm, err := a.engine().ExpectationAndNorm(p.Betas, p.Gammas, t, ops)
	if err != nil {
		return err
	}
	a.logger.Info("expectation computed",
		zap.Int("nodes", t.Len()),
		zap.Int("layers", len(p.Betas)),
		zap.Float64("value", real(value)),
	)

	r := a.newResult("expect")
	n, v := report.C(norm), report.C(value)
	r.Norm, r.Value = &n, &v
	return a.finish(cmd, r)
}

func (a *app) newResult(command string) *report.Result {
	p := a.cfg.Problem
	r := report.NewResult(command)
	r.Degree, r.Depth = p.Degree, p.Depth
	r.Betas, r.Gammas = p.Betas, p.Gammas
	for path, name := range p.Observables {
		r.Observables[path] = name
	}
	return r
}

// finish prints the summary of r and writes it when an output file is set.
func (a *app) finish(cmd *cobra.Command, r *report.Result) error {
	out := cmd.OutOrStdout()
	report.PrintSummary(out, r)
	if a.outputPath == "" {
		return nil
	}
	if err := report.WriteResult(a.outputPath, r); err != nil {
		return err
	}
	fmt.Fprintf(out, "Result written to %s\n", a.outputPath)
	return nil
}
