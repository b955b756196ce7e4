package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

// PrintSummary writes a human-readable account of r.
func PrintSummary(w io.Writer, r *Result) {
	fmt.Fprintf(w, "Run %s (%s): degree=%d depth=%d layers=%d\n",
		r.RunID, r.Command, r.Degree, r.Depth, len(r.Betas))
	for _, path := range slices.Sorted(maps.Keys(r.Observables)) {
		fmt.Fprintf(w, "Observable %s on [%s]\n", r.Observables[path], path)
	}
	if r.Norm != nil {
		fmt.Fprintf(w, "Norm: %.12g%+.3gi\n", r.Norm.Re, r.Norm.Im)
	}
	if r.Value != nil {
		fmt.Fprintf(w, "Expectation: %.12g%+.3gi\n", r.Value.Re, r.Value.Im)
	}

	for _, s := range r.Stacks {
		fmt.Fprintf(w, "Stack [%s]: %d tensors ranks=%v\n", s.Path, len(s.Ranks), s.Ranks)
	}

	if len(r.Points) > 0 {
		for _, p := range r.Points {
			fmt.Fprintf(w, "beta=%.4f gamma=%.4f value=%.10f\n", p.Beta, p.Gamma, p.Value.Re)
		}
		best, _ := r.Best()
		fmt.Fprintf(w, "Best: beta=%.4f gamma=%.4f value=%.10f (%d points)\n",
			best.Beta, best.Gamma, best.Value.Re, len(r.Points))
	}
}
