// Package report writes qaoatn results as JSON and prints console
// summaries.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Complex is a complex number in JSON form.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// C converts c.
func C(c complex128) Complex {
	return Complex{Re: real(c), Im: imag(c)}
}

// Result is the file written by every command that evaluates a network.
type Result struct {
	RunID       string            `json:"run_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Command     string            `json:"command"`
	Degree      int               `json:"degree"`
	Depth       int               `json:"depth"`
	Betas       []float64         `json:"betas,omitempty"`
	Gammas      []float64         `json:"gammas,omitempty"`
	Observables map[string]string `json:"observables"`
	Norm        *Complex          `json:"norm,omitempty"`
	Value       *Complex          `json:"value,omitempty"`
	Points      []Point           `json:"points,omitempty"`
	Stacks      []Stack           `json:"stacks,omitempty"`
}

// Point is one evaluated grid point of a sweep.
type Point struct {
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Value Complex `json:"value"`
}

// Stack describes the tensors anchored at one tree node.
type Stack struct {
	Path  string `json:"path"`
	Ranks []int  `json:"ranks"`
}

// NewResult returns a result stamped with a fresh run ID.
func NewResult(command string) *Result {
	return &Result{
		RunID:       uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Command:     command,
		Observables: map[string]string{},
	}
}

// Best returns the sweep point with the largest real value, or false when
// there are no points.
func (r *Result) Best() (Point, bool) {
	if len(r.Points) == 0 {
		return Point{}, false
	}
	best := r.Points[0]
	for _, p := range r.Points[1:] {
		if p.Value.Re > best.Value.Re {
			best = p
		}
	}
	return best, true
}

// WriteResult writes r to filename as indented JSON.
func WriteResult(filename string, r *Result) error {
	// emit {} rather than null
	if r.Observables == nil {
		r.Observables = map[string]string{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal result")
	}

	return errors.Wrap(os.WriteFile(filename, data, 0644), "write result")
}

// ReadResult reads a file written by WriteResult.
func ReadResult(filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read result")
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "parse result")
	}
	return &r, nil
}
