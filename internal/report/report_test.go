package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadResult(t *testing.T) {
	r := NewResult("expect")
	r.Degree, r.Depth = 3, 2
	r.Betas, r.Gammas = []float64{0.9}, []float64{1.3}
	r.Observables["1"] = "X"
	norm, value := C(64), C(0.0191410454184056)
	r.Norm, r.Value = &norm, &value

	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteResult(path, r))

	got, err := ReadResult(path)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, got.RunID)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, r.Observables, got.Observables)
	assert.Equal(t, value, *got.Value)
	assert.Nil(t, got.Points)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "points")
}

func TestWriteEmptyObservables(t *testing.T) {
	r := NewResult("stacks")
	r.Observables = nil
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteResult(path, r))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"observables": {}`)
}

func TestBestAndSummary(t *testing.T) {
	r := NewResult("sweep")
	_, ok := r.Best()
	assert.False(t, ok)

	r.Points = []Point{
		{Beta: 0, Gamma: 0, Value: C(0.1)},
		{Beta: 0.5, Gamma: 0.25, Value: C(0.4)},
		{Beta: 1, Gamma: 0.5, Value: C(-0.2)},
	}
	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, 0.5, best.Beta)

	r.Observables = map[string]string{"": "Z", "0": "X"}
	r.Stacks = []Stack{{Path: "", Ranks: []int{4, 4}}}
	var buf bytes.Buffer
	PrintSummary(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "Observable Z on []")
	assert.Contains(t, out, "Stack []: 2 tensors ranks=[4 4]")
	assert.Contains(t, out, "Best: beta=0.5000 gamma=0.2500 value=0.4000000000 (3 points)")
}
