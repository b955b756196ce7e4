package qaoa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegSlotTable(t *testing.T) {
	out := func(i int) slot { return slot{tensor: i} }
	in := func(i int) slot { return slot{tensor: i, in: true} }

	tests := []struct {
		name     string
		oddDepth bool
		stackLen int
		front    []slot
		back     []slot
	}{
		{
			name:     "even depth, one layer",
			stackLen: 2,
			front:    []slot{out(0)},
			back:     []slot{out(1)},
		},
		{
			name:     "odd depth, one layer",
			oddDepth: true,
			stackLen: 2,
			front:    []slot{in(0)},
			back:     []slot{out(1)},
		},
		{
			name:     "even depth, two layers",
			stackLen: 4,
			front:    []slot{out(0), in(1), out(1)},
			back:     []slot{out(3), out(2), in(2)},
		},
		{
			name:     "odd depth, two layers",
			oddDepth: true,
			stackLen: 4,
			front:    []slot{in(0), out(0), in(1)},
			back:     []slot{out(3), in(3), out(2)},
		},
		{
			name:     "even depth, three layers",
			stackLen: 6,
			front:    []slot{out(0), in(1), out(1), in(2), out(2)},
			back:     []slot{out(5), out(4), in(4), out(3), in(3)},
		},
		{
			name:     "odd depth, three layers",
			oddDepth: true,
			stackLen: 6,
			front:    []slot{in(0), out(0), in(1), out(1), in(2)},
			back:     []slot{out(5), in(5), out(4), in(4), out(3)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < tc.stackLen-1; i++ {
				front, back := legSlot(i, tc.oddDepth, tc.stackLen)
				assert.Equal(t, tc.front[i], front, "front %d", i)
				assert.Equal(t, tc.back[i], back, "back %d", i)
			}
		})
	}
}

func TestSlotLeg(t *testing.T) {
	// a node with two children acts on three qubits
	assert.Equal(t, 1, slot{}.leg(3, 0))
	assert.Equal(t, 2, slot{}.leg(3, 1))
	assert.Equal(t, 4, slot{in: true}.leg(3, 0))
	assert.Equal(t, 5, slot{in: true}.leg(3, 1))

	// the root of a degree-3 tree acts on four
	assert.Equal(t, 3, slot{}.leg(4, 2))
	assert.Equal(t, 7, slot{in: true}.leg(4, 2))
}
