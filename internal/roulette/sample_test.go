package roulette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dom/league-roulette/internal/roulette"
)

func TestSampleUnique_EnoughElements(t *testing.T) {
	source := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for range 200 {
		got := roulette.SampleUnique(roulette.StdRNG{}, source, 5)
		require.Len(t, got, 5)

		seen := make(map[string]bool)
		for _, v := range got {
			assert.Contains(t, source, v)
			assert.False(t, seen[v], "duplicate element %s", v)
			seen[v] = true
		}
	}
}

func TestSampleUnique_ShortSource(t *testing.T) {
	source := []int{7, 8, 9}

	got := roulette.SampleUnique(roulette.StdRNG{}, source, 5)

	assert.Len(t, got, 3)
	assert.ElementsMatch(t, source, got)
}

func TestSampleUnique_DrawOrder(t *testing.T) {
	// pool [a b c d]: pick index 1 (b), pool [a c d]: pick index 0 (a)
	rng := &sequenceRNG{values: []int{1, 0}}

	got := roulette.SampleUnique(rng, []string{"a", "b", "c", "d"}, 2)

	assert.Equal(t, []string{"b", "a"}, got)
}

func TestSampleUnique_DoesNotMutateSource(t *testing.T) {
	source := []string{"a", "b", "c", "d", "e"}
	before := append([]string(nil), source...)

	roulette.SampleUnique(roulette.StdRNG{}, source, 5)

	assert.Equal(t, before, source)
}

func TestSampleUnique_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		source []string
		n      int
	}{
		{name: "empty source", source: nil, n: 5},
		{name: "zero n", source: []string{"a"}, n: 0},
		{name: "negative n", source: []string{"a"}, n: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, roulette.SampleUnique(roulette.StdRNG{}, tt.source, tt.n))
		})
	}
}

func TestSampleOne(t *testing.T) {
	_, ok := roulette.SampleOne(roulette.StdRNG{}, []string{})
	assert.False(t, ok)

	v, ok := roulette.SampleOne(&sequenceRNG{values: []int{2}}, []string{"x", "y", "z"})
	require.True(t, ok)
	assert.Equal(t, "z", v)
}

func TestSampleOne_CoversEveryElement(t *testing.T) {
	source := []int{0, 1, 2, 3}
	counts := make([]int, len(source))

	for range 4000 {
		v, ok := roulette.SampleOne(roulette.StdRNG{}, source)
		require.True(t, ok)
		counts[v]++
	}

	for i, c := range counts {
		// Expected 1000 each; the band is wide enough to never flake.
		assert.Greater(t, c, 700, "element %d under-sampled", i)
		assert.Less(t, c, 1300, "element %d over-sampled", i)
	}
}
