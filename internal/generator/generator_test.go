package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickWithReplacement(t *testing.T) {
	g := NewWithSeed(1)
	picked := g.Pick([]string{"only"}, 3)
	require.Equal(t, []string{"only", "only", "only"}, picked)
}

func TestPickEmpty(t *testing.T) {
	g := NewWithSeed(1)
	require.Nil(t, g.Pick(nil, 3))
	require.Nil(t, g.Pick([]string{"a"}, 0))
}

func TestTextJoinsWithSingleSpace(t *testing.T) {
	g := NewWithSeed(42)
	allowed := map[string]bool{"cat cat": true, "cat dog": true, "dog cat": true, "dog dog": true}
	for i := 0; i < 50; i++ {
		text := g.Text([]string{"cat", "dog"}, 2)
		require.Len(t, text, 7)
		require.True(t, allowed[text], "unexpected text %q", text)
	}
}

func TestPickCoversAllPhrases(t *testing.T) {
	g := NewWithSeed(7)
	seen := map[string]bool{}
	for _, p := range g.Pick([]string{"a", "b", "c"}, 300) {
		seen[p] = true
	}
	require.Len(t, seen, 3)
}
