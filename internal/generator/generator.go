// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects count phrases uniformly at random with replacement.
func (g *Generator) Pick(phrases []string, count int) []string {
	if len(phrases) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, phrases[g.rnd.Intn(len(phrases))])
	}
	return result
}

// Text joins count randomly picked phrases with single spaces.
func (g *Generator) Text(phrases []string, count int) string {
	return strings.Join(g.Pick(phrases, count), " ")
}
