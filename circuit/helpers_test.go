package circuit

import (
	"math/rand"
	"testing"
)

// TestNameGeneratorUnique verifies successive names from one
// generator never repeat.
func TestNameGeneratorUnique(t *testing.T) {
	g := NewNameGenerator(rand.New(rand.NewSource(1)), "test")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := g.Next()
		if seen[name] {
			t.Fatalf("NameGenerator produced duplicate name %q", name)
		}
		seen[name] = true
	}
}

// TestNameGeneratorDistinctPrefixes verifies two generators seeded
// from the same source produce names from different prefixes, so
// concurrent passes cannot collide.
func TestNameGeneratorDistinctPrefixes(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := NewNameGenerator(rng, "a")
	b := NewNameGenerator(rng, "b")
	if a.Next() == b.Next() {
		t.Fatalf("NameGenerator prefixes collided")
	}
}
