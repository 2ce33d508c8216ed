package core

import "testing"

func TestRandomStrategySeedIsReproducible(t *testing.T) {
	a, b := NewRandomStrategy(7), NewRandomStrategy(7)
	for i := 0; i < 100; i++ {
		if x, y := a.Choose(7), b.Choose(7); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x, y := a.Decide(0.5), b.Decide(0.5); x != y {
			t.Fatalf("branch %d differs", i)
		}
	}
}

func TestRandomStrategyBounds(t *testing.T) {
	s := NewRandomStrategy(1)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		n := s.Choose(7)
		if n < 0 || n >= 7 {
			t.Fatalf("Choose(7) = %d", n)
		}
		seen[n] = true
		if s.Decide(0) {
			t.Fatal("Decide(0) returned true")
		}
		if !s.Decide(1) {
			t.Fatal("Decide(1) returned false")
		}
	}
	if len(seen) != 7 {
		t.Errorf("uniform choice only produced %d distinct indexes", len(seen))
	}
	if s.Choose(0) != 0 || s.Choose(1) != 0 {
		t.Error("degenerate n should choose 0")
	}
}

func TestFixedStrategy(t *testing.T) {
	s := NewFixedStrategy(9, false, true)
	if got := s.Choose(7); got != 2 {
		t.Errorf("Choose(7) = %d, want 2", got)
	}
	if s.Decide(0.9) {
		t.Error("first queued outcome should be false")
	}
	if !s.Decide(0.1) {
		t.Error("second queued outcome should be true")
	}
	if !s.Decide(0.7) || s.Decide(0.3) {
		t.Error("empty queue should take the more likely branch")
	}
}
