package draw

import (
	"slices"
	"testing"
)

func assertDistinctInRange(t *testing.T, vs []uint8) {
	t.Helper()
	seen := map[uint8]bool{}
	for _, v := range vs {
		if v < Min || v > Max {
			t.Fatalf("value out of range: %d", v)
		}
		if seen[v] {
			t.Fatalf("duplicate value: %d in %v", v, vs)
		}
		seen[v] = true
	}
}

func TestDeterministicDraws(t *testing.T) {
	e := New(true)
	if got := len(e.Picked()); got != 0 {
		t.Fatalf("new engine has %d picks", got)
	}
	for i := 0; i < 4; i++ {
		e.Draw()
	}
	picked := e.Picked()
	if len(picked) != 4 {
		t.Fatalf("expected 4 picks, got %d", len(picked))
	}
	assertDistinctInRange(t, picked)
}

func TestSameSeedSameSequence(t *testing.T) {
	a, b := NewWithSeed(42), NewWithSeed(42)
	for i := 0; i < 30; i++ {
		if x, y := a.Draw(), b.Draw(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestDrawUntilExhausted(t *testing.T) {
	e := New(true)
	for i := 1; i <= Max; i++ {
		n := e.Draw()
		if n == Exhausted {
			t.Fatalf("exhausted early at draw %d", i)
		}
		if e.Len() != i {
			t.Fatalf("history length %d after %d draws", e.Len(), i)
		}
	}
	assertDistinctInRange(t, e.Picked())

	before := e.Picked()
	for i := 0; i < 160; i++ {
		if n := e.Draw(); n != Exhausted {
			t.Fatalf("expected sentinel, got %d", n)
		}
	}
	if !slices.Equal(before, e.Picked()) {
		t.Fatal("history changed after exhaustion")
	}
	if len(e.Remaining()) != 0 {
		t.Fatalf("remaining should be empty, got %v", e.Remaining())
	}
}

func TestManualEntries(t *testing.T) {
	e := New(false)
	if _, ok := e.UndoLast(); ok {
		t.Fatal("undo on empty history should report false")
	}
	for _, v := range []int{16, 72, 66} {
		if !e.AddManual(v) {
			t.Fatalf("AddManual(%d) rejected", v)
		}
	}
	if e.AddManual(72) {
		t.Fatal("duplicate 72 accepted")
	}
	if e.Len() != 3 {
		t.Fatalf("rejected entry changed history: %v", e.Picked())
	}
	e.UndoLast()
	e.UndoLast()
	last, ok := e.Last()
	if !ok || last != 16 {
		t.Fatalf("expected last pick 16, got %d (%v)", last, ok)
	}
	e.Reset()
	if e.Len() != 0 {
		t.Fatalf("reset left %v", e.Picked())
	}
	e.Reset()
	if e.Len() != 0 {
		t.Fatal("second reset should keep history empty")
	}
}

func TestAddManualRange(t *testing.T) {
	tests := []struct {
		v    int
		want bool
	}{
		{0, false},
		{1, true},
		{90, true},
		{91, false},
		{255, false},
		{-3, false},
	}
	for _, tt := range tests {
		e := New(true)
		if got := e.AddManual(tt.v); got != tt.want {
			t.Errorf("AddManual(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestUndoRestoresPool(t *testing.T) {
	e := New(true)
	e.AddManual(5)
	n, ok := e.UndoLast()
	if !ok || n != 5 {
		t.Fatalf("undo returned %d, %v", n, ok)
	}
	if e.Contains(5) {
		t.Fatal("5 still marked as drawn")
	}
	if !e.AddManual(5) {
		t.Fatal("5 should be drawable again after undo")
	}
}

func TestDrawSkipsManualEntries(t *testing.T) {
	e := New(true)
	for v := Min; v < Max; v++ {
		e.AddManual(v)
	}
	if n := e.Draw(); n != Max {
		t.Fatalf("only %d was left, drew %d", Max, n)
	}
}

func TestPickedIsACopy(t *testing.T) {
	e := New(true)
	e.AddManual(10)
	p := e.Picked()
	p[0] = 99
	if last, _ := e.Last(); last != 10 {
		t.Fatalf("mutating Picked leaked into engine: %d", last)
	}
}
