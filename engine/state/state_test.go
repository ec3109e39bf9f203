package state

import (
	"io"
	"testing"
)

func newTestState() *GameState {
	return New(nil, io.Discard)
}

func TestFlags_InsertionOrder(t *testing.T) {
	f := NewFlags()
	f.Set("b", "1")
	f.Set("a", "2")
	f.Set("c", "3")
	f.Set("a", "9") // update keeps position

	got := f.All()
	wantKeys := []string{"b", "a", "c"}
	if len(got) != len(wantKeys) {
		t.Fatalf("len = %d, want %d", len(got), len(wantKeys))
	}
	for i, k := range wantKeys {
		if got[i].Key != k {
			t.Errorf("flag %d key = %q, want %q", i, got[i].Key, k)
		}
	}
	if v, _ := f.Get("a"); v != "9" {
		t.Errorf("updated value = %q, want %q", v, "9")
	}
}

func TestCodexBits(t *testing.T) {
	g := newTestState()
	if g.HasCodex(1) {
		t.Fatal("fresh state should have no codex bits")
	}
	g.SetCodex(1)
	g.SetCodex(4)
	if !g.HasCodex(1) || !g.HasCodex(4) {
		t.Error("set bits should read back")
	}
	if g.HasCodex(2) {
		t.Error("unset bit should not read back")
	}
	// Bits accumulate in a single flag.
	if v, _ := g.Flags.Get("qp"); v != "5" {
		t.Errorf("qp flag = %q, want %q", v, "5")
	}
}

func TestXP(t *testing.T) {
	g := newTestState()
	if g.XP() != 0 {
		t.Fatal("fresh state should have 0 xp")
	}
	g.SetXP(12)
	if g.XP() != 12 {
		t.Errorf("XP = %d, want 12", g.XP())
	}
}
