package actor

import (
	"strings"
	"testing"

	"github.com/nharlow/qrpg/engine/rng"
)

func TestMemberRoundTrip(t *testing.T) {
	q := NewAnalyst("Aaronson")
	q.AddHP()
	q.AddHP()
	q.HP(0).Sample(rng.NewScript(0.99), true) // measured |0>
	q.HP(1).Flip(0.3)                         // live amplitudes
	q.HP(2).Superpose()

	tok := EncodeMember(q)
	if strings.ContainsAny(tok, ";:") {
		t.Fatalf("member token contains reserved delimiters: %q", tok)
	}

	got, err := DecodeMember(tok)
	if err != nil {
		t.Fatalf("DecodeMember: %v", err)
	}
	if got.Name != "Aaronson" || got.Kind() != "Analyst" || got.Level() != 3 {
		t.Fatalf("decoded identity wrong: %s %s level %d", got.Name, got.Kind(), got.Level())
	}
	if !got.HP(0).Measured() || got.HP(0).Value() {
		t.Error("qubit 0 should be measured |0>")
	}
	for i := 1; i < 3; i++ {
		if got.HP(i).Measured() {
			t.Errorf("qubit %d should be live", i)
		}
		want := q.HP(i).Prob1()
		if diff := got.HP(i).Prob1() - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("qubit %d Prob1 = %v, want %v", i, got.HP(i).Prob1(), want)
		}
	}
}

func TestMemberRoundTrip_NPC(t *testing.T) {
	n, _ := NewNPC("redfoam", "crimson")
	got, err := DecodeMember(EncodeMember(n))
	if err != nil {
		t.Fatalf("DecodeMember: %v", err)
	}
	if !got.IsNPC() || got.Kind() != "RedFoam" {
		t.Errorf("decoded NPC wrong: npc=%v kind=%s", got.IsNPC(), got.Kind())
	}
}

func TestDecodeMember_Malformed(t *testing.T) {
	tests := []struct {
		name string
		tok  string
	}{
		{"too few fields", "Aaronson,analyst"},
		{"bad count", "Aaronson,analyst,zero,m0"},
		{"count mismatch", "Aaronson,analyst,2,m0"},
		{"unknown kind", "Aaronson,wizard,1,m0"},
		{"bad qubit token", "Aaronson,analyst,1,z9"},
		{"bad amplitudes", "Aaronson,analyst,1,a1~2~3"},
		{"invalid name", "bad name,analyst,1,m0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeMember(tt.tok); err == nil {
				t.Errorf("DecodeMember(%q) should fail", tt.tok)
			}
		})
	}
}
