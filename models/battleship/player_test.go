package battleship

import "testing"

func TestPlayerNextAlternates(t *testing.T) {
	if P1.Next() != P2 {
		t.Fatalf("expected P1.Next() to be P2, got %s", P1.Next())
	}
	if P2.Next() != P1 {
		t.Fatalf("expected P2.Next() to be P1, got %s", P2.Next())
	}
}

func TestPlayerString(t *testing.T) {
	if P1.String() != "P1" || P2.String() != "P2" {
		t.Fatalf("unexpected player labels: %s %s", P1, P2)
	}
}
