package battleship

import "testing"

func TestShipStatusSumsPlayerHealth(t *testing.T) {
	shipTypes := []ShipType{NewShipType(0, "Corvette", 2)}
	status := NewShipStatus(shipTypes)

	if got := status.SumHealth(P1); got != 2 {
		t.Fatalf("expected P1 sum health 2, got %d", got)
	}
	if got := status.Hit(P1, 0); got != 1 {
		t.Fatalf("expected new health 1, got %d", got)
	}
	if got := status.SumHealth(P1); got != 1 {
		t.Fatalf("expected P1 sum health 1, got %d", got)
	}

	// P2's counters are independent.
	if got := status.SumHealth(P2); got != 2 {
		t.Fatalf("expected P2 sum health 2, got %d", got)
	}
	if got := status.Hit(P2, 0); got != 1 {
		t.Fatalf("expected new health 1, got %d", got)
	}
	if got := status.SumHealth(P2); got != 1 {
		t.Fatalf("expected P2 sum health 1, got %d", got)
	}
}

func TestShipStatusHitClampsAtZero(t *testing.T) {
	shipTypes := []ShipType{NewShipType(0, "Jetski", 1)}
	status := NewShipStatus(shipTypes)

	if got := status.Hit(P1, 0); got != 0 {
		t.Fatalf("expected health 0 after first hit, got %d", got)
	}
	if got := status.Hit(P1, 0); got != 0 {
		t.Fatalf("expected health to stay clamped at 0, got %d", got)
	}
	if got := status.SumHealth(P1); got != 0 {
		t.Fatalf("expected sum health 0, got %d", got)
	}
}

func TestShipStatusTracksMultipleShipTypes(t *testing.T) {
	shipTypes := []ShipType{
		NewShipType(0, "Corvette", 2),
		NewShipType(1, "Submarine", 1),
	}
	status := NewShipStatus(shipTypes)

	if got := status.SumHealth(P1); got != 3 {
		t.Fatalf("expected sum health 3, got %d", got)
	}

	status.Hit(P1, 0)
	status.Hit(P1, 0)
	if got := status.SumHealth(P1); got != 1 {
		t.Fatalf("expected sum health 1 with submarine intact, got %d", got)
	}

	status.Hit(P1, 1)
	if got := status.SumHealth(P1); got != 0 {
		t.Fatalf("expected fleet eliminated, got sum health %d", got)
	}
}
