package battleship

// Player identifies one of the two participants of a match. The engine is
// strictly two-player; P1 always owns the battlefield at index 0.
type Player uint8

const (
	P1 Player = iota
	P2
)

// Next returns the other player. The turn cycle is a fixed two-element
// rotation.
func (p Player) Next() Player {
	if p == P1 {
		return P2
	}
	return P1
}

func (p Player) String() string {
	if p == P1 {
		return "P1"
	}
	return "P2"
}
