package battleship

// ShipStatus tracks the remaining health of every ship type for both
// players, indexed by ShipTypeId. Health starts at the ship type's length
// and drops by one per confirmed hit.
type ShipStatus struct {
	health [2][]int
}

func NewShipStatus(shipTypes []ShipType) *ShipStatus {
	var ss ShipStatus
	for i := range ss.health {
		h := make([]int, len(shipTypes))
		for j, st := range shipTypes {
			h[j] = st.Length()
		}
		ss.health[i] = h
	}
	return &ss
}

// Hit decrements the player's health for the given ship type and returns the
// new value. Health is clamped at zero; the shot sequencing in Game ensures
// a cell contributes at most one hit, so a ship never takes more than its
// length in the first place.
func (ss *ShipStatus) Hit(player Player, id ShipTypeId) int {
	h := ss.health[player]
	if h[id] > 0 {
		h[id]--
	}
	return h[id]
}

// SumHealth returns the non-negative total remaining health of the player's
// fleet. Zero means the fleet is eliminated.
func (ss *ShipStatus) SumHealth(player Player) int {
	var sum int
	for _, v := range ss.health[player] {
		sum += v
	}
	if sum < 0 {
		sum = 0
	}
	return sum
}
