package battleship

// ShipTypeId indexes the ship type catalog of one pregame and the game made
// from it. Cells hold ids, never the ship types themselves.
type ShipTypeId int

// Orientation determines how a ship's length extends from its anchor (x, y).
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// ShipType is an immutable catalog entry shared by id between both players'
// boards. It is a value handle: a handle belongs to a pregame when the
// catalog entry at its id matches it field for field.
type ShipType struct {
	id     ShipTypeId
	name   string
	length int
}

func NewShipType(id ShipTypeId, name string, length int) ShipType {
	return ShipType{
		id:     id,
		name:   name,
		length: length,
	}
}

func (st ShipType) Id() ShipTypeId {
	return st.id
}

func (st ShipType) Name() string {
	return st.name
}

func (st ShipType) Length() int {
	return st.length
}
