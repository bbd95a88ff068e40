package battleship

import (
	cerr "github.com/oceangrid/armada-backend/internal/error"
)

type placementKey struct {
	player     Player
	shipTypeId ShipTypeId
}

type coords struct {
	x int
	y int
}

// PreGame is the setup phase of a match: it accumulates ship type
// definitions and both players' placements, then produces a Game. It owns
// the two battlefields and the ship catalog exclusively until Start hands
// them over.
type PreGame struct {
	width        int
	height       int
	shipTypes    []ShipType
	placedShips  map[placementKey]struct{}
	battlefields [2]*Battlefield
	started      bool
}

// NewPreGame creates the setup phase for a width x height match.
func NewPreGame(width, height int) (*PreGame, error) {
	bf1, err := NewBattlefield(width, height)
	if err != nil {
		return nil, err
	}
	// Same dimensions, so this cannot fail anymore.
	bf2, _ := NewBattlefield(width, height)

	return &PreGame{
		width:        width,
		height:       height,
		shipTypes:    make([]ShipType, 0),
		placedShips:  make(map[placementKey]struct{}),
		battlefields: [2]*Battlefield{bf1, bf2},
	}, nil
}

func (pg *PreGame) Width() int {
	return pg.width
}

func (pg *PreGame) Height() int {
	return pg.height
}

// ShipTypes returns a copy of the catalog in registration order.
func (pg *PreGame) ShipTypes() []ShipType {
	out := make([]ShipType, len(pg.shipTypes))
	copy(out, pg.shipTypes)
	return out
}

// PlacedShipCount reports how many (player, ship type) placements have been
// recorded. The game can start once this reaches twice the catalog size.
func (pg *PreGame) PlacedShipCount() int {
	return len(pg.placedShips)
}

// ShipTypeById resolves an id against the catalog.
func (pg *PreGame) ShipTypeById(id ShipTypeId) (ShipType, bool) {
	if id < 0 || int(id) >= len(pg.shipTypes) {
		return ShipType{}, false
	}
	return pg.shipTypes[id], true
}

// AddShipType registers a ship type shared by both players and returns its
// handle. Ids are assigned sequentially; entries are never removed or
// mutated afterwards.
func (pg *PreGame) AddShipType(name string, length int) (ShipType, error) {
	if pg.started {
		return ShipType{}, cerr.ErrGameStarted
	}
	if length < 1 {
		return ShipType{}, cerr.ErrIllegalShipLength
	}
	if length > max(pg.width, pg.height) {
		return ShipType{}, cerr.ErrShipTooLongForBattlefield
	}

	st := NewShipType(ShipTypeId(len(pg.shipTypes)), name, length)
	pg.shipTypes = append(pg.shipTypes, st)
	return st, nil
}

// PlaceShip validates and records one placement on the player's own board.
// The checks run in a fixed order and the first failure wins; a rejected
// placement leaves every cell untouched.
func (pg *PreGame) PlaceShip(player Player, shipType ShipType, x, y int, orientation Orientation) error {
	if pg.started {
		return cerr.ErrGameStarted
	}
	if !pg.isShipTypeKnown(shipType) {
		return cerr.ErrUnknownShipType
	}

	key := placementKey{player: player, shipTypeId: shipType.Id()}
	if _, placed := pg.placedShips[key]; placed {
		return cerr.ErrAlreadyPlaced
	}

	span, ok := pg.spanCoords(shipType, x, y, orientation)
	if !ok {
		return cerr.ErrCoordsOutOfBounds(x, y)
	}

	bf := pg.battlefields[player]
	for _, c := range span {
		cell, _ := bf.Cell(c.x, c.y)
		if _, occupied := cell.ShipTypeId(); occupied {
			return cerr.ErrCellOccupiedAt(c.x, c.y)
		}
	}

	for _, c := range span {
		cell, _ := bf.Cell(c.x, c.y)
		cell.setShipTypeId(shipType.Id())
	}
	pg.placedShips[key] = struct{}{}
	return nil
}

func (pg *PreGame) isShipTypeKnown(shipType ShipType) bool {
	st, ok := pg.ShipTypeById(shipType.Id())
	return ok && st == shipType
}

// spanCoords computes the cells a placement would cover, or false when the
// span exceeds the grid in either axis.
func (pg *PreGame) spanCoords(shipType ShipType, x, y int, orientation Orientation) ([]coords, bool) {
	if x < 0 || y < 0 {
		return nil, false
	}

	maxX, maxY := x, y
	if orientation == Horizontal {
		maxX = x + shipType.Length() - 1
	} else {
		maxY = y + shipType.Length() - 1
	}
	if maxX >= pg.width || maxY >= pg.height {
		return nil, false
	}

	span := make([]coords, 0, shipType.Length())
	for n := 0; n < shipType.Length(); n++ {
		if orientation == Horizontal {
			span = append(span, coords{x: x + n, y: y})
		} else {
			span = append(span, coords{x: x, y: y + n})
		}
	}
	return span, true
}

// GetCell reports the setup-phase view of the player's own board: Ship or
// Empty. No shots exist during setup.
func (pg *PreGame) GetCell(player Player, x, y int) (CellStatus, error) {
	cell, ok := pg.battlefields[player].Cell(x, y)
	if !ok {
		return CellStatusEmpty, cerr.ErrCoordsOutOfBounds(x, y)
	}
	if _, occupied := cell.ShipTypeId(); occupied {
		return CellStatusShip, nil
	}
	return CellStatusEmpty, nil
}

// Start finalizes setup and produces the Game. Every ship type must have
// been placed by both players, i.e. the placed count must equal twice the
// catalog size. On failure the pregame is untouched and setup continues; on
// success the pregame is spent and every further call fails with
// ErrGameStarted, so battlefields are never shared between two live phases.
func (pg *PreGame) Start() (*Game, error) {
	if pg.started {
		return nil, cerr.ErrGameStarted
	}
	if len(pg.placedShips) == 0 {
		return nil, cerr.ErrNoShipsPlaced
	}
	if len(pg.placedShips) != 2*len(pg.shipTypes) {
		return nil, cerr.ErrNotAllShipsPlaced
	}

	pg.started = true
	return newGame(pg.shipTypes, pg.battlefields), nil
}
