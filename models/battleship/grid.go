package battleship

import (
	cerr "github.com/oceangrid/armada-backend/internal/error"
)

// CellStatus is the view of one cell as exposed to callers. Which statuses
// can appear depends on the view: the setup view never shows shots, the
// owner's view never shows misses and the fog-of-war view never reveals
// unshot ships.
type CellStatus uint8

const (
	CellStatusEmpty CellStatus = iota
	CellStatusMiss
	CellStatusShip
	CellStatusHit
)

const noShip ShipTypeId = -1

// Cell is one grid position: at most one ship type reference plus a shot
// flag. The ship type id is set once at placement and never cleared.
type Cell struct {
	shipTypeId ShipTypeId
	shot       bool
}

func newCell() Cell {
	return Cell{shipTypeId: noShip}
}

// ShipTypeId returns the occupying ship type id, comma-ok style.
func (c *Cell) ShipTypeId() (ShipTypeId, bool) {
	if c.shipTypeId == noShip {
		return 0, false
	}
	return c.shipTypeId, true
}

func (c *Cell) setShipTypeId(id ShipTypeId) {
	c.shipTypeId = id
}

// Shoot marks the cell as fired upon. Callers guard against repeat shots;
// the flag itself only ever goes false to true.
func (c *Cell) Shoot() {
	c.shot = true
}

func (c *Cell) IsShot() bool {
	return c.shot
}

// Battlefield is a passive width x height grid of cells belonging to one
// player. Placement rules and shot sequencing live in PreGame and Game so
// they can see both boards and the shared ship catalog.
type Battlefield struct {
	width  int
	height int
	cells  [][]Cell // indexed cells[y][x]
}

// NewBattlefield creates an all-empty, all-unshot grid. The playable minimum
// is width >= 1 and height >= 2; this is only checked here, never again.
func NewBattlefield(width, height int) (*Battlefield, error) {
	if width < 1 || height < 2 {
		return nil, cerr.ErrIllegalDimensions
	}

	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = newCell()
		}
		cells[y] = row
	}

	return &Battlefield{width: width, height: height, cells: cells}, nil
}

func (bf *Battlefield) Width() int {
	return bf.width
}

func (bf *Battlefield) Height() int {
	return bf.height
}

// Cell returns the cell at (x, y), or false when the coordinates fall
// outside [0, width) x [0, height). Out-of-bounds access is not an error at
// this layer; callers translate the miss into their own domain error.
func (bf *Battlefield) Cell(x, y int) (*Cell, bool) {
	if x < 0 || x >= bf.width || y < 0 || y >= bf.height {
		return nil, false
	}
	return &bf.cells[y][x], true
}
