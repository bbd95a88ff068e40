package battleship

import (
	cerr "github.com/oceangrid/armada-backend/internal/error"
)

// ShootOutcome is the result of an accepted shot.
type ShootOutcome uint8

const (
	ShootOutcomeMiss ShootOutcome = iota
	ShootOutcomeHit
	ShootOutcomeDestroyed
	ShootOutcomeWinningShot
)

func (o ShootOutcome) String() string {
	switch o {
	case ShootOutcomeMiss:
		return "miss"
	case ShootOutcomeHit:
		return "hit"
	case ShootOutcomeDestroyed:
		return "destroyed"
	default:
		return "winning_shot"
	}
}

// Game is the play phase turn state machine. Build one through
// PreGame.Start; it takes over the finalized battlefields and seeds fresh
// health counters. P1 moves first. Once a winner exists the game is terminal
// and rejects further shots.
type Game struct {
	shipTypes     []ShipType
	battlefields  [2]*Battlefield
	shipStatus    *ShipStatus
	currentPlayer Player
	winner        Player
	over          bool
}

func newGame(shipTypes []ShipType, battlefields [2]*Battlefield) *Game {
	return &Game{
		shipTypes:     shipTypes,
		battlefields:  battlefields,
		shipStatus:    NewShipStatus(shipTypes),
		currentPlayer: P1,
	}
}

func (g *Game) Width() int {
	return g.battlefields[P1].Width()
}

func (g *Game) Height() int {
	return g.battlefields[P1].Height()
}

// CurrentPlayer reports whose turn it is.
func (g *Game) CurrentPlayer() Player {
	return g.currentPlayer
}

// Winner returns the winning player once the opposing fleet's health has
// reached zero.
func (g *Game) Winner() (Player, bool) {
	return g.winner, g.over
}

// Shoot fires at one cell of target's board on behalf of the other player.
// The caller names the board being fired upon, which must not be the mover's
// own. The turn passes to the opponent only on a miss; hits, destroyed ships
// and the winning shot keep the shooter's turn.
func (g *Game) Shoot(target Player, x, y int) (ShootOutcome, error) {
	if target == g.currentPlayer {
		return 0, cerr.ErrNotThisPlayersTurn
	}
	if g.over {
		return 0, cerr.ErrGameOver
	}

	cell, ok := g.battlefields[target].Cell(x, y)
	if !ok {
		return 0, cerr.ErrCoordsOutOfBounds(x, y)
	}
	if cell.IsShot() {
		return 0, cerr.ErrCellAlreadyShot(x, y)
	}
	cell.Shoot()

	id, occupied := cell.ShipTypeId()
	if !occupied {
		g.currentPlayer = g.currentPlayer.Next()
		return ShootOutcomeMiss, nil
	}

	newHealth := g.shipStatus.Hit(target, id)
	if g.shipStatus.SumHealth(target) == 0 {
		g.winner = g.currentPlayer
		g.over = true
		return ShootOutcomeWinningShot, nil
	}
	if newHealth == 0 {
		return ShootOutcomeDestroyed, nil
	}
	return ShootOutcomeHit, nil
}

// GetCell is the owner's view of their own board: Ship, Hit or Empty.
// Misses never show up here since shots only ever land on the opponent's
// board.
func (g *Game) GetCell(player Player, x, y int) (CellStatus, error) {
	cell, ok := g.battlefields[player].Cell(x, y)
	if !ok {
		return CellStatusEmpty, cerr.ErrCoordsOutOfBounds(x, y)
	}

	_, occupied := cell.ShipTypeId()
	switch {
	case occupied && cell.IsShot():
		return CellStatusHit, nil
	case occupied:
		return CellStatusShip, nil
	default:
		return CellStatusEmpty, nil
	}
}

// GetOpponentCell is the fog-of-war view of the named player's board, i.e.
// what their opponent gets to see: Hit, Miss, or Empty. Unshot ship cells
// are never revealed.
func (g *Game) GetOpponentCell(player Player, x, y int) (CellStatus, error) {
	cell, ok := g.battlefields[player].Cell(x, y)
	if !ok {
		return CellStatusEmpty, cerr.ErrCoordsOutOfBounds(x, y)
	}

	if !cell.IsShot() {
		return CellStatusEmpty, nil
	}
	if _, occupied := cell.ShipTypeId(); occupied {
		return CellStatusHit, nil
	}
	return CellStatusMiss, nil
}
