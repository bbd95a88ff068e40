// Package error enumerates every failure outcome of the battleship engine
// and its transport. Sentinels are matchable with errors.Is; the constructor
// funcs wrap a sentinel with coordinates or ids for logs and client payloads.
package error

import (
	"errors"
	"fmt"
)

// Configuration errors. The caller must fix its setup parameters and retry.
var (
	ErrIllegalDimensions         = errors.New("battlefield width must be >= 1 and height >= 2")
	ErrIllegalShipLength         = errors.New("ship length must be >= 1")
	ErrShipTooLongForBattlefield = errors.New("ship is longer than both battlefield dimensions")
)

// Placement errors. Recoverable; the caller may retry with another
// ship type or other coordinates.
var (
	ErrUnknownShipType = errors.New("ship type does not belong to this pregame")
	ErrAlreadyPlaced   = errors.New("player has already placed a ship of this type")
	ErrOutOfBounds     = errors.New("coordinates exceed the battlefield bounds")
	ErrCellOccupied    = errors.New("cell is already occupied by another ship")
)

// Start errors. Recoverable; setup continues on the same pregame.
var (
	ErrNoShipsPlaced     = errors.New("no ships have been placed yet")
	ErrNotAllShipsPlaced = errors.New("every ship type must be placed by both players")
	ErrGameStarted       = errors.New("pregame has already been started")
)

// Play errors. Recoverable; the caller retries with another move or stops.
var (
	ErrNotThisPlayersTurn = errors.New("players can only shoot at the opponent's board")
	ErrGameOver           = errors.New("game is over, no more shots are accepted")
	ErrAlreadyShot        = errors.New("cell has already been shot")
)

func ErrCoordsOutOfBounds(x, y int) error {
	return fmt.Errorf("%w: x=%d y=%d", ErrOutOfBounds, x, y)
}

func ErrCellOccupiedAt(x, y int) error {
	return fmt.Errorf("%w: x=%d y=%d", ErrCellOccupied, x, y)
}

func ErrCellAlreadyShot(x, y int) error {
	return fmt.Errorf("%w: x=%d y=%d", ErrAlreadyShot, x, y)
}

// Match registry errors used by the transport layer.

func ErrMatchNotFound(matchId string) error {
	return fmt.Errorf("match with this id does not exist, id: %s", matchId)
}

func ErrMatchFull(matchId string) error {
	return fmt.Errorf("match already has two players, id: %s", matchId)
}

func ErrMatchNotStarted(matchId string) error {
	return fmt.Errorf("match has not started yet, id: %s", matchId)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrNotInMatch() error {
	return fmt.Errorf("session has not created or joined a match")
}
