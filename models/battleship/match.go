package battleship

import (
	"sync"

	cerr "github.com/oceangrid/armada-backend/internal/error"
)

// Match binds the two phases of one two-player match behind a single owning
// handle. The engine itself is single-threaded; the match mutex is what
// serializes the two sessions' calls into it, one at a time.
type Match struct {
	id      string
	width   int
	height  int
	pregame *PreGame
	game    *Game

	hostSessionId string
	joinSessionId string

	mu sync.Mutex
}

func newMatch(id string, width, height int) (*Match, error) {
	pregame, err := NewPreGame(width, height)
	if err != nil {
		return nil, err
	}
	return &Match{
		id:      id,
		width:   width,
		height:  height,
		pregame: pregame,
	}, nil
}

func (m *Match) Id() string {
	return m.id
}

func (m *Match) Width() int {
	return m.width
}

func (m *Match) Height() int {
	return m.height
}

// SetHostSession records the host session. The host always plays as P1.
func (m *Match) SetHostSession(sessionId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hostSessionId = sessionId
}

// Join admits the second player. Only one join ever succeeds.
func (m *Match) Join(sessionId string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.joinSessionId != "" {
		return 0, cerr.ErrMatchFull(m.id)
	}
	m.joinSessionId = sessionId
	return P2, nil
}

// OtherSessionId returns the session id of the given session's opponent.
func (m *Match) OtherSessionId(sessionId string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionId == m.hostSessionId {
		return m.joinSessionId
	}
	return m.hostSessionId
}

func (m *Match) AddShipType(name string, length int) (ShipType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game != nil {
		return ShipType{}, cerr.ErrGameStarted
	}
	return m.pregame.AddShipType(name, length)
}

func (m *Match) ShipTypes() []ShipType {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game != nil {
		out := make([]ShipType, len(m.game.shipTypes))
		copy(out, m.game.shipTypes)
		return out
	}
	return m.pregame.ShipTypes()
}

func (m *Match) PlacedShipCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pregame == nil {
		return 0
	}
	return m.pregame.PlacedShipCount()
}

// PlaceShip resolves the ship type id against the catalog and places it on
// the player's own board.
func (m *Match) PlaceShip(player Player, shipTypeId ShipTypeId, x, y int, orientation Orientation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game != nil {
		return cerr.ErrGameStarted
	}
	shipType, ok := m.pregame.ShipTypeById(shipTypeId)
	if !ok {
		return cerr.ErrUnknownShipType
	}
	return m.pregame.PlaceShip(player, shipType, x, y, orientation)
}

// Start moves the match from setup to play. The spent pregame is dropped so
// the game holds the only live reference to the battlefields.
func (m *Match) Start() (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game != nil {
		return 0, cerr.ErrGameStarted
	}
	game, err := m.pregame.Start()
	if err != nil {
		return 0, err
	}
	m.game = game
	m.pregame = nil
	return game.CurrentPlayer(), nil
}

// Shoot fires at the shooter's opponent.
func (m *Match) Shoot(shooter Player, x, y int) (ShootOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game == nil {
		return 0, cerr.ErrMatchNotStarted(m.id)
	}
	return m.game.Shoot(shooter.Next(), x, y)
}

func (m *Match) CurrentPlayer() (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game == nil {
		return 0, cerr.ErrMatchNotStarted(m.id)
	}
	return m.game.CurrentPlayer(), nil
}

func (m *Match) Winner() (Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game == nil {
		return 0, false
	}
	return m.game.Winner()
}

// GetCell is the owner's own-board view, valid in both phases.
func (m *Match) GetCell(player Player, x, y int) (CellStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game != nil {
		return m.game.GetCell(player, x, y)
	}
	return m.pregame.GetCell(player, x, y)
}

// GetOpponentCell is the fog-of-war view of the named player's board.
func (m *Match) GetOpponentCell(player Player, x, y int) (CellStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game == nil {
		return CellStatusEmpty, cerr.ErrMatchNotStarted(m.id)
	}
	return m.game.GetOpponentCell(player, x, y)
}

// Rematch resets the match to a fresh setup phase with the same dimensions
// and a re-registered copy of the previous catalog. Placements do not carry
// over.
func (m *Match) Rematch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var shipTypes []ShipType
	if m.game != nil {
		shipTypes = m.game.shipTypes
	} else {
		shipTypes = m.pregame.ShipTypes()
	}

	pregame, err := NewPreGame(m.width, m.height)
	if err != nil {
		return err
	}
	for _, st := range shipTypes {
		if _, err := pregame.AddShipType(st.Name(), st.Length()); err != nil {
			return err
		}
	}

	m.pregame = pregame
	m.game = nil
	return nil
}
