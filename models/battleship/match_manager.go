package battleship

import (
	"sync"

	"github.com/google/uuid"

	cerr "github.com/oceangrid/armada-backend/internal/error"
)

type MatchManager interface {
	CreateMatch(width, height int) (*Match, error)
	GetMatch(matchId string) (*Match, error)
	TerminateMatch(matchId string)
}

// ArmadaMatchManager is the in-memory match registry. Matches are keyed by a
// short id that players exchange out of band to find each other.
type ArmadaMatchManager struct {
	matches map[string]*Match
	mu      sync.RWMutex
}

var _ MatchManager = (*ArmadaMatchManager)(nil)

func NewArmadaMatchManager() *ArmadaMatchManager {
	return &ArmadaMatchManager{
		matches: make(map[string]*Match, 10),
	}
}

func (amm *ArmadaMatchManager) CreateMatch(width, height int) (*Match, error) {
	matchId := uuid.NewString()[:6]
	match, err := newMatch(matchId, width, height)
	if err != nil {
		return nil, err
	}

	amm.mu.Lock()
	amm.matches[matchId] = match
	amm.mu.Unlock()

	return match, nil
}

func (amm *ArmadaMatchManager) GetMatch(matchId string) (*Match, error) {
	amm.mu.RLock()
	match, prs := amm.matches[matchId]
	amm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrMatchNotFound(matchId)
	}

	return match, nil
}

func (amm *ArmadaMatchManager) TerminateMatch(matchId string) {
	amm.mu.Lock()
	delete(amm.matches, matchId)
	amm.mu.Unlock()
}
