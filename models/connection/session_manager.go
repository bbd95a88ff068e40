package connection

import (
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/oceangrid/armada-backend/internal/error"
	mb "github.com/oceangrid/armada-backend/models/battleship"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	ReconnectSession(session *Session, conn *websocket.Conn)

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Communicate(receiverSessionId string, msg interface{}, msgType uint8) error

	CleanupPeriodically()

	GetSessionMatch(session *Session) *mb.Match
	SetSessionMatch(session *Session, match *mb.Match)
	GetSessionPlayer(session *Session) mb.Player
	SetSessionPlayer(session *Session, player mb.Player)
}

// ArmadaSessionManager owns every live session. Sessions older than the
// cleanup interval are considered stale and dropped.
type ArmadaSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*ArmadaSessionManager)(nil)

func NewArmadaSessionManager() *ArmadaSessionManager {
	return &ArmadaSessionManager{
		sessions:        make(map[string]*Session, 10),
		cleanupInterval: time.Minute * 20,
	}
}

func (asm *ArmadaSessionManager) GetSessionMatch(session *Session) *mb.Match {
	return session.match
}

func (asm *ArmadaSessionManager) SetSessionMatch(session *Session, match *mb.Match) {
	session.match = match
}

func (asm *ArmadaSessionManager) GetSessionPlayer(session *Session) mb.Player {
	return session.player
}

func (asm *ArmadaSessionManager) SetSessionPlayer(session *Session, player mb.Player) {
	session.player = player
}

func (asm *ArmadaSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	// URL-compatible so clients can pass it back as a query param.
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	asm.mu.Lock()
	asm.sessions[sessionId] = session
	asm.mu.Unlock()

	return session
}

func (asm *ArmadaSessionManager) FindSession(sessionId string) (*Session, error) {
	asm.mu.RLock()
	defer asm.mu.RUnlock()

	session, prs := asm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}
	return session, nil
}

func (asm *ArmadaSessionManager) TerminateSession(session *Session) {
	asm.mu.Lock()
	delete(asm.sessions, session.id)
	asm.mu.Unlock()
}

func (asm *ArmadaSessionManager) ReconnectSession(session *Session, conn *websocket.Conn) {
	session.reconnect(conn)
}

// Communicate sends a message to another session, normally the opponent.
func (asm *ArmadaSessionManager) Communicate(receiverSessionId string, msg interface{}, msgType uint8) error {
	receiverSession, err := asm.FindSession(receiverSessionId)
	if err != nil {
		return err
	}
	return asm.WriteToSessionConn(receiverSession, msg, msgType)
}

// CleanupPeriodically drops sessions that have outlived the cleanup
// interval so dangling connections don't accumulate.
func (asm *ArmadaSessionManager) CleanupPeriodically() {
	for {
		time.Sleep(asm.cleanupInterval)

		asm.mu.Lock()
		toDelete := make([]string, 0, 10)
		for id, session := range asm.sessions {
			if time.Since(session.createdAt) > asm.cleanupInterval {
				toDelete = append(toDelete, id)
			}
		}
		for _, id := range toDelete {
			delete(asm.sessions, id)
			log.Printf("removed stale session: %s", id)
		}
		asm.mu.Unlock()
	}
}

// handleAbnormalClosure tells the opponent a grace period started and waits
// for either reconnection or the timer running out.
func (asm *ArmadaSessionManager) handleAbnormalClosure(s *Session) error {
	if s.match == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("session is in no match")
	}

	otherSession, err := asm.FindSession(s.match.OtherSessionId(s.id))
	if err != nil {
		return NewConnErr(ConnLoopBreak).AddDesc("opponent session not found")
	}

	if err := otherSession.writeWithRetry(NewMessage[NoPayload](CodeOpponentGracePeriod), MessageTypeJSON); err != nil {
		return err
	}

	timer := time.NewTimer(gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		if err := otherSession.writeWithRetry(NewMessage[NoPayload](CodeOpponentDisconnected), MessageTypeJSON); err != nil {
			return err
		}
		log.Printf("grace period over, session terminated: %s", s.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period over for session: " + s.id)

	case <-s.reconnectionSignal:
		if err := otherSession.writeWithRetry(NewMessage[NoPayload](CodeOpponentReconnected), MessageTypeJSON); err != nil {
			return err
		}
		log.Printf("player reconnected, session: %s", s.id)
		return nil
	}
}

func (asm *ArmadaSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	connErr, ok := err.(ConnErr)
	if !ok {
		return err
	}

	switch connErr.Code() {
	case ConnLoopAbnormalClosureRetry:
		if err := asm.handleAbnormalClosure(session); err != nil {
			return connErr
		}
		return nil

	default:
		return connErr
	}
}

func (asm *ArmadaSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadErr(err, retries) {
		case ConnLoopContinue:
			retries++

		case ConnLoopAbnormalClosureRetry:
			if err := asm.handleAbnormalClosure(session); err != nil {
				return -1, nil, err
			}

		default:
			return -1, nil, err
		}
	}
}
