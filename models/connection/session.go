package connection

import (
	"log"
	"net"
	"time"

	"github.com/gorilla/websocket"

	mb "github.com/oceangrid/armada-backend/models/battleship"
)

const (
	maxWriteRetries uint8         = 2
	backoffFactor   uint8         = 2
	gracePeriod     time.Duration = time.Minute * 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

// Session is one client connection. It caches which match the client is in
// and which seat (P1/P2) it occupies so the request loop does not look them
// up on every frame.
type Session struct {
	id                 string
	conn               *websocket.Conn
	reconnectionSignal chan bool
	createdAt          time.Time

	match  *mb.Match
	player mb.Player
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                 id,
		conn:               conn,
		reconnectionSignal: make(chan bool),
		createdAt:          time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

// onConnErr maps a websocket error to a loop action.
func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load error:", err)
		return ConnLoopRetry
	}

	// Mobile clients going to background close abnormally; they get a grace
	// period to come back with their session id.
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure:", err)
		return ConnLoopAbnormalClosureRetry
	}

	log.Println("connection ending:", err)
	return ConnLoopBreak
}

// writeWithRetry writes to the session connection, retrying with backoff on
// transient failures and deferring abnormal closures to the session manager.
func (s *Session) writeWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

	for {
		var err error
		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected []byte")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries >= maxWriteRetries {
				log.Printf("max retries reached writing to ws [%s]: %s", s.conn.RemoteAddr().String(), err)
				return NewConnErr(ConnLoopBreak)
			}
			retries++
			log.Printf("write to ws [%s] failed; retrying (no. %d)", s.conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backoffFactor) * time.Second)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// handleReadErr maps a read failure to the action the session loop takes.
func (s *Session) handleReadErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteRetries {
			log.Printf("read from ws [%s] failed; retrying (no. %d)", s.conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backoffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		return ConnLoopBreak
	}
}

// reconnect swaps in the new connection and releases anyone waiting on the
// grace period.
func (s *Session) reconnect(conn *websocket.Conn) {
	close(s.reconnectionSignal)
	s.conn = conn
	s.reconnectionSignal = make(chan bool)
}
