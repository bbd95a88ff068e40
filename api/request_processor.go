package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/oceangrid/armada-backend/db/sqlc"
	mb "github.com/oceangrid/armada-backend/models/battleship"
	mc "github.com/oceangrid/armada-backend/models/connection"
)

const URLQuerySessionIdKeyword string = "sessionID"

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RequestProcessor runs the per-session request loop: upgrade, hand out a
// session id, then dispatch signals until the connection dies or the match
// ends for good.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	matchManager   mb.MatchManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
}

// NewRequestProcessor wires the managers together. The analytics manager may
// be nil; counters are skipped in that case.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	matchManager mb.MatchManager,
	analytics *sqlc.AnalyticsManager,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		matchManager:   matchManager,
		analytics:      analytics,
	}
	rp.ipnet = findServerIpNet()
	return rp
}

// findServerIpNet picks the first non-loopback IPv4 network of an up
// interface; analytics rows are keyed by it. Falls back to loopback when the
// host has no external interface.
func findServerIpNet() net.IPNet {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	return net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)}
}

// GetIpNet is exposed for tests asserting analytics rows.
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

// incrementCounter fires one analytics increment, logging and moving on if
// it fails. Analytics never block or kill a match. Callers check the
// analytics manager for nil before selecting the method to pass in.
func (rp RequestProcessor) incrementCounter(increment func(context.Context, pqtype.Inet) error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := increment(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		log.Println(err)
	}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIdKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established, remote addr:", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		session, err := rp.sessionManager.FindSession(sessionIdQuery)
		if err != nil {
			// Expired or invalid session id.
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionId))
			conn.Close()
			return
		}
		rp.sessionManager.ReconnectSession(session, conn)
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionMatch  *mb.Match
		sessionPlayer mb.Player
		sessionId     = session.Id()
	)

	defer func() {
		if sessionMatch != nil {
			rp.matchManager.TerminateMatch(sessionMatch.Id())
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(session)
	}()

	opponentSessionId := func() string {
		if sessionMatch == nil {
			return ""
		}
		return sessionMatch.OtherSessionId(sessionId)
	}

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionId)
	resp.AddPayload(mc.RespSessionId{SessionId: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries are spent; the connection is beyond saving.
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming request must contain a 'code' field", "")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		case mc.CodeCreateMatch:
			match, player, respMsg := NewRequest(payload).HandleCreateMatch(rp.matchManager, sessionId)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			sessionMatch = match
			sessionPlayer = player
			rp.sessionManager.SetSessionMatch(session, match)
			rp.sessionManager.SetSessionPlayer(session, player)

			if rp.analytics != nil {
				rp.incrementCounter(rp.analytics.IncrementMatchesCreatedCount)
			}

		case mc.CodeJoinMatch:
			match, player, respMsg := NewRequest(payload).HandleJoinMatch(rp.matchManager, sessionId)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			sessionMatch = match
			sessionPlayer = player
			rp.sessionManager.SetSessionMatch(session, match)
			rp.sessionManager.SetSessionPlayer(session, player)

			// The host learns the opponent has arrived.
			if err := rp.sessionManager.Communicate(opponentSessionId(), respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAddShipType:
			if sessionMatch == nil {
				if rp.writeNotInMatch(session, mc.CodeAddShipType) != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleAddShipType(sessionMatch)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			// The catalog is shared; the opponent needs it to place ships.
			if receiver := opponentSessionId(); receiver != "" {
				if err := rp.sessionManager.Communicate(receiver, respMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodePlaceShip:
			if sessionMatch == nil {
				if rp.writeNotInMatch(session, mc.CodePlaceShip) != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandlePlaceShip(sessionMatch, sessionPlayer)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeStartGame:
			if sessionMatch == nil {
				if rp.writeNotInMatch(session, mc.CodeStartGame) != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleStartGame(sessionMatch)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if err := rp.sessionManager.Communicate(opponentSessionId(), respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeShoot:
			if sessionMatch == nil {
				if rp.writeNotInMatch(session, mc.CodeShoot) != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			outcome, respMsg := NewRequest(payload).HandleShoot(sessionMatch, sessionPlayer)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if rp.analytics != nil {
				rp.incrementCounter(rp.analytics.IncrementShotsFiredCount)
			}

			// The defender sees the same shot from the other side.
			defenderMsg := respMsg
			defenderMsg.Payload.IsTurn = !respMsg.Payload.IsTurn
			if err := rp.sessionManager.Communicate(opponentSessionId(), defenderMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if outcome == mb.ShootOutcomeWinningShot {
				winner, _ := sessionMatch.Winner()
				endMsg := mc.NewMessage[mc.RespEndMatch](mc.CodeEndMatch)
				endMsg.AddPayload(mc.RespEndMatch{Winner: uint8(winner)})

				if err := rp.sessionManager.WriteToSessionConn(session, endMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				if err := rp.sessionManager.Communicate(opponentSessionId(), endMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeRematchCall:
			if sessionMatch == nil {
				if rp.writeNotInMatch(session, mc.CodeRematchCall) != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			if rp.analytics != nil {
				rp.incrementCounter(rp.analytics.IncrementRematchCalledCount)
			}

			msg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCall)
			if err := rp.sessionManager.Communicate(opponentSessionId(), msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRematchCallAccepted:
			if sessionMatch == nil {
				if rp.writeNotInMatch(session, mc.CodeRematchCallAccepted) != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg, err := NewRequest().HandleAcceptRematch(sessionMatch)
			if err != nil {
				log.Println(err)
				break sessionLoop
			}
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if err := rp.sessionManager.Communicate(opponentSessionId(), respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRematchCallRejected:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCallRejected)
			if receiver := opponentSessionId(); receiver != "" {
				_ = rp.sessionManager.Communicate(receiver, msg, mc.MessageTypeJSON)
			}
			break sessionLoop

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) writeNotInMatch(session *mc.Session, code uint8) error {
	msg := mc.NewMessage[mc.NoPayload](code)
	msg.AddError("session has not created or joined a match", "create or join a match first")
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}
