package api_test

import (
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/oceangrid/armada-backend/api"
	mb "github.com/oceangrid/armada-backend/models/battleship"
	mc "github.com/oceangrid/armada-backend/models/connection"
)

var (
	hostConn *websocket.Conn
	joinConn *websocket.Conn
)

// TestMain boots the full server (no database, analytics disabled) and dials
// two websocket clients playing against each other.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	sessionManager := mc.NewArmadaSessionManager()
	matchManager := mb.NewArmadaMatchManager()
	rp := api.NewRequestProcessor(sessionManager, matchManager, nil)

	server := httptest.NewServer(api.NewRouter(rp, nil))

	wsUrl := "ws" + strings.TrimPrefix(server.URL, "http") + "/battleship"

	var err error
	hostConn, _, err = websocket.DefaultDialer.Dial(wsUrl, nil)
	if err != nil {
		panic(err)
	}

	joinConn, _, err = websocket.DefaultDialer.Dial(wsUrl, nil)
	if err != nil {
		panic(err)
	}

	// Every fresh connection is greeted with its session id.
	for _, conn := range []*websocket.Conn{hostConn, joinConn} {
		var greeting mc.Message[mc.RespSessionId]
		if err := conn.ReadJSON(&greeting); err != nil {
			panic(err)
		}
		if greeting.Code != mc.CodeSessionId || greeting.Payload.SessionId == "" {
			panic("expected a session id greeting")
		}
	}

	code := m.Run()

	hostConn.Close()
	joinConn.Close()
	server.Close()
	os.Exit(code)
}

func send(t *testing.T, conn *websocket.Conn, req interface{}) {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
}

func receive[T any](t *testing.T, conn *websocket.Conn, wantCode uint8) mc.Message[T] {
	t.Helper()
	var msg mc.Message[T]
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Code != wantCode {
		t.Fatalf("expected code %d, got %d (error: %+v)", wantCode, msg.Code, msg.Error)
	}
	return msg
}

func receiveOk[T any](t *testing.T, conn *websocket.Conn, wantCode uint8) mc.Message[T] {
	t.Helper()
	msg := receive[T](t, conn, wantCode)
	if msg.Error != nil {
		t.Fatalf("unexpected error in response: %+v", msg.Error)
	}
	return msg
}

type placeShipReq struct {
	Code    uint8           `json:"code"`
	Payload mc.ReqPlaceShip `json:"payload"`
}

// TestMatchLifecycle drives one full match over the wire: create, join,
// catalog, placement, play to a win, and a rematch. The subtests are ordered
// and depend on each other.
func TestMatchLifecycle(t *testing.T) {
	var matchId string

	t.Run("unknown signal code is rejected", func(t *testing.T) {
		send(t, hostConn, struct {
			Code uint8 `json:"code"`
		}{Code: 255})

		msg := receive[mc.NoPayload](t, hostConn, mc.CodeInvalidSignal)
		if msg.Error == nil {
			t.Fatal("expected an error for an unknown code")
		}
	})

	t.Run("host creates a match", func(t *testing.T) {
		send(t, hostConn, struct {
			Code    uint8             `json:"code"`
			Payload mc.ReqCreateMatch `json:"payload"`
		}{Code: mc.CodeCreateMatch, Payload: mc.ReqCreateMatch{Width: 3, Height: 3}})

		msg := receiveOk[mc.RespCreateMatch](t, hostConn, mc.CodeCreateMatch)
		if msg.Payload.Player != uint8(mb.P1) {
			t.Fatalf("host should play as P1, got %d", msg.Payload.Player)
		}
		if msg.Payload.Width != 3 || msg.Payload.Height != 3 {
			t.Fatalf("unexpected dimensions: %dx%d", msg.Payload.Width, msg.Payload.Height)
		}
		if msg.Payload.MatchId == "" {
			t.Fatal("expected a match id")
		}
		matchId = msg.Payload.MatchId
	})

	t.Run("second player joins", func(t *testing.T) {
		send(t, joinConn, struct {
			Code    uint8           `json:"code"`
			Payload mc.ReqJoinMatch `json:"payload"`
		}{Code: mc.CodeJoinMatch, Payload: mc.ReqJoinMatch{MatchId: matchId}})

		msg := receiveOk[mc.RespJoinMatch](t, joinConn, mc.CodeJoinMatch)
		if msg.Payload.Player != uint8(mb.P2) {
			t.Fatalf("joiner should play as P2, got %d", msg.Payload.Player)
		}

		// The host is told the opponent arrived.
		hostCopy := receiveOk[mc.RespJoinMatch](t, hostConn, mc.CodeJoinMatch)
		if hostCopy.Payload.MatchId != matchId {
			t.Fatalf("host notification names the wrong match: %s", hostCopy.Payload.MatchId)
		}
	})

	t.Run("host registers the catalog", func(t *testing.T) {
		ships := []mc.ReqAddShipType{
			{Name: "Corvette", Length: 2},
			{Name: "Submarine", Length: 1},
		}

		for wantId, ship := range ships {
			send(t, hostConn, struct {
				Code    uint8             `json:"code"`
				Payload mc.ReqAddShipType `json:"payload"`
			}{Code: mc.CodeAddShipType, Payload: ship})

			msg := receiveOk[mc.RespShipType](t, hostConn, mc.CodeAddShipType)
			if msg.Payload.ShipTypeId != wantId {
				t.Fatalf("expected ship type id %d, got %d", wantId, msg.Payload.ShipTypeId)
			}

			// The catalog is relayed so the joiner can place too.
			joinCopy := receiveOk[mc.RespShipType](t, joinConn, mc.CodeAddShipType)
			if joinCopy.Payload.Name != ship.Name || joinCopy.Payload.Length != ship.Length {
				t.Fatalf("relay mismatch: %+v", joinCopy.Payload)
			}
		}
	})

	t.Run("starting before placement fails", func(t *testing.T) {
		send(t, hostConn, struct {
			Code uint8 `json:"code"`
		}{Code: mc.CodeStartGame})

		msg := receive[mc.RespStartGame](t, hostConn, mc.CodeStartGame)
		if msg.Error == nil {
			t.Fatal("expected an error starting with no ships placed")
		}
	})

	t.Run("both players place their fleets", func(t *testing.T) {
		placements := []struct {
			conn *websocket.Conn
			req  mc.ReqPlaceShip
			want int
		}{
			{hostConn, mc.ReqPlaceShip{ShipTypeId: 0, X: 0, Y: 0}, 1},
			{hostConn, mc.ReqPlaceShip{ShipTypeId: 1, X: 0, Y: 1}, 2},
			{joinConn, mc.ReqPlaceShip{ShipTypeId: 0, X: 0, Y: 0}, 3},
			{joinConn, mc.ReqPlaceShip{ShipTypeId: 1, X: 0, Y: 1}, 4},
		}

		for _, p := range placements {
			send(t, p.conn, placeShipReq{Code: mc.CodePlaceShip, Payload: p.req})
			msg := receiveOk[mc.RespPlaceShip](t, p.conn, mc.CodePlaceShip)
			if msg.Payload.PlacedShips != p.want {
				t.Fatalf("expected %d placed ships, got %d", p.want, msg.Payload.PlacedShips)
			}
		}
	})

	t.Run("host starts the game", func(t *testing.T) {
		send(t, hostConn, struct {
			Code uint8 `json:"code"`
		}{Code: mc.CodeStartGame})

		msg := receiveOk[mc.RespStartGame](t, hostConn, mc.CodeStartGame)
		if msg.Payload.CurrentPlayer != uint8(mb.P1) {
			t.Fatalf("P1 moves first, got %d", msg.Payload.CurrentPlayer)
		}

		joinCopy := receiveOk[mc.RespStartGame](t, joinConn, mc.CodeStartGame)
		if joinCopy.Payload.CurrentPlayer != uint8(mb.P1) {
			t.Fatalf("relay disagrees on the first mover: %d", joinCopy.Payload.CurrentPlayer)
		}
	})

	t.Run("shooting out of turn fails", func(t *testing.T) {
		send(t, joinConn, struct {
			Code    uint8       `json:"code"`
			Payload mc.ReqShoot `json:"payload"`
		}{Code: mc.CodeShoot, Payload: mc.ReqShoot{X: 2, Y: 2}})

		msg := receive[mc.RespShoot](t, joinConn, mc.CodeShoot)
		if msg.Error == nil {
			t.Fatal("expected an error shooting out of turn")
		}
	})

	t.Run("host shoots the joiner's fleet down", func(t *testing.T) {
		shots := []struct {
			x, y    int
			outcome string
		}{
			{0, 0, "hit"},
			{1, 0, "destroyed"},
			{0, 1, "winning_shot"},
		}

		for _, shot := range shots {
			send(t, hostConn, struct {
				Code    uint8       `json:"code"`
				Payload mc.ReqShoot `json:"payload"`
			}{Code: mc.CodeShoot, Payload: mc.ReqShoot{X: shot.x, Y: shot.y}})

			msg := receiveOk[mc.RespShoot](t, hostConn, mc.CodeShoot)
			if msg.Payload.Outcome != shot.outcome {
				t.Fatalf("shot (%d,%d): expected %q, got %q", shot.x, shot.y, shot.outcome, msg.Payload.Outcome)
			}
			if !msg.Payload.IsTurn {
				t.Fatal("a successful hit keeps the shooter's turn")
			}

			// The defender sees the same shot with the turn flag flipped.
			defenderCopy := receiveOk[mc.RespShoot](t, joinConn, mc.CodeShoot)
			if defenderCopy.Payload.Outcome != shot.outcome {
				t.Fatalf("defender copy mismatch: %q", defenderCopy.Payload.Outcome)
			}
			if defenderCopy.Payload.IsTurn {
				t.Fatal("defender copy must carry the flipped turn flag")
			}
		}

		// The winning shot is followed by the end-of-match announcement.
		for _, conn := range []*websocket.Conn{hostConn, joinConn} {
			endMsg := receiveOk[mc.RespEndMatch](t, conn, mc.CodeEndMatch)
			if endMsg.Payload.Winner != uint8(mb.P1) {
				t.Fatalf("expected P1 as winner, got %d", endMsg.Payload.Winner)
			}
		}
	})

	t.Run("rematch resets the match", func(t *testing.T) {
		// The loser asks for a rematch; the server relays the call.
		send(t, joinConn, struct {
			Code uint8 `json:"code"`
		}{Code: mc.CodeRematchCall})
		receiveOk[mc.NoPayload](t, hostConn, mc.CodeRematchCall)

		// The host accepts; both sides learn the match is back in setup.
		send(t, hostConn, struct {
			Code uint8 `json:"code"`
		}{Code: mc.CodeRematchCallAccepted})
		receiveOk[mc.NoPayload](t, hostConn, mc.CodeRematch)
		receiveOk[mc.NoPayload](t, joinConn, mc.CodeRematch)

		// The fresh setup accepts placements again with the old catalog.
		send(t, hostConn, placeShipReq{Code: mc.CodePlaceShip, Payload: mc.ReqPlaceShip{ShipTypeId: 0, X: 0, Y: 0}})
		msg := receiveOk[mc.RespPlaceShip](t, hostConn, mc.CodePlaceShip)
		if msg.Payload.PlacedShips != 1 {
			t.Fatalf("expected a single placement on the fresh board, got %d", msg.Payload.PlacedShips)
		}
	})
}
