package api

import (
	"encoding/json"
	"log"

	mb "github.com/oceangrid/armada-backend/models/battleship"
	mc "github.com/oceangrid/armada-backend/models/connection"
)

// Request is one incoming frame. Each handler unmarshals the payload it
// expects and answers with a typed message; failures travel inside the
// message, never as a dropped connection.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) > 1 {
		log.Println("cannot accept more than one payload")
		return req
	}
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

// HandleCreateMatch builds a fresh match with the requested dimensions. The
// creating session becomes the host and plays as P1.
func (r Request) HandleCreateMatch(matchManager mb.MatchManager, sessionId string) (*mb.Match, mb.Player, mc.Message[mc.RespCreateMatch]) {
	respMsg := mc.NewMessage[mc.RespCreateMatch](mc.CodeCreateMatch)

	var reqCreateMatch mc.Message[mc.ReqCreateMatch]
	if err := json.Unmarshal(r.payload, &reqCreateMatch); err != nil {
		respMsg.AddError(err.Error(), "invalid create match payload")
		return nil, 0, respMsg
	}

	match, err := matchManager.CreateMatch(reqCreateMatch.Payload.Width, reqCreateMatch.Payload.Height)
	if err != nil {
		respMsg.AddError(err.Error(), "failed to create match")
		return nil, 0, respMsg
	}
	match.SetHostSession(sessionId)

	respMsg.AddPayload(mc.RespCreateMatch{
		MatchId: match.Id(),
		Player:  uint8(mb.P1),
		Width:   match.Width(),
		Height:  match.Height(),
	})
	return match, mb.P1, respMsg
}

// HandleJoinMatch admits the session to an existing match as P2.
func (r Request) HandleJoinMatch(matchManager mb.MatchManager, sessionId string) (*mb.Match, mb.Player, mc.Message[mc.RespJoinMatch]) {
	respMsg := mc.NewMessage[mc.RespJoinMatch](mc.CodeJoinMatch)

	var reqJoinMatch mc.Message[mc.ReqJoinMatch]
	if err := json.Unmarshal(r.payload, &reqJoinMatch); err != nil {
		respMsg.AddError(err.Error(), "invalid join match payload")
		return nil, 0, respMsg
	}

	match, err := matchManager.GetMatch(reqJoinMatch.Payload.MatchId)
	if err != nil {
		respMsg.AddError(err.Error(), "failed to join match")
		return nil, 0, respMsg
	}

	player, err := match.Join(sessionId)
	if err != nil {
		respMsg.AddError(err.Error(), "failed to join match")
		return nil, 0, respMsg
	}

	respMsg.AddPayload(mc.RespJoinMatch{
		MatchId: match.Id(),
		Player:  uint8(player),
		Width:   match.Width(),
		Height:  match.Height(),
	})
	return match, player, respMsg
}

// HandleAddShipType registers a catalog entry shared by both players.
func (r Request) HandleAddShipType(match *mb.Match) mc.Message[mc.RespShipType] {
	respMsg := mc.NewMessage[mc.RespShipType](mc.CodeAddShipType)

	var reqAddShipType mc.Message[mc.ReqAddShipType]
	if err := json.Unmarshal(r.payload, &reqAddShipType); err != nil {
		respMsg.AddError(err.Error(), "invalid add ship type payload")
		return respMsg
	}

	shipType, err := match.AddShipType(reqAddShipType.Payload.Name, reqAddShipType.Payload.Length)
	if err != nil {
		respMsg.AddError(err.Error(), "failed to add ship type")
		return respMsg
	}

	respMsg.AddPayload(mc.RespShipType{
		ShipTypeId: int(shipType.Id()),
		Name:       shipType.Name(),
		Length:     shipType.Length(),
	})
	return respMsg
}

// HandlePlaceShip places one ship on the session player's own board.
func (r Request) HandlePlaceShip(match *mb.Match, player mb.Player) mc.Message[mc.RespPlaceShip] {
	respMsg := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)

	var reqPlaceShip mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &reqPlaceShip); err != nil {
		respMsg.AddError(err.Error(), "invalid place ship payload")
		return respMsg
	}

	err := match.PlaceShip(
		player,
		mb.ShipTypeId(reqPlaceShip.Payload.ShipTypeId),
		reqPlaceShip.Payload.X,
		reqPlaceShip.Payload.Y,
		mb.Orientation(reqPlaceShip.Payload.Orientation),
	)
	if err != nil {
		respMsg.AddError(err.Error(), "failed to place ship")
		return respMsg
	}

	respMsg.AddPayload(mc.RespPlaceShip{
		ShipTypeId:  reqPlaceShip.Payload.ShipTypeId,
		PlacedShips: match.PlacedShipCount(),
	})
	return respMsg
}

// HandleStartGame moves the match into the play phase once every ship type
// has been placed by both players.
func (r Request) HandleStartGame(match *mb.Match) mc.Message[mc.RespStartGame] {
	respMsg := mc.NewMessage[mc.RespStartGame](mc.CodeStartGame)

	currentPlayer, err := match.Start()
	if err != nil {
		respMsg.AddError(err.Error(), "failed to start game")
		return respMsg
	}

	respMsg.AddPayload(mc.RespStartGame{CurrentPlayer: uint8(currentPlayer)})
	return respMsg
}

// HandleShoot fires at the opponent's board and reports the outcome along
// with whose turn it is afterwards.
func (r Request) HandleShoot(match *mb.Match, player mb.Player) (mb.ShootOutcome, mc.Message[mc.RespShoot]) {
	respMsg := mc.NewMessage[mc.RespShoot](mc.CodeShoot)

	var reqShoot mc.Message[mc.ReqShoot]
	if err := json.Unmarshal(r.payload, &reqShoot); err != nil {
		respMsg.AddError(err.Error(), "invalid shoot payload")
		return 0, respMsg
	}

	outcome, err := match.Shoot(player, reqShoot.Payload.X, reqShoot.Payload.Y)
	if err != nil {
		respMsg.AddError(err.Error(), "failed to shoot")
		return 0, respMsg
	}

	currentPlayer, err := match.CurrentPlayer()
	if err != nil {
		respMsg.AddError(err.Error(), "failed to shoot")
		return 0, respMsg
	}

	respMsg.AddPayload(mc.RespShoot{
		X:             reqShoot.Payload.X,
		Y:             reqShoot.Payload.Y,
		Outcome:       outcome.String(),
		CurrentPlayer: uint8(currentPlayer),
		IsTurn:        currentPlayer == player,
	})
	return outcome, respMsg
}

// HandleAcceptRematch resets the match to a fresh setup phase with the same
// dimensions and catalog.
func (r Request) HandleAcceptRematch(match *mb.Match) (mc.Message[mc.NoPayload], error) {
	respMsg := mc.NewMessage[mc.NoPayload](mc.CodeRematch)

	if err := match.Rematch(); err != nil {
		respMsg.AddError(err.Error(), "failed to rematch")
		return respMsg, err
	}
	return respMsg, nil
}
