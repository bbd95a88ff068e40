package connection

// Players and orientations travel as their numeric engine values: player 0
// is the host (P1), orientation 0 is horizontal.

type ReqCreateMatch struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ReqJoinMatch struct {
	MatchId string `json:"match_id"`
}

type ReqAddShipType struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

type ReqPlaceShip struct {
	ShipTypeId  int   `json:"ship_type_id"`
	X           int   `json:"x"`
	Y           int   `json:"y"`
	Orientation uint8 `json:"orientation"`
}

type ReqShoot struct {
	X int `json:"x"`
	Y int `json:"y"`
}
