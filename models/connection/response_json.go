package connection

type RespSessionId struct {
	SessionId string `json:"session_id"`
}

type RespCreateMatch struct {
	MatchId string `json:"match_id"`
	Player  uint8  `json:"player"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type RespJoinMatch struct {
	MatchId string `json:"match_id"`
	Player  uint8  `json:"player"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type RespShipType struct {
	ShipTypeId int    `json:"ship_type_id"`
	Name       string `json:"name"`
	Length     int    `json:"length"`
}

type RespPlaceShip struct {
	ShipTypeId int `json:"ship_type_id"`
	// Number of (player, ship type) placements recorded so far; the game can
	// start once this reaches twice the catalog size.
	PlacedShips int `json:"placed_ships"`
}

type RespStartGame struct {
	CurrentPlayer uint8 `json:"current_player"`
}

type RespShoot struct {
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Outcome       string `json:"outcome"`
	CurrentPlayer uint8  `json:"current_player"`
	IsTurn        bool   `json:"is_turn"`
}

type RespEndMatch struct {
	Winner uint8 `json:"winner"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
