package connection

const (
	CodeSessionId uint8 = iota
	CodeReceivedInvalidSessionId

	// Match lifecycle
	CodeCreateMatch
	CodeJoinMatch

	// Setup phase
	CodeAddShipType
	CodePlaceShip
	CodeStartGame

	// Play phase
	CodeShoot
	CodeEndMatch

	CodeInvalidSignal

	// if the incoming message does not contain a "code" field
	CodeSignalAbsent

	CodeOpponentDisconnected
	CodeOpponentReconnected
	CodeOpponentGracePeriod

	// Ask the server to offer the opponent a rematch; the opponent answers
	// with accepted or rejected.
	CodeRematchCall
	CodeRematchCallAccepted
	CodeRematchCallRejected
	CodeRematch
)

// Signal is the minimal shape every request must have; the code selects the
// handler that knows the full payload type.
type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
