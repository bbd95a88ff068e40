package connection

// NoPayload marks signals that carry nothing but their code.
type NoPayload bool

// Message is the envelope of every frame exchanged with a client. Payload
// and Error are mutually exclusive in practice: handlers either fill the
// payload or attach an error.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}
