package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeReset  MessageType = "reset"
	MessageTypeStep   MessageType = "step"
	MessageTypeRender MessageType = "render"
	MessageTypeSpec   MessageType = "spec"

	// Server to client messages. render and spec replies reuse the
	// request type.
	MessageTypeObservation MessageType = "observation"
	MessageTypeStepResult  MessageType = "step_result"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes carried in error messages
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeBetOutOfRange = "bet_out_of_range"
	ErrCodeRoundNotDealt = "round_not_dealt"
	ErrCodeUnknownType   = "unknown_type"
)
