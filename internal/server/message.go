package server

import (
	"encoding/json"

	"github.com/lox/blackjackforbots/internal/blackjack"
)

// Message is the envelope for every WebSocket message. Replies echo the
// request's RequestID.
type Message struct {
	Type      MessageType     `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a message with data encoded as JSON
func NewMessage(messageType MessageType, requestID string, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		RequestID: requestID,
		Data:      dataBytes,
	}, nil
}

// Client → Server Messages

// StepData places a bet. Action is required.
type StepData struct {
	Action *int `json:"action"`
}

// Server → Client Messages

type ObservationData struct {
	Observation [blackjack.ObservationSize]float64 `json:"observation"`
}

type StepResultData struct {
	Observation [blackjack.ObservationSize]float64 `json:"observation"`
	Reward      float64                            `json:"reward"`
	Done        bool                               `json:"done"`
	Info        map[string]any                     `json:"info"`
}

type RenderData struct {
	Text string `json:"text"`
}

type SpecData struct {
	SessionID       string `json:"sessionId"`
	BetLevels       int    `json:"betLevels"`
	Decks           int    `json:"decks"`
	ObservationSize int    `json:"observationSize"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
