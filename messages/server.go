package messages

import (
	"github.com/room4-2/BaristaBot/conversation"
	"github.com/room4-2/BaristaBot/order"
)

// Error codes
const (
	ErrCodeInvalidMessage  = "INVALID_MESSAGE"
	ErrCodeSessionFailed   = "SESSION_FAILED"
	ErrCodeSessionNotFound = "SESSION_NOT_FOUND"
)

// Message types
const (
	TypeText    = "text"
	TypeOrder   = "order"
	TypeHistory = "history"
	TypeStatus  = "status"
	TypeError   = "error"
)

// ServerMessage represents a message sent to frontend client
type ServerMessage struct {
	Type      string      `json:"type"` // "text", "order", "history", "status", "error"
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// TextResponsePayload contains the assistant reply
type TextResponsePayload struct {
	Text string `json:"text"`
}

// OrderPayload is a snapshot of the session's orders
type OrderPayload struct {
	Lines     []OrderLine            `json:"lines"`
	Total     string                 `json:"total"`
	Completed []order.CompletedOrder `json:"completed,omitempty"`
}

// OrderLine is a pending order line with its display text
type OrderLine struct {
	order.Line
	Display string `json:"display"`
}

// HistoryPayload carries the transcript
type HistoryPayload struct {
	Turns []conversation.Turn `json:"turns"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "pong", "disconnected"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewTextMessage creates a text response message
func NewTextMessage(sessionID, text string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeText,
		SessionID: sessionID,
		Payload: TextResponsePayload{
			Text: text,
		},
	}
}

// NewOrderPayload builds an order snapshot
func NewOrderPayload(lines []order.Line, total string, completed []order.CompletedOrder) OrderPayload {
	p := OrderPayload{
		Lines:     make([]OrderLine, len(lines)),
		Total:     total,
		Completed: completed,
	}
	for i, l := range lines {
		p.Lines[i] = OrderLine{Line: l, Display: l.String()}
	}
	return p
}

// NewOrderMessage creates an order snapshot message
func NewOrderMessage(sessionID string, payload OrderPayload) *ServerMessage {
	return &ServerMessage{
		Type:      TypeOrder,
		SessionID: sessionID,
		Payload:   payload,
	}
}

// NewHistoryMessage creates a transcript message
func NewHistoryMessage(sessionID string, turns []conversation.Turn) *ServerMessage {
	return &ServerMessage{
		Type:      TypeHistory,
		SessionID: sessionID,
		Payload:   HistoryPayload{Turns: turns},
	}
}

// NewStatusMessage creates a status message
func NewStatusMessage(sessionID, status, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeStatus,
		SessionID: sessionID,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(sessionID, code, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeError,
		SessionID: sessionID,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}
