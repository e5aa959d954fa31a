package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/room4-2/BaristaBot/conversation"
	"github.com/room4-2/BaristaBot/messages"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	writeBufferSize = 256
	writeTimeout    = 10 * time.Second
	maxMessageSize  = 64 * 1024
	maxTextLength   = 2000
)

// ClientSession is one customer's conversation with the assistant, reached
// either over a websocket or through the HTTP chat API
type ClientSession struct {
	ID           string
	Conversation *conversation.Conversation
	ClientConn   *websocket.Conn // nil for HTTP sessions
	CreatedAt    time.Time
	LastActivity time.Time

	responder *conversation.Responder
	onTurn    func(*ClientSession)

	// Use channels for non-blocking writes
	writeChan chan any

	mu        sync.RWMutex
	closed    bool
	CloseChan chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClientSession creates a session with a fresh conversation
func NewClientSession(id string, clientConn *websocket.Conn, responder *conversation.Responder, maxTranscript int) *ClientSession {
	ctx, cancel := context.WithCancel(context.Background())

	if clientConn != nil {
		clientConn.SetReadLimit(maxMessageSize)
		clientConn.EnableWriteCompression(true)
	}

	now := time.Now()
	return &ClientSession{
		ID:           id,
		Conversation: conversation.New(id, maxTranscript),
		ClientConn:   clientConn,
		CreatedAt:    now,
		LastActivity: now,
		responder:    responder,
		writeChan:    make(chan any, writeBufferSize),
		CloseChan:    make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins the message handling for websocket clients
func (cs *ClientSession) Start() {
	go cs.writePump()
	cs.queueMessage(messages.NewStatusMessage(cs.ID, "connected", "Session established"))
	cs.queueMessage(messages.NewTextMessage(cs.ID, conversation.WelcomeMessage))
	go cs.handleClientMessages()
}

// Reply runs one conversation turn and returns the assistant's answer
func (cs *ClientSession) Reply(ctx context.Context, text string) string {
	cs.touch()
	reply := cs.responder.Converse(ctx, cs.Conversation, text)
	cs.touch()

	if cs.onTurn != nil {
		cs.onTurn(cs)
	}
	return reply
}

// OrderSnapshot describes the pending and placed orders of the session
func (cs *ClientSession) OrderSnapshot() messages.OrderPayload {
	orders := cs.Conversation.Orders
	return messages.NewOrderPayload(
		orders.Lines(),
		cs.responder.Total(orders).StringFixed(2),
		orders.Completed(),
	)
}

// LastActive returns the time of the last client interaction
func (cs *ClientSession) LastActive() time.Time {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.LastActivity
}

func (cs *ClientSession) touch() {
	cs.mu.Lock()
	cs.LastActivity = time.Now()
	cs.mu.Unlock()
}

// writePump handles all outgoing messages in a single goroutine
func (cs *ClientSession) writePump() {
	defer func() {
		// Send close message before exiting
		cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		cs.ClientConn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}()

	for {
		select {
		case <-cs.CloseChan:
			return
		case msg, ok := <-cs.writeChan:
			if !ok {
				// Channel closed, exit gracefully
				return
			}
			if err := cs.writeJSON(msg); err != nil {
				return
			}
		}
	}
}

func (cs *ClientSession) writeJSON(msg any) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		log.Printf("❌ [%s] Failed to encode message: %v", cs.Conversation.ShortID(), err)
		return nil
	}
	cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return cs.ClientConn.WriteMessage(websocket.TextMessage, data)
}

// queueMessage adds a message to the write queue (non-blocking)
func (cs *ClientSession) queueMessage(msg any) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.closed {
		return
	}
	select {
	case cs.writeChan <- msg:
	default:
		log.Printf("⚠️ [%s] Write queue full, dropping message", cs.Conversation.ShortID())
	}
}

// Close terminates the session and cleans up resources
func (cs *ClientSession) Close() error {
	cs.mu.Lock()
	if cs.closed {
		cs.mu.Unlock()
		return nil
	}
	cs.closed = true
	cs.mu.Unlock()

	cs.cancel()

	// Close the write channel first to stop writePump
	close(cs.writeChan)

	// Signal close (for other goroutines waiting on this)
	close(cs.CloseChan)

	// Close client connection - don't write close message as writePump is stopped
	if cs.ClientConn != nil {
		cs.ClientConn.Close()
	}

	return nil
}

// IsClosed returns whether the session is closed
func (cs *ClientSession) IsClosed() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.closed
}

func (cs *ClientSession) handleClientMessages() {
	defer cs.Close()

	for {
		select {
		case <-cs.CloseChan:
			return
		default:
			messageType, message, err := cs.ClientConn.ReadMessage()
			if err != nil {
				if !cs.IsClosed() && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("❌ [%s] WebSocket read error: %v", cs.Conversation.ShortID(), err)
				}
				return
			}

			cs.touch()

			if messageType == websocket.BinaryMessage {
				cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Binary messages are not supported"))
				continue
			}

			var clientMsg messages.ClientMessage
			if err := sonic.Unmarshal(message, &clientMsg); err != nil {
				cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid message format"))
				continue
			}

			cs.processClientMessage(&clientMsg)
		}
	}
}

func (cs *ClientSession) processClientMessage(msg *messages.ClientMessage) {
	switch msg.Type {
	case "text":
		var payload messages.TextPayload
		if err := sonic.Unmarshal(msg.Payload, &payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid text payload"))
			return
		}
		text := strings.TrimSpace(payload.Text)
		if text == "" || len(text) > maxTextLength {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Text must be between 1 and 2000 characters"))
			return
		}

		log.Printf("💬 [%s] User: %s", cs.Conversation.ShortID(), text)
		reply := cs.Reply(cs.ctx, text)
		cs.queueMessage(messages.NewTextMessage(cs.ID, reply))
		cs.queueMessage(messages.NewOrderMessage(cs.ID, cs.OrderSnapshot()))

	case "control":
		var payload messages.ControlPayload
		if err := sonic.Unmarshal(msg.Payload, &payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid control payload"))
			return
		}
		cs.handleControlMessage(&payload)

	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown message type: "+msg.Type))
	}
}

func (cs *ClientSession) handleControlMessage(payload *messages.ControlPayload) {
	switch payload.Action {
	case "ping":
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "pong", ""))
	case "order":
		cs.queueMessage(messages.NewOrderMessage(cs.ID, cs.OrderSnapshot()))
	case "history":
		cs.queueMessage(messages.NewHistoryMessage(cs.ID, cs.Conversation.Transcript.All()))
	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown control action: "+payload.Action))
	}
}
