package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/room4-2/BaristaBot/conversation"
	"github.com/room4-2/BaristaBot/messages"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Payload   json.RawMessage `json:"payload"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketConversation(t *testing.T) {
	cfg := testConfig()
	mgr := newTestManager(t, cfg)
	srv := httptest.NewServer(NewServerWebsocket(cfg, mgr).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	require.Equal(t, messages.TypeStatus, msg.Type)
	var status messages.StatusPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &status))
	assert.Equal(t, "connected", status.Status)

	msg = readMessage(t, conn)
	require.Equal(t, messages.TypeText, msg.Type)
	var text messages.TextResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &text))
	assert.Equal(t, conversation.WelcomeMessage, text.Text)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    "text",
		"payload": map[string]string{"text": "can I get a cold brew with an extra shot"},
	}))

	msg = readMessage(t, conn)
	require.Equal(t, messages.TypeText, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Payload, &text))
	assert.Contains(t, text.Text, "Cold Brew with Extra Shot")

	msg = readMessage(t, conn)
	require.Equal(t, messages.TypeOrder, msg.Type)
	var snapshot messages.OrderPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &snapshot))
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "4.25", snapshot.Total)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    "control",
		"payload": map[string]string{"action": "ping"},
	}))
	msg = readMessage(t, conn)
	require.Equal(t, messages.TypeStatus, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Payload, &status))
	assert.Equal(t, "pong", status.Status)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "dance"}))
	msg = readMessage(t, conn)
	require.Equal(t, messages.TypeError, msg.Type)
	var errPayload messages.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &errPayload))
	assert.Equal(t, messages.ErrCodeInvalidMessage, errPayload.Code)
}

func TestWebSocketSessionLimit(t *testing.T) {
	cfg := testConfig()
	mgr := newTestManager(t, cfg)
	srv := httptest.NewServer(NewServerWebsocket(cfg, mgr).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	readMessage(t, first)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()

	msg := readMessage(t, second)
	require.Equal(t, messages.TypeError, msg.Type)
	var errPayload messages.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &errPayload))
	assert.Equal(t, messages.ErrCodeSessionFailed, errPayload.Code)
}
