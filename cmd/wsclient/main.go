package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
)

// Message types matching the server
type ClientMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type ControlPayload struct {
	Action string `json:"action"`
}

type ServerMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type TextResponsePayload struct {
	Text string `json:"text"`
}

type OrderPayload struct {
	Lines []struct {
		Display string `json:"display"`
	} `json:"lines"`
	Total string `json:"total"`
}

type StatusPayload struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func main() {
	// Flags
	serverURL := flag.String("server", "ws://localhost:8080/ws", "WebSocket server URL")
	flag.Parse()

	log.Printf("🔌 Connecting to %s...", *serverURL)

	// Connect to server
	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	log.Println("✅ Connected! Type a message, /order, /history or /quit")

	// Handle interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	// Read responses from server
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}

			var msg ServerMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Println("Parse error:", err)
				continue
			}

			switch msg.Type {
			case "text":
				var payload TextResponsePayload
				json.Unmarshal(msg.Payload, &payload)
				fmt.Printf("🤖 %s\n\n", payload.Text)

			case "order":
				var payload OrderPayload
				json.Unmarshal(msg.Payload, &payload)
				if len(payload.Lines) > 0 {
					names := make([]string, len(payload.Lines))
					for i, l := range payload.Lines {
						names[i] = l.Display
					}
					log.Printf("📋 %s ($%s)", strings.Join(names, ", "), payload.Total)
				}

			case "history":
				fmt.Printf("📜 %s\n", string(msg.Payload))

			case "status":
				var payload StatusPayload
				json.Unmarshal(msg.Payload, &payload)
				log.Printf("📊 Status: %s %s", payload.Status, payload.Message)

			case "error":
				log.Printf("❌ Error: %s", string(msg.Payload))
			}
		}
	}()

	// Read lines from stdin
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	for {
		select {
		case <-done:
			log.Println("Connection closed")
			return
		case <-interrupt:
			log.Println("\n👋 Interrupted, closing...")
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case line, ok := <-lines:
			if !ok || line == "/quit" {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if line == "" {
				continue
			}

			msg := ClientMessage{Type: "text", Payload: TextPayload{Text: line}}
			switch line {
			case "/order":
				msg = ClientMessage{Type: "control", Payload: ControlPayload{Action: "order"}}
			case "/history":
				msg = ClientMessage{Type: "control", Payload: ControlPayload{Action: "history"}}
			}

			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("Send error: %v", err)
				return
			}
		}
	}
}
