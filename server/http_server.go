package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/room4-2/BaristaBot/config"
	"github.com/room4-2/BaristaBot/conversation"
	"github.com/room4-2/BaristaBot/messages"
	"github.com/room4-2/BaristaBot/session"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxBodySize   = 16 * 1024
	maxTextLength = 2000
)

// ChatServer exposes the assistant as a plain JSON API
type ChatServer struct {
	httpServer     *http.Server
	sessionManager *session.Manager
	config         *config.Config
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
	Welcome   string `json:"welcome"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	SessionID string                `json:"sessionId"`
	Reply     string                `json:"reply"`
	Order     messages.OrderPayload `json:"order"`
}

func NewChatServer(cfg *config.Config, sessionManager *session.Manager) *ChatServer {
	s := &ChatServer{
		sessionManager: sessionManager,
		config:         cfg,
	}

	// Determine which port to use
	port := cfg.HTTPPort
	if cfg.ServerType == "http" {
		// When running as the only server, use the main port
		port = cfg.Port
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the chat API routes
func (s *ChatServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Post("/messages", s.handleMessage)
			r.Get("/order", s.handleOrder)
			r.Get("/history", s.handleHistory)
			r.Delete("/", s.handleDeleteSession)
		})
	})
	return r
}

// Start begins listening for connections
func (s *ChatServer) Start() error {
	log.Printf("☕ HTTP chat server starting on %s", s.httpServer.Addr)
	log.Printf("📡 Chat endpoint: http://localhost%s/sessions", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *ChatServer) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP chat server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *ChatServer) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	cs, err := s.sessionManager.CreateChatSession(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrMaxSessions) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, messages.ErrCodeSessionFailed, err.Error())
		return
	}

	log.Printf("✅ New chat session created: %s", cs.ID)
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: cs.ID,
		Welcome:   conversation.WelcomeMessage,
	})
}

func (s *ChatServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	cs, ok := s.lookup(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, messages.ErrCodeInvalidMessage, "failed to read body")
		return
	}

	var req messageRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, messages.ErrCodeInvalidMessage, "invalid JSON body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" || len(text) > maxTextLength {
		writeError(w, http.StatusBadRequest, messages.ErrCodeInvalidMessage, "text must be between 1 and 2000 characters")
		return
	}

	log.Printf("💬 [%s] User: %s", cs.Conversation.ShortID(), text)
	reply := cs.Reply(r.Context(), text)

	writeJSON(w, http.StatusOK, messageResponse{
		SessionID: cs.ID,
		Reply:     reply,
		Order:     cs.OrderSnapshot(),
	})
}

func (s *ChatServer) handleOrder(w http.ResponseWriter, r *http.Request) {
	cs, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cs.OrderSnapshot())
}

func (s *ChatServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	cs, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, messages.HistoryPayload{Turns: cs.Conversation.Transcript.All()})
}

func (s *ChatServer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessionManager.RemoveSession(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, messages.ErrCodeSessionNotFound, err.Error())
		return
	}
	log.Printf("🔌 Chat session closed: %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *ChatServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"server":   "http",
		"sessions": s.sessionManager.GetActiveSessionCount(),
	})
}

func (s *ChatServer) lookup(w http.ResponseWriter, r *http.Request) (*session.ClientSession, bool) {
	id := chi.URLParam(r, "sessionID")
	cs, ok := s.sessionManager.GetSession(id)
	if !ok {
		writeError(w, http.StatusNotFound, messages.ErrCodeSessionNotFound, session.ErrSessionNotFound.Error())
		return nil, false
	}
	return cs, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, `{"code":"INTERNAL","message":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, messages.ErrorPayload{Code: code, Message: msg})
}
