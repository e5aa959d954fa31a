package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/room4-2/BaristaBot/config"
	"github.com/room4-2/BaristaBot/conversation"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrMaxSessions is returned when the session limit is reached
	ErrMaxSessions = errors.New("maximum sessions reached")

	// ErrSessionNotFound is returned for unknown session IDs
	ErrSessionNotFound = errors.New("session not found")
)

const activeSessionsKey = "active_sessions"

// Manager manages all client sessions
type Manager struct {
	sessions  map[string]*ClientSession
	mu        sync.RWMutex
	redis     *redis.Client
	config    *config.Config
	responder *conversation.Responder
}

// NewManager creates a session manager. Redis is optional: when it cannot be
// reached the manager keeps sessions in memory only.
func NewManager(cfg *config.Config, responder *conversation.Responder) (*Manager, error) {
	sm := &Manager{
		sessions:  make(map[string]*ClientSession),
		config:    cfg,
		responder: responder,
	}

	if cfg.RedisURL == "" {
		return sm, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		// Redis unavailable, continue without it
		log.Printf("⚠️ Redis unavailable at %s, keeping sessions in memory only: %v", cfg.RedisURL, err)
		redisClient.Close()
		return sm, nil
	}

	sm.redis = redisClient
	return sm, nil
}

// CreateSession creates a session bound to a websocket connection
func (sm *Manager) CreateSession(ctx context.Context, clientConn *websocket.Conn) (*ClientSession, error) {
	return sm.create(ctx, clientConn)
}

// CreateChatSession creates a session for the HTTP chat API
func (sm *Manager) CreateChatSession(ctx context.Context) (*ClientSession, error) {
	return sm.create(ctx, nil)
}

func (sm *Manager) create(ctx context.Context, clientConn *websocket.Conn) (*ClientSession, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.config.MaxSessions {
		return nil, ErrMaxSessions
	}

	sessionID := uuid.New().String()

	session := NewClientSession(sessionID, clientConn, sm.responder, sm.config.MaxTranscriptSize)
	session.onTurn = func(cs *ClientSession) {
		sm.recordTurn(context.Background(), cs)
	}

	sm.storeSession(ctx, sessionID, session)
	return session, nil
}

// storeSession saves a session to memory and Redis
func (sm *Manager) storeSession(ctx context.Context, sessionID string, session *ClientSession) {
	sm.sessions[sessionID] = session

	if sm.redis != nil {
		sm.redis.HSet(ctx, "session:"+sessionID, map[string]interface{}{
			"created_at":    session.CreatedAt.Format(time.RFC3339),
			"last_activity": session.LastActivity.Format(time.RFC3339),
			"status":        "active",
			"transport":     transportOf(session),
			"pending_items": 0,
			"orders_placed": 0,
		})
		sm.redis.SAdd(ctx, activeSessionsKey, sessionID)
		sm.redis.Expire(ctx, "session:"+sessionID, sm.config.SessionTimeout)
	}
}

// recordTurn refreshes the Redis view of a session after a turn
func (sm *Manager) recordTurn(ctx context.Context, session *ClientSession) {
	sm.mu.RLock()
	rdb := sm.redis
	sm.mu.RUnlock()
	if rdb == nil {
		return
	}

	orders := session.Conversation.Orders
	key := "session:" + session.ID
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"last_activity": session.LastActive().Format(time.RFC3339),
		"pending_items": orders.Len(),
		"orders_placed": len(orders.Completed()),
	})
	pipe.Expire(ctx, key, sm.config.SessionTimeout)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️ [%s] Failed to update session in Redis: %v", session.Conversation.ShortID(), err)
	}
}

// GetSession retrieves a session by ID
func (sm *Manager) GetSession(sessionID string) (*ClientSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	return session, exists
}

// RemoveSession cleans up and removes a session
func (sm *Manager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	session.Close()
	delete(sm.sessions, sessionID)
	sm.forget(ctx, sessionID)

	return nil
}

func (sm *Manager) forget(ctx context.Context, sessionID string) {
	if sm.redis != nil {
		sm.redis.Del(ctx, "session:"+sessionID)
		sm.redis.SRem(ctx, activeSessionsKey, sessionID)
	}
}

// GetActiveSessionCount returns current session count
func (sm *Manager) GetActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupInactiveSessions removes sessions that have been inactive
func (sm *Manager) CleanupInactiveSessions(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for id, session := range sm.sessions {
		if now.Sub(session.LastActive()) > sm.config.SessionTimeout {
			log.Printf("🧹 [%s] Removing inactive session", session.Conversation.ShortID())
			session.Close()
			delete(sm.sessions, id)
			sm.forget(ctx, id)
		}
	}
}

// StartCleanupRoutine starts periodic cleanup of inactive sessions
func (sm *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.CleanupInactiveSessions(ctx)
		}
	}
}

// Shutdown closes all sessions
func (sm *Manager) Shutdown() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, session := range sm.sessions {
		session.Close()
		delete(sm.sessions, id)
		sm.forget(context.Background(), id)
	}

	if sm.redis != nil {
		sm.redis.Close()
		sm.redis = nil
	}
}

func transportOf(session *ClientSession) string {
	if session.ClientConn != nil {
		return "websocket"
	}
	return "http"
}
