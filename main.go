package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/room4-2/BaristaBot/config"
	"github.com/room4-2/BaristaBot/conversation"
	"github.com/room4-2/BaristaBot/gemini"
	"github.com/room4-2/BaristaBot/intent"
	"github.com/room4-2/BaristaBot/kitchen"
	"github.com/room4-2/BaristaBot/menu"
	"github.com/room4-2/BaristaBot/server"
	"github.com/room4-2/BaristaBot/session"
)

type runnable interface {
	Start() error
	Shutdown(ctx context.Context) error
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cafeMenu := menu.Default()

	opts := []conversation.Option{conversation.WithHistoryTurns(cfg.HistoryTurns)}

	if cfg.KeywordsFile != "" {
		kw, err := intent.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			log.Fatalf("Failed to load keywords: %v", err)
		}
		opts = append(opts, conversation.WithKeywords(kw))
		log.Printf("📖 Loaded intent keywords from %s", cfg.KeywordsFile)
	}

	if cfg.AMQPURL != "" {
		publisher, err := kitchen.Dial(cfg.AMQPURL, cafeMenu)
		if err != nil {
			log.Fatalf("Failed to connect kitchen queue: %v", err)
		}
		defer publisher.Close()
		opts = append(opts, conversation.WithPublisher(publisher))
	}

	model, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer model.Close()
	log.Printf("✅ Gemini client ready (%s)", model.Model())

	responder := conversation.NewResponder(model, cafeMenu, opts...)

	// Create session manager
	sessionManager, err := session.NewManager(cfg, responder)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Start cleanup routine
	go sessionManager.StartCleanupRoutine(ctx)

	var servers []runnable
	switch cfg.ServerType {
	case "websocket":
		servers = append(servers, server.NewServerWebsocket(cfg, sessionManager))
	case "http":
		servers = append(servers, server.NewChatServer(cfg, sessionManager))
	case "both":
		servers = append(servers,
			server.NewServerWebsocket(cfg, sessionManager),
			server.NewChatServer(cfg, sessionManager),
		)
	default:
		log.Fatalf("Unknown SERVER_TYPE: %s", cfg.ServerType)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server shutdown error: %v", err)
			}
		}
		sessionManager.Shutdown()
	}()

	// Extra servers run in the background, the first one blocks
	for _, srv := range servers[1:] {
		go func(srv runnable) {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Server error: %v", err)
			}
		}(srv)
	}

	if err := servers[0].Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
