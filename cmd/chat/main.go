package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/room4-2/BaristaBot/config"
	"github.com/room4-2/BaristaBot/conversation"
	"github.com/room4-2/BaristaBot/gemini"
	"github.com/room4-2/BaristaBot/intent"
	"github.com/room4-2/BaristaBot/menu"

	"github.com/google/uuid"
)

func main() {
	quiet := flag.Bool("quiet", true, "hide server-side log lines")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	model, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer model.Close()

	opts := []conversation.Option{conversation.WithHistoryTurns(cfg.HistoryTurns)}
	if cfg.KeywordsFile != "" {
		kw, err := intent.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			log.Fatalf("Failed to load keywords: %v", err)
		}
		opts = append(opts, conversation.WithKeywords(kw))
	}

	responder := conversation.NewResponder(model, menu.Default(), opts...)
	conv := conversation.New(uuid.New().String(), cfg.MaxTranscriptSize)

	if *quiet {
		log.SetOutput(io.Discard)
	}

	fmt.Println("☕ BaristaBot Cafe")
	fmt.Printf("🤖 %s\n\n", conversation.WelcomeMessage)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("🧑 ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" || text == "/exit" {
			break
		}

		reply := responder.Converse(ctx, conv, text)
		fmt.Printf("🤖 %s\n\n", reply)
	}

	if placed := conv.Orders.Completed(); len(placed) > 0 {
		fmt.Printf("👋 %d order(s) placed this session. Goodbye!\n", len(placed))
	}
}
