// Package main runs the DeenQuest companion in a terminal loop using an
// in-memory store. Useful for trying the analysis and unlock pipeline
// without a database.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/adk/model"

	"github.com/nulocaldev/deenquest/internal/analysis"
	"github.com/nulocaldev/deenquest/internal/chat"
	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/generation"
	"github.com/nulocaldev/deenquest/internal/models"
	"github.com/nulocaldev/deenquest/internal/prompt"
	"github.com/nulocaldev/deenquest/internal/storage"
	"github.com/nulocaldev/deenquest/internal/unlock"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	var llm model.LLM
	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		modelName := os.Getenv("LLM_MODEL")
		if modelName == "" {
			modelName = "gemini-2.5-flash"
		}
		var err error
		llm, err = models.New(ctx, provider, modelName, apiKey)
		if err != nil {
			log.Fatalf("failed to create chat model: %v", err)
		}
	}

	store := storage.NewMemoryStore()
	catalog := unlock.DefaultCatalog()
	chats := chat.NewService(chat.Config{
		Analyzer:      analysis.NewAnalyzer(),
		Conversations: conversation.NewService(store, conversation.NewAggregator()),
		Unlocks:       unlock.NewService(catalog, unlock.NewEvaluator(), store),
		Recommender:   unlock.NewRecommender(catalog, store),
		Generator:     generation.NewService(llm, prompt.NewBuilder(10)),
		History:       store,
	})

	userID := os.Getenv("DEENQUEST_USER")
	if userID == "" {
		userID = "local"
	}

	fmt.Println("DeenQuest companion. Type your message, or 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		resp, err := chats.HandleMessage(ctx, userID, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Println(resp.Reply)
		for _, n := range resp.Notifications {
			fmt.Printf("  [unlocked] %s: %s\n", n.Type, n.Title)
		}
		if len(resp.Suggestions) > 0 {
			titles := make([]string, 0, len(resp.Suggestions))
			for _, s := range resp.Suggestions {
				titles = append(titles, s.Title)
			}
			fmt.Printf("  [suggested] %s\n", strings.Join(titles, ", "))
		}
	}
}
