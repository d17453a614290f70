// Package main boots the DeenQuest companion service and wires application
// dependencies.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/adk/model"

	"github.com/nulocaldev/deenquest/internal/analysis"
	"github.com/nulocaldev/deenquest/internal/chat"
	"github.com/nulocaldev/deenquest/internal/config"
	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/generation"
	"github.com/nulocaldev/deenquest/internal/handler"
	"github.com/nulocaldev/deenquest/internal/memory"
	"github.com/nulocaldev/deenquest/internal/models"
	"github.com/nulocaldev/deenquest/internal/prompt"
	"github.com/nulocaldev/deenquest/internal/storage"
	"github.com/nulocaldev/deenquest/internal/unlock"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	slog.Info("configuration loaded", "llm_provider", cfg.LLMProvider, "llm_model", cfg.LLMModel, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	var llm model.LLM
	if cfg.LLMAPIKey != "" {
		llm, err = models.New(ctx, cfg.LLMProvider, cfg.LLMModel, cfg.LLMAPIKey)
		if err != nil {
			log.Fatalf("failed to create chat model: %v", err)
		}
	}

	var embedder memory.Embedder
	var retriever *memory.Retriever
	if cfg.GoogleAPIKey != "" {
		genEmbedder, err := memory.NewEmbedder(ctx, cfg.GoogleAPIKey, cfg.EmbeddingModel)
		if err != nil {
			log.Fatalf("failed to create embedder: %v", err)
		}
		embedder = genEmbedder
		retriever = memory.NewRetriever(genEmbedder, store.ChatMessages, cfg.TopK, cfg.SimilarityThreshold)
	}

	conversations := conversation.NewService(store.Contexts, conversation.NewAggregator())
	catalog := unlock.DefaultCatalog()
	unlocks := unlock.NewService(catalog, unlock.NewEvaluator(), store.Unlocks)
	recommender := unlock.NewRecommender(catalog, store.Unlocks)
	generator := generation.NewService(llm, prompt.NewBuilder(cfg.HistoryLimit))

	chats := chat.NewService(chat.Config{
		Analyzer:        analysis.NewAnalyzer(),
		Conversations:   conversations,
		Unlocks:         unlocks,
		Recommender:     recommender,
		Generator:       generator,
		Retriever:       retriever,
		Embedder:        embedder,
		History:         store.ChatMessages,
		HistoryLimit:    cfg.HistoryLimit,
		SuggestionLimit: cfg.SuggestionLimit,
	})

	h := handler.New(chats, conversations, unlocks, recommender)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err.Error())
		}
	}
}
