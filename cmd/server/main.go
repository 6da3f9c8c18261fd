// Package main provides the HTTP server entry point for the emergency
// response assistant.
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mike-a-ellis/emergency-rag/internal/config"
	"github.com/mike-a-ellis/emergency-rag/internal/embedding"
	"github.com/mike-a-ellis/emergency-rag/internal/generation"
	"github.com/mike-a-ellis/emergency-rag/internal/rag"
	"github.com/mike-a-ellis/emergency-rag/internal/server"
	"github.com/mike-a-ellis/emergency-rag/internal/storage"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg := config.Load()

	// Initialize storage
	store, err := storage.NewQdrantStore(cfg.QdrantHost, cfg.QdrantPort, cfg.Collection, cfg.VectorDim)
	if err != nil {
		log.Fatalf("failed to connect to Qdrant: %v", err)
	}
	defer store.Close()

	// Ensure collection exists
	if err := store.EnsureCollection(ctx); err != nil {
		log.Fatalf("failed to ensure collection: %v", err)
	}

	// Initialize embedding provider
	embedProvider, err := embedding.NewProvider(ctx, cfg.EmbeddingProvider, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("failed to create embedding provider: %v", err)
	}
	embedder := embedding.NewEmbedder(embedProvider, 0) // Use default batch size

	// Initialize generation provider
	genProvider, err := generation.NewProvider(ctx, cfg.GenerationProvider, cfg.GenerationModel)
	if err != nil {
		log.Fatalf("failed to create generation provider: %v", err)
	}
	generator := generation.NewGenerator(genProvider)

	// Assemble the RAG service
	service := rag.NewService(embedder, store, generator,
		rag.WithTopK(cfg.TopK),
		rag.WithScoreThreshold(cfg.ScoreThreshold),
		rag.WithCallTimeout(cfg.CallTimeout),
	)

	// Create HTTP server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rag", server.NewQueryHandler(service, nil))
	mux.HandleFunc("/health", server.NewHealthHandler(store))

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Starting HTTP server on %s (query at /api/rag, health at /health)", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
