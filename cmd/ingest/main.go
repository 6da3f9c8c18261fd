// Package main provides the ingestion CLI for the emergency response
// knowledge base.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mike-a-ellis/emergency-rag/internal/chunk"
	"github.com/mike-a-ellis/emergency-rag/internal/config"
	"github.com/mike-a-ellis/emergency-rag/internal/embedding"
	"github.com/mike-a-ellis/emergency-rag/internal/extract"
	"github.com/mike-a-ellis/emergency-rag/internal/ingest"
	"github.com/mike-a-ellis/emergency-rag/internal/storage"
)

var (
	dirFlag      string
	categoryFlag string
)

var rootCmd = &cobra.Command{
	Use:   "emergency-ingest",
	Short: "Emergency response knowledge base ingestion tool",
	Long:  "CLI tool for loading emergency response documents into Qdrant",
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest documents from a directory",
	Long: `Extracts, chunks and embeds every supported document in a directory.

This command:
1. Connects to Qdrant and verifies health
2. Ensures the embeddings collection exists
3. Extracts text from each PDF, text and markdown file
4. Splits the text into overlapping chunks
5. Embeds the chunks and stores them in Qdrant

Environment variables:
  QDRANT_HOST      Qdrant hostname (default: localhost)
  QDRANT_PORT      Qdrant gRPC port (default: 6334)
  GEMINI_API_KEY   Gemini API key (required with the default providers)
  OPENAI_API_KEY   OpenAI API key (required with the openai providers)`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&dirFlag, "dir", "", "directory to ingest (default: DATA_DIR)")
	ingestCmd.Flags().StringVar(&categoryFlag, "category", "", "category tag for ingested documents (default: DEFAULT_CATEGORY)")
	rootCmd.AddCommand(ingestCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	cfg := config.Load()

	dir := dirFlag
	if dir == "" {
		dir = cfg.DataDir
	}
	category := categoryFlag
	if category == "" {
		category = cfg.DefaultCategory
	}

	fmt.Printf("Starting ingestion from %s...\n", dir)
	fmt.Println()

	// 1. Connect to Qdrant
	fmt.Printf("Connecting to Qdrant at %s:%d...\n", cfg.QdrantHost, cfg.QdrantPort)
	store, err := storage.NewQdrantStore(cfg.QdrantHost, cfg.QdrantPort, cfg.Collection, cfg.VectorDim)
	if err != nil {
		return fmt.Errorf("Failed to connect to Qdrant: %w", err)
	}
	defer store.Close()

	// 2. Check health
	if err := store.Health(ctx); err != nil {
		return fmt.Errorf("Qdrant health check failed: %w", err)
	}
	fmt.Println("Qdrant healthy")

	// 3. Ensure collection exists
	if err := store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("Failed to ensure collection: %w", err)
	}

	// 4. Initialize embedding provider
	provider, err := embedding.NewProvider(ctx, cfg.EmbeddingProvider, cfg.EmbeddingModel)
	if err != nil {
		return fmt.Errorf("Failed to create embedding provider: %w", err)
	}
	embedder := embedding.NewEmbedder(provider, 0) // Use default batch size

	// 5. Initialize other components
	extractor := extract.NewService()
	splitter, err := chunk.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("Invalid chunking configuration: %w", err)
	}

	// 6. Run the pipeline
	fmt.Println()
	fmt.Println("Ingesting documents...")
	pipeline := ingest.NewPipeline(extractor, splitter, embedder, store, cfg.CallTimeout, slog.Default())

	tags := map[string]any{"category": category}
	result, err := pipeline.IngestDir(ctx, dir, tags)
	if err != nil {
		return fmt.Errorf("Ingestion failed: %w", err)
	}

	// 7. Print results
	fmt.Println()
	fmt.Println("Ingestion complete!")
	fmt.Printf("  Files: %d/%d\n", result.SuccessfulFiles, result.TotalFiles)
	fmt.Printf("  Chunks: %d\n", result.TotalChunks)
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Second))

	// 8. Print failed files if any
	if len(result.FailedFiles) > 0 {
		fmt.Println()
		fmt.Println("Failed files:")
		for _, failed := range result.FailedFiles {
			fmt.Printf("  - %s: %s\n", failed.Path, failed.Reason)
		}
	}

	fmt.Println()
	fmt.Printf("Total time: %s\n", time.Since(start).Round(time.Second))

	return nil
}
