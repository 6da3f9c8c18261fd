// Package ingest orchestrates document ingestion: extract text, chunk it,
// embed the chunks, and persist embedding records.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mike-a-ellis/emergency-rag/internal/chunk"
	"github.com/mike-a-ellis/emergency-rag/internal/extract"
	"github.com/mike-a-ellis/emergency-rag/internal/storage"
)

// Extractor converts a source document into plain text.
type Extractor interface {
	ExtractFile(path string) (string, error)
}

// Splitter divides extracted text into passages.
type Splitter interface {
	Split(text string) []chunk.Chunk
}

// Embedder maps passages to vectors.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists embedding records.
type Store interface {
	UpsertRecords(ctx context.Context, records []*storage.EmbeddingRecord) error
}

// IngestResult contains statistics about an ingestion run.
type IngestResult struct {
	TotalFiles      int
	SuccessfulFiles int
	TotalChunks     int
	FailedFiles     []FailedFile
	Duration        time.Duration
}

// FailedFile records a document that could not be ingested.
type FailedFile struct {
	Path   string
	Reason string
}

// Pipeline runs the full ingestion process for a directory of documents.
// Records are append-only: re-running ingestion over the same files creates
// duplicate rows under fresh IDs rather than replacing the old ones.
type Pipeline struct {
	extractor   Extractor
	splitter    Splitter
	embedder    Embedder
	store       Store
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewPipeline creates an ingestion pipeline with the given components.
// callTimeout bounds each external call; zero disables the bound.
func NewPipeline(
	extractor Extractor,
	splitter Splitter,
	embedder Embedder,
	store Store,
	callTimeout time.Duration,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor:   extractor,
		splitter:    splitter,
		embedder:    embedder,
		store:       store,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// IngestDir processes every supported document in dir sequentially. Tags are
// attached to each produced record's metadata. One file's failure never
// aborts the batch; failures are collected in the result.
func (p *Pipeline) IngestDir(ctx context.Context, dir string, tags map[string]any) (*IngestResult, error) {
	start := time.Now()
	result := &IngestResult{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !extract.Supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	result.TotalFiles = len(paths)
	p.logger.Info("Starting ingestion", "dir", dir, "files", len(paths))

	for _, path := range paths {
		chunks, err := p.processFile(ctx, path, tags)
		if err != nil {
			p.logger.Warn("Failed to ingest document", "path", path, "error", err)
			result.FailedFiles = append(result.FailedFiles, FailedFile{
				Path:   path,
				Reason: err.Error(),
			})
			continue
		}
		result.SuccessfulFiles++
		result.TotalChunks += chunks
	}

	result.Duration = time.Since(start)
	p.logger.Info("Ingestion complete",
		"successful", result.SuccessfulFiles,
		"failed", len(result.FailedFiles),
		"chunks", result.TotalChunks,
		"duration", result.Duration,
	)

	return result, nil
}

// processFile runs the full pipeline for one document and returns the number
// of chunks stored for it.
func (p *Pipeline) processFile(ctx context.Context, path string, tags map[string]any) (int, error) {
	text, err := p.extractor.ExtractFile(path)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}
	p.logger.Debug("Extracted document", "path", path, "size", len(text))

	chunks := p.splitter.Split(text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunks produced")
	}
	p.logger.Debug("Chunked document", "path", path, "chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	embedCtx, cancel := p.boundedContext(ctx)
	embeddings, err := p.embedder.EmbedDocuments(embedCtx, texts)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(embeddings))
	}

	ingestionDate := time.Now().UTC().Format(time.RFC3339)
	source := filepath.Base(path)

	records := make([]*storage.EmbeddingRecord, len(chunks))
	for i, c := range chunks {
		metadata := map[string]any{
			"source":         source,
			"ingestion_date": ingestionDate,
			"chunk_index":    c.Index,
		}
		for k, v := range tags {
			metadata[k] = v
		}
		records[i] = &storage.EmbeddingRecord{
			ID:        uuid.New().String(),
			Content:   c.Content,
			Metadata:  metadata,
			Embedding: embeddings[i],
		}
	}

	storeCtx, cancel := p.boundedContext(ctx)
	err = p.store.UpsertRecords(storeCtx, records)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("store records: %w", err)
	}

	p.logger.Info("Ingested document", "path", path, "chunks", len(chunks))
	return len(chunks), nil
}

func (p *Pipeline) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.callTimeout)
}
