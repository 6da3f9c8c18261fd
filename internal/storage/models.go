package storage

// EmbeddingRecord is a persisted (content, metadata, vector) triple. Records
// are created during ingestion and never updated in place; re-ingesting a
// document appends new rows under fresh IDs.
type EmbeddingRecord struct {
	ID        string         // UUID
	Content   string         // Chunk text
	Metadata  map[string]any // Source filename, category, ingestion date, caller tags
	Embedding []float32      // Fixed-dimension vector
}

// ScoredRecord is a search hit with its cosine similarity to the query.
type ScoredRecord struct {
	Content  string
	Metadata map[string]any
	Score    float64
}
