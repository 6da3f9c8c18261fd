// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all settings shared by the server and the ingestion CLI.
// The embedding model appears exactly once here: ingestion and retrieval must
// embed with the same model or similarity search silently degrades.
type Config struct {
	// HTTP server
	Port string

	// Qdrant connection
	QdrantHost string
	QdrantPort int
	Collection string

	// Embedding space
	VectorDim      int
	EmbeddingModel string

	// Providers: "gemini" (default) or "openai"
	EmbeddingProvider  string
	GenerationProvider string
	GenerationModel    string

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Retrieval
	TopK           int
	ScoreThreshold float64

	// Timeout applied around each external call.
	CallTimeout time.Duration

	// Ingestion defaults
	DataDir         string
	DefaultCategory string
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		QdrantHost:         getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:         getEnvInt("QDRANT_PORT", 6334),
		Collection:         getEnv("QDRANT_COLLECTION", "emergency_response_embeddings"),
		VectorDim:          getEnvInt("VECTOR_DIM", 768),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "gemini"),
		GenerationProvider: getEnv("GENERATION_PROVIDER", "gemini"),
		GenerationModel:    getEnv("GENERATION_MODEL", "gemini-1.5-pro"),
		ChunkSize:          getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:       getEnvInt("CHUNK_OVERLAP", 200),
		TopK:               getEnvInt("RAG_TOP_K", 4),
		ScoreThreshold:     getEnvFloat("RAG_SCORE_THRESHOLD", 0.5),
		CallTimeout:        time.Duration(getEnvInt("CALL_TIMEOUT_SECONDS", 30)) * time.Second,
		DataDir:            getEnv("DATA_DIR", "data"),
		DefaultCategory:    getEnv("INGEST_CATEGORY", "emergency_response"),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
			return f
		}
	}
	return defaultValue
}
