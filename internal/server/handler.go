package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	errQueryRequired = "Query parameter is required and must be a string"
	errInternal      = "Failed to process your request"
)

// QueryRequest is the JSON body accepted by the query endpoint.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the JSON body returned on success.
type QueryResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Answerer is the RAG service dependency for the query endpoint.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// NewQueryHandler creates an HTTP handler for POST /api/rag.
// Malformed bodies and missing queries return 400, service failures 500.
func NewQueryHandler(service Answerer, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
			return
		}

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: errQueryRequired})
			return
		}

		answer, err := service.Answer(r.Context(), req.Query)
		if err != nil {
			logger.Error("query failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: errInternal})
			return
		}

		writeJSON(w, http.StatusOK, QueryResponse{Response: answer})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
