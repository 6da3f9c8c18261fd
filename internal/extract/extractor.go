// Package extract converts source documents (PDF, plain text, markdown)
// into plain text for chunking and embedding.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates a file extension the extractor cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyDocument indicates a readable file that yielded no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// Service extracts plain text from supported document files.
type Service struct{}

// NewService creates a text extraction service. If UNIDOC_LICENSE_KEY is set
// it is registered with unipdf; without it PDF extraction fails per file.
func NewService() *Service {
	setupPDFLicense()
	return &Service{}
}

// ExtractFile reads the file at path and returns its text content.
// Corrupt or empty documents return an error; callers processing a batch are
// expected to skip the file and continue.
func (s *Service) ExtractFile(path string) (string, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(path)
	case ".txt":
		var content []byte
		content, err = os.ReadFile(path)
		text = string(content)
	case ".md":
		var content []byte
		content, err = os.ReadFile(path)
		if err == nil {
			text = extractMarkdownText(content)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(path), ErrEmptyDocument)
	}
	return text, nil
}

// Supported reports whether the extractor handles the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md":
		return true
	}
	return false
}
