// Package chunk splits extracted document text into overlapping passages
// sized for embedding and retrieval.
package chunk

import (
	"fmt"
	"unicode"
)

// Chunk is a contiguous passage of a document's text.
type Chunk struct {
	Index   int    // Position in document (0, 1, 2...)
	Start   int    // Rune offset of the chunk in the source text
	Content string // Passage text, an exact substring of the source
}

// Splitter produces fixed-size overlapping chunks from plain text.
// Chunk starts advance by size-overlap runes, so any concept spanning a
// chunk boundary stays intact in at least one chunk.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter creates a splitter with the given chunk size and overlap,
// both measured in runes. Overlap must be non-negative and smaller than size.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split divides text into chunks. Chunk i starts at rune i*(size-overlap).
// Each chunk ends at the best natural boundary (paragraph, then sentence,
// then word) found past the next chunk's start, falling back to a hard cut
// at size runes. The final chunk runs to the end of the text and may be
// shorter. Empty input yields no chunks; no chunk is ever empty.
func (s *Splitter) Split(text string) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	stride := s.size - s.overlap
	var chunks []Chunk
	start := 0
	for {
		if len(runes)-start <= s.size {
			chunks = append(chunks, Chunk{
				Index:   len(chunks),
				Start:   start,
				Content: string(runes[start:]),
			})
			return chunks
		}

		// The chunk must cover everything up to the next start; past that
		// point, prefer ending on a natural boundary.
		end := boundaryEnd(runes, start+stride, start+s.size)
		chunks = append(chunks, Chunk{
			Index:   len(chunks),
			Start:   start,
			Content: string(runes[start:end]),
		})
		start += stride
	}
}

// boundaryEnd picks a cut point in (min, max]. Paragraph breaks win over
// sentence ends, sentence ends over word breaks; a hard cut at max is the
// fallback.
func boundaryEnd(runes []rune, min, max int) int {
	paragraph, sentence, word := -1, -1, -1
	for i := max; i > min; i-- {
		switch {
		case paragraph < 0 && isParagraphBreak(runes, i):
			paragraph = i
		case sentence < 0 && isSentenceEnd(runes, i):
			sentence = i
		case word < 0 && unicode.IsSpace(runes[i-1]):
			word = i
		}
	}
	if paragraph > 0 {
		return paragraph
	}
	if sentence > 0 {
		return sentence
	}
	if word > 0 {
		return word
	}
	return max
}

// isParagraphBreak reports whether position i directly follows a blank line.
func isParagraphBreak(runes []rune, i int) bool {
	return i >= 2 && runes[i-1] == '\n' && runes[i-2] == '\n'
}

// isSentenceEnd reports whether position i directly follows sentence
// punctuation plus whitespace.
func isSentenceEnd(runes []rune, i int) bool {
	if i < 2 || !unicode.IsSpace(runes[i-1]) {
		return false
	}
	switch runes[i-2] {
	case '.', '!', '?':
		return true
	}
	return false
}
