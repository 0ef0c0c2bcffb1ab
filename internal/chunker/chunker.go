// Package chunker splits raw document text into overlapping word windows.
package chunker

import (
	"fmt"
	"strings"
)

// DefaultChunkWords is the default window size in words.
const DefaultChunkWords = 220

// DefaultOverlapWords is the default overlap between consecutive windows.
const DefaultOverlapWords = 40

// Chunker produces deterministic word windows: every word of the input is
// covered, and each window after the first repeats the last OverlapWords
// words of its predecessor (clipped at the end of the text).
type Chunker struct {
	ChunkWords   int
	OverlapWords int
}

// New returns a chunker with the given window and overlap. Overlap must stay
// below the window size or the window never advances. Invalid parameters are
// rejected rather than substituted: chunk geometry determines the derived
// chunk ids, so a silently corrected typo would re-feed a document under
// different ids than its previous ingestion.
func New(chunkWords, overlapWords int) (*Chunker, error) {
	if chunkWords <= 0 {
		return nil, fmt.Errorf("chunk_words must be positive, got %d", chunkWords)
	}
	if overlapWords < 0 || overlapWords >= chunkWords {
		return nil, fmt.Errorf("overlap_words must be in [0, chunk_words), got %d with chunk_words %d", overlapWords, chunkWords)
	}
	return &Chunker{ChunkWords: chunkWords, OverlapWords: overlapWords}, nil
}

// Split tokenizes text on whitespace and emits windows joined by single
// spaces. Empty or whitespace-only input yields no chunks; callers treat
// that as an ingestion failure, not a silent no-op.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	n := len(words)
	if n == 0 {
		return nil
	}

	step := c.ChunkWords - c.OverlapWords
	chunks := make([]string, 0, (n+step-1)/step)

	i := 0
	for {
		j := i + c.ChunkWords
		if j > n {
			j = n
		}

		window := strings.TrimSpace(strings.Join(words[i:j], " "))
		if window != "" {
			chunks = append(chunks, window)
		}

		if j == n {
			break
		}
		i = j - c.OverlapWords
		if i < 0 {
			i = 0
		}
	}

	return chunks
}
