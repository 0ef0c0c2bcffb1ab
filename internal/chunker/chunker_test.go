package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSplit_WindowSizes(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkWords int
		overlap    int
		wantChunks int
	}{
		{
			name:       "empty input",
			text:       "",
			chunkWords: 10,
			overlap:    2,
			wantChunks: 0,
		},
		{
			name:       "whitespace only",
			text:       "   \n\t  ",
			chunkWords: 10,
			overlap:    2,
			wantChunks: 0,
		},
		{
			name:       "fits in one window",
			text:       words(9),
			chunkWords: 10,
			overlap:    2,
			wantChunks: 1,
		},
		{
			name:       "exact window size",
			text:       words(10),
			chunkWords: 10,
			overlap:    2,
			wantChunks: 1,
		},
		{
			name:       "500 words window 220 overlap 40",
			text:       words(500),
			chunkWords: 220,
			overlap:    40,
			wantChunks: 3,
		},
		{
			name:       "no overlap",
			text:       words(30),
			chunkWords: 10,
			overlap:    0,
			wantChunks: 3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := New(test.chunkWords, test.overlap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			chunks := c.Split(test.text)

			if len(chunks) != test.wantChunks {
				t.Fatalf("chunks: %d, want: %d", len(chunks), test.wantChunks)
			}

			for i, chunk := range chunks {
				got := len(strings.Fields(chunk))
				if i < len(chunks)-1 && got != test.chunkWords {
					t.Errorf("chunk %d has %d words, want %d", i, got, test.chunkWords)
				}
				if got > test.chunkWords {
					t.Errorf("chunk %d has %d words, exceeds window %d", i, got, test.chunkWords)
				}
			}
		})
	}
}

func TestSplit_ConsecutiveOverlap(t *testing.T) {
	c, err := New(220, 40)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Split(words(500))

	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		curr := strings.Fields(chunks[i])
		if len(prev) < 40 || len(curr) < 40 {
			continue
		}

		tail := strings.Join(prev[len(prev)-40:], " ")
		head := strings.Join(curr[:40], " ")
		if tail != head {
			t.Errorf("chunk %d/%d overlap mismatch:\n tail: %s\n head: %s", i-1, i, tail, head)
		}
	}
}

func TestSplit_CoversEveryWord(t *testing.T) {
	c, err := New(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	text := words(50)
	chunks := c.Split(text)

	seen := map[string]bool{}
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk) {
			seen[w] = true
		}
	}

	for _, w := range strings.Fields(text) {
		if !seen[w] {
			t.Errorf("word %q not covered by any chunk", w)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c, err := New(12, 4)
	if err != nil {
		t.Fatal(err)
	}
	text := words(100)

	first := c.Split(text)
	second := c.Split(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs across runs", i)
		}
	}
}

func TestNew_RejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name       string
		chunkWords int
		overlap    int
	}{
		{"zero window", 0, 0},
		{"negative window", -5, 0},
		{"negative overlap", 10, -1},
		// Overlap >= window would stall the loop, and a quietly corrected
		// value would derive different chunk ids than a prior ingestion.
		{"overlap equals window", 10, 10},
		{"overlap exceeds window", 10, 300},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.chunkWords, test.overlap); err == nil {
				t.Errorf("New(%d, %d) accepted invalid parameters", test.chunkWords, test.overlap)
			}
		})
	}
}
