package services

import (
	"strings"
	"testing"
)

func TestChunkResumeTextShortInput(t *testing.T) {
	chunks := ChunkResumeText("short resume", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short resume" {
		t.Fatalf("short text must come back as a single chunk, got %v", chunks)
	}
}

func TestChunkResumeTextEmptyInput(t *testing.T) {
	if chunks := ChunkResumeText("   ", 100, 20); chunks != nil {
		t.Fatalf("expected no chunks for blank input, got %v", chunks)
	}
}

func TestChunkResumeTextSplitsOnWordBoundaries(t *testing.T) {
	words := make([]string, 60)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	chunks := ChunkResumeText(text, 50, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len([]rune(chunk)) > 50 {
			t.Fatalf("chunk %d exceeds the limit: %d runes", i, len([]rune(chunk)))
		}
		if strings.HasPrefix(chunk, "ord") || strings.HasSuffix(chunk, "wor") {
			t.Fatalf("chunk %d cut mid-word: %q", i, chunk)
		}
	}
}

func TestChunkResumeTextOverlap(t *testing.T) {
	words := make([]string, 40)
	for i := range words {
		words[i] = "token"
	}
	text := strings.Join(words, " ")

	chunks := ChunkResumeText(text, 60, 15)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Consecutive chunks share trailing/leading text
	tail := chunks[0][len(chunks[0])-5:]
	if !strings.Contains(chunks[1], tail) {
		t.Fatalf("expected overlap between chunks, got %q then %q", chunks[0], chunks[1])
	}
}

func TestChunkResumeTextUnbrokenRunAlwaysAdvances(t *testing.T) {
	// No spaces at all, so every cut lands at the hard limit.
	text := strings.Repeat("字", 500)

	chunks := ChunkResumeText(text, 100, 30)
	if len(chunks) == 0 {
		t.Fatalf("expected chunks for a long unbroken run")
	}

	var total int
	for _, chunk := range chunks {
		n := len([]rune(chunk))
		if n > 100 {
			t.Fatalf("chunk exceeds the limit: %d runes", n)
		}
		total += n
	}
	if total < 500 {
		t.Fatalf("chunks lost content: covered %d of 500 runes", total)
	}
}

func TestChunkResumeTextDegenerateSettings(t *testing.T) {
	text := strings.Repeat("a ", 200)

	// Overlap at or above the chunk size must not stall the loop.
	chunks := ChunkResumeText(text, 50, 50)
	if len(chunks) == 0 {
		t.Fatalf("expected chunks despite degenerate overlap")
	}
}
