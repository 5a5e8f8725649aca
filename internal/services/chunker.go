package services

import (
	"strings"
)

// ChunkResumeText splits cleaned resume text into overlapping chunks sized
// for the embedding model. Cuts prefer the last space before the limit so
// words stay whole.
func ChunkResumeText(text string, maxChunkSize, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= maxChunkSize {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		cut := end
		for i := end; i > start+maxChunkSize/2; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}

		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}
