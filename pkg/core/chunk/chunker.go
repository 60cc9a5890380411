// Package chunk splits long contract text into overlapping windows sized for
// the extraction pathways. Boundaries prefer sentence terminators so an
// entity (a party block, a priced line item) is not cut in half.
package chunk

import "unicode/utf8"

// Chunker produces ordered, finite, restartable sequences of substrings
// covering the whole input.
type Chunker struct {
	ChunkSize int // target window size in characters
	Overlap   int // trailing context re-used as the prefix of the next window
	MaxTokens int // model budget used by the chunked-vs-direct decision
}

// Defaults mirror the extraction pathway limits: ~8k characters per window
// with 1k of shared context, against a 30k-token model budget.
const (
	DefaultChunkSize = 8000
	DefaultOverlap   = 1000
	DefaultMaxTokens = 30000

	// How far back from the naive cut point we scan for a sentence end.
	boundaryScanWindow = 200
)

// New returns a Chunker with the default window parameters.
func New() *Chunker {
	return &Chunker{
		ChunkSize: DefaultChunkSize,
		Overlap:   DefaultOverlap,
		MaxTokens: DefaultMaxTokens,
	}
}

// NeedsChunking reports whether the text exceeds the direct-processing budget
// (rough 4-characters-per-token ratio).
func (c *Chunker) NeedsChunking(text string) bool {
	return len(text) > c.MaxTokens*4
}

// Split cuts text into overlapping chunks. Each boundary is moved back to the
// nearest sentence terminator within chunkSize-200 characters of the naive cut
// point; if none exists the naive boundary is used. Texts shorter than the
// chunk size yield exactly one chunk.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + c.ChunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		// Scan backward for a sentence terminator.
		limit := start + c.ChunkSize - boundaryScanWindow
		if limit < start {
			limit = start
		}
		if cut := lastSentenceEnd(text, limit, end); cut > 0 {
			end = cut
		} else {
			// The naive cut may land inside a multi-byte rune.
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
		}

		chunks = append(chunks, text[start:end])

		next := end - c.Overlap
		for next > 0 && !utf8.RuneStart(text[next]) {
			next--
		}
		if next <= start {
			// Overlap >= progress would loop forever; fall back to a hard
			// advance past the current window.
			next = end
		}
		start = next
	}
	return chunks
}

// lastSentenceEnd returns the index just past the last '.', '!' or '?' in
// text[limit:end], or 0 if the window has none.
func lastSentenceEnd(text string, limit, end int) int {
	for i := end; i > limit; i-- {
		switch text[i-1] {
		case '.', '!', '?':
			return i
		}
	}
	return 0
}
