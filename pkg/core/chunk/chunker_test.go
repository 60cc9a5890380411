package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNeedsChunking(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		size int
		want bool
	}{
		{"empty", 0, false},
		{"small", 500, false},
		{"at budget", DefaultMaxTokens * 4, false},
		{"over budget", DefaultMaxTokens*4 + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.size)
			if got := c.NeedsChunking(text); got != tt.want {
				t.Errorf("NeedsChunking(len=%d) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestSplit_ShortText(t *testing.T) {
	c := New()

	if got := c.Split(""); got != nil {
		t.Errorf("Split(empty) = %v, want nil", got)
	}

	text := "This agreement is made between Acme Corp and Globex LLC."
	chunks := c.Split(text)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("Split(short) = %v, want single chunk equal to input", chunks)
	}
}

func TestSplit_CoversWholeInput(t *testing.T) {
	c := &Chunker{ChunkSize: 100, Overlap: 20, MaxTokens: DefaultMaxTokens}

	// Unique sentences so each chunk has exactly one position in the input.
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("Clause number ")
		sb.WriteByte(byte('0' + i/10))
		sb.WriteByte(byte('0' + i%10))
		sb.WriteString(" governs delivery of the contracted services. ")
	}
	text := sb.String()

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// First chunk starts the text, last chunk ends it.
	if !strings.HasPrefix(text, chunks[0]) {
		t.Errorf("first chunk is not a prefix of the input")
	}
	if !strings.HasSuffix(text, chunks[len(chunks)-1]) {
		t.Errorf("last chunk is not a suffix of the input")
	}

	// Consecutive chunks overlap or touch so no character is lost, and each
	// chunk advances past the previous one.
	prevStart, prevEnd := -1, 0
	for i, chunk := range chunks {
		start := strings.Index(text, chunk)
		if start < 0 {
			t.Fatalf("chunk %d not found in input", i)
		}
		if start > prevEnd {
			t.Errorf("gap before chunk %d: starts at %d, previous chunk ended at %d", i, start, prevEnd)
		}
		if start <= prevStart {
			t.Errorf("chunk %d does not advance: start %d, previous start %d", i, start, prevStart)
		}
		prevStart, prevEnd = start, start+len(chunk)
	}
	if prevEnd != len(text) {
		t.Errorf("chunks cover through %d, input has %d characters", prevEnd, len(text))
	}
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	c := &Chunker{ChunkSize: 100, Overlap: 10, MaxTokens: DefaultMaxTokens}

	// A sentence end sits inside the scan window before the naive cut.
	text := strings.Repeat("x", 60) + ". " + strings.Repeat("y", 200)
	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at sentence boundary, got %q", chunks[0])
	}
}

func TestSplit_NoBoundaryFallsBackToHardCut(t *testing.T) {
	c := &Chunker{ChunkSize: 100, Overlap: 10, MaxTokens: DefaultMaxTokens}

	text := strings.Repeat("z", 250)
	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 100 {
		t.Errorf("first chunk length = %d, want hard cut at 100", len(chunks[0]))
	}
}

func TestSplit_MultiByteRunesStayIntact(t *testing.T) {
	c := &Chunker{ChunkSize: 101, Overlap: 10, MaxTokens: DefaultMaxTokens}

	// Two- and three-byte runes with no sentence terminators, sized so the
	// naive cut lands mid-rune.
	text := strings.Repeat("§", 120) + strings.Repeat("契", 80)
	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk)
		}
	}
	if last := chunks[len(chunks)-1]; !strings.HasSuffix(text, last) {
		t.Errorf("last chunk is not a suffix of the input")
	}
}

func TestSplit_OverlapLargerThanProgress(t *testing.T) {
	// Overlap >= chunk size must still terminate.
	c := &Chunker{ChunkSize: 50, Overlap: 50, MaxTokens: DefaultMaxTokens}
	text := strings.Repeat("w", 400)

	chunks := c.Split(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	if total < len(text) {
		t.Errorf("chunks cover %d characters, input has %d", total, len(text))
	}
}
