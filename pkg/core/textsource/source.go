// Package textsource turns uploaded documents into plain contract text.
// Plain text passes through, HTML is sanitized and flattened, Markdown is
// rendered and then flattened. Extraction is failure tolerant: a document
// that cannot be parsed degrades to its raw bytes rather than failing the
// upload.
package textsource

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var reBlankRuns = regexp.MustCompile(`\n{3,}`)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ExtractText converts document bytes to contract text, choosing the
// decoder from the filename extension.
func ExtractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return FromHTML(data)
	case ".md", ".markdown":
		return FromMarkdown(data)
	default:
		return normalize(string(data)), nil
	}
}

// FromHTML strips markup and noise from an HTML document and returns its
// visible text. Parse failures fall back to the raw bytes.
func FromHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return normalize(string(data)), fmt.Errorf("html parse: %w", err)
	}

	doc.Find("script, style, noscript, iframe").Remove()
	doc.Find("[hidden], [style*='display:none'], [style*='display: none']").Remove()

	// Block elements need newline separation or sentences run together.
	doc.Find("p, div, h1, h2, h3, h4, h5, h6, li, tr, br").Each(func(i int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	// Table cells need a column gap so line-item rows stay recognizable.
	doc.Find("td, th").Each(func(i int, sel *goquery.Selection) {
		sel.AppendHtml("   ")
	})

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return normalize(text), nil
}

// FromMarkdown renders Markdown to HTML and flattens it through the HTML
// path, so tables and lists keep their layout hints.
func FromMarkdown(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(data, &buf); err != nil {
		return normalize(string(data)), fmt.Errorf("markdown render: %w", err)
	}
	return FromHTML(buf.Bytes())
}

// normalize trims trailing space per line and collapses blank-line runs.
func normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	out := strings.Join(lines, "\n")
	out = reBlankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
