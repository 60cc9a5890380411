// Package pipeline manages the end-to-end contract flow:
// document bytes -> text -> chunks -> per-chunk extraction -> merge ->
// typed contract data -> score. Chunks are processed concurrently but
// their results re-enter the merge in document order, so merge output is
// deterministic for a given input and strategy set.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"contract_intel/pkg/core/chunk"
	"contract_intel/pkg/core/extract"
	"contract_intel/pkg/core/merge"
	"contract_intel/pkg/core/scoring"
	"contract_intel/pkg/core/textsource"
	"contract_intel/pkg/models"
)

// Config tunes the orchestrator. Zero values select the defaults.
type Config struct {
	MaxConcurrentChunks int           // default 4
	ChunkTimeout        time.Duration // default 60s
}

const (
	defaultMaxConcurrentChunks = 4
	defaultChunkTimeout        = 60 * time.Second
)

// Orchestrator runs extraction strategies over chunked contract text and
// folds the results into one scored contract record.
type Orchestrator struct {
	strategies []extract.Strategy
	chunker    *chunk.Chunker
	cfg        Config
	logger     *slog.Logger
}

// New builds an orchestrator. Strategies run in priority order: results
// from earlier strategies win ties in the merge. An empty strategy list
// gets the lexical strategy so the pipeline always produces output.
func New(strategies []extract.Strategy, cfg Config, logger *slog.Logger) *Orchestrator {
	if len(strategies) == 0 {
		strategies = []extract.Strategy{extract.NewLexicalStrategy()}
	}
	if cfg.MaxConcurrentChunks <= 0 {
		cfg.MaxConcurrentChunks = defaultMaxConcurrentChunks
	}
	if cfg.ChunkTimeout <= 0 {
		cfg.ChunkTimeout = defaultChunkTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		strategies: strategies,
		chunker:    chunk.New(),
		cfg:        cfg,
		logger:     logger,
	}
}

// Result is a fully processed contract: parsed data plus its score.
type Result struct {
	Data  *models.ContractData
	Score float64
	Gaps  []string
}

// ProcessDocument runs the full pipeline on raw document bytes.
func (o *Orchestrator) ProcessDocument(ctx context.Context, filename string, raw []byte) (*Result, error) {
	text, err := textsource.ExtractText(filename, raw)
	if err != nil {
		// Extraction degraded to raw text, keep going.
		o.logger.Warn("text extraction degraded", "filename", filename, "error", err)
	}
	return o.ProcessText(ctx, text)
}

// ProcessText runs chunking, extraction, merge, conversion and scoring on
// contract text.
func (o *Orchestrator) ProcessText(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		// A blank document is a terminal result, not a failure: it scores
		// zero with the full gap list.
		data := models.NewContractData()
		data.ProcessingNotes = append(data.ProcessingNotes, "document contained no extractable text")
		score, gaps := scoring.CalculateScore(data.ToMap())
		return &Result{Data: data, Score: score, Gaps: gaps}, nil
	}
	start := time.Now()

	var chunks []string
	if o.chunker.NeedsChunking(text) {
		chunks = o.chunker.Split(text)
		o.logger.Info("chunking large document", "chars", len(text), "chunks", len(chunks))
	} else {
		chunks = []string{text}
	}

	analyses, failedStrategies := o.extractChunks(ctx, chunks)
	merged := merge.Analyses(analyses)

	data := toContractData(merged)
	data.ExtractedText = text
	for _, name := range failedStrategies {
		data.ProcessingNotes = append(data.ProcessingNotes,
			fmt.Sprintf("%s extraction unavailable, results come from the remaining strategies", name))
	}
	if allNil(analyses) {
		data.ProcessingNotes = append(data.ProcessingNotes, "all extraction strategies failed, contract data is empty")
	}

	score, gaps := scoring.CalculateScore(data.ToMap())
	o.logger.Info("contract processed",
		"chunks", len(chunks),
		"parties", len(data.Parties),
		"score", score,
		"gaps", len(gaps),
		"elapsed", time.Since(start))

	return &Result{Data: data, Score: score, Gaps: gaps}, nil
}

func allNil(analyses []*models.Analysis) bool {
	for _, a := range analyses {
		if a != nil {
			return false
		}
	}
	return true
}

// extractChunks fans chunk work out to a bounded worker set. The result
// slice is ordered chunk-major then strategy-major, so the merge sees
// chunk 0's strategies before chunk 1's. The second return value names the
// strategies that failed on at least one chunk, in strategy order.
func (o *Orchestrator) extractChunks(ctx context.Context, chunks []string) ([]*models.Analysis, []string) {
	results := make([]*models.Analysis, len(chunks)*len(o.strategies))
	failed := make([]bool, len(o.strategies))

	sem := make(chan struct{}, o.cfg.MaxConcurrentChunks)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for ci, text := range chunks {
		for si, strat := range o.strategies {
			wg.Add(1)
			go func(ci, si int, text string, strat extract.Strategy) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				chunkCtx, cancel := context.WithTimeout(ctx, o.cfg.ChunkTimeout)
				defer cancel()

				a, err := strat.Extract(chunkCtx, text)
				if err != nil {
					o.logger.Warn("chunk extraction failed",
						"strategy", strat.Name(), "chunk", ci, "error", err)
					mu.Lock()
					failed[si] = true
					mu.Unlock()
					return
				}
				results[ci*len(o.strategies)+si] = a
			}(ci, si, text, strat)
		}
	}
	wg.Wait()

	var names []string
	for si, f := range failed {
		if f {
			names = append(names, o.strategies[si].Name())
		}
	}
	return results, names
}
