// Batch contract extraction tool.
//
// Walks a directory of contract documents (txt, md, html), runs each one
// through the full extraction pipeline, and writes a JSON result file per
// contract. Useful for regression runs over a corpus and for priming a
// results cache before a demo.
//
// Usage:
//
//	go run ./cmd/tools/batch_extract -in ./contracts -out ./batch_data
//
// With GEMINI_API_KEY set the tool runs the semantic strategy through the
// generative-ai-go client; without it (or with -lexical-only) it falls back
// to lexical extraction so the run still completes offline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contract_intel/pkg/core/agent"
	"contract_intel/pkg/core/extract"
	"contract_intel/pkg/core/pipeline"
	"contract_intel/pkg/core/semantic"
	"contract_intel/pkg/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// batchResult is the per-contract output record written to disk.
type batchResult struct {
	Filename    string               `json:"filename"`
	ProcessedAt string               `json:"processed_at"`
	Strategy    string               `json:"strategy"`
	Data        *models.ContractData `json:"data"`
	Score       float64              `json:"score"`
	Gaps        []string             `json:"gaps"`
}

// legacyGeminiProvider adapts the generative-ai-go client to the llm.Provider
// interface. The batch tool keeps its own provider so it can pin a model per
// run via -model instead of reading the agent config.
type legacyGeminiProvider struct {
	client    *genai.Client
	modelName string
}

func newLegacyGeminiProvider(ctx context.Context, modelName string) (*legacyGeminiProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &legacyGeminiProvider{client: client, modelName: modelName}, nil
}

func (p *legacyGeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(0.1)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
	if rf, ok := options["response_format"].(string); ok && rf == "json_object" {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

func (p *legacyGeminiProvider) AdaptInstructions(raw string) string {
	return raw
}

func (p *legacyGeminiProvider) Close() error {
	return p.client.Close()
}

var supportedExts = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

func main() {
	inDir := flag.String("in", "contracts", "directory of contract documents to process")
	outDir := flag.String("out", "batch_data", "directory for JSON result files")
	modelName := flag.String("model", "gemini-2.0-flash", "Gemini model for semantic extraction")
	lexicalOnly := flag.Bool("lexical-only", false, "skip the LLM and use lexical extraction only")
	timeout := flag.Duration("timeout", 120*time.Second, "per-document processing timeout")
	force := flag.Bool("force", false, "reprocess documents that already have a result file")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	strategyName := "lexical"
	var strategies []extract.Strategy
	if !*lexicalOnly {
		provider, err := newLegacyGeminiProvider(ctx, *modelName)
		if err != nil {
			logger.Warn("semantic extraction unavailable, falling back to lexical", "error", err)
		} else {
			defer provider.Close()
			mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})
			mgr.Register("gemini", provider)
			strategies = append(strategies, semantic.NewAnalyzer(mgr, logger))
			strategyName = "semantic+lexical"
		}
	}
	strategies = append(strategies, extract.NewLexicalStrategy())

	orch := pipeline.New(strategies, pipeline.Config{}, logger)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	entries, err := os.ReadDir(*inDir)
	if err != nil {
		logger.Error("failed to read input directory", "dir", *inDir, "error", err)
		os.Exit(1)
	}

	var processed, skipped, failed int
	for _, entry := range entries {
		if entry.IsDir() || !supportedExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		outPath := filepath.Join(*outDir, resultName(entry.Name()))
		if !*force {
			if _, err := os.Stat(outPath); err == nil {
				logger.Info("result exists, skipping", "file", entry.Name())
				skipped++
				continue
			}
		}

		if err := processFile(ctx, orch, filepath.Join(*inDir, entry.Name()), outPath, strategyName, *timeout); err != nil {
			logger.Error("processing failed", "file", entry.Name(), "error", err)
			failed++
			continue
		}
		logger.Info("processed", "file", entry.Name(), "result", outPath)
		processed++
	}

	fmt.Printf("done: %d processed, %d skipped, %d failed\n", processed, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func processFile(ctx context.Context, orch *pipeline.Orchestrator, path, outPath, strategyName string, timeout time.Duration) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := orch.ProcessDocument(ctx, filepath.Base(path), raw)
	if err != nil {
		return err
	}

	out := batchResult{
		Filename:    filepath.Base(path),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		Strategy:    strategyName,
		Data:        result.Data,
		Score:       result.Score,
		Gaps:        result.Gaps,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(outPath, data, 0o644)
}

// resultName maps contract.html -> contract.json.
func resultName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + ".json"
}
