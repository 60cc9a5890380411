// Command pipeline processes a single contract document from the command
// line and prints the parsed data, score and gaps as JSON. Useful for
// debugging extraction without running the API server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"contract_intel/pkg/core/agent"
	"contract_intel/pkg/core/config"
	"contract_intel/pkg/core/extract"
	"contract_intel/pkg/core/pipeline"
	"contract_intel/pkg/core/semantic"
)

func main() {
	godotenv.Load()

	var (
		configPath = flag.String("config", "config/app.yaml", "path to app config")
		lexOnly    = flag.Bool("lexical-only", false, "skip the LLM pathway")
		timeout    = flag.Duration("timeout", 5*time.Minute, "overall processing timeout")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pipeline [flags] <contract-file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read failed", "path", path, "error", err)
		os.Exit(1)
	}

	strategies := []extract.Strategy{}
	if cfg.Pipeline.SemanticEnabled && !*lexOnly {
		strategies = append(strategies, semantic.NewAnalyzer(agent.NewManager(cfg.Agents), logger))
	}
	strategies = append(strategies, extract.NewLexicalStrategy())

	orch := pipeline.New(strategies, pipeline.Config{
		MaxConcurrentChunks: cfg.Pipeline.MaxConcurrentChunks,
		ChunkTimeout:        time.Duration(cfg.Pipeline.ChunkTimeoutSeconds) * time.Second,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := orch.ProcessDocument(ctx, path, raw)
	if err != nil {
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}

	out := map[string]any{
		"data":  result.Data,
		"score": result.Score,
		"gaps":  result.Gaps,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode failed", "error", err)
		os.Exit(1)
	}
}
