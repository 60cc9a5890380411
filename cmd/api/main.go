package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	apiconfig "contract_intel/pkg/api/config"
	"contract_intel/pkg/api/contracts"
	"contract_intel/pkg/core/agent"
	"contract_intel/pkg/core/config"
	"contract_intel/pkg/core/extract"
	"contract_intel/pkg/core/pipeline"
	"contract_intel/pkg/core/prompt"
	"contract_intel/pkg/core/semantic"
	"contract_intel/pkg/core/store"
)

func main() {
	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Optional external prompt overrides.
	if _, statErr := os.Stat("resources"); statErr == nil {
		if err := prompt.LoadFromDirectory("resources"); err != nil {
			logger.Warn("prompt library load failed, using built-ins", "error", err)
		}
	}

	agentMgr := agent.NewManager(cfg.Agents)

	strategies := []extract.Strategy{}
	if cfg.Pipeline.SemanticEnabled {
		strategies = append(strategies, semantic.NewAnalyzer(agentMgr, logger))
	}
	strategies = append(strategies, extract.NewLexicalStrategy())

	orch := pipeline.New(strategies, pipeline.Config{
		MaxConcurrentChunks: cfg.Pipeline.MaxConcurrentChunks,
		ChunkTimeout:        time.Duration(cfg.Pipeline.ChunkTimeoutSeconds) * time.Second,
	}, logger)

	var repo store.ContractRepository
	if cfg.Database.Enabled {
		if err := store.InitDB(context.Background()); err != nil {
			logger.Error("database init failed", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		repo = store.NewPostgresRepo()
	} else {
		repo = store.NewMemoryRepo()
	}

	var docs *store.DocumentStore
	if cfg.ObjectStore.Enabled {
		docs, err = store.NewDocumentStore(cfg.ObjectStore.ObjectStoreConfig)
		if err != nil {
			logger.Error("object store init failed", "error", err)
			os.Exit(1)
		}
		if err := docs.EnsureBucket(context.Background()); err != nil {
			logger.Error("bucket init failed", "error", err)
			os.Exit(1)
		}
	}

	worker := pipeline.NewWorker(orch, repo, docs, logger)
	handler := contracts.NewHandler(worker, repo, docs, logger)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	api := router.PathPrefix("/api").Subrouter()
	handler.Register(api)
	apiconfig.NewHandler(agentMgr).Register(api)

	logger.Info("api server starting", "addr", cfg.Server.Addr, "provider", agentMgr.GetActiveProvider())
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
