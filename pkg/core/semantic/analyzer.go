// Package semantic is the LLM-backed extraction pathway. It shares the
// Strategy interface with the lexical extractor, so the pipeline can run
// either and merge their chunk results identically. Failures surface as
// errors so the orchestrator can record the fallback and score from the
// remaining strategies; a contract upload still produces a scored result
// when the model is down.
package semantic

import (
	"context"
	"fmt"
	"log/slog"

	"contract_intel/pkg/core/agent"
	"contract_intel/pkg/core/prompt"
	"contract_intel/pkg/core/utils"
	"contract_intel/pkg/models"
)

// promptTextLimit caps how much contract text goes into one model request.
// Chunking upstream keeps spans under this, but a direct caller may pass
// anything.
const promptTextLimit = 8000

// aiConfidenceBoost rewards model-sourced sections over pattern-matched
// ones when confidences are compared downstream, capped at 100.
const aiConfidenceBoost = 10.0

// Analyzer implements extract.Strategy on top of an LLM provider.
type Analyzer struct {
	Agents *agent.Manager
	Role   string // agent role used for provider selection
	Logger *slog.Logger
}

func NewAnalyzer(agents *agent.Manager, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{Agents: agents, Role: "analyzer", Logger: logger}
}

func (a *Analyzer) Name() string { return "semantic" }

// Extract sends the text to the configured provider and parses the response
// into an Analysis. Any failure (provider, parsing, schema) comes back as an
// error; the orchestrator skips the chunk result and notes the fallback.
func (a *Analyzer) Extract(ctx context.Context, text string) (*models.Analysis, error) {
	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	result, err := a.analyze(ctx, text)
	if err != nil {
		a.Logger.Warn("semantic analysis failed", "error", err)
		return nil, err
	}
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, text string) (*models.Analysis, error) {
	pt, err := prompt.GetAnalysisPrompt()
	if err != nil {
		return nil, fmt.Errorf("prompt lookup: %w", err)
	}

	userPrompt, err := prompt.RenderUserPrompt(pt, prompt.NewContext().Set("ContractText", text))
	if err != nil {
		return nil, fmt.Errorf("prompt render: %w", err)
	}

	raw, err := a.Agents.ExecutePrompt(ctx, a.Role, userPrompt, pt.SystemPrompt, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("llm call: %w", err)
	}

	analysis := models.NewEmptyAnalysis()
	if _, err := utils.SmartParse(raw, analysis); err != nil {
		return nil, fmt.Errorf("response parse: %w", err)
	}
	analysis.Normalize()
	rescaleConfidences(analysis)
	return analysis, nil
}

// rescaleConfidences converts model confidences from the 0-1 scale the
// prompt asks for to the 0-100 scale the rest of the system uses, then adds
// the model-evidence boost.
func rescaleConfidences(a *models.Analysis) {
	for key, v := range a.ConfidenceScores {
		if v <= 1.0 {
			v *= 100
		}
		if v > 0 {
			v += aiConfidenceBoost
		}
		if v > 100 {
			v = 100
		}
		if v < 0 {
			v = 0
		}
		a.ConfidenceScores[key] = v
	}
}
