package merge

import (
	"testing"

	"contract_intel/pkg/models"
)

func chunkWith(mutate func(*models.Analysis)) *models.Analysis {
	a := models.NewEmptyAnalysis()
	mutate(a)
	return a
}

func TestAnalyses_EmptyInput(t *testing.T) {
	out := Analyses(nil)
	if out == nil {
		t.Fatal("expected non-nil analysis")
	}
	if len(out.Parties) != 0 {
		t.Errorf("expected no parties, got %v", out.Parties)
	}
	if got := out.ConfidenceScores["overall"]; got != neutralOverallConfidence {
		t.Errorf("overall confidence = %v, want %v", got, neutralOverallConfidence)
	}
}

func TestAnalyses_SkipsNilChunks(t *testing.T) {
	a := chunkWith(func(c *models.Analysis) {
		c.Parties = []map[string]any{{"name": "Acme Corp", "role": "vendor"}}
	})
	out := Analyses([]*models.Analysis{nil, a, nil})
	if len(out.Parties) != 1 {
		t.Fatalf("expected 1 party, got %d", len(out.Parties))
	}
}

func TestAnalyses_PartyDedupeCaseInsensitive(t *testing.T) {
	first := chunkWith(func(c *models.Analysis) {
		c.Parties = []map[string]any{{"name": "Acme Corp", "role": "vendor"}}
	})
	second := chunkWith(func(c *models.Analysis) {
		c.Parties = []map[string]any{
			{"name": "ACME CORP", "role": "supplier"},
			{"name": "Globex LLC", "role": "customer"},
		}
	})

	out := Analyses([]*models.Analysis{first, second})
	if len(out.Parties) != 2 {
		t.Fatalf("expected 2 parties after dedupe, got %d: %v", len(out.Parties), out.Parties)
	}
	if out.Parties[0]["role"] != "vendor" {
		t.Errorf("first-seen party should win, got role %v", out.Parties[0]["role"])
	}
	if out.Parties[1]["name"] != "Globex LLC" {
		t.Errorf("expected Globex as second party, got %v", out.Parties[1]["name"])
	}
}

func TestAnalyses_FirstWinsBothOrders(t *testing.T) {
	withTerms := chunkWith(func(c *models.Analysis) {
		c.PaymentTerms["payment_terms"] = "Net 30"
	})
	withOtherTerms := chunkWith(func(c *models.Analysis) {
		c.PaymentTerms["payment_terms"] = "Net 60"
		c.PaymentTerms["payment_schedule"] = "quarterly"
	})

	out := Analyses([]*models.Analysis{withTerms, withOtherTerms})
	if out.PaymentTerms["payment_terms"] != "Net 30" {
		t.Errorf("forward order: payment_terms = %v, want Net 30", out.PaymentTerms["payment_terms"])
	}
	if out.PaymentTerms["payment_schedule"] != "quarterly" {
		t.Errorf("forward order: schedule should fill from later chunk, got %v", out.PaymentTerms["payment_schedule"])
	}

	out = Analyses([]*models.Analysis{withOtherTerms, withTerms})
	if out.PaymentTerms["payment_terms"] != "Net 60" {
		t.Errorf("reverse order: payment_terms = %v, want Net 60", out.PaymentTerms["payment_terms"])
	}
}

func TestAnalyses_EmptyValuesDoNotClaim(t *testing.T) {
	empty := chunkWith(func(c *models.Analysis) {
		c.PaymentTerms["payment_terms"] = ""
		c.FinancialDetails["total_contract_value"] = 0.0
	})
	filled := chunkWith(func(c *models.Analysis) {
		c.PaymentTerms["payment_terms"] = "Net 45"
		c.FinancialDetails["total_contract_value"] = 25000.0
	})

	out := Analyses([]*models.Analysis{empty, filled})
	if out.PaymentTerms["payment_terms"] != "Net 45" {
		t.Errorf("empty string should not block later fill, got %v", out.PaymentTerms["payment_terms"])
	}
	if out.FinancialDetails["total_contract_value"] != 25000.0 {
		t.Errorf("zero value should not block later fill, got %v", out.FinancialDetails["total_contract_value"])
	}
}

func TestAnalyses_LineItemsConcatenate(t *testing.T) {
	first := chunkWith(func(c *models.Analysis) {
		c.FinancialDetails["line_items"] = []any{
			map[string]any{"description": "Platform license", "unit_price": 1000.0},
		}
	})
	second := chunkWith(func(c *models.Analysis) {
		c.FinancialDetails["line_items"] = []any{
			map[string]any{"description": "PLATFORM LICENSE", "unit_price": 999.0},
			map[string]any{"description": "Support retainer", "unit_price": 200.0},
		}
	})

	out := Analyses([]*models.Analysis{first, second})
	items, _ := out.FinancialDetails["line_items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 deduped line items, got %d: %v", len(items), items)
	}
	row, _ := items[0].(map[string]any)
	if row["unit_price"] != 1000.0 {
		t.Errorf("first-seen line item should win, got %v", row["unit_price"])
	}
}

func TestAnalyses_PerformanceMetricsConcatenate(t *testing.T) {
	first := chunkWith(func(c *models.Analysis) {
		c.SLA["performance_metrics"] = []any{"99.9% uptime"}
	})
	second := chunkWith(func(c *models.Analysis) {
		c.SLA["performance_metrics"] = []any{"99.9% uptime", "4 hour response time"}
	})

	out := Analyses([]*models.Analysis{first, second})
	metrics, _ := out.SLA["performance_metrics"].([]any)
	if len(metrics) != 2 {
		t.Errorf("expected 2 metrics, got %v", metrics)
	}
}

func TestAnalyses_KeyTermsUnique(t *testing.T) {
	first := chunkWith(func(c *models.Analysis) {
		c.KeyTerms = []string{"termination", "Indemnification"}
	})
	second := chunkWith(func(c *models.Analysis) {
		c.KeyTerms = []string{"indemnification", "force majeure"}
	})

	out := Analyses([]*models.Analysis{first, second})
	want := []string{"termination", "Indemnification", "force majeure"}
	if len(out.KeyTerms) != len(want) {
		t.Fatalf("KeyTerms = %v, want %v", out.KeyTerms, want)
	}
	for i, term := range want {
		if out.KeyTerms[i] != term {
			t.Errorf("KeyTerms[%d] = %q, want %q", i, out.KeyTerms[i], term)
		}
	}
}

func TestAnalyses_ContractTypeSkipsUnknown(t *testing.T) {
	first := chunkWith(func(c *models.Analysis) {
		c.ContractType = "Unknown"
	})
	second := chunkWith(func(c *models.Analysis) {
		c.ContractType = "Service Agreement"
	})

	out := Analyses([]*models.Analysis{first, second})
	if out.ContractType != "Service Agreement" {
		t.Errorf("ContractType = %q, want Service Agreement", out.ContractType)
	}
}

func TestAnalyses_ConfidenceAggregation(t *testing.T) {
	first := chunkWith(func(c *models.Analysis) {
		c.ConfidenceScores = map[string]float64{"parties": 60, "financial": 90, "overall": 70}
	})
	second := chunkWith(func(c *models.Analysis) {
		c.ConfidenceScores = map[string]float64{"parties": 80, "financial": 40, "overall": 90}
	})

	out := Analyses([]*models.Analysis{first, second})
	if out.ConfidenceScores["parties"] != 80 {
		t.Errorf("parties confidence = %v, want max 80", out.ConfidenceScores["parties"])
	}
	if out.ConfidenceScores["financial"] != 90 {
		t.Errorf("financial confidence = %v, want max 90", out.ConfidenceScores["financial"])
	}
	if out.ConfidenceScores["overall"] != 80 {
		t.Errorf("overall confidence = %v, want mean 80", out.ConfidenceScores["overall"])
	}
}

func TestAnalyses_NoOverallReportedUsesNeutral(t *testing.T) {
	a := chunkWith(func(c *models.Analysis) {
		c.Parties = []map[string]any{{"name": "Acme Corp"}}
	})
	out := Analyses([]*models.Analysis{a})
	if got := out.ConfidenceScores["overall"]; got != neutralOverallConfidence {
		t.Errorf("overall confidence = %v, want %v", got, neutralOverallConfidence)
	}
}
