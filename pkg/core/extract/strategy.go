package extract

import (
	"context"

	"contract_intel/pkg/models"
)

// Strategy is one way of turning a span of contract text into a structured
// analysis. The lexical strategy below is deterministic; the semantic
// package provides an LLM-backed implementation of the same interface.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, text string) (*models.Analysis, error)
}

// LexicalStrategy extracts by pattern matching alone. It never fails: worst
// case it returns an analysis with empty sections.
type LexicalStrategy struct{}

func NewLexicalStrategy() *LexicalStrategy { return &LexicalStrategy{} }

func (s *LexicalStrategy) Name() string { return "lexical" }

func (s *LexicalStrategy) Extract(_ context.Context, text string) (*models.Analysis, error) {
	a := models.NewEmptyAnalysis()

	a.Parties = ExtractParties(text)
	a.FinancialDetails = ExtractFinancials(text)
	a.PaymentTerms = ExtractPaymentTerms(text)
	a.RevenueClassification = ExtractRevenueClassification(text)
	a.SLA = ExtractSLA(text)
	a.AccountInfo = ExtractAccountInfo(text)
	a.ImportantDates = ExtractImportantDates(text)
	a.ContractType = ClassifyContractType(text)
	a.RiskFactors = ExtractRiskFactors(text)
	a.ComplianceIssues = ExtractComplianceIssues(text)

	a.Clauses = ExtractClauses(text)
	a.KeyValuePairs = ExtractKeyValuePairs(text)
	for _, kv := range a.KeyValuePairs {
		a.KeyTerms = append(a.KeyTerms, kv.Key)
	}

	a.ConfidenceScores = CategoryConfidences(map[string]any{
		"parties":           a.Parties,
		"financial_details": a.FinancialDetails,
		"payment_terms":     a.PaymentTerms,
		"sla":               a.SLA,
	})
	a.Normalize()
	return a, nil
}
