// Package merge folds per-chunk analyses into a single contract analysis.
// The discipline throughout is first-wins: earlier chunks sit earlier in the
// document, and contract headers carry the authoritative statements of
// parties, values and terms. Later chunks only fill holes.
package merge

import (
	"strings"

	"contract_intel/pkg/models"
)

// neutralOverallConfidence is used when no chunk reported an overall score.
const neutralOverallConfidence = 80.0

// Analyses combines chunk results in document order. nil entries are
// skipped. An empty input produces an empty analysis, never nil.
func Analyses(chunks []*models.Analysis) *models.Analysis {
	out := models.NewEmptyAnalysis()
	if len(chunks) == 0 {
		return out
	}

	seenParties := make(map[string]bool)
	seenTerms := make(map[string]bool)
	seenRisks := make(map[string]bool)
	seenIssues := make(map[string]bool)
	seenClauses := make(map[string]bool)
	seenPairs := make(map[string]bool)

	var overallSum float64
	var overallN int

	for _, c := range chunks {
		if c == nil {
			continue
		}

		for _, p := range c.Parties {
			name, _ := p["name"].(string)
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" || seenParties[key] {
				continue
			}
			seenParties[key] = true
			out.Parties = append(out.Parties, p)
		}

		mergeSection(out.AccountInfo, c.AccountInfo)
		mergeFinancials(out.FinancialDetails, c.FinancialDetails)
		mergeSection(out.PaymentTerms, c.PaymentTerms)
		mergeSection(out.RevenueClassification, c.RevenueClassification)
		mergeSLA(out.SLA, c.SLA)
		mergeSection(out.ImportantDates, c.ImportantDates)

		out.KeyTerms = appendUnique(out.KeyTerms, c.KeyTerms, seenTerms)
		out.RiskFactors = appendUnique(out.RiskFactors, c.RiskFactors, seenRisks)
		out.ComplianceIssues = appendUnique(out.ComplianceIssues, c.ComplianceIssues, seenIssues)

		for _, cl := range c.Clauses {
			if cl.Type == "" || seenClauses[cl.Type] {
				continue
			}
			seenClauses[cl.Type] = true
			out.Clauses = append(out.Clauses, cl)
		}
		for _, kv := range c.KeyValuePairs {
			if kv.Key == "" || seenPairs[kv.Key] {
				continue
			}
			seenPairs[kv.Key] = true
			out.KeyValuePairs = append(out.KeyValuePairs, kv)
		}

		if out.ContractType == "" || out.ContractType == "Unknown" {
			if c.ContractType != "" && c.ContractType != "Unknown" {
				out.ContractType = c.ContractType
			}
		}

		for key, v := range c.ConfidenceScores {
			if key == "overall" {
				continue
			}
			if v > out.ConfidenceScores[key] {
				out.ConfidenceScores[key] = v
			}
		}
		if v, ok := c.ConfidenceScores["overall"]; ok && v > 0 {
			overallSum += v
			overallN++
		}

		if len(out.Summary) == 0 && len(c.Summary) > 0 {
			out.Summary = c.Summary
		}
	}

	if overallN > 0 {
		out.ConfidenceScores["overall"] = overallSum / float64(overallN)
	} else {
		out.ConfidenceScores["overall"] = neutralOverallConfidence
	}
	return out
}

// mergeSection fills empty keys in dst from src, never overwriting.
func mergeSection(dst, src map[string]any) {
	for key, v := range src {
		if isEmptyValue(v) {
			continue
		}
		if existing, ok := dst[key]; !ok || isEmptyValue(existing) {
			dst[key] = v
		}
	}
}

// mergeFinancials is mergeSection plus line-item concatenation: line items
// from every chunk accumulate instead of first-wins.
func mergeFinancials(dst, src map[string]any) {
	for key, v := range src {
		if isEmptyValue(v) {
			continue
		}
		if key == "line_items" {
			dst["line_items"] = appendItems(dst["line_items"], v)
			continue
		}
		if existing, ok := dst[key]; !ok || isEmptyValue(existing) {
			dst[key] = v
		}
	}
}

// mergeSLA is mergeSection plus performance-metric concatenation.
func mergeSLA(dst, src map[string]any) {
	for key, v := range src {
		if isEmptyValue(v) {
			continue
		}
		if key == "performance_metrics" {
			dst["performance_metrics"] = appendItems(dst["performance_metrics"], v)
			continue
		}
		if existing, ok := dst[key]; !ok || isEmptyValue(existing) {
			dst[key] = v
		}
	}
}

func appendItems(existing, incoming any) []any {
	out, _ := existing.([]any)
	add, ok := incoming.([]any)
	if !ok {
		return out
	}
	seen := make(map[string]bool, len(out))
	for _, it := range out {
		seen[itemKey(it)] = true
	}
	for _, it := range add {
		k := itemKey(it)
		if k != "" && seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

func itemKey(it any) string {
	switch v := it.(type) {
	case string:
		return strings.ToLower(v)
	case map[string]any:
		if d, ok := v["description"].(string); ok {
			return strings.ToLower(d)
		}
	}
	return ""
}

func appendUnique(dst, src []string, seen map[string]bool) []string {
	for _, s := range src {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		dst = append(dst, s)
	}
	return dst
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case float64:
		return t == 0
	case bool:
		return false
	default:
		return false
	}
}
