package extract

import (
	"strings"

	"contract_intel/pkg/models"
)

// ExtractPaymentTerms reads the billing shape of the contract: net terms,
// schedule, method, late penalties and early-payment discounts.
func ExtractPaymentTerms(text string) map[string]any {
	pt := map[string]any{}
	lower := strings.ToLower(text)

	if m := reNetTerms.FindStringSubmatch(text); m != nil {
		pt["payment_terms"] = "Net " + m[1]
	} else if strings.Contains(lower, "due on receipt") {
		pt["payment_terms"] = "Due on Receipt"
	} else if strings.Contains(lower, "payment in advance") || strings.Contains(lower, "prepaid") {
		pt["payment_terms"] = "Prepaid"
	}

	switch {
	case strings.Contains(lower, "monthly"):
		pt["payment_schedule"] = "monthly"
	case strings.Contains(lower, "quarterly"):
		pt["payment_schedule"] = "quarterly"
	case strings.Contains(lower, "annually") || strings.Contains(lower, "yearly") || strings.Contains(lower, "per annum"):
		pt["payment_schedule"] = "annually"
	case strings.Contains(lower, "one-time") || strings.Contains(lower, "lump sum") || strings.Contains(lower, "upfront"):
		pt["payment_schedule"] = "one-time"
	}

	switch {
	case strings.Contains(lower, "wire transfer"):
		pt["payment_method"] = "wire transfer"
	case strings.Contains(lower, "ach"):
		pt["payment_method"] = "ACH"
	case strings.Contains(lower, "credit card"):
		pt["payment_method"] = "credit card"
	case strings.Contains(lower, "check") || strings.Contains(lower, "cheque"):
		pt["payment_method"] = "check"
	}

	if strings.Contains(lower, "late fee") || strings.Contains(lower, "late payment") ||
		strings.Contains(lower, "interest on overdue") {
		if m := rePercentage.FindString(text); m != "" {
			pt["late_payment_penalty"] = m
		} else {
			pt["late_payment_penalty"] = "specified"
		}
	}
	if strings.Contains(lower, "early payment discount") || strings.Contains(lower, "prompt payment discount") {
		pt["early_payment_discount"] = "specified"
	}
	return pt
}

// ExtractRevenueClassification labels the revenue shape: recurring vs
// one-time, billing cycle and auto-renewal.
func ExtractRevenueClassification(text string) map[string]any {
	rc := map[string]any{}
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "subscription") || strings.Contains(lower, "recurring") ||
		strings.Contains(lower, "monthly fee") || strings.Contains(lower, "annual fee"):
		rc["payment_type"] = "recurring"
	case strings.Contains(lower, "one-time") || strings.Contains(lower, "lump sum") ||
		strings.Contains(lower, "single payment"):
		rc["payment_type"] = "one-time"
	}

	switch {
	case strings.Contains(lower, "monthly"):
		rc["billing_cycle"] = "monthly"
	case strings.Contains(lower, "quarterly"):
		rc["billing_cycle"] = "quarterly"
	case strings.Contains(lower, "annually") || strings.Contains(lower, "yearly"):
		rc["billing_cycle"] = "annually"
	}

	switch {
	case strings.Contains(lower, "auto-renew") || strings.Contains(lower, "automatically renew"):
		rc["auto_renewal"] = true
	case strings.Contains(lower, "shall not renew") || strings.Contains(lower, "no automatic renewal"):
		rc["auto_renewal"] = false
	}
	return rc
}

// ExtractSLA reads service commitments: uptime, response/resolution times,
// support terms, penalties and performance metrics.
func ExtractSLA(text string) map[string]any {
	sla := map[string]any{}
	lower := strings.ToLower(text)

	if idx := strings.Index(lower, "uptime"); idx >= 0 {
		window := contextWindow(text, idx, idx+6, 60)
		if m := rePercentage.FindString(window); m != "" {
			sla["uptime_guarantee"] = m
		}
	}
	if sla["uptime_guarantee"] == nil && strings.Contains(lower, "availability") {
		if idx := strings.Index(lower, "availability"); idx >= 0 {
			window := contextWindow(text, idx, idx+12, 60)
			if m := rePercentage.FindString(window); m != "" {
				sla["uptime_guarantee"] = m
			}
		}
	}

	if idx := strings.Index(lower, "response time"); idx >= 0 {
		window := contextWindow(text, idx, idx+13, 80)
		if m := reDuration.FindString(window); m != "" {
			sla["response_time"] = m
		}
	}
	if idx := strings.Index(lower, "resolution time"); idx >= 0 {
		window := contextWindow(text, idx, idx+15, 80)
		if m := reDuration.FindString(window); m != "" {
			sla["resolution_time"] = m
		}
	}

	var metrics []any
	for _, kw := range []string{"uptime", "response time", "resolution time", "throughput", "error rate", "availability"} {
		if strings.Contains(lower, kw) {
			metrics = append(metrics, kw)
		}
	}
	if len(metrics) > 0 {
		sla["performance_metrics"] = metrics
	}

	switch {
	case strings.Contains(lower, "24/7") || strings.Contains(lower, "24x7"):
		sla["support_terms"] = "24/7 support"
	case strings.Contains(lower, "business hours"):
		sla["support_terms"] = "business hours support"
	case strings.Contains(lower, "support"):
		sla["support_terms"] = "support specified"
	}

	if strings.Contains(lower, "service credit") || (strings.Contains(lower, "penalty") && strings.Contains(lower, "sla")) {
		sla["penalties"] = "service credits specified"
	}
	return sla
}

// ExtractImportantDates pulls the contract timeline from label-anchored
// lines, falling back to the first two bare dates in the text for start and
// end when labels are absent.
func ExtractImportantDates(text string) map[string]any {
	dates := map[string]any{}
	for _, rule := range dateRules {
		if m := rule.Pattern.FindStringSubmatch(text); m != nil {
			if d := reDate.FindString(m[1]); d != "" {
				dates[rule.Kind] = d
			} else if v := strings.TrimSpace(m[1]); v != "" && len(v) < 60 {
				dates[rule.Kind] = v
			}
		}
	}
	if dates["start_date"] == nil || dates["end_date"] == nil {
		bare := reDate.FindAllString(text, 2)
		if dates["start_date"] == nil && len(bare) > 0 {
			dates["start_date"] = bare[0]
		}
		if dates["end_date"] == nil && len(bare) > 1 {
			dates["end_date"] = bare[1]
		}
	}
	return dates
}

// ExtractAccountInfo gathers billing contact details: account number,
// billing contact, billing address and billing email.
func ExtractAccountInfo(text string) map[string]any {
	acct := map[string]any{}
	lower := strings.ToLower(text)

	for _, label := range []string{"account number", "account no", "account #"} {
		if idx := strings.Index(lower, label); idx >= 0 {
			window := contextWindow(text, idx, idx+len(label), 40)
			if m := reContractNo.FindStringSubmatch(window); m != nil {
				acct["account_number"] = m[1]
				break
			}
			rest := window[strings.Index(strings.ToLower(window), label)+len(label):]
			rest = strings.TrimLeft(rest, ":# \t")
			if f := strings.Fields(rest); len(f) > 0 && len(f[0]) >= 4 {
				acct["account_number"] = strings.Trim(f[0], ",.")
				break
			}
		}
	}

	if idx := strings.Index(lower, "billing contact"); idx >= 0 {
		window := contextWindow(text, idx, idx+15, 120)
		if m := reEmail.FindString(window); m != "" {
			acct["billing_email"] = m
		}
		line := lineAfterLabel(text[idx:], "billing contact")
		if line != "" {
			acct["billing_contact"] = line
		}
	}
	if acct["billing_email"] == nil {
		if idx := strings.Index(lower, "billing email"); idx >= 0 {
			window := contextWindow(text, idx, idx+13, 80)
			if m := reEmail.FindString(window); m != "" {
				acct["billing_email"] = m
			}
		}
	}
	if idx := strings.Index(lower, "billing address"); idx >= 0 {
		window := contextWindow(text, idx, idx+15, 160)
		if m := reAddress.FindString(window); m != "" {
			acct["billing_address"] = strings.TrimSpace(m)
		}
	}
	return acct
}

func lineAfterLabel(text, label string) string {
	rest := text[len(label):]
	rest = strings.TrimLeft(rest, ": \t")
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	rest = strings.TrimSpace(rest)
	if len(rest) > 80 {
		rest = rest[:80]
	}
	return rest
}

// ExtractClauses runs the clause rule table and returns one entry per
// matched clause type.
func ExtractClauses(text string) []models.Clause {
	var out []models.Clause
	for _, rule := range clauseRules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[0])
		if len(content) > 200 {
			content = content[:200]
		}
		out = append(out, models.Clause{
			Type:       rule.Type,
			Content:    content,
			Confidence: 0.8,
		})
	}
	return out
}

// ExtractKeyValuePairs runs the label-anchored field rules. A rule matching
// several times yields one pair per match; each pair gets a confidence score
// from pairConfidence.
func ExtractKeyValuePairs(text string) []models.KeyValuePair {
	var out []models.KeyValuePair
	for _, rule := range kvRules {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			value := strings.TrimSpace(m[1])
			if value == "" {
				continue
			}
			out = append(out, models.KeyValuePair{
				Key:        rule.FieldType,
				Value:      value,
				Confidence: pairConfidence(rule.FieldType, value),
				FieldType:  rule.FieldType,
			})
		}
	}
	return out
}

// pairConfidence scores a key/value pair in [0,1]: base evidence for the
// label match, a format-check bonus when the value matches the expected
// shape for the field, and a length bonus for substantial values.
func pairConfidence(fieldType, value string) float64 {
	score := 0.5
	formatOK := false
	switch fieldType {
	case "effective_date", "expiration_date":
		formatOK = reDate.MatchString(value)
	case "total_value":
		formatOK = reCurrency.MatchString(value) || reAmount.MatchString(value)
	case "contract_number":
		formatOK = reContractNo.MatchString("contract number: " + value)
	default:
		formatOK = len(value) > 3
	}
	if formatOK {
		score += 0.3
	}
	if len(value) >= 5 && len(value) <= 100 {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ClassifyContractType labels the document by its dominant vocabulary.
func ClassifyContractType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "master service agreement") || strings.Contains(lower, "msa"):
		return "Master Service Agreement"
	case strings.Contains(lower, "statement of work") || strings.Contains(lower, "sow"):
		return "Statement of Work"
	case strings.Contains(lower, "non-disclosure") || strings.Contains(lower, "nda"):
		return "Non-Disclosure Agreement"
	case strings.Contains(lower, "license agreement") || strings.Contains(lower, "licensing"):
		return "License Agreement"
	case strings.Contains(lower, "service agreement") || strings.Contains(lower, "services agreement"):
		return "Service Agreement"
	case strings.Contains(lower, "purchase order") || strings.Contains(lower, "purchase agreement"):
		return "Purchase Agreement"
	case strings.Contains(lower, "employment"):
		return "Employment Agreement"
	case strings.Contains(lower, "lease"):
		return "Lease Agreement"
	default:
		return "Unknown"
	}
}

// ExtractRiskFactors flags clause language commonly reviewed by legal.
func ExtractRiskFactors(text string) []string {
	lower := strings.ToLower(text)
	var risks []string
	checks := []struct {
		kw   string
		risk string
	}{
		{"unlimited liability", "Unlimited liability exposure"},
		{"indemnif", "Indemnification obligations present"},
		{"liquidated damages", "Liquidated damages clause present"},
		{"auto-renew", "Automatic renewal clause present"},
		{"exclusivity", "Exclusivity obligations present"},
		{"non-compete", "Non-compete restrictions present"},
		{"termination for convenience", "Counterparty may terminate for convenience"},
	}
	for _, c := range checks {
		if strings.Contains(lower, c.kw) {
			risks = append(risks, c.risk)
		}
	}
	return risks
}

// ExtractComplianceIssues flags regulatory frameworks named in the text.
func ExtractComplianceIssues(text string) []string {
	lower := strings.ToLower(text)
	var issues []string
	for _, fw := range []struct{ kw, label string }{
		{"gdpr", "GDPR data-protection obligations"},
		{"hipaa", "HIPAA compliance obligations"},
		{"sox", "SOX compliance obligations"},
		{"pci", "PCI-DSS compliance obligations"},
		{"ccpa", "CCPA privacy obligations"},
	} {
		if strings.Contains(lower, fw.kw) {
			issues = append(issues, fw.label)
		}
	}
	return issues
}
