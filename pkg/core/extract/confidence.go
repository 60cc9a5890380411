package extract

// CategoryConfidences scores how much evidence each extraction category
// found, on a 0-100 scale. These are evidence scores, not completeness
// scores: they say how sure the extractor is about what it found, not how
// complete the contract is.
func CategoryConfidences(a map[string]any) map[string]float64 {
	conf := map[string]float64{
		"parties":           0,
		"financial_details": 0,
		"payment_terms":     0,
		"sla":               0,
		"overall":           0,
	}

	if parties, ok := a["parties"].([]map[string]any); ok && len(parties) > 0 {
		sum := 0.0
		for _, p := range parties {
			if c, ok := p["confidence_score"].(float64); ok {
				sum += c * 100
			} else {
				sum += 50
			}
		}
		conf["parties"] = sum / float64(len(parties))
	}

	if fin, ok := a["financial_details"].(map[string]any); ok {
		score := 0.0
		if fin["total_value"] != nil {
			score += 50
		}
		if items, ok := fin["line_items"].([]any); ok && len(items) > 0 {
			score += 30
		}
		if fin["tax_information"] != nil || fin["additional_fees"] != nil {
			score += 20
		}
		conf["financial_details"] = score
	}

	if pt, ok := a["payment_terms"].(map[string]any); ok {
		score := 0.0
		if pt["payment_terms"] != nil {
			score += 50
		}
		if pt["payment_schedule"] != nil {
			score += 30
		}
		if pt["payment_method"] != nil {
			score += 20
		}
		conf["payment_terms"] = score
	}

	if sla, ok := a["sla"].(map[string]any); ok {
		score := 0.0
		if sla["uptime_guarantee"] != nil {
			score += 40
		}
		if sla["response_time"] != nil || sla["resolution_time"] != nil {
			score += 30
		}
		if sla["support_terms"] != nil {
			score += 30
		}
		conf["sla"] = score
	}

	conf["overall"] = (conf["parties"] + conf["financial_details"] +
		conf["payment_terms"] + conf["sla"]) / 4
	return conf
}
