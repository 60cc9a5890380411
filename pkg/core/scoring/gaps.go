package scoring

import "fmt"

// IdentifyGaps walks the canonical contract map and reports missing
// critical fields. The output order is stable: parties, financial details,
// payment terms, account info, revenue classification, SLA, dates.
func IdentifyGaps(data map[string]any) []string {
	gaps := []string{}

	parties := asList(data["parties"])
	if len(parties) == 0 {
		gaps = append(gaps, "No contract parties identified")
	} else {
		for i, p := range parties {
			party := asMap(p)
			if !truthy(party["name"]) {
				gaps = append(gaps, fmt.Sprintf("Party %d: Missing name", i+1))
			}
			if !truthy(party["role"]) {
				gaps = append(gaps, fmt.Sprintf("Party %d: Missing role", i+1))
			}
		}
	}

	if fin := asMap(data["financial_details"]); fin == nil {
		gaps = append(gaps, "No financial details found")
	} else {
		if !truthy(fin["total_contract_value"]) {
			gaps = append(gaps, "Missing total contract value")
		}
		if len(asList(fin["line_items"])) == 0 {
			gaps = append(gaps, "No line items found")
		}
	}

	if pt := asMap(data["payment_terms"]); pt == nil {
		gaps = append(gaps, "No payment terms found")
	} else if !truthy(pt["payment_terms"]) {
		gaps = append(gaps, "Missing payment terms (Net 30, Net 60, etc.)")
	}

	if acct := asMap(data["account_info"]); acct == nil {
		gaps = append(gaps, "No account information found")
	} else if !truthy(acct["contact_email"]) {
		gaps = append(gaps, "Missing contact email")
	}

	if rc := asMap(data["revenue_classification"]); rc == nil {
		gaps = append(gaps, "No revenue classification found")
	} else if !truthy(rc["payment_type"]) {
		gaps = append(gaps, "Missing payment type (recurring/one-time)")
	}

	if sla := asMap(data["sla"]); sla == nil {
		gaps = append(gaps, "No SLA information found")
	} else {
		if len(asList(sla["performance_metrics"])) == 0 {
			gaps = append(gaps, "No performance metrics defined")
		}
		if !truthy(sla["support_terms"]) {
			gaps = append(gaps, "No support terms defined")
		}
	}

	if !truthy(data["contract_start_date"]) {
		gaps = append(gaps, "Missing contract start date")
	}
	if !truthy(data["contract_end_date"]) {
		gaps = append(gaps, "Missing contract end date")
	}

	return gaps
}
