// Package scoring computes the completeness score of parsed contract data.
// The engine is a pure function over the canonical contract map: same input,
// same score, no I/O. Category scores land in 0-100 and combine through
// fixed weights that sum to exactly 100.
package scoring

// Category weights. These must sum to 100.
const (
	WeightFinancial = 30
	WeightParty     = 25
	WeightPayment   = 20
	WeightSLA       = 15
	WeightContact   = 10
)

// maxScoredParties bounds how many parties contribute to the party score.
const maxScoredParties = 3

// ComponentScore is one category's contribution in a breakdown.
type ComponentScore struct {
	Score     float64 `json:"score"`
	Weight    int     `json:"weight"`
	MaxPoints float64 `json:"max_points"`
}

// Breakdown is the full scoring detail for one contract.
type Breakdown struct {
	OverallScore       float64                   `json:"overall_score"`
	ComponentScores    map[string]ComponentScore `json:"component_scores"`
	Gaps               []string                  `json:"gaps"`
	TotalPossibleScore float64                   `json:"total_possible_score"`
}

// CalculateScore returns the weighted overall score (0-100, two decimal
// places) and the ordered gap list for parsed contract data in canonical
// map form.
func CalculateScore(data map[string]any) (float64, []string) {
	overall := weightedTotal(data)
	return overall, IdentifyGaps(data)
}

// GetScoreBreakdown returns per-category scores alongside the overall score
// and gaps.
func GetScoreBreakdown(data map[string]any) Breakdown {
	components := map[string]ComponentScore{
		"financial_completeness": {Score: financialScore(data), Weight: WeightFinancial, MaxPoints: 100},
		"party_identification":   {Score: partyScore(data), Weight: WeightParty, MaxPoints: 100},
		"payment_terms_clarity":  {Score: paymentScore(data), Weight: WeightPayment, MaxPoints: 100},
		"sla_definition":         {Score: slaScore(data), Weight: WeightSLA, MaxPoints: 100},
		"contact_information":    {Score: contactScore(data), Weight: WeightContact, MaxPoints: 100},
	}
	return Breakdown{
		OverallScore:       weightedTotal(data),
		ComponentScores:    components,
		Gaps:               IdentifyGaps(data),
		TotalPossibleScore: 100,
	}
}

func weightedTotal(data map[string]any) float64 {
	overall := financialScore(data)*WeightFinancial/100 +
		partyScore(data)*WeightParty/100 +
		paymentScore(data)*WeightPayment/100 +
		slaScore(data)*WeightSLA/100 +
		contactScore(data)*WeightContact/100
	return round2(overall)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// financialScore: total value 40, line items up to 30, currency 10, tax 10,
// additional fees 10.
func financialScore(data map[string]any) float64 {
	fin := asMap(data["financial_details"])
	if fin == nil {
		return 0
	}
	score := 0.0
	if truthy(fin["total_contract_value"]) {
		score += 40
	}
	if items := asList(fin["line_items"]); len(items) > 0 {
		itemScore := 30.0
		for _, it := range items {
			row := asMap(it)
			if truthy(row["description"]) && truthy(row["unit_price"]) {
				itemScore += 2
			}
		}
		if itemScore > 30 {
			itemScore = 30
		}
		score += itemScore
	}
	if truthy(fin["currency"]) {
		score += 10
	}
	if truthy(fin["tax_amount"]) {
		score += 10
	}
	if truthy(fin["additional_fees"]) {
		score += 10
	}
	return cap100(score)
}

// partyScore: 20 base for any party, then up to 80 points per party for the
// first three parties.
func partyScore(data map[string]any) float64 {
	parties := asList(data["parties"])
	if len(parties) == 0 {
		return 0
	}
	score := 20.0
	for i, p := range parties {
		if i >= maxScoredParties {
			break
		}
		party := asMap(p)
		ps := 0.0
		if truthy(party["name"]) {
			ps += 20
		}
		if truthy(party["role"]) {
			ps += 15
		}
		if truthy(party["legal_entity"]) {
			ps += 15
		}
		if truthy(party["email"]) {
			ps += 10
		}
		if truthy(party["phone"]) {
			ps += 10
		}
		if truthy(party["address"]) {
			ps += 10
		}
		if truthy(party["registration_number"]) {
			ps += 10
		}
		if ps > 80 {
			ps = 80
		}
		score += ps
	}
	return cap100(score)
}

// paymentScore: terms 40, schedule 25, due dates 20, methods 10, banking 5.
func paymentScore(data map[string]any) float64 {
	pt := asMap(data["payment_terms"])
	if pt == nil {
		return 0
	}
	score := 0.0
	if truthy(pt["payment_terms"]) {
		score += 40
	}
	if truthy(pt["payment_schedule"]) {
		score += 25
	}
	if len(asList(pt["due_dates"])) > 0 {
		score += 20
	}
	if len(asList(pt["payment_methods"])) > 0 {
		score += 10
	}
	if truthy(pt["banking_details"]) {
		score += 5
	}
	return cap100(score)
}

// slaScore: metrics 30, penalties 25, support 25, maintenance 20.
func slaScore(data map[string]any) float64 {
	sla := asMap(data["sla"])
	if sla == nil {
		return 0
	}
	score := 0.0
	if len(asList(sla["performance_metrics"])) > 0 {
		score += 30
	}
	if len(asList(sla["penalty_clauses"])) > 0 {
		score += 25
	}
	if truthy(sla["support_terms"]) {
		score += 25
	}
	if truthy(sla["maintenance_terms"]) {
		score += 20
	}
	return cap100(score)
}

// contactScore: account contacts up to 50, any party contact 50.
func contactScore(data map[string]any) float64 {
	score := 0.0
	if acct := asMap(data["account_info"]); acct != nil {
		if truthy(acct["contact_email"]) {
			score += 25
		}
		if truthy(acct["contact_phone"]) {
			score += 15
		}
		if truthy(acct["technical_support_contact"]) {
			score += 10
		}
	}
	for _, p := range asList(data["parties"]) {
		party := asMap(p)
		if truthy(party["email"]) || truthy(party["phone"]) {
			score += 50
			break
		}
	}
	return cap100(score)
}

func cap100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
