package models

// Analysis is the loosely-typed result of one extraction pass over one chunk
// or source. Every producer (regex strategy, semantic strategy) emits the same
// fixed set of top-level keys; the merge engine reconciles a list of these
// into one canonical Analysis before conversion to ContractData.
//
// Category values stay as maps on purpose: the semantic extractor returns
// free-form JSON, and per-key first-wins merging works uniformly over maps.
// Coercion to the typed model happens once, after merge.
type Analysis struct {
	Parties               []map[string]any   `json:"parties"`
	AccountInfo           map[string]any     `json:"account_info"`
	FinancialDetails      map[string]any     `json:"financial_details"`
	PaymentTerms          map[string]any     `json:"payment_terms"`
	RevenueClassification map[string]any     `json:"revenue_classification"`
	SLA                   map[string]any     `json:"sla"`
	ImportantDates        map[string]any     `json:"important_dates"`
	KeyTerms              []string           `json:"key_terms"`
	RiskFactors           []string           `json:"risk_factors"`
	ComplianceIssues      []string           `json:"compliance_issues"`
	ContractType          string             `json:"contract_type"`
	ConfidenceScores      map[string]float64 `json:"confidence_scores"` // 0-100
	Summary               map[string]any     `json:"summary"`

	// KeyValuePairs and Clauses ride alongside the fixed schema; only the
	// regex strategy populates them.
	KeyValuePairs []KeyValuePair `json:"key_value_pairs,omitempty"`
	Clauses       []Clause       `json:"clauses,omitempty"`
}

// NewEmptyAnalysis returns a well-formed analysis with every key present and
// empty. Failure paths in the semantic adapter return this, never an error.
func NewEmptyAnalysis() *Analysis {
	return &Analysis{
		Parties:               []map[string]any{},
		AccountInfo:           map[string]any{},
		FinancialDetails:      map[string]any{},
		PaymentTerms:          map[string]any{},
		RevenueClassification: map[string]any{},
		SLA:                   map[string]any{},
		ImportantDates:        map[string]any{},
		KeyTerms:              []string{},
		RiskFactors:           []string{},
		ComplianceIssues:      []string{},
		ContractType:          "Unknown",
		ConfidenceScores:      map[string]float64{},
		Summary:               map[string]any{},
	}
}

// Normalize coerces missing or wrong-typed containers back to their documented
// defaults. Called at the adapter boundary immediately after parsing so
// nothing downstream ever touches a nil map or list.
func (a *Analysis) Normalize() {
	if a.Parties == nil {
		a.Parties = []map[string]any{}
	}
	if a.AccountInfo == nil {
		a.AccountInfo = map[string]any{}
	}
	if a.FinancialDetails == nil {
		a.FinancialDetails = map[string]any{}
	}
	if a.PaymentTerms == nil {
		a.PaymentTerms = map[string]any{}
	}
	if a.RevenueClassification == nil {
		a.RevenueClassification = map[string]any{}
	}
	if a.SLA == nil {
		a.SLA = map[string]any{}
	}
	if a.ImportantDates == nil {
		a.ImportantDates = map[string]any{}
	}
	if a.KeyTerms == nil {
		a.KeyTerms = []string{}
	}
	if a.RiskFactors == nil {
		a.RiskFactors = []string{}
	}
	if a.ComplianceIssues == nil {
		a.ComplianceIssues = []string{}
	}
	if a.ContractType == "" {
		a.ContractType = "Unknown"
	}
	if a.ConfidenceScores == nil {
		a.ConfidenceScores = map[string]float64{}
	}
	if a.Summary == nil {
		a.Summary = map[string]any{}
	}
}
