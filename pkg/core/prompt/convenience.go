package prompt

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	ContractAnalysis   string
	ContractChunk      string
	ContractClassifier string
}{
	ContractAnalysis:   "analysis.contract",
	ContractChunk:      "analysis.contract_chunk",
	ContractClassifier: "classification.contract_type",
}

const contractAnalysisSystem = `You are a contract analysis engine. You read business contract text and extract structured data. You respond with a single JSON object and nothing else: no prose, no markdown fences, no commentary.`

const contractAnalysisTemplate = `Analyze the following contract text and extract structured information.

Return a JSON object with exactly these keys:
{
  "parties": [{"name": "", "role": "customer|vendor|third_party|unknown", "legal_entity": "", "address": "", "email": "", "phone": "", "registration_number": ""}],
  "account_info": {"account_number": "", "billing_contact": "", "billing_address": "", "billing_email": ""},
  "financial_details": {"total_value": 0, "currency": "USD", "line_items": [{"description": "", "quantity": 0, "unit_price": 0, "total_price": 0}], "tax_information": "", "additional_fees": {}},
  "payment_terms": {"payment_terms": "Net 30", "payment_schedule": "", "payment_method": "", "late_payment_penalty": "", "early_payment_discount": ""},
  "revenue_classification": {"payment_type": "recurring|one-time", "billing_cycle": "", "auto_renewal": false},
  "sla": {"uptime_guarantee": "", "response_time": "", "resolution_time": "", "performance_metrics": [], "support_terms": "", "penalties": ""},
  "important_dates": {"start_date": "", "end_date": "", "renewal_date": "", "termination_date": ""},
  "contract_type": "",
  "key_terms": [],
  "risk_factors": [],
  "compliance_issues": [],
  "confidence_scores": {"parties": 0.0, "financial_details": 0.0, "payment_terms": 0.0, "sla": 0.0, "overall": 0.0},
  "summary": {"description": ""}
}

Rules:
- Omit nothing: include every key, using empty strings, empty arrays or null for data the text does not contain.
- Amounts are plain numbers without currency symbols or thousands separators.
- Confidence scores are between 0.0 and 1.0 and reflect how directly the text supports each section.
- Do not invent data that is not in the text.

Contract text:
{{.ContractText}}`

const contractClassifierSystem = `You classify business contracts by type. Respond with a single JSON object: {"contract_type": "<type>"} where type is one of: Master Service Agreement, Statement of Work, Non-Disclosure Agreement, License Agreement, Service Agreement, Purchase Agreement, Employment Agreement, Lease Agreement, Unknown.`

func init() {
	r := Get()
	r.MustRegister(&PromptTemplate{
		ID:             PromptIDs.ContractAnalysis,
		Name:           "Contract Analysis",
		Category:       "analysis",
		Description:    "Extracts the full structured contract schema from raw text",
		SystemPrompt:   contractAnalysisSystem,
		UserPromptTmpl: contractAnalysisTemplate,
		Variables: []PromptVariable{
			{Name: "ContractText", Type: "string", Description: "Raw contract text", Required: true},
		},
		Version: "1.0",
	})
	r.MustRegister(&PromptTemplate{
		ID:             PromptIDs.ContractChunk,
		Name:           "Contract Chunk Analysis",
		Category:       "analysis",
		Description:    "Same schema as analysis.contract, applied to one chunk of a large document",
		SystemPrompt:   contractAnalysisSystem,
		UserPromptTmpl: contractAnalysisTemplate,
		Variables: []PromptVariable{
			{Name: "ContractText", Type: "string", Description: "One chunk of contract text", Required: true},
		},
		Version: "1.0",
	})
	r.MustRegister(&PromptTemplate{
		ID:           PromptIDs.ContractClassifier,
		Name:         "Contract Type Classifier",
		Category:     "classification",
		Description:  "Labels a contract by its document type",
		SystemPrompt: contractClassifierSystem,
		UserPromptTmpl: `Classify this contract:
{{.ContractText}}`,
		Variables: []PromptVariable{
			{Name: "ContractText", Type: "string", Description: "Raw contract text", Required: true},
		},
		Version: "1.0",
	})
}

// GetAnalysisPrompt returns the contract analysis template.
func GetAnalysisPrompt() (*PromptTemplate, error) {
	return Get().GetPrompt(PromptIDs.ContractAnalysis)
}
