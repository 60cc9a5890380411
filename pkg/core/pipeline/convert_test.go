package pipeline

import (
	"testing"

	"contract_intel/pkg/models"
)

func TestToContractData_Nil(t *testing.T) {
	data := toContractData(nil)
	if data == nil {
		t.Fatal("expected non-nil contract data")
	}
	if len(data.Parties) != 0 {
		t.Errorf("expected no parties, got %v", data.Parties)
	}
}

func TestToContractData_Parties(t *testing.T) {
	a := models.NewEmptyAnalysis()
	a.Parties = []map[string]any{
		{"name": "Acme Solutions Inc.", "role": "VENDOR", "email": "legal@acme.com", "confidence_score": 0.9},
		{"name": "Globex Corporation"},
		{"name": "Initech LLC", "role": "licensor"},
	}

	data := toContractData(a)
	if len(data.Parties) != 3 {
		t.Fatalf("parties = %d, want 3", len(data.Parties))
	}
	if data.Parties[0].Role != models.RoleVendor {
		t.Errorf("role = %q, want vendor lowercased", data.Parties[0].Role)
	}
	if data.Parties[0].ConfidenceScore != 0.9 {
		t.Errorf("confidence = %v, want 0.9", data.Parties[0].ConfidenceScore)
	}
	if data.Parties[1].LegalEntity != "Globex Corporation" {
		t.Errorf("legal_entity should default to name, got %q", data.Parties[1].LegalEntity)
	}
	if data.Parties[1].Role != models.RoleUnknown {
		t.Errorf("missing role = %q, want unknown", data.Parties[1].Role)
	}
	// Off-enum producer vocabulary must not leak through.
	if data.Parties[2].Role != models.RoleUnknown {
		t.Errorf("off-enum role = %q, want unknown", data.Parties[2].Role)
	}
}

func TestToContractData_FinancialKeyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		fin  map[string]any
		want float64
	}{
		{"canonical key", map[string]any{"total_contract_value": 120000.0}, 120000},
		{"lexical key", map[string]any{"total_value": 99000.0}, 99000},
		{"numeric string", map[string]any{"total_value": "$120,000.50"}, 120000.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := models.NewEmptyAnalysis()
			a.FinancialDetails = tt.fin
			data := toContractData(a)
			if data.FinancialDetails.TotalContractValue != tt.want {
				t.Errorf("TotalContractValue = %v, want %v",
					data.FinancialDetails.TotalContractValue, tt.want)
			}
		})
	}
}

func TestToContractData_FeesMapSummed(t *testing.T) {
	a := models.NewEmptyAnalysis()
	a.FinancialDetails = map[string]any{
		"additional_fees": map[string]any{"setup_fee": 500.0, "maintenance_fee": 1200.0},
		"tax_information": "Tax: $9,600",
	}

	data := toContractData(a)
	if data.FinancialDetails.AdditionalFees != 1700 {
		t.Errorf("AdditionalFees = %v, want summed 1700", data.FinancialDetails.AdditionalFees)
	}
	if data.FinancialDetails.TaxAmount != 9600 {
		t.Errorf("TaxAmount = %v, want 9600 parsed from tax line", data.FinancialDetails.TaxAmount)
	}
}

func TestToContractData_PaymentMethodSingularFallback(t *testing.T) {
	a := models.NewEmptyAnalysis()
	a.PaymentTerms = map[string]any{
		"payment_terms":  "Net 30",
		"payment_method": "wire transfer",
	}

	data := toContractData(a)
	if len(data.PaymentTerms.PaymentMethods) != 1 || data.PaymentTerms.PaymentMethods[0] != "wire transfer" {
		t.Errorf("PaymentMethods = %v, want [wire transfer]", data.PaymentTerms.PaymentMethods)
	}
}

func TestToContractData_RevenueNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want models.PaymentType
	}{
		{"underscore", "one_time", models.PaymentOneTime},
		{"hyphen", "one-time", models.PaymentOneTime},
		{"recurring", "recurring", models.PaymentRecurring},
		{"garbage", "sometimes", models.PaymentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := models.NewEmptyAnalysis()
			a.RevenueClassification = map[string]any{"payment_type": tt.in}
			data := toContractData(a)
			if data.RevenueClassification.PaymentType != tt.want {
				t.Errorf("PaymentType = %q, want %q",
					data.RevenueClassification.PaymentType, tt.want)
			}
		})
	}
}

func TestToContractData_SLASynthesizesMetrics(t *testing.T) {
	a := models.NewEmptyAnalysis()
	a.SLA = map[string]any{
		"uptime_guarantee": "99.9%",
		"response_time":    "4 hours",
		"penalties":        "service credits specified",
		"support_terms":    "24/7 support",
	}

	data := toContractData(a)
	if len(data.SLA.PerformanceMetrics) != 2 {
		t.Errorf("PerformanceMetrics = %v, want uptime and response entries", data.SLA.PerformanceMetrics)
	}
	if len(data.SLA.PenaltyClauses) != 1 {
		t.Errorf("PenaltyClauses = %v, want 1", data.SLA.PenaltyClauses)
	}
	if data.SLA.SupportTerms != "24/7 support" {
		t.Errorf("SupportTerms = %q", data.SLA.SupportTerms)
	}
}

func TestToContractData_Dates(t *testing.T) {
	a := models.NewEmptyAnalysis()
	a.ImportantDates = map[string]any{
		"start_date":   "2024-01-01",
		"end_date":     "2025-01-01",
		"renewal_date": "2025-02-01",
	}

	data := toContractData(a)
	if data.ContractStartDate != "2024-01-01" || data.ContractEndDate != "2025-01-01" {
		t.Errorf("dates = %q, %q", data.ContractStartDate, data.ContractEndDate)
	}
	if len(data.ImportantDates) != 3 {
		t.Errorf("ImportantDates = %v, want 3 entries", data.ImportantDates)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 12, 12},
		{"comma string", "1,250,000.50", 1250000.50},
		{"currency string", "$750", 750},
		{"no digits", "TBD", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := num(tt.in); got != tt.want {
				t.Errorf("num(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
