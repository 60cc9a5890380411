package extract

import (
	"testing"
)

func TestExtractPaymentTerms(t *testing.T) {
	text := `Payment Terms: Net 30.
Invoices are issued monthly and paid by wire transfer.
A late payment fee of 1.5% applies per month overdue.
An early payment discount is available.`

	pt := ExtractPaymentTerms(text)
	if pt["payment_terms"] != "Net 30" {
		t.Errorf("payment_terms = %v, want Net 30", pt["payment_terms"])
	}
	if pt["payment_schedule"] != "monthly" {
		t.Errorf("payment_schedule = %v, want monthly", pt["payment_schedule"])
	}
	if pt["payment_method"] != "wire transfer" {
		t.Errorf("payment_method = %v, want wire transfer", pt["payment_method"])
	}
	if pt["late_payment_penalty"] != "1.5%" {
		t.Errorf("late_payment_penalty = %v, want 1.5%%", pt["late_payment_penalty"])
	}
	if pt["early_payment_discount"] != "specified" {
		t.Errorf("early_payment_discount = %v, want specified", pt["early_payment_discount"])
	}
}

func TestExtractPaymentTerms_DueOnReceipt(t *testing.T) {
	pt := ExtractPaymentTerms("All invoices are due on receipt.")
	if pt["payment_terms"] != "Due on Receipt" {
		t.Errorf("payment_terms = %v, want Due on Receipt", pt["payment_terms"])
	}
}

func TestExtractRevenueClassification(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType any
		wantAuto any
	}{
		{
			"recurring subscription",
			"This subscription renews monthly and will auto-renew each term.",
			"recurring", true,
		},
		{
			"one-time",
			"A one-time lump sum payment is due at signing. No automatic renewal.",
			"one-time", false,
		},
		{
			"unlabeled",
			"The parties agree to the attached scope.",
			nil, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := ExtractRevenueClassification(tt.text)
			if rc["payment_type"] != tt.wantType {
				t.Errorf("payment_type = %v, want %v", rc["payment_type"], tt.wantType)
			}
			if rc["auto_renewal"] != tt.wantAuto {
				t.Errorf("auto_renewal = %v, want %v", rc["auto_renewal"], tt.wantAuto)
			}
		})
	}
}

func TestExtractSLA(t *testing.T) {
	text := `The service shall maintain 99.9% uptime.
Support response time is within 4 hours. 24/7 support is included.
Service credits apply for each violation.`

	sla := ExtractSLA(text)
	if sla["uptime_guarantee"] != "99.9%" {
		t.Errorf("uptime_guarantee = %v, want 99.9%%", sla["uptime_guarantee"])
	}
	if sla["response_time"] != "4 hours" {
		t.Errorf("response_time = %v, want 4 hours", sla["response_time"])
	}
	if sla["support_terms"] != "24/7 support" {
		t.Errorf("support_terms = %v, want 24/7 support", sla["support_terms"])
	}
	if sla["penalties"] == nil {
		t.Error("expected penalties to be flagged from service credits language")
	}
	metrics, _ := sla["performance_metrics"].([]any)
	if len(metrics) < 2 {
		t.Errorf("performance_metrics = %v, want uptime and response time", metrics)
	}
}

func TestExtractImportantDates_Labeled(t *testing.T) {
	text := `Effective Date: 2024-01-01
Expiration Date: 2025-01-01
Renewal Date: 2025-02-01`

	dates := ExtractImportantDates(text)
	if dates["start_date"] != "2024-01-01" {
		t.Errorf("start_date = %v, want 2024-01-01", dates["start_date"])
	}
	if dates["end_date"] != "2025-01-01" {
		t.Errorf("end_date = %v, want 2025-01-01", dates["end_date"])
	}
	if dates["renewal_date"] != "2025-02-01" {
		t.Errorf("renewal_date = %v, want 2025-02-01", dates["renewal_date"])
	}
}

func TestExtractImportantDates_BareFallback(t *testing.T) {
	text := "The engagement runs from 01/15/2024 through 01/14/2025."
	dates := ExtractImportantDates(text)
	if dates["start_date"] != "01/15/2024" {
		t.Errorf("start_date = %v, want 01/15/2024", dates["start_date"])
	}
	if dates["end_date"] != "01/14/2025" {
		t.Errorf("end_date = %v, want 01/14/2025", dates["end_date"])
	}
}

func TestExtractAccountInfo(t *testing.T) {
	text := `Account Number: ACCT-88421
Billing Contact: Jordan Reyes
Billing Email: billing@globex.com
Billing Address: 200 Commerce Street, Suite 40`

	acct := ExtractAccountInfo(text)
	if acct["account_number"] == nil {
		t.Error("expected account_number to be set")
	}
	if acct["billing_contact"] != "Jordan Reyes" {
		t.Errorf("billing_contact = %v, want Jordan Reyes", acct["billing_contact"])
	}
	if acct["billing_email"] != "billing@globex.com" {
		t.Errorf("billing_email = %v, want billing@globex.com", acct["billing_email"])
	}
	if acct["billing_address"] == nil {
		t.Error("expected billing_address to be set")
	}
}

func TestExtractClauses(t *testing.T) {
	text := `Governing Law: State of Delaware
Warranty Period: 12 months from delivery
Termination Clause: either party on 60 days notice`

	clauses := ExtractClauses(text)
	types := map[string]bool{}
	for _, c := range clauses {
		types[c.Type] = true
		if c.Confidence != 0.8 {
			t.Errorf("clause %s confidence = %v, want 0.8", c.Type, c.Confidence)
		}
	}
	for _, want := range []string{"governing_law", "warranty", "termination"} {
		if !types[want] {
			t.Errorf("missing clause type %q in %v", want, clauses)
		}
	}
}

func TestExtractKeyValuePairs(t *testing.T) {
	text := `Contract Number: CN-2024-001
Payment Terms: Net 30
Effective Date: 2024-01-01`

	pairs := ExtractKeyValuePairs(text)
	byKey := map[string]string{}
	for _, kv := range pairs {
		byKey[kv.Key] = kv.Value
		if kv.Confidence < 0.5 || kv.Confidence > 1.0 {
			t.Errorf("pair %s confidence %v out of range", kv.Key, kv.Confidence)
		}
	}
	if byKey["contract_number"] != "CN-2024-001" {
		t.Errorf("contract_number = %q, want CN-2024-001", byKey["contract_number"])
	}
	if byKey["payment_terms"] != "Net 30" {
		t.Errorf("payment_terms = %q, want Net 30", byKey["payment_terms"])
	}
	if byKey["effective_date"] != "2024-01-01" {
		t.Errorf("effective_date = %q, want 2024-01-01", byKey["effective_date"])
	}
}

func TestExtractKeyValuePairs_RepeatedLabels(t *testing.T) {
	// Amendments restate labeled fields; every occurrence becomes a pair.
	text := `Payment Terms: Net 30
Payment Terms: Net 60 for hardware orders`

	var values []string
	for _, kv := range ExtractKeyValuePairs(text) {
		if kv.Key == "payment_terms" {
			values = append(values, kv.Value)
		}
	}
	if len(values) != 2 {
		t.Fatalf("payment_terms pairs = %d, want 2: %v", len(values), values)
	}
	if values[0] != "Net 30" || values[1] != "Net 60 for hardware orders" {
		t.Errorf("values = %v, want both occurrences in order", values)
	}
}

func TestPairConfidence(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  float64
	}{
		{"date with valid format", "effective_date", "2024-01-01", 1.0},
		{"date with prose value", "effective_date", "TBD", 0.5},
		{"total value with amount", "total_value", "$120,000", 1.0},
		{"generic long value", "governing_law", "State of Delaware", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pairConfidence(tt.field, tt.value); got != tt.want {
				t.Errorf("pairConfidence(%s, %q) = %v, want %v", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestClassifyContractType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"msa", "This Master Service Agreement governs all work orders.", "Master Service Agreement"},
		{"sow", "Statement of Work #4 under the existing terms.", "Statement of Work"},
		{"nda", "This Non-Disclosure Agreement protects shared materials.", "Non-Disclosure Agreement"},
		{"license", "Software License Agreement for the platform.", "License Agreement"},
		{"service", "This Service Agreement covers managed hosting.", "Service Agreement"},
		{"purchase", "Purchase Order terms and conditions.", "Purchase Agreement"},
		{"lease", "This lease covers the premises at 40 Main St.", "Lease Agreement"},
		{"unknown", "Miscellaneous memorandum of record.", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyContractType(tt.text); got != tt.want {
				t.Errorf("ClassifyContractType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractRiskFactors(t *testing.T) {
	text := `The vendor accepts unlimited liability for data breaches.
This agreement shall auto-renew annually.
Liquidated damages of $1,000 per day apply.`

	risks := ExtractRiskFactors(text)
	if len(risks) != 3 {
		t.Errorf("expected 3 risks, got %v", risks)
	}
}

func TestExtractComplianceIssues(t *testing.T) {
	text := "Processing is subject to GDPR and HIPAA requirements."
	issues := ExtractComplianceIssues(text)
	if len(issues) != 2 {
		t.Errorf("expected 2 compliance issues, got %v", issues)
	}
}
