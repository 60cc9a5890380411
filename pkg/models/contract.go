package models

import (
	"encoding/json"
	"time"
)

// PartyRole classifies which side of the contract a party sits on.
type PartyRole string

const (
	RoleCustomer   PartyRole = "customer"
	RoleVendor     PartyRole = "vendor"
	RoleThirdParty PartyRole = "third_party"
	RoleUnknown    PartyRole = "unknown"
)

// PaymentType classifies the revenue pattern of the contract.
type PaymentType string

const (
	PaymentRecurring PaymentType = "recurring"
	PaymentOneTime   PaymentType = "one_time"
	PaymentMixed     PaymentType = "mixed"
	PaymentUnknown   PaymentType = "unknown"
)

// AutoRenewal is a tri-state flag: "true", "false" or "unknown".
type AutoRenewal string

const (
	RenewalTrue    AutoRenewal = "true"
	RenewalFalse   AutoRenewal = "false"
	RenewalUnknown AutoRenewal = "unknown"
)

// Party is one contracting entity. Identity key is the lower-cased name;
// merge deduplicates on that key.
type Party struct {
	Name               string    `json:"name"`
	Role               PartyRole `json:"role"`
	LegalEntity        string    `json:"legal_entity"`
	RegistrationNumber string    `json:"registration_number"`
	TaxID              string    `json:"tax_id"`
	Address            string    `json:"address"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	Jurisdiction       string    `json:"jurisdiction"`
	ConfidenceScore    float64   `json:"confidence_score"` // 0.0-1.0
}

// AccountInfo carries billing and support contact details.
type AccountInfo struct {
	AccountNumber           string `json:"account_number"`
	BillingAddress          string `json:"billing_address"`
	ContactEmail            string `json:"contact_email"`
	ContactPhone            string `json:"contact_phone"`
	TechnicalSupportContact string `json:"technical_support_contact"`
	AccountManager          string `json:"account_manager"`
}

// LineItem is one row of a priced schedule of deliverables. TotalPrice is
// author-supplied; it is not forced to equal Quantity*UnitPrice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// FinancialDetails aggregates the monetary terms of the contract.
type FinancialDetails struct {
	TotalContractValue float64    `json:"total_contract_value"`
	Currency           string     `json:"currency"`
	LineItems          []LineItem `json:"line_items"`
	TaxAmount          float64    `json:"tax_amount"`
	AdditionalFees     float64    `json:"additional_fees"`
}

// PaymentTerms describes how and when money moves.
type PaymentTerms struct {
	PaymentTerms    string   `json:"payment_terms"` // e.g. "Net 30"
	PaymentSchedule string   `json:"payment_schedule"`
	DueDates        []string `json:"due_dates"`
	PaymentMethods  []string `json:"payment_methods"`
	BankingDetails  string   `json:"banking_details"`
}

// RevenueClassification categorizes the billing model.
type RevenueClassification struct {
	PaymentType       PaymentType `json:"payment_type"`
	BillingCycle      string      `json:"billing_cycle"`
	SubscriptionModel string      `json:"subscription_model"`
	RenewalTerms      string      `json:"renewal_terms"`
	AutoRenewal       AutoRenewal `json:"auto_renewal"`
}

// SLA holds service-level commitments as free-text clause lists.
type SLA struct {
	PerformanceMetrics []string `json:"performance_metrics"`
	Benchmarks         []string `json:"benchmarks"`
	PenaltyClauses     []string `json:"penalty_clauses"`
	Remedies           []string `json:"remedies"`
	SupportTerms       string   `json:"support_terms"`
	MaintenanceTerms   string   `json:"maintenance_terms"`
}

// KeyValuePair is a loosely-typed extraction result independent of the
// structured entities above.
type KeyValuePair struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	FieldType  string  `json:"field_type"`
}

// Clause is a recognized contract clause with its captured content.
type Clause struct {
	Type       string  `json:"type"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// ImportantDate pairs a date-like string with what it means.
type ImportantDate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ContractData is the aggregate root produced once per document by the
// pipeline. It is immutable after construction and is the sole input to the
// scoring engine. Every optional field defaults to an empty container or
// "Unknown"/"unknown", never to an absent key, so consumers branch on
// emptiness rather than existence.
type ContractData struct {
	Parties               []Party               `json:"parties"`
	AccountInfo           AccountInfo           `json:"account_info"`
	FinancialDetails      FinancialDetails      `json:"financial_details"`
	PaymentTerms          PaymentTerms          `json:"payment_terms"`
	RevenueClassification RevenueClassification `json:"revenue_classification"`
	SLA                   SLA                   `json:"sla"`
	ContractStartDate     string                `json:"contract_start_date"`
	ContractEndDate       string                `json:"contract_end_date"`
	ContractType          string                `json:"contract_type"`
	ConfidenceScores      map[string]float64    `json:"confidence_scores"` // category -> 0-100
	KeyValuePairs         []KeyValuePair        `json:"key_value_pairs"`
	RiskFactors           []string              `json:"risk_factors"`
	ComplianceIssues      []string              `json:"compliance_issues"`
	ImportantDates        []ImportantDate       `json:"important_dates"`
	Clauses               []Clause              `json:"clauses"`
	ProcessingNotes       []string              `json:"processing_notes"`
	ExtractedText         string                `json:"extracted_text"`
}

// NewContractData returns a fully-shaped ContractData with every field set to
// its documented default. A failed extraction returns exactly this shape plus
// a processing note, never nil or a partial object.
func NewContractData() *ContractData {
	return &ContractData{
		Parties: []Party{},
		FinancialDetails: FinancialDetails{
			Currency:  "USD",
			LineItems: []LineItem{},
		},
		PaymentTerms: PaymentTerms{
			DueDates:       []string{},
			PaymentMethods: []string{},
		},
		RevenueClassification: RevenueClassification{
			PaymentType: PaymentUnknown,
			AutoRenewal: RenewalUnknown,
		},
		SLA: SLA{
			PerformanceMetrics: []string{},
			Benchmarks:         []string{},
			PenaltyClauses:     []string{},
			Remedies:           []string{},
		},
		ContractType:     "Unknown",
		ConfidenceScores: map[string]float64{},
		KeyValuePairs:    []KeyValuePair{},
		RiskFactors:      []string{},
		ComplianceIssues: []string{},
		ImportantDates:   []ImportantDate{},
		Clauses:          []Clause{},
		ProcessingNotes:  []string{},
	}
}

// ToMap flattens the struct into the plain nested mapping consumed by the
// scoring engine and persisted across storage/API boundaries. Enums serialize
// as their string values via the JSON tags.
func (c *ContractData) ToMap() map[string]any {
	raw, err := json.Marshal(c)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// JobStatus is the lifecycle state of one document-processing job.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// JobRecord is the explicit, by-value processing record for one uploaded
// document. Retry bookkeeping lives on the record itself rather than in any
// ambient process-wide state.
type JobRecord struct {
	ID         string        `json:"id"`
	Filename   string        `json:"filename"`
	Status     JobStatus     `json:"status"`
	Progress   int           `json:"progress"` // 0-100
	UploadedAt time.Time     `json:"uploaded_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	FileSize   int64         `json:"file_size"`
	Parsed     *ContractData `json:"parsed_data,omitempty"`
	Score      float64       `json:"score"`
	Gaps       []string      `json:"gaps"`
	RetryCount int           `json:"retry_count"`
	MaxRetries int           `json:"max_retries"`
	Error      string        `json:"error,omitempty"`
}
