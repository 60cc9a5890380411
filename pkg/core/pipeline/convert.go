package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"contract_intel/pkg/models"
)

var reNumeric = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// toContractData lifts a merged loose analysis into the typed canonical
// record. Unknown or malformed values degrade to the field's zero value,
// never to an error: typed conversion is the last step before scoring and
// must not lose the rest of a contract over one bad field.
func toContractData(a *models.Analysis) *models.ContractData {
	data := models.NewContractData()
	if a == nil {
		return data
	}

	for _, p := range a.Parties {
		data.Parties = append(data.Parties, toParty(p))
	}

	fillAccountInfo(&data.AccountInfo, a.AccountInfo)
	fillFinancials(&data.FinancialDetails, a.FinancialDetails)
	fillPaymentTerms(&data.PaymentTerms, a.PaymentTerms)
	fillRevenue(&data.RevenueClassification, a.RevenueClassification)
	fillSLA(&data.SLA, a.SLA)
	fillDates(data, a.ImportantDates)

	if a.ContractType != "" {
		data.ContractType = a.ContractType
	}
	data.KeyValuePairs = append(data.KeyValuePairs, a.KeyValuePairs...)
	data.Clauses = append(data.Clauses, a.Clauses...)
	data.RiskFactors = append(data.RiskFactors, a.RiskFactors...)
	data.ComplianceIssues = append(data.ComplianceIssues, a.ComplianceIssues...)
	for key, v := range a.ConfidenceScores {
		data.ConfidenceScores[key] = v
	}
	return data
}

func toParty(m map[string]any) models.Party {
	p := models.Party{
		Name:               str(m["name"]),
		LegalEntity:        str(m["legal_entity"]),
		RegistrationNumber: str(m["registration_number"]),
		TaxID:              str(m["tax_id"]),
		Address:            str(m["address"]),
		Email:              str(m["email"]),
		Phone:              str(m["phone"]),
		Website:            str(m["website"]),
		Jurisdiction:       str(m["jurisdiction"]),
		ConfidenceScore:    num(m["confidence_score"]),
	}
	// Producers may report roles outside the vocabulary; anything off-enum
	// becomes "unknown" rather than leaking through.
	switch role := models.PartyRole(strings.ToLower(str(m["role"]))); role {
	case models.RoleCustomer, models.RoleVendor, models.RoleThirdParty:
		p.Role = role
	default:
		p.Role = models.RoleUnknown
	}
	if p.LegalEntity == "" {
		p.LegalEntity = p.Name
	}
	return p
}

func fillAccountInfo(dst *models.AccountInfo, src map[string]any) {
	dst.AccountNumber = str(src["account_number"])
	dst.BillingAddress = str(src["billing_address"])
	dst.ContactEmail = firstStr(src, "contact_email", "billing_email")
	dst.ContactPhone = firstStr(src, "contact_phone", "billing_phone")
	dst.TechnicalSupportContact = str(src["technical_support_contact"])
	dst.AccountManager = firstStr(src, "account_manager", "billing_contact")
}

func fillFinancials(dst *models.FinancialDetails, src map[string]any) {
	if v := num(firstVal(src, "total_contract_value", "total_value")); v > 0 {
		dst.TotalContractValue = v
	}
	if c := str(src["currency"]); c != "" {
		dst.Currency = c
	}
	for _, it := range asList(src["line_items"]) {
		row, ok := it.(map[string]any)
		if !ok {
			continue
		}
		dst.LineItems = append(dst.LineItems, models.LineItem{
			Description: str(row["description"]),
			Quantity:    num(row["quantity"]),
			UnitPrice:   num(row["unit_price"]),
			TotalPrice:  num(row["total_price"]),
		})
	}
	dst.TaxAmount = num(firstVal(src, "tax_amount", "tax_information"))
	switch fees := src["additional_fees"].(type) {
	case map[string]any:
		for _, v := range fees {
			dst.AdditionalFees += num(v)
		}
	default:
		dst.AdditionalFees = num(fees)
	}
}

func fillPaymentTerms(dst *models.PaymentTerms, src map[string]any) {
	dst.PaymentTerms = str(src["payment_terms"])
	dst.PaymentSchedule = str(src["payment_schedule"])
	for _, d := range asList(src["due_dates"]) {
		if s := str(d); s != "" {
			dst.DueDates = append(dst.DueDates, s)
		}
	}
	if methods := asList(src["payment_methods"]); len(methods) > 0 {
		for _, m := range methods {
			if s := str(m); s != "" {
				dst.PaymentMethods = append(dst.PaymentMethods, s)
			}
		}
	} else if m := str(src["payment_method"]); m != "" {
		dst.PaymentMethods = append(dst.PaymentMethods, m)
	}
	dst.BankingDetails = str(src["banking_details"])
}

func fillRevenue(dst *models.RevenueClassification, src map[string]any) {
	switch strings.ToLower(strings.ReplaceAll(str(src["payment_type"]), "-", "_")) {
	case "recurring":
		dst.PaymentType = models.PaymentRecurring
	case "one_time":
		dst.PaymentType = models.PaymentOneTime
	case "mixed":
		dst.PaymentType = models.PaymentMixed
	}
	dst.BillingCycle = str(src["billing_cycle"])
	dst.SubscriptionModel = str(src["subscription_model"])
	dst.RenewalTerms = str(src["renewal_terms"])
	switch v := src["auto_renewal"].(type) {
	case bool:
		if v {
			dst.AutoRenewal = models.RenewalTrue
		} else {
			dst.AutoRenewal = models.RenewalFalse
		}
	case string:
		if v == "true" || v == "false" {
			dst.AutoRenewal = models.AutoRenewal(v)
		}
	}
}

func fillSLA(dst *models.SLA, src map[string]any) {
	for _, m := range asList(src["performance_metrics"]) {
		if s := str(m); s != "" {
			dst.PerformanceMetrics = append(dst.PerformanceMetrics, s)
		}
	}
	// Named guarantees become metrics so scoring sees them uniformly.
	if v := str(src["uptime_guarantee"]); v != "" {
		dst.PerformanceMetrics = append(dst.PerformanceMetrics, fmt.Sprintf("uptime %s", v))
	}
	if v := str(src["response_time"]); v != "" {
		dst.PerformanceMetrics = append(dst.PerformanceMetrics, fmt.Sprintf("response time %s", v))
	}
	if v := str(src["resolution_time"]); v != "" {
		dst.PerformanceMetrics = append(dst.PerformanceMetrics, fmt.Sprintf("resolution time %s", v))
	}
	if v := str(src["penalties"]); v != "" {
		dst.PenaltyClauses = append(dst.PenaltyClauses, v)
	}
	for _, m := range asList(src["penalty_clauses"]) {
		if s := str(m); s != "" {
			dst.PenaltyClauses = append(dst.PenaltyClauses, s)
		}
	}
	dst.SupportTerms = str(src["support_terms"])
	dst.MaintenanceTerms = str(src["maintenance_terms"])
}

func fillDates(data *models.ContractData, src map[string]any) {
	data.ContractStartDate = str(src["start_date"])
	data.ContractEndDate = str(src["end_date"])
	for _, kind := range []string{"start_date", "end_date", "renewal_date", "termination_date"} {
		if v := str(src[kind]); v != "" {
			data.ImportantDates = append(data.ImportantDates, models.ImportantDate{
				Date:        v,
				Description: strings.ReplaceAll(kind, "_", " "),
			})
		}
	}
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func firstVal(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// num coerces JSON-decoded numbers and numeric strings to float64.
func num(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		m := reNumeric.FindString(t)
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}
