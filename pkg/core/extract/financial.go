package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reTotalValue = regexp.MustCompile(`(?i)(?:total\s+(?:contract\s+)?value|contract\s+(?:value|amount|price|total)|total\s+(?:amount|price|cost))\s*(?:of|is|:)?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	reTaxLine    = regexp.MustCompile(`(?i)(?:tax|vat|gst)\s*(?:amount|rate)?\s*:?\s*\$?\s*([\d,]+(?:\.\d+)?%?)`)
	reFeeLine    = regexp.MustCompile(`(?i)((?:setup|service|processing|admin(?:istration)?|license|maintenance)\s+fees?)\s*:?\s*\$?\s*([\d,]+(?:\.\d+)?)`)
	reCurrencyCd = regexp.MustCompile(`\b(USD|EUR|GBP|CAD|INR|AUD|JPY)\b`)

	// Table-shaped line items: description, quantity, unit price, total.
	reItemRow = regexp.MustCompile(`(?m)^\s*(.{3,80}?)\s{2,}(\d+)\s{2,}\$?\s*([\d,]+(?:\.\d+)?)\s{2,}\$?\s*([\d,]+(?:\.\d+)?)\s*$`)
	// Prose-shaped line items: "N x Description at $P" or "Description - $P".
	reItemProse = regexp.MustCompile(`(?im)^\s*(?:[-*•]\s*)?(\d+)\s*(?:x|×)\s*(.{3,80}?)\s*(?:at|@|for)\s*\$\s*([\d,]+(?:\.\d+)?)`)
)

// ExtractFinancials pulls the money shape of the contract: total value,
// currency, line items, tax and fees. The total value is resolved in
// precedence order: an explicit total phrase wins, then the sum of parsed
// line items, then the sum of standalone dollar amounts.
func ExtractFinancials(text string) map[string]any {
	fin := map[string]any{
		"currency":   detectCurrency(text),
		"line_items": []any{},
	}

	items := extractLineItems(text)
	if len(items) > 0 {
		fin["line_items"] = items
	}

	if m := reTotalValue.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			fin["total_value"] = v
		}
	}
	if _, ok := fin["total_value"]; !ok && len(items) > 0 {
		sum := 0.0
		for _, it := range items {
			row := it.(map[string]any)
			if t, ok := row["total_price"].(float64); ok {
				sum += t
			}
		}
		if sum > 0 {
			fin["total_value"] = sum
		}
	}
	if _, ok := fin["total_value"]; !ok {
		if sum := sumStandaloneAmounts(text); sum > 0 {
			fin["total_value"] = sum
		}
	}

	if m := reTaxLine.FindStringSubmatch(text); m != nil {
		fin["tax_information"] = strings.TrimSpace(m[0])
	}
	fees := map[string]any{}
	for _, m := range reFeeLine.FindAllStringSubmatch(text, -1) {
		if v, ok := parseAmount(m[2]); ok {
			key := strings.ToLower(strings.Join(strings.Fields(m[1]), "_"))
			fees[key] = v
		}
	}
	if len(fees) > 0 {
		fin["additional_fees"] = fees
	}
	return fin
}

// extractLineItems recognizes two layouts: whitespace-aligned table rows and
// bullet-style "N x item at $price" prose.
func extractLineItems(text string) []any {
	var items []any
	for _, m := range reItemRow.FindAllStringSubmatch(text, -1) {
		desc := strings.TrimSpace(m[1])
		if looksLikeHeader(desc) {
			continue
		}
		qty, _ := strconv.Atoi(m[2])
		unit, okU := parseAmount(m[3])
		total, okT := parseAmount(m[4])
		if !okU || !okT {
			continue
		}
		items = append(items, map[string]any{
			"description": desc,
			"quantity":    float64(qty),
			"unit_price":  unit,
			"total_price": total,
		})
	}
	for _, m := range reItemProse.FindAllStringSubmatch(text, -1) {
		qty, _ := strconv.Atoi(m[1])
		unit, ok := parseAmount(m[3])
		if !ok {
			continue
		}
		items = append(items, map[string]any{
			"description": strings.TrimSpace(m[2]),
			"quantity":    float64(qty),
			"unit_price":  unit,
			"total_price": unit * float64(qty),
		})
	}
	return items
}

func looksLikeHeader(desc string) bool {
	lower := strings.ToLower(desc)
	return strings.Contains(lower, "description") || strings.Contains(lower, "quantity") ||
		strings.Contains(lower, "item") && len(lower) < 10
}

// sumStandaloneAmounts sums every bare dollar amount in the text. Last
// resort when no explicit total and no line items exist.
func sumStandaloneAmounts(text string) float64 {
	sum := 0.0
	for _, m := range reAmount.FindAllString(text, -1) {
		if v, ok := parseAmount(m); ok {
			sum += v
		}
	}
	return sum
}

func detectCurrency(text string) string {
	if m := reCurrencyCd.FindString(text); m != "" {
		return m
	}
	if strings.Contains(text, "€") {
		return "EUR"
	}
	if strings.Contains(text, "£") {
		return "GBP"
	}
	return "USD"
}

func parseAmount(raw string) (float64, bool) {
	cleaned := reNumber.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
