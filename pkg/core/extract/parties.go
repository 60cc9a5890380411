package extract

import (
	"strings"

	"contract_intel/pkg/models"
)

// partyCandidate is a party mention with its surrounding context window.
type partyCandidate struct {
	Name    string
	Context string
	Start   int
}

// ExtractParties finds the contracting parties in text. The first tier looks
// for organization-shaped names (capitalized spans with corporate suffixes);
// when that yields nothing the connector-phrase regexes take over. Each party
// carries role, contact details scraped from its context window and a
// per-party confidence score.
func ExtractParties(text string) []map[string]any {
	candidates := entityCandidates(text)
	if len(candidates) == 0 {
		candidates = connectorCandidates(text)
	}

	parties := make([]map[string]any, 0, len(candidates))
	seen := make(map[string]bool)
	for _, c := range candidates {
		name := cleanPartyName(c.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		p := map[string]any{
			"name":             name,
			"role":             inferRole(c.Context, name),
			"legal_entity":     name,
			"confidence_score": partyConfidence(name, c.Context),
		}
		if email := reEmail.FindString(c.Context); email != "" {
			p["email"] = email
		}
		if phone := rePhone.FindString(c.Context); phone != "" {
			p["phone"] = phone
		}
		if addr := reAddress.FindString(c.Context); addr != "" {
			p["address"] = strings.TrimSpace(addr)
		}
		if m := reTaxID.FindStringSubmatch(c.Context); m != nil {
			p["registration_number"] = m[1]
		}
		parties = append(parties, p)
	}
	return parties
}

// entityCandidates is the first tier: organization suffix matches, each with
// a 100-character context window on either side.
func entityCandidates(text string) []partyCandidate {
	locs := reEntityLine.FindAllStringSubmatchIndex(text, -1)
	out := make([]partyCandidate, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[2], loc[3]
		out = append(out, partyCandidate{
			Name:    text[start:end],
			Context: contextWindow(text, start, end, 100),
			Start:   start,
		})
	}
	return out
}

// connectorCandidates is the fallback tier: "between X and Y", "Client: X"
// style connector phrases.
func connectorCandidates(text string) []partyCandidate {
	var out []partyCandidate
	for _, re := range partyConnectors {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2], loc[3]
			if start < 0 {
				continue
			}
			out = append(out, partyCandidate{
				Name:    text[start:end],
				Context: contextWindow(text, start, end, 100),
				Start:   start,
			})
		}
	}
	return out
}

func contextWindow(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}

func cleanPartyName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, ",.;:")
	name = strings.Join(strings.Fields(name), " ")
	if len(name) < 3 || len(name) > 120 {
		return ""
	}
	// Reject spans that are all lowercase or contain no letters.
	hasUpper := false
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return ""
	}
	return name
}

// inferRole reads the context around a party mention for role keywords. The
// result always stays inside the Party.Role vocabulary; ambiguous context
// yields "unknown". Third-party cues are checked first so "subcontractor"
// does not hit the "contractor" substring.
func inferRole(ctx, name string) string {
	lower := strings.ToLower(ctx)
	switch {
	case strings.Contains(lower, "third party") || strings.Contains(lower, "third-party") ||
		strings.Contains(lower, "subcontractor"):
		return string(models.RoleThirdParty)
	case strings.Contains(lower, "client") || strings.Contains(lower, "customer") ||
		strings.Contains(lower, "buyer") || strings.Contains(lower, "purchaser") ||
		strings.Contains(lower, "licensee"):
		return string(models.RoleCustomer)
	case strings.Contains(lower, "vendor") || strings.Contains(lower, "supplier") ||
		strings.Contains(lower, "seller") || strings.Contains(lower, "provider") ||
		strings.Contains(lower, "contractor") || strings.Contains(lower, "licensor"):
		return string(models.RoleVendor)
	default:
		return string(models.RoleUnknown)
	}
}

// partyConfidence scores a party mention in [0,1]: multi-word names, nearby
// contact details and a substantial context window each add evidence.
func partyConfidence(name, ctx string) float64 {
	score := 0.0
	if len(strings.Fields(name)) >= 2 {
		score += 0.3
	}
	if reEmail.MatchString(ctx) {
		score += 0.3
	}
	if rePhone.MatchString(ctx) {
		score += 0.2
	}
	if len(ctx) > 50 {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
