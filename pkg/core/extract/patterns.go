// Package extract implements the lexical extraction pathway: a fixed library
// of named pattern rules that recognize parties, financial amounts, dates,
// payment terms, SLAs and clauses in raw contract text. It is the fallback
// and cross-check for the semantic (LLM) pathway and shares its output
// schema (models.Analysis).
package extract

import "regexp"

// Pattern rules, one per semantic field type. Free-text clause rules capture
// the remainder of the line after the label.
var (
	reEmail      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	rePhone      = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	reCurrency   = regexp.MustCompile(`\$[\d,]+\.?\d*|\d+\.?\d*\s*(USD|EUR|GBP|CAD|INR)`)
	reDate       = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`)
	rePercentage = regexp.MustCompile(`\d+\.?\d*\s*%`)
	reContractNo = regexp.MustCompile(`(?i)(?:contract|agreement|order)\s*(?:no\.?|number|#)\s*:?\s*([A-Z0-9-]+)`)
	reTaxID      = regexp.MustCompile(`(?i)(?:tax\s*id|ein|tin)\s*:?\s*([0-9-]+)`)
	reAddress    = regexp.MustCompile(`\d+\s+[A-Za-z0-9\s,.-]+?(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Way|Place|Pl|Circle|Cir|Court|Ct)\b`)
	reCompany    = regexp.MustCompile(`(?i)\b(?:inc|llc|ltd|corp|corporation|company|co\.?|limited|group|holdings|enterprises)\b`)
	reAmount     = regexp.MustCompile(`(?i)\$[\d,]+\.?\d*|\d+\.?\d*\s*(?:thousand|million|billion|k|m|b)\b`)
	reDuration   = regexp.MustCompile(`(?i)\d+\s*(?:days?|weeks?|months?|years?|quarters?)`)
	reNetTerms   = regexp.MustCompile(`(?i)\bnet\s+(\d+)\b`)
	reNumber     = regexp.MustCompile(`[^\d.-]`)
)

// clauseRules capture the remainder of the line after a clause label. The
// label set covers the clause types the scoring and gap passes care about.
var clauseRules = []struct {
	Type    string
	Pattern *regexp.Regexp
}{
	{"termination", regexp.MustCompile(`(?i)(?:terminate|termination|expire|expiry)\s*(?:date|clause|on|after)?\s*:\s*([^\n]+)`)},
	{"renewal", regexp.MustCompile(`(?i)(?:renew|renewal|extension)\s*(?:date|terms?|clause)?\s*:\s*([^\n]+)`)},
	{"penalty", regexp.MustCompile(`(?i)(?:penalty|fine|liquidated damages)\s*(?:of|for|clause)?\s*:?\s*([^\n]+)`)},
	{"warranty", regexp.MustCompile(`(?i)(?:warranty|guarantee)\s*(?:period|terms?)?\s*:\s*([^\n]+)`)},
	{"liability", regexp.MustCompile(`(?i)(?:liability|liabilities)\s*(?:limit|cap|maximum)?\s*:\s*([^\n]+)`)},
	{"force_majeure", regexp.MustCompile(`(?i)(?:force\s+majeure)\s*:?\s*([^\n]*)`)},
	{"confidentiality", regexp.MustCompile(`(?i)(?:confidentiality|non-disclosure|nda)\s*:?\s*([^\n]*)`)},
	{"governing_law", regexp.MustCompile(`(?i)(?:governing\s+law|jurisdiction|venue)\s*:\s*([^\n]+)`)},
	{"dispute_resolution", regexp.MustCompile(`(?i)(?:dispute|arbitration|mediation)\s+(?:resolution|procedure)\s*:?\s*([^\n]*)`)},
	{"intellectual_property", regexp.MustCompile(`(?i)(?:intellectual\s+property|patent|copyright|trademark)\s*:?\s*([^\n]*)`)},
	{"data_protection", regexp.MustCompile(`(?i)(?:data\s+protection|privacy|gdpr)\s*:?\s*([^\n]*)`)},
	{"compliance", regexp.MustCompile(`(?i)(?:compliance|regulatory requirements)\s*:?\s*([^\n]*)`)},
}

// kvRules drive label-anchored key/value extraction: one pattern per
// recognized field name, value captured to end of line.
var kvRules = []struct {
	FieldType string
	Pattern   *regexp.Regexp
}{
	{"contract_number", regexp.MustCompile(`(?i)(?:contract\s+number|agreement\s+number)\s*:?\s*([^\n]+)`)},
	{"effective_date", regexp.MustCompile(`(?i)(?:effective\s+date|commencement\s+date)\s*:?\s*([^\n]+)`)},
	{"expiration_date", regexp.MustCompile(`(?i)(?:expiration\s+date|end\s+date)\s*:?\s*([^\n]+)`)},
	{"total_value", regexp.MustCompile(`(?i)(?:total\s+value|contract\s+value)\s*:?\s*([^\n]+)`)},
	{"payment_terms", regexp.MustCompile(`(?i)(?:payment\s+terms)\s*:?\s*([^\n]+)`)},
	{"governing_law", regexp.MustCompile(`(?i)(?:governing\s+law)\s*:?\s*([^\n]+)`)},
	{"jurisdiction", regexp.MustCompile(`(?i)(?:jurisdiction)\s*:?\s*([^\n]+)`)},
	{"termination_clause", regexp.MustCompile(`(?i)(?:termination\s+clause)\s*:?\s*([^\n]+)`)},
	{"force_majeure", regexp.MustCompile(`(?i)(?:force\s+majeure)\s*:\s*([^\n]+)`)},
	{"confidentiality", regexp.MustCompile(`(?i)(?:confidentiality)\s*:\s*([^\n]+)`)},
}

// dateRules pull the contract timeline out of label-anchored lines.
var dateRules = []struct {
	Kind    string
	Pattern *regexp.Regexp
}{
	{"start_date", regexp.MustCompile(`(?i)(?:effective\s+date|commencement\s+date|start\s+date)\s*:?\s*([^\n]+)`)},
	{"end_date", regexp.MustCompile(`(?i)(?:expiration\s+date|end\s+date)\s*:?\s*([^\n]+)`)},
	{"renewal_date", regexp.MustCompile(`(?i)(?:renewal\s+date)\s*:?\s*([^\n]+)`)},
	{"termination_date", regexp.MustCompile(`(?i)(?:termination\s+date)\s*:?\s*([^\n]+)`)},
}

// partyConnectors are the regex fallback for party names when the
// entity-style pass finds nothing.
var partyConnectors = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:between|by and between)\s+([A-Z][a-zA-Z\s&,.-]+?)(?:\s+and\s+|\s+&\s+|\s*,|\s*$)`),
	regexp.MustCompile(`(?im)(?:client|customer|buyer|purchaser)\s*:\s*([A-Z][a-zA-Z\s&,.-]+?)(?:\s*$|\s*,|\s+and\b)`),
	regexp.MustCompile(`(?im)(?:vendor|supplier|seller|provider)\s*:\s*([A-Z][a-zA-Z\s&,.-]+?)(?:\s*$|\s*,|\s+and\b)`),
	regexp.MustCompile(`(?m)([A-Z][a-zA-Z\s&,.-]+?)\s+(?:Inc\.|LLC|Corp\.|Corporation|Company|Ltd\.)`),
}

// reEntityLine finds organization-like spans: capitalized multi-word names
// carrying a corporate suffix. Word separators stay on one line so names on
// adjacent lines never fuse into a single span. Used by the first-tier
// party pass.
var reEntityLine = regexp.MustCompile(`\b([A-Z][A-Za-z&.-]+(?:[ \t]+[A-Z][A-Za-z&.-]+)*(?:[ \t]+(?:Inc\.?|LLC|Ltd\.?|Corp\.?|Corporation|Company|GmbH|Limited)))`)
