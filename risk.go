package filings

import (
	"math"
	"strings"
)

// riskKeywords are counted as case-insensitive substrings, so "risk" also
// counts "risks" and "risky".
var riskKeywords = []string{
	"risk", "uncertainty", "adverse", "negative", "decline",
	"failure", "loss", "damage", "harm", "threat", "vulnerable",
	"litigation", "regulatory", "competition", "disruption",
}

// NeutralRiskScore is reported for text with no words.
const NeutralRiskScore = 5.0

// RiskScore rates risk-factor text from 0 to 10 by keyword density: keyword
// hits per 1,000 words divided by ten, clamped and rounded to one decimal.
// It returns nil for empty text.
func RiskScore(text string) *float64 {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	words := len(strings.Fields(lower))
	if words == 0 {
		return Float(NeutralRiskScore)
	}

	hits := 0
	for _, kw := range riskKeywords {
		hits += strings.Count(lower, kw)
	}

	perThousand := float64(hits) / float64(words) * 1000
	score := math.Min(10, math.Max(0, perThousand/10))
	return Float(math.Round(score*10) / 10)
}

// sectionRiskScore scores a risk factors section bounded by its own
// headings. Cross-referenced and missing sections have no score.
func sectionRiskScore(sections []Section) *float64 {
	s, ok := FindSection(sections, RiskFactors)
	if !ok || !s.Found || s.Source != SourceHeader {
		return nil
	}
	return RiskScore(strings.TrimSuffix(s.Text, TruncationMarker))
}
