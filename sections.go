package filings

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SectionKind names a narrative section the pipeline isolates.
type SectionKind string

const (
	RiskFactors         SectionKind = "risk_factors"
	MDA                 SectionKind = "mda"
	MaterialEventDigest SectionKind = "material_event_digest"
)

// SectionSource records how a section's text was obtained.
type SectionSource string

const (
	SourceHeader         SectionSource = "header"          // bounded by item headings
	SourceCrossReference SectionSource = "cross_reference" // 10-Q risk factors incorporated from the 10-K
)

const (
	// MaxSectionChars caps every extracted section.
	MaxSectionChars = 30000

	// TruncationMarker is appended to a section cut at MaxSectionChars.
	TruncationMarker = "\n\n[... section truncated ...]"

	// MinQuarterlyRiskFactorsChars is the length below which a 10-Q risk
	// factors span is treated as effectively missing and the 10-K cross
	// reference is tried instead. Tunable; not a hard invariant.
	MinQuarterlyRiskFactorsChars = 100

	// UnchangedRiskFactorsText replaces 10-Q risk factors that only refer
	// back to the annual report.
	UnchangedRiskFactorsText = "There have been no material changes to the risk factors previously disclosed in Item 1A of the Company's most recent Annual Report on Form 10-K; the risk factors described there remain applicable."

	// digestSeparator joins 8-K item excerpts.
	digestSeparator = "\n\n---\n\n"
)

// Section is one isolated narrative section.
//
// Found is the authoritative not-found signal. When Found is false Text is
// empty and FoundItems is nil; Display renders a human sentinel for callers
// that need to hand something to a downstream reader.
type Section struct {
	Kind       SectionKind   `json:"kind"`
	Found      bool          `json:"found"`
	Text       string        `json:"text,omitempty"`
	Truncated  bool          `json:"truncated"`
	FoundItems []string      `json:"foundItems,omitempty"`
	Source     SectionSource `json:"source,omitempty"`
}

// Display returns the section text, or a "not found" sentinel.
func (s Section) Display() string {
	if s.Found {
		return s.Text
	}
	return NotFoundText(s.Kind)
}

// NotFoundText is the sentinel rendered for a missing section.
func NotFoundText(kind SectionKind) string {
	switch kind {
	case RiskFactors:
		return "Risk factors section not found"
	case MDA:
		return "MD&A section not found"
	case MaterialEventDigest:
		return "No material event items (2.02, 7.01, 9.01) found"
	default:
		return "Section not found"
	}
}

// ExtractSections isolates narrative sections from normalized filing text.
//
//   - 10-K, 10-Q and Unknown: [RiskFactors, MDA]
//   - 8-K: [MaterialEventDigest]
//
// Every expected section is always returned; missing ones have Found=false.
func ExtractSections(text string, filingType FilingType) []Section {
	switch filingType {
	case TenK:
		return []Section{
			extractSection(text, annualRiskFactors),
			extractSection(text, annualMDA),
		}
	case TenQ:
		return []Section{
			extractQuarterlyRiskFactors(text),
			extractSection(text, quarterlyMDA),
		}
	case EightK:
		return []Section{extractMaterialEvents(text)}
	default:
		return []Section{
			extractSection(text, genericRiskFactors),
			extractSection(text, genericMDA),
		}
	}
}

// ExtractSectionsFromHTML normalizes raw filing markup and isolates its sections.
func ExtractSectionsFromHTML(rawHTML string, filingType FilingType) []Section {
	return ExtractSections(NormalizeHTML(rawHTML), filingType)
}

// FindSection returns the section of the given kind, if present in sections.
func FindSection(sections []Section, kind SectionKind) (Section, bool) {
	for _, s := range sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{Kind: kind}, false
}

// extractSection applies one strategy and builds the Section.
func extractSection(text string, strategy sectionStrategy) Section {
	section := Section{Kind: strategy.Kind}

	body, truncated, ok := extractBetween(text, strategy.Start, strategy.End)
	if !ok {
		return section
	}

	section.Found = true
	section.Text = body
	section.Truncated = truncated
	section.FoundItems = []string{strategy.Item}
	section.Source = SourceHeader
	return section
}

// extractQuarterlyRiskFactors handles 10-Qs that only point back to the
// annual report's Item 1A.
func extractQuarterlyRiskFactors(text string) Section {
	section := extractSection(text, quarterlyRiskFactors)
	if utf8.RuneCountInString(section.Text) >= MinQuarterlyRiskFactorsChars {
		return section
	}

	if quarterlyRiskCrossReference.MatchString(text) {
		return Section{
			Kind:       RiskFactors,
			Found:      true,
			Text:       UnchangedRiskFactorsText,
			FoundItems: []string{quarterlyRiskFactors.Item},
			Source:     SourceCrossReference,
		}
	}

	// Short but real text is still returned as found
	return section
}

// extractMaterialEvents builds the 8-K digest from Items 2.02, 7.01 and 9.01.
func extractMaterialEvents(text string) Section {
	section := Section{Kind: MaterialEventDigest}

	var parts []string
	for _, item := range currentReportItems {
		body, truncated, ok := extractBetween(text, item.Start, item.End)
		if !ok {
			continue
		}
		heading := item.Item
		if title := currentReportTitles[item.Item]; title != "" {
			heading += " - " + title
		}
		parts = append(parts, heading+"\n"+body)
		section.FoundItems = append(section.FoundItems, item.Item)
		section.Truncated = section.Truncated || truncated
	}

	if len(parts) == 0 {
		return section
	}

	section.Found = true
	section.Text = strings.Join(parts, digestSeparator)
	section.Source = SourceHeader
	return section
}

// extractBetween isolates the text following the first start pattern (in
// priority order) that matches anywhere in text, up to the first end pattern
// (again in priority order) found after it, or to end of document.
//
// The matched heading is excluded. ok is false only when no start pattern
// matches or the bounded span is empty.
func extractBetween(text string, start, end []*regexp.Regexp) (body string, truncated bool, ok bool) {
	for _, sp := range start {
		loc := sp.FindStringIndex(text)
		if loc == nil {
			continue
		}

		rest := text[loc[1]:]
		stop := len(rest)
		for _, ep := range end {
			if e := ep.FindStringIndex(rest); e != nil {
				stop = e[0]
				break
			}
		}

		body = trimHeadingResidue(rest[:stop])
		if body == "" {
			return "", false, false
		}
		body, truncated = truncateSection(body)
		return body, truncated, true
	}
	return "", false, false
}

// trimHeadingResidue drops whitespace and the punctuation that commonly
// trails a heading ("Risk Factors." / "Risk Factors:").
func trimHeadingResidue(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range []string{".", ":", "-", "–", "—"} {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	return s
}

// truncateSection cuts s to MaxSectionChars characters and appends the marker.
func truncateSection(s string) (string, bool) {
	if utf8.RuneCountInString(s) <= MaxSectionChars {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:MaxSectionChars]) + TruncationMarker, true
}
