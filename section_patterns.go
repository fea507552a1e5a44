package filings

import "regexp"

// Pattern tables for section isolation. Each list is walked in order and the
// first pattern that matches anywhere in the text wins, so more specific
// headings must come before looser ones.

// apostrophe matches "Management's", "Management’s" and "Managements".
const apostrophe = `['’]?`

// The rest of the MD&A heading belongs to the header, not the section body.
const (
	mdaResultsTail = `(?:\s+of\s+financial\s+condition\s+and\s+results\s+of\s+operations)?`
	mdaHeadingTail = `(?:\s+and\s+analysis` + mdaResultsTail + `)?`
)

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// sectionStrategy bounds one narrative section.
type sectionStrategy struct {
	Kind  SectionKind
	Item  string // label recorded in FoundItems
	Start []*regexp.Regexp
	End   []*regexp.Regexp
}

// 10-K
var (
	annualRiskFactors = sectionStrategy{
		Kind: RiskFactors,
		Item: "Item 1A",
		Start: patterns(
			`item\s*1a\s*[.:\-–—]?\s*risk\s+factors`,
		),
		End: patterns(
			`item\s*1b\b`,
			`item\s*2\b`,
		),
	}

	annualMDA = sectionStrategy{
		Kind: MDA,
		Item: "Item 7",
		Start: patterns(
			`item\s*7\s*[.:\-–—]?\s*management`+apostrophe+`s\s+discussion`+mdaHeadingTail,
		),
		End: patterns(
			`item\s*7a\b`,
			`item\s*8\b`,
		),
	}
)

// 10-Q
var (
	quarterlyRiskFactors = sectionStrategy{
		Kind: RiskFactors,
		Item: "Part II Item 1A",
		Start: patterns(
			`part\s+ii\b[\s\S]{0,200}?item\s*1a[\s\S]{0,20}?risk\s+factors`,
			`item\s*1a[\s\S]{0,20}?risk\s+factors`,
			`risk\s+factors`,
		),
		End: patterns(
			`item\s*1b\b`,
			`item\s*2\b`,
			`item\s*3\b`,
			`part\s+ii\b[\s\S]{0,50}?item\s*[23]\b`,
		),
	}

	quarterlyMDA = sectionStrategy{
		Kind: MDA,
		Item: "Part I Item 2",
		Start: patterns(
			`part\s+i\b[\s\S]{0,200}?item\s*2[\s\S]{0,20}?management`+apostrophe+`s\s+discussion`+mdaHeadingTail,
			`item\s*2\s*[.:\-–—]?\s*management`+apostrophe+`s\s+discussion`+mdaHeadingTail,
			`management`+apostrophe+`s\s+discussion\s+and\s+analysis`+mdaResultsTail,
		),
		End: patterns(
			`item\s*3\b`,
			`item\s*4\b`,
			`part\s+ii\b`,
			`quantitative\s+and\s+qualitative\s+disclosures`,
		),
	}

	// quarterlyRiskCrossReference finds the usual "refer to Item 1A of our
	// Annual Report on Form 10-K" language used when risk factors are unchanged.
	quarterlyRiskCrossReference = regexp.MustCompile(
		`(?i)refer[\s\S]{0,300}?item\s*1a[\s\S]{0,300}?annual\s+report[\s\S]{0,100}?10-?k`,
	)
)

// 8-K material-event items. Each runs to the next numbered item or the
// signature block.
var currentReportEnd = patterns(
	`item\s*\d{1,2}\.\d{2}`,
	`signatures?\b`,
)

var currentReportItems = []sectionStrategy{
	{
		Kind:  MaterialEventDigest,
		Item:  "Item 2.02",
		Start: patterns(`item\s*2\.02\s*[.:\-–—]?\s*(?:results\s+of\s+operations\s+and\s+financial\s+condition)?`),
		End:   currentReportEnd,
	},
	{
		Kind:  MaterialEventDigest,
		Item:  "Item 7.01",
		Start: patterns(`item\s*7\.01\s*[.:\-–—]?\s*(?:regulation\s+fd\s+disclosure)?`),
		End:   currentReportEnd,
	},
	{
		Kind:  MaterialEventDigest,
		Item:  "Item 9.01",
		Start: patterns(`item\s*9\.01\s*[.:\-–—]?\s*(?:financial\s+statements\s+and\s+exhibits)?`),
		End:   currentReportEnd,
	},
}

// currentReportTitles labels each digest part.
var currentReportTitles = map[string]string{
	"Item 2.02": "Results of Operations and Financial Condition",
	"Item 7.01": "Regulation FD Disclosure",
	"Item 9.01": "Financial Statements and Exhibits",
}

// Unknown form type: loose headings only.
var (
	genericRiskFactors = sectionStrategy{
		Kind:  RiskFactors,
		Item:  "Risk Factors",
		Start: patterns(`risk\s+factors`),
		End: patterns(
			`management` + apostrophe + `s\s+discussion`,
			`financial\s+statements`,
		),
	}

	genericMDA = sectionStrategy{
		Kind:  MDA,
		Item:  "Management's Discussion and Analysis",
		Start: patterns(`management` + apostrophe + `s\s+discussion` + mdaHeadingTail),
		End: patterns(
			`financial\s+statements`,
			`notes\s+to\s+(?:the\s+)?(?:consolidated\s+)?financial`,
		),
	}
)
