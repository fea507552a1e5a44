package filings

import (
	"regexp"
	"unicode/utf8"
)

// coverPageScanChars bounds how much normalized text is searched for the
// cover-page form name.
const coverPageScanChars = 20000

var coverPageFormPattern = regexp.MustCompile(`(?i)\bform\s+(10-?k|10-?q|8-?k)\b`)

// DetectFilingType determines the form type of a filing document.
//
// The inline dei:DocumentType fact is authoritative when present; otherwise
// the first "FORM 10-K" / "FORM 10-Q" / "FORM 8-K" phrase on the cover page
// decides. Returns Unknown when neither is found.
func DetectFilingType(data []byte) FilingType {
	doc := string(data)

	facts := scanInlineFacts(doc)
	if docType := facts.nonNumeric[deiDocumentType]; docType != "" {
		if ft := ParseFilingType(docType); ft != Unknown {
			return ft
		}
	}

	text := NormalizeHTML(doc)
	if utf8.RuneCountInString(text) > coverPageScanChars {
		text = string([]rune(text)[:coverPageScanChars])
	}

	if m := coverPageFormPattern.FindStringSubmatch(text); m != nil {
		return ParseFilingType(m[1])
	}

	return Unknown
}
