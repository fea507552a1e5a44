package filings

import (
	"strings"
)

// FilingType identifies which SEC form a document was filed as.
type FilingType string

const (
	TenK    FilingType = "10-K"
	TenQ    FilingType = "10-Q"
	EightK  FilingType = "8-K"
	Unknown FilingType = "UNKNOWN"
)

// ParseFilingType maps an SEC form name to a FilingType.
// Amendments and transition reports map to their base form:
//   - "10-K", "10K", "10-K/A", "10-KT" → TenK
//   - "10-Q", "10-Q/A" → TenQ
//   - "8-K", "8-K/A" → EightK
//
// Anything else is Unknown.
func ParseFilingType(form string) FilingType {
	f := strings.ToUpper(strings.TrimSpace(form))
	f = strings.TrimPrefix(f, "FORM ")

	// Drop amendment suffix ("10-K/A" -> "10-K")
	if i := strings.Index(f, "/"); i >= 0 {
		f = f[:i]
	}
	f = strings.ReplaceAll(f, " ", "")

	switch f {
	case "10-K", "10K", "10-KT", "10-K405":
		return TenK
	case "10-Q", "10Q", "10-QT":
		return TenQ
	case "8-K", "8K":
		return EightK
	default:
		return Unknown
	}
}

// String returns the SEC form name.
func (t FilingType) String() string {
	if t == "" {
		return string(Unknown)
	}
	return string(t)
}

// FilingDocument is a raw filing as handed to the pipeline.
// The pipeline reads HTML but never modifies it.
type FilingDocument struct {
	HTML      []byte     // Raw primary-document markup (UTF-8)
	Type      FilingType // Declared form type
	Accession string     // Optional accession number (0001193125-25-314736)
}

// NewFilingDocument builds a FilingDocument from raw markup and a form name.
// When form is empty the type is detected from the document itself.
func NewFilingDocument(html []byte, form, accession string) FilingDocument {
	ft := ParseFilingType(form)
	if form == "" {
		ft = DetectFilingType(html)
	}
	return FilingDocument{
		HTML:      html,
		Type:      ft,
		Accession: accession,
	}
}
