package filings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// submissionsBaseURL serves the per-CIK submissions JSON
var submissionsBaseURL = "https://data.sec.gov/submissions"

// Submissions represents the complete SEC submissions data for a CIK
type Submissions struct {
	CIK            string      `json:"cik"`
	EntityType     string      `json:"entityType"`
	SIC            string      `json:"sic"`
	SICDescription string      `json:"sicDescription"`
	Name           string      `json:"name"`
	Ticker         []string    `json:"tickers"`
	Exchanges      []string    `json:"exchanges"`
	FiscalYearEnd  string      `json:"fiscalYearEnd"`
	Filings        FilingsData `json:"filings"`
}

// FilingsData contains recent and paginated filings information
type FilingsData struct {
	Recent FilingArrays `json:"recent"`
	Files  []FilingFile `json:"files"`
}

// FilingFile represents a paginated file containing older filings
type FilingFile struct {
	Name        string `json:"name"`
	FilingCount int    `json:"filingCount"`
	FilingFrom  string `json:"filingFrom"`
	FilingTo    string `json:"filingTo"`
}

// FilingArrays contains parallel arrays of filing data
// Each index in the arrays represents one filing
type FilingArrays struct {
	AccessionNumber       []string `json:"accessionNumber"`
	FilingDate            []string `json:"filingDate"`
	ReportDate            []string `json:"reportDate"`
	Form                  []string `json:"form"`
	Items                 []string `json:"items"`
	Size                  []int    `json:"size"`
	IsXBRL                []int    `json:"isXBRL"`
	IsInlineXBRL          []int    `json:"isInlineXBRL"`
	PrimaryDocument       []string `json:"primaryDocument"`
	PrimaryDocDescription []string `json:"primaryDocDescription"`
}

// Filing represents a single filing with its metadata
type Filing struct {
	AccessionNumber       string
	FilingDate            string // YYYY-MM-DD
	ReportDate            string // period of report, YYYY-MM-DD
	Form                  string
	Items                 string // 8-K item list, e.g. "2.02,9.01"
	Size                  int
	IsXBRL                bool
	IsInlineXBRL          bool
	PrimaryDocument       string
	PrimaryDocDescription string
	// Derived fields
	CIK string
	URL string // Full URL to the primary document
}

// FetchSubmissions fetches and parses the CIK submissions JSON from SEC
func (c *Client) FetchSubmissions(ctx context.Context, cik string) (*Submissions, error) {
	url := fmt.Sprintf("%s/CIK%s.json", submissionsBaseURL, PadCIK(cik))

	data, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}
	return ParseSubmissions(bytes.NewReader(data))
}

// ParseSubmissions parses a submissions JSON from a reader (for local files or testing)
func ParseSubmissions(r io.Reader) (*Submissions, error) {
	var subs Submissions
	if err := json.NewDecoder(r).Decode(&subs); err != nil {
		return nil, fmt.Errorf("failed to parse submissions JSON: %w", err)
	}
	return &subs, nil
}

// FetchPaginatedFilings fetches and parses a paginated filings file
func (c *Client) FetchPaginatedFilings(ctx context.Context, filename string) (*FilingArrays, error) {
	data, err := c.Fetch(ctx, fmt.Sprintf("%s/%s", submissionsBaseURL, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch paginated filings: %w", err)
	}

	// Paginated files only contain the FilingArrays
	var filings FilingArrays
	if err := json.Unmarshal(data, &filings); err != nil {
		return nil, fmt.Errorf("failed to parse paginated filings JSON: %w", err)
	}
	return &filings, nil
}

// GetAllFilings returns recent filings plus every paginated file.
func (c *Client) GetAllFilings(ctx context.Context, s *Submissions) ([]Filing, error) {
	all := s.GetRecentFilings()
	for _, fileInfo := range s.Filings.Files {
		page, err := c.FetchPaginatedFilings(ctx, fileInfo.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", fileInfo.Name, err)
		}
		all = append(all, page.GetFilings(s.CIK)...)
	}
	return all, nil
}

// GetFilings converts the parallel arrays in FilingArrays into a slice of Filing structs
func (fa *FilingArrays) GetFilings(cik string) []Filing {
	count := len(fa.AccessionNumber)
	filings := make([]Filing, 0, count)

	for i := 0; i < count; i++ {
		filing := Filing{
			CIK:             cik,
			AccessionNumber: fa.AccessionNumber[i],
		}

		// Parallel arrays are not guaranteed to be the same length
		if i < len(fa.FilingDate) {
			filing.FilingDate = fa.FilingDate[i]
		}
		if i < len(fa.Form) {
			filing.Form = fa.Form[i]
		}
		if i < len(fa.PrimaryDocument) {
			filing.PrimaryDocument = fa.PrimaryDocument[i]
		}
		if i < len(fa.ReportDate) {
			filing.ReportDate = fa.ReportDate[i]
		}
		if i < len(fa.Items) {
			filing.Items = fa.Items[i]
		}
		if i < len(fa.Size) {
			filing.Size = fa.Size[i]
		}
		if i < len(fa.IsXBRL) {
			filing.IsXBRL = fa.IsXBRL[i] != 0
		}
		if i < len(fa.IsInlineXBRL) {
			filing.IsInlineXBRL = fa.IsInlineXBRL[i] != 0
		}
		if i < len(fa.PrimaryDocDescription) {
			filing.PrimaryDocDescription = fa.PrimaryDocDescription[i]
		}

		filing.URL = filing.BuildURL()
		filings = append(filings, filing)
	}

	return filings
}

// BuildURL constructs the full SEC EDGAR URL for this filing's primary document
func (f *Filing) BuildURL() string {
	// https://www.sec.gov/Archives/edgar/data/{CIK}/{ACCESSION}/{PRIMARY_DOCUMENT}
	return fmt.Sprintf("%s/%s", f.folderURL(), f.PrimaryDocument)
}

// IndexURL is the filing's "-index.htm" page
func (f *Filing) IndexURL() string {
	return fmt.Sprintf("%s/%s-index.htm", f.folderURL(), f.AccessionNumber)
}

func (f *Filing) folderURL() string {
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s",
		secBaseURL,
		strings.TrimLeft(f.CIK, "0"), // Remove leading zeros from CIK
		strings.ReplaceAll(f.AccessionNumber, "-", ""),
	)
}

// Type returns the filing's FilingType.
func (f *Filing) Type() FilingType {
	return ParseFilingType(f.Form)
}

// IsAmendment reports whether the filing is a /A amendment.
func (f *Filing) IsAmendment() bool {
	return strings.Contains(f.Form, "/A")
}

// GetRecentFilings returns all recent filings as a slice
func (s *Submissions) GetRecentFilings() []Filing {
	return s.Filings.Recent.GetFilings(s.CIK)
}

// FilterByForm filters filings by form type.
// Base forms include their amendments and transition reports:
//   - "10-K" matches "10-K", "10-K/A", "10-KT"
//   - "10-Q" matches "10-Q", "10-Q/A"
//   - "8-K" matches "8-K", "8-K/A"
//
// An explicit amendment ("10-K/A") or any other form matches exactly.
func FilterByForm(filings []Filing, formType string) []Filing {
	var filtered []Filing
	for _, f := range filings {
		if matchesFormType(f.Form, formType) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func matchesFormType(filingForm, requestedForm string) bool {
	requested := strings.ToUpper(strings.TrimSpace(requestedForm))
	form := strings.ToUpper(strings.TrimSpace(filingForm))

	if form == requested {
		return true
	}
	if strings.Contains(requested, "/") {
		return false
	}

	want := ParseFilingType(requested)
	if want == Unknown {
		return false
	}
	return ParseFilingType(form) == want
}

// FilterByDateRange filters filings by date range (inclusive)
// Dates should be in YYYY-MM-DD format; empty bounds are open
func FilterByDateRange(filings []Filing, from, to string) []Filing {
	if from == "" {
		from = "0000-00-00"
	}
	if to == "" {
		to = "9999-99-99"
	}

	var filtered []Filing
	for _, f := range filings {
		if f.FilingDate >= from && f.FilingDate <= to {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// PriorFiling returns the most recent filing of the same base form filed
// before current, skipping amendments. ok is false when there is none.
func PriorFiling(filings []Filing, current Filing) (Filing, bool) {
	want := current.Type()
	if want == Unknown {
		return Filing{}, false
	}

	var candidates []Filing
	for _, f := range filings {
		if f.AccessionNumber == current.AccessionNumber || f.IsAmendment() {
			continue
		}
		if f.Type() != want || f.FilingDate >= current.FilingDate {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		return Filing{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FilingDate > candidates[j].FilingDate
	})
	return candidates[0], true
}

// PadCIK left-pads a CIK to SEC's 10 digits
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}
