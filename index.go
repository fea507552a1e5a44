package filings

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const secBaseURL = "https://www.sec.gov"

// IndexDocument is one row of an EDGAR filing index page's document table.
type IndexDocument struct {
	Seq         string
	Description string
	Name        string
	URL         string // absolute, with any inline viewer prefix removed
	Type        string
	Size        string
}

// ParseFilingIndex reads the "Document Format Files" table of an EDGAR
// "-index.htm" page.
func ParseFilingIndex(indexHTML []byte) ([]IndexDocument, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(indexHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing index: %w", err)
	}

	var docs []IndexDocument
	doc.Find("table.tableFile").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header row
		}
		link := cells.Eq(2).Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		d := IndexDocument{
			Seq:         strings.TrimSpace(cells.Eq(0).Text()),
			Description: strings.TrimSpace(cells.Eq(1).Text()),
			Name:        strings.TrimSpace(link.Text()),
			URL:         resolveIndexHref(href),
			Type:        strings.TrimSpace(cells.Eq(3).Text()),
		}
		if cells.Length() > 4 {
			d.Size = strings.TrimSpace(cells.Eq(4).Text())
		}
		docs = append(docs, d)
	})

	if len(docs) == 0 {
		return nil, fmt.Errorf("filing index has no document table")
	}
	return docs, nil
}

// FindPrimaryDocument returns the URL of the main document in a filing index.
// The first row whose type matches formType wins; with an empty formType the
// first 10-K, 10-Q or 8-K row is used.
func FindPrimaryDocument(indexHTML []byte, formType string) (string, error) {
	docs, err := ParseFilingIndex(indexHTML)
	if err != nil {
		return "", err
	}

	want := ParseFilingType(formType)
	for _, d := range docs {
		got := ParseFilingType(d.Type)
		if got == Unknown {
			continue
		}
		if formType == "" || got == want {
			return d.URL, nil
		}
	}
	return "", fmt.Errorf("no %s document in filing index", displayForm(formType))
}

// IsIndexURL reports whether u points at an EDGAR filing index page.
func IsIndexURL(u string) bool {
	return strings.HasSuffix(strings.ToLower(u), "-index.htm") || strings.HasSuffix(strings.ToLower(u), "-index.html")
}

// resolveIndexHref turns "/ix?doc=/Archives/..." and "/Archives/..." hrefs
// into absolute document URLs.
func resolveIndexHref(href string) string {
	if strings.HasPrefix(href, "/ix?") {
		if u, err := url.Parse(href); err == nil {
			if doc := u.Query().Get("doc"); doc != "" {
				href = doc
			}
		}
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return secBaseURL + href
}

func displayForm(formType string) string {
	if formType == "" {
		return "10-K/10-Q/8-K"
	}
	return formType
}
