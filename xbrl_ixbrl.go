package filings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Document and Entity Information facts read verbatim from ix:nonNumeric tags
const (
	deiPeriodEndDate = "dei:DocumentPeriodEndDate"
	deiFiscalPeriod  = "dei:DocumentFiscalPeriodFocus"
	deiDocumentType  = "dei:DocumentType"
)

// inlineFact is one ix:nonFraction or ix:nonNumeric element
type inlineFact struct {
	Concept string // name attribute, e.g. "us-gaap:Revenues"
	Text    string // text content with nested markup removed
	Scale   string // scale attribute (power of ten, may be negative)
	Sign    string // sign attribute ("-" for negative values)
	numeric bool
}

// inlineFacts is the result of one pass over a document
type inlineFacts struct {
	numeric    []inlineFact            // document order
	byConcept  map[string][]inlineFact // name -> numeric facts, document order
	nonNumeric map[string]string       // name -> first text value
}

// ExtractFinancials reads inline-XBRL facts from raw filing markup.
//
// For each metric the candidate US-GAAP concepts are tried in priority order
// and the first concept present in the document wins; later candidates are
// never consulted. Within the winning tag the numeric text has thousands
// separators removed and is multiplied by 10^scale. A tag whose text does not
// parse is skipped and the next candidate concept is tried.
//
// Metrics without a usable tag are left nil. Never fails: malformed or
// non-HTML input yields an empty record.
func ExtractFinancials(rawHTML string) *ExtractedFinancials {
	facts := scanInlineFacts(rawHTML)
	fin := &ExtractedFinancials{}

	for _, metric := range AllMetrics() {
		concepts, err := ConceptsForMetric(metric)
		if err != nil {
			continue
		}
		for _, concept := range concepts {
			candidates := facts.byConcept[concept]
			if len(candidates) == 0 {
				continue
			}
			// First tag for the concept only; unparseable text moves on to the next concept
			if v, err := candidates[0].value(); err == nil {
				fin.set(metric, v)
				break
			}
		}
	}

	fin.PeriodEndDate = facts.nonNumeric[deiPeriodEndDate]
	fin.FiscalPeriod = facts.nonNumeric[deiFiscalPeriod]
	fin.DocumentType = facts.nonNumeric[deiDocumentType]
	fin.LineItems = buildLineItems(facts.numeric)

	return fin
}

// scanInlineFacts tokenizes the document once and collects every inline fact.
// Tag and attribute names are case-folded by the tokenizer, so ix:nonFraction
// and ix:nonfraction are treated alike.
func scanInlineFacts(doc string) inlineFacts {
	out := inlineFacts{
		byConcept:  make(map[string][]inlineFact),
		nonNumeric: make(map[string]string),
	}

	type openFact struct {
		fact inlineFact
		text strings.Builder
	}
	var open []*openFact

	record := func(f inlineFact) {
		if f.Concept == "" {
			return
		}
		if f.numeric {
			out.numeric = append(out.numeric, f)
			out.byConcept[f.Concept] = append(out.byConcept[f.Concept], f)
			return
		}
		if _, seen := out.nonNumeric[f.Concept]; !seen {
			out.nonNumeric[f.Concept] = f.Text
		}
	}

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way nothing more to read
			return out

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag != "ix:nonfraction" && tag != "ix:nonnumeric" {
				continue
			}

			f := inlineFact{numeric: tag == "ix:nonfraction"}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "name":
					f.Concept = strings.TrimSpace(string(val))
				case "scale":
					f.Scale = strings.TrimSpace(string(val))
				case "sign":
					f.Sign = strings.TrimSpace(string(val))
				}
			}

			if tt == html.SelfClosingTagToken {
				record(f)
				continue
			}
			open = append(open, &openFact{fact: f})

		case html.TextToken:
			if len(open) == 0 {
				continue
			}
			text := z.Text()
			for _, o := range open {
				o.text.Write(text)
			}

		case html.EndTagToken:
			if len(open) == 0 {
				continue
			}
			name, _ := z.TagName()
			tag := string(name)
			if tag != "ix:nonfraction" && tag != "ix:nonnumeric" {
				continue
			}
			last := open[len(open)-1]
			open = open[:len(open)-1]
			last.fact.Text = strings.TrimSpace(last.text.String())
			record(last.fact)
		}
	}
}

// value parses the fact's text and applies sign and scale.
func (f inlineFact) value() (float64, error) {
	v, err := parseInlineNumber(f.Text)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", f.Concept, err)
	}

	if f.Scale != "" {
		if n, err := strconv.Atoi(f.Scale); err == nil {
			v *= math.Pow10(n)
		}
	}

	if f.Sign == "-" {
		v = -v
	}

	return v, nil
}

// parseInlineNumber converts displayed numeric text ("1,234.5") to float64
func parseInlineNumber(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || cleaned == "-" || cleaned == "—" {
		return 0, fmt.Errorf("empty or invalid value")
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("non-finite value %q", text)
	}

	return val, nil
}

// buildLineItems keeps the first parseable value of every numeric concept.
func buildLineItems(facts []inlineFact) []LineItem {
	seen := make(map[string]bool)
	var items []LineItem
	for _, f := range facts {
		if seen[f.Concept] {
			continue
		}
		v, err := f.value()
		if err != nil {
			continue
		}
		seen[f.Concept] = true
		items = append(items, LineItem{
			Concept: f.Concept,
			Label:   humanizeConcept(f.Concept),
			Value:   v,
		})
	}
	return items
}

// humanizeConcept turns "us-gaap:EarningsPerShareDiluted" into
// "Earnings Per Share Diluted". Acronym runs ("EPS") are kept together.
func humanizeConcept(concept string) string {
	local := concept
	if i := strings.LastIndex(local, ":"); i >= 0 {
		local = local[i+1:]
	}

	runes := []rune(local)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
