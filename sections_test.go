package filings_test

import (
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	filings "github.com/RxDataLab/go-filings"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/filings/" + name)
	require.NoError(t, err)
	return string(data)
}

func mustSection(t *testing.T, sections []filings.Section, kind filings.SectionKind) filings.Section {
	t.Helper()
	s, ok := filings.FindSection(sections, kind)
	require.True(t, ok, "no %s section returned", kind)
	return s
}

func TestExtractSectionsBoundaryExactness(t *testing.T) {
	text := "Item 1A. Risk Factors\n  Demand for our products may decline.  \nItem 1B. Unresolved Staff Comments\nNone."

	sections := filings.ExtractSections(text, filings.TenK)
	require.Len(t, sections, 2)

	risk := mustSection(t, sections, filings.RiskFactors)
	assert.True(t, risk.Found)
	assert.Equal(t, "Demand for our products may decline.", risk.Text)
	assert.Equal(t, []string{"Item 1A"}, risk.FoundItems)
	assert.Equal(t, filings.SourceHeader, risk.Source)
	assert.False(t, risk.Truncated)
}

func TestExtractSectionsTenK(t *testing.T) {
	sections := filings.ExtractSectionsFromHTML(readFixture(t, "acme-10k.htm"), filings.TenK)

	want := []filings.Section{
		{
			Kind:       filings.RiskFactors,
			Found:      true,
			Text:       "Our business depends on widget demand. A decline in demand could harm our results.\n\nWe rely on a small number of suppliers for key components.",
			FoundItems: []string{"Item 1A"},
			Source:     filings.SourceHeader,
		},
		{
			Kind:       filings.MDA,
			Found:      true,
			Text:       "Net sales were $391,035 million in fiscal 2024.\n\nGross margin improved on a favorable mix & lower component costs.",
			FoundItems: []string{"Item 7"},
			Source:     filings.SourceHeader,
		},
	}
	if diff := cmp.Diff(want, sections); diff != "" {
		t.Errorf("ExtractSectionsFromHTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSectionsTenQ(t *testing.T) {
	sections := filings.ExtractSectionsFromHTML(readFixture(t, "acme-10q.htm"), filings.TenQ)
	require.Len(t, sections, 2)

	risk := mustSection(t, sections, filings.RiskFactors)
	assert.True(t, risk.Found)
	assert.Equal(t, filings.SourceHeader, risk.Source)
	assert.True(t, strings.HasPrefix(risk.Text, "The following risk factor supplements"), risk.Text)
	assert.True(t, strings.HasSuffix(risk.Text, "greater local presence."), risk.Text)
	assert.NotContains(t, risk.Text, "Unregistered Sales")

	mda := mustSection(t, sections, filings.MDA)
	assert.True(t, mda.Found)
	assert.True(t, strings.HasPrefix(mda.Text, "Quarterly net sales decreased 4%"), mda.Text)
	assert.NotContains(t, mda.Text, "Quantitative and Qualitative")
	assert.Equal(t, []string{"Part I Item 2"}, mda.FoundItems)
}

func TestExtractSectionsTenQCrossReference(t *testing.T) {
	sections := filings.ExtractSectionsFromHTML(readFixture(t, "acme-10q-crossref.htm"), filings.TenQ)

	risk := mustSection(t, sections, filings.RiskFactors)
	assert.True(t, risk.Found)
	assert.Equal(t, filings.UnchangedRiskFactorsText, risk.Text)
	assert.Equal(t, filings.SourceCrossReference, risk.Source)
	assert.Equal(t, risk.Text, risk.Display())

	mda := mustSection(t, sections, filings.MDA)
	assert.True(t, mda.Found)
	assert.Contains(t, mda.Text, "Revenue was flat")
	assert.NotContains(t, mda.Text, "Results of Operations")
}

func TestExtractSectionsTenQCrossReferencePlainText(t *testing.T) {
	text := "PART II. OTHER INFORMATION\nThere have been no changes. Please refer to Item 1A of the Annual Report on Form 10-K for the year ended December 31, 2024."

	risk := mustSection(t, filings.ExtractSections(text, filings.TenQ), filings.RiskFactors)
	assert.True(t, risk.Found)
	assert.Equal(t, filings.UnchangedRiskFactorsText, risk.Text)
}

func TestExtractSectionsTenQShortSpan(t *testing.T) {
	t.Run("short span with cross reference is replaced", func(t *testing.T) {
		text := "Part II\nItem 1A. Risk Factors\nSee our annual report.\nItem 2. Unregistered Sales\n" +
			"We refer you to Item 1A in our Annual Report on Form 10-K."
		risk := mustSection(t, filings.ExtractSections(text, filings.TenQ), filings.RiskFactors)
		assert.Equal(t, filings.UnchangedRiskFactorsText, risk.Text)
		assert.Equal(t, filings.SourceCrossReference, risk.Source)
	})

	t.Run("short span without cross reference is kept", func(t *testing.T) {
		text := "Part II\nItem 1A. Risk Factors\nNone.\nItem 2. Unregistered Sales"
		risk := mustSection(t, filings.ExtractSections(text, filings.TenQ), filings.RiskFactors)
		assert.True(t, risk.Found)
		assert.Equal(t, "None.", risk.Text)
		assert.Less(t, utf8.RuneCountInString(risk.Text), filings.MinQuarterlyRiskFactorsChars)
	})
}

func TestExtractSectionsEightK(t *testing.T) {
	sections := filings.ExtractSectionsFromHTML(readFixture(t, "acme-8k.htm"), filings.EightK)
	require.Len(t, sections, 1)

	digest := sections[0]
	assert.Equal(t, filings.MaterialEventDigest, digest.Kind)
	assert.True(t, digest.Found)
	assert.Equal(t, []string{"Item 2.02", "Item 9.01"}, digest.FoundItems)

	want := "Item 2.02 - Results of Operations and Financial Condition\n" +
		"On October 31, 2024, Acme Widgets, Inc. issued a press release regarding its financial results for its fourth fiscal quarter ended September 28, 2024." +
		"\n\n---\n\n" +
		"Item 9.01 - Financial Statements and Exhibits\n" +
		"Exhibit 99.1 Press release issued by Acme Widgets, Inc. on October 31, 2024."
	assert.Equal(t, want, digest.Text)
}

func TestExtractSectionsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		ft       filings.FilingType
		kinds    []filings.SectionKind
		sentinel []string
	}{
		{
			name:     "10-K",
			ft:       filings.TenK,
			kinds:    []filings.SectionKind{filings.RiskFactors, filings.MDA},
			sentinel: []string{"Risk factors section not found", "MD&A section not found"},
		},
		{
			name:     "10-Q",
			ft:       filings.TenQ,
			kinds:    []filings.SectionKind{filings.RiskFactors, filings.MDA},
			sentinel: []string{"Risk factors section not found", "MD&A section not found"},
		},
		{
			name:     "8-K",
			ft:       filings.EightK,
			kinds:    []filings.SectionKind{filings.MaterialEventDigest},
			sentinel: []string{"No material event items (2.02, 7.01, 9.01) found"},
		},
		{
			name:     "unknown",
			ft:       filings.Unknown,
			kinds:    []filings.SectionKind{filings.RiskFactors, filings.MDA},
			sentinel: []string{"Risk factors section not found", "MD&A section not found"},
		},
	}

	for _, tt := range tests {
		for _, input := range []string{"", "nothing of interest in this document"} {
			t.Run(tt.name, func(t *testing.T) {
				sections := filings.ExtractSections(input, tt.ft)
				require.Len(t, sections, len(tt.kinds))
				for i, s := range sections {
					assert.Equal(t, tt.kinds[i], s.Kind)
					assert.False(t, s.Found)
					assert.Empty(t, s.Text)
					assert.Nil(t, s.FoundItems)
					assert.Equal(t, tt.sentinel[i], s.Display())
				}
			})
		}
	}
}

func TestExtractSectionsEmptySpanIsNotFound(t *testing.T) {
	text := "Item 1A. Risk Factors\nItem 1B. Unresolved Staff Comments"
	risk := mustSection(t, filings.ExtractSections(text, filings.TenK), filings.RiskFactors)
	assert.False(t, risk.Found)
}

func TestExtractSectionsStartPriority(t *testing.T) {
	// The Part II heading is preferred even though a bare "Risk Factors"
	// mention appears earlier in the document.
	text := "Forward-looking statements are subject to risk factors beyond our control.\n" +
		"Part II. Other Information\nItem 1A. Risk Factors\n" + strings.Repeat("Currency exposure has increased. ", 5) +
		"\nItem 2. Unregistered Sales"

	risk := mustSection(t, filings.ExtractSections(text, filings.TenQ), filings.RiskFactors)
	assert.True(t, strings.HasPrefix(risk.Text, "Currency exposure"), risk.Text)
}

func TestExtractSectionsTruncation(t *testing.T) {
	body := strings.Repeat("é", filings.MaxSectionChars+500)
	text := "Item 1A. Risk Factors\n" + body + "\nItem 1B. Unresolved Staff Comments"

	risk := mustSection(t, filings.ExtractSections(text, filings.TenK), filings.RiskFactors)
	assert.True(t, risk.Found)
	assert.True(t, risk.Truncated)
	assert.True(t, strings.HasSuffix(risk.Text, filings.TruncationMarker))
	assert.Equal(t, filings.MaxSectionChars, utf8.RuneCountInString(strings.TrimSuffix(risk.Text, filings.TruncationMarker)))
	assert.True(t, utf8.ValidString(risk.Text))
}

func TestExtractSectionsUnknownType(t *testing.T) {
	text := "Risk Factors\nCompetition is intense.\nManagement's Discussion and Analysis\nSales grew.\nFinancial Statements\n..."
	sections := filings.ExtractSections(text, filings.Unknown)

	risk := mustSection(t, sections, filings.RiskFactors)
	assert.Equal(t, "Competition is intense.", risk.Text)

	mda := mustSection(t, sections, filings.MDA)
	assert.Equal(t, "Sales grew.", mda.Text)
}

func TestExtractSectionsHexApostropheHeading(t *testing.T) {
	html := "<p>Item 7. Management&#x2019;s Discussion and Analysis of Financial Condition and Results of Operations</p>" +
		"<p>Revenue grew 8% on services demand.</p>" +
		"<p>Item 7A. Quantitative and Qualitative Disclosures About Market Risk</p>"
	sections := filings.ExtractSectionsFromHTML(html, filings.TenK)

	mda := mustSection(t, sections, filings.MDA)
	require.True(t, mda.Found)
	assert.Equal(t, "Revenue grew 8% on services demand.", mda.Text)
	assert.Equal(t, []string{"Item 7"}, mda.FoundItems)
}
