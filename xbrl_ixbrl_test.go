package filings_test

import (
	"testing"

	filings "github.com/RxDataLab/go-filings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFinancialsScale(t *testing.T) {
	fin := filings.ExtractFinancials(`<ix:nonFraction name="us-gaap:Revenues" scale="6">1,234</ix:nonFraction>`)

	require.NotNil(t, fin.Revenue)
	assert.Equal(t, 1_234_000_000.0, *fin.Revenue)
}

func TestExtractFinancialsFirstMatchWins(t *testing.T) {
	// SalesRevenueNet appears first in the document but Revenues has priority
	doc := `<p><ix:nonFraction name="us-gaap:SalesRevenueNet">500</ix:nonFraction></p>
<p><ix:nonFraction name="us-gaap:Revenues">700</ix:nonFraction></p>`

	fin := filings.ExtractFinancials(doc)
	require.NotNil(t, fin.Revenue)
	assert.Equal(t, 700.0, *fin.Revenue)
}

func TestExtractFinancialsAbsenceIsNotZero(t *testing.T) {
	untagged := filings.ExtractFinancials(`<ix:nonFraction name="us-gaap:Revenues">10</ix:nonFraction>`)
	assert.Nil(t, untagged.TotalAssets)
	_, ok := untagged.Get(filings.MetricTotalAssets)
	assert.False(t, ok)

	zero := filings.ExtractFinancials(`<ix:nonFraction name="us-gaap:Assets">0</ix:nonFraction>`)
	require.NotNil(t, zero.TotalAssets)
	assert.Equal(t, 0.0, *zero.TotalAssets)
	v, ok := zero.Get(filings.MetricTotalAssets)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestExtractFinancialsTagCapitalization(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"camel case", `<ix:nonFraction name="us-gaap:NetIncomeLoss" scale="3">42</ix:nonFraction>`},
		{"lower case", `<ix:nonfraction name="us-gaap:NetIncomeLoss" scale="3">42</ix:nonfraction>`},
		{"upper case attributes", `<IX:NONFRACTION NAME="us-gaap:NetIncomeLoss" SCALE="3">42</IX:NONFRACTION>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fin := filings.ExtractFinancials(tt.doc)
			require.NotNil(t, fin.NetIncome)
			assert.Equal(t, 42_000.0, *fin.NetIncome)
		})
	}
}

func TestExtractFinancialsValueParsing(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want *float64
	}{
		{"thousands separators", `<ix:nonFraction name="us-gaap:Assets">1,234,567</ix:nonFraction>`, filings.Float(1234567)},
		{"decimal", `<ix:nonFraction name="us-gaap:Assets">12.5</ix:nonFraction>`, filings.Float(12.5)},
		{"negative scale", `<ix:nonFraction name="us-gaap:Assets" scale="-2">150</ix:nonFraction>`, filings.Float(1.5)},
		{"sign attribute", `<ix:nonFraction name="us-gaap:Assets" scale="3" sign="-">2</ix:nonFraction>`, filings.Float(-2000)},
		{"nested markup", `<ix:nonFraction name="us-gaap:Assets"><span>3,000</span></ix:nonFraction>`, filings.Float(3000)},
		{"bad scale ignored", `<ix:nonFraction name="us-gaap:Assets" scale="x">7</ix:nonFraction>`, filings.Float(7)},
		{"dash is not a value", `<ix:nonFraction name="us-gaap:Assets">—</ix:nonFraction>`, nil},
		{"empty", `<ix:nonFraction name="us-gaap:Assets"></ix:nonFraction>`, nil},
		{"text", `<ix:nonFraction name="us-gaap:Assets">n/a</ix:nonFraction>`, nil},
		{"not a number literal", `<ix:nonFraction name="us-gaap:Assets">NaN</ix:nonFraction>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fin := filings.ExtractFinancials(tt.tag)
			if tt.want == nil {
				assert.Nil(t, fin.TotalAssets)
				return
			}
			require.NotNil(t, fin.TotalAssets)
			assert.InDelta(t, *tt.want, *fin.TotalAssets, 1e-9)
		})
	}
}

func TestExtractFinancialsUnparseableFallsThrough(t *testing.T) {
	// Revenues is present but unusable, so the next candidate concept is tried
	doc := `<ix:nonFraction name="us-gaap:Revenues">—</ix:nonFraction>
<ix:nonFraction name="us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax" scale="6">88</ix:nonFraction>`

	fin := filings.ExtractFinancials(doc)
	require.NotNil(t, fin.Revenue)
	assert.Equal(t, 88_000_000.0, *fin.Revenue)
}

func TestExtractFinancialsTenK(t *testing.T) {
	fin := filings.ExtractFinancials(readFixture(t, "acme-10k.htm"))

	expect := map[filings.Metric]float64{
		filings.MetricRevenue:            391_035e6,
		filings.MetricCostOfRevenue:      210_352e6,
		filings.MetricGrossProfit:        180_683e6,
		filings.MetricOperatingIncome:    123_216e6,
		filings.MetricNetIncome:          93_736e6,
		filings.MetricEPS:                6.08,
		filings.MetricEPSDiluted:         6.08,
		filings.MetricEPSBasic:           6.11,
		filings.MetricTotalAssets:        364_980e6,
		filings.MetricCurrentAssets:      152_987e6,
		filings.MetricTotalLiabilities:   308_030e6,
		filings.MetricCurrentLiabilities: 176_392e6,
		filings.MetricStockholdersEquity: 56_950e6,
		filings.MetricOperatingCashFlow:  118_254e6,
		filings.MetricInvestingCashFlow:  -2_935e6,
		filings.MetricFinancingCashFlow:  -121_983e6,
	}
	for metric, want := range expect {
		got, ok := fin.Get(metric)
		if assert.True(t, ok, "%s missing", metric) {
			assert.InDelta(t, want, got, 1e-6, metric)
		}
	}

	assert.Equal(t, []filings.Metric{filings.MetricNetRevenue}, fin.MissingMetrics())
	assert.Equal(t, "2024-09-28", fin.PeriodEndDate)
	assert.Equal(t, "FY", fin.FiscalPeriod)
	assert.Equal(t, "10-K", fin.DocumentType)

	require.NotEmpty(t, fin.LineItems)
	first := fin.LineItems[0]
	assert.Equal(t, "us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax", first.Concept)
	assert.Equal(t, "Revenue From Contract With Customer Excluding Assessed Tax", first.Label)
	assert.Len(t, fin.LineItems, 15)
}

func TestExtractFinancialsNeverFails(t *testing.T) {
	for _, in := range []string{"", "plain text", "<html><body></body></html>", "<ix:nonFraction", "<ix:nonFraction name=\"us-gaap:Revenues\">12"} {
		fin := filings.ExtractFinancials(in)
		require.NotNil(t, fin)
		assert.Nil(t, fin.Revenue)
		assert.Empty(t, fin.Present())
	}
}

func TestExtractFinancialsLineItemLabels(t *testing.T) {
	doc := `<ix:nonFraction name="us-gaap:EarningsPerShareDiluted">1.10</ix:nonFraction>
<ix:nonFraction name="acme:EPSAdjusted">1.25</ix:nonFraction>
<ix:nonFraction name="us-gaap:EarningsPerShareDiluted">9.99</ix:nonFraction>`

	fin := filings.ExtractFinancials(doc)
	require.Len(t, fin.LineItems, 2)
	assert.Equal(t, filings.LineItem{Concept: "us-gaap:EarningsPerShareDiluted", Label: "Earnings Per Share Diluted", Value: 1.10}, fin.LineItems[0])
	assert.Equal(t, filings.LineItem{Concept: "acme:EPSAdjusted", Label: "EPS Adjusted", Value: 1.25}, fin.LineItems[1])
}
