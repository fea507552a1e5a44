package filings

// ExtractedFinancials holds the figures tagged inline in a filing.
//
// Every numeric field is optional: nil means the filing does not tag the
// metric, which is different from a tagged zero. Present values are already
// multiplied out by their scale attribute (never in raw tag units).
type ExtractedFinancials struct {
	// Income statement (duration)
	Revenue         *float64 `json:"revenue,omitempty"`
	NetRevenue      *float64 `json:"netRevenue,omitempty"` // Banks: revenue net of interest expense
	CostOfRevenue   *float64 `json:"costOfRevenue,omitempty"`
	GrossProfit     *float64 `json:"grossProfit,omitempty"`
	OperatingIncome *float64 `json:"operatingIncome,omitempty"`
	NetIncome       *float64 `json:"netIncome,omitempty"`

	// Per share (duration)
	EPS        *float64 `json:"eps,omitempty"` // Headline EPS: diluted, else basic
	EPSDiluted *float64 `json:"epsDiluted,omitempty"`
	EPSBasic   *float64 `json:"epsBasic,omitempty"`

	// Balance sheet (instant)
	TotalAssets        *float64 `json:"totalAssets,omitempty"`
	CurrentAssets      *float64 `json:"currentAssets,omitempty"`
	TotalLiabilities   *float64 `json:"totalLiabilities,omitempty"`
	CurrentLiabilities *float64 `json:"currentLiabilities,omitempty"`
	StockholdersEquity *float64 `json:"stockholdersEquity,omitempty"`

	// Cash flow statement (duration)
	OperatingCashFlow *float64 `json:"operatingCashFlow,omitempty"`
	InvestingCashFlow *float64 `json:"investingCashFlow,omitempty"`
	FinancingCashFlow *float64 `json:"financingCashFlow,omitempty"`

	// Document and Entity Information
	PeriodEndDate string `json:"periodEndDate,omitempty"` // dei:DocumentPeriodEndDate
	FiscalPeriod  string `json:"fiscalPeriod,omitempty"`  // dei:DocumentFiscalPeriodFocus (FY, Q1..Q4)
	DocumentType  string `json:"documentType,omitempty"`  // dei:DocumentType

	// Every numeric fact in the filing, first parseable value per concept,
	// in document order. Used for label-based fallbacks.
	LineItems []LineItem `json:"lineItems,omitempty"`
}

// LineItem is one numeric inline fact with a readable label.
type LineItem struct {
	Concept string  `json:"concept"` // e.g. "us-gaap:EarningsPerShareDiluted"
	Label   string  `json:"label"`   // e.g. "Earnings Per Share Diluted"
	Value   float64 `json:"value"`
}

// field returns the address of the struct field backing a metric.
func (f *ExtractedFinancials) field(metric Metric) **float64 {
	switch metric {
	case MetricRevenue:
		return &f.Revenue
	case MetricNetRevenue:
		return &f.NetRevenue
	case MetricCostOfRevenue:
		return &f.CostOfRevenue
	case MetricGrossProfit:
		return &f.GrossProfit
	case MetricOperatingIncome:
		return &f.OperatingIncome
	case MetricNetIncome:
		return &f.NetIncome
	case MetricEPS:
		return &f.EPS
	case MetricEPSDiluted:
		return &f.EPSDiluted
	case MetricEPSBasic:
		return &f.EPSBasic
	case MetricTotalAssets:
		return &f.TotalAssets
	case MetricCurrentAssets:
		return &f.CurrentAssets
	case MetricTotalLiabilities:
		return &f.TotalLiabilities
	case MetricCurrentLiabilities:
		return &f.CurrentLiabilities
	case MetricStockholdersEquity:
		return &f.StockholdersEquity
	case MetricOperatingCashFlow:
		return &f.OperatingCashFlow
	case MetricInvestingCashFlow:
		return &f.InvestingCashFlow
	case MetricFinancingCashFlow:
		return &f.FinancingCashFlow
	}
	return nil
}

// Get returns the value of a metric and whether it was tagged.
func (f *ExtractedFinancials) Get(metric Metric) (float64, bool) {
	if f == nil {
		return 0, false
	}
	p := f.field(metric)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// set records a metric value.
func (f *ExtractedFinancials) set(metric Metric, v float64) {
	if p := f.field(metric); p != nil {
		*p = &v
	}
}

// Present lists the metrics that were tagged, in table order.
func (f *ExtractedFinancials) Present() []Metric {
	var out []Metric
	for _, m := range AllMetrics() {
		if _, ok := f.Get(m); ok {
			out = append(out, m)
		}
	}
	return out
}

// MissingMetrics lists the metrics with no tag in the filing, in table order.
func (f *ExtractedFinancials) MissingMetrics() []Metric {
	var out []Metric
	for _, m := range AllMetrics() {
		if _, ok := f.Get(m); !ok {
			out = append(out, m)
		}
	}
	return out
}

// Float returns a pointer to v, for building optional fields.
func Float(v float64) *float64 {
	return &v
}
