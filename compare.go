package filings

import "math"

// MetricChange is one metric compared across two periods.
type MetricChange struct {
	Metric    Metric   `json:"metric"`
	Current   float64  `json:"current"`
	Prior     float64  `json:"prior"`
	ChangePct *float64 `json:"changePct,omitempty"` // nil when prior is zero
}

// FinancialComparison compares a filing against the prior period's filing.
type FinancialComparison struct {
	PriorPeriodEndDate string         `json:"priorPeriodEndDate,omitempty"`
	Changes            []MetricChange `json:"changes"`
}

// comparedMetrics are the figures reported period over period.
var comparedMetrics = []Metric{
	MetricRevenue,
	MetricNetIncome,
	MetricEPS,
	MetricOperatingIncome,
	MetricOperatingCashFlow,
	MetricTotalAssets,
}

// CompareFinancials reports the change of each compared metric present in
// both periods. A nil prior means no comparison is available and yields nil.
func CompareFinancials(current, prior *ExtractedFinancials) *FinancialComparison {
	if current == nil || prior == nil {
		return nil
	}

	cmp := &FinancialComparison{
		PriorPeriodEndDate: prior.PeriodEndDate,
		Changes:            []MetricChange{},
	}
	for _, m := range comparedMetrics {
		cur, ok := current.Get(m)
		if !ok {
			continue
		}
		prev, ok := prior.Get(m)
		if !ok {
			continue
		}

		change := MetricChange{Metric: m, Current: cur, Prior: prev}
		if prev != 0 {
			pct := math.Round((cur-prev)/math.Abs(prev)*100*100) / 100
			change.ChangePct = &pct
		}
		cmp.Changes = append(cmp.Changes, change)
	}
	return cmp
}

// Change returns the comparison entry for a metric.
func (c *FinancialComparison) Change(m Metric) (MetricChange, bool) {
	if c == nil {
		return MetricChange{}, false
	}
	for _, ch := range c.Changes {
		if ch.Metric == m {
			return ch, true
		}
	}
	return MetricChange{}, false
}
