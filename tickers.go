package filings

import (
	"fmt"
	"sort"
)

// tickerCIKs maps the covered large-cap tickers to their SEC CIKs.
var tickerCIKs = map[string]string{
	"AAPL":  "0000320193",
	"MSFT":  "0000789019",
	"GOOGL": "0001652044",
	"AMZN":  "0001018724",
	"NVDA":  "0001045810",
	"META":  "0001326801",
	"TSLA":  "0001318605",
	"AVGO":  "0001730168",
	"JPM":   "0000019617",
	"V":     "0001403161",
	"WMT":   "0000104169",
	"MA":    "0001141391",
	"COST":  "0000909832",
	"HD":    "0000354950",
	"PG":    "0000080424",
	"NFLX":  "0001065280",
	"DIS":   "0001744489",
	"PYPL":  "0001633917",
	"INTC":  "0000050863",
	"AMD":   "0000002488",
}

// LookupCIK returns the 10-digit CIK for a covered ticker (case-insensitive).
func LookupCIK(ticker string) (string, error) {
	cik, ok := tickerCIKs[normalizeTicker(ticker)]
	if !ok {
		return "", fmt.Errorf("no CIK known for ticker %q", ticker)
	}
	return cik, nil
}

// CoveredTickers lists the tickers LookupCIK knows, sorted.
func CoveredTickers() []string {
	out := make([]string, 0, len(tickerCIKs))
	for t := range tickerCIKs {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
