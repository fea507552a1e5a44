package filings

import "testing"

func TestLookupCIK(t *testing.T) {
	tests := []struct {
		ticker  string
		want    string
		wantErr bool
	}{
		{"AAPL", "0000320193", false},
		{"msft", "0000789019", false},
		{" hd ", "0000354950", false},
		{"ZZZZ", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := LookupCIK(tt.ticker)
		if (err != nil) != tt.wantErr {
			t.Errorf("LookupCIK(%q) error = %v, wantErr %v", tt.ticker, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("LookupCIK(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}

func TestCoveredTickers(t *testing.T) {
	tickers := CoveredTickers()
	if len(tickers) != 20 {
		t.Fatalf("Expected 20 tickers, got %d", len(tickers))
	}
	for i := 1; i < len(tickers); i++ {
		if tickers[i-1] >= tickers[i] {
			t.Errorf("tickers not sorted: %s before %s", tickers[i-1], tickers[i])
		}
	}
	for _, ticker := range tickers {
		if cik, _ := LookupCIK(ticker); len(cik) != 10 {
			t.Errorf("%s CIK %q is not 10 digits", ticker, cik)
		}
	}
}
