package filings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConsensusWindow is how far from the filing date an estimate may be dated
// and still count as the consensus for that report.
const ConsensusWindow = 90 * 24 * time.Hour

// ErrNoConsensus is returned by providers that have no estimate for a ticker
// and date.
var ErrNoConsensus = errors.New("no consensus estimate")

// ConsensusEstimate is the analyst consensus for one reporting period.
type ConsensusEstimate struct {
	ConsensusEPS     *float64 `json:"consensusEPS,omitempty"`
	ConsensusRevenue *float64 `json:"consensusRevenue,omitempty"` // billions
	AnalystCount     int      `json:"analystCount,omitempty"`
}

// ConsensusProvider looks up the consensus estimate for a ticker's report
// filed on filingDate.
type ConsensusProvider interface {
	Consensus(ctx context.Context, ticker string, filingDate time.Time) (*ConsensusEstimate, error)
}

// ConsensusFunc adapts a function to ConsensusProvider.
type ConsensusFunc func(ctx context.Context, ticker string, filingDate time.Time) (*ConsensusEstimate, error)

// Consensus calls f.
func (f ConsensusFunc) Consensus(ctx context.Context, ticker string, filingDate time.Time) (*ConsensusEstimate, error) {
	return f(ctx, ticker, filingDate)
}

// consensusFile is the on-disk YAML layout:
//
//	estimates:
//	  - ticker: AAPL
//	    date: 2025-01-30
//	    eps: 2.35
//	    revenue: 124.1   # billions
//	    analysts: 28
type consensusFile struct {
	Estimates []consensusRecord `yaml:"estimates" validate:"dive"`
}

type consensusRecord struct {
	Ticker   string   `yaml:"ticker" validate:"required,max=10"`
	Date     string   `yaml:"date" validate:"required,datetime=2006-01-02"`
	EPS      *float64 `yaml:"eps"`
	Revenue  *float64 `yaml:"revenue" validate:"omitempty,gte=0"`
	Analysts int      `yaml:"analysts" validate:"gte=0"`
}

type datedEstimate struct {
	date     time.Time
	estimate ConsensusEstimate
}

// StaticConsensus serves consensus estimates from an in-memory table.
type StaticConsensus struct {
	byTicker map[string][]datedEstimate
}

// LoadConsensusFile reads a YAML consensus file.
func LoadConsensusFile(path string) (*StaticConsensus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read consensus file: %w", err)
	}
	sc, err := ParseConsensus(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseConsensus parses and validates YAML consensus data.
func ParseConsensus(data []byte) (*StaticConsensus, error) {
	var file consensusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse consensus YAML: %w", err)
	}

	v := validator.New()
	if err := v.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid consensus data: %w", err)
	}

	sc := &StaticConsensus{byTicker: make(map[string][]datedEstimate)}
	for i, rec := range file.Estimates {
		if rec.EPS == nil && rec.Revenue == nil {
			return nil, fmt.Errorf("estimate %d (%s %s): eps or revenue required", i, rec.Ticker, rec.Date)
		}
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			return nil, fmt.Errorf("estimate %d: %w", i, err)
		}
		ticker := normalizeTicker(rec.Ticker)
		sc.byTicker[ticker] = append(sc.byTicker[ticker], datedEstimate{
			date: date,
			estimate: ConsensusEstimate{
				ConsensusEPS:     rec.EPS,
				ConsensusRevenue: rec.Revenue,
				AnalystCount:     rec.Analysts,
			},
		})
	}
	return sc, nil
}

// Consensus returns the estimate dated closest to filingDate within
// ConsensusWindow. Ties go to the earlier estimate.
func (s *StaticConsensus) Consensus(ctx context.Context, ticker string, filingDate time.Time) (*ConsensusEstimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var best *datedEstimate
	var bestDist time.Duration
	for i, e := range s.byTicker[normalizeTicker(ticker)] {
		dist := absDuration(filingDate.Sub(e.date))
		if dist > ConsensusWindow {
			continue
		}
		if best == nil || dist < bestDist || (dist == bestDist && e.date.Before(best.date)) {
			best = &s.byTicker[normalizeTicker(ticker)][i]
			bestDist = dist
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%s near %s: %w", ticker, filingDate.Format("2006-01-02"), ErrNoConsensus)
	}
	est := best.estimate
	return &est, nil
}

// Tickers lists the tickers that have at least one estimate.
func (s *StaticConsensus) Tickers() []string {
	out := make([]string, 0, len(s.byTicker))
	for t := range s.byTicker {
		out = append(out, t)
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
