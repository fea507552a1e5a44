package filings

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

//go:embed ticker_confidence.json
var tickerConfidenceJSON []byte

//go:embed ticker_confidence.schema.json
var tickerConfidenceSchema []byte

// ConfidenceTier buckets a ticker's historical direction accuracy.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "High"   // accuracy >= 70
	TierMedium ConfidenceTier = "Medium" // accuracy >= 55
	TierLow    ConfidenceTier = "Low"
)

const (
	// BaselineAccuracy is the dataset-average direction accuracy (percent),
	// used for tickers with no history.
	BaselineAccuracy = 56.8

	MinAdjustedConfidence = 0.10
	MaxAdjustedConfidence = 0.95
)

// TickerConfidenceRecord is one ticker's historical prediction accuracy.
type TickerConfidenceRecord struct {
	Ticker      string         `json:"ticker"`
	AccuracyPct float64        `json:"accuracyPct"`
	Correct     int            `json:"correct"`
	SampleSize  int            `json:"sampleSize"` // 0 for tickers not in the table
	Tier        ConfidenceTier `json:"tier"`
}

// AdjustedConfidence is a base confidence shifted by ticker history.
type AdjustedConfidence struct {
	Ticker             string                 `json:"ticker"`
	BaseConfidence     float64                `json:"baseConfidence"`
	AdjustedConfidence float64                `json:"adjustedConfidence"`
	Delta              float64                `json:"delta"`
	Record             TickerConfidenceRecord `json:"record"`
	Explanation        string                 `json:"explanation"`
}

type tickerConfidenceTable struct {
	Version          string                   `json:"version"`
	BaselineAccuracy float64                  `json:"baselineAccuracy"`
	Source           string                   `json:"source"`
	Tickers          []TickerConfidenceRecord `json:"tickers"`
}

var (
	confidenceVersion string
	confidenceSource  string
	confidenceTable   map[string]TickerConfidenceRecord
)

func init() {
	table, err := loadTickerConfidence(tickerConfidenceJSON)
	if err != nil {
		panic(fmt.Sprintf("Failed to load ticker confidence table: %v", err))
	}
	confidenceVersion = table.Version
	confidenceSource = table.Source
	confidenceTable = make(map[string]TickerConfidenceRecord, len(table.Tickers))
	for _, rec := range table.Tickers {
		rec.Tier = TierForAccuracy(rec.AccuracyPct)
		confidenceTable[rec.Ticker] = rec
	}
}

func loadTickerConfidence(data []byte) (*tickerConfidenceTable, error) {
	if err := validateAgainstSchema("ticker_confidence.json", tickerConfidenceSchema, data); err != nil {
		return nil, err
	}

	var table tickerConfidenceTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse ticker confidence JSON: %w", err)
	}
	if table.BaselineAccuracy != BaselineAccuracy {
		return nil, fmt.Errorf("baseline accuracy %.1f does not match %.1f", table.BaselineAccuracy, BaselineAccuracy)
	}

	seen := make(map[string]bool, len(table.Tickers))
	for _, rec := range table.Tickers {
		if seen[rec.Ticker] {
			return nil, fmt.Errorf("duplicate ticker %s", rec.Ticker)
		}
		seen[rec.Ticker] = true
		if rec.Correct > rec.SampleSize {
			return nil, fmt.Errorf("%s: %d correct out of %d", rec.Ticker, rec.Correct, rec.SampleSize)
		}
	}
	return &table, nil
}

// TierForAccuracy maps an accuracy percentage to its tier.
func TierForAccuracy(accuracyPct float64) ConfidenceTier {
	switch {
	case accuracyPct >= 70:
		return TierHigh
	case accuracyPct >= 55:
		return TierMedium
	default:
		return TierLow
	}
}

// GetTickerConfidence looks up a ticker case-insensitively. Tickers with no
// history get BaselineAccuracy, a zero sample size and TierMedium.
func GetTickerConfidence(ticker string) TickerConfidenceRecord {
	t := normalizeTicker(ticker)
	if rec, ok := confidenceTable[t]; ok {
		return rec
	}
	return TickerConfidenceRecord{
		Ticker:      t,
		AccuracyPct: BaselineAccuracy,
		Tier:        TierMedium,
	}
}

// AdjustPredictionConfidence shifts baseConfidence by the ticker's accuracy
// relative to the baseline, (accuracy - baseline) / 100, and clamps the
// result to [MinAdjustedConfidence, MaxAdjustedConfidence].
func AdjustPredictionConfidence(baseConfidence float64, ticker string) AdjustedConfidence {
	rec := GetTickerConfidence(ticker)
	delta := (rec.AccuracyPct - BaselineAccuracy) / 100

	adjusted := baseConfidence + delta
	if math.IsNaN(adjusted) {
		adjusted = MinAdjustedConfidence
	}
	adjusted = math.Max(MinAdjustedConfidence, math.Min(MaxAdjustedConfidence, adjusted))

	return AdjustedConfidence{
		Ticker:             rec.Ticker,
		BaseConfidence:     baseConfidence,
		AdjustedConfidence: adjusted,
		Delta:              delta,
		Record:             rec,
		Explanation:        confidenceExplanation(rec),
	}
}

func confidenceExplanation(rec TickerConfidenceRecord) string {
	switch rec.Tier {
	case TierHigh:
		return fmt.Sprintf("Confidence boosted: %s predictions have been %.1f%% accurate historically (%d of %d), above the %.1f%% average.",
			rec.Ticker, rec.AccuracyPct, rec.Correct, rec.SampleSize, BaselineAccuracy)
	case TierLow:
		return fmt.Sprintf("Confidence reduced: %s predictions have been only %.1f%% accurate historically (%d of %d), below the %.1f%% average.",
			rec.Ticker, rec.AccuracyPct, rec.Correct, rec.SampleSize, BaselineAccuracy)
	}
	if rec.SampleSize == 0 {
		return fmt.Sprintf("No prediction history for %s; using the %.1f%% dataset average.", rec.Ticker, rec.AccuracyPct)
	}
	return fmt.Sprintf("%s predictions have been %.1f%% accurate historically (%d of %d), close to the %.1f%% average.",
		rec.Ticker, rec.AccuracyPct, rec.Correct, rec.SampleSize, BaselineAccuracy)
}

// ConfidenceTable returns every ticker record, sorted by accuracy descending.
func ConfidenceTable() []TickerConfidenceRecord {
	out := make([]TickerConfidenceRecord, 0, len(confidenceTable))
	for _, rec := range confidenceTable {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccuracyPct != out[j].AccuracyPct {
			return out[i].AccuracyPct > out[j].AccuracyPct
		}
		return out[i].Ticker < out[j].Ticker
	})
	return out
}

// ConfidenceTableVersion reports the version of the embedded accuracy table.
func ConfidenceTableVersion() string {
	return confidenceVersion
}

// ConfidenceTableSource describes where the embedded accuracy figures come from.
func ConfidenceTableSource() string {
	return confidenceSource
}
