package filings

import (
	"context"
	"math"
	"strings"
	"time"
)

// SurpriseClass is the three-way earnings surprise classification.
type SurpriseClass string

const (
	Beat   SurpriseClass = "beat"
	Miss   SurpriseClass = "miss"
	Inline SurpriseClass = "inline"
)

// SurpriseMagnitude buckets |surprise %| independent of sign.
type SurpriseMagnitude string

const (
	MagnitudeMassive  SurpriseMagnitude = "massive"  // >= 20%
	MagnitudeLarge    SurpriseMagnitude = "large"    // >= 10%
	MagnitudeModerate SurpriseMagnitude = "moderate" // >= 5%
	MagnitudeSmall    SurpriseMagnitude = "small"    // >= 2%
	MagnitudeInline   SurpriseMagnitude = "inline"   // < 2%
)

// SurpriseThresholdPct is the strict Beat/Miss boundary; exactly ±2% is Inline.
const SurpriseThresholdPct = 2.0

// pctEpsilon absorbs float error in boundary comparisons, so 2.04 vs 2.00
// lands exactly on the 2% boundary.
const pctEpsilon = 1e-9

// EarningsSurprise compares reported actuals against consensus.
//
// A classification (and its percentage and magnitude) is present for a metric
// only when both the actual and consensus values for it are present.
type EarningsSurprise struct {
	ActualEPS                *float64          `json:"actualEPS,omitempty"`
	ConsensusEPS             *float64          `json:"consensusEPS,omitempty"`
	EPSSurprise              SurpriseClass     `json:"epsSurprise,omitempty"`
	EPSSurprisePct           *float64          `json:"epsSurprisePct,omitempty"`
	EPSSurpriseMagnitude     SurpriseMagnitude `json:"epsSurpriseMagnitude,omitempty"`
	ActualRevenue            *float64          `json:"actualRevenue,omitempty"` // billions
	ConsensusRevenue         *float64          `json:"consensusRevenue,omitempty"`
	RevenueSurprise          SurpriseClass     `json:"revenueSurprise,omitempty"`
	RevenueSurprisePct       *float64          `json:"revenueSurprisePct,omitempty"`
	RevenueSurpriseMagnitude SurpriseMagnitude `json:"revenueSurpriseMagnitude,omitempty"`
	AnalystCount             int               `json:"analystCount,omitempty"`
	HasConsensusData         bool              `json:"hasConsensusData"`
	HasActualData            bool              `json:"hasActualData"`
}

// CalculateSurprises classifies reported EPS and revenue against the
// consensus supplied by provider for ticker around filingDate.
//
// Actual EPS resolves diluted, then basic, then any line item labelled
// "earnings per share"/"eps". Actual revenue resolves Revenue, then
// NetRevenue, then any revenue line item, and is expressed in billions.
// A provider error or nil provider is treated as "no consensus". Never fails.
func CalculateSurprises(ctx context.Context, ticker string, filingDate time.Time, fin *ExtractedFinancials, provider ConsensusProvider) EarningsSurprise {
	var s EarningsSurprise

	s.ActualEPS = resolveActualEPS(fin)
	if rev := resolveActualRevenue(fin); rev != nil {
		s.ActualRevenue = Float(*rev / 1e9)
	}
	s.HasActualData = s.ActualEPS != nil || s.ActualRevenue != nil

	var est *ConsensusEstimate
	if provider != nil {
		if e, err := provider.Consensus(ctx, normalizeTicker(ticker), filingDate); err == nil {
			est = e
		}
	}
	if est != nil {
		s.ConsensusEPS = est.ConsensusEPS
		s.ConsensusRevenue = est.ConsensusRevenue
		s.AnalystCount = est.AnalystCount
	}
	s.HasConsensusData = s.ConsensusEPS != nil || s.ConsensusRevenue != nil

	s.EPSSurprise, s.EPSSurprisePct, s.EPSSurpriseMagnitude = classify(s.ActualEPS, s.ConsensusEPS)
	s.RevenueSurprise, s.RevenueSurprisePct, s.RevenueSurpriseMagnitude = classify(s.ActualRevenue, s.ConsensusRevenue)

	return s
}

// SurprisePct returns (actual − consensus) / |consensus| × 100, unrounded.
// ok is false when consensus is zero.
func SurprisePct(actual, consensus float64) (pct float64, ok bool) {
	if consensus == 0 {
		return 0, false
	}
	return (actual - consensus) / math.Abs(consensus) * 100, true
}

// roundPct rounds to two decimals for reporting.
func roundPct(pct float64) float64 {
	return math.Round(pct*100) / 100
}

// ClassifySurprise maps an unrounded surprise percentage to Beat (> +2),
// Miss (< −2) or Inline.
func ClassifySurprise(pct float64) SurpriseClass {
	switch {
	case pct > SurpriseThresholdPct+pctEpsilon:
		return Beat
	case pct < -(SurpriseThresholdPct + pctEpsilon):
		return Miss
	default:
		return Inline
	}
}

// ClassifyMagnitude buckets |pct|: massive (>=20), large (>=10), moderate (>=5), small (>=2), inline.
func ClassifyMagnitude(pct float64) SurpriseMagnitude {
	abs := math.Abs(pct) + pctEpsilon
	switch {
	case abs >= 20:
		return MagnitudeMassive
	case abs >= 10:
		return MagnitudeLarge
	case abs >= 5:
		return MagnitudeModerate
	case abs >= 2:
		return MagnitudeSmall
	default:
		return MagnitudeInline
	}
}

func classify(actual, consensus *float64) (SurpriseClass, *float64, SurpriseMagnitude) {
	if actual == nil || consensus == nil {
		return "", nil, ""
	}
	pct, ok := SurprisePct(*actual, *consensus)
	if !ok {
		return "", nil, ""
	}
	rounded := roundPct(pct)
	return ClassifySurprise(pct), &rounded, ClassifyMagnitude(pct)
}

func resolveActualEPS(fin *ExtractedFinancials) *float64 {
	if fin == nil {
		return nil
	}
	if fin.EPSDiluted != nil {
		return fin.EPSDiluted
	}
	if fin.EPSBasic != nil {
		return fin.EPSBasic
	}
	return findLineItem(fin.LineItems, func(label string) bool {
		return strings.Contains(label, "earnings per share") || strings.Contains(label, "eps")
	})
}

func resolveActualRevenue(fin *ExtractedFinancials) *float64 {
	if fin == nil {
		return nil
	}
	if fin.Revenue != nil {
		return fin.Revenue
	}
	if fin.NetRevenue != nil {
		return fin.NetRevenue
	}
	return findLineItem(fin.LineItems, func(label string) bool {
		if !strings.Contains(label, "revenue") {
			return false
		}
		// Not a top line
		for _, skip := range []string{"cost", "deferred", "unearned", "receivable"} {
			if strings.Contains(label, skip) {
				return false
			}
		}
		return true
	})
}

// findLineItem returns the first line item whose lower-cased label matches.
func findLineItem(items []LineItem, match func(label string) bool) *float64 {
	for _, item := range items {
		if match(strings.ToLower(item.Label)) {
			return Float(item.Value)
		}
	}
	return nil
}
