package filings

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AnalysisRequest is one filing to analyze.
type AnalysisRequest struct {
	Ticker     string
	FilingDate time.Time
	Document   FilingDocument

	// Optional prior-period filing markup for period-over-period comparison
	PriorHTML []byte

	// Optional model confidence (0..1) to adjust by ticker history
	BaseConfidence *float64
}

// Analysis is the structured result for one filing.
type Analysis struct {
	ID         string                 `json:"id"`
	Ticker     string                 `json:"ticker,omitempty"`
	FilingType FilingType             `json:"filingType"`
	Accession  string                 `json:"accession,omitempty"`
	FilingDate string                 `json:"filingDate,omitempty"`
	Sections   []Section              `json:"sections"`
	RiskScore  *float64               `json:"riskScore,omitempty"` // 0..10 keyword density
	Financials *ExtractedFinancials   `json:"financials"`
	Surprise   EarningsSurprise       `json:"surprise"`
	Comparison *FinancialComparison   `json:"comparison,omitempty"`
	Confidence TickerConfidenceRecord `json:"confidence"`
	Adjusted   *AdjustedConfidence    `json:"adjusted,omitempty"`
	AnalyzedAt time.Time              `json:"analyzedAt"`
}

// Section returns the analysis section of the given kind.
func (a *Analysis) Section(kind SectionKind) (Section, bool) {
	return FindSection(a.Sections, kind)
}

// Analyzer runs the extraction pipeline over filings.
type Analyzer struct {
	consensus ConsensusProvider
	logger    *slog.Logger
	now       func() time.Time
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithConsensus sets the consensus-estimate provider. Without one every
// surprise reports no consensus data.
func WithConsensus(p ConsensusProvider) AnalyzerOption {
	return func(a *Analyzer) { a.consensus = p }
}

// WithAnalyzerLogger sets the analyzer's logger.
func WithAnalyzerLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = loggerOrDiscard(a.logger)
	return a
}

// Analyze runs every stage over one filing. It always returns a result:
// missing sections, untagged metrics and absent consensus are reported in
// the result rather than as errors.
//
// The raw markup is read along two independent paths: tag-stripped text for
// sections and tag-preserving markup for inline XBRL.
func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) *Analysis {
	doc := req.Document
	ft := doc.Type
	if ft == "" {
		ft = DetectFilingType(doc.HTML)
	}

	raw := string(doc.HTML)
	out := &Analysis{
		ID:         uuid.NewString(),
		Ticker:     normalizeTicker(req.Ticker),
		FilingType: ft,
		Accession:  doc.Accession,
		AnalyzedAt: a.now().UTC(),
	}
	if !req.FilingDate.IsZero() {
		out.FilingDate = req.FilingDate.Format("2006-01-02")
	}

	log := a.logger.With("analysis", out.ID, "ticker", out.Ticker, "type", ft.String())

	out.Sections = ExtractSectionsFromHTML(raw, ft)
	for _, s := range out.Sections {
		if !s.Found {
			log.Info("section not found", "section", s.Kind)
		}
	}
	out.RiskScore = sectionRiskScore(out.Sections)

	out.Financials = ExtractFinancials(raw)
	if missing := out.Financials.MissingMetrics(); len(missing) > 0 {
		log.Debug("metrics not tagged", "missing", missing)
	}

	if out.Ticker != "" {
		out.Surprise = CalculateSurprises(ctx, out.Ticker, req.FilingDate, out.Financials, a.consensus)
		out.Confidence = GetTickerConfidence(out.Ticker)
		if req.BaseConfidence != nil {
			adj := AdjustPredictionConfidence(*req.BaseConfidence, out.Ticker)
			out.Adjusted = &adj
		}
	} else {
		out.Surprise = CalculateSurprises(ctx, "", req.FilingDate, out.Financials, nil)
	}

	if len(req.PriorHTML) > 0 {
		out.Comparison = CompareFinancials(out.Financials, ExtractFinancials(string(req.PriorHTML)))
	}

	log.Info("filing analyzed",
		"sections_found", countFound(out.Sections),
		"metrics", len(out.Financials.Present()),
		"has_consensus", out.Surprise.HasConsensusData,
		"has_comparison", out.Comparison != nil,
	)
	return out
}

func countFound(sections []Section) int {
	n := 0
	for _, s := range sections {
		if s.Found {
			n++
		}
	}
	return n
}
