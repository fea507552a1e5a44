package filings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchOptions configures batch download and analysis
type BatchOptions struct {
	CIK              string // Required unless Ticker is set
	Ticker           string // Optional: resolves CIK and enables surprise/confidence
	FormType         string // Required: "10-K", "10-Q" or "8-K" (amendments included)
	DateFrom         string // Optional: Start date (YYYY-MM-DD), empty = no limit
	DateTo           string // Optional: End date (YYYY-MM-DD), empty = no limit
	Limit            int    // Optional: newest N filings only, 0 = all
	IncludePaginated bool   // If true, fetch all paginated filings (can be slow)
	ComparePrior     bool   // If true, fetch each filing's prior period for comparison
	Concurrency      int    // Filings analyzed at once (default 2); the client rate limit still applies
}

// BatchResult contains the results of a batch operation
type BatchResult struct {
	Analyses   []*Analysis
	TotalFound int     // Total filings matching criteria
	Fetched    int     // Number actually downloaded and analyzed
	Errors     []error // Any errors encountered during processing
}

// FetchAndAnalyzeBatch fetches every filing for a company matching the
// criteria and analyzes it. Per-filing failures are collected in Errors.
func FetchAndAnalyzeBatch(ctx context.Context, client *Client, analyzer *Analyzer, opts BatchOptions) (*BatchResult, error) {
	if opts.CIK == "" && opts.Ticker != "" {
		cik, err := LookupCIK(opts.Ticker)
		if err != nil {
			return nil, err
		}
		opts.CIK = cik
	}
	if opts.CIK == "" {
		return nil, fmt.Errorf("CIK or ticker is required")
	}
	if ParseFilingType(opts.FormType) == Unknown {
		return nil, fmt.Errorf("form type must be 10-K, 10-Q or 8-K, got %q", opts.FormType)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 2
	}

	log := client.logger.With("cik", opts.CIK, "form", opts.FormType)

	subs, err := client.FetchSubmissions(ctx, opts.CIK)
	if err != nil {
		return nil, err
	}

	var all []Filing
	if opts.IncludePaginated {
		log.Info("fetching paginated filings")
		all, err = client.GetAllFilings(ctx, subs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch paginated filings: %w", err)
		}
	} else {
		all = subs.GetRecentFilings()
	}

	filings := FilterByForm(all, opts.FormType)
	filings = FilterByDateRange(filings, opts.DateFrom, opts.DateTo)
	if opts.Limit > 0 && len(filings) > opts.Limit {
		// Submissions are newest first
		filings = filings[:opts.Limit]
	}
	log.Info("matched filings", "count", len(filings))

	result := &BatchResult{
		Analyses:   make([]*Analysis, len(filings)),
		TotalFound: len(filings),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, filing := range filings {
		g.Go(func() error {
			analysis, err := analyzeFiling(gctx, client, analyzer, all, filing, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("filing skipped", "accession", filing.AccessionNumber, "error", err)
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", filing.AccessionNumber, err))
				return nil
			}
			result.Analyses[i] = analysis
			result.Fetched++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Drop the slots of failed filings, keeping newest-first order
	analyses := result.Analyses[:0]
	for _, a := range result.Analyses {
		if a != nil {
			analyses = append(analyses, a)
		}
	}
	result.Analyses = analyses

	log.Info("batch complete", "analyzed", result.Fetched, "total", result.TotalFound, "errors", len(result.Errors))
	return result, nil
}

func analyzeFiling(ctx context.Context, client *Client, analyzer *Analyzer, all []Filing, filing Filing, opts BatchOptions) (*Analysis, error) {
	priorURL := ""
	if opts.ComparePrior {
		if prior, ok := PriorFiling(all, filing); ok {
			priorURL = prior.URL
		}
	}

	// zero uses the client's prior timeout
	pair, err := client.FetchPair(ctx, filing.URL, priorURL, 0)
	if err != nil {
		return nil, err
	}

	filingDate, err := time.Parse("2006-01-02", filing.FilingDate)
	if err != nil {
		client.logger.Debug("unparseable filing date", slog.String("date", filing.FilingDate))
	}

	return analyzer.Analyze(ctx, AnalysisRequest{
		Ticker:     opts.Ticker,
		FilingDate: filingDate,
		Document:   NewFilingDocument(pair.Current, filing.Form, filing.AccessionNumber),
		PriorHTML:  pair.Prior,
	}), nil
}
