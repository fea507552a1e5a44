package main

import (
	"fmt"
	"os"
	"time"

	filings "github.com/RxDataLab/go-filings"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source>",
	Short: "Run the full pipeline: sections, financials, earnings surprise and confidence",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeTicker         string
	analyzeFilingDate     string
	analyzeForm           string
	analyzePrior          string
	analyzeConsensusFile  string
	analyzeBaseConfidence float64
	analyzeSaveOriginal   bool
	analyzeOutput         string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTicker, "ticker", "", "Ticker symbol (enables surprise and confidence)")
	analyzeCmd.Flags().StringVar(&analyzeFilingDate, "filing-date", "", "Filing date YYYY-MM-DD (default: today)")
	analyzeCmd.Flags().StringVarP(&analyzeForm, "type", "t", "", "Filing type (10-K, 10-Q, 8-K); detected when empty")
	analyzeCmd.Flags().StringVar(&analyzePrior, "prior", "", "Prior-period filing URL or file for comparison")
	analyzeCmd.Flags().StringVar(&analyzeConsensusFile, "consensus-file", "", "YAML consensus estimates (or use CONSENSUS_FILE env var)")
	analyzeCmd.Flags().Float64Var(&analyzeBaseConfidence, "base-confidence", 0, "Model confidence 0..1 to adjust by ticker history")
	analyzeCmd.Flags().BoolVarP(&analyzeSaveOriginal, "save-original", "s", false, "Save the original HTML file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output JSON file path (default: stdout)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()
	source := args[0]

	filingDate := time.Now()
	if analyzeFilingDate != "" {
		var err error
		filingDate, err = time.Parse("2006-01-02", analyzeFilingDate)
		if err != nil {
			return fmt.Errorf("invalid --filing-date: %w", err)
		}
	}

	opts := []filings.AnalyzerOption{filings.WithAnalyzerLogger(logger)}
	consensus, err := consensusOption(analyzeConsensusFile)
	if err != nil {
		return err
	}
	if consensus != nil {
		opts = append(opts, consensus)
	}
	analyzer := filings.NewAnalyzer(opts...)

	var client *filings.Client
	if needsClient(source, analyzePrior) {
		if client, err = newClient(logger); err != nil {
			return err
		}
	}

	req := filings.AnalysisRequest{Ticker: analyzeTicker, FilingDate: filingDate}
	if cmd.Flags().Changed("base-confidence") {
		req.BaseConfidence = &analyzeBaseConfidence
	}

	var current *loadedSource
	switch {
	case isURL(source) && isURL(analyzePrior) && !filings.IsIndexURL(source) && !filings.IsIndexURL(analyzePrior):
		// Both documents fetched concurrently; a failed prior only drops the comparison
		fmt.Fprintf(os.Stderr, "Fetching from SEC: %s (prior: %s)\n", source, analyzePrior)
		pair, err := client.FetchPair(ctx, source, analyzePrior, cfg.PriorFetchTimeout)
		if err != nil {
			return err
		}
		if pair.PriorErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: prior filing unavailable, no comparison: %v\n", pair.PriorErr)
		}
		meta, _ := filings.ExtractMetadataFromURL(source)
		current = &loadedSource{HTML: pair.Current, URL: source, Meta: meta}
		req.PriorHTML = pair.Prior
	default:
		var err error
		current, err = loadSource(ctx, client, source, analyzeForm)
		if err != nil {
			return err
		}
		if analyzePrior != "" {
			prior, err := loadSource(ctx, client, analyzePrior, analyzeForm)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: prior filing unavailable, no comparison: %v\n", err)
			} else {
				req.PriorHTML = prior.HTML
			}
		}
	}

	accession := ""
	if current.Meta != nil {
		accession = current.Meta.Accession
	}
	req.Document = filings.NewFilingDocument(current.HTML, analyzeForm, accession)
	fmt.Fprintf(os.Stderr, "Detected filing type: %s\n", req.Document.Type)

	analysis := analyzer.Analyze(ctx, req)

	if !analyzeSaveOriginal && analyzeOutput == "" {
		return printJSON(analysis)
	}

	meta := filings.MergeMetadata(current.Meta, req.Document)
	saveOpts := filings.SaveOptions{
		SaveOriginal: analyzeSaveOriginal,
		OutputPath:   analyzeOutput,
		OutputDir:    "./output",
	}
	if saveOpts.OutputPath == "" {
		saveOpts.OutputPath = filings.GenerateFilename(meta, "json")
	}

	result, err := filings.SaveFiles(current.HTML, analysis, meta, saveOpts)
	if err != nil {
		return fmt.Errorf("failed to save files: %w", err)
	}
	if result.OriginalPath != "" {
		fmt.Fprintf(os.Stderr, "Saved original HTML: %s\n", result.OriginalPath)
	}
	if result.OutputPath != "" {
		fmt.Fprintf(os.Stderr, "Saved JSON output: %s\n", result.OutputPath)
	}
	return nil
}
