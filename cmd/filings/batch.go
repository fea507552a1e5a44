package main

import (
	"fmt"
	"os"

	filings "github.com/RxDataLab/go-filings"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every filing of one form for a company",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

var batchOpts filings.BatchOptions

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchOpts.Ticker, "ticker", "", "Ticker symbol (resolves CIK for covered tickers)")
	f.StringVar(&batchOpts.CIK, "cik", "", "Company CIK")
	f.StringVar(&batchOpts.FormType, "form", "10-Q", "Form type: 10-K, 10-Q or 8-K")
	f.StringVar(&batchOpts.DateFrom, "from", "", "Start date YYYY-MM-DD")
	f.StringVar(&batchOpts.DateTo, "to", "", "End date YYYY-MM-DD")
	f.IntVar(&batchOpts.Limit, "limit", 0, "Newest N filings only (0 = all)")
	f.BoolVar(&batchOpts.IncludePaginated, "all", false, "Include older paginated filings (slow)")
	f.BoolVar(&batchOpts.ComparePrior, "compare", false, "Compare each filing against its prior period")
	f.IntVar(&batchOpts.Concurrency, "concurrency", 2, "Filings analyzed at once")
	batchCmd.MarkFlagsOneRequired("ticker", "cik")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	opts := []filings.AnalyzerOption{filings.WithAnalyzerLogger(logger)}
	consensus, err := consensusOption("")
	if err != nil {
		return err
	}
	if consensus != nil {
		opts = append(opts, consensus)
	}

	result, err := filings.FetchAndAnalyzeBatch(ctx, client, filings.NewAnalyzer(opts...), batchOpts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Successfully analyzed %d/%d filings\n", result.Fetched, result.TotalFound)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
	return printJSON(result.Analyses)
}
