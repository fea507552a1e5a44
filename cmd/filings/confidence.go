package main

import (
	"fmt"
	"os"

	filings "github.com/RxDataLab/go-filings"
	"github.com/spf13/cobra"
)

var confidenceCmd = &cobra.Command{
	Use:   "confidence [ticker]",
	Short: "Show historical prediction accuracy for a ticker, or the whole table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfidence,
}

var confidenceBase float64

func init() {
	confidenceCmd.Flags().Float64Var(&confidenceBase, "base", 0, "Model confidence 0..1 to adjust")

	rootCmd.AddCommand(confidenceCmd)
}

func runConfidence(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Ticker confidence table %s (baseline %.1f%%)\n", filings.ConfidenceTableVersion(), filings.BaselineAccuracy)
		fmt.Fprintf(os.Stderr, "Source: %s\n", filings.ConfidenceTableSource())
		return printJSON(filings.ConfidenceTable())
	}

	if cmd.Flags().Changed("base") {
		adj := filings.AdjustPredictionConfidence(confidenceBase, args[0])
		fmt.Fprintln(os.Stderr, adj.Explanation)
		return printJSON(adj)
	}
	return printJSON(filings.GetTickerConfidence(args[0]))
}
