package main

import (
	"fmt"
	"os"

	filings "github.com/RxDataLab/go-filings"
	"github.com/spf13/cobra"
)

var financialsCmd = &cobra.Command{
	Use:   "financials <source>",
	Short: "Extract inline-XBRL financial figures",
	Args:  cobra.ExactArgs(1),
	RunE:  runFinancials,
}

var financialsLineItems bool

func init() {
	financialsCmd.Flags().BoolVar(&financialsLineItems, "line-items", false, "Include every numeric fact in the output")

	rootCmd.AddCommand(financialsCmd)
}

func runFinancials(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	var client *filings.Client
	if needsClient(args[0]) {
		var err error
		if client, err = newClient(logger); err != nil {
			return err
		}
	}

	src, err := loadSource(ctx, client, args[0], "")
	if err != nil {
		return err
	}

	fin := filings.ExtractFinancials(string(src.HTML))
	fmt.Fprintf(os.Stderr, "Extracted %d metrics (concept table %s)\n", len(fin.Present()), filings.ConceptTableVersion())
	if missing := fin.MissingMetrics(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Not tagged: %v\n", missing)
	}
	if !financialsLineItems {
		fin.LineItems = nil
	}
	return printJSON(fin)
}
