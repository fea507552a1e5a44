package main

import (
	"fmt"
	"os"

	filings "github.com/RxDataLab/go-filings"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <source>",
	Short: "Extract risk factors, MD&A or 8-K material event items",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

var (
	sectionsForm string
	sectionsText bool
)

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsForm, "type", "t", "", "Filing type (10-K, 10-Q, 8-K); detected when empty")
	sectionsCmd.Flags().BoolVar(&sectionsText, "text", false, "Print section text instead of JSON")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	var client *filings.Client
	if needsClient(args[0]) {
		var err error
		if client, err = newClient(logger); err != nil {
			return err
		}
	}

	src, err := loadSource(ctx, client, args[0], sectionsForm)
	if err != nil {
		return err
	}

	doc := filings.NewFilingDocument(src.HTML, sectionsForm, "")
	fmt.Fprintf(os.Stderr, "Filing type: %s\n", doc.Type)

	sections := filings.ExtractSectionsFromHTML(string(doc.HTML), doc.Type)
	if !sectionsText {
		return printJSON(sections)
	}

	for _, s := range sections {
		fmt.Printf("=== %s ===\n%s\n\n", s.Kind, s.Display())
	}
	return nil
}
