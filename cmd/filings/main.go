// Command filings extracts narrative sections and inline-XBRL financials
// from SEC 10-K, 10-Q and 8-K filings.
package main

import (
	"fmt"
	"os"

	filings "github.com/RxDataLab/go-filings"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filings",
	Short: "Extract sections and financials from SEC filings",
	Long: `filings reads SEC 10-K, 10-Q and 8-K filings from a URL or local file and
extracts risk factors, MD&A, material event items and inline-XBRL financials.

Environment:
  SEC_EMAIL                Email for SEC User-Agent header (required for URL fetching)
  LOG_LEVEL                debug|info|warn|error
  FETCH_TIMEOUT            Per-document fetch timeout (default 30s)
  PRIOR_FETCH_TIMEOUT      Prior-period fetch timeout (default 15s)
  SEC_REQUESTS_PER_SECOND  Request rate ceiling, at most 10
  CONSENSUS_FILE           YAML consensus estimates for earnings surprise`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	email    string
	logLevel string

	// cfg is loaded before any subcommand runs
	cfg *filings.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&email, "email", "e", "", "Email for SEC User-Agent header (or use SEC_EMAIL env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (or use LOG_LEVEL env var)")
}

// loadConfig reads the environment and applies --email and --log-level.
func loadConfig(_ *cobra.Command, _ []string) error {
	c := filings.ReadConfig()
	if email != "" {
		c.SecEmail = email
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
