package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	filings "github.com/RxDataLab/go-filings"
)

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func newLogger() *slog.Logger {
	return filings.NewLogger(cfg.LogLevel, os.Stderr)
}

// newClient builds an SEC client from the loaded configuration.
func newClient(logger *slog.Logger) (*filings.Client, error) {
	return filings.NewClientFromConfig(cfg, logger)
}

// consensusOption loads the consensus file named by path, falling back to
// CONSENSUS_FILE. It returns nil when neither is set.
func consensusOption(path string) (filings.AnalyzerOption, error) {
	if path == "" {
		path = cfg.ConsensusFile
	}
	if path == "" {
		return nil, nil
	}
	provider, err := filings.LoadConsensusFile(path)
	if err != nil {
		return nil, err
	}
	return filings.WithConsensus(provider), nil
}

// loadedSource is a filing read from disk or SEC.
type loadedSource struct {
	HTML []byte
	URL  string // resolved document URL, empty for files
	Meta *filings.FilingMetadata
}

// loadSource reads a local file, a document URL or an EDGAR "-index.htm"
// page (resolved to its primary document of the given form).
func loadSource(ctx context.Context, client *filings.Client, source, form string) (*loadedSource, error) {
	if !isURL(source) {
		fmt.Fprintf(os.Stderr, "Reading from file: %s\n", source)
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return &loadedSource{HTML: data}, nil
	}

	docURL := source
	if filings.IsIndexURL(source) {
		fmt.Fprintf(os.Stderr, "Fetching filing index: %s\n", source)
		index, err := client.Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch filing index: %w", err)
		}
		docURL, err = filings.FindPrimaryDocument(index, form)
		if err != nil {
			return nil, err
		}
	}

	meta, err := filings.ExtractMetadataFromURL(docURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "Fetching from SEC: %s\n", docURL)
	data, err := client.Fetch(ctx, docURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filing: %w", err)
	}
	return &loadedSource{HTML: data, URL: docURL, Meta: meta}, nil
}

// needsClient reports whether any source requires network access.
func needsClient(sources ...string) bool {
	for _, s := range sources {
		if isURL(s) {
			return true
		}
	}
	return false
}

func printJSON(v any) error {
	data, err := filings.FormatJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
