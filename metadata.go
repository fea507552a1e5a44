package filings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var edgarPathPattern = regexp.MustCompile(`/edgar/data/(\d+)/(\d+)/`)

// FilingMetadata contains information extracted from SEC URLs or filings
type FilingMetadata struct {
	CIK       string
	Accession string
	FormType  FilingType
}

// ExtractMetadataFromURL parses SEC EDGAR URLs to extract CIK and accession number
// Example URL: https://www.sec.gov/Archives/edgar/data/320193/000032019325000073/aapl-20250628.htm
func ExtractMetadataFromURL(url string) (*FilingMetadata, error) {
	matches := edgarPathPattern.FindStringSubmatch(url)
	if len(matches) < 3 {
		return nil, fmt.Errorf("could not extract CIK and accession from URL")
	}

	return &FilingMetadata{
		CIK:       matches[1],
		Accession: FormatAccession(matches[2]),
	}, nil
}

// FormatAccession dashes an 18-digit accession number: 0000320193-25-000073
func FormatAccession(accession string) string {
	if len(accession) == 18 {
		return accession[:10] + "-" + accession[10:12] + "-" + accession[12:]
	}
	return accession
}

// MergeMetadata combines URL and document metadata, preferring URL data when available
func MergeMetadata(urlMeta *FilingMetadata, doc FilingDocument) *FilingMetadata {
	merged := &FilingMetadata{FormType: doc.Type}
	if urlMeta != nil {
		merged.CIK = urlMeta.CIK
		merged.Accession = urlMeta.Accession
	}
	if merged.Accession == "" {
		merged.Accession = doc.Accession
	}
	return merged
}

// GenerateFilename creates a smart filename based on metadata
// Format: {CIK}-{accession}_{form}.{ext}
// Falls back to filing.{ext} if metadata is incomplete
func GenerateFilename(meta *FilingMetadata, ext string) string {
	form := "filing"
	if meta.FormType != "" && meta.FormType != Unknown {
		form = string(meta.FormType)
	}
	if meta.CIK != "" && meta.Accession != "" {
		return fmt.Sprintf("%s-%s_%s.%s", meta.CIK, meta.Accession, form, ext)
	}
	if meta.CIK != "" {
		return fmt.Sprintf("%s_%s.%s", meta.CIK, form, ext)
	}
	return fmt.Sprintf("%s.%s", form, ext)
}

// SaveOptions configures how files should be saved
type SaveOptions struct {
	SaveOriginal bool
	OriginalPath string // If empty, uses smart naming
	OutputPath   string // If empty, the analysis is not written
	OutputDir    string // Directory for output files (default: current dir)
}

// SaveResult contains paths to saved files
type SaveResult struct {
	OriginalPath string
	OutputPath   string
}

// SaveFiles saves the original HTML and/or analysis JSON based on options
func SaveFiles(htmlData []byte, analysis *Analysis, meta *FilingMetadata, opts SaveOptions) (*SaveResult, error) {
	result := &SaveResult{}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if opts.SaveOriginal {
		originalPath := opts.OriginalPath
		if originalPath == "" {
			originalPath = GenerateFilename(meta, "htm")
		}
		if opts.OutputDir != "" {
			originalPath = filepath.Join(opts.OutputDir, originalPath)
		}

		if err := os.WriteFile(originalPath, htmlData, 0644); err != nil {
			return nil, fmt.Errorf("failed to save original HTML: %w", err)
		}
		result.OriginalPath = originalPath
	}

	if opts.OutputPath != "" {
		outputPath := opts.OutputPath
		if opts.OutputDir != "" && !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(opts.OutputDir, outputPath)
		}

		jsonData, err := FormatJSON(analysis)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return nil, fmt.Errorf("failed to save JSON output: %w", err)
		}
		result.OutputPath = outputPath
	}

	return result, nil
}

// FormatJSON returns pretty-printed JSON for any result value
func FormatJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
