package filings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractMetadataFromURL(t *testing.T) {
	meta, err := ExtractMetadataFromURL("https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/acme-20240928.htm")
	if err != nil {
		t.Fatalf("ExtractMetadataFromURL failed: %v", err)
	}
	if meta.CIK != "320193" {
		t.Errorf("CIK = %q, want 320193", meta.CIK)
	}
	if meta.Accession != "0000320193-24-000123" {
		t.Errorf("Accession = %q, want 0000320193-24-000123", meta.Accession)
	}

	if _, err := ExtractMetadataFromURL("acme-10k.htm"); err == nil {
		t.Error("expected error for a local file name")
	}
}

func TestFormatAccession(t *testing.T) {
	tests := []struct{ in, want string }{
		{"000032019324000123", "0000320193-24-000123"},
		{"0000320193-24-000123", "0000320193-24-000123"},
		{"12345", "12345"},
	}
	for _, tt := range tests {
		if got := FormatAccession(tt.in); got != tt.want {
			t.Errorf("FormatAccession(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeMetadata(t *testing.T) {
	doc := FilingDocument{Type: TenQ, Accession: "0000320193-24-000081"}

	merged := MergeMetadata(nil, doc)
	if merged.Accession != "0000320193-24-000081" || merged.FormType != TenQ || merged.CIK != "" {
		t.Errorf("MergeMetadata(nil) = %+v", merged)
	}

	merged = MergeMetadata(&FilingMetadata{CIK: "320193", Accession: "0000320193-24-000123"}, doc)
	if merged.Accession != "0000320193-24-000123" || merged.CIK != "320193" {
		t.Errorf("URL metadata should win: %+v", merged)
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name string
		meta FilingMetadata
		want string
	}{
		{"complete", FilingMetadata{CIK: "320193", Accession: "0000320193-24-000123", FormType: TenK}, "320193-0000320193-24-000123_10-K.json"},
		{"no accession", FilingMetadata{CIK: "320193", FormType: EightK}, "320193_8-K.json"},
		{"unknown form", FilingMetadata{CIK: "320193", Accession: "0000320193-24-000123", FormType: Unknown}, "320193-0000320193-24-000123_filing.json"},
		{"nothing", FilingMetadata{}, "filing.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateFilename(&tt.meta, "json"); got != tt.want {
				t.Errorf("GenerateFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	html := []byte("<html>filing</html>")
	analysis := &Analysis{ID: "a1", Ticker: "ACME", FilingType: TenK, Sections: []Section{}}
	meta := &FilingMetadata{CIK: "320193", Accession: "0000320193-24-000123", FormType: TenK}

	result, err := SaveFiles(html, analysis, meta, SaveOptions{
		SaveOriginal: true,
		OutputPath:   GenerateFilename(meta, "json"),
		OutputDir:    filepath.Join(dir, "output"),
	})
	if err != nil {
		t.Fatalf("SaveFiles failed: %v", err)
	}

	wantOriginal := filepath.Join(dir, "output", "320193-0000320193-24-000123_10-K.htm")
	if result.OriginalPath != wantOriginal {
		t.Errorf("OriginalPath = %q, want %q", result.OriginalPath, wantOriginal)
	}
	saved, err := os.ReadFile(result.OriginalPath)
	if err != nil || string(saved) != string(html) {
		t.Errorf("original not saved: %v", err)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("output not saved: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["ticker"] != "ACME" || decoded["filingType"] != "10-K" {
		t.Errorf("unexpected output: %s", data)
	}
}

func TestSaveFilesNothingRequested(t *testing.T) {
	result, err := SaveFiles(nil, nil, &FilingMetadata{}, SaveOptions{})
	if err != nil {
		t.Fatalf("SaveFiles failed: %v", err)
	}
	if result.OriginalPath != "" || result.OutputPath != "" {
		t.Errorf("nothing should be written: %+v", result)
	}
}
