package filings

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed xbrl_concepts.json
var conceptSynonymsJSON []byte

//go:embed xbrl_concepts.schema.json
var conceptSynonymsSchema []byte

// Metric names a logical financial figure extracted from inline XBRL.
type Metric string

const (
	MetricRevenue            Metric = "revenue"
	MetricNetRevenue         Metric = "netRevenue"
	MetricCostOfRevenue      Metric = "costOfRevenue"
	MetricGrossProfit        Metric = "grossProfit"
	MetricOperatingIncome    Metric = "operatingIncome"
	MetricNetIncome          Metric = "netIncome"
	MetricEPS                Metric = "eps"
	MetricEPSDiluted         Metric = "epsDiluted"
	MetricEPSBasic           Metric = "epsBasic"
	MetricTotalAssets        Metric = "totalAssets"
	MetricCurrentAssets      Metric = "currentAssets"
	MetricTotalLiabilities   Metric = "totalLiabilities"
	MetricCurrentLiabilities Metric = "currentLiabilities"
	MetricStockholdersEquity Metric = "stockholdersEquity"
	MetricOperatingCashFlow  Metric = "operatingCashFlow"
	MetricInvestingCashFlow  Metric = "investingCashFlow"
	MetricFinancingCashFlow  Metric = "financingCashFlow"
)

// usGAAPPrefix qualifies every synonym in the table.
const usGAAPPrefix = "us-gaap:"

// ConceptSynonyms represents the structure of xbrl_concepts.json
type ConceptSynonyms struct {
	Schema      string          `json:"$schema"`
	Description string          `json:"description"`
	Version     string          `json:"version"`
	Metrics     []MetricConcept `json:"metrics"`
}

// MetricConcept lists the candidate concepts for one metric, in priority order.
type MetricConcept struct {
	Metric   Metric   `json:"metric"`
	Concepts []string `json:"concepts"`
	Notes    string   `json:"notes"`
}

// conceptMapper provides lookup capabilities for XBRL concepts
type conceptMapper struct {
	version       string
	order         []Metric            // table order
	concepts      map[Metric][]string // metric -> qualified concepts, priority order
	reverseLookup map[string]Metric   // qualified concept -> first metric listing it
}

var globalMapper *conceptMapper

func init() {
	var err error
	globalMapper, err = loadConceptSynonyms(conceptSynonymsJSON)
	if err != nil {
		panic(fmt.Sprintf("Failed to load concept synonyms: %v", err))
	}
}

// loadConceptSynonyms validates and parses the embedded table
func loadConceptSynonyms(data []byte) (*conceptMapper, error) {
	if err := validateAgainstSchema("xbrl_concepts.json", conceptSynonymsSchema, data); err != nil {
		return nil, err
	}

	var table ConceptSynonyms
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse xbrl_concepts.json: %w", err)
	}

	mapper := &conceptMapper{
		version:       table.Version,
		concepts:      make(map[Metric][]string, len(table.Metrics)),
		reverseLookup: make(map[string]Metric),
	}

	for _, m := range table.Metrics {
		if _, dup := mapper.concepts[m.Metric]; dup {
			return nil, fmt.Errorf("metric %q listed twice", m.Metric)
		}
		qualified := make([]string, len(m.Concepts))
		for i, c := range m.Concepts {
			qualified[i] = usGAAPPrefix + c
			if _, seen := mapper.reverseLookup[qualified[i]]; !seen {
				mapper.reverseLookup[qualified[i]] = m.Metric
			}
		}
		mapper.order = append(mapper.order, m.Metric)
		mapper.concepts[m.Metric] = qualified
	}

	return mapper, nil
}

// ConceptsFor returns the qualified candidate concepts for a metric in priority order
func (m *conceptMapper) ConceptsFor(metric Metric) ([]string, error) {
	concepts, ok := m.concepts[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", metric)
	}
	return concepts, nil
}

// MetricFor returns the metric a concept belongs to, or "" when unmapped.
// Matching is case-insensitive; some filings vary in capitalization.
func (m *conceptMapper) MetricFor(concept string) Metric {
	if metric, ok := m.reverseLookup[concept]; ok {
		return metric
	}
	for c, metric := range m.reverseLookup {
		if strings.EqualFold(c, concept) {
			return metric
		}
	}
	return ""
}

// Public interface functions using global mapper

// ConceptsForMetric returns the qualified US-GAAP concepts tried for a metric, in priority order
func ConceptsForMetric(metric Metric) ([]string, error) {
	return globalMapper.ConceptsFor(metric)
}

// MetricForConcept returns the metric a US-GAAP concept maps to, or "" when unmapped
func MetricForConcept(concept string) Metric {
	return globalMapper.MetricFor(concept)
}

// AllMetrics returns every metric in table order
func AllMetrics() []Metric {
	out := make([]Metric, len(globalMapper.order))
	copy(out, globalMapper.order)
	return out
}

// ConceptTableVersion returns the version of the embedded synonym table
func ConceptTableVersion() string {
	return globalMapper.version
}
