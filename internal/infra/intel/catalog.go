package intel

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedCatalog []byte

// Template is one fixed bundle of nine prose blocks.
type Template struct {
	ExecutiveSummary       string `yaml:"executiveSummary"`
	ProfessionalBackground string `yaml:"professionalBackground"`
	BusinessContext        string `yaml:"businessContext"`
	DigitalPresence        string `yaml:"digitalPresence"`
	BehavioralProfile      string `yaml:"behavioralProfile"`
	RiskFlags              string `yaml:"riskFlags"`
	OpportunityAssessment  string `yaml:"opportunityAssessment"`
	KeyContacts            string `yaml:"keyContacts"`
	RecommendedApproach    string `yaml:"recommendedApproach"`
}

// LoadCatalog parses a template catalog. Dipanggil sekali waktu startup.
func LoadCatalog(data []byte) (map[string]Template, error) {
	var catalog map[string]Template
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing template catalog: %w", err)
	}
	if _, ok := catalog[keyDefault]; !ok {
		return nil, fmt.Errorf("template catalog missing %q entry", keyDefault)
	}
	return catalog, nil
}

// LoadCatalogFile reads an on-disk catalog override.
func LoadCatalogFile(path string) (map[string]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadCatalog(data)
}
