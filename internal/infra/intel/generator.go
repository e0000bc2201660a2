package intel

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// Clock abstraction supaya tanggal di header gampang ditest
type Clock interface {
	Now() time.Time
}

// keyword heuristic: printing dicek duluan, first match wins.
// Closed classification - tidak ada fuzzy matching atau scoring.
var (
	printingKeywords = []string{"print", "catapult"}
	labelKeywords    = []string{"label", "abbott"}
)

const (
	keyPrinting = "printing"
	keyLabels   = "labels"
	keyDefault  = "default"

	// literal yang disubstitusi ke blok key contacts
	placeholderTarget = "[Target Name]"
	placeholderTitle  = "[Current Title]"
	literalTitle      = "Executive Leadership"
)

const footer = `**INTELLIGENCE DISCLAIMER**: This analysis is generated using publicly available information and analytical frameworks. All recommendations should be validated through direct engagement and additional research. Use in compliance with applicable privacy regulations and ethical sales practices.

**NEXT ACTIONS**:
- Validate contact information through LinkedIn/company website
- Research recent company news and developments
- Prepare customized outreach materials based on recommended approach
- Schedule follow-up analysis if additional intelligence required`

// Generator renders intelligence documents from the template catalog.
// Implements the prospects.Generator port. Pure apart from the clock,
// which only feeds the human-readable date in the header.
type Generator struct {
	catalog map[string]Template
	clock   Clock
}

// NewGenerator loads the embedded catalog.
func NewGenerator(clock Clock) (*Generator, error) {
	catalog, err := LoadCatalog(embeddedCatalog)
	if err != nil {
		return nil, err
	}
	return &Generator{catalog: catalog, clock: clock}, nil
}

// NewGeneratorFromFile loads a catalog override from disk.
func NewGeneratorFromFile(path string, clock Clock) (*Generator, error) {
	catalog, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return &Generator{catalog: catalog, clock: clock}, nil
}

// Classify picks the template key for a company/context pair.
// Case-insensitive substring search over the concatenation of both.
func Classify(companyName, additionalContext string) string {
	haystack := strings.ToLower(companyName + " " + additionalContext)
	for _, kw := range printingKeywords {
		if strings.Contains(haystack, kw) {
			return keyPrinting
		}
	}
	for _, kw := range labelKeywords {
		if strings.Contains(haystack, kw) {
			return keyLabels
		}
	}
	return keyDefault
}

// Generate renders the full markdown document: fixed header, the nine
// sections in prospects.SectionTitles order, fixed disclaimer footer.
func (g *Generator) Generate(_ context.Context, req domain.GenerateRequest) (string, error) {
	tpl, ok := g.catalog[Classify(req.CompanyName, req.AdditionalContext)]
	if !ok {
		tpl = g.catalog[keyDefault]
	}

	contacts := strings.NewReplacer(
		placeholderTarget, req.TargetName,
		placeholderTitle, literalTitle,
	).Replace(tpl.KeyContacts)

	// urutan harus sama dengan prospects.SectionTitles
	blocks := []string{
		tpl.ExecutiveSummary,
		tpl.ProfessionalBackground,
		tpl.BusinessContext,
		tpl.DigitalPresence,
		tpl.BehavioralProfile,
		tpl.RiskFlags,
		tpl.OpportunityAssessment,
		contacts,
		tpl.RecommendedApproach,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# PRIVATE EYE INTELLIGENCE ANALYSIS\n**TARGET**: %s\n**COMPANY**: %s\n**CLASSIFICATION**: CONFIDENTIAL\n**GENERATED**: %s\n\n---\n",
		req.TargetName, req.CompanyName, g.clock.Now().Format("1/2/2006"))
	for i, title := range domain.SectionTitles {
		fmt.Fprintf(&b, "\n## %d. **%s**\n\n%s\n", i+1, title, blocks[i])
	}
	b.WriteString("\n---\n\n")
	b.WriteString(footer)

	return b.String(), nil
}
