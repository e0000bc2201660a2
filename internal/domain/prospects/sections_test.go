package prospects

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() string {
	var b strings.Builder
	b.WriteString("# PRIVATE EYE INTELLIGENCE ANALYSIS\n**TARGET**: Jane Doe\n\n---\n")
	for i, title := range SectionTitles {
		fmt.Fprintf(&b, "\n## %d. **%s**\n\nBody for section %d.\n", i+1, title, i+1)
	}
	b.WriteString("\n---\n\nfooter text here")
	return b.String()
}

func TestSlugForTitle(t *testing.T) {
	cases := map[string]string{
		"Executive Summary":             "executive_summary",
		"Key Contact Points & Profiles": "key_contact_points___profiles",
		"Professional Background & Career Trajectory": "professional_background___career_trajectory",
		"Digital Presence Analysis":                   "digital_presence_analysis",
	}
	for title, want := range cases {
		assert.Equal(t, want, SlugForTitle(title))
	}
}

func TestExtractSections_AllPresent(t *testing.T) {
	sections := ExtractSections(sampleDocument())
	require.Len(t, sections, len(SectionTitles))
	for i, title := range SectionTitles {
		body, ok := sections[SlugForTitle(title)]
		require.True(t, ok, "missing %q", title)
		assert.Equal(t, fmt.Sprintf("Body for section %d.", i+1), body)
	}
}

func TestExtractSections_BodyStopsAtNextHeading(t *testing.T) {
	sections := ExtractSections(sampleDocument())
	for slug, body := range sections {
		assert.NotContains(t, body, "## ", "section %q bleeds into the next heading", slug)
	}
	// no numbered heading after the last section, so its body runs to end of document
	last := sections[SlugForTitle("Recommended Approach")]
	assert.Contains(t, last, "Body for section 9.")
}

func TestExtractSections_MissingSectionAbsent(t *testing.T) {
	doc := "## 1. **Executive Summary**\n\nOnly one section here.\n"
	sections := ExtractSections(doc)
	require.Len(t, sections, 1)
	assert.Equal(t, "Only one section here.", sections["executive_summary"])
	_, ok := sections["recommended_approach"]
	assert.False(t, ok)
}

func TestExtractSections_CaseInsensitiveHeading(t *testing.T) {
	doc := "## 1. **EXECUTIVE SUMMARY**\n\nupper case heading\n"
	sections := ExtractSections(doc)
	assert.Equal(t, "upper case heading", sections["executive_summary"])
}

func TestExtractSections_TrimsWhitespace(t *testing.T) {
	doc := "## 2. **Executive Summary**\n\n\n   padded body   \n\n\n## 3. **Opportunity Assessment**\n\nnext\n"
	sections := ExtractSections(doc)
	assert.Equal(t, "padded body", sections["executive_summary"])
	assert.Equal(t, "next", sections["opportunity_assessment"])
}

func TestExtractSections_EmptyDocument(t *testing.T) {
	assert.Empty(t, ExtractSections(""))
	assert.Empty(t, ExtractSections("no headings at all"))
}

func TestExtractSections_Idempotent(t *testing.T) {
	doc := sampleDocument()
	first := ExtractSections(doc)
	second := ExtractSections(doc)
	assert.Equal(t, first, second)
}
