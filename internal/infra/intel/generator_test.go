package intel

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func testClock() fixedClock {
	return fixedClock{t: time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		company string
		context string
		want    string
	}{
		{"Catapult Print", "", "printing"},
		{"Acme Industries", "they do commercial printing", "printing"},
		{"Abbott Label", "", "labels"},
		{"Acme Industries", "label converter", "labels"},
		{"Acme Software", "", "default"},
		{"", "", "default"},
		// printing keywords checked first, even when both match
		{"Label and Print Co", "", "printing"},
		// case-insensitive
		{"CATAPULT GROUP", "", "printing"},
		{"ABBOTT corp", "", "labels"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.company, tc.context),
			"company=%q context=%q", tc.company, tc.context)
	}
}

func TestGenerate_PrintingTemplate(t *testing.T) {
	g, err := NewGenerator(testClock())
	require.NoError(t, err)

	doc, err := g.Generate(context.Background(), domain.GenerateRequest{
		TargetName:  "Lewis Cook",
		CompanyName: "Catapult Print",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "# PRIVATE EYE INTELLIGENCE ANALYSIS\n"))
	assert.Contains(t, doc, "**TARGET**: Lewis Cook")
	assert.Contains(t, doc, "**COMPANY**: Catapult Print")
	assert.Contains(t, doc, "**CLASSIFICATION**: CONFIDENTIAL")
	assert.Contains(t, doc, "**GENERATED**: 3/5/2026")
	assert.Contains(t, doc, "Mid-market printing company")
	assert.Contains(t, doc, "**INTELLIGENCE DISCLAIMER**")
	assert.Contains(t, doc, "**NEXT ACTIONS**")
}

func TestGenerate_ContactSubstitution(t *testing.T) {
	g, err := NewGenerator(testClock())
	require.NoError(t, err)

	doc, err := g.Generate(context.Background(), domain.GenerateRequest{
		TargetName:  "John Abbott",
		CompanyName: "Abbott Label",
	})
	require.NoError(t, err)

	assert.Contains(t, doc, "• **Primary Contact**: John Abbott")
	assert.Contains(t, doc, "Title: Executive Leadership")
	assert.NotContains(t, doc, "[Target Name]")
	assert.NotContains(t, doc, "[Current Title]")
}

func TestGenerate_NineHeadingsInOrder(t *testing.T) {
	g, err := NewGenerator(testClock())
	require.NoError(t, err)

	doc, err := g.Generate(context.Background(), domain.GenerateRequest{
		TargetName:  "Sarah Mitchell",
		CompanyName: "Acme Software",
	})
	require.NoError(t, err)

	prev := -1
	for i, title := range domain.SectionTitles {
		heading := fmt.Sprintf("## %d. **%s**", i+1, title)
		idx := strings.Index(doc, heading)
		require.GreaterOrEqual(t, idx, 0, "missing heading %q", heading)
		assert.Greater(t, idx, prev, "heading %q out of order", heading)
		prev = idx
	}
}

func TestGenerate_DefaultFallback(t *testing.T) {
	g, err := NewGenerator(testClock())
	require.NoError(t, err)

	doc, err := g.Generate(context.Background(), domain.GenerateRequest{
		TargetName:  "Sarah Mitchell",
		CompanyName: "Acme Software",
	})
	require.NoError(t, err)

	assert.Contains(t, doc, "Growing mid-market company")
	assert.NotContains(t, doc, "Mid-market printing company")
	assert.NotContains(t, doc, "Specialized label manufacturing company")
}

func TestGenerate_SectionsRoundTrip(t *testing.T) {
	g, err := NewGenerator(testClock())
	require.NoError(t, err)

	doc, err := g.Generate(context.Background(), domain.GenerateRequest{
		TargetName:        "Lewis Cook",
		CompanyName:       "Catapult Print",
		AdditionalContext: "met at trade show",
	})
	require.NoError(t, err)

	// rendered output must be parseable back into all nine sections
	sections := domain.ExtractSections(doc)
	require.Len(t, sections, len(domain.SectionTitles))
	for _, title := range domain.SectionTitles {
		body, ok := sections[domain.SlugForTitle(title)]
		assert.True(t, ok, "section %q missing", title)
		assert.NotEmpty(t, body, "section %q empty", title)
	}
	assert.Contains(t, sections["key_contact_points___profiles"], "Lewis Cook")
}
