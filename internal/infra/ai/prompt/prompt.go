package prompt

import (
	"fmt"
	"strings"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// GetSystemPrompt pins the model to the exact document shape the section
// parser expects: fixed header, the nine numbered bold headings in order,
// fixed disclaimer footer. Any deviation and extraction silently misses
// sections, so the format rules are spelled out strictly.
func GetSystemPrompt() string {
	var headings strings.Builder
	for i, title := range domain.SectionTitles {
		fmt.Fprintf(&headings, "## %d. **%s**\n", i+1, title)
	}

	return `You are a sales-intelligence analyst producing a speculative prospect research brief from general industry knowledge. You must output one markdown document only (no code fences, no commentary outside the document).

Format requirements:
- Start with this exact header block, filling in TARGET, COMPANY and GENERATED:
# PRIVATE EYE INTELLIGENCE ANALYSIS
**TARGET**: <target name>
**COMPANY**: <company name>
**CLASSIFICATION**: CONFIDENTIAL
**GENERATED**: <date>

---
- Then emit exactly these nine section headings, in this order, each followed by 2-6 sentences (or a bullet list where natural):
` + headings.String() + `- Close with a horizontal rule and an **INTELLIGENCE DISCLAIMER** paragraph plus a **NEXT ACTIONS** bullet list.
- Every claim must be framed as an estimate or pattern, never as verified fact.`
}

// GetUserPrompt builds the per-request message.
func GetUserPrompt(req domain.GenerateRequest) string {
	msg := fmt.Sprintf("Produce the intelligence brief. TARGET: %s. COMPANY: %s.", req.TargetName, req.CompanyName)
	if req.AdditionalContext != "" {
		msg += " Additional context: " + req.AdditionalContext
	}
	return msg
}
