package prospects

import (
	"regexp"
	"strings"
)

// SectionTitles is the fixed ordered list of headings the generator emits.
// The parser matches against the same list, so generator and parser must
// change in lockstep or extraction silently misses a section.
var SectionTitles = []string{
	"Executive Summary",
	"Professional Background & Career Trajectory",
	"Business Context & Recent Developments",
	"Digital Presence Analysis",
	"Behavioral & Decision-Making Profile",
	"Strategic Risk Flags",
	"Opportunity Assessment",
	"Key Contact Points & Profiles",
	"Recommended Approach",
}

var (
	slugRe    = regexp.MustCompile(`[^a-z0-9]`)
	headingRe = regexp.MustCompile(`##\s*\d+\.`)

	// satu pattern per judul, dicompile sekali
	titlePatterns = compileTitlePatterns()
)

func compileTitlePatterns() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(SectionTitles))
	for _, t := range SectionTitles {
		m[t] = regexp.MustCompile(`(?i)##\s*\d+\.\s*\*\*` + regexp.QuoteMeta(t) + `\*\*`)
	}
	return m
}

// SlugForTitle derives the stable mapping key for a section title:
// lowercase, everything outside [a-z0-9] becomes "_".
func SlugForTitle(title string) string {
	return slugRe.ReplaceAllString(strings.ToLower(title), "_")
}

// ExtractSections pulls each known section body out of a rendered document.
// The body runs from just after the heading up to the next numbered heading
// or end of document, trimmed of surrounding whitespace. Titles that do not
// appear are simply absent from the result; the function never fails.
//
// RE2 has no lookahead, so the end of a section is found with a second index
// search instead of a (?=...) pattern.
func ExtractSections(document string) map[string]string {
	sections := make(map[string]string)
	for _, title := range SectionTitles {
		loc := titlePatterns[title].FindStringIndex(document)
		if loc == nil {
			continue
		}
		rest := document[loc[1]:]
		end := len(rest)
		if next := headingRe.FindStringIndex(rest); next != nil {
			end = next[0]
		}
		sections[SlugForTitle(title)] = strings.TrimSpace(rest[:end])
	}
	return sections
}
