package middleware

import (
	"regexp"
	"strings"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// Input validation and sanitization utilities.
// Empty-input rejection happens here, before generation is ever attempted.

const (
	maxNameLen    = 200
	maxContextLen = 2000
)

// ValidateTargetName checks the prospect name field
func ValidateTargetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ValidationError("target name is required")
	}
	if len(name) > maxNameLen {
		return domain.ValidationError("target name too long (max 200 chars)")
	}
	return nil
}

// ValidateCompanyName checks the company name field
func ValidateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ValidationError("company name is required")
	}
	if len(name) > maxNameLen {
		return domain.ValidationError("company name too long (max 200 chars)")
	}
	return nil
}

// ValidateContext checks the optional free-text context
func ValidateContext(ctx string) error {
	if len(ctx) > maxContextLen {
		return domain.ValidationError("additional context too long (max 2000 chars)")
	}
	return nil
}

// id bisa uuid (record baru) atau numeric legacy id dari data localStorage lama
var profileIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateProfileID validates record id format
func ValidateProfileID(id string) error {
	if id == "" {
		return domain.ValidationError("profile id cannot be empty")
	}
	if !profileIDPattern.MatchString(id) {
		return domain.ValidationError("invalid profile id format")
	}
	return nil
}

// ValidateStatus checks a status filter value
func ValidateStatus(status string) error {
	switch domain.Status(status) {
	case domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted, domain.StatusFailed:
		return nil
	}
	return domain.ValidationError("invalid status filter")
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates list limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidatePageSize validates pagination page size
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}
