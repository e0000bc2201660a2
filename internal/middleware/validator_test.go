package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

func TestValidateTargetName(t *testing.T) {
	assert.NoError(t, ValidateTargetName("Lewis Cook"))
	assert.Error(t, ValidateTargetName(""))
	assert.Error(t, ValidateTargetName("   "))
	assert.Error(t, ValidateTargetName(strings.Repeat("x", 201)))

	err := ValidateTargetName("")
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateCompanyName(t *testing.T) {
	assert.NoError(t, ValidateCompanyName("Catapult Print"))
	assert.Error(t, ValidateCompanyName(""))
	assert.Error(t, ValidateCompanyName(strings.Repeat("x", 201)))
}

func TestValidateContext(t *testing.T) {
	assert.NoError(t, ValidateContext(""))
	assert.NoError(t, ValidateContext("met at trade show"))
	assert.Error(t, ValidateContext(strings.Repeat("x", 2001)))
}

func TestValidateProfileID(t *testing.T) {
	assert.NoError(t, ValidateProfileID("3f6c0b1e-8b2a-4e2f-9a7d-1c2d3e4f5a6b"))
	assert.NoError(t, ValidateProfileID("1")) // legacy numeric id
	assert.Error(t, ValidateProfileID(""))
	assert.Error(t, ValidateProfileID("has spaces"))
	assert.Error(t, ValidateProfileID("../etc/passwd"))
	assert.Error(t, ValidateProfileID(strings.Repeat("a", 65)))
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"Pending", "In Progress", "Completed", "Failed"} {
		assert.NoError(t, ValidateStatus(s))
	}
	assert.Error(t, ValidateStatus("in progress"))
	assert.Error(t, ValidateStatus("InProgress"))
	assert.Error(t, ValidateStatus("Bogus"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("hello\x00"))
	assert.Equal(t, "a b", SanitizeString("  a b  "))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
	assert.Equal(t, "ab", SanitizeString("a\x01\x02b"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 50, ValidateLimit(50))
	assert.Equal(t, 100, ValidateLimit(500))
}

func TestValidatePageSize(t *testing.T) {
	assert.Equal(t, 20, ValidatePageSize(0))
	assert.Equal(t, 100, ValidatePageSize(1000))
	assert.Equal(t, 10, ValidatePageSize(10))
}
