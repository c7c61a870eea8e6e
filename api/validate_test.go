package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Jane Doe", sanitizeText("  Jane <b>Doe</b> "))
	assert.Equal(t, "", sanitizeText("<script>alert('x')</script>"))
	assert.Equal(t, "plain text", sanitizeText("plain text"))
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", sanitizeEmail("  JANE@Example.COM "))
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "+1 (555) 123-4567", sanitizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "5551234567", sanitizePhone("555.123.4567abc"))
	assert.Equal(t, "", sanitizePhone("<script>"))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe+tag@example.com", "x_y%z@sub.example.org"}
	for _, email := range valid {
		assert.True(t, validEmail(email), email)
	}

	invalid := []string{"", "plain", "@example.com", "a@b", "a b@example.com"}
	for _, email := range invalid {
		assert.False(t, validEmail(email), email)
	}
}

func TestFieldCollector(t *testing.T) {
	var c fieldCollector
	assert.NoError(t, c.err())

	c.requireLength("name", "ok", 1, 10)
	assert.NoError(t, c.err())

	c.requireLength("name", "", 1, 10)
	c.requireLength("bio", "this is far too long", 1, 5)
	err := c.err()
	assert.Error(t, err)
	assert.Len(t, c.fields, 2)
}

func TestRequireLengthCountsCharactersNotBytes(t *testing.T) {
	var c fieldCollector

	// 100 two-byte characters is exactly the upper bound
	c.requireLength("name", strings.Repeat("é", 100), 2, 100)
	assert.NoError(t, c.err())

	c.requireLength("name", strings.Repeat("é", 101), 2, 100)
	assert.Error(t, c.err())
}

func TestRequireLengthTrimsBeforeChecking(t *testing.T) {
	var c fieldCollector
	c.requireLength("name", "   ", 1, 10)
	assert.Error(t, c.err())
}
