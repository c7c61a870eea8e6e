package api

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/folio-labs/portfolio-backend/errs"
)

const maxBodySize = 1 << 20 // 1MB

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// strictPolicy strips every HTML element and attribute, neutralizing
// markup and script content before it is persisted.
var strictPolicy = bluemonday.StrictPolicy()

// decodeJSONBody parses the request body into v, enforcing a size cap and
// rejecting trailing garbage.
func decodeJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()

	body := http.MaxBytesReader(nil, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return errs.NewMalformedPayloadError("JSON", err)
	}
	if dec.More() {
		return errs.NewMalformedPayloadError("JSON", io.ErrUnexpectedEOF)
	}
	return nil
}

// sanitizeText strips markup/script content and surrounding whitespace.
func sanitizeText(text string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(text))
}

// sanitizeEmail lowercases and trims an address.
func sanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var phoneStrip = regexp.MustCompile(`[^\d+\-() ]`)

// sanitizePhone keeps only digits and common separators.
func sanitizePhone(phone string) string {
	return strings.TrimSpace(phoneStrip.ReplaceAllString(phone, ""))
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// fieldCollector accumulates failing fields so a single 422 can enumerate
// all of them.
type fieldCollector struct {
	fields []errs.FieldError
}

func (c *fieldCollector) add(field, reason string) {
	c.fields = append(c.fields, errs.FieldError{Field: field, Reason: reason})
}

// requireLength checks a trimmed string against inclusive bounds. Bounds
// count characters, not bytes, so multi-byte input is not penalized.
func (c *fieldCollector) requireLength(field, value string, min, max int) {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case length < min:
		c.add(field, "must be at least "+strconv.Itoa(min)+" characters")
	case length > max:
		c.add(field, "must not exceed "+strconv.Itoa(max)+" characters")
	}
}

func (c *fieldCollector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return errs.NewValidationError(c.fields...)
}
