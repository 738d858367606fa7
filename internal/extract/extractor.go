package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ExtractionError indicates the uploaded document could not be turned
// into analyzable text.
type ExtractionError struct {
	Filename string
	Reason   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %s", e.Filename, e.Reason)
}

// TextExtractor turns an uploaded document into plain text.
// OCR and PDF parsing are out of scope; implementations handle the
// formats they declare and reject everything else.
type TextExtractor interface {
	Extract(filename, contentType string, data []byte) (string, error)
	Supports(contentType string) bool
}

var (
	controlChars    = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	collapsedSpaces = regexp.MustCompile(`[ \t]+`)
	collapsedLines  = regexp.MustCompile(`\n{3,}`)
)

// Sanitize normalizes extracted text: strips control characters,
// collapses runs of whitespace, trims the result.
func Sanitize(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = collapsedSpaces.ReplaceAllString(text, " ")
	text = collapsedLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// PlainTextExtractor handles text/plain and text/markdown uploads
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a plain-text extractor
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Supports reports whether the content type is a plain-text variant
func (e *PlainTextExtractor) Supports(contentType string) bool {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mime {
	case "text/plain", "text/markdown", "text/csv":
		return true
	}
	return false
}

// Extract returns the sanitized document text
func (e *PlainTextExtractor) Extract(filename, contentType string, data []byte) (string, error) {
	if !e.Supports(contentType) {
		return "", &ExtractionError{Filename: filename, Reason: fmt.Sprintf("unsupported content type %q", contentType)}
	}

	if !utf8.Valid(data) {
		return "", &ExtractionError{Filename: filename, Reason: "document is not valid UTF-8 text"}
	}

	text := Sanitize(string(data))
	if text == "" {
		return "", &ExtractionError{Filename: filename, Reason: "document contains no text"}
	}

	return text, nil
}
