// Package textnorm provides the text-cleaning transform applied to news
// articles before vectorization. The same transform was applied when the
// model artifacts were trained, so inference input must pass through it
// unchanged.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	nonLetter = regexp.MustCompile(`[^a-zA-Z\s]`)
	spaceRun  = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases the input, replaces every character that is not
// an ASCII letter or whitespace with a space, collapses whitespace runs
// into single spaces and trims the ends. Idempotent.
func Normalize(raw string) string {
	cleaned := strings.ToLower(raw)
	cleaned = nonLetter.ReplaceAllString(cleaned, " ")
	cleaned = spaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Join combines the form fields with single-space separators, the same
// way the training pipeline combined them. Missing fields are empty
// strings, never skipped.
func Join(title, source, body string) string {
	return title + " " + source + " " + body
}
