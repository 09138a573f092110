// Package search implements the token-based relevance engine used to filter
// and rank knowledge items, questions and documents.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Normalize trims s and folds it to a canonical case and width, so that
// "ＳＭＳ", "sms" and "SMS" compare equal.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Width folding first: full-width letters must become ASCII before
	// case folding sees them.
	s = width.Fold.String(s)
	return strings.TrimSpace(cases.Fold().String(s))
}

// Tokenize splits raw on whitespace runs and returns the normalized,
// de-duplicated tokens in first-seen order. Blank input yields nil.
func Tokenize(raw string) []string {
	fields := strings.Fields(Normalize(raw))
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
