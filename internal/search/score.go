package search

import "strings"

// Scoring weights for a single token hit inside one field.
const (
	hitWeight       = 8
	repeatWeight    = 2
	maxRepeats      = 4
	exactMatchBonus = 24
	prefixBonus     = 8
)

// Score rates how well field matches tokens. Tokens must already be
// normalized (see Tokenize). No tokens or a blank field score 0.
func Score(field string, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	norm := Normalize(field)
	if norm == "" {
		return 0
	}

	total := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		n := strings.Count(norm, tok)
		if n == 0 {
			continue
		}
		total += hitWeight + repeatWeight*min(n-1, maxRepeats)
		switch {
		case norm == tok:
			total += exactMatchBonus
		case strings.HasPrefix(norm, tok):
			total += prefixBonus
		}
	}
	return total
}
