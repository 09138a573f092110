// Package grading resolves the correct option letters of objective questions
// and judges submitted answers against them.
package grading

import (
	"slices"
	"strings"

	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/search"
)

// CorrectLetters derives the canonical correct letters of q.
//
// For single and multiple choice the stored answer is first read as letters
// ("B", "A C", ["A","C"]). If it holds none, it is matched as literal option
// text, ignoring case and width. True/false answers are used directly when
// they are a single letter and matched as option text otherwise. Subjective
// questions, questions without options and answers that match nothing yield
// nil.
func CorrectLetters(q corpus.Question) []string {
	if len(q.Options) == 0 {
		return nil
	}
	switch q.Type {
	case corpus.TypeSingle, corpus.TypeMultiple:
		if direct := parseLetters(q.Answer); len(direct) > 0 {
			return direct
		}
		return matchOption(q)
	case corpus.TypeTrueFalse:
		ans := strings.TrimSpace(q.Answer.String())
		if len(ans) == 1 && isASCIILetter(ans[0]) {
			return []string{strings.ToUpper(ans)}
		}
		return matchOption(q)
	default:
		return nil
	}
}

// Grade reports whether submitted matches the correct letters of q. Order is
// irrelevant; membership and count must match exactly. Single-choice types
// also require exactly one letter on both sides.
func Grade(q corpus.Question, submitted []string) bool {
	return gradeLetters(q.Type, CorrectLetters(q), submitted)
}

func gradeLetters(t corpus.QuestionType, correct, submitted []string) bool {
	if !t.Objective() {
		return false
	}
	want := slices.Sorted(slices.Values(correct))
	got := slices.Sorted(slices.Values(submitted))
	if t.SingleChoice() && (len(want) != 1 || len(got) != 1) {
		return false
	}
	return len(want) > 0 && slices.Equal(want, got)
}

// parseLetters extracts upper-case letters from an answer, dropping every
// other character and repeated letters.
func parseLetters(a corpus.Answer) []string {
	raw := a.Text
	if a.Kind == corpus.AnswerList {
		raw = strings.Join(a.List, "")
	}
	raw = strings.ToUpper(search.Normalize(raw))

	var out []string
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch < 'A' || ch > 'Z' {
			continue
		}
		l := string(ch)
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// matchOption returns the letter of the first option whose text equals the
// stored answer.
func matchOption(q corpus.Question) []string {
	ans := search.Normalize(q.Answer.String())
	for i, opt := range q.Options {
		if search.Normalize(opt) != ans {
			continue
		}
		if l, ok := Label(i); ok {
			return []string{l}
		}
	}
	return nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// NormalizeSelection upper-cases and trims letters, drops blanks and
// repeats, and keeps only labels of existing options. The second result
// lists the entries that were rejected.
func NormalizeSelection(q corpus.Question, letters []string) (valid, rejected []string) {
	for _, raw := range letters {
		l := strings.ToUpper(search.Normalize(raw))
		if l == "" {
			continue
		}
		i, ok := Index(l)
		if !ok || i >= len(q.Options) {
			rejected = append(rejected, raw)
			continue
		}
		if !slices.Contains(valid, l) {
			valid = append(valid, l)
		}
	}
	return valid, rejected
}
