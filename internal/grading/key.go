package grading

import (
	"fmt"
	"slices"

	"github.com/studydesk/studydesk/internal/corpus"
)

// Key holds the correct letters of every objective question, derived once
// when the corpus is loaded.
type Key struct {
	letters map[string][]string
}

// NewKey derives the answer key for qs.
func NewKey(qs []corpus.Question) *Key {
	k := &Key{letters: make(map[string][]string, len(qs))}
	for _, q := range qs {
		if !q.Type.Objective() {
			continue
		}
		k.letters[q.ID] = CorrectLetters(q)
	}
	return k
}

// Letters returns the correct letters for a question id. Unknown and
// subjective questions yield nil.
func (k *Key) Letters(questionID string) []string {
	return slices.Clone(k.letters[questionID])
}

// Grade judges submitted against the key entry for q.
func (k *Key) Grade(q corpus.Question, submitted []string) bool {
	return gradeLetters(q.Type, k.letters[q.ID], submitted)
}

// Issue is a data-quality problem found in an objective question.
type Issue struct {
	QuestionID string
	Problem    string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.QuestionID, i.Problem)
}

// Audit reports objective questions that cannot be graded as intended:
// questions without options, answers that resolve to no letter, letters
// pointing past the last option, and single-choice questions whose key holds
// more than one letter. Such questions still accept submissions but always
// grade as wrong.
func (k *Key) Audit(qs []corpus.Question) []Issue {
	var issues []Issue
	for _, q := range qs {
		if !q.Type.Objective() {
			continue
		}
		if len(q.Options) == 0 {
			issues = append(issues, Issue{QuestionID: q.ID, Problem: "objective question has no options"})
			continue
		}
		letters := k.letters[q.ID]
		if len(letters) == 0 {
			issues = append(issues, Issue{
				QuestionID: q.ID,
				Problem:    fmt.Sprintf("answer %q matches no option", q.Answer.String()),
			})
			continue
		}
		for _, l := range letters {
			if i, ok := Index(l); !ok || i >= len(q.Options) {
				issues = append(issues, Issue{
					QuestionID: q.ID,
					Problem:    fmt.Sprintf("answer letter %s is outside %d options", l, len(q.Options)),
				})
			}
		}
		if q.Type.SingleChoice() && len(letters) > 1 {
			issues = append(issues, Issue{
				QuestionID: q.ID,
				Problem:    fmt.Sprintf("%s question has %d correct letters", q.Type, len(letters)),
			})
		}
	}
	return issues
}
