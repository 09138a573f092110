package grading

import (
	"fmt"
	"strings"

	"github.com/studydesk/studydesk/internal/corpus"
)

const (
	noAnswerText  = "未作答"
	noReference   = "（暂无参考答案）"
	answerJoinSep = "；"
)

// AnswerText renders letters with their option text, e.g. "A. 甲；C. 丙".
func AnswerText(q corpus.Question, letters []string) string {
	if len(letters) == 0 {
		return noAnswerText
	}
	parts := make([]string, 0, len(letters))
	for _, l := range letters {
		text := ""
		if i, ok := Index(l); ok && i < len(q.Options) {
			text = q.Options[i]
		}
		parts = append(parts, fmt.Sprintf("%s. %s", l, text))
	}
	return strings.Join(parts, answerJoinSep)
}

// Reference returns the reference answer of a subjective question: the
// stored answer, else the explanation, else a placeholder.
func Reference(q corpus.Question) string {
	if s := strings.TrimSpace(q.Answer.String()); s != "" {
		return s
	}
	if s := strings.TrimSpace(q.Explanation); s != "" {
		return s
	}
	return noReference
}
