package progress

import (
	"fmt"
	"math"

	"github.com/studydesk/studydesk/internal/corpus"
)

// Percent formats num/den as a whole percentage, e.g. "33%". A zero
// denominator yields "0%".
func Percent(num, den int) string {
	if den == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(num)*100/float64(den))))
}

// Answered counts records holding a selection.
func (l *Ledger) Answered() int {
	n := 0
	for _, r := range l.records {
		if r.Answered() {
			n++
		}
	}
	return n
}

// CorrectCount counts answered records graded correct.
func (l *Ledger) CorrectCount() int {
	n := 0
	for _, r := range l.records {
		if r.Answered() && r.Correct == Correct {
			n++
		}
	}
	return n
}

// Tally counts answers over a group of questions.
type Tally struct {
	Total    int
	Answered int
	Correct  int
}

// Rate is the share of answered questions graded correct.
func (t Tally) Rate() string { return Percent(t.Correct, t.Answered) }

// Completion is the answered/total fraction, e.g. "3/10".
func (t Tally) Completion() string { return fmt.Sprintf("%d/%d", t.Answered, t.Total) }

// TypeTally is the Tally of one question type.
type TypeTally struct {
	Type corpus.QuestionType
	Tally
}

// Board summarizes progress over a corpus.
type Board struct {
	Objective Tally
	ByType    []TypeTally // objective types, in order of first appearance
	Revealed  int         // subjective questions whose reference was shown
	Wrong     []corpus.Question
}

// Summarize computes the progress board for c from the ledger.
func (l *Ledger) Summarize(c *corpus.Corpus) Board {
	var b Board
	typeIdx := make(map[corpus.QuestionType]int)

	for _, q := range c.Questions {
		r, touched := l.records[q.ID]
		if !q.Type.Objective() {
			if touched && r.Revealed {
				b.Revealed++
			}
			continue
		}

		i, ok := typeIdx[q.Type]
		if !ok {
			i = len(b.ByType)
			typeIdx[q.Type] = i
			b.ByType = append(b.ByType, TypeTally{Type: q.Type})
		}
		tt := &b.ByType[i]
		b.Objective.Total++
		tt.Total++

		if touched && r.Answered() {
			b.Objective.Answered++
			tt.Answered++
			if r.Correct == Correct {
				b.Objective.Correct++
				tt.Correct++
			}
		}
		if touched && r.Correct == Wrong {
			b.Wrong = append(b.Wrong, q)
		}
	}
	return b
}
