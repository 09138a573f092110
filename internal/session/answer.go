package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/grading"
	"github.com/studydesk/studydesk/internal/progress"
)

var (
	// ErrEmptySelection is returned when an answer is submitted with no
	// option selected. The ledger is not touched.
	ErrEmptySelection = errors.New("no option selected")

	// ErrInvalidSelection is returned when a letter names no option.
	ErrInvalidSelection = errors.New("invalid option")

	// ErrUnknownQuestion is returned for ids not in the corpus.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrNotObjective is returned when letters are submitted for a
	// subjective question.
	ErrNotObjective = errors.New("question is not objectively gradable")

	// ErrNotSubjective is returned when a draft or reference action targets
	// an objective question.
	ErrNotSubjective = errors.New("question is not subjective")
)

// Result is the outcome of a submitted answer.
type Result struct {
	Question       corpus.Question
	Record         progress.Record
	Correct        bool
	CorrectLetters []string
}

func (s *Session) question(id string) (corpus.Question, error) {
	q, ok := s.Corpus.Question(id)
	if !ok {
		return corpus.Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	return q, nil
}

// Submit grades letters for an objective question and records the outcome.
// Letters are case-insensitive; repeats are ignored. An empty selection is
// rejected before the ledger is touched.
func (s *Session) Submit(ctx context.Context, questionID string, letters []string) (Result, error) {
	q, err := s.question(questionID)
	if err != nil {
		return Result{}, err
	}
	if !q.Type.Objective() {
		return Result{}, fmt.Errorf("%w: %s is %s", ErrNotObjective, q.ID, q.Type)
	}

	selected, rejected := grading.NormalizeSelection(q, letters)
	if len(rejected) > 0 {
		return Result{}, fmt.Errorf("%w: %s (question %s has options %s)",
			ErrInvalidSelection, strings.Join(rejected, ","), q.ID,
			strings.Join(grading.Labels(len(q.Options)), ""))
	}
	if len(selected) == 0 {
		return Result{}, ErrEmptySelection
	}

	correct := s.Key.Grade(q, selected)
	rec, err := s.Ledger.Upsert(ctx, q.ID, progress.Patch{
		UserLetters: progress.Set(selected),
		Correct:     progress.Set(progress.VerdictOf(correct)),
	})
	if err != nil {
		return Result{}, fmt.Errorf("record answer: %w", err)
	}

	s.logger.Debug("answer recorded", "question", q.ID, "letters", selected, "correct", correct)
	return Result{
		Question:       q,
		Record:         rec,
		Correct:        correct,
		CorrectLetters: s.Key.Letters(q.ID),
	}, nil
}

// Clear resets a question's selection so it can be retried. Questions never
// answered are left untouched; cleared reports whether a record existed.
func (s *Session) Clear(ctx context.Context, questionID string) (cleared bool, err error) {
	q, err := s.question(questionID)
	if err != nil {
		return false, err
	}
	if _, ok := s.Ledger.Get(q.ID); !ok {
		return false, nil
	}
	_, err = s.Ledger.Upsert(ctx, q.ID, progress.Patch{
		UserLetters: progress.Set([]string{}),
		Correct:     progress.Set(progress.Unknown),
	})
	if err != nil {
		return false, fmt.Errorf("clear answer: %w", err)
	}
	return true, nil
}

// ToggleReference shows or hides the reference answer of a subjective
// question, keeping any draft.
func (s *Session) ToggleReference(ctx context.Context, questionID string) (progress.Record, error) {
	q, err := s.subjective(questionID)
	if err != nil {
		return progress.Record{}, err
	}
	prev, _ := s.Ledger.Get(q.ID)
	rec, err := s.Ledger.Upsert(ctx, q.ID, progress.Patch{
		SubjectiveText: progress.Set(prev.SubjectiveText),
		Revealed:       progress.Set(!prev.Revealed),
	})
	if err != nil {
		return progress.Record{}, fmt.Errorf("toggle reference: %w", err)
	}
	return rec, nil
}

// SaveDraft stores the learner's free-text answer to a subjective question.
func (s *Session) SaveDraft(ctx context.Context, questionID, text string) (progress.Record, error) {
	q, err := s.subjective(questionID)
	if err != nil {
		return progress.Record{}, err
	}
	rec, err := s.Ledger.Upsert(ctx, q.ID, progress.Patch{
		SubjectiveText: progress.Set(text),
	})
	if err != nil {
		return progress.Record{}, fmt.Errorf("save draft: %w", err)
	}
	return rec, nil
}

func (s *Session) subjective(questionID string) (corpus.Question, error) {
	q, err := s.question(questionID)
	if err != nil {
		return corpus.Question{}, err
	}
	if q.Type.Objective() {
		return corpus.Question{}, fmt.Errorf("%w: %s is %s", ErrNotSubjective, q.ID, q.Type)
	}
	return q, nil
}
