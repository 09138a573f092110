// Package session ties the corpus, answer key and progress ledger together
// into the explicit context every study operation runs against.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/grading"
	"github.com/studydesk/studydesk/internal/progress"
)

// Options configures a Session.
type Options struct {
	Logger    *slog.Logger
	LedgerKey string           // defaults to progress.DefaultKey
	Now       func() time.Time // defaults to time.Now
}

// Session is one learner's study context. It is not safe for concurrent
// use; the ledger has a single writer.
type Session struct {
	ID     string
	Corpus *corpus.Corpus
	Key    *grading.Key
	Ledger *progress.Ledger

	issues []grading.Issue
	logger *slog.Logger
}

// New derives the answer key for c, audits it, and restores the ledger
// persisted in st.
func New(ctx context.Context, c *corpus.Corpus, st progress.BlobStore, opts Options) (*Session, error) {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("session", id)

	objective := c.ObjectiveQuestions()
	key := grading.NewKey(objective)
	issues := key.Audit(objective)
	for _, is := range issues {
		logger.Warn("ungradable question", "question", is.QuestionID, "problem", is.Problem)
	}

	ledger, err := progress.Open(ctx, st, progress.Options{
		Key:    opts.LedgerKey,
		Now:    opts.Now,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	logger.Debug("session started",
		"knowledge", len(c.Knowledge),
		"questions", len(c.Questions),
		"records", ledger.Len(),
	)
	return &Session{
		ID:     id,
		Corpus: c,
		Key:    key,
		Ledger: ledger,
		issues: issues,
		logger: logger,
	}, nil
}

// Issues returns the data-quality problems found when the key was derived.
func (s *Session) Issues() []grading.Issue {
	out := make([]grading.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// Record returns the learner's record for a question.
func (s *Session) Record(questionID string) (progress.Record, bool) {
	return s.Ledger.Get(questionID)
}

// Board summarizes the learner's progress over the corpus.
func (s *Session) Board() progress.Board {
	return s.Ledger.Summarize(s.Corpus)
}

// Reset wipes all progress.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.Ledger.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
