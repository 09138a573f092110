// Package progress keeps the learner's per-question answer records and
// persists them as a single snapshot after every change.
package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DefaultKey is the store key the ledger snapshot is written under.
const DefaultKey = "sms-learning-progress-v1"

// BlobStore is the key-value store the ledger persists into.
type BlobStore interface {
	// Get returns the blob stored under key; ok is false if there is none.
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)

	// Set stores blob under key, replacing any previous value.
	Set(ctx context.Context, key string, blob []byte) error
}

// Options configures a Ledger.
type Options struct {
	Key    string           // defaults to DefaultKey
	Now    func() time.Time // defaults to time.Now
	Logger *slog.Logger     // defaults to a discarding logger
}

// Ledger maps question ids to answer records. It has a single writer and
// writes through: every mutation is persisted before it returns.
type Ledger struct {
	store   BlobStore
	key     string
	now     func() time.Time
	logger  *slog.Logger
	records map[string]Record
}

// Open restores the ledger stored in st. A missing snapshot yields an empty
// ledger. A snapshot that cannot be decoded is logged and discarded; only a
// failure of the store itself is returned.
func Open(ctx context.Context, st BlobStore, opts Options) (*Ledger, error) {
	l := &Ledger{
		store:   st,
		key:     opts.Key,
		now:     opts.Now,
		logger:  opts.Logger,
		records: make(map[string]Record),
	}
	if l.key == "" {
		l.key = DefaultKey
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	blob, ok, err := st.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read ledger snapshot: %w", err)
	}
	if !ok {
		return l, nil
	}
	records, err := decodeSnapshot(blob)
	if err != nil {
		l.logger.Warn("discarding unreadable progress snapshot",
			"key", l.key, "bytes", len(blob), "error", err)
		return l, nil
	}
	l.records = records
	l.logger.Debug("progress restored", "key", l.key, "records", len(records))
	return l, nil
}

// Get returns the record for questionID, if the learner has touched it.
func (l *Ledger) Get(questionID string) (Record, bool) {
	r, ok := l.records[questionID]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// IsWrong reports whether questionID has a record graded as wrong.
func (l *Ledger) IsWrong(questionID string) bool {
	r, ok := l.records[questionID]
	return ok && r.Correct == Wrong
}

// Upsert merges patch into the record for questionID, creating it when
// absent, stamps UpdatedAt and persists the whole ledger. If persisting
// fails the ledger is left unchanged and the error is returned.
func (l *Ledger) Upsert(ctx context.Context, questionID string, patch Patch) (Record, error) {
	prev, existed := l.records[questionID]
	next := patch.apply(prev)
	next.UpdatedAt = l.now()

	l.records[questionID] = next
	if err := l.persist(ctx); err != nil {
		if existed {
			l.records[questionID] = prev
		} else {
			delete(l.records, questionID)
		}
		return Record{}, err
	}
	return next.clone(), nil
}

// Reset drops every record and persists the empty ledger.
func (l *Ledger) Reset(ctx context.Context) error {
	prev := l.records
	l.records = make(map[string]Record)
	if err := l.persist(ctx); err != nil {
		l.records = prev
		return err
	}
	l.logger.Info("progress reset", "key", l.key, "dropped", len(prev))
	return nil
}

func (l *Ledger) persist(ctx context.Context) error {
	blob, err := encodeSnapshot(l.records)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, l.key, blob); err != nil {
		return fmt.Errorf("write ledger snapshot: %w", err)
	}
	return nil
}
