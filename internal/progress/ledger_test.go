package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydesk/studydesk/internal/corpus"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory BlobStore. When failSet is true every Set fails.
type memStore struct {
	blobs   map[string][]byte
	failSet bool
	failGet bool
	sets    int
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.failGet {
		return nil, false, errStoreDown
	}
	b, ok := m.blobs[key]
	return b, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, blob []byte) error {
	if m.failSet {
		return errStoreDown
	}
	m.sets++
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func openLedger(t *testing.T, st BlobStore) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), st, Options{Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	return l
}

func TestOpen_MissingKeyIsEmpty(t *testing.T) {
	l := openLedger(t, newMemStore())
	assert.Equal(t, 0, l.Len())
}

func TestOpen_CorruptSnapshotIsEmpty(t *testing.T) {
	for _, blob := range []string{"{not json", `{"other": 1}`, `[]`} {
		st := newMemStore()
		st.blobs[DefaultKey] = []byte(blob)

		l := openLedger(t, st)
		assert.Equal(t, 0, l.Len(), "blob %q", blob)
	}
}

func TestOpen_StoreFailure(t *testing.T) {
	st := newMemStore()
	st.failGet = true

	_, err := Open(context.Background(), st, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestUpsert_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	l := openLedger(t, st)

	rec, err := l.Upsert(ctx, "q1", Patch{
		UserLetters: Set([]string{"A", "C"}),
		Correct:     Set(Correct),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, rec.UserLetters)
	assert.Equal(t, Correct, rec.Correct)
	assert.True(t, rec.UpdatedAt.Equal(fixedNow))
	assert.Equal(t, 1, st.sets)

	_, err = l.Upsert(ctx, "q2", Patch{SubjectiveText: Set("草稿"), Revealed: Set(true)})
	require.NoError(t, err)

	restored := openLedger(t, st)
	assert.Equal(t, 2, restored.Len())

	got, ok := restored.Get("q1")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "C"}, got.UserLetters)
	assert.Equal(t, Correct, got.Correct)
	assert.True(t, got.UpdatedAt.Equal(fixedNow))

	got, ok = restored.Get("q2")
	require.True(t, ok)
	assert.Equal(t, "草稿", got.SubjectiveText)
	assert.True(t, got.Revealed)
	assert.Equal(t, []string{}, got.UserLetters)
	assert.Equal(t, Unknown, got.Correct)
}

func TestUpsert_MergesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, newMemStore())

	_, err := l.Upsert(ctx, "q1", Patch{SubjectiveText: Set("初稿")})
	require.NoError(t, err)
	rec, err := l.Upsert(ctx, "q1", Patch{Revealed: Set(true)})
	require.NoError(t, err)

	assert.Equal(t, "初稿", rec.SubjectiveText)
	assert.True(t, rec.Revealed)
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	l := openLedger(t, st)
	patch := Patch{UserLetters: Set([]string{"B"}), Correct: Set(Wrong)}

	first, err := l.Upsert(ctx, "q1", patch)
	require.NoError(t, err)
	blob := string(st.blobs[DefaultKey])

	second, err := l.Upsert(ctx, "q1", patch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, blob, string(st.blobs[DefaultKey]))
	assert.Equal(t, 1, l.Len())
}

func TestUpsert_RollsBackOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	l := openLedger(t, st)

	_, err := l.Upsert(ctx, "q1", Patch{UserLetters: Set([]string{"A"}), Correct: Set(Correct)})
	require.NoError(t, err)

	st.failSet = true
	_, err = l.Upsert(ctx, "q1", Patch{UserLetters: Set([]string{"B"}), Correct: Set(Wrong)})
	assert.ErrorIs(t, err, errStoreDown)
	_, err = l.Upsert(ctx, "q2", Patch{Revealed: Set(true)})
	assert.ErrorIs(t, err, errStoreDown)

	rec, ok := l.Get("q1")
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, rec.UserLetters)
	assert.Equal(t, Correct, rec.Correct)

	_, ok = l.Get("q2")
	assert.False(t, ok)
}

func TestGet_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, newMemStore())
	_, err := l.Upsert(ctx, "q1", Patch{UserLetters: Set([]string{"A"})})
	require.NoError(t, err)

	rec, _ := l.Get("q1")
	rec.UserLetters[0] = "Z"

	again, _ := l.Get("q1")
	assert.Equal(t, []string{"A"}, again.UserLetters)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	l := openLedger(t, st)
	_, err := l.Upsert(ctx, "q1", Patch{UserLetters: Set([]string{"A"}), Correct: Set(Wrong)})
	require.NoError(t, err)

	st.failSet = true
	require.Error(t, l.Reset(ctx))
	assert.Equal(t, 1, l.Len())

	st.failSet = false
	require.NoError(t, l.Reset(ctx))
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.IsWrong("q1"))

	restored := openLedger(t, st)
	assert.Equal(t, 0, restored.Len())
}

func TestIsWrong(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, newMemStore())
	_, err := l.Upsert(ctx, "right", Patch{UserLetters: Set([]string{"A"}), Correct: Set(Correct)})
	require.NoError(t, err)
	_, err = l.Upsert(ctx, "wrong", Patch{UserLetters: Set([]string{"B"}), Correct: Set(Wrong)})
	require.NoError(t, err)

	assert.False(t, l.IsWrong("right"))
	assert.True(t, l.IsWrong("wrong"))
	assert.False(t, l.IsWrong("untouched"))
}

func TestVerdictJSON(t *testing.T) {
	tests := []struct {
		v    Verdict
		json string
	}{
		{Unknown, "null"},
		{Correct, "true"},
		{Wrong, "false"},
	}
	for _, tc := range tests {
		b, err := tc.v.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tc.json, string(b))

		var got Verdict
		require.NoError(t, got.UnmarshalJSON([]byte(tc.json)))
		assert.Equal(t, tc.v, got)
	}

	var v Verdict
	assert.Error(t, v.UnmarshalJSON([]byte(`"yes"`)))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     string
	}{
		{0, 0, "0%"},
		{5, 0, "0%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{1, 2, "50%"},
		{4, 4, "100%"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Percent(tc.num, tc.den), "Percent(%d, %d)", tc.num, tc.den)
	}
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	c, err := corpus.New(nil, []corpus.Question{
		{ID: "s1", Type: corpus.TypeSingle, Options: []string{"甲", "乙"}, Answer: corpus.TextAnswer("A")},
		{ID: "s2", Type: corpus.TypeSingle, Options: []string{"甲", "乙"}, Answer: corpus.TextAnswer("B")},
		{ID: "m1", Type: corpus.TypeMultiple, Options: []string{"甲", "乙"}, Answer: corpus.TextAnswer("AB")},
		{ID: "t1", Type: corpus.TypeTrueFalse, Options: []string{"对", "错"}, Answer: corpus.TextAnswer("对")},
		{ID: "x1", Type: corpus.TypeShort, Answer: corpus.TextAnswer("要点")},
		{ID: "x2", Type: corpus.TypeFlash, Answer: corpus.TextAnswer("卡片")},
	}, nil)
	require.NoError(t, err)

	l := openLedger(t, newMemStore())
	upsert := func(id string, p Patch) {
		_, err := l.Upsert(ctx, id, p)
		require.NoError(t, err)
	}
	upsert("s1", Patch{UserLetters: Set([]string{"A"}), Correct: Set(Correct)})
	upsert("s2", Patch{UserLetters: Set([]string{"A"}), Correct: Set(Wrong)})
	upsert("m1", Patch{UserLetters: Set([]string{}), Correct: Set(Unknown)})
	upsert("x1", Patch{Revealed: Set(true)})
	upsert("x2", Patch{Revealed: Set(false)})

	b := l.Summarize(c)
	assert.Equal(t, Tally{Total: 4, Answered: 2, Correct: 1}, b.Objective)
	assert.Equal(t, "50%", b.Objective.Rate())
	assert.Equal(t, "2/4", b.Objective.Completion())
	assert.Equal(t, 1, b.Revealed)

	require.Len(t, b.ByType, 3)
	assert.Equal(t, corpus.TypeSingle, b.ByType[0].Type)
	assert.Equal(t, Tally{Total: 2, Answered: 2, Correct: 1}, b.ByType[0].Tally)
	assert.Equal(t, corpus.TypeMultiple, b.ByType[1].Type)
	assert.Equal(t, Tally{Total: 1}, b.ByType[1].Tally)
	assert.Equal(t, corpus.TypeTrueFalse, b.ByType[2].Type)

	require.Len(t, b.Wrong, 1)
	assert.Equal(t, "s2", b.Wrong[0].ID)

	assert.Equal(t, 2, l.Answered())
	assert.Equal(t, 1, l.CorrectCount())
}

func TestOpen_AcceptsMillisecondTimestamps(t *testing.T) {
	st := newMemStore()
	st.blobs[DefaultKey] = []byte(`{"records":{
		"q1":{"userLetters":["B"],"correct":false,"subjectiveText":"","revealed":false,"updatedAt":1772357400000},
		"q2":{"userLetters":[],"correct":null,"subjectiveText":"草稿","revealed":true,"updatedAt":"2026-03-01T09:30:00Z"},
		"q3":{"userLetters":["A"],"correct":true}
	}}`)

	l := openLedger(t, st)
	require.Equal(t, 3, l.Len())

	q1, ok := l.Get("q1")
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, q1.UserLetters)
	assert.Equal(t, Wrong, q1.Correct)
	assert.True(t, q1.UpdatedAt.Equal(time.UnixMilli(1772357400000)), "got %v", q1.UpdatedAt)
	assert.True(t, l.IsWrong("q1"))

	q2, _ := l.Get("q2")
	assert.True(t, q2.UpdatedAt.Equal(fixedNow))
	assert.Equal(t, "草稿", q2.SubjectiveText)
	assert.True(t, q2.Revealed)

	q3, _ := l.Get("q3")
	assert.True(t, q3.UpdatedAt.IsZero())
	assert.Equal(t, Correct, q3.Correct)
}

func TestOpen_BadTimestampIsCorrupt(t *testing.T) {
	st := newMemStore()
	st.blobs[DefaultKey] = []byte(`{"records":{"q1":{"userLetters":["A"],"updatedAt":true}}}`)

	l := openLedger(t, st)
	assert.Equal(t, 0, l.Len())
}
