package search

import (
	"sort"
	"strings"

	"github.com/studydesk/studydesk/internal/corpus"
)

// All is the filter sentinel meaning "do not filter on this attribute".
// An empty filter value means the same.
const All = "ALL"

func isAll(v string) bool { return v == "" || v == All }

// Field is one weighted text field of a T.
type Field[T any] struct {
	Name   string
	Weight int
	Text   func(T) string
}

// Hit is a ranked result. Index is the item's position in the input slice.
// Score is 0 when no query was active.
type Hit[T any] struct {
	Item  T
	Index int
	Score int
}

// Rank keeps the items accepted by keep and ranks them against query.
//
// With no query tokens the kept items are returned in input order. Otherwise
// every item is scored as the weighted sum of Score over fields, items
// scoring 0 are dropped, and the rest are sorted by descending score with
// ties in input order.
func Rank[T any](items []T, keep func(T) bool, query string, fields []Field[T]) []Hit[T] {
	tokens := Tokenize(query)

	hits := make([]Hit[T], 0, len(items))
	for i, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		if len(tokens) == 0 {
			hits = append(hits, Hit[T]{Item: item, Index: i})
			continue
		}
		total := 0
		for _, f := range fields {
			total += Score(f.Text(item), tokens) * f.Weight
		}
		if total == 0 {
			continue
		}
		hits = append(hits, Hit[T]{Item: item, Index: i, Score: total})
	}

	if len(tokens) > 0 {
		sort.SliceStable(hits, func(a, b int) bool {
			if hits[a].Score != hits[b].Score {
				return hits[a].Score > hits[b].Score
			}
			return hits[a].Index < hits[b].Index
		})
	}
	return hits
}

// Items strips the ranking metadata from hits.
func Items[T any](hits []Hit[T]) []T {
	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.Item
	}
	return out
}

// KnowledgeFields weights title hits far above body hits.
var KnowledgeFields = []Field[corpus.KnowledgeItem]{
	{Name: "title", Weight: 7, Text: func(k corpus.KnowledgeItem) string { return k.Title }},
	{Name: "chapter", Weight: 3, Text: func(k corpus.KnowledgeItem) string { return k.Chapter }},
	{Name: "tags", Weight: 4, Text: func(k corpus.KnowledgeItem) string { return strings.Join(k.Tags, " ") }},
	{Name: "content", Weight: 1, Text: func(k corpus.KnowledgeItem) string { return k.Content }},
}

// QuestionFields weights stem and id hits highest.
var QuestionFields = []Field[corpus.Question]{
	{Name: "id", Weight: 5, Text: func(q corpus.Question) string { return q.ID }},
	{Name: "stem", Weight: 7, Text: func(q corpus.Question) string { return q.Stem }},
	{Name: "options", Weight: 5, Text: func(q corpus.Question) string { return strings.Join(q.Options, " ") }},
	{Name: "explanation", Weight: 3, Text: func(q corpus.Question) string { return q.Explanation }},
	{Name: "tags", Weight: 4, Text: func(q corpus.Question) string { return strings.Join(q.Tags, " ") }},
	{Name: "source", Weight: 2, Text: func(q corpus.Question) string { return q.Source }},
	{Name: "type", Weight: 1, Text: func(q corpus.Question) string { return q.Type.Label() }},
}

// KnowledgeQuery selects knowledge items.
type KnowledgeQuery struct {
	Text string
	Tag  string // All or "" to skip
}

// Knowledge filters items by tag and ranks them against the query text.
func Knowledge(items []corpus.KnowledgeItem, q KnowledgeQuery) []Hit[corpus.KnowledgeItem] {
	keep := func(k corpus.KnowledgeItem) bool {
		return isAll(q.Tag) || k.HasTag(q.Tag)
	}
	return Rank(items, keep, q.Text, KnowledgeFields)
}

// WrongSet reports which questions have a recorded incorrect answer.
type WrongSet interface {
	IsWrong(questionID string) bool
}

// QuizQuery selects questions.
type QuizQuery struct {
	Text      string
	Source    string // All or "" to skip
	Type      string // All or "" to skip
	WrongOnly bool
}

// Questions filters questions by source, type and recorded mistakes, then
// ranks them against the query text. With WrongOnly set and a nil wrong set
// nothing matches.
func Questions(qs []corpus.Question, q QuizQuery, wrong WrongSet) []Hit[corpus.Question] {
	keep := func(item corpus.Question) bool {
		if !isAll(q.Source) && item.Source != q.Source {
			return false
		}
		if !isAll(q.Type) && string(item.Type) != q.Type {
			return false
		}
		if q.WrongOnly && (wrong == nil || !wrong.IsWrong(item.ID)) {
			return false
		}
		return true
	}
	return Rank(qs, keep, q.Text, QuestionFields)
}

// documentFields share a weight; documents are filtered, never reordered.
var documentFields = []Field[corpus.Document]{
	{Name: "title", Weight: 1, Text: func(d corpus.Document) string { return d.Title }},
	{Name: "desc", Weight: 1, Text: func(d corpus.Document) string { return d.Desc }},
}

// Documents returns the documents matching any query token, in corpus order.
func Documents(docs []corpus.Document, text string) []corpus.Document {
	hits := Rank(docs, nil, text, documentFields)
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Index < hits[b].Index })
	return Items(hits)
}
