package session

import (
	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/search"
)

// KnowledgeHit is a ranked knowledge item with the number of questions that
// share one of its tags.
type KnowledgeHit struct {
	search.Hit[corpus.KnowledgeItem]
	Related int
}

// Knowledge filters and ranks the knowledge items.
func (s *Session) Knowledge(q search.KnowledgeQuery) []KnowledgeHit {
	hits := search.Knowledge(s.Corpus.Knowledge, q)
	out := make([]KnowledgeHit, len(hits))
	for i, h := range hits {
		out[i] = KnowledgeHit{Hit: h, Related: s.Corpus.RelatedCount(h.Item.Tags)}
	}
	return out
}

// Questions filters and ranks the questions and returns the requested page.
// The wrong-only filter reads the ledger.
func (s *Session) Questions(q search.QuizQuery, page int) search.Page[search.Hit[corpus.Question]] {
	return search.Paginate(search.Questions(s.Corpus.Questions, q, s.Ledger), page)
}

// Documents returns the reference documents matching text, in corpus order.
func (s *Session) Documents(text string) []corpus.Document {
	return search.Documents(s.Corpus.Documents, text)
}
