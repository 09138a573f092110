// Package corpus holds the read-only study corpus: knowledge items, quiz
// questions and reference documents, plus indices derived from them.
package corpus

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Corpus is the loaded study corpus. It is never mutated after Parse.
type Corpus struct {
	Meta      Meta            `json:"meta"`
	Documents []Document      `json:"documents"`
	Knowledge []KnowledgeItem `json:"knowledge"`
	Questions []Question      `json:"questions"`

	byID map[string]int

	tagsOnce sync.Once
	tags     []string
}

// Count pairs a name with the number of questions carrying it.
type Count struct {
	Name  string
	Count int
}

// Question returns the question with the given id.
func (c *Corpus) Question(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.Questions[i], true
}

// Document returns the document with the given id, falling back to the first
// document when id is unknown. ok is false only when there are no documents.
func (c *Corpus) Document(id string) (doc Document, ok bool) {
	for _, d := range c.Documents {
		if d.ID == id {
			return d, true
		}
	}
	if len(c.Documents) == 0 {
		return Document{}, false
	}
	return c.Documents[0], true
}

// Tags returns every tag used by knowledge items and questions, de-duplicated
// and sorted in Chinese collation order. The result is computed once.
func (c *Corpus) Tags() []string {
	c.tagsOnce.Do(func() {
		var all []string
		for _, k := range c.Knowledge {
			all = append(all, k.Tags...)
		}
		for _, q := range c.Questions {
			all = append(all, q.Tags...)
		}
		c.tags = uniqueSorted(all)
	})
	return slices.Clone(c.tags)
}

// Sources returns the distinct question sources in collation order.
func (c *Corpus) Sources() []string {
	all := make([]string, 0, len(c.Questions))
	for _, q := range c.Questions {
		all = append(all, q.Source)
	}
	return uniqueSorted(all)
}

// CountBySource counts questions per source, in order of first appearance.
func (c *Corpus) CountBySource() []Count {
	return countBy(c.Questions, func(q Question) string { return q.Source })
}

// CountByType counts questions per type, in order of first appearance.
func (c *Corpus) CountByType() []Count {
	return countBy(c.Questions, func(q Question) string { return string(q.Type) })
}

// RelatedCount returns how many questions share at least one of tags.
func (c *Corpus) RelatedCount(tags []string) int {
	if len(tags) == 0 {
		return 0
	}
	n := 0
	for _, q := range c.Questions {
		for _, t := range q.Tags {
			if slices.Contains(tags, t) {
				n++
				break
			}
		}
	}
	return n
}

// ObjectiveQuestions returns the mechanically gradable questions in corpus order.
func (c *Corpus) ObjectiveQuestions() []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.Type.Objective() {
			out = append(out, q)
		}
	}
	return out
}

func countBy(qs []Question, key func(Question) string) []Count {
	idx := make(map[string]int)
	var out []Count
	for _, q := range qs {
		k := key(q)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count{Name: k})
		}
		out[i].Count++
	}
	return out
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	collate.New(language.SimplifiedChinese).SortStrings(out)
	return out
}
