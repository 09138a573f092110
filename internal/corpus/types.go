package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	TypeSingle    QuestionType = "single"
	TypeMultiple  QuestionType = "multiple"
	TypeTrueFalse QuestionType = "truefalse"
	TypeShort     QuestionType = "short"
	TypeFlash     QuestionType = "flash"
)

// typeOrder is the display order of the known question types.
var typeOrder = []QuestionType{TypeSingle, TypeMultiple, TypeTrueFalse, TypeShort, TypeFlash}

var typeLabels = map[QuestionType]string{
	TypeSingle:    "单选",
	TypeMultiple:  "多选",
	TypeTrueFalse: "判断",
	TypeShort:     "场景/简答",
	TypeFlash:     "闪卡",
}

// Types returns the known question types in display order.
func Types() []QuestionType {
	out := make([]QuestionType, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// Label returns the human-readable label for the type. Unknown types are
// returned verbatim.
func (t QuestionType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Objective reports whether answers to this type can be checked mechanically.
func (t QuestionType) Objective() bool {
	return t == TypeSingle || t == TypeMultiple || t == TypeTrueFalse
}

// SingleChoice reports whether exactly one option must be chosen.
func (t QuestionType) SingleChoice() bool {
	return t == TypeSingle || t == TypeTrueFalse
}

// AnswerKind tags the shape of a stored answer.
type AnswerKind int

const (
	// AnswerText is a plain string: letters ("AC"), option text, or a
	// narrative reference.
	AnswerText AnswerKind = iota
	// AnswerList is a list of strings, normally one letter per element.
	AnswerList
)

// Answer is the stored answer of a question. The corpus encodes it either as
// a JSON string or as a JSON array of strings.
type Answer struct {
	Kind AnswerKind
	Text string
	List []string
}

// TextAnswer returns a string-shaped answer.
func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }

// ListAnswer returns a list-shaped answer.
func ListAnswer(items ...string) Answer { return Answer{Kind: AnswerList, List: items} }

// IsZero reports whether the answer carries no content at all.
func (a Answer) IsZero() bool {
	if a.Kind == AnswerList {
		for _, s := range a.List {
			if strings.TrimSpace(s) != "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(a.Text) == ""
}

// String renders the answer for display.
func (a Answer) String() string {
	if a.Kind == AnswerList {
		return strings.Join(a.List, ", ")
	}
	return a.Text
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = Answer{}
		return nil
	case len(b) > 0 && b[0] == '[':
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("answer list: %w", err)
		}
		*a = ListAnswer(list...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("answer text: %w", err)
		}
		*a = TextAnswer(s)
		return nil
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind == AnswerList {
		list := a.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(a.Text)
}

// KnowledgeItem is a read-only study note.
type KnowledgeItem struct {
	ID      string   `json:"id"`
	Chapter string   `json:"chapter"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// HasTag reports whether the item carries tag exactly.
func (k KnowledgeItem) HasTag(tag string) bool {
	return slices.Contains(k.Tags, tag)
}

// Question is a read-only quiz question.
type Question struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"`
	Type        QuestionType `json:"qtype"`
	Stem        string       `json:"stem"`
	Options     []string     `json:"options"`
	Answer      Answer       `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
	Tags        []string     `json:"tags"`
}

// PrimaryTag returns the first tag, or fallback when the question has none.
func (q Question) PrimaryTag(fallback string) string {
	if len(q.Tags) > 0 {
		return q.Tags[0]
	}
	return fallback
}

// Document is a reference document shipped with the corpus.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
	Web   string `json:"web,omitempty"`
	File  string `json:"file,omitempty"`
	// PDF is the legacy name of File.
	PDF string `json:"pdf,omitempty"`
}

// PreviewPath returns the web path if present, else the file path.
func (d Document) PreviewPath() string {
	switch {
	case d.Web != "":
		return d.Web
	case d.File != "":
		return d.File
	default:
		return d.PDF
	}
}

// Meta carries the corpus summary counters.
type Meta struct {
	Title          string `json:"title,omitempty"`
	Version        string `json:"version,omitempty"`
	KnowledgeCount int    `json:"knowledge_count"`
	QuestionCount  int    `json:"question_count"`
}
