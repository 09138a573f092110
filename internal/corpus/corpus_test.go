package corpus

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const sampleCorpus = `{
  "meta": {"title": "短信业务自学", "version": "1"},
  "documents": [
    {"id": "guide", "title": "操作手册", "desc": "部署说明", "web": "docs/guide/index.html", "file": "docs/guide.pdf"},
    {"id": "legacy", "title": "旧版规范", "pdf": "docs/legacy.pdf"}
  ],
  "knowledge": [
    {"id": "k1", "chapter": "第一章", "title": "短信网关", "content": "- 接入\n- 转发", "tags": ["网关", "协议"]},
    {"id": "k2", "chapter": "第二章", "title": "安全策略", "content": "", "tags": ["安全"]}
  ],
  "questions": [
    {"id": "q1", "source": "题库A", "qtype": "single", "stem": "哪个是网关？", "options": ["甲", "乙", "丙"], "answer": "B", "tags": ["网关"]},
    {"id": "q2", "source": "题库A", "qtype": "multiple", "stem": "选出协议", "options": ["甲", "乙", "丙"], "answer": ["A", "C"], "explanation": "见第一章", "tags": ["协议"]},
    {"id": "q3", "source": "题库B", "qtype": "truefalse", "stem": "网关可以转发", "options": ["对", "错"], "answer": "对", "tags": []},
    {"id": "q4", "source": "题库B", "qtype": "short", "stem": "简述安全策略", "answer": null, "explanation": "参考第二章", "tags": ["安全"]}
  ]
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCorpus))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if c.Meta.Title != "短信业务自学" {
		t.Errorf("Meta.Title = %q", c.Meta.Title)
	}
	if c.Meta.KnowledgeCount != 2 || c.Meta.QuestionCount != 4 {
		t.Errorf("Meta counts = %d/%d, want 2/4", c.Meta.KnowledgeCount, c.Meta.QuestionCount)
	}

	q2, ok := c.Question("q2")
	if !ok {
		t.Fatal("q2 not found")
	}
	if q2.Answer.Kind != AnswerList || !slices.Equal(q2.Answer.List, []string{"A", "C"}) {
		t.Errorf("q2 answer = %+v, want list [A C]", q2.Answer)
	}
	q1, _ := c.Question("q1")
	if q1.Answer.Kind != AnswerText || q1.Answer.Text != "B" {
		t.Errorf("q1 answer = %+v, want text B", q1.Answer)
	}
	q4, _ := c.Question("q4")
	if !q4.Answer.IsZero() {
		t.Errorf("q4 answer = %+v, want zero", q4.Answer)
	}
	if _, ok := c.Question("missing"); ok {
		t.Error("Question(missing) should not be found")
	}
}

func TestParse_KeepsDeclaredCounts(t *testing.T) {
	c, err := Parse([]byte(`{"meta": {"knowledge_count": 9, "question_count": 7}, "knowledge": [], "questions": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Meta.KnowledgeCount != 9 || c.Meta.QuestionCount != 7 {
		t.Errorf("Meta counts = %d/%d, want 9/7", c.Meta.KnowledgeCount, c.Meta.QuestionCount)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		stage string
	}{
		{"not json", `{"knowledge": [`, "decode"},
		{"missing questions", `{"knowledge": []}`, "validate"},
		{"unknown type", `{"knowledge": [], "questions": [{"id": "x", "qtype": "essay", "stem": "s"}]}`, "validate"},
		{"numeric answer", `{"knowledge": [], "questions": [{"id": "x", "qtype": "single", "stem": "s", "answer": 1}]}`, "validate"},
		{"missing stem", `{"knowledge": [], "questions": [{"id": "x", "qtype": "single"}]}`, "validate"},
		{"duplicate id", `{"knowledge": [], "questions": [
			{"id": "x", "qtype": "single", "stem": "a"},
			{"id": "x", "qtype": "short", "stem": "b"}]}`, "index"},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(tc.data))
		if err == nil {
			t.Errorf("%s: Parse succeeded, want error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: error %v does not wrap ErrInvalid", tc.name, err)
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Stage != tc.stage {
			t.Errorf("%s: error %v, want LoadError at stage %s", tc.name, err, tc.stage)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(sampleCorpus), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Questions) != 4 {
		t.Errorf("loaded %d questions, want 4", len(c.Questions))
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != "read" || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want read LoadError wrapping ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !errors.As(err, &le) || le.Path != bad {
		t.Errorf("Load(bad) = %v, want LoadError carrying the path", err)
	}
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New(nil, []Question{{ID: "a"}, {ID: "a"}}, nil)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("New with duplicate ids = %v, want ErrInvalid", err)
	}
}

func TestTagsAndCounts(t *testing.T) {
	c, err := Parse([]byte(sampleCorpus))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := c.Tags(), []string{"安全", "网关", "协议"}; !slices.Equal(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
	// Cached result is not shared with callers.
	c.Tags()[0] = "changed"
	if c.Tags()[0] != "安全" {
		t.Error("Tags() cache was mutated")
	}

	if got := c.Sources(); len(got) != 2 {
		t.Errorf("Sources() = %v, want 2 entries", got)
	}

	wantSource := []Count{{"题库A", 2}, {"题库B", 2}}
	if got := c.CountBySource(); !slices.Equal(got, wantSource) {
		t.Errorf("CountBySource() = %v, want %v", got, wantSource)
	}
	wantType := []Count{{"single", 1}, {"multiple", 1}, {"truefalse", 1}, {"short", 1}}
	if got := c.CountByType(); !slices.Equal(got, wantType) {
		t.Errorf("CountByType() = %v, want %v", got, wantType)
	}

	if got := c.RelatedCount([]string{"网关", "协议"}); got != 2 {
		t.Errorf("RelatedCount(网关, 协议) = %d, want 2", got)
	}
	if got := c.RelatedCount(nil); got != 0 {
		t.Errorf("RelatedCount(nil) = %d, want 0", got)
	}
	if got := len(c.ObjectiveQuestions()); got != 3 {
		t.Errorf("ObjectiveQuestions() = %d, want 3", got)
	}
}

func TestDocuments(t *testing.T) {
	c, err := Parse([]byte(sampleCorpus))
	if err != nil {
		t.Fatal(err)
	}

	d, ok := c.Document("legacy")
	if !ok || d.PreviewPath() != "docs/legacy.pdf" {
		t.Errorf("Document(legacy) = %+v, preview %q", d, d.PreviewPath())
	}
	d, ok = c.Document("nope")
	if !ok || d.ID != "guide" {
		t.Errorf("Document(nope) = %+v, want fallback to guide", d)
	}
	if d.PreviewPath() != "docs/guide/index.html" {
		t.Errorf("guide preview = %q, want web path", d.PreviewPath())
	}

	empty := &Corpus{}
	if _, ok := empty.Document("x"); ok {
		t.Error("Document on empty corpus should report !ok")
	}
}

func TestQuestionTypes(t *testing.T) {
	tests := []struct {
		t         QuestionType
		label     string
		objective bool
		single    bool
	}{
		{TypeSingle, "单选", true, true},
		{TypeMultiple, "多选", true, false},
		{TypeTrueFalse, "判断", true, true},
		{TypeShort, "场景/简答", false, false},
		{TypeFlash, "闪卡", false, false},
	}
	for _, tc := range tests {
		if tc.t.Label() != tc.label || tc.t.Objective() != tc.objective || tc.t.SingleChoice() != tc.single {
			t.Errorf("%s: label=%q objective=%v single=%v", tc.t, tc.t.Label(), tc.t.Objective(), tc.t.SingleChoice())
		}
	}
}

func TestAnswerJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Answer
		out  string
	}{
		{`"AC"`, TextAnswer("AC"), `"AC"`},
		{`["A","C"]`, ListAnswer("A", "C"), `["A","C"]`},
		{`null`, Answer{}, `""`},
	}
	for _, tc := range tests {
		var a Answer
		if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.in, err)
		}
		if a.Kind != tc.want.Kind || a.Text != tc.want.Text || !slices.Equal(a.List, tc.want.List) {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tc.in, a, tc.want)
		}
		b, err := json.Marshal(a)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tc.out {
			t.Errorf("Marshal(%s) = %s, want %s", tc.in, b, tc.out)
		}
	}

	var a Answer
	if err := json.Unmarshal([]byte(`{"x":1}`), &a); err == nil {
		t.Error("Unmarshal(object) should fail")
	}
}
