package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalid marks a corpus that was read but cannot be used.
var ErrInvalid = errors.New("invalid corpus")

// LoadError describes why a corpus could not be loaded.
type LoadError struct {
	Path  string
	Stage string // read, decode, validate or index
	Err   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corpus %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("corpus %s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and parses the corpus document at path.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "read", Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Parse validates data against the corpus schema and decodes it.
func Parse(data []byte) (*Corpus, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Stage: "decode", Err: fmt.Errorf("%w: %v", ErrInvalid, err)}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, &LoadError{Stage: "validate", Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &LoadError{Stage: "validate", Err: fmt.Errorf("%w: %v", ErrInvalid, err)}
	}

	c := &Corpus{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, &LoadError{Stage: "decode", Err: fmt.Errorf("%w: %v", ErrInvalid, err)}
	}
	if err := c.index(); err != nil {
		return nil, &LoadError{Stage: "index", Err: err}
	}
	return c, nil
}

// index builds the id lookup and fills in missing summary counters.
func (c *Corpus) index() error {
	c.byID = make(map[string]int, len(c.Questions))
	for i, q := range c.Questions {
		if _, dup := c.byID[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalid, q.ID)
		}
		c.byID[q.ID] = i
	}
	if c.Meta.KnowledgeCount == 0 {
		c.Meta.KnowledgeCount = len(c.Knowledge)
	}
	if c.Meta.QuestionCount == 0 {
		c.Meta.QuestionCount = len(c.Questions)
	}
	return nil
}

// New builds a corpus from in-memory items. It applies the same indexing as
// Parse but skips schema validation.
func New(knowledge []KnowledgeItem, questions []Question, documents []Document) (*Corpus, error) {
	c := &Corpus{Knowledge: knowledge, Questions: questions, Documents: documents}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}
