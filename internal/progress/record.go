package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Verdict is the graded state of an answer: unknown until graded, then
// correct or wrong. It encodes as JSON null, true or false.
type Verdict int8

const (
	Unknown Verdict = iota
	Correct
	Wrong
)

// VerdictOf converts a grading result.
func VerdictOf(ok bool) Verdict {
	if ok {
		return Correct
	}
	return Wrong
}

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "unknown"
	}
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	switch v {
	case Correct:
		return []byte("true"), nil
	case Wrong:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (v *Verdict) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "null":
		*v = Unknown
	case "true":
		*v = Correct
	case "false":
		*v = Wrong
	default:
		return fmt.Errorf("verdict: unexpected %s", b)
	}
	return nil
}

// Record is the learner's state for one question. A record exists only once
// the learner has interacted with the question; a cleared record has no
// letters and an Unknown verdict.
type Record struct {
	UserLetters    []string  `json:"userLetters"`
	Correct        Verdict   `json:"correct"`
	SubjectiveText string    `json:"subjectiveText"`
	Revealed       bool      `json:"revealed"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts updatedAt either as an RFC 3339 string or as Unix
// milliseconds, the form written by the browser edition.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var aux struct {
		plain
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)

	raw := bytes.TrimSpace(aux.UpdatedAt)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		r.UpdatedAt = time.Time{}
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &r.UpdatedAt); err != nil {
			return fmt.Errorf("updatedAt: %w", err)
		}
	default:
		var ms float64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return fmt.Errorf("updatedAt: %w", err)
		}
		r.UpdatedAt = time.UnixMilli(int64(ms)).UTC()
	}
	return nil
}

// Answered reports whether the record holds a selection.
func (r Record) Answered() bool { return len(r.UserLetters) > 0 }

func (r Record) clone() Record {
	r.UserLetters = slices.Clone(r.UserLetters)
	if r.UserLetters == nil {
		r.UserLetters = []string{}
	}
	return r
}

// Opt is an optional patch value. The zero Opt leaves a field unchanged.
type Opt[T any] struct {
	Value T
	Valid bool
}

// Set returns an Opt that overwrites a field with v.
func Set[T any](v T) Opt[T] { return Opt[T]{Value: v, Valid: true} }

// Patch lists the fields an upsert overwrites.
type Patch struct {
	UserLetters    Opt[[]string]
	Correct        Opt[Verdict]
	SubjectiveText Opt[string]
	Revealed       Opt[bool]
}

func (p Patch) apply(r Record) Record {
	r = r.clone()
	if p.UserLetters.Valid {
		r.UserLetters = slices.Clone(p.UserLetters.Value)
		if r.UserLetters == nil {
			r.UserLetters = []string{}
		}
	}
	if p.Correct.Valid {
		r.Correct = p.Correct.Value
	}
	if p.SubjectiveText.Valid {
		r.SubjectiveText = p.SubjectiveText.Value
	}
	if p.Revealed.Valid {
		r.Revealed = p.Revealed.Value
	}
	return r
}
