package domain

import (
	"encoding/json"
	"fmt"
)

// QuestionRef is an answer's pointer to the next question. Datasets express
// "end of quiz" three ways: the key is absent, explicitly null, or an empty
// string. All three decode to the terminal (zero) QuestionRef.
type QuestionRef struct {
	id  int
	set bool
}

// ContinueTo builds a non-terminal reference to the given question id.
func ContinueTo(id int) QuestionRef {
	return QuestionRef{id: id, set: true}
}

// Terminal reports whether this reference marks the end of the quiz.
func (r QuestionRef) Terminal() bool {
	return !r.set
}

// ID returns the referenced question id; only meaningful when !Terminal().
func (r QuestionRef) ID() int {
	return r.id
}

func (r *QuestionRef) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null", `""`:
		*r = QuestionRef{}
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("%w: nextQuestion must be an integer, null, or empty", ErrMalformedDataset)
	}
	*r = QuestionRef{id: id, set: true}
	return nil
}

func (r QuestionRef) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
