package domain

import (
	"encoding/json"
	"fmt"
)

// wire mirrors of the dataset document; required fields decode through
// pointers so "missing" is distinguishable from zero values.
type wireQuestion struct {
	ID      *int     `json:"id"`
	Copy    string   `json:"copy"`
	Answers []Answer `json:"answers"`
}

type wireDataset struct {
	Shoes     []Shoe         `json:"shoes"`
	Questions []wireQuestion `json:"questions"`
}

// ParseDataset decodes and validates a dataset document. The wire keys
// (shoes, copy, ratingIncrease, nextQuestion) match the published dataset
// format. Shoe order is preserved exactly as authored.
func ParseDataset(raw []byte) (Dataset, error) {
	var doc wireDataset
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Dataset{}, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	if doc.Shoes == nil {
		return Dataset{}, fmt.Errorf("%w: missing shoes", ErrMalformedDataset)
	}
	if doc.Questions == nil {
		return Dataset{}, fmt.Errorf("%w: missing questions", ErrMalformedDataset)
	}
	for i, shoe := range doc.Shoes {
		if shoe.ID == "" {
			return Dataset{}, fmt.Errorf("%w: shoes[%d] missing id", ErrMalformedDataset, i)
		}
	}

	questions := make([]Question, 0, len(doc.Questions))
	for i, q := range doc.Questions {
		if q.ID == nil {
			return Dataset{}, fmt.Errorf("%w: questions[%d] missing id", ErrMalformedDataset, i)
		}
		if len(q.Answers) == 0 {
			return Dataset{}, fmt.Errorf("%w: questions[%d] missing answers", ErrMalformedDataset, i)
		}
		questions = append(questions, Question{ID: *q.ID, Copy: q.Copy, Answers: q.Answers})
	}

	return Dataset{Shoes: doc.Shoes, Questions: questions}, nil
}
