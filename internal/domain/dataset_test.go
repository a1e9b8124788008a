package domain

import (
	"errors"
	"testing"
)

func TestParseDatasetPreservesShoeOrder(t *testing.T) {
	raw := []byte(`{
		"shoes": [
			{"id": "b", "name": "B"},
			{"id": "a", "name": "A"},
			{"id": "c", "name": "C"}
		],
		"questions": [
			{"id": 0, "copy": "q", "answers": [{"copy": "done"}]}
		]
	}`)
	dataset, err := ParseDataset(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"b", "a", "c"}
	for i, shoe := range dataset.Shoes {
		if shoe.ID != want[i] {
			t.Fatalf("expected shoe order %v, got %s at %d", want, shoe.ID, i)
		}
	}
}

func TestParseDatasetRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing shoes", `{"questions": []}`},
		{"missing questions", `{"shoes": []}`},
		{"shoes wrong shape", `{"shoes": {}, "questions": []}`},
		{"shoe missing id", `{"shoes": [{"name": "A"}], "questions": []}`},
		{"question missing id", `{"shoes": [], "questions": [{"copy": "q", "answers": [{"copy": "a"}]}]}`},
		{"question missing answers", `{"shoes": [], "questions": [{"id": 0, "copy": "q"}]}`},
		{"next question wrong type", `{"shoes": [], "questions": [{"id": 0, "answers": [{"copy": "a", "nextQuestion": "one"}]}]}`},
	}
	for _, tc := range cases {
		if _, err := ParseDataset([]byte(tc.raw)); !errors.Is(err, ErrMalformedDataset) {
			t.Fatalf("%s: expected malformed dataset, got %v", tc.name, err)
		}
	}
}

func TestParseDatasetTerminalMarkers(t *testing.T) {
	raw := []byte(`{
		"shoes": [{"id": "a", "name": "A"}],
		"questions": [{"id": 0, "copy": "q", "answers": [
			{"copy": "absent"},
			{"copy": "null", "nextQuestion": null},
			{"copy": "empty", "nextQuestion": ""},
			{"copy": "zero", "nextQuestion": 0},
			{"copy": "five", "nextQuestion": 5}
		]}]
	}`)
	dataset, err := ParseDataset(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	answers := dataset.Questions[0].Answers
	for i := 0; i < 3; i++ {
		if !answers[i].NextQuestion.Terminal() {
			t.Fatalf("answer %d (%s) should be terminal", i, answers[i].Copy)
		}
	}
	// Question id 0 is a real target, not a terminal marker.
	if answers[3].NextQuestion.Terminal() || answers[3].NextQuestion.ID() != 0 {
		t.Fatalf("nextQuestion 0 must continue to question 0")
	}
	if answers[4].NextQuestion.Terminal() || answers[4].NextQuestion.ID() != 5 {
		t.Fatalf("expected continue to 5, got %+v", answers[4].NextQuestion)
	}
}

func TestBuildQuestionIndexLastWriteWins(t *testing.T) {
	questions := []Question{
		{ID: 0, Copy: "first"},
		{ID: 1, Copy: "other"},
		{ID: 0, Copy: "second"},
	}
	idx := BuildQuestionIndex(questions)
	if len(idx) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(idx))
	}
	if idx[0].Copy != "second" {
		t.Fatalf("expected later duplicate to win, got %q", idx[0].Copy)
	}
}
