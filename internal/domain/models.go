package domain

// Shoe is a recommendable catalog entry. Tagline and Image are presentation
// fields carried through for clients; the engine only reads ID and catalog
// position.
type Shoe struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Answer is one selectable option on a question. RatingIncrease is sparse:
// shoes it does not mention gain 0. A terminal NextQuestion ends the quiz.
type Answer struct {
	Copy           string         `json:"copy"`
	RatingIncrease map[string]int `json:"ratingIncrease,omitempty"`
	NextQuestion   QuestionRef    `json:"nextQuestion,omitempty"`
}

// Question is a node in the branching quiz graph.
type Question struct {
	ID      int      `json:"id"`
	Copy    string   `json:"copy"`
	Answers []Answer `json:"answers"`
}

// Dataset is the static shoe catalog plus question graph, loaded once and
// treated as immutable. Shoe order is meaningful: it is the ranking tie-break.
type Dataset struct {
	Shoes     []Shoe     `json:"shoes"`
	Questions []Question `json:"questions"`
}

// Screen identifies which view a session is currently showing.
type Screen string

const (
	ScreenStart   Screen = "start"
	ScreenQuiz    Screen = "quiz"
	ScreenLoading Screen = "loading"
	ScreenResults Screen = "results"
)

// Outcome is the result of scoring one answer: either the quiz is finished,
// or NextQuestionID names the question the caller should advance to.
type Outcome struct {
	Finished       bool `json:"finished"`
	NextQuestionID int  `json:"nextQuestionId,omitempty"`
}

// RankedShoe pairs a shoe with its final accumulated score.
type RankedShoe struct {
	Shoe  Shoe `json:"shoe"`
	Score int  `json:"score"`
}

// Results partitions a ranking into the recommended shoe and up to two
// similar alternatives.
type Results struct {
	Recommended *RankedShoe  `json:"recommended"`
	Similar     []RankedShoe `json:"similar"`
}

// QuestionIndex is a derived id->question lookup, rebuilt per dataset load.
type QuestionIndex map[int]Question

// BuildQuestionIndex maps question ids to questions. Duplicate ids resolve
// last-write-wins, matching plain map insertion over the question list in
// order.
func BuildQuestionIndex(questions []Question) QuestionIndex {
	idx := make(QuestionIndex, len(questions))
	for _, q := range questions {
		idx[q.ID] = q
	}
	return idx
}
