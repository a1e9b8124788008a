package app

import (
	"context"
	"sync"
	"time"

	"fitfinder-quiz-service/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(sessionID string) *Session
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// DatasetRepository loads dataset content (from cache/backing store).
type DatasetRepository interface {
	GetDataset(ctx context.Context, datasetID string) (domain.Dataset, error)
}

// QuizService contains the core quiz use cases: starting a session, scoring
// answers, advancing through the question graph, and ranking results.
type QuizService struct {
	sessions SessionRepository
	datasets DatasetRepository
}

func NewQuizService(store SessionRepository, datasets DatasetRepository) *QuizService {
	return &QuizService{sessions: store, datasets: datasets}
}

// Start creates (or wholesale replaces) the session and returns the opening
// question. Question ids start at 0 by dataset convention; a catalog without
// question 0 fails with ErrQuestionNotFound rather than defaulting silently.
func (s *QuizService) Start(ctx context.Context, datasetID, sessionID string) (domain.Question, error) {
	dataset, err := s.datasets.GetDataset(ctx, datasetID)
	if err != nil {
		return domain.Question{}, err
	}
	index := domain.BuildQuestionIndex(dataset.Questions)
	first, ok := index[0]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	session := s.sessions.GetOrCreate(sessionID)
	session.reset(dataset)
	return first, nil
}

// SubmitAnswer scores one answer against the session. The question is
// re-resolved through the index rather than trusting caller state. On any
// error the session is left untouched. The returned Outcome carries the next
// question id (or Finished); advancing the session is the caller's explicit
// next step via Advance or Finish.
func (s *QuizService) SubmitAnswer(ctx context.Context, datasetID, sessionID string, questionID, answerIndex int) (domain.Outcome, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Outcome{}, domain.ErrSessionNotFound
	}

	dataset, err := s.datasets.GetDataset(ctx, datasetID)
	if err != nil {
		return domain.Outcome{}, err
	}

	question, ok := domain.BuildQuestionIndex(dataset.Questions)[questionID]
	if !ok {
		return domain.Outcome{}, domain.ErrQuestionNotFound
	}

	return session.submit(question, answerIndex)
}

// Advance moves the session to the next question resolved from a Continue
// outcome. A dangling reference fails with ErrQuestionNotFound and leaves the
// session where it was.
func (s *QuizService) Advance(ctx context.Context, datasetID, sessionID string, nextQuestionID int) (domain.Question, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Question{}, domain.ErrSessionNotFound
	}

	dataset, err := s.datasets.GetDataset(ctx, datasetID)
	if err != nil {
		return domain.Question{}, err
	}

	question, ok := domain.BuildQuestionIndex(dataset.Questions)[nextQuestionID]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	session.setCurrentQuestion(nextQuestionID)
	return question, nil
}

// Finish ranks the session's accumulated scores and flips it to the results
// screen.
func (s *QuizService) Finish(ctx context.Context, datasetID, sessionID string) (domain.Results, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Results{}, domain.ErrSessionNotFound
	}

	dataset, err := s.datasets.GetDataset(ctx, datasetID)
	if err != nil {
		return domain.Results{}, err
	}

	ranked := Rank(session, dataset)
	results := SelectResults(ranked)
	session.setScreen(domain.ScreenResults)
	return results, nil
}

// Home drops the session entirely; the next Start builds a fresh one.
func (s *QuizService) Home(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.setScreen(domain.ScreenStart)
	s.sessions.Delete(sessionID)
}

// BeginTransition marks a screen transition in flight for the session.
func (s *QuizService) BeginTransition(sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return session.transition.Begin()
}

// TransitionDone forwards an animation-complete signal to the session's
// transition machine.
func (s *QuizService) TransitionDone(sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.transition.AnimationComplete()
	return nil
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return NewSessionWithTimeout(id, DefaultTransitionTimeout)
}

// NewSessionWithTimeout overrides the transition safety timeout, which session
// stores take from config.
func NewSessionWithTimeout(id string, timeout time.Duration) *Session {
	return &Session{
		id:         id,
		screen:     domain.ScreenStart,
		scores:     make(map[string]int),
		transition: NewTransition(id, timeout),
	}
}

// Session is the in-memory state of one quiz playthrough: active screen,
// current question, and per-shoe accumulated scores. Mutated only through
// QuizService operations.
type Session struct {
	id         string
	mu         sync.RWMutex
	screen     domain.Screen
	currentQID int
	scores     map[string]int
	transition *Transition
}

// reset replaces the playthrough state wholesale: zeroed score per shoe in
// dataset order, question 0, quiz screen. Nothing carries over.
func (s *Session) reset(dataset domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = domain.ScreenQuiz
	s.currentQID = 0
	s.scores = make(map[string]int, len(dataset.Shoes))
	for _, shoe := range dataset.Shoes {
		s.scores[shoe.ID] = 0
	}
}

func (s *Session) submit(question domain.Question, answerIndex int) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transition.Busy() {
		return domain.Outcome{}, domain.ErrTransitionPending
	}
	if answerIndex < 0 || answerIndex >= len(question.Answers) {
		return domain.Outcome{}, domain.ErrAnswerNotFound
	}

	answer := question.Answers[answerIndex]
	for shoeID, delta := range answer.RatingIncrease {
		// Well-formed datasets only reference cataloged shoes; create the
		// entry at 0 anyway so the operation stays total.
		s.scores[shoeID] += delta
	}

	if answer.NextQuestion.Terminal() {
		return domain.Outcome{Finished: true}, nil
	}
	return domain.Outcome{NextQuestionID: answer.NextQuestion.ID()}, nil
}

func (s *Session) setCurrentQuestion(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentQID = id
}

func (s *Session) setScreen(screen domain.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
}

// Screen returns the session's active screen.
func (s *Session) Screen() domain.Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

// CurrentQuestionID returns the question the session is on.
func (s *Session) CurrentQuestionID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentQID
}

// Scores returns a copy of the per-shoe score map.
func (s *Session) Scores() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.scores))
	for id, score := range s.scores {
		out[id] = score
	}
	return out
}

// Transition exposes the session's transition machine.
func (s *Session) Transition() *Transition {
	return s.transition
}
