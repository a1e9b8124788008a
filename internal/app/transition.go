package app

import (
	"log"
	"sync"
	"time"

	"fitfinder-quiz-service/internal/domain"
)

// DefaultTransitionTimeout bounds how long a screen transition may stay in
// flight before the guard is force-cleared.
const DefaultTransitionTimeout = 10 * time.Second

type transitionState int

const (
	transitionIdle transitionState = iota
	transitionFadingOut
	transitionFadingIn
)

// Transition serializes screen swaps for one session. It is the fade
// state machine idle -> fadingOut -> fadingIn -> idle, driven by Begin and
// AnimationComplete signals; the session is busy whenever the state is not
// idle. A completion signal that never arrives would wedge input forever, so
// a safety timer force-clears the machine and logs the anomaly.
type Transition struct {
	label   string
	timeout time.Duration

	mu    sync.Mutex
	state transitionState
	timer *time.Timer
}

func NewTransition(label string, timeout time.Duration) *Transition {
	return &Transition{label: label, timeout: timeout}
}

// Busy reports whether a transition is in flight.
func (t *Transition) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != transitionIdle
}

// Begin starts a transition. Starting a second one while the first is still
// animating is refused.
func (t *Transition) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != transitionIdle {
		return domain.ErrTransitionPending
	}
	t.state = transitionFadingOut
	if t.timeout > 0 {
		t.timer = time.AfterFunc(t.timeout, t.forceClear)
	}
	return nil
}

// AnimationComplete advances the machine: fade-out done means the content
// swap may happen and the fade-in starts; fade-in done returns to idle.
// Signals while idle are ignored.
func (t *Transition) AnimationComplete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case transitionFadingOut:
		t.state = transitionFadingIn
	case transitionFadingIn:
		t.state = transitionIdle
		t.stopTimerLocked()
	}
}

func (t *Transition) forceClear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transitionIdle {
		return
	}
	log.Printf("transition for %q never completed, force-clearing after %s", t.label, t.timeout)
	t.state = transitionIdle
	t.stopTimerLocked()
}

func (t *Transition) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
