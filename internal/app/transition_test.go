package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitfinder-quiz-service/internal/domain"
)

func TestTransitionGuardRejectsReentry(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(twoShoeDataset())

	if _, err := service.Start(ctx, "shoes", "s1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, "shoes", "s1", 0, 0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := service.BeginTransition("s1"); err != nil {
		t.Fatalf("begin transition: %v", err)
	}

	// A second answer while the transition is in flight is refused and must
	// not touch the session.
	session, _ := store.Get("s1")
	screen := session.Screen()
	if _, err := service.SubmitAnswer(ctx, "shoes", "s1", 0, 1); !errors.Is(err, domain.ErrTransitionPending) {
		t.Fatalf("expected transition pending, got %v", err)
	}
	if scores := session.Scores(); scores["Y"] != 0 {
		t.Fatalf("guarded submit must not mutate scores, got %+v", scores)
	}
	if session.Screen() != screen {
		t.Fatalf("guarded submit must not change screen")
	}

	// Starting another transition while one is pending is refused too.
	if err := service.BeginTransition("s1"); !errors.Is(err, domain.ErrTransitionPending) {
		t.Fatalf("expected second begin refused, got %v", err)
	}
}

func TestTransitionCompletesAfterBothFades(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(twoShoeDataset())

	if _, err := service.Start(ctx, "shoes", "s1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.BeginTransition("s1"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	session, _ := store.Get("s1")
	if err := service.TransitionDone("s1"); err != nil {
		t.Fatalf("fade-out done: %v", err)
	}
	if !session.Transition().Busy() {
		t.Fatalf("expected still busy between fades")
	}
	if err := service.TransitionDone("s1"); err != nil {
		t.Fatalf("fade-in done: %v", err)
	}
	if session.Transition().Busy() {
		t.Fatalf("expected idle after both fades")
	}

	if _, err := service.SubmitAnswer(ctx, "shoes", "s1", 0, 0); err != nil {
		t.Fatalf("expected submit accepted after transition, got %v", err)
	}
}

func TestTransitionSafetyTimeoutForceClears(t *testing.T) {
	ctx := context.Background()
	dataset := twoShoeDataset()
	service, store := newTestServiceWithTimeout(dataset, 20*time.Millisecond)

	if _, err := service.Start(ctx, "shoes", "s1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.BeginTransition("s1"); err != nil {
		t.Fatalf("begin: %v", err)
	}

	session, _ := store.Get("s1")
	deadline := time.Now().Add(time.Second)
	for session.Transition().Busy() {
		if time.Now().After(deadline) {
			t.Fatalf("expected safety timeout to clear the transition")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := service.SubmitAnswer(ctx, "shoes", "s1", 0, 0); err != nil {
		t.Fatalf("expected submit accepted after force-clear, got %v", err)
	}
}

func TestAnimationCompleteWhileIdleIsIgnored(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(twoShoeDataset())

	if _, err := service.Start(ctx, "shoes", "s1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := service.TransitionDone("s1"); err != nil {
		t.Fatalf("stray signal errored: %v", err)
	}
	session, _ := store.Get("s1")
	if session.Transition().Busy() {
		t.Fatalf("stray signal must not start a transition")
	}
}
