package domain

import "errors"

var (
	// ErrMalformedDataset is returned when a dataset document is missing
	// required fields or has the wrong shape. Fatal for the load.
	ErrMalformedDataset = errors.New("malformed dataset")
	// ErrDatasetNotFound indicates the dataset could not be located in the
	// backing store.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrSessionNotFound is returned when a quiz session has not been started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuestionNotFound indicates a question id does not resolve via the
	// question index.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAnswerNotFound indicates a submitted answer index is out of range.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrTransitionPending is returned when input arrives while a screen
	// transition is still in flight.
	ErrTransitionPending = errors.New("transition in flight")
)
