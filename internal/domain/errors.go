package domain

import "errors"

var (
	// ErrBankLoad is returned when the question bank cannot be fetched or decoded.
	ErrBankLoad = errors.New("question bank could not be loaded")
	// ErrBankNotFound indicates no bank exists for the requested id.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrMalformedQuestion marks a question whose option block could not be fully parsed.
	ErrMalformedQuestion = errors.New("malformed question")
	// ErrSessionNotFound is returned when a drill session id is unknown.
	ErrSessionNotFound = errors.New("drill session not found")
	// ErrAlreadyStarted is returned when Start is called on a running or finished session.
	ErrAlreadyStarted = errors.New("drill session already started")
	// ErrNotAwaitingAnswer is returned when a verdict arrives outside of a question.
	ErrNotAwaitingAnswer = errors.New("drill session is not awaiting an answer")
	// ErrInvalidVerdict indicates a verdict other than trust or do-not-trust was submitted.
	ErrInvalidVerdict = errors.New("invalid verdict")
	// ErrSessionClosed is returned after the session has been torn down.
	ErrSessionClosed = errors.New("drill session closed")
)
