package solver

import "errors"

// Sentinel errors surfaced at the engine boundary. Callers match with
// errors.Is; the HTTP and CLI layers translate them into their own
// presentation.
var (
	// ErrWordLength rejects a word that is not exactly 5 letters A–Z.
	ErrWordLength = errors.New("solver: word must be exactly 5 letters A-Z")

	// ErrFeedbackEncoding rejects a feedback string that is not 5
	// characters over {G, Y, X}.
	ErrFeedbackEncoding = errors.New("solver: feedback must be 5 characters of G, Y, or X")

	// ErrNoPossibleAnswers means filtering emptied the candidate set:
	// either the dictionary is incomplete or a feedback entry was recorded
	// incorrectly. Terminal for the session.
	ErrNoPossibleAnswers = errors.New("solver: no possible answers remain")

	// ErrSessionFinished rejects feedback on a resolved or failed session.
	ErrSessionFinished = errors.New("solver: session finished")
)
