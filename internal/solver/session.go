// internal/solver/session.go
//
// Session state and guess selection for one puzzle.
// Responsibilities:
//   - Track guess history and the shrinking possible-answers set.
//   - Recommend the entropy-maximizing next guess (mode-dependent
//     candidate universe).
//   - State transitions: fresh → in_progress → resolved/failed; explicit
//     Reset back to fresh.
//
// Notes:
//   - A Session is exclusively owned by one caller; concurrent solves use
//     independent sessions or the package-level pure functions.
//   - The hard-mode flag is fixed at construction.
package solver

// State is a coarse label for the session lifecycle.
type State string

const (
	// StateFresh: no feedback processed yet.
	StateFresh State = "fresh"
	// StateInProgress: at least one guess processed, >1 candidates remain.
	StateInProgress State = "in_progress"
	// StateResolved: exactly one candidate remains, or the caller signaled
	// the puzzle solved.
	StateResolved State = "resolved"
	// StateFailed: filtering emptied the candidate set.
	StateFailed State = "failed"
)

// Suggestion is a recommended guess and its expected information gain in
// bits (0 when only one candidate remains).
type Suggestion struct {
	Word Word    `json:"word"`
	Bits float64 `json:"bits"`
}

// Session solves one puzzle. Construct with New.
type Session struct {
	dict     []Word
	possible []Word
	history  []Entry
	hard     bool
	solved   bool
	failed   bool

	// Opening recommendation, computed once per session lifetime; the
	// dictionary never changes under a session, so Reset keeps it.
	opening *Suggestion
}

// New constructs a session over an ordered dictionary. The dictionary
// slice is treated as immutable and shared; the possible-answers set is an
// owned copy.
func New(dict []Word, hardMode bool) *Session {
	return &Session{
		dict:     dict,
		possible: append([]Word(nil), dict...),
		hard:     hardMode,
	}
}

// HardMode reports the fixed mode flag.
func (s *Session) HardMode() bool { return s.hard }

// Steps returns the number of feedback entries processed.
func (s *Session) Steps() int { return len(s.history) }

// History returns a copy of the guess history in play order.
func (s *Session) History() []Entry {
	return append([]Entry(nil), s.history...)
}

// Possible returns a copy of the current possible-answers set in
// dictionary order.
func (s *Session) Possible() []Word {
	return append([]Word(nil), s.possible...)
}

// State reports the session lifecycle state.
func (s *Session) State() State {
	switch {
	case s.failed:
		return StateFailed
	case s.solved || len(s.possible) == 1:
		return StateResolved
	case len(s.history) == 0:
		return StateFresh
	default:
		return StateInProgress
	}
}

// MarkSolved records an external "puzzle solved" signal, moving the
// session to resolved regardless of remaining candidates.
func (s *Session) MarkSolved() { s.solved = true }

// Reset clears history and restores the full dictionary, returning the
// session to fresh.
func (s *Session) Reset() {
	s.possible = append(s.possible[:0], s.dict...)
	s.history = nil
	s.solved = false
	s.failed = false
}

// InitialGuess returns the entropy-maximizing opening word against the
// full dictionary, honoring the session's candidate universe. Computed on
// first use and cached for the session lifetime.
func (s *Session) InitialGuess() Suggestion {
	if s.opening == nil {
		best := selectGuess(s.dict, s.dict, nil, s.hard)
		s.opening = &best
	}
	return *s.opening
}

// ProcessFeedback records the observed feedback for a played guess,
// narrows the possible-answers set, and returns the next recommendation.
//
// Validation is atomic: on any returned error other than
// ErrNoPossibleAnswers the session is unmodified. ErrNoPossibleAnswers is
// terminal: the entry is recorded, the set is empty, and the session
// reports failed.
func (s *Session) ProcessFeedback(guess Word, feedback Pattern) (Suggestion, error) {
	if s.failed || s.solved {
		return Suggestion{}, ErrSessionFinished
	}

	remaining := Filter(s.possible, guess, feedback)
	s.history = append(s.history, Entry{Guess: guess, Feedback: feedback})
	s.possible = remaining

	switch len(remaining) {
	case 0:
		s.failed = true
		return Suggestion{}, ErrNoPossibleAnswers
	case 1:
		// Sole survivor: recommend it directly, no information left to gain.
		return Suggestion{Word: remaining[0]}, nil
	}
	return selectGuess(s.dict, s.possible, s.history, s.hard), nil
}

// selectGuess scores every eligible candidate against possible and returns
// the maximizer. Ties break to the first candidate in dictionary iteration
// order, which keeps recommendations deterministic.
//
// Normal mode considers the entire dictionary: probing a word known to be
// wrong can still split the candidates best. Hard mode considers the
// surviving candidates that honor the history; if none do (the last
// logically-possible answer can itself be inadmissible), it falls back to
// the whole dictionary filtered by legality; the chosen probe need not be
// a possible answer, which real hard-mode rules permit.
func selectGuess(dict, possible []Word, history []Entry, hardMode bool) Suggestion {
	candidates := dict
	if hardMode {
		legal := make([]Word, 0, len(possible))
		for _, w := range possible {
			if LegalGuess(w, history) {
				legal = append(legal, w)
			}
		}
		if len(legal) == 0 {
			for _, w := range dict {
				if LegalGuess(w, history) {
					legal = append(legal, w)
				}
			}
		}
		candidates = legal
	}

	best := Suggestion{Bits: -1}
	for _, g := range candidates {
		if bits := InformationGain(g, possible); bits > best.Bits {
			best = Suggestion{Word: g, Bits: bits}
		}
	}
	return best
}
