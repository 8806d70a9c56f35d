// internal/solver/feedback.go
//
// Feedback oracle for the co-solver.
// Responsibilities:
//   - Word: validated uppercase 5-letter value type.
//   - Mark / Pattern: per-letter feedback and the 5-tile result.
//   - Score: the classic two-pass Wordle scoring algorithm.
//   - Pattern encoding: "GYXGY" strings exchanged with callers.
//
// Notes:
//   - Score is a pure function; Pattern is comparable so it can key maps
//     directly (the entropy scorer groups answers by it).
//   - Duplicate letters are resolved with a per-letter remaining-count
//     array: each physical answer letter is claimed at most once.
package solver

import "strings"

// WordLen is the fixed word and pattern length.
const WordLen = 5

// Word is an uppercase 5-letter dictionary word. Construct with ParseWord;
// a zero-value Word is not valid.
type Word string

// ParseWord normalizes s to uppercase and validates it.
// Returns ErrWordLength unless s is exactly 5 ASCII letters.
func ParseWord(s string) (Word, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != WordLen {
		return "", ErrWordLength
	}
	for i := 0; i < WordLen; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", ErrWordLength
		}
	}
	return Word(s), nil
}

// Mark is the evaluation of a single guess letter.
type Mark uint8

const (
	// MarkGray: this occurrence of the letter is not in the answer.
	MarkGray Mark = iota
	// MarkYellow: letter is in the answer at a different position.
	MarkYellow
	// MarkGreen: letter is correct and correctly placed.
	MarkGreen
)

// Pattern is the feedback for one guess, positionally aligned to it.
type Pattern [WordLen]Mark

// AllGreen reports whether every tile is green (the guess was the answer).
func (p Pattern) AllGreen() bool {
	for _, m := range p {
		if m != MarkGreen {
			return false
		}
	}
	return true
}

// String encodes the pattern as 5 characters over {G, Y, X}.
func (p Pattern) String() string {
	var b [WordLen]byte
	for i, m := range p {
		switch m {
		case MarkGreen:
			b[i] = 'G'
		case MarkYellow:
			b[i] = 'Y'
		default:
			b[i] = 'X'
		}
	}
	return string(b[:])
}

// ParsePattern decodes a 5-character feedback string over {G, Y, X},
// case-insensitive. Returns ErrFeedbackEncoding on anything else.
func ParsePattern(s string) (Pattern, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var p Pattern
	if len(s) != WordLen {
		return p, ErrFeedbackEncoding
	}
	for i := 0; i < WordLen; i++ {
		switch s[i] {
		case 'G':
			p[i] = MarkGreen
		case 'Y':
			p[i] = MarkYellow
		case 'X':
			p[i] = MarkGray
		default:
			return Pattern{}, ErrFeedbackEncoding
		}
	}
	return p, nil
}

// Score computes official Wordle feedback for guess against answer.
//
// Pass 1:
//   - Mark exact matches green.
//   - Count remaining (non-green) answer letters by letter index.
//
// Pass 2:
//   - For each non-green guess letter: if there is remaining count for that
//     letter, mark yellow and decrement; otherwise mark gray.
//
// This resolves repeated letters greedily left-to-right: a guess never
// claims more copies of a letter than the answer contains.
func Score(guess, answer Word) Pattern {
	var p Pattern
	var counts [26]int

	for i := 0; i < WordLen; i++ {
		if guess[i] == answer[i] {
			p[i] = MarkGreen
		} else {
			counts[answer[i]-'A']++
		}
	}
	for i := 0; i < WordLen; i++ {
		if p[i] == MarkGreen {
			continue
		}
		j := guess[i] - 'A'
		if counts[j] > 0 {
			p[i] = MarkYellow
			counts[j]--
		} else {
			p[i] = MarkGray
		}
	}
	return p
}
