// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Load the candidate-answer dictionary from an environment-provided
//     file or fall back to the embedded default list.
//   - Normalize to uppercase, discard blank lines and # comments, reject
//     malformed words, de-duplicate while preserving order.
//
// Environment variables:
//   WORDLIST_FILE=/path/to/words.txt
//
// Constraints:
//   • Every word must be exactly 5 letters A–Z (after normalization);
//     anything else is a load error, not a silent skip.
//   • The dictionary is immutable once loaded; sessions share it.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle-solver/assets"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

// ErrDictionaryLoad wraps any failure to produce a usable dictionary:
// missing resource, empty list, or a malformed word.
var ErrDictionaryLoad = errors.New("words: dictionary load failed")

// Dictionary is an ordered set of unique uppercase 5-letter words: the
// universe of candidate answers and (in normal mode) candidate guesses.
type Dictionary struct {
	words []solver.Word
	index map[solver.Word]struct{}
}

// Load builds the dictionary from WORDLIST_FILE if set, otherwise from
// the embedded default list.
func Load() (*Dictionary, error) {
	if path := os.Getenv("WORDLIST_FILE"); path != "" {
		return LoadFile(path)
	}
	return parse(strings.NewReader(assets.Wordlist), "embedded wordlist")
}

// LoadFile builds the dictionary from a newline-separated word file.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDictionaryLoad, err)
	}
	defer f.Close()
	return parse(f, path)
}

// New builds a dictionary from an in-memory word list. Used by tests and
// by callers that already hold a list.
func New(list []string) (*Dictionary, error) {
	return build(list, "word list")
}

// parse reads one word per line from r, skipping blank lines and
// # comments.
func parse(r io.Reader, source string) (*Dictionary, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDictionaryLoad, source, err)
	}
	return build(lines, source)
}

func build(list []string, source string) (*Dictionary, error) {
	d := &Dictionary{index: make(map[solver.Word]struct{}, len(list))}
	for _, s := range list {
		w, err := solver.ParseWord(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: invalid word %q", ErrDictionaryLoad, source, s)
		}
		if _, dup := d.index[w]; dup {
			continue
		}
		d.index[w] = struct{}{}
		d.words = append(d.words, w)
	}
	if len(d.words) == 0 {
		return nil, fmt.Errorf("%w: %s: no words", ErrDictionaryLoad, source)
	}
	return d, nil
}

// Words returns the dictionary in load order. The slice is shared; callers
// must not modify it.
func (d *Dictionary) Words() []solver.Word { return d.words }

// Contains reports whether w is in the dictionary.
func (d *Dictionary) Contains(w solver.Word) bool {
	_, ok := d.index[w]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }
