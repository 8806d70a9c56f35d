// internal/rank/rank.go
//
// Batch starting-word analysis.
//
// Ranks every dictionary word as an opening move: expected information
// gain against the full dictionary, letter statistics, how evenly the
// word splits the answer space, and (optionally) how constraining it is
// under hard-mode rules across a set of canonical feedback scenarios.
//
// The per-word scores are independent pure computations, so the fan-out
// runs them in parallel; the engine itself stays sequential.
package rank

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Analysis is the scorecard for one starting word.
type Analysis struct {
	Word solver.Word `json:"word"`

	// InformationGain is the expected entropy reduction, in bits, of
	// playing the word first.
	InformationGain float64 `json:"informationGain"`

	Vowels     int `json:"vowels"`
	Consonants int `json:"consonants"`

	// FrequencyScore sums English letter frequencies over the word's
	// letters; higher means more common letters.
	FrequencyScore float64 `json:"frequencyScore"`

	// SplitEfficiency is 1 − (largest feedback group / dictionary size):
	// how well the word avoids leaving one huge candidate bucket.
	SplitEfficiency float64 `json:"splitEfficiency"`

	// HardModeScore is the mean number of legal follow-up guesses across
	// the canonical feedback scenarios. Lower is better: a constraining
	// opener leaves fewer admissible words. Zero when scenario analysis
	// is disabled.
	HardModeScore float64 `json:"hardModeScore,omitempty"`
}

// Options configures a ranking run.
type Options struct {
	// HardScenarios enables the hard-mode scenario analysis (8 extra
	// legality sweeps per word).
	HardScenarios bool

	// Progress, if set, is called after each word completes with the
	// total number of completed words. Must be safe for concurrent use.
	Progress func(done int)

	// Workers bounds the fan-out; defaults to GOMAXPROCS.
	Workers int
}

// English letter frequency, percent. Same table the analyzer has always
// used; only relative order matters.
var letterFrequency = [26]float64{
	'A' - 'A': 8.2, 'B' - 'A': 1.5, 'C' - 'A': 2.8, 'D' - 'A': 4.3,
	'E' - 'A': 12.0, 'F' - 'A': 2.2, 'G' - 'A': 2.0, 'H' - 'A': 6.1,
	'I' - 'A': 7.0, 'J' - 'A': 0.15, 'K' - 'A': 0.77, 'L' - 'A': 4.0,
	'M' - 'A': 2.4, 'N' - 'A': 6.7, 'O' - 'A': 7.5, 'P' - 'A': 1.9,
	'Q' - 'A': 0.10, 'R' - 'A': 6.0, 'S' - 'A': 6.3, 'T' - 'A': 9.1,
	'U' - 'A': 2.8, 'V' - 'A': 0.98, 'W' - 'A': 2.4, 'X' - 'A': 0.15,
	'Y' - 'A': 2.0, 'Z' - 'A': 0.07,
}

// Canonical first-guess feedback shapes used to probe hard-mode behavior.
var hardScenarios = []string{
	"XXXXX", // all gray
	"XXYXX", // one yellow in the middle
	"GXXXX", // one green at the start
	"XXGXX", // one green in the middle
	"YXXXX", // one yellow at the start
	"GGXXX", // two greens at the start
	"XXGGX", // two greens in the middle
	"GXGXX", // two greens separated
}

// RankStartingWords scores every dictionary word as an opening move and
// returns the results sorted by information gain, descending. Ties keep
// dictionary order, so the ranking is deterministic.
func RankStartingWords(ctx context.Context, dict *words.Dictionary, opts Options) ([]Analysis, error) {
	all := dict.Words()
	results := make([]Analysis, len(all))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, w := range all {
		i, w := i, w
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = analyzeWord(w, all, opts.HardScenarios)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].InformationGain > results[b].InformationGain
	})
	return results, nil
}

// analyzeWord builds the full scorecard for one word against the
// dictionary.
func analyzeWord(w solver.Word, all []solver.Word, hardScen bool) Analysis {
	a := Analysis{
		Word:            w,
		InformationGain: solver.InformationGain(w, all),
	}

	for i := 0; i < solver.WordLen; i++ {
		c := w[i]
		a.FrequencyScore += letterFrequency[c-'A']
		switch c {
		case 'A', 'E', 'I', 'O', 'U':
			a.Vowels++
		default:
			a.Consonants++
		}
	}

	// Largest feedback bucket → split efficiency.
	groups := make(map[solver.Pattern]int)
	for _, answer := range all {
		groups[solver.Score(w, answer)]++
	}
	maxGroup := 0
	for _, c := range groups {
		if c > maxGroup {
			maxGroup = c
		}
	}
	a.SplitEfficiency = 1 - float64(maxGroup)/float64(len(all))

	if hardScen {
		a.HardModeScore = hardModeScore(w, all)
	}
	return a
}

// hardModeScore plays each canonical scenario as the first history entry
// and counts the dictionary words that remain legal hard-mode guesses,
// averaged over scenarios.
func hardModeScore(w solver.Word, all []solver.Word) float64 {
	total := 0
	for _, scen := range hardScenarios {
		p, err := solver.ParsePattern(scen)
		if err != nil {
			// Scenarios are package constants; a bad one is a programming
			// error, not a runtime condition.
			panic(err)
		}
		history := []solver.Entry{{Guess: w, Feedback: p}}
		for _, cand := range all {
			if solver.LegalGuess(cand, history) {
				total++
			}
		}
	}
	return float64(total) / float64(len(hardScenarios))
}

// Balanced returns the words present in both the top-N by information
// gain and the top-N by hard-mode score (ascending: fewer legal
// follow-ups is better), preserving information-gain order. Results must
// come from a run with HardScenarios enabled.
func Balanced(results []Analysis, topN int) []Analysis {
	if topN > len(results) {
		topN = len(results)
	}

	byHard := append([]Analysis(nil), results...)
	sort.SliceStable(byHard, func(a, b int) bool {
		return byHard[a].HardModeScore < byHard[b].HardModeScore
	})
	topHard := make(map[solver.Word]struct{}, topN)
	for _, r := range byHard[:topN] {
		topHard[r.Word] = struct{}{}
	}

	var out []Analysis
	for _, r := range results[:topN] {
		if _, ok := topHard[r.Word]; ok {
			out = append(out, r)
		}
	}
	return out
}
