// cmd_analyze.go
//
// Batch starting-word report: ranks every dictionary word as an opening
// move for both normal and hard mode and prints the top picks.

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/rank"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var (
	analyzeTop     int
	analyzeNoColor bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank every dictionary word as a starting guess",
	Long: `Scores each word's expected information gain against the full
dictionary, plus letter statistics and hard-mode constraint strength,
and reports the best openers for normal and hard mode.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 20, "how many words to show per table")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dict, err := words.Load()
	if err != nil {
		return err
	}

	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: analyzeNoColor,
		Reset:   true,
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, c.Color(fmt.Sprintf("[bold][magenta]Analyzing %d starting words", dict.Len())))
	bar := progressbar.Default(int64(dict.Len()))

	results, err := rank.RankStartingWords(cmd.Context(), dict, rank.Options{
		HardScenarios: true,
		Progress:      func(done int) { _ = bar.Set(done) },
	})
	if err != nil {
		return err
	}
	_ = bar.Finish()
	fmt.Fprintln(out)

	top := analyzeTop
	if top > len(results) {
		top = len(results)
	}

	// Normal mode: highest information gain first (already sorted).
	fmt.Fprintln(out, c.Color("[bold][green]Top starting words (normal mode, by information gain):"))
	for i, r := range results[:top] {
		fmt.Fprintln(out, c.Color(fmt.Sprintf("%2d. [bold]%s[reset]  [blue]%.3f bits[reset]  vowels=%d  freq=%.1f  split=%.3f",
			i+1, r.Word, r.InformationGain, r.Vowels, r.FrequencyScore, r.SplitEfficiency)))
	}
	fmt.Fprintln(out)

	// Hard mode: fewest legal follow-up guesses first.
	byHard := append([]rank.Analysis(nil), results...)
	sort.SliceStable(byHard, func(a, b int) bool {
		return byHard[a].HardModeScore < byHard[b].HardModeScore
	})
	fmt.Fprintln(out, c.Color("[bold][yellow]Top starting words (hard mode, by constraint strength):"))
	for i, r := range byHard[:top] {
		fmt.Fprintln(out, c.Color(fmt.Sprintf("%2d. [bold]%s[reset]  [yellow]%.1f avg legal follow-ups[reset]  [blue]%.3f bits",
			i+1, r.Word, r.HardModeScore, r.InformationGain)))
	}
	fmt.Fprintln(out)

	if balanced := rank.Balanced(results, 50); len(balanced) > 0 {
		fmt.Fprintln(out, c.Color("[bold][cyan]Balanced picks (strong in both modes):"))
		for _, r := range balanced {
			fmt.Fprintln(out, c.Color(fmt.Sprintf("  [bold]%s[reset]: [blue]%.3f bits[reset], [yellow]%.1f avg legal follow-ups",
				r.Word, r.InformationGain, r.HardModeScore)))
		}
		fmt.Fprintln(out)
	}

	printVerdict(out, c, results[0], byHard[0])
	return nil
}

// printVerdict summarizes the single best opener per mode.
func printVerdict(out io.Writer, c colorstring.Colorize, bestNormal, bestHard rank.Analysis) {
	fmt.Fprintln(out, c.Color("[bold]Verdict:"))
	fmt.Fprintln(out, c.Color(fmt.Sprintf("  Normal mode: [bold]%s[reset] with [blue]%.3f bits", bestNormal.Word, bestNormal.InformationGain)))
	fmt.Fprintln(out, c.Color(fmt.Sprintf("  Hard mode:   [bold]%s[reset] with [yellow]%.1f avg legal follow-ups", bestHard.Word, bestHard.HardModeScore)))
	if bestNormal.Word == bestHard.Word {
		fmt.Fprintln(out, c.Color("  [green]One word rules both modes."))
	}
}
