// cmd_solve.go
//
// Interactive co-solver loop.
// The user plays the suggested word in their Wordle client and reports the
// feedback as a 5-character G/Y/X string; the solver narrows the candidate
// answers and suggests the next guess until the puzzle is resolved.

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var (
	solveHard    bool
	solveNoColor bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Interactively co-solve a Wordle puzzle",
	Long: `Suggests the most informative word at each step. After playing a
suggestion, report the feedback as five characters over G (green),
Y (yellow), X (gray), e.g. GYXXY. Type 'solved' or 'yes' once the
puzzle is done, 'quit' to leave.

Set DATABASE_PATH to record finished solves in the history database.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&solveHard, "hard", false, "hard mode: every guess must honor all previous clues")
	solveCmd.Flags().BoolVar(&solveNoColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	dict, err := words.Load()
	if err != nil {
		return err
	}

	// Explicit colorizer configuration; no package-level color state.
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: solveNoColor,
		Reset:   true,
	}
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	sess := solver.New(dict.Words(), solveHard)
	started := time.Now().UTC()

	mode := "NORMAL MODE"
	if solveHard {
		mode = "HARD MODE"
	}
	fmt.Fprintln(out, c.Color("[bold][magenta]Wordle Co-Solver ("+mode+")"))
	fmt.Fprintln(out, c.Color("[cyan]=================================================="))
	fmt.Fprintln(out, "Feedback format: G=Green, Y=Yellow, X=Gray (e.g. GYXGY)")
	fmt.Fprintln(out, "Shortcuts: 'solved' or 'yes' = puzzle solved, 'quit' = exit")
	if solveHard {
		fmt.Fprintln(out, c.Color("[yellow]HARD MODE: all guesses must use information from previous guesses"))
	}
	fmt.Fprintln(out)

	sug := sess.InitialGuess()
	fmt.Fprintln(out, c.Color(fmt.Sprintf("[bold][green]Suggested starting word: [white]%s", sug.Word)))
	fmt.Fprintln(out, c.Color(fmt.Sprintf("[blue]Information gain: %.3f bits", sug.Bits)))

	current := sug.Word
	for {
		fmt.Fprintln(out, c.Color("[cyan]=================================================="))
		fmt.Fprint(out, "Enter feedback (G/Y/X) or 'solved': ")
		if !in.Scan() {
			return in.Err() // EOF ends the session
		}
		line := strings.TrimSpace(in.Text())

		switch strings.ToLower(line) {
		case "quit":
			return nil
		case "solved", "yes":
			congrats(out, c, sess.Steps()+1)
			recordCLISolve(cmd.Context(), sess, started, true, string(current))
			return nil
		}

		pattern, err := solver.ParsePattern(line)
		if err != nil {
			fmt.Fprintln(out, c.Color("[red]Error: feedback must be 5 characters of G, Y, or X"))
			continue
		}
		fmt.Fprintln(out, renderTiles(c, pattern))

		if pattern.AllGreen() {
			congrats(out, c, sess.Steps()+1)
			recordCLISolve(cmd.Context(), sess, started, true, string(current))
			return nil
		}

		sug, err = sess.ProcessFeedback(current, pattern)
		if errors.Is(err, solver.ErrNoPossibleAnswers) {
			fmt.Fprintln(out, c.Color("[red]No possible answers remain. The word list may be incomplete,"))
			fmt.Fprintln(out, c.Color("[red]or a feedback entry was mistyped. Try WORDLIST_FILE with a larger list."))
			recordCLISolve(cmd.Context(), sess, started, false, "")
			return nil
		}
		if err != nil {
			return err
		}

		printStats(out, c, sess, dict.Len())

		if sess.State() == solver.StateResolved {
			fmt.Fprintln(out, c.Color(fmt.Sprintf("[yellow]Only one solution remaining: [bold]%s", sug.Word)))
			fmt.Fprint(out, "Is this the correct solution? (yes/no): ")
			if in.Scan() && strings.HasPrefix(strings.ToLower(strings.TrimSpace(in.Text())), "y") {
				congrats(out, c, sess.Steps()+1)
				recordCLISolve(cmd.Context(), sess, started, true, string(sug.Word))
				return nil
			}
			fmt.Fprintln(out, c.Color("[red]Out of possible solutions. The word list may be incomplete."))
			recordCLISolve(cmd.Context(), sess, started, false, "")
			return nil
		}

		fmt.Fprintln(out, c.Color(fmt.Sprintf("[bold][green]Next suggested word: [white]%s", sug.Word)))
		fmt.Fprintln(out, c.Color(fmt.Sprintf("[blue]Information gain: %.3f bits", sug.Bits)))
		current = sug.Word
	}
}

// renderTiles draws the feedback as colored blocks.
func renderTiles(c colorstring.Colorize, p solver.Pattern) string {
	var b strings.Builder
	for _, m := range p {
		switch m {
		case solver.MarkGreen:
			b.WriteString(c.Color("[green]█"))
		case solver.MarkYellow:
			b.WriteString(c.Color("[yellow]█"))
		default:
			b.WriteString(c.Color("[dark_gray]█"))
		}
	}
	return b.String()
}

// printStats reports how much the latest feedback narrowed the field.
func printStats(out io.Writer, c colorstring.Colorize, sess *solver.Session, dictLen int) {
	possible := sess.Possible()
	remaining := len(possible)
	eliminated := dictLen - remaining
	pct := 100 * float64(eliminated) / float64(dictLen)

	fmt.Fprintln(out, c.Color("[cyan]Statistics:"))
	fmt.Fprintln(out, c.Color(fmt.Sprintf("  [blue]•[reset] Possible solutions: [bold]%d", remaining)))
	fmt.Fprintln(out, c.Color(fmt.Sprintf("  [blue]•[reset] Eliminated: [bold]%d[reset] (%.1f%%)", eliminated, pct)))
	if remaining <= 10 {
		strs := make([]string, remaining)
		for i, w := range possible {
			strs[i] = string(w)
		}
		fmt.Fprintln(out, c.Color("  [blue]•[reset] Solutions: [green]"+strings.Join(strs, ", ")))
	}
}

func congrats(out io.Writer, c colorstring.Colorize, steps int) {
	fmt.Fprintln(out, c.Color(fmt.Sprintf("[green]Puzzle solved in %d steps!", steps)))
}

// recordCLISolve writes the outcome to the history database when
// DATABASE_PATH is configured. Best effort; a missing or broken database
// never fails the solve.
func recordCLISolve(ctx context.Context, sess *solver.Session, started time.Time, solved bool, answer string) {
	dsn := getEnv("DATABASE_PATH", "")
	if dsn == "" {
		return
	}
	hist, err := newDBHistory(dsn)
	if err != nil {
		log.Warn().Err(err).Msg("open history database")
		return
	}
	defer hist.Close()

	mode := "normal"
	if sess.HardMode() {
		mode = "hard"
	}
	err = hist.InsertSolve(ctx, store.SolveRecord{
		ID:         randomID(),
		Mode:       mode,
		Steps:      sess.Steps(),
		Solved:     solved,
		Answer:     answer,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("record solve")
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
