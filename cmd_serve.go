package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the solver HTTP API",
	Long: `Serve the co-solver over HTTP: session lifecycle, starting-word
ranking, and solve history.

Environment: PORT (default 5175), DATABASE_PATH (default ./data/solver.db),
WORDLIST_FILE, JWT_SECRET, CLIENT_ORIGIN, LOG_LEVEL.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	dict, err := words.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load word list")
		return err
	}

	hist, err := newDBHistory(getEnv("DATABASE_PATH", "./data/solver.db"))
	if err != nil {
		log.Error().Err(err).Msg("failed to open history database")
		return err
	}
	defer hist.Close()

	srv := httpserver.New(dict, store.NewMemoryStore(), hist)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("words", dict.Len()).Msg("starting wordle-solver API")
	return srv.Start(":" + port)
}
