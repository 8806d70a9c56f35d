package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordle-solver",
	Short: "Information-theoretic Wordle co-solver",
	Long: `wordle-solver suggests the guess that maximizes expected information
gain at each step of a Wordle puzzle, narrowing the candidate answers
from the feedback you report.

Commands: solve (interactive co-solver), analyze (rank starting words),
serve (HTTP API).`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
