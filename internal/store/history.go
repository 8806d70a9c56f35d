// internal/store/history.go
//
// Finished-solve history. Write-only from the engine's point of view:
// collaborators record outcomes here for reporting; the solver never
// reads it back.
package store

import (
	"context"
	"time"
)

// SolveRecord is the outcome of one finished solving session.
type SolveRecord struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"` // "normal" | "hard"
	Steps      int       `json:"steps"`
	Solved     bool      `json:"solved"`
	Answer     string    `json:"answer,omitempty"` // empty when the solve failed
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// SolveHistory persists finished solves. Implemented on SQLite by the
// main package; tests substitute fakes.
type SolveHistory interface {
	InsertSolve(ctx context.Context, rec SolveRecord) error
	RecentSolves(ctx context.Context, limit int) ([]SolveRecord, error)
}
