// internal/httpserver/server.go
//
// HTTP wiring for the co-solver API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/rank", "/history", "/debug/words".
//   - Session endpoints: POST /solver/new, POST /solver/feedback,
//     POST /solver/reset, GET /solver/{id}.
//   - Session tokens: a JWT minted at session creation scopes all further
//     mutation of that session to its creator.
//   - Best-effort persistence of finished solves.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - A solver session is single-owner; handlers lock the store record
//     around every session call.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/rank"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Server bundles router, dictionary, live-session store, and solve history.
type Server struct {
	r        *chi.Mux
	dict     *words.Dictionary
	sessions store.Store
	history  store.SolveHistory // nil disables /history and persistence

	rankMu    sync.Mutex
	rankCache map[string][]rank.Analysis
}

// New constructs a Server, installs middleware, and registers routes.
func New(dict *words.Dictionary, sessions store.Store, history store.SolveHistory) *Server {
	s := &Server{
		r:         chi.NewRouter(),
		dict:      dict,
		sessions:  sessions,
		history:   history,
		rankCache: map[string][]rank.Analysis{},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time (first /rank is the slow one)
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /solver/new","POST /solver/feedback","POST /solver/reset","GET /solver/{id}","GET /rank","GET /history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Session lifecycle
	s.r.Post("/solver/new", s.handleNewSession)
	s.r.Post("/solver/feedback", s.handleFeedback)
	s.r.Post("/solver/reset", s.handleReset)
	s.r.Get("/solver/{id}", s.handleGetSession)

	// Batch analysis + history
	s.r.Get("/rank", s.handleRank)
	s.r.Get("/history", s.handleHistory)

	// Debug: dictionary size
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": dict.Len()})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- sessions ------------------------------------

// newSessionReq/Res payloads for POST /solver/new.
type newSessionReq struct {
	Hard bool `json:"hard"`
}
type newSessionRes struct {
	SessionID  string  `json:"sessionId"`
	Token      string  `json:"token"`
	Suggestion string  `json:"suggestion"`
	Bits       float64 `json:"bits"`
	Remaining  int     `json:"remaining"`
	State      string  `json:"state"`
}

// handleNewSession constructs a solver session, mints its token, and
// returns the opening recommendation.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess := solver.New(s.dict.Words(), req.Hard)
	rec := &store.Record{ID: genID(), Session: sess, CreatedAt: time.Now().UTC()}
	if err := s.sessions.Put(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, err := signSessionToken(rec.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	sug := sess.InitialGuess()
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID:  rec.ID,
		Token:      tok,
		Suggestion: string(sug.Word),
		Bits:       sug.Bits,
		Remaining:  s.dict.Len(),
		State:      string(sess.State()),
	})
}

// feedbackReq/Res payloads for POST /solver/feedback.
type feedbackReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Feedback  string `json:"feedback"` // 5 chars over G/Y/X
}
type feedbackRes struct {
	Suggestion string   `json:"suggestion,omitempty"`
	Bits       float64  `json:"bits"`
	State      string   `json:"state"`
	Remaining  int      `json:"remaining"`
	Possible   []string `json:"possible,omitempty"` // listed when few remain
}

// handleFeedback records observed feedback for a session and returns the
// next recommendation. Input is validated before the session is touched.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec, ok := s.authorizedSession(w, r, req.SessionID)
	if !ok {
		return
	}

	guess, err := solver.ParseWord(req.Guess)
	if err != nil {
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
		return
	}
	pattern, err := solver.ParsePattern(req.Feedback)
	if err != nil {
		http.Error(w, `{"error":"invalid_feedback"}`, http.StatusBadRequest)
		return
	}

	rec.Lock()
	defer rec.Unlock()

	// All green means the played word was the answer; no filtering needed.
	if pattern.AllGreen() {
		rec.Session.MarkSolved()
		s.recordSolve(r, rec, true, string(guess))
		_ = json.NewEncoder(w).Encode(feedbackRes{
			State:     string(solver.StateResolved),
			Remaining: 1,
			Possible:  []string{string(guess)},
		})
		return
	}

	sug, err := rec.Session.ProcessFeedback(guess, pattern)
	switch {
	case errors.Is(err, solver.ErrNoPossibleAnswers):
		// Distinct from a resolved session: the dictionary is incomplete
		// or a feedback entry was recorded wrong.
		s.recordSolve(r, rec, false, "")
		http.Error(w, `{"error":"no_possible_answers"}`, http.StatusConflict)
		return
	case errors.Is(err, solver.ErrSessionFinished):
		http.Error(w, `{"error":"session_finished"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	state := rec.Session.State()
	if state == solver.StateResolved {
		s.recordSolve(r, rec, true, string(sug.Word))
	}

	res := feedbackRes{
		Suggestion: string(sug.Word),
		Bits:       sug.Bits,
		State:      string(state),
		Remaining:  len(rec.Session.Possible()),
	}
	if possible := rec.Session.Possible(); len(possible) <= 10 {
		for _, p := range possible {
			res.Possible = append(res.Possible, string(p))
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// resetReq payload for POST /solver/reset.
type resetReq struct {
	SessionID string `json:"sessionId"`
}

// handleReset returns a session to fresh and re-issues the opening guess.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rec, ok := s.authorizedSession(w, r, req.SessionID)
	if !ok {
		return
	}

	rec.Lock()
	defer rec.Unlock()
	rec.Session.Reset()
	sug := rec.Session.InitialGuess()
	_ = json.NewEncoder(w).Encode(feedbackRes{
		Suggestion: string(sug.Word),
		Bits:       sug.Bits,
		State:      string(rec.Session.State()),
		Remaining:  s.dict.Len(),
	})
}

// sessionSnapshot is the GET /solver/{id} response.
type sessionSnapshot struct {
	SessionID string         `json:"sessionId"`
	Hard      bool           `json:"hard"`
	State     string         `json:"state"`
	Steps     int            `json:"steps"`
	Remaining int            `json:"remaining"`
	History   []historyEntry `json:"history"`
}
type historyEntry struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}

// handleGetSession returns a read-only snapshot of a session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.authorizedSession(w, r, id)
	if !ok {
		return
	}

	rec.Lock()
	defer rec.Unlock()
	snap := sessionSnapshot{
		SessionID: rec.ID,
		Hard:      rec.Session.HardMode(),
		State:     string(rec.Session.State()),
		Steps:     rec.Session.Steps(),
		Remaining: len(rec.Session.Possible()),
		History:   []historyEntry{},
	}
	for _, e := range rec.Session.History() {
		snap.History = append(snap.History, historyEntry{
			Guess:    string(e.Guess),
			Feedback: e.Feedback.String(),
		})
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// ------------------------------- ranking -----------------------------------

// handleRank serves the starting-word ranking. The full ranking is a pure
// function of the dictionary and mode, so it is computed once and cached.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode != "hard" {
		mode = "normal"
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	results, err := s.rankedWords(r, mode)
	if err != nil {
		log.Error().Err(err).Str("mode", mode).Msg("rank starting words")
		http.Error(w, `{"error":"rank_failed"}`, http.StatusInternalServerError)
		return
	}
	if limit > len(results) {
		limit = len(results)
	}
	_ = json.NewEncoder(w).Encode(results[:limit])
}

// rankedWords computes (or returns the cached) ranking for a mode.
func (s *Server) rankedWords(r *http.Request, mode string) ([]rank.Analysis, error) {
	s.rankMu.Lock()
	defer s.rankMu.Unlock()
	if cached, ok := s.rankCache[mode]; ok {
		return cached, nil
	}
	results, err := rank.RankStartingWords(r.Context(), s.dict, rank.Options{
		HardScenarios: mode == "hard",
	})
	if err != nil {
		return nil, err
	}
	s.rankCache[mode] = results
	return results, nil
}

// ------------------------------- history -----------------------------------

// handleHistory lists recent finished solves.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, `{"error":"history_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	recs, err := s.history.RecentSolves(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent solves")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []store.SolveRecord{}
	}
	_ = json.NewEncoder(w).Encode(recs)
}

// recordSolve persists a finished session outcome (best effort, non-fatal
// if it fails). Caller holds the record lock.
func (s *Server) recordSolve(r *http.Request, rec *store.Record, solved bool, answer string) {
	if s.history == nil {
		return
	}
	mode := "normal"
	if rec.Session.HardMode() {
		mode = "hard"
	}
	err := s.history.InsertSolve(r.Context(), store.SolveRecord{
		ID:         rec.ID,
		Mode:       mode,
		Steps:      rec.Session.Steps(),
		Solved:     solved,
		Answer:     answer,
		StartedAt:  rec.CreatedAt,
		FinishedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("sessionId", rec.ID).Msg("record solve")
	}
}

// --------------------------- session tokens --------------------------------

// authorizedSession resolves a session record and enforces that the
// caller's token was minted for it. Writes the error response itself and
// returns ok=false when the caller should stop.
func (s *Server) authorizedSession(w http.ResponseWriter, r *http.Request, id string) (*store.Record, bool) {
	if id == "" {
		http.Error(w, `{"error":"missing_session_id"}`, http.StatusBadRequest)
		return nil, false
	}
	sid, err := verifySessionToken(bearerToken(r))
	if err != nil || sid != id {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return nil, false
	}
	rec, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return rec, true
}

// signSessionToken creates an HS256 JWT scoped to one session ID.
// Expiry is configurable via SESSION_TTL_HOURS (default 24).
func signSessionToken(sessionID string) (string, error) {
	hours := 24
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	return t.SignedString([]byte(jwtSecret()))
}

// verifySessionToken validates a session JWT and returns its session ID.
func verifySessionToken(token string) (string, error) {
	if token == "" {
		return "", errors.New("missing token")
	}
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("invalid token")
	}
	return sid, nil
}

func jwtSecret() string {
	return getEnv("JWT_SECRET", "dev_secret_change_me")
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------- small util --------------------------------

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
