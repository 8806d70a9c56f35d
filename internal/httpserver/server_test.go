package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// fakeHistory is an in-memory store.SolveHistory for handler tests.
type fakeHistory struct {
	mu   sync.Mutex
	recs []store.SolveRecord
}

func (f *fakeHistory) InsertSolve(ctx context.Context, rec store.SolveRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeHistory) RecentSolves(ctx context.Context, limit int) ([]store.SolveRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.recs) {
		limit = len(f.recs)
	}
	return append([]store.SolveRecord(nil), f.recs[:limit]...), nil
}

func (f *fakeHistory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

func (f *fakeHistory) last() store.SolveRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recs[len(f.recs)-1]
}

// newTestServer builds a server over a tiny deterministic dictionary:
// APPLE splits {STOCK, APPLE, AMPLE} into singletons, so it is always the
// opening suggestion.
func newTestServer(t *testing.T) (*Server, *fakeHistory) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dict, err := words.New([]string{"STOCK", "APPLE", "AMPLE"})
	require.NoError(t, err)

	hist := &fakeHistory{}
	return New(dict, store.NewMemoryStore(), hist), hist
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(w.Body).Decode(out))
	}
	return w
}

func newSession(t *testing.T, srv *Server, hard bool) newSessionRes {
	t.Helper()
	var res newSessionRes
	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/new", "", newSessionReq{Hard: hard}, &res)
	require.Equal(t, http.StatusOK, w.Code)
	return res
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestNewSession(t *testing.T) {
	srv, _ := newTestServer(t)
	res := newSession(t, srv, false)

	assert.NotEmpty(t, res.SessionID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "APPLE", res.Suggestion)
	assert.Greater(t, res.Bits, 1.5)
	assert.Equal(t, 3, res.Remaining)
	assert.Equal(t, "fresh", res.State)
}

func TestFeedbackRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)
	res := newSession(t, srv, false)

	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", "",
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "XXXXX"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeedbackTokenScopedToSession(t *testing.T) {
	srv, _ := newTestServer(t)
	a := newSession(t, srv, false)
	b := newSession(t, srv, false)

	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", a.Token,
		feedbackReq{SessionID: b.SessionID, Guess: "APPLE", Feedback: "XXXXX"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeedbackValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	res := newSession(t, srv, false)

	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "notaword", Feedback: "XXXXX"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_word")

	w = doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "GGQGG"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_feedback")
}

func TestFeedbackResolvesSession(t *testing.T) {
	srv, hist := newTestServer(t)
	res := newSession(t, srv, false)

	// feedback(APPLE, AMPLE) = GXGGG: AMPLE is the sole survivor.
	var fb feedbackRes
	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "GXGGG"}, &fb)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "AMPLE", fb.Suggestion)
	assert.Zero(t, fb.Bits)
	assert.Equal(t, "resolved", fb.State)
	assert.Equal(t, 1, fb.Remaining)
	assert.Equal(t, []string{"AMPLE"}, fb.Possible)

	require.Equal(t, 1, hist.count())
	rec := hist.last()
	assert.True(t, rec.Solved)
	assert.Equal(t, "AMPLE", rec.Answer)
	assert.Equal(t, "normal", rec.Mode)
	assert.Equal(t, 1, rec.Steps)
}

func TestFeedbackAllGreen(t *testing.T) {
	srv, hist := newTestServer(t)
	res := newSession(t, srv, false)

	var fb feedbackRes
	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "GGGGG"}, &fb)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "resolved", fb.State)
	assert.Equal(t, []string{"APPLE"}, fb.Possible)
	require.Equal(t, 1, hist.count())
	assert.True(t, hist.last().Solved)
	assert.Equal(t, "APPLE", hist.last().Answer)
}

func TestFeedbackNoPossibleAnswers(t *testing.T) {
	srv, hist := newTestServer(t)
	res := newSession(t, srv, false)

	// All-yellow APPLE feedback contradicts every dictionary word.
	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "YYYYY"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no_possible_answers")

	require.Equal(t, 1, hist.count())
	assert.False(t, hist.last().Solved)
	assert.Empty(t, hist.last().Answer)
}

func TestGetSessionSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)
	res := newSession(t, srv, false)

	doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "GXGGG"}, &feedbackRes{})

	var snap sessionSnapshot
	w := doJSON(t, srv.Router(), http.MethodGet, "/solver/"+res.SessionID, res.Token, nil, &snap)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, res.SessionID, snap.SessionID)
	assert.False(t, snap.Hard)
	assert.Equal(t, "resolved", snap.State)
	assert.Equal(t, 1, snap.Steps)
	assert.Equal(t, 1, snap.Remaining)
	require.Len(t, snap.History, 1)
	assert.Equal(t, historyEntry{Guess: "APPLE", Feedback: "GXGGG"}, snap.History[0])
}

func TestResetSession(t *testing.T) {
	srv, _ := newTestServer(t)
	res := newSession(t, srv, false)

	doJSON(t, srv.Router(), http.MethodPost, "/solver/feedback", res.Token,
		feedbackReq{SessionID: res.SessionID, Guess: "APPLE", Feedback: "GXGGG"}, &feedbackRes{})

	var fb feedbackRes
	w := doJSON(t, srv.Router(), http.MethodPost, "/solver/reset", res.Token,
		resetReq{SessionID: res.SessionID}, &fb)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "fresh", fb.State)
	assert.Equal(t, 3, fb.Remaining)
	assert.Equal(t, "APPLE", fb.Suggestion)
}

func TestRank(t *testing.T) {
	srv, _ := newTestServer(t)

	var results []map[string]any
	w := doJSON(t, srv.Router(), http.MethodGet, "/rank?limit=2", "", nil, &results)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, results, 2)

	first := results[0]["informationGain"].(float64)
	second := results[1]["informationGain"].(float64)
	assert.GreaterOrEqual(t, first, second)
	assert.Equal(t, "APPLE", results[0]["word"])
}

func TestRankHardMode(t *testing.T) {
	srv, _ := newTestServer(t)

	var results []map[string]any
	w := doJSON(t, srv.Router(), http.MethodGet, "/rank?mode=hard&limit=3", "", nil, &results)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Greater(t, r["hardModeScore"].(float64), 0.0)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, hist := newTestServer(t)
	require.NoError(t, hist.InsertSolve(context.Background(), store.SolveRecord{
		ID: "abc", Mode: "normal", Steps: 3, Solved: true, Answer: "AMPLE",
	}))

	var recs []store.SolveRecord
	w := doJSON(t, srv.Router(), http.MethodGet, "/history", "", nil, &recs)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, recs, 1)
	assert.Equal(t, "abc", recs[0].ID)
}

func TestHistoryUnavailable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	dict, err := words.New([]string{"STOCK", "APPLE", "AMPLE"})
	require.NoError(t, err)
	srv := New(dict, store.NewMemoryStore(), nil)

	w := doJSON(t, srv.Router(), http.MethodGet, "/history", "", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDebugWords(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/debug/words", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"words":3}`, w.Body.String())
}

func TestNotFoundIsJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/nope", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}
