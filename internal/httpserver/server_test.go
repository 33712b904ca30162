package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/chainbot/internal/game"
	"github.com/robalobadob/chainbot/internal/store"
)

type fakeState struct {
	cfg *store.GameConfig
}

func (f fakeState) Scoreboard() *game.Scoreboard {
	b := f.cfg.Points.Clone()
	return &b
}
func (f fakeState) Snapshot() *store.GameConfig { return f.cfg.Clone() }

type size int

func (n size) Len() int { return int(n) }

func newTestServer(t *testing.T, cfg *store.GameConfig) *Server {
	t.Helper()
	return New(fakeState{cfg: cfg}, size(120), size(7))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestKeepAlive(t *testing.T) {
	s := newTestServer(t, store.Default())

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bot is running", rec.Body.String())

	rec = get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestWordStats(t *testing.T) {
	rec := get(t, newTestServer(t, store.Default()), "/debug/words")
	assert.JSONEq(t, `{"dictionary":120,"blocked":7}`, rec.Body.String())
}

func TestScoreboardRanked(t *testing.T) {
	cfg := store.Default()
	cfg.Points.Add(1, 2)
	cfg.Points.Add(2, 5)
	cfg.Points.Add(3, 2)

	rec := get(t, newTestServer(t, cfg), "/scoreboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []game.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []game.Entry{{UserID: 2, Score: 5}, {UserID: 1, Score: 2}, {UserID: 3, Score: 2}}, got)
}

func TestScoreboardEmpty(t *testing.T) {
	rec := get(t, newTestServer(t, store.Default()), "/scoreboard")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBindings(t *testing.T) {
	cfg := store.Default()
	ch, last := int64(9007199254740993), int64(4)
	cfg.CountingChannelID = &ch
	cfg.LastNumber = &last

	rec := get(t, newTestServer(t, cfg), "/bindings")
	assert.JSONEq(t, `{"counting":"9007199254740993","lastNumber":4}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	rec := get(t, newTestServer(t, store.Default()), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
