// internal/httpserver/server.go
//
// HTTP keep-alive and read-only diagnostics for the bot process.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Keep-alive endpoints: "/", "/health" (hosting platforms ping these).
//   - Diagnostics: "/debug/words", "/scoreboard", "/bindings".
//
// Notes:
//   - Nothing here mutates game state; bindings change only through slash commands.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/chainbot/internal/game"
	"github.com/robalobadob/chainbot/internal/store"
)

// State is the read side of the dispatcher.
type State interface {
	Scoreboard() *game.Scoreboard
	Snapshot() *store.GameConfig
}

// Counter reports a collection size (dictionary, block-list).
type Counter interface {
	Len() int
}

// Server bundles the router and the state it reports on.
type Server struct {
	r       *chi.Mux
	state   State
	dict    Counter
	blocked Counter
}

// New constructs a Server, installs middleware, and registers routes.
func New(state State, dict, blocked Counter) *Server {
	s := &Server{r: chi.NewRouter(), state: state, dict: dict, blocked: blocked}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))

	// Plain text, kept identical to the old keep-alive page.
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Bot is running"))
	})

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", s.handleWordStats)
		r.Get("/scoreboard", s.handleScoreboard)
		r.Get("/bindings", s.handleBindings)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"dictionary": s.dict.Len(), "blocked": s.blocked.Len()})
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	ranked := s.state.Scoreboard().Ranked()
	if ranked == nil {
		ranked = []game.Entry{}
	}
	writeJSON(w, ranked)
}

type bindingsRes struct {
	WordChain  string `json:"wordChain,omitempty"`
	Counting   string `json:"counting,omitempty"`
	Rating     string `json:"rating,omitempty"`
	LastNumber *int64 `json:"lastNumber"`
}

func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	cfg := s.state.Snapshot()
	writeJSON(w, bindingsRes{
		WordChain:  idString(cfg.ListeningChannelID),
		Counting:   idString(cfg.CountingChannelID),
		Rating:     idString(cfg.RatingChannelID),
		LastNumber: cfg.LastNumber,
	})
}

// idString renders snowflakes as strings; JS clients lose precision on int64.
func idString(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
