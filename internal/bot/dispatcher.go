// internal/bot/dispatcher.go
//
// Routes inbound messages to the channel games and runs the admin commands.
// Responsibilities:
//   - Classify a message by channel: word chain, then counting, then rating.
//   - Apply the game's verdict to the shared GameConfig document.
//   - Persist every durable change before reporting it, so nothing is
//     acknowledged that a crash could lose.
//   - Translate verdicts into UI actions (acknowledge / delete / notify).
//
// Concurrency:
//   Gateway handlers may run concurrently. A single mutex guards the
//   document and the word-chain session; Save runs inside it. A failed Save
//   leaves the in-memory document untouched and surfaces *store.PersistenceError.

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/chainbot/internal/game"
	"github.com/robalobadob/chainbot/internal/store"
)

// Dispatcher owns the live game state.
type Dispatcher struct {
	mu        sync.Mutex // guards cfg and chain
	store     store.Store
	cfg       *store.GameConfig
	chain     *game.Session
	noticeTTL time.Duration
}

// New loads the persisted document and starts an empty word-chain session.
// A malformed document is returned as *store.ParseError.
func New(ctx context.Context, st store.Store, engine *game.Engine, noticeTTL time.Duration) (*Dispatcher, error) {
	cfg, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game document: %w", err)
	}
	return &Dispatcher{
		store:     st,
		cfg:       cfg,
		chain:     game.NewSession(engine),
		noticeTTL: noticeTTL,
	}, nil
}

// Handle evaluates one message and commits its effects.
// Bot authors and unbound channels produce an Ignore outcome.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) (Outcome, error) {
	if msg.IsBot {
		return Outcome{Verdict: game.Ignore}, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case bound(d.cfg.ListeningChannelID, msg.ChannelID):
		return d.handleWordChain(msg), nil
	case bound(d.cfg.CountingChannelID, msg.ChannelID):
		return d.handleCounting(ctx, msg)
	case bound(d.cfg.RatingChannelID, msg.ChannelID):
		return d.handleRating(ctx, msg)
	}
	return Outcome{Verdict: game.Ignore}, nil
}

func bound(binding *int64, channelID int64) bool {
	return binding != nil && *binding == channelID
}

func (d *Dispatcher) handleWordChain(msg Message) Outcome {
	v := d.chain.Submit(msg.AuthorID, msg.Text)
	out := Outcome{Game: GameWordChain, Verdict: v}

	switch v {
	case game.Accept:
		out.Action = ActionAcknowledge
	case game.RejectProfane:
		out.Action, out.Notice = ActionDeleteAndNotify, NoticeProfane
	case game.RejectUnknownWord:
		content := strings.ToLower(strings.TrimSpace(msg.Text))
		out.Action, out.Notice = ActionDeleteAndNotify, fmt.Sprintf(noticeUnknownFmt, content)
	case game.RejectSameSpeaker:
		out.Action, out.Notice = ActionDeleteAndNotify, NoticeSameSpeaker
	default:
		out.Action = ActionDelete
	}

	log.Debug().
		Str("session", d.chain.ID).
		Int64("user", msg.AuthorID).
		Str("verdict", string(v)).
		Msg("word chain")
	return out
}

func (d *Dispatcher) handleCounting(ctx context.Context, msg Message) (Outcome, error) {
	v, next := game.Count(msg.Text, d.cfg.LastNumber)
	out := Outcome{Game: GameCounting, Verdict: v, Action: ActionDelete}
	if !v.Accepted() {
		return out, nil
	}

	err := d.commit(ctx, func(cfg *store.GameConfig) error {
		cfg.LastNumber = next
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	out.Action = ActionAcknowledge
	out.Delta = &Delta{LastNumber: next}
	return out, nil
}

func (d *Dispatcher) handleRating(ctx context.Context, msg Message) (Outcome, error) {
	delta, ok := game.ParseRating(msg.Text, msg.Mentions)
	if !ok {
		return Outcome{Game: GameRating, Verdict: game.Ignore}, nil
	}

	var score int
	err := d.commit(ctx, func(cfg *store.GameConfig) error {
		var err error
		score, err = cfg.Points.Add(delta.UserID, delta.Points)
		return err
	})
	if errors.Is(err, game.ErrScoreOverflow) {
		log.Warn().
			Int64("from", msg.AuthorID).
			Int64("user", delta.UserID).
			Int("points", delta.Points).
			Msg("rating ignored: score out of range")
		return Outcome{Game: GameRating, Verdict: game.Ignore}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	log.Info().
		Int64("from", msg.AuthorID).
		Int64("user", delta.UserID).
		Int("points", delta.Points).
		Int("score", score).
		Msg("rating applied")
	return Outcome{
		Game:    GameRating,
		Verdict: game.Accept,
		Action:  ActionAcknowledge,
		Delta:   &Delta{Score: &delta, NewScore: score},
	}, nil
}

// commit applies mutate to a copy of the document, saves it and only then
// swaps it in. A mutate error discards the copy without saving.
// Callers hold d.mu.
func (d *Dispatcher) commit(ctx context.Context, mutate func(cfg *store.GameConfig) error) error {
	next := d.cfg.Clone()
	if err := mutate(next); err != nil {
		return err
	}
	if err := d.store.Save(ctx, next); err != nil {
		log.Error().Err(err).Msg("persist game document")
		return err
	}
	d.cfg = next
	return nil
}

// Respond performs out's action through r. Delete-and-notify deletes first;
// the notice is still attempted if the delete fails.
func (d *Dispatcher) Respond(ctx context.Context, out Outcome, r Responder) error {
	switch out.Action {
	case ActionAcknowledge:
		return r.Acknowledge(ctx)
	case ActionDelete:
		return r.Delete(ctx)
	case ActionDeleteAndNotify:
		return errors.Join(r.Delete(ctx), r.Notify(ctx, out.Notice, d.noticeTTL))
	}
	return nil
}

// BindWordChain moves the word-chain game to channelID and starts a new game.
func (d *Dispatcher) BindWordChain(ctx context.Context, channelID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.commit(ctx, func(cfg *store.GameConfig) error {
		cfg.ListeningChannelID = &channelID
		return nil
	})
	if err != nil {
		return err
	}
	d.chain.Reset()
	log.Info().Int64("channel", channelID).Str("session", d.chain.ID).Msg("word chain bound")
	return nil
}

// BindCounting moves the counting game to channelID and restarts the count.
func (d *Dispatcher) BindCounting(ctx context.Context, channelID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.commit(ctx, func(cfg *store.GameConfig) error {
		cfg.CountingChannelID = &channelID
		cfg.LastNumber = nil
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int64("channel", channelID).Msg("counting bound")
	return nil
}

// BindRating moves the rating channel. The scoreboard is kept.
func (d *Dispatcher) BindRating(ctx context.Context, channelID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.commit(ctx, func(cfg *store.GameConfig) error {
		cfg.RatingChannelID = &channelID
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int64("channel", channelID).Msg("rating bound")
	return nil
}

// Leaderboard renders the scoreboard. Name lookups run outside the lock.
func (d *Dispatcher) Leaderboard(ctx context.Context, users game.UserLookup) string {
	return game.RenderLeaderboard(ctx, d.Scoreboard(), users)
}

// Scoreboard returns a copy of the current scoreboard.
func (d *Dispatcher) Scoreboard() *game.Scoreboard {
	d.mu.Lock()
	defer d.mu.Unlock()
	board := d.cfg.Points.Clone()
	return &board
}

// Snapshot returns a copy of the current document.
func (d *Dispatcher) Snapshot() *store.GameConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Clone()
}

// WordChain returns a copy of the running word-chain state and its session id.
func (d *Dispatcher) WordChain() (string, game.WordChainState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chain.ID, d.chain.State()
}
