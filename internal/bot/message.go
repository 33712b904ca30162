package bot

import (
	"context"
	"time"

	"github.com/robalobadob/chainbot/internal/game"
)

// Message is the platform-neutral view of an inbound chat message.
type Message struct {
	ChannelID int64
	AuthorID  int64
	Text      string
	Mentions  []int64 // mentioned users, in message order
	IsBot     bool
}

// Responder performs the visible side effects on the message being handled.
type Responder interface {
	// Delete removes the message.
	Delete(ctx context.Context) error
	// Acknowledge marks the message as accepted (✅ reaction).
	Acknowledge(ctx context.Context) error
	// Notify posts text in the channel and removes it again after ttl.
	Notify(ctx context.Context, text string, ttl time.Duration) error
}

// Game identifies which game a message was routed to.
type Game string

const (
	GameNone      Game = ""
	GameWordChain Game = "word_chain"
	GameCounting  Game = "counting"
	GameRating    Game = "rating"
)

// Action is the UI treatment the caller should apply.
type Action int

const (
	ActionNone Action = iota
	ActionAcknowledge
	ActionDelete
	ActionDeleteAndNotify
)

func (a Action) String() string {
	switch a {
	case ActionAcknowledge:
		return "acknowledge"
	case ActionDelete:
		return "delete"
	case ActionDeleteAndNotify:
		return "delete_and_notify"
	default:
		return "none"
	}
}

// Delta describes what a message changed in the durable document.
type Delta struct {
	LastNumber *int64           // counting game advanced to this value
	Score      *game.ScoreDelta // scoreboard adjustment
	NewScore   int              // target's score after Score was applied
}

// Outcome is the result of handling one message.
type Outcome struct {
	Game    Game
	Verdict game.Verdict
	Action  Action
	Notice  string // set only for ActionDeleteAndNotify
	Delta   *Delta // nil when nothing durable changed
}

// Transient notices for rejected word-chain submissions.
const (
	NoticeProfane     = "🚫 Sprostá slova nejsou povolena!"
	NoticeSameSpeaker = "❌ Počkej, až někdo jiný napíše slovo!"
	noticeUnknownFmt  = "❌ Slovo '%s' neexistuje!"
)
