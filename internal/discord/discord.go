// internal/discord/discord.go
//
// Discord gateway adapter for the game dispatcher.
// Responsibilities:
//   - Open the gateway session with guild message + message content intents.
//   - Register slash commands once the session is ready.
//   - Convert MessageCreate events to bot.Message and queue them, in gateway
//     order, on a bot.Pump that applies the outcome (delete / ✅ reaction /
//     self-deleting notice) through a Responder.
//   - Resolve user names for the leaderboard.
//
// Events are dispatched synchronously (SyncEvents) so queue order is arrival
// order. Anything slow (interactions, REST calls for replies) runs off the
// event loop.
//
// Nothing in here decides game rules; see internal/bot and internal/game.

package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/chainbot/internal/bot"
)

const (
	ackEmoji   = "✅"
	queueDepth = 256
)

// Bot connects a Dispatcher to a Discord session.
type Bot struct {
	s       *discordgo.Session
	d       *bot.Dispatcher
	pump    *bot.Pump
	guildID string // "" registers global commands
	ctx     context.Context
}

// New creates the session; nothing is opened until Run.
func New(token, guildID string, d *bot.Dispatcher) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	s.SyncEvents = true

	b := &Bot{s: s, d: d, pump: bot.NewPump(d, queueDepth), guildID: guildID, ctx: context.Background()}
	s.AddHandler(b.onReady)
	s.AddHandler(b.onMessageCreate)
	s.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Run opens the gateway and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	done := make(chan struct{})
	go func() {
		b.pump.Run(ctx)
		close(done)
	}()
	if err := b.s.Open(); err != nil {
		return err
	}
	<-ctx.Done()
	err := b.s.Close()
	<-done
	return err
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.String()).Msg("logged in")
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, commands()); err != nil {
		log.Error().Err(err).Str("guild", b.guildID).Msg("register slash commands")
		return
	}
	log.Info().Str("guild", b.guildID).Msg("slash commands registered")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	msg, err := toMessage(m.Message)
	if err != nil {
		log.Warn().Err(err).Str("message", m.ID).Msg("skip message")
		return
	}
	if msg.IsBot {
		return
	}
	r := &messageResponder{s: s, channelID: m.ChannelID, messageID: m.ID}
	if err := b.pump.Submit(b.ctx, msg, r); err != nil {
		log.Debug().Err(err).Str("message", m.ID).Msg("queue closed")
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	go b.runCommand(s, i)
}

func (b *Bot) runCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name

	if name == cmdLeaderboard {
		b.leaderboard(s, i)
		return
	}
	cmd, ok := bindCommands[name]
	if !ok {
		return
	}
	if !isAdmin(i) {
		b.replyEphemeral(s, i, replyForbidden)
		return
	}
	channelID, err := parseSnowflake("channel", i.ChannelID)
	if err != nil {
		log.Warn().Err(err).Str("command", name).Msg("bind")
		return
	}
	if err := cmd.bind(b.d, b.ctx, channelID); err != nil {
		log.Error().Err(err).Str("command", name).Msg("bind")
		b.replyEphemeral(s, i, replySaveFailed)
		return
	}
	b.replyEphemeral(s, i, bindReply(name, channelID))
}

// leaderboard defers the reply because name lookups can outlast the
// three-second interaction deadline.
func (b *Bot) leaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Warn().Err(err).Msg("defer leaderboard")
		return
	}
	text := b.d.Leaderboard(b.ctx, &userLookup{s: s})
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &text}); err != nil {
		log.Warn().Err(err).Msg("send leaderboard")
	}
}

func (b *Bot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("interaction reply")
	}
}

// messageResponder applies outcomes to one gateway message.
type messageResponder struct {
	s         *discordgo.Session
	channelID string
	messageID string
}

func (r *messageResponder) Delete(ctx context.Context) error {
	return r.s.ChannelMessageDelete(r.channelID, r.messageID)
}

func (r *messageResponder) Acknowledge(ctx context.Context) error {
	return r.s.MessageReactionAdd(r.channelID, r.messageID, ackEmoji)
}

// Notify posts text and schedules its deletion; the deletion is not awaited.
func (r *messageResponder) Notify(ctx context.Context, text string, ttl time.Duration) error {
	sent, err := r.s.ChannelMessageSend(r.channelID, text)
	if err != nil {
		return err
	}
	time.AfterFunc(ttl, func() {
		if err := r.s.ChannelMessageDelete(sent.ChannelID, sent.ID); err != nil {
			log.Debug().Err(err).Str("message", sent.ID).Msg("expire notice")
		}
	})
	return nil
}

// userLookup resolves names through the REST API.
type userLookup struct {
	s *discordgo.Session
}

func (u *userLookup) DisplayName(ctx context.Context, userID int64) (string, error) {
	user, err := u.s.User(formatSnowflake(userID))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("discord: empty user")
	}
	return user.Username, nil
}
