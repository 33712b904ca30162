package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/robalobadob/chainbot/internal/bot"
)

// parseSnowflake converts a Discord id string to int64.
func parseSnowflake(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("discord: bad %s id %q: %w", kind, s, err)
	}
	return id, nil
}

func formatSnowflake(id int64) string { return strconv.FormatInt(id, 10) }

// toMessage maps a gateway message onto the dispatcher's narrow view.
// Messages without an author (system/webhook edge cases) count as bot messages.
func toMessage(m *discordgo.Message) (bot.Message, error) {
	channelID, err := parseSnowflake("channel", m.ChannelID)
	if err != nil {
		return bot.Message{}, err
	}
	out := bot.Message{ChannelID: channelID, Text: m.Content, IsBot: true}
	if m.Author == nil {
		return out, nil
	}

	authorID, err := parseSnowflake("author", m.Author.ID)
	if err != nil {
		return bot.Message{}, err
	}
	out.AuthorID = authorID
	out.IsBot = m.Author.Bot

	for _, u := range m.Mentions {
		if u == nil {
			continue
		}
		id, err := parseSnowflake("mention", u.ID)
		if err != nil {
			return bot.Message{}, err
		}
		out.Mentions = append(out.Mentions, id)
	}
	return out, nil
}

// channelMention renders a clickable channel reference.
func channelMention(id int64) string { return "<#" + formatSnowflake(id) + ">" }
