package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/robalobadob/chainbot/internal/bot"
)

// Slash command names, kept from the first version of the bot so existing
// server setups keep working.
const (
	cmdBindWordChain = "set-listening-server"
	cmdBindCounting  = "start-pocitani"
	cmdBindRating    = "set-hodnoceni"
	cmdLeaderboard   = "body"
)

const (
	replySaveFailed = "⚠️ Nastavení se nepodařilo uložit, zkus to prosím znovu."
	replyForbidden  = "⛔ Tento příkaz může použít jen administrátor."
)

type bindCommand struct {
	description string
	reply       string // fmt with the channel mention
	bind        func(d *bot.Dispatcher, ctx context.Context, channelID int64) error
}

var bindCommands = map[string]bindCommand{
	cmdBindWordChain: {
		description: "Nastaví aktuální kanál pro Slovní fotbal",
		reply:       "✅ Slovní fotbal nastaven v kanálu %s",
		bind:        (*bot.Dispatcher).BindWordChain,
	},
	cmdBindCounting: {
		description: "Spustí hru Počítání v aktuálním kanálu",
		reply:       "✅ Počítání spuštěno v kanálu %s",
		bind:        (*bot.Dispatcher).BindCounting,
	},
	cmdBindRating: {
		description: "Nastaví aktuální kanál pro hodnocení bodů",
		reply:       "✅ Hodnocení bodů nastaveno v kanálu %s",
		bind:        (*bot.Dispatcher).BindRating,
	},
}

// commands returns the application commands to register.
// Bind commands default to administrators only; the leaderboard is public.
func commands() []*discordgo.ApplicationCommand {
	admin := int64(discordgo.PermissionAdministrator)
	out := make([]*discordgo.ApplicationCommand, 0, len(bindCommands)+1)
	for _, name := range []string{cmdBindWordChain, cmdBindCounting, cmdBindRating} {
		out = append(out, &discordgo.ApplicationCommand{
			Name:                     name,
			Description:              bindCommands[name].description,
			DefaultMemberPermissions: &admin,
		})
	}
	out = append(out, &discordgo.ApplicationCommand{
		Name:        cmdLeaderboard,
		Description: "Vypíše bodové hodnocení",
	})
	return out
}

func bindReply(name string, channelID int64) string {
	return fmt.Sprintf(bindCommands[name].reply, channelMention(channelID))
}

// isAdmin checks the invoking member's resolved permissions.
func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}
