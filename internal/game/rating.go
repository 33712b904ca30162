// internal/game/rating.go
//
// Point-rating messages and leaderboard rendering.
//
// A rating message looks like:
//
//	+5b @someone
//	helped with the raid
//
// The first line (spaces ignored) must start with an optionally signed
// integer followed by "b"; at least one more line of justification must
// follow, and the message must mention a user. Anything else is ignored.

package game

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ratingDirective = regexp.MustCompile(`^([+-]?[0-9]+)b`)

// ParseRating extracts the point adjustment from a rating message.
// The first mentioned user is the target. ok is false when the message is
// not a rating and must be left alone.
func ParseRating(text string, mentions []int64) (delta ScoreDelta, ok bool) {
	lines := splitLines(strings.TrimSpace(text))
	if len(lines) < 2 || len(mentions) == 0 {
		return ScoreDelta{}, false
	}
	m := ratingDirective.FindStringSubmatch(strings.ReplaceAll(lines[0], " ", ""))
	if m == nil {
		return ScoreDelta{}, false
	}
	points, err := strconv.Atoi(m[1])
	if err != nil {
		return ScoreDelta{}, false
	}
	return ScoreDelta{UserID: mentions[0], Points: points}, true
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// UserLookup resolves a user id to a display name.
type UserLookup interface {
	DisplayName(ctx context.Context, userID int64) (string, error)
}

// Leaderboard texts.
const (
	LeaderboardEmpty  = "📭 Zatím nejsou žádné body."
	LeaderboardHeader = "🏆 **Bodové hodnocení:**"
)

// PlaceholderName is shown for users the lookup cannot resolve.
func PlaceholderName(userID int64) string {
	return fmt.Sprintf("Uživatel %d", userID)
}

// RenderLeaderboard formats the ranked scoreboard. A failed lookup only
// affects its own line.
func RenderLeaderboard(ctx context.Context, board *Scoreboard, users UserLookup) string {
	if board == nil || board.Len() == 0 {
		return LeaderboardEmpty
	}
	var sb strings.Builder
	sb.WriteString(LeaderboardHeader)
	for _, e := range board.Ranked() {
		name, err := users.DisplayName(ctx, e.UserID)
		if err != nil || name == "" {
			name = PlaceholderName(e.UserID)
		}
		fmt.Fprintf(&sb, "\n**%s**: %d bodů", name, e.Score)
	}
	return sb.String()
}
