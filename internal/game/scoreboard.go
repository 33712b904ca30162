// internal/game/scoreboard.go
//
// Scoreboard: user → points, kept in first-mention order.
//
// Insertion order matters: the leaderboard breaks ties by it, so the JSON
// codec below preserves key order in both directions (encoding/json maps do
// not, hence the gjson-based decoder).

package game

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// Entry is one scoreboard row.
type Entry struct {
	UserID int64 `json:"userId,string"`
	Score  int   `json:"score"`
}

// Scoreboard is an insertion-ordered map of user id → score.
// The zero value is an empty scoreboard. Plain assignment shares storage
// with the original; use Clone for an independent copy.
type Scoreboard struct {
	entries []Entry
	index   map[int64]int
}

// ErrScoreOverflow reports an adjustment the score cannot hold.
var ErrScoreOverflow = errors.New("scoreboard: score out of range")

// Add applies delta to userID, creating the entry at 0 first if needed,
// and returns the new score. An adjustment that would overflow leaves the
// board untouched and returns ErrScoreOverflow.
func (b *Scoreboard) Add(userID int64, delta int) (int, error) {
	i, ok := b.lookup(userID)
	cur := 0
	if ok {
		cur = b.entries[i].Score
	}
	next, ok := addScore(cur, delta)
	if !ok {
		return cur, ErrScoreOverflow
	}
	b.set(userID, next)
	return next, nil
}

func addScore(a, b int) (int, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// Score returns the current score of userID.
func (b *Scoreboard) Score(userID int64) (int, bool) {
	i, ok := b.lookup(userID)
	if !ok {
		return 0, false
	}
	return b.entries[i].Score, true
}

// Len returns the number of users with an entry.
func (b *Scoreboard) Len() int { return len(b.entries) }

// Entries returns the rows in insertion order.
func (b *Scoreboard) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Ranked returns the rows by descending score; equal scores keep insertion order.
func (b *Scoreboard) Ranked() []Entry {
	out := b.Entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Clone returns an independent copy.
func (b *Scoreboard) Clone() Scoreboard {
	var c Scoreboard
	for _, e := range b.entries {
		c.insert(e.UserID, e.Score)
	}
	return c
}

func (b *Scoreboard) lookup(userID int64) (int, bool) {
	if b.index == nil {
		return 0, false
	}
	i, ok := b.index[userID]
	return i, ok
}

func (b *Scoreboard) insert(userID int64, score int) int {
	if b.index == nil {
		b.index = make(map[int64]int)
	}
	b.entries = append(b.entries, Entry{UserID: userID, Score: score})
	i := len(b.entries) - 1
	b.index[userID] = i
	return i
}

// set overwrites (or creates) a score without moving the entry.
func (b *Scoreboard) set(userID int64, score int) {
	if i, ok := b.lookup(userID); ok {
		b.entries[i].Score = score
		return
	}
	b.insert(userID, score)
}

// MarshalJSON encodes the board as {"<user id>": score, ...} in insertion order.
// It has a value receiver so GameConfig encodes the same by value or pointer.
func (b Scoreboard) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatInt(e.UserID, 10))
		buf.WriteString(`":`)
		buf.WriteString(strconv.Itoa(e.Score))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes {"<user id>": score, ...} keeping key order.
// null decodes to an empty board. A repeated key keeps its first position
// and its last value.
func (b *Scoreboard) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("scoreboard: invalid JSON")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*b = Scoreboard{}
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("scoreboard: expected object, got %s", res.Type)
	}

	var out Scoreboard
	var decodeErr error
	res.ForEach(func(key, value gjson.Result) bool {
		id, err := strconv.ParseInt(key.String(), 10, 64)
		if err != nil {
			decodeErr = fmt.Errorf("scoreboard: user id %q is not a snowflake", key.String())
			return false
		}
		if value.Type != gjson.Number || value.Num != math.Trunc(value.Num) {
			decodeErr = fmt.Errorf("scoreboard: score for %d is not an integer: %s", id, value.Raw)
			return false
		}
		out.set(id, int(value.Int()))
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	*b = out
	return nil
}
