package game

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	u1 int64 = 1001
	u2 int64 = 1002
	u3 int64 = 1003
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mentions []int64
		want     ScoreDelta
		ok       bool
	}{
		{"plus", "+5b\nGreat help", []int64{u1}, ScoreDelta{u1, 5}, true},
		{"minus", "-2b\nLate", []int64{u1}, ScoreDelta{u1, -2}, true},
		{"unsigned", "7b\nok", []int64{u1}, ScoreDelta{u1, 7}, true},
		{"spaces ignored", "+ 1 0 b <@1001>\nthanks", []int64{u1}, ScoreDelta{u1, 10}, true},
		{"trailing text after b", "+3b for raid\nthanks", []int64{u1}, ScoreDelta{u1, 3}, true},
		{"crlf", "+1b\r\nok", []int64{u1}, ScoreDelta{u1, 1}, true},
		{"first mention wins", "+1b\nok", []int64{u2, u1}, ScoreDelta{u2, 1}, true},
		{"single line", "+5b", []int64{u1}, ScoreDelta{}, false},
		{"trailing newline only", "+5b\n", []int64{u1}, ScoreDelta{}, false},
		{"no mention", "+5b\nGreat help", nil, ScoreDelta{}, false},
		{"missing b", "+5\nGreat help", []int64{u1}, ScoreDelta{}, false},
		{"directive not at start", "hi +5b\nGreat help", []int64{u1}, ScoreDelta{}, false},
		{"no digits", "+b\nGreat help", []int64{u1}, ScoreDelta{}, false},
		{"overflow", "+99999999999999999999b\nx", []int64{u1}, ScoreDelta{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRating(tt.text, tt.mentions)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreboardAdd(t *testing.T) {
	var b Scoreboard
	d, ok := ParseRating("+5b\nGreat help", []int64{u1})
	require.True(t, ok)
	score, err := b.Add(d.UserID, d.Points)
	require.NoError(t, err)
	assert.Equal(t, 5, score)

	d, ok = ParseRating("-2b\nLate", []int64{u1})
	require.True(t, ok)
	score, err = b.Add(d.UserID, d.Points)
	require.NoError(t, err)
	assert.Equal(t, 3, score)

	s, ok := b.Score(u1)
	assert.True(t, ok)
	assert.Equal(t, 3, s)

	_, ok = b.Score(u2)
	assert.False(t, ok)
	assert.Equal(t, 1, b.Len())
}

func TestScoreboardAddOverflow(t *testing.T) {
	var b Scoreboard
	_, err := b.Add(u1, math.MaxInt)
	require.NoError(t, err)

	score, err := b.Add(u1, 1)
	require.ErrorIs(t, err, ErrScoreOverflow)
	assert.Equal(t, math.MaxInt, score)
	s, _ := b.Score(u1)
	assert.Equal(t, math.MaxInt, s, "board untouched")

	_, err = b.Add(u2, math.MinInt)
	require.NoError(t, err)
	_, err = b.Add(u2, -1)
	require.ErrorIs(t, err, ErrScoreOverflow)

	assert.Equal(t, 2, b.Len())

	score, err = b.Add(u1, -math.MaxInt)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestScoreboardRankedStableTies(t *testing.T) {
	var b Scoreboard
	b.Add(u1, 10)
	b.Add(u2, 10)
	b.Add(u3, 5)

	ranked := b.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, []int64{u1, u2, u3}, []int64{ranked[0].UserID, ranked[1].UserID, ranked[2].UserID})

	// insertion order, not id order, breaks ties
	var c Scoreboard
	c.Add(u3, 1)
	c.Add(u1, 1)
	ranked = c.Ranked()
	assert.Equal(t, u3, ranked[0].UserID)
}

func TestScoreboardClone(t *testing.T) {
	var b Scoreboard
	b.Add(u1, 1)
	c := b.Clone()
	c.Add(u1, 5)
	c.Add(u2, 1)

	s, _ := b.Score(u1)
	assert.Equal(t, 1, s)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, c.Len())

	b.Add(u3, 4)
	_, ok := c.Score(u3)
	assert.False(t, ok, "clone does not see later inserts")
	s, _ = c.Score(u2)
	assert.Equal(t, 1, s)
}

func TestScoreboardJSONPreservesOrder(t *testing.T) {
	var b Scoreboard
	require.NoError(t, json.Unmarshal([]byte(`{"30": 1, "10": 7, "20": 1, "10": 9}`), &b))

	assert.Equal(t, []Entry{{30, 1}, {10, 9}, {20, 1}}, b.Entries())

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"30":1,"10":9,"20":1}`, string(out))
	assert.Equal(t, `{"30":1,"10":9,"20":1}`, string(out))
}

func TestScoreboardJSONErrors(t *testing.T) {
	var b Scoreboard
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"abc": 1}`), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"1": "x"}`), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"1": 1.5}`), &b))

	require.NoError(t, json.Unmarshal([]byte(`null`), &b))
	assert.Zero(t, b.Len())
}

type fakeUsers map[int64]string

func (f fakeUsers) DisplayName(_ context.Context, id int64) (string, error) {
	if n, ok := f[id]; ok {
		return n, nil
	}
	return "", errors.New("unknown user")
}

func TestRenderLeaderboard(t *testing.T) {
	var b Scoreboard
	b.Add(u1, 10)
	b.Add(u2, 10)
	b.Add(u3, 5)

	got := RenderLeaderboard(context.Background(), &b, fakeUsers{u1: "alice", u3: "carol"})
	want := LeaderboardHeader +
		"\n**alice**: 10 bodů" +
		"\n**Uživatel 1002**: 10 bodů" +
		"\n**carol**: 5 bodů"
	assert.Equal(t, want, got)
}

func TestRenderLeaderboardEmpty(t *testing.T) {
	assert.Equal(t, LeaderboardEmpty, RenderLeaderboard(context.Background(), &Scoreboard{}, fakeUsers{}))
	assert.Equal(t, LeaderboardEmpty, RenderLeaderboard(context.Background(), nil, fakeUsers{}))
}
