package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/chainbot/internal/profanity"
	"github.com/robalobadob/chainbot/internal/words"
)

const (
	alice int64 = 111
	bob   int64 = 222
)

func newTestEngine() *Engine {
	dict := words.FromWords("pes", "slepice", "auto", "kočka", "emu", "ovce", "prdelka", "sova", "autobus", "oko")
	return NewEngine(dict, profanity.New("prdel", "kurva"))
}

func TestEvaluateFreshGame(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		raw  string
		want Verdict
	}{
		{"known word", "pes", Accept},
		{"diacritics and case", "  KOČKA ", Accept},
		{"normalized spelling accepted", "kocka", Accept},
		{"profane", "kurva", RejectProfane},
		{"profane embedded", "prdelka", RejectProfane},
		{"profanity beats non-alphabetic", "prdel123", RejectProfane},
		{"digits", "pes1", RejectNonAlphabetic},
		{"punctuation", "pes!", RejectNonAlphabetic},
		{"empty", "   ", RejectNonAlphabetic},
		{"unknown", "xylofon", RejectUnknownWord},
		{"two words pass alphabetic but not dictionary", "pes pes", RejectUnknownWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, next := e.Evaluate(WordChainState{}, alice, tt.raw)
			assert.Equal(t, tt.want, v)
			if v != Accept {
				assert.False(t, next.Started(), "state must be unchanged on rejection")
			}
		})
	}
}

func TestEvaluateChainRule(t *testing.T) {
	e := newTestEngine()
	_, st := e.Evaluate(WordChainState{}, alice, "pes")
	require.Equal(t, "pes", st.LastWord)

	v, after := e.Evaluate(st, bob, "auto")
	assert.Equal(t, RejectChainBroken, v)
	assert.Equal(t, "pes", after.LastWord)

	v, after = e.Evaluate(st, bob, "slepice")
	assert.Equal(t, Accept, v)
	assert.Equal(t, "slepice", after.LastWord)
	assert.Equal(t, bob, after.LastSpeaker)
	assert.Contains(t, after.UsedWords, "pes")
	assert.Contains(t, after.UsedWords, "slepice")

	// the previous state is not aliased by the accepted one
	assert.NotContains(t, st.UsedWords, "slepice")
}

func TestEvaluateSameSpeaker(t *testing.T) {
	e := newTestEngine()
	_, st := e.Evaluate(WordChainState{}, alice, "pes")

	// valid continuation, still rejected
	v, _ := e.Evaluate(st, alice, "slepice")
	assert.Equal(t, RejectSameSpeaker, v)

	// invalid continuation also reports the speaker rule first
	v, _ = e.Evaluate(st, alice, "auto")
	assert.Equal(t, RejectSameSpeaker, v)

	// dictionary check precedes the speaker check
	v, _ = e.Evaluate(st, alice, "xylofon")
	assert.Equal(t, RejectUnknownWord, v)
}

func TestEvaluateNormalizedChaining(t *testing.T) {
	e := newTestEngine()
	_, st := e.Evaluate(WordChainState{}, alice, "slepice")
	// "emu" starts with "e", the last letter of "slepice"
	v, st := e.Evaluate(st, bob, "emu")
	require.Equal(t, Accept, v)
	_, st = e.Evaluate(st, bob, "ovce")
	assert.Equal(t, "emu", st.LastWord)

	// "kočka" ends with "a" after normalization; "auto" follows
	_, st = e.Evaluate(WordChainState{}, alice, "kočka")
	v, _ = e.Evaluate(st, bob, "Auto")
	assert.Equal(t, Accept, v)
}

func TestEvaluateAllowsRepeatedWords(t *testing.T) {
	e := newTestEngine()
	_, st := e.Evaluate(WordChainState{}, alice, "oko")
	v, st := e.Evaluate(st, bob, "oko")
	require.Equal(t, Accept, v)
	v, st = e.Evaluate(st, alice, "oko")
	assert.Equal(t, Accept, v, "a word used before is accepted again")
	assert.Equal(t, alice, st.LastSpeaker)
	assert.Len(t, st.UsedWords, 1)
}

func TestSession(t *testing.T) {
	s := NewSession(newTestEngine())
	firstID := s.ID
	require.NotEmpty(t, firstID)

	assert.Equal(t, Accept, s.Submit(alice, "pes"))
	assert.Equal(t, RejectSameSpeaker, s.Submit(alice, "slepice"))
	assert.Equal(t, Accept, s.Submit(bob, "slepice"))
	assert.Equal(t, RejectChainBroken, s.Submit(alice, "auto"))
	assert.Equal(t, "slepice", s.State().LastWord)

	// State hands out copies
	st := s.State()
	st.UsedWords["hacked"] = struct{}{}
	assert.NotContains(t, s.State().UsedWords, "hacked")

	s.Reset()
	assert.False(t, s.State().Started())
	assert.NotEqual(t, firstID, s.ID)
	assert.Equal(t, Accept, s.Submit(alice, "auto"), "any word starts a fresh game")
}
