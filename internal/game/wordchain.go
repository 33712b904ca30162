// internal/game/wordchain.go
//
// Word-chain ("slovní fotbal") engine.
// Each accepted word must start with the last letter of the previous one and
// players may not answer twice in a row.
//
// Evaluation order is part of the contract; the first failing check wins:
//   1. profanity (substring on the normalized text)
//   2. alphabetic-only (raw text, spaces removed)
//   3. dictionary membership
//   4. same speaker as the previous accepted word
//   5. empty game → accept
//   6. first letter == previous last letter → accept
//   7. otherwise the chain is broken
//
// Notes:
//   - UsedWords is recorded but never consulted; repeating a word is allowed.
//   - Session owns the state; Engine itself holds only immutable lookups.

package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/chainbot/internal/textnorm"
)

// Lexicon answers dictionary membership for normalized words.
type Lexicon interface {
	Contains(normalized string) bool
}

// Blocker answers whether normalized text contains blocked content.
type Blocker interface {
	IsBlocked(normalized string) bool
}

// Engine evaluates word-chain submissions against a dictionary and block-list.
type Engine struct {
	dict   Lexicon
	filter Blocker
}

// NewEngine constructs an Engine. Both collaborators are required.
func NewEngine(dict Lexicon, filter Blocker) *Engine {
	return &Engine{dict: dict, filter: filter}
}

// Evaluate applies one submission to state and returns the verdict and the
// next state. On rejection the returned state is state itself.
func (e *Engine) Evaluate(state WordChainState, speaker int64, raw string) (Verdict, WordChainState) {
	content := strings.ToLower(strings.TrimSpace(raw))
	normalized := textnorm.Normalize(content)

	if e.filter.IsBlocked(normalized) {
		return RejectProfane, state
	}
	if !textnorm.IsAlpha(strings.ReplaceAll(content, " ", "")) {
		return RejectNonAlphabetic, state
	}
	if !e.dict.Contains(normalized) {
		return RejectUnknownWord, state
	}
	if state.Started() && state.LastSpeaker == speaker {
		return RejectSameSpeaker, state
	}
	if !state.Started() {
		return Accept, advance(state, speaker, normalized)
	}

	first, _ := textnorm.FirstRune(normalized)
	last, _ := textnorm.LastRune(state.LastWord)
	if first == last {
		return Accept, advance(state, speaker, normalized)
	}
	return RejectChainBroken, state
}

func advance(state WordChainState, speaker int64, word string) WordChainState {
	next := state.clone()
	next.LastWord = word
	next.LastSpeaker = speaker
	next.UsedWords[word] = struct{}{}
	return next
}

// Session is one running word-chain game bound to a channel.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	ID     string
	engine *Engine
	state  WordChainState
}

// NewSession starts an empty game.
func NewSession(engine *Engine) *Session {
	return &Session{ID: uuid.NewString(), engine: engine}
}

// Submit evaluates raw from speaker and commits the state on acceptance.
func (s *Session) Submit(speaker int64, raw string) Verdict {
	v, next := s.engine.Evaluate(s.state, speaker, raw)
	if v.Accepted() {
		s.state = next
	}
	return v
}

// Reset clears the game and assigns a new session id.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.state = WordChainState{}
}

// State returns a copy of the current state.
func (s *Session) State() WordChainState { return s.state.clone() }
