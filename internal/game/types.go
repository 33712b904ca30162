// internal/game/types.go
//
// Core type definitions for the channel games.
// Defines:
//   - Verdict: result of evaluating one submission.
//   - WordChainState: in-memory state of the word-chain game.
//   - ScoreDelta: a parsed point adjustment.

package game

// Verdict is the outcome of evaluating one submission. Rejections are
// ordinary values, not errors; the caller decides how to surface them.
type Verdict string

const (
	Accept Verdict = "accept"

	// Word chain.
	RejectProfane       Verdict = "reject_profane"
	RejectNonAlphabetic Verdict = "reject_non_alphabetic"
	RejectUnknownWord   Verdict = "reject_unknown_word"
	RejectSameSpeaker   Verdict = "reject_same_speaker"
	RejectChainBroken   Verdict = "reject_chain_broken"

	// Counting.
	RejectNotNumber     Verdict = "reject_not_number"
	RejectOutOfSequence Verdict = "reject_out_of_sequence"

	// Rating messages that do not parse are ignored rather than rejected.
	Ignore Verdict = "ignore"
)

// Accepted reports whether v is Accept.
func (v Verdict) Accepted() bool { return v == Accept }

// WordChainState holds the progress of one word-chain game.
// The zero value is an empty game.
type WordChainState struct {
	LastWord    string              // normalized; "" before the first word
	LastSpeaker int64               // author of LastWord; meaningless while LastWord == ""
	UsedWords   map[string]struct{} // every accepted word; repeats are still allowed
}

// Started reports whether at least one word has been accepted.
func (s WordChainState) Started() bool { return s.LastWord != "" }

// clone returns a copy whose UsedWords can be mutated independently.
func (s WordChainState) clone() WordChainState {
	used := make(map[string]struct{}, len(s.UsedWords)+1)
	for w := range s.UsedWords {
		used[w] = struct{}{}
	}
	s.UsedWords = used
	return s
}

// ScoreDelta is a signed point adjustment for one user.
type ScoreDelta struct {
	UserID int64
	Points int
}
