package game

import (
	"strconv"
	"strings"

	"github.com/robalobadob/chainbot/internal/textnorm"
)

// Count evaluates a counting-game submission against the last accepted
// number. A nil last means the game has just (re)started and any number is
// accepted. Rejections never reset the sequence.
func Count(raw string, last *int64) (Verdict, *int64) {
	content := strings.TrimSpace(raw)
	if !textnorm.IsDigits(content) {
		return RejectNotNumber, last
	}
	n, err := strconv.ParseInt(content, 10, 64)
	if err != nil {
		// out of int64 range
		return RejectNotNumber, last
	}
	if last == nil || n == *last+1 {
		return Accept, &n
	}
	return RejectOutOfSequence, last
}
