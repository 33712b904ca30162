// internal/words/words.go
//
// Dictionary loading for the word-chain game.
//
// Responsibilities:
//   - Read one or more newline-delimited word lists (Czech primary, Slovak secondary).
//   - Keep only purely alphabetic entries, lower-case and strip diacritics.
//   - Union every successfully loaded list into one immutable lookup set.
//
// Source handling:
//   1. A primary source that cannot be opened is fatal (*LoadError).
//   2. An optional source that does not exist is skipped with a warning.
//   3. Any other read error is returned, optional or not.
//
// Environment variables (see internal/config):
//   WORDS_PRIMARY_FILE=czech.txt
//   WORDS_SECONDARY_FILE=sk.txt

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/chainbot/internal/textnorm"
)

// Source is a single word list on disk.
type Source struct {
	Path     string
	Optional bool // missing file is tolerated
}

// LoadError reports a required word list that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("words: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Dictionary is an immutable set of normalized words.
type Dictionary struct {
	set map[string]struct{}
}

// Load reads sources in order and returns their union.
// At least one source must be non-optional.
func Load(sources []Source) (*Dictionary, error) {
	if len(sources) == 0 {
		return nil, errors.New("words: no sources configured")
	}
	d := &Dictionary{set: make(map[string]struct{})}
	for _, src := range sources {
		n, err := d.loadFile(src.Path)
		switch {
		case err == nil:
			log.Info().Str("path", src.Path).Int("words", n).Msg("word list loaded")
		case src.Optional && errors.Is(err, fs.ErrNotExist):
			log.Warn().Str("path", src.Path).Msg("optional word list not found, skipping")
		default:
			return nil, &LoadError{Path: src.Path, Err: err}
		}
	}
	return d, nil
}

// FromWords builds a dictionary from in-memory words, applying the same
// filtering as file sources. Used by tests and embedded fallbacks.
func FromWords(list ...string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		d.add(w)
	}
	return d
}

func (d *Dictionary) loadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return d.readFrom(f)
}

// readFrom consumes one word per line and returns how many lines were kept.
func (d *Dictionary) readFrom(r io.Reader) (int, error) {
	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if d.add(sc.Text()) {
			n++
		}
	}
	return n, sc.Err()
}

// add inserts a raw line if it is a purely alphabetic word.
// The alphabetic check runs before normalization.
func (d *Dictionary) add(line string) bool {
	w := strings.ToLower(strings.TrimSpace(line))
	if !textnorm.IsAlpha(w) {
		return false
	}
	d.set[textnorm.Normalize(w)] = struct{}{}
	return true
}

// Contains reports whether the normalized word is known.
func (d *Dictionary) Contains(normalized string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[normalized]
	return ok
}

// Len returns the number of distinct normalized words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.set)
}
