package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed blocklist.txt sql/*.sql
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file,
// trimmed and lower-cased.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// BlockList returns the default profanity entries, lower-cased.
func BlockList() ([]string, error) {
	return readLines("blocklist.txt")
}

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded sql/*.sql scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := FS.ReadFile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}
