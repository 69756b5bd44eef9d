// Package dictionary loads the line-oriented resources validators read at
// initialization: key/value suggestion files and plain word lists.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stats describes one load.
type Stats struct {
	Entries int // lines loaded
	Skipped int // malformed lines ignored
}

// LoadKeyValue reads one "key<TAB>value" pair per line. Blank lines and
// lines starting with '#' are ignored; lines without exactly one tab are
// skipped and counted. Later duplicates of a key replace earlier ones.
func LoadKeyValue(r io.Reader) (map[string]string, Stats, error) {
	out := make(map[string]string)
	var st Stats
	err := scanLines(r, func(line string) {
		parts := strings.Split(line, "\t")
		if len(parts) != 2 || parts[0] == "" {
			st.Skipped++
			return
		}
		out[parts[0]] = parts[1]
		st.Entries++
	})
	if err != nil {
		return nil, st, err
	}
	return out, st, nil
}

// LoadWordList reads one expression per line.
func LoadWordList(r io.Reader) (map[string]struct{}, Stats, error) {
	out := make(map[string]struct{})
	var st Stats
	err := scanLines(r, func(line string) {
		out[line] = struct{}{}
		st.Entries++
	})
	if err != nil {
		return nil, st, err
	}
	return out, st, nil
}

// OpenKeyValue loads a key/value file from disk.
func OpenKeyValue(path string) (map[string]string, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	m, st, err := LoadKeyValue(f)
	if err != nil {
		return nil, st, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return m, st, nil
}

// OpenWordList loads a word list from disk.
func OpenWordList(path string) (map[string]struct{}, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	m, st, err := LoadWordList(f)
	if err != nil {
		return nil, st, fmt.Errorf("read word list %s: %w", path, err)
	}
	return m, st, nil
}

func scanLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}
