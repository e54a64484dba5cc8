// Package dictionary answers "is this word valid?" for the rules engine.
//
// Words are grouped into buckets by length so exact lookups (no wildcard)
// are an O(1) average-case set membership test, and wildcard lookups only
// scan the bucket matching the query's length. A word list is read once
// from a newline-delimited file, normalized, and kept behind a small
// read-only API.
package dictionary

import (
	"bufio"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Dictionary answers word-validity queries. The zero value is an empty,
// always-invalid dictionary; use Load or NewPermissive to construct one.
type Dictionary struct {
	buckets    map[int]map[string]struct{}
	permissive bool
}

// Load reads a newline-delimited word list from path. Blank lines and
// surrounding whitespace are stripped; every surviving word is uppercased
// and bucketed by length.
//
// If path cannot be read, Load logs the failure and returns a permissive
// stub that accepts every word, for development use only. The fallback
// must never fail silently, hence the log line here instead of in the
// caller.
func Load(path string) *Dictionary {
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dictionary: falling back to permissive stub")
		return NewPermissive()
	}
	defer f.Close()

	d := &Dictionary{buckets: make(map[int]map[string]struct{})}
	sc := bufio.NewScanner(f)
	count := 0
	for sc.Scan() {
		word := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if word == "" {
			continue
		}
		d.add(word)
		count++
	}
	if err := sc.Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dictionary: read error, falling back to permissive stub")
		return NewPermissive()
	}
	log.Info().Int("words", count).Str("path", path).Msg("dictionary loaded")
	return d
}

// NewPermissive returns a dictionary that accepts every word. It exists for
// development when no word list is available.
func NewPermissive() *Dictionary {
	return &Dictionary{permissive: true}
}

// NewFromWords builds a dictionary from an in-memory word list, useful for
// tests and for embedding a small default list.
func NewFromWords(words []string) *Dictionary {
	d := &Dictionary{buckets: make(map[int]map[string]struct{})}
	for _, w := range words {
		d.add(strings.ToUpper(strings.TrimSpace(w)))
	}
	return d
}

func (d *Dictionary) add(word string) {
	bucket := d.buckets[len(word)]
	if bucket == nil {
		bucket = make(map[string]struct{})
		d.buckets[len(word)] = bucket
	}
	bucket[word] = struct{}{}
}

// IsValid reports whether word is a valid dictionary entry. word may
// contain '?' wildcards, each matching any single letter A-Z; a word whose
// length has no bucket is rejected outright.
func (d *Dictionary) IsValid(word string) bool {
	if d.permissive {
		return true
	}
	word = strings.ToUpper(word)
	bucket, ok := d.buckets[len(word)]
	if !ok {
		return false
	}
	if !strings.Contains(word, "?") {
		_, found := bucket[word]
		return found
	}
	for candidate := range bucket {
		if matchesWildcard(candidate, word) {
			return true
		}
	}
	return false
}

// matchesWildcard reports whether candidate matches pattern, where pattern
// positions holding '?' match any letter. Both strings must have equal
// length; callers guarantee this via the length-bucket lookup.
func matchesWildcard(candidate, pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '?' {
			continue
		}
		if pattern[i] != candidate[i] {
			return false
		}
	}
	return true
}
