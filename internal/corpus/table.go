// Package corpus builds the searchable list of emoji labels.
//
// Every shortcode of every emoji becomes one entry labelled
// "<glyph> <shortcode>". The list is built once and only read afterwards.
package corpus

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Entry is one searchable emoji label.
type Entry struct {
	Glyph     string
	Shortcode string
	Label     string
	key       string
	code      string
	grams     []Trigram
}

// Key returns the case-folded label used for matching.
func (e Entry) Key() string {
	return e.key
}

// FoldedShortcode returns the case-folded shortcode.
func (e Entry) FoldedShortcode() string {
	return e.code
}

// Trigrams returns the trigrams of Key, computed when the corpus was built.
// Callers must not modify the result.
func (e Entry) Trigrams() []Trigram {
	return e.grams
}

// Corpus is an ordered, immutable list of entries.
type Corpus struct {
	entries []Entry
}

// Entries returns the entries in corpus order. Callers must not modify it.
func (c *Corpus) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Build flattens src into a corpus. The order follows src, and within an
// emoji the order of its shortcodes.
func Build(src Source) *Corpus {
	fold := cases.Fold()
	c := &Corpus{}
	seen := make(map[string]struct{})

	for _, e := range src.Emojis() {
		if e.Glyph == "" {
			continue
		}
		for _, code := range e.Shortcodes {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			label := e.Glyph + " " + code
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			key := fold.String(label)
			c.entries = append(c.entries, Entry{
				Glyph:     e.Glyph,
				Shortcode: code,
				Label:     label,
				key:       key,
				code:      fold.String(code),
				grams:     Trigrams(key),
			})
		}
	}
	return c
}

var (
	defaultOnce   sync.Once
	defaultCorpus *Corpus
)

// Default returns the corpus built from the builtin emoji data. It is built
// on first use and the same value is returned for the rest of the process.
func Default() *Corpus {
	defaultOnce.Do(func() {
		defaultCorpus = Build(Builtin())
	})
	return defaultCorpus
}
