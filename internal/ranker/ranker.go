// Package ranker scores emoji labels against a typed query.
package ranker

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/subins2000/quemoji/internal/corpus"
)

// DefaultLimit is the number of results shown for a query.
const DefaultLimit = 10

const (
	trigramWeight     = 0.8
	subsequenceWeight = 0.2
)

// Result is a scored corpus entry.
type Result struct {
	Label string
	Glyph string
	Score float64
	// Index is the entry's position in the corpus.
	Index int
}

// Options tune a Ranker.
type Options struct {
	// MinScore drops results scoring below it. Zero keeps every result
	// with a positive score.
	MinScore float64
}

// Ranker ranks corpus entries for a query.
type Ranker struct {
	opts Options
}

// New returns a Ranker using opts.
func New(opts Options) *Ranker {
	return &Ranker{opts: opts}
}

// Rank scores every entry of c against query with default options.
func Rank(query string, c *corpus.Corpus, limit int) []Result {
	return New(Options{}).Rank(query, c, limit)
}

// Rank returns at most limit results ordered by descending score. Equal
// scores keep corpus order. An empty or blank query returns nothing.
func (r *Ranker) Rank(query string, c *corpus.Corpus, limit int) []Result {
	if limit < 1 {
		limit = DefaultLimit
	}
	query = cases.Fold().String(strings.TrimSpace(query))
	if query == "" || c.Len() == 0 {
		return nil
	}

	grams := corpus.Trigrams(query)
	qlen := utf8.RuneCountInString(query)

	results := make([]Result, 0, 64)
	for i, e := range c.Entries() {
		score := trigramWeight*trigramScore(grams, e.Trigrams()) +
			subsequenceWeight*subsequenceScore(query, qlen, e.FoldedShortcode())
		if score <= 0 || score < r.opts.MinScore {
			continue
		}
		results = append(results, Result{
			Label: e.Label,
			Glyph: e.Glyph,
			Score: score,
			Index: i,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// subsequenceScore rewards shortcodes that contain every query rune in
// order, more so the fewer extra runes they have. Both arguments must
// already be case-folded.
func subsequenceScore(query string, qlen int, shortcode string) float64 {
	extra := fuzzy.RankMatch(query, shortcode)
	if extra < 0 {
		return 0
	}
	return float64(qlen) / float64(qlen+extra)
}

// Labels returns the labels of results in order.
func Labels(results []Result) []string {
	out := make([]string, len(results))
	for i, res := range results {
		out[i] = res.Label
	}
	return out
}
