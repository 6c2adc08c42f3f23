package ranker

import "github.com/subins2000/quemoji/internal/corpus"

// trigramScore is the share of the query's trigrams that also occur in the
// target. The result is in [0,1].
func trigramScore(query, target []corpus.Trigram) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for _, q := range query {
		for _, t := range target {
			if q == t {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(query))
}
