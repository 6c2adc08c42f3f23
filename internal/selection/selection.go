// Package selection picks the glyph to type from ranked results.
package selection

import (
	"strings"

	"github.com/subins2000/quemoji/internal/ranker"
)

// Extract returns the glyph of the best result: the part of its label
// before the first space. ok is false when results is empty.
func Extract(results []ranker.Result) (glyph string, ok bool) {
	if len(results) == 0 {
		return "", false
	}
	glyph, _, _ = strings.Cut(results[0].Label, " ")
	return glyph, true
}
