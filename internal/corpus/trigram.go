package corpus

// Trigram is three consecutive runes.
type Trigram [3]rune

// Trigrams pads s with two leading spaces and one trailing space, so a
// string of n runes yields n+1 trigrams.
func Trigrams(s string) []Trigram {
	runes := make([]rune, 0, len(s)+3)
	runes = append(runes, ' ', ' ')
	runes = append(runes, []rune(s)...)
	runes = append(runes, ' ')

	out := make([]Trigram, 0, len(runes)-2)
	for i := 0; i+2 < len(runes); i++ {
		out = append(out, Trigram{runes[i], runes[i+1], runes[i+2]})
	}
	return out
}
