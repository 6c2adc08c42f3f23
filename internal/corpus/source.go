package corpus

import (
	"sort"
	"strings"

	"github.com/enescakir/emoji"
)

// Emoji is a glyph together with every shortcode that names it.
type Emoji struct {
	Glyph      string
	Shortcodes []string
}

// Source enumerates emoji data.
type Source interface {
	Emojis() []Emoji
}

// Static is a Source backed by a fixed list.
type Static []Emoji

// Emojis implements Source.
func (s Static) Emojis() []Emoji {
	return s
}

type aliasSource struct {
	aliases map[string]string
}

// Builtin returns the emoji dataset compiled into the binary.
func Builtin() Source {
	return FromAliases(emoji.Map())
}

// FromAliases builds a Source from an alias to glyph map such as
// {":grinning_face:": "😀"}. Surrounding colons are stripped. Glyphs are
// ordered by their smallest shortcode so the result does not depend on map
// iteration order.
func FromAliases(aliases map[string]string) Source {
	return aliasSource{aliases: aliases}
}

func (s aliasSource) Emojis() []Emoji {
	byGlyph := make(map[string][]string)
	for alias, glyph := range s.aliases {
		code := strings.Trim(alias, ":")
		if code == "" || glyph == "" {
			continue
		}
		byGlyph[glyph] = append(byGlyph[glyph], code)
	}

	out := make([]Emoji, 0, len(byGlyph))
	for glyph, codes := range byGlyph {
		sort.Strings(codes)
		out = append(out, Emoji{Glyph: glyph, Shortcodes: codes})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Shortcodes[0], out[j].Shortcodes[0]
		if a != b {
			return a < b
		}
		return out[i].Glyph < out[j].Glyph
	})
	return out
}
