package textlayout

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/language"
)

// Strategy splits a segment (text without hard breaks) into the smallest units a
// line may be broken between. Concatenating the units must give back the segment.
type Strategy interface {
	Units(segment string) []string
}

// Clusters breaks between any two grapheme clusters. Thai has no spaces between
// words, and a cluster keeps combining vowels and tone marks on their base
// consonant.
var Clusters Strategy = clusterStrategy{}

// Words breaks only after runs of whitespace, for space-delimited scripts.
var Words Strategy = wordStrategy{}

// scripts written without inter-word spaces
var unspaced = []language.Base{
	language.MustParseBase("th"),
	language.MustParseBase("lo"),
	language.MustParseBase("km"),
	language.MustParseBase("my"),
}

// ForLanguage selects the break strategy for a document language. Undetermined
// and unspaced languages use Clusters.
func ForLanguage(tag language.Tag) Strategy {
	base, conf := tag.Base()
	if conf != language.Exact {
		return Clusters
	}
	for _, b := range unspaced {
		if base == b {
			return Clusters
		}
	}
	return Words
}

type clusterStrategy struct{}

func (clusterStrategy) Units(segment string) []string {
	return clusters(segment)
}

func clusters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

type wordStrategy struct{}

// Units returns each word with the whitespace that follows it.
func (wordStrategy) Units(segment string) []string {
	var (
		out     []string
		start   int
		inSpace bool
	)
	for i, r := range segment {
		space := unicode.IsSpace(r)
		if inSpace && !space {
			out = append(out, segment[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(segment) {
		out = append(out, segment[start:])
	}
	return out
}
