package renderer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// emojiVariationSelector (U+FE0F) forces emoji presentation; any cluster
// carrying it as a non-leading codepoint occupies two columns.
const emojiVariationSelector = '\uFE0F'

// graphemeClusterWidth returns the column width of one grapheme cluster:
// 2 when a non-leading codepoint is U+FE0F, otherwise the East-Asian width
// of the base codepoint.
func graphemeClusterWidth(cluster []rune) int {
	if len(cluster) == 0 {
		return 0
	}
	for _, cp := range cluster[1:] {
		if cp == emojiVariationSelector {
			return 2
		}
	}
	return runewidth.RuneWidth(cluster[0])
}

// graphemeClusters splits text into grapheme clusters. Cluster boundary
// detection is delegated entirely to uniseg.
func graphemeClusters(text string) [][]rune {
	var clusters [][]rune
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		clusters = append(clusters, []rune(cluster))
	}
	return clusters
}
