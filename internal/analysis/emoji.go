package analysis

import (
	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// EmojiFrequency counts every emoji in author's messages, most used first.
// Text is walked by grapheme cluster so skin tones and ZWJ sequences count
// as one emoji.
func EmojiFrequency(tl timeline.Timeline, author string) []EmojiCount {
	c := newCounter[string]()
	for _, r := range tl.ForAuthor(author).All() {
		g := uniseg.NewGraphemes(r.Message)
		for g.Next() {
			if cluster := g.Str(); gomoji.ContainsEmoji(cluster) {
				c.add(cluster)
			}
		}
	}

	ranked := c.ranked()
	out := make([]EmojiCount, len(ranked))
	for i, e := range ranked {
		out[i] = EmojiCount{Emoji: e, Count: c.counts[e]}
	}
	return out
}
