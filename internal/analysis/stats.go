// Package analysis derives statistics and frequency tables from a Timeline.
// Every function reads its input and returns a fresh result; an empty
// Timeline yields empty or zero results, never an error.
package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"
	"mvdan.cc/xurls/v2"

	"github.com/Zuo-Peng/chatlens/internal/parse"
	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// MediaOmitted is the body WhatsApp writes in place of an attachment.
const MediaOmitted = "<Media omitted>"

var urlRe = xurls.Relaxed()

type Stats struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
}

// FetchStats counts messages, words, media placeholders and links for author
// (or Overall). Media placeholder bodies are not counted as words.
func FetchStats(tl timeline.Timeline, author, media string) Stats {
	var s Stats
	for _, r := range tl.ForAuthor(author).All() {
		s.Messages++
		if r.Message == media {
			s.Media++
		} else {
			s.Words += len(strings.Fields(r.Message))
		}
		s.Links += len(urlRe.FindAllString(r.Message, -1))
	}
	return s
}

// Users returns the authors a viewer can pick: Overall first, then every real
// participant sorted by name.
func Users(tl timeline.Timeline) []string {
	authors := lo.Without(tl.Authors(), parse.GroupNotification)
	sort.Strings(authors)
	return append([]string{timeline.Overall}, authors...)
}

type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type AuthorShare struct {
	Author  string  `json:"author"`
	Percent float64 `json:"percent"`
}

type BusyUsers struct {
	Top   []AuthorCount `json:"top"`
	Share []AuthorShare `json:"share"`
}

// MostBusyUsers ranks authors over the whole Timeline. Top holds the first n;
// Share holds every author's share of all messages rounded to two decimals.
func MostBusyUsers(tl timeline.Timeline, n int) BusyUsers {
	c := newCounter[string]()
	for _, r := range tl.All() {
		c.add(r.Author)
	}

	total := tl.Len()
	ranked := c.ranked()
	out := BusyUsers{
		Top:   make([]AuthorCount, 0, min(n, len(ranked))),
		Share: make([]AuthorShare, 0, len(ranked)),
	}
	for i, a := range ranked {
		if i < n {
			out.Top = append(out.Top, AuthorCount{Author: a, Count: c.counts[a]})
		}
		out.Share = append(out.Share, AuthorShare{
			Author:  a,
			Percent: round2(float64(c.counts[a]) / float64(total) * 100),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
