package analysis

import (
	"slices"

	"github.com/Zuo-Peng/chatlens/internal/timeline"
)

// Heatmap counts messages per weekday and hour bucket. Rows follow
// timeline.Weekdays, columns follow timeline.HourBuckets; every cell exists.
type Heatmap struct {
	Weekdays []string   `json:"weekdays"`
	Buckets  []string   `json:"buckets"`
	Counts   [7][24]int `json:"counts"`
}

func WeeklyHeatmap(tl timeline.Timeline, author string) Heatmap {
	h := Heatmap{Weekdays: timeline.Weekdays(), Buckets: timeline.HourBuckets()}
	for _, r := range tl.ForAuthor(author).All() {
		day := slices.Index(h.Weekdays, r.Weekday)
		if day < 0 {
			continue
		}
		h.Counts[day][r.Hour]++
	}
	return h
}

// At returns the count for a weekday name and bucket label, 0 when either is unknown.
func (h Heatmap) At(weekday, bucket string) int {
	d := slices.Index(h.Weekdays, weekday)
	b := slices.Index(h.Buckets, bucket)
	if d < 0 || b < 0 {
		return 0
	}
	return h.Counts[d][b]
}

// Max returns the largest cell, for scaling.
func (h Heatmap) Max() int {
	m := 0
	for _, row := range h.Counts {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

func (h Heatmap) Total() int {
	n := 0
	for _, row := range h.Counts {
		for _, v := range row {
			n += v
		}
	}
	return n
}
