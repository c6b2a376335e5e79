package analytics

import (
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"instalens/internal/core/records"
	"instalens/internal/core/textkit"
)

// SavesReport aggregates the saved-item log
type SavesReport struct {
	Total       int            `json:"total"`
	FirstMs     int64          `json:"firstMs,omitempty"`
	LastMs      int64          `json:"lastMs,omitempty"`
	TypeCount   map[string]int `json:"typeCount"`
	Timeline    []CountEntry   `json:"timeline"`
	TopCreators []CountEntry   `json:"topCreators"`
	TopDomains  []CountEntry   `json:"topDomains"`
}

// CommentsReport aggregates the comment logs
type CommentsReport struct {
	Total     int          `json:"total"`
	FirstMs   int64        `json:"firstMs,omitempty"`
	LastMs    int64        `json:"lastMs,omitempty"`
	AvgLen    float64      `json:"avgLen"`
	MedianLen float64      `json:"medianLen"`
	Timeline  []CountEntry `json:"timeline"`
	TopOwners []CountEntry `json:"topOwners"`
	TopEmojis []CountEntry `json:"topEmojis"`
}

// TopicsReport lists the account's interest topics
type TopicsReport struct {
	Count int          `json:"count"`
	Top   []CountEntry `json:"top"`
}

// ExtrasReport is the engagement analytics result
type ExtrasReport struct {
	Saves    SavesReport    `json:"saves"`
	Comments CommentsReport `json:"comments"`
	Topics   TopicsReport   `json:"topics"`
}

// ComputeExtras aggregates saved-item, comment, and topic statistics
func ComputeExtras(saves []records.SavedItem, comments []records.Comment, topics []string) *ExtrasReport {
	rep := &ExtrasReport{}

	// Saves
	byDay := newCounter()
	byCreator := newCounter()
	byDomain := newCounter()
	typeCount := map[string]int{"post": 0, "reel": 0, "other": 0}
	for _, s := range saves {
		byDay.add(dayKey(s.TimestampMs), 1)
		if rep.Saves.FirstMs == 0 || s.TimestampMs < rep.Saves.FirstMs {
			rep.Saves.FirstMs = s.TimestampMs
		}
		if s.TimestampMs > rep.Saves.LastMs {
			rep.Saves.LastMs = s.TimestampMs
		}
		if s.Creator != "" {
			byCreator.add(s.Creator, 1)
		}
		if u, err := url.Parse(s.Href); err == nil && u.Hostname() != "" {
			byDomain.add(u.Hostname(), 1)
		}
		if _, ok := typeCount[string(s.MediaType)]; ok {
			typeCount[string(s.MediaType)]++
		}
	}
	rep.Saves.Total = len(saves)
	rep.Saves.TypeCount = typeCount
	rep.Saves.Timeline = daySeries(byDay)
	rep.Saves.TopCreators = byCreator.top(10)
	rep.Saves.TopDomains = byDomain.top(10)

	// Comments
	cByDay := newCounter()
	cByOwner := newCounter()
	cEmoji := newCounter()
	totalLen := 0
	var lengths []int
	for _, c := range comments {
		cByDay.add(dayKey(c.TimestampMs), 1)
		if rep.Comments.FirstMs == 0 || c.TimestampMs < rep.Comments.FirstMs {
			rep.Comments.FirstMs = c.TimestampMs
		}
		if c.TimestampMs > rep.Comments.LastMs {
			rep.Comments.LastMs = c.TimestampMs
		}
		if c.Owner != "" {
			cByOwner.add(c.Owner, 1)
		}
		n := utf8.RuneCountInString(c.Text)
		totalLen += n
		lengths = append(lengths, n)
		for _, e := range textkit.Extract(c.Text) {
			cEmoji.add(e, 1)
		}
	}
	rep.Comments.Total = len(comments)
	if len(comments) > 0 {
		rep.Comments.AvgLen = float64(totalLen) / float64(len(comments))
	}
	if len(lengths) > 0 {
		sort.Ints(lengths)
		lo := (len(lengths) - 1) / 2
		hi := len(lengths) / 2
		rep.Comments.MedianLen = float64(lengths[lo]+lengths[hi]) / 2
	}
	rep.Comments.Timeline = daySeries(cByDay)
	rep.Comments.TopOwners = cByOwner.top(10)
	rep.Comments.TopEmojis = cEmoji.top(10)

	// Topics: case-insensitive dedup keeping first-seen casing, uniform weight
	seen := make(map[string]struct{}, len(topics))
	var top []CountEntry
	for _, t := range topics {
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if len(top) < 20 {
			top = append(top, CountEntry{Key: t, Count: 1})
		}
	}
	rep.Topics.Count = len(topics)
	rep.Topics.Top = top

	return rep
}
