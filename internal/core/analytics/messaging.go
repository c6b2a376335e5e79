package analytics

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"instalens/internal/core/records"
	"instalens/internal/core/textkit"
)

// Trend compares the most recent 30-day message window to the preceding one
type Trend struct {
	Direction string `json:"direction"` // up | down | flat
	DeltaPct  int    `json:"deltaPct"`
}

// HourCount is one hour-of-day bucket
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// MediaTotals sums media attachments across all messages
type MediaTotals struct {
	Photos            int `json:"photos"`
	Videos            int `json:"videos"`
	Audios            int `json:"audios"`
	MessagesWithMedia int `json:"messagesWithMedia"`
}

// Overview is the headline block of a messaging report
type Overview struct {
	TotalMessages      int    `json:"totalMessages"`
	TotalConversations int    `json:"totalConversations"`
	TotalEmojis        int    `json:"totalEmojis"`
	StartDate          string `json:"startDate,omitempty"`
	EndDate            string `json:"endDate,omitempty"`
	RangeDays          int    `json:"rangeDays"`
}

// SenderAverage is a per-sender average message length row
type SenderAverage struct {
	Key string  `json:"key"`
	Avg float64 `json:"avg"`
}

// Stats holds the derived messaging metrics
type Stats struct {
	AvgPerDay              float64     `json:"avgPerDay"`
	AvgMsgLength           float64     `json:"avgMsgLength"`
	MedianMsgLength        int         `json:"medianMsgLength"`
	MostActiveDay          *CountEntry `json:"mostActiveDay,omitempty"`
	MostActiveHour         *HourCount  `json:"mostActiveHour,omitempty"`
	MostActiveConversation *CountEntry `json:"mostActiveConversation,omitempty"`
	TopOneToOne            *CountEntry `json:"topOneToOne,omitempty"`
	TopSender              *CountEntry `json:"topSender,omitempty"`
	TopMediaSender         *CountEntry `json:"topMediaSender,omitempty"`
	UniqueActiveDays       int         `json:"uniqueActiveDays"`
	ActiveDaysPct          int         `json:"activeDaysPct"`
	Media                  MediaTotals `json:"media"`
	ReactionsTotal         int         `json:"reactionsTotal"`
	StreakCurrent          int         `json:"streakCurrent"`
	StreakLongest          int         `json:"streakLongest"`
	Trend                  Trend       `json:"trend"`
	WordsTotal             int         `json:"wordsTotal"`
}

// Charts holds the ranked tables and time series of a messaging report
type Charts struct {
	ConversationsTop10   []CountEntry            `json:"conversationsTop10"`
	EmojisTextTop15      []CountEntry            `json:"emojisTextTop15"`
	EmojisReactionsTop15 []CountEntry            `json:"emojisReactionsTop15"`
	EmojisCombinedTop15  []CountEntry            `json:"emojisCombinedTop15"`
	DailySeries          []CountEntry            `json:"dailySeries"`
	HoursSeries          [24]int                 `json:"hoursSeries"`
	WordsTop20           []CountEntry            `json:"wordsTop20"`
	BySender             []CountEntry            `json:"bySender"`
	BySenderAvgLen       []SenderAverage         `json:"bySenderAvgLen"`
	BySenderWords        []CountEntry            `json:"bySenderWords"`
	BySenderMedia        []CountEntry            `json:"bySenderMedia"`
	PhrasesBySender      map[string][]CountEntry `json:"phrasesBySender,omitempty"`
}

// Report is the full messaging analytics result
type Report struct {
	Overview Overview `json:"overview"`
	Stats    Stats    `json:"stats"`
	Charts   Charts   `json:"charts"`
}

// Options tunes the messaging pass
type Options struct {
	// Phrases are literal multi-word phrases counted per sender.
	// Product extras; the core statistics do not depend on them
	Phrases []string
}

// DefaultPhrases are the phrase extras counted when no options are given
var DefaultPhrases = []string{"good boy"}

// Compute runs the messaging pass with default options
func Compute(threads []records.Thread) *Report {
	return ComputeWith(threads, Options{Phrases: DefaultPhrases})
}

// ComputeWith aggregates conversation and message statistics in a single pass
// over merged threads
func ComputeWith(threads []records.Thread, opts Options) *Report {
	rep := &Report{}
	rep.Overview.TotalConversations = len(threads)

	convCounts := newCounter()
	oneToOne := newCounter()
	emojiText := newCounter()
	emojiReaction := newCounter()
	daily := newCounter()
	words := newCounter()
	bySender := newCounter()
	bySenderLen := newCounter()
	bySenderMsgs := newCounter()
	bySenderWords := newCounter()
	bySenderMedia := newCounter()

	var phraseCounters []*PhraseCounter
	phraseBySender := make(map[string]*counter)
	for _, p := range opts.Phrases {
		if pc := NewPhraseCounter(p); pc != nil {
			phraseCounters = append(phraseCounters, pc)
			phraseBySender[pc.Phrase()] = newCounter()
		}
	}

	var hours [24]int
	var minTs, maxTs int64
	haveTs := false
	totalLen, textCount := 0, 0
	var lengths []int

	for _, t := range threads {
		convCounts.add(t.Title, len(t.Messages))

		if len(t.Participants) == 2 {
			partner := ""
			for _, p := range t.Participants {
				if p.Name != "" && strings.ToLower(p.Name) != "me" {
					partner = p.Name
					break
				}
			}
			if partner == "" {
				partner = t.Participants[1].Name
			}
			if partner != "" {
				oneToOne.add(partner, len(t.Messages))
			}
		}

		for _, m := range t.Messages {
			rep.Overview.TotalMessages++
			if m.SenderName != "" {
				bySender.add(m.SenderName, 1)
			}
			if m.TimestampMs != 0 {
				if !haveTs || m.TimestampMs < minTs {
					minTs = m.TimestampMs
				}
				if !haveTs || m.TimestampMs > maxTs {
					maxTs = m.TimestampMs
				}
				haveTs = true
				daily.add(dayKey(m.TimestampMs), 1)
				hours[time.UnixMilli(m.TimestampMs).Hour()]++
			}

			if m.Content != "" {
				n := utf8.RuneCountInString(m.Content)
				totalLen += n
				textCount++
				lengths = append(lengths, n)

				for _, e := range textkit.Extract(m.Content) {
					if textkit.IsEmojiToken(e) {
						emojiText.add(e, 1)
					}
				}
				toks := textkit.Words(m.Content)
				for _, w := range toks {
					words.add(w, 1)
				}

				if m.SenderName != "" {
					bySenderLen.add(m.SenderName, n)
					bySenderMsgs.add(m.SenderName, 1)
					bySenderWords.add(m.SenderName, len(toks))
					for _, pc := range phraseCounters {
						if c := pc.Count(m.Content); c > 0 {
							phraseBySender[pc.Phrase()].add(m.SenderName, c)
						}
					}
				}
			}

			rep.Stats.ReactionsTotal += len(m.Reactions)
			for _, r := range m.Reactions {
				for _, e := range textkit.Extract(r.EmojiText) {
					if textkit.IsEmojiToken(e) {
						emojiReaction.add(e, 1)
					}
				}
			}

			media := m.PhotosCount + m.VideosCount + m.AudioCount
			rep.Stats.Media.Photos += m.PhotosCount
			rep.Stats.Media.Videos += m.VideosCount
			rep.Stats.Media.Audios += m.AudioCount
			if media > 0 {
				rep.Stats.Media.MessagesWithMedia++
				if m.SenderName != "" {
					bySenderMedia.add(m.SenderName, media)
				}
			}
		}
	}

	if haveTs {
		rep.Overview.StartDate = dayKey(minTs)
		rep.Overview.EndDate = dayKey(maxTs)
		span := dayFloor(maxTs) - dayFloor(minTs)
		days := int(span/dayMs) + 1
		if days < 1 {
			days = 1
		}
		rep.Overview.RangeDays = days
	}
	rep.Overview.TotalEmojis = emojiText.total() + emojiReaction.total()

	rangeDays := rep.Overview.RangeDays
	if rangeDays < 1 {
		rangeDays = 1
	}
	rep.Stats.AvgPerDay = float64(rep.Overview.TotalMessages) / float64(rangeDays)
	if textCount > 0 {
		rep.Stats.AvgMsgLength = float64(totalLen) / float64(textCount)
	}
	if len(lengths) > 0 {
		sort.Ints(lengths)
		rep.Stats.MedianMsgLength = lengths[len(lengths)/2]
	}
	rep.Stats.UniqueActiveDays = daily.len()
	if rep.Overview.RangeDays > 0 {
		pct := float64(daily.len()) / float64(rep.Overview.RangeDays) * 100
		rep.Stats.ActiveDaysPct = int(math.Round(pct))
	}
	rep.Stats.WordsTotal = words.total()

	if e, ok := daily.best(); ok {
		rep.Stats.MostActiveDay = &e
	}
	bestHour, bestHourCount := 0, -1
	for h, c := range hours {
		if c > bestHourCount {
			bestHour, bestHourCount = h, c
		}
	}
	if bestHourCount > 0 {
		rep.Stats.MostActiveHour = &HourCount{Hour: bestHour, Count: bestHourCount}
	}
	if e, ok := convCounts.best(); ok {
		rep.Stats.MostActiveConversation = &e
	}
	if e, ok := oneToOne.best(); ok {
		rep.Stats.TopOneToOne = &e
	}
	if e, ok := bySender.best(); ok {
		rep.Stats.TopSender = &e
	}
	if e, ok := bySenderMedia.best(); ok {
		rep.Stats.TopMediaSender = &e
	}

	if haveTs {
		rep.Stats.StreakCurrent, rep.Stats.StreakLongest = streaks(daily, minTs, maxTs)
		rep.Stats.Trend = trend(daily, maxTs)
	} else {
		rep.Stats.Trend = Trend{Direction: "flat", DeltaPct: 0}
	}

	rep.Charts = Charts{
		ConversationsTop10:   convCounts.top(10),
		EmojisTextTop15:      emojiText.top(15),
		EmojisReactionsTop15: emojiReaction.top(15),
		EmojisCombinedTop15:  merged(emojiText, emojiReaction).top(15),
		DailySeries:          daySeries(daily),
		HoursSeries:          hours,
		WordsTop20:           words.top(20),
		BySender:             bySender.top(-1),
		BySenderAvgLen:       senderAverages(bySenderLen, bySenderMsgs),
		BySenderWords:        bySenderWords.top(-1),
		BySenderMedia:        bySenderMedia.top(-1),
	}
	if len(phraseCounters) > 0 {
		rep.Charts.PhrasesBySender = make(map[string][]CountEntry, len(phraseCounters))
		for phrase, c := range phraseBySender {
			rep.Charts.PhrasesBySender[phrase] = c.top(-1)
		}
	}

	return rep
}

// daySeries returns the per-day counts sorted ascending by calendar day
func daySeries(daily *counter) []CountEntry {
	out := daily.entries()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// senderAverages computes average text length per sender, sorted descending
func senderAverages(sumLen, msgCount *counter) []SenderAverage {
	var out []SenderAverage
	for _, e := range sumLen.entries() {
		cnt := msgCount.get(e.Key)
		if cnt == 0 {
			cnt = 1
		}
		avg := float64(e.Count) / float64(cnt)
		out = append(out, SenderAverage{Key: e.Key, Avg: math.Round(avg*10) / 10})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Avg > out[j].Avg })
	return out
}

// streaks walks every calendar day between minTs and maxTs inclusive, finding
// the longest run of consecutive active days and the run ending at the last day
func streaks(daily *counter, minTs, maxTs int64) (current, longest int) {
	start := dayFloor(minTs)
	end := dayFloor(maxTs)

	run := 0
	for d := start; d <= end; d += dayMs {
		if daily.get(dayKey(d)) > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	for d := end; d >= start; d -= dayMs {
		if daily.get(dayKey(d)) == 0 {
			break
		}
		current++
	}
	return current, longest
}

// trend compares the last 30 days against the 30 days before them
func trend(daily *counter, maxTs int64) Trend {
	end := dayFloor(maxTs)
	currStart := end - 29*dayMs
	prevEnd := currStart - dayMs
	prevStart := prevEnd - 29*dayMs

	sum := func(from, to int64) int {
		s := 0
		for d := from; d <= to; d += dayMs {
			s += daily.get(dayKey(d))
		}
		return s
	}
	curr := sum(currStart, end)
	prev := sum(prevStart, prevEnd)

	switch {
	case prev == 0 && curr > 0:
		return Trend{Direction: "up", DeltaPct: 100}
	case prev == 0 && curr == 0:
		return Trend{Direction: "flat", DeltaPct: 0}
	}

	denom := prev
	if denom < 1 {
		denom = 1
	}
	delta := float64(curr-prev) / float64(denom) * 100
	dir := "flat"
	if delta > 3 {
		dir = "up"
	} else if delta < -3 {
		dir = "down"
	}
	return Trend{Direction: dir, DeltaPct: int(math.Round(delta))}
}
