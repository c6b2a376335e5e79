package analytics

import (
	"testing"

	"instalens/internal/core/records"
)

func TestComputeExtras_Saves(t *testing.T) {
	t.Parallel()

	rep := ComputeExtras([]records.SavedItem{
		{Href: "https://www.instagram.com/reel/xyz/", TimestampMs: jan1Noon, Creator: "ana", MediaType: records.MediaReel},
		{Href: "https://www.instagram.com/p/abc/", TimestampMs: jan1Noon + day, Creator: "ana", MediaType: records.MediaPost},
		{Href: "https://example.com/thing", TimestampMs: jan1Noon + day, Creator: "bob", MediaType: records.MediaOther},
	}, nil, nil)

	if rep.Saves.Total != 3 {
		t.Fatalf("total saves = %d, want 3", rep.Saves.Total)
	}
	if rep.Saves.TypeCount["reel"] != 1 || rep.Saves.TypeCount["post"] != 1 || rep.Saves.TypeCount["other"] != 1 {
		t.Fatalf("type counts = %+v", rep.Saves.TypeCount)
	}
	if rep.Saves.FirstMs != jan1Noon || rep.Saves.LastMs != jan1Noon+day {
		t.Fatalf("first/last = %d/%d", rep.Saves.FirstMs, rep.Saves.LastMs)
	}
	if rep.Saves.TopCreators[0].Key != "ana" || rep.Saves.TopCreators[0].Count != 2 {
		t.Fatalf("top creators = %+v", rep.Saves.TopCreators)
	}
	if rep.Saves.TopDomains[0].Key != "www.instagram.com" {
		t.Fatalf("top domains = %+v", rep.Saves.TopDomains)
	}
	if len(rep.Saves.Timeline) != 2 {
		t.Fatalf("timeline = %+v", rep.Saves.Timeline)
	}
}

func TestComputeExtras_CommentsMedianInterpolates(t *testing.T) {
	t.Parallel()

	// lengths 2 and 4: even count, median midpoint 3
	rep := ComputeExtras(nil, []records.Comment{
		{Text: "ab", Owner: "ana", TimestampMs: jan1Noon},
		{Text: "abcd", Owner: "bob", TimestampMs: jan1Noon},
	}, nil)

	if rep.Comments.MedianLen != 3 {
		t.Fatalf("median = %v, want 3", rep.Comments.MedianLen)
	}
	if rep.Comments.AvgLen != 3 {
		t.Fatalf("avg = %v, want 3", rep.Comments.AvgLen)
	}
}

func TestComputeExtras_CommentEmojis(t *testing.T) {
	t.Parallel()

	rep := ComputeExtras(nil, []records.Comment{
		{Text: "love it 😀😀🔥", Owner: "ana", TimestampMs: jan1Noon},
	}, nil)

	if len(rep.Comments.TopEmojis) != 2 {
		t.Fatalf("top emojis = %+v", rep.Comments.TopEmojis)
	}
	if rep.Comments.TopEmojis[0].Key != "😀" || rep.Comments.TopEmojis[0].Count != 2 {
		t.Fatalf("top emoji = %+v", rep.Comments.TopEmojis[0])
	}
}

func TestComputeExtras_TopicsDedupAndCap(t *testing.T) {
	t.Parallel()

	topics := []string{"Football", "football", "FOOTBALL", "Cooking"}
	for i := 0; i < 30; i++ {
		topics = append(topics, string(rune('A'+i))+"-topic")
	}
	rep := ComputeExtras(nil, nil, topics)

	if rep.Topics.Count != len(topics) {
		t.Fatalf("topic count = %d, want %d", rep.Topics.Count, len(topics))
	}
	if len(rep.Topics.Top) != 20 {
		t.Fatalf("top size = %d, want 20", len(rep.Topics.Top))
	}
	if rep.Topics.Top[0].Key != "Football" || rep.Topics.Top[0].Count != 1 {
		t.Fatalf("first topic = %+v, want first-seen casing with weight 1", rep.Topics.Top[0])
	}
	if rep.Topics.Top[1].Key != "Cooking" {
		t.Fatalf("second topic = %+v, duplicates not skipped", rep.Topics.Top[1])
	}
}
