package threadmerge

import (
	"testing"

	"instalens/internal/core/records"
)

func frag(key string, names []string, stamps ...int64) records.Thread {
	t := records.Thread{Title: key, ThreadKey: key}
	for _, n := range names {
		t.Participants = append(t.Participants, records.Participant{Name: n})
	}
	for _, ts := range stamps {
		t.Messages = append(t.Messages, records.Message{TimestampMs: ts})
	}
	return t
}

func TestMerge_SortsAcrossFragments(t *testing.T) {
	t.Parallel()

	got := Merge([]records.Thread{
		frag("k", []string{"Me", "Ana"}, 200, 100),
		frag("k", []string{"Ana", "Me"}, 150),
	})

	if len(got) != 1 {
		t.Fatalf("expected 1 merged thread, got %d", len(got))
	}
	want := []int64{100, 150, 200}
	for i, m := range got[0].Messages {
		if m.TimestampMs != want[i] {
			t.Fatalf("message %d timestamp = %d, want %d", i, m.TimestampMs, want[i])
		}
	}
	if len(got[0].Participants) != 2 {
		t.Fatalf("participants not deduplicated: %#v", got[0].Participants)
	}
}

func TestMerge_PreservesFirstSeenGroupOrder(t *testing.T) {
	t.Parallel()

	got := Merge([]records.Thread{
		frag("b", nil, 10),
		frag("a", nil, 20),
		frag("b", nil, 5),
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(got))
	}
	if got[0].ThreadKey != "b" || got[1].ThreadKey != "a" {
		t.Fatalf("group order not preserved: %q, %q", got[0].ThreadKey, got[1].ThreadKey)
	}
	if got[0].Messages[0].TimestampMs != 5 {
		t.Fatalf("merged thread not sorted: %#v", got[0].Messages)
	}
}

func TestMerge_StableForEqualTimestamps(t *testing.T) {
	t.Parallel()

	a := frag("k", nil)
	a.Messages = []records.Message{
		{SenderName: "first", TimestampMs: 100},
		{SenderName: "second", TimestampMs: 100},
	}
	got := Merge([]records.Thread{a})
	if got[0].Messages[0].SenderName != "first" {
		t.Fatalf("equal-timestamp order not stable: %#v", got[0].Messages)
	}
}
