// Package threadmerge reconciles conversation fragments from separate export
// files into complete conversations
package threadmerge

import (
	"sort"

	"instalens/internal/core/records"
)

// Merge groups thread fragments by ThreadKey and collapses each group into a
// single thread: messages are concatenated in input order then stably sorted
// ascending by timestamp, participants are unioned by exact name in first-seen
// order. The output preserves first-seen group order
func Merge(fragments []records.Thread) []records.Thread {
	byKey := make(map[string]int, len(fragments))
	var out []records.Thread

	for _, frag := range fragments {
		idx, ok := byKey[frag.ThreadKey]
		if !ok {
			t := frag
			t.Messages = append([]records.Message(nil), frag.Messages...)
			t.Participants = append([]records.Participant(nil), frag.Participants...)
			byKey[frag.ThreadKey] = len(out)
			out = append(out, t)
			continue
		}

		dst := &out[idx]
		dst.Messages = append(dst.Messages, frag.Messages...)

		seen := make(map[string]struct{}, len(dst.Participants))
		for _, p := range dst.Participants {
			seen[p.Name] = struct{}{}
		}
		for _, p := range frag.Participants {
			if p.Name == "" {
				continue
			}
			if _, dup := seen[p.Name]; dup {
				continue
			}
			seen[p.Name] = struct{}{}
			dst.Participants = append(dst.Participants, p)
		}
	}

	for i := range out {
		msgs := out[i].Messages
		sort.SliceStable(msgs, func(a, b int) bool {
			return msgs[a].TimestampMs < msgs[b].TimestampMs
		})
	}
	return out
}
