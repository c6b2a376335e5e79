package analyze

import (
	"context"
	"testing"

	"instalens/internal/adapters/ingest/instaexport"
	perr "instalens/internal/platform/errors"
)

const threadDoc = `{
	"title": "Ana",
	"thread_path": "inbox/ana_123",
	"participants": [{"name": "Me"}, {"name": "Ana"}],
	"messages": [
		{"sender_name": "Ana", "timestamp_ms": 1704110400000, "content": "good boy"},
		{"sender_name": "Me", "timestamp_ms": 1704110500000, "content": "thanks"}
	]
}`

const loginDoc = `{
	"account_history_login_history": [
		{"title": "", "string_map_data": {
			"Time": {"timestamp": 1704110400},
			"IP Address": {"value": "1.2.3.4"},
			"User Agent": {"value": "Instagram 300.0.0 Android (33/13; 420dpi; 1080x2219; samsung; SM-G991B; o1s; exynos2100; en_GB)"}
		}}
	]
}`

func TestRun_ProducesSnapshot(t *testing.T) {
	t.Parallel()

	svc := New(Config{})
	snap, err := svc.Run(context.Background(), []instaexport.Document{
		{Name: "messages/inbox/ana/message_1.json", Raw: []byte(threadDoc)},
		{Name: "security/login_activity.json", Raw: []byte(loginDoc)},
		{Name: "junk.json", Raw: []byte(`{"unknown_key": true}`)},
		{Name: "broken.json", Raw: []byte(`{not json`)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if snap.Documents != 4 || snap.Recognized != 2 {
		t.Fatalf("documents/recognized = %d/%d, want 4/2", snap.Documents, snap.Recognized)
	}
	if snap.Messaging.Overview.TotalMessages != 2 {
		t.Fatalf("total messages = %d, want 2", snap.Messaging.Overview.TotalMessages)
	}
	if snap.Security.LoginsTotal != 1 {
		t.Fatalf("logins = %d, want 1", snap.Security.LoginsTotal)
	}
	if rows := snap.Messaging.Charts.PhrasesBySender["good boy"]; len(rows) != 1 || rows[0].Key != "Ana" {
		t.Fatalf("phrase rows = %+v", rows)
	}
	if svc.Latest() != snap {
		t.Fatal("latest snapshot not stored")
	}
}

func TestRun_NoConversationsFails(t *testing.T) {
	t.Parallel()

	svc := New(Config{})
	_, err := svc.Run(context.Background(), []instaexport.Document{
		{Name: "security/login_activity.json", Raw: []byte(loginDoc)},
	})
	if !perr.IsCode(err, perr.ErrorCodeNoData) {
		t.Fatalf("err = %v, want no-data code", err)
	}
	if svc.Latest() != nil {
		t.Fatal("failed run must not publish a snapshot")
	}
}

func TestRun_EmptyBatchFails(t *testing.T) {
	t.Parallel()

	svc := New(Config{})
	if _, err := svc.Run(context.Background(), nil); !perr.IsCode(err, perr.ErrorCodeNoData) {
		t.Fatalf("err = %v, want no-data code", err)
	}
}
