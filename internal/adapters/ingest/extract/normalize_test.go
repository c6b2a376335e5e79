package extract

import (
	"testing"

	"instalens/internal/core/records"
)

func TestFromDocument_Thread(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"title": "Ana",
		"thread_path": "inbox/ana_123",
		"participants": [{"name": "Me"}, {"name": "Ana"}],
		"messages": [
			{
				"sender_name": "Ana",
				"timestamp_ms": 1700000000000,
				"content": "hi ð",
				"reactions": [{"reaction": "ð", "actor": "Me"}],
				"photos": [{"uri": "a.jpg"}]
			}
		]
	}`)

	schema, recs := FromDocument(raw)
	if schema != SchemaThread {
		t.Fatalf("schema = %v, want SchemaThread", schema)
	}
	if len(recs) != 1 || recs[0].Kind != records.KindThread {
		t.Fatalf("unexpected records: %#v", recs)
	}

	th := recs[0].Thread
	if th.ThreadKey != "inbox/ana_123" {
		t.Fatalf("ThreadKey = %q", th.ThreadKey)
	}
	m := th.Messages[0]
	if m.Content != "hi 😀" {
		t.Fatalf("content not repaired: %q", m.Content)
	}
	if m.Reactions[0].EmojiText != "👍" {
		t.Fatalf("reaction not repaired: %q", m.Reactions[0].EmojiText)
	}
	if m.PhotosCount != 1 || m.VideosCount != 0 || m.AudioCount != 0 {
		t.Fatalf("media counts wrong: %+v", m)
	}
}

func TestFromDocument_ThreadKeyFallsBackToTitle(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"title":"Crew","participants":[],"messages":[]}`)
	_, recs := FromDocument(raw)
	if recs[0].Thread.ThreadKey != "title:Crew" {
		t.Fatalf("ThreadKey = %q, want title:Crew", recs[0].Thread.ThreadKey)
	}
}

func TestFromDocument_DerivedTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "one to one picks partner",
			raw:  `{"participants":[{"name":"Me"},{"name":"Ana"}],"messages":[]}`,
			want: "Ana",
		},
		{
			name: "group truncates with overflow",
			raw:  `{"participants":[{"name":"A"},{"name":"B"},{"name":"C"},{"name":"D"},{"name":"E"}],"messages":[]}`,
			want: "A, B, C +2",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, recs := FromDocument([]byte(tc.raw))
			if got := recs[0].Thread.Title; got != tc.want {
				t.Fatalf("title = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFromDocument_Saved(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"saved_saved_media":[
		{"title":"chefsteve","string_map_data":{"Saved on":{"href":"https://www.instagram.com/reel/xyz/","timestamp":1700000000}}},
		{"title":"artsy","string_map_data":{"Saved on":{"href":"https://www.instagram.com/p/abc/","timestamp":1700000001}}},
		{"title":"noentry","string_map_data":{}}
	]}`)

	schema, recs := FromDocument(raw)
	if schema != SchemaSavedMedia {
		t.Fatalf("schema = %v", schema)
	}
	if len(recs) != 2 {
		t.Fatalf("expected entry without 'Saved on' dropped, got %d records", len(recs))
	}
	if recs[0].Saved.MediaType != records.MediaReel || recs[1].Saved.MediaType != records.MediaPost {
		t.Fatalf("media types wrong: %v, %v", recs[0].Saved.MediaType, recs[1].Saved.MediaType)
	}
	if recs[0].Saved.TimestampMs != 1700000000000 {
		t.Fatalf("timestamp not scaled to ms: %d", recs[0].Saved.TimestampMs)
	}
}

func TestFromDocument_PostComments(t *testing.T) {
	t.Parallel()

	raw := []byte(`[
		{"string_map_data":{
			"Comment":{"value":"great ð¥"},
			"Media Owner":{"value":"someone"},
			"Time":{"timestamp":1700000000}
		}},
		{"string_map_data":{"Time":{"timestamp":1700000005}}}
	]`)

	schema, recs := FromDocument(raw)
	if schema != SchemaPostComments {
		t.Fatalf("schema = %v", schema)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Comment.Text != "great 🔥" {
		t.Fatalf("comment not repaired: %q", recs[0].Comment.Text)
	}
	// missing fields default to zero values, never fail
	if recs[1].Comment.Text != "" || recs[1].Comment.Owner != "" {
		t.Fatalf("defaults wrong: %#v", recs[1].Comment)
	}
}

func TestFromDocument_Logins(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"account_history_login_history":[
		{"title":"x","string_map_data":{
			"Time":{"timestamp":1700000000},
			"IP Address":{"value":"203.0.113.4"},
			"User Agent":{"value":"Instagram 300.0 Android (33/13; Pixel 7; google)"},
			"Cookie Name":{"value":"**"},
			"Language Code":{"value":"en"},
			"Latitude":{"value":"52.52"},
			"Longitude":{"value":"13.40"}
		}}
	]}`)

	schema, recs := FromDocument(raw)
	if schema != SchemaLoginActivity {
		t.Fatalf("schema = %v", schema)
	}
	ev := recs[0].Login
	if ev.TimestampMs != 1700000000000 {
		t.Fatalf("timestamp = %d", ev.TimestampMs)
	}
	if !ev.HasCoords || ev.Lat != 52.52 || ev.Lon != 13.40 {
		t.Fatalf("coords not parsed: %+v", ev)
	}
	if ev.IP != "203.0.113.4" || ev.Language != "en" {
		t.Fatalf("fields wrong: %+v", ev)
	}
}

func TestFromDocument_SignupEmitsTwoKinds(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"account_history_registration_info":[
		{"string_map_data":{
			"Username":{"value":"ana_x"},
			"Email":{"value":"ana@example.com"},
			"Time":{"timestamp":1500000000},
			"IP Address":{"value":"198.51.100.1"},
			"Device":{"value":"iPhone"}
		}}
	]}`)

	_, recs := FromDocument(raw)
	var signups, changes int
	for _, r := range recs {
		switch r.Kind {
		case records.KindSignup:
			signups++
		case records.KindProfileChange:
			changes++
		}
	}
	if signups != 1 {
		t.Fatalf("signups = %d", signups)
	}
	// username + email (phone absent)
	if changes != 2 {
		t.Fatalf("profile changes = %d, want 2", changes)
	}
}

func TestFromDocument_LastLocation(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"account_history_imprecise_last_known_location":[
		{"string_map_data":{
			"Imprecise Latitude":{"value":"40.71"},
			"Imprecise Longitude":{"value":"-74.00"},
			"GPS Time Uploaded":{"timestamp":1700000000}
		}},
		{"string_map_data":{"Imprecise Latitude":{"value":"not-a-number"}}}
	]}`)

	_, recs := FromDocument(raw)
	if len(recs) != 1 {
		t.Fatalf("unparseable coordinates must be dropped, got %d records", len(recs))
	}
	gp := recs[0].Geo
	if gp.Lat != 40.71 || gp.Lon != -74.00 || gp.SourceType != "last_known" {
		t.Fatalf("geo point wrong: %+v", gp)
	}
}

func TestFromDocument_TopicsAndEmails(t *testing.T) {
	t.Parallel()

	_, topics := FromDocument([]byte(`{"topics_your_topics":[
		{"string_map_data":{"Name":{"value":"Street Food"}}},
		{"string_map_data":{}}
	]}`))
	if len(topics) != 1 || topics[0].Topic != "Street Food" {
		t.Fatalf("topics wrong: %#v", topics)
	}

	_, emails := FromDocument([]byte(`{"inferred_data_inferred_emails":[
		{"string_list_data":[{"value":"a@b.c"},{"value":""}]}
	]}`))
	if len(emails) != 1 || emails[0].InferredEmail.Email != "a@b.c" {
		t.Fatalf("emails wrong: %#v", emails)
	}
}
