package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"instalens/internal/core/records"
	"instalens/internal/core/textkit"
)

// Source shapes shared by the string-map family of export files.
// Timestamps in string maps are seconds; thread messages carry milliseconds

type mapValue struct {
	Href      string `json:"href"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

type mapItem struct {
	Title          string              `json:"title"`
	StringMapData  map[string]mapValue `json:"string_map_data"`
	StringListData []mapValue          `json:"string_list_data"`
}

func (it mapItem) value(key string) string {
	return it.StringMapData[key].Value
}

func (it mapItem) timestampMs(key string) int64 {
	return it.StringMapData[key].Timestamp * 1000
}

type rawReaction struct {
	Reaction string `json:"reaction"`
	Actor    string `json:"actor"`
}

type rawMessage struct {
	SenderName  string            `json:"sender_name"`
	TimestampMs int64             `json:"timestamp_ms"`
	Content     string            `json:"content"`
	Reactions   []rawReaction     `json:"reactions"`
	Photos      []json.RawMessage `json:"photos"`
	Videos      []json.RawMessage `json:"videos"`
	AudioFiles  []json.RawMessage `json:"audio_files"`
}

type rawParticipant struct {
	Name string `json:"name"`
}

type rawThread struct {
	Title        string           `json:"title"`
	ThreadPath   string           `json:"thread_path"`
	Participants []rawParticipant `json:"participants"`
	Messages     []rawMessage     `json:"messages"`
}

// Conversations

func normalizeThreadList(raw []byte) []records.Record {
	var arr []rawThread
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(arr))
	for _, rt := range arr {
		t := normalizeThread(rt)
		out = append(out, records.Record{Kind: records.KindThread, Thread: &t})
	}
	return out
}

func normalizeInbox(raw []byte) []records.Record {
	var wrapper struct {
		Conversations []rawThread `json:"conversations"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(wrapper.Conversations))
	for _, rt := range wrapper.Conversations {
		t := normalizeThread(rt)
		out = append(out, records.Record{Kind: records.KindThread, Thread: &t})
	}
	return out
}

func normalizeSingleThread(raw []byte) []records.Record {
	var rt rawThread
	if err := json.Unmarshal(raw, &rt); err != nil {
		return nil
	}
	t := normalizeThread(rt)
	return []records.Record{{Kind: records.KindThread, Thread: &t}}
}

func normalizeThread(rt rawThread) records.Thread {
	t := records.Thread{Title: textkit.Repair(rt.Title)}

	t.Participants = make([]records.Participant, 0, len(rt.Participants))
	for _, p := range rt.Participants {
		t.Participants = append(t.Participants, records.Participant{Name: textkit.Repair(p.Name)})
	}
	if t.Title == "" {
		t.Title = deriveTitle(t.Participants)
	}

	if rt.ThreadPath != "" {
		t.ThreadKey = rt.ThreadPath
	} else {
		t.ThreadKey = "title:" + t.Title
	}

	t.Messages = make([]records.Message, 0, len(rt.Messages))
	for _, rm := range rt.Messages {
		m := records.Message{
			SenderName:  textkit.Repair(rm.SenderName),
			TimestampMs: rm.TimestampMs,
			Content:     textkit.Repair(rm.Content),
			PhotosCount: len(rm.Photos),
			VideosCount: len(rm.Videos),
			AudioCount:  len(rm.AudioFiles),
		}
		for _, rr := range rm.Reactions {
			m.Reactions = append(m.Reactions, records.Reaction{
				EmojiText: textkit.Repair(rr.Reaction),
				ActorName: textkit.Repair(rr.Actor),
			})
		}
		t.Messages = append(t.Messages, m)
	}
	return t
}

// deriveTitle builds a display title from participant names when the export
// omits one: the non-"me" partner for one-to-one threads, else the first
// three names with an overflow suffix
func deriveTitle(parts []records.Participant) string {
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	if len(names) <= 2 {
		for _, n := range names {
			if strings.ToLower(n) != "me" {
				return n
			}
		}
		return strings.Join(names, ", ")
	}
	title := strings.Join(names[:3], ", ")
	if len(names) > 3 {
		title += " +" + strconv.Itoa(len(names)-3)
	}
	return title
}

// Saved media

func normalizeSaved(raw []byte) []records.Record {
	var wrapper struct {
		Saved []mapItem `json:"saved_saved_media"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, it := range wrapper.Saved {
		mv, ok := it.StringMapData["Saved on"]
		if !ok {
			continue
		}
		s := records.SavedItem{
			Href:        mv.Href,
			TimestampMs: mv.Timestamp * 1000,
			Creator:     textkit.Repair(it.Title),
			MediaType:   mediaTypeOf(mv.Href),
		}
		out = append(out, records.Record{Kind: records.KindSavedItem, Saved: &s})
	}
	return out
}

func mediaTypeOf(href string) records.MediaType {
	switch {
	case strings.Contains(href, "/reel/"):
		return records.MediaReel
	case strings.Contains(href, "/p/"):
		return records.MediaPost
	default:
		return records.MediaOther
	}
}

// Comments

func normalizeReelComments(raw []byte) []records.Record {
	var wrapper struct {
		Comments []mapItem `json:"comments_reels_comments"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	return commentRecords(wrapper.Comments)
}

func normalizePostComments(raw []byte) []records.Record {
	var items []mapItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return commentRecords(items)
}

func commentRecords(items []mapItem) []records.Record {
	out := make([]records.Record, 0, len(items))
	for _, it := range items {
		c := records.Comment{
			Text:        textkit.Repair(it.value("Comment")),
			Owner:       it.value("Media Owner"),
			TimestampMs: it.timestampMs("Time"),
		}
		out = append(out, records.Record{Kind: records.KindComment, Comment: &c})
	}
	return out
}

// Topics

func normalizeTopics(raw []byte) []records.Record {
	var wrapper struct {
		Topics []mapItem `json:"topics_your_topics"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, it := range wrapper.Topics {
		if name := textkit.Repair(it.value("Name")); name != "" {
			out = append(out, records.Record{Kind: records.KindTopic, Topic: name})
		}
	}
	return out
}

// Account history

func normalizeLogins(raw []byte) []records.Record {
	var wrapper struct {
		History []mapItem `json:"account_history_login_history"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(wrapper.History))
	for _, it := range wrapper.History {
		ev := loginFields(it)
		out = append(out, records.Record{Kind: records.KindLogin, Login: &ev})
	}
	return out
}

func normalizeLogouts(raw []byte) []records.Record {
	var wrapper struct {
		History []mapItem `json:"account_history_logout_history"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(wrapper.History))
	for _, it := range wrapper.History {
		in := loginFields(it)
		ev := records.LogoutEvent(in)
		out = append(out, records.Record{Kind: records.KindLogout, Logout: &ev})
	}
	return out
}

func loginFields(it mapItem) records.LoginEvent {
	ev := records.LoginEvent{
		TimestampMs: it.timestampMs("Time"),
		Location:    textkit.Repair(it.value("Location")),
		IP:          it.value("IP Address"),
		Device:      it.value("User Agent"),
		Country:     textkit.Repair(it.value("Country")),
		CountryCode: it.value("Country Code"),
		Cookie:      it.value("Cookie Name"),
		Language:    it.value("Language Code"),
	}
	lat, latOK := parseCoord(it.value("Latitude"))
	lon, lonOK := parseCoord(it.value("Longitude"))
	if latOK && lonOK {
		ev.Lat, ev.Lon, ev.HasCoords = lat, lon, true
	}
	return ev
}

func parseCoord(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Devices

func normalizeDevices(raw []byte) []records.Record {
	var wrapper struct {
		Devices []mapItem `json:"devices_devices"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(wrapper.Devices))
	for _, it := range wrapper.Devices {
		d := records.DeviceRecord{
			Device:      it.value("User Agent"),
			LastLoginMs: it.timestampMs("Last Login"),
		}
		out = append(out, records.Record{Kind: records.KindDevice, Device: &d})
	}
	return out
}

// Profile changes

func normalizeProfileChanges(raw []byte) []records.Record {
	var wrapper struct {
		Changes []mapItem `json:"profile_profile_change"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(wrapper.Changes))
	for _, it := range wrapper.Changes {
		pc := records.ProfileChangeEvent{
			Type:        it.value("Changed"),
			Value:       textkit.Repair(it.value("New Value")),
			TimestampMs: it.timestampMs("Change Date"),
		}
		out = append(out, records.Record{Kind: records.KindProfileChange, ProfileChange: &pc})
	}
	return out
}

// Signup: one schema, two entity kinds. The registration info becomes a
// SignupRecord plus a ProfileChangeEvent per identity field so the profile
// timeline starts at account creation

func normalizeSignup(raw []byte) []records.Record {
	var wrapper struct {
		Info []mapItem `json:"account_history_registration_info"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, it := range wrapper.Info {
		ts := it.timestampMs("Time")
		sr := records.SignupRecord{
			TimestampMs: ts,
			Email:       it.value("Email"),
			Phone:       it.value("Phone Number"),
			Username:    it.value("Username"),
			IP:          it.value("IP Address"),
			Device:      it.value("Device"),
		}
		out = append(out, records.Record{Kind: records.KindSignup, Signup: &sr})

		for _, f := range [...]struct{ typ, val string }{
			{"Username", sr.Username},
			{"Email", sr.Email},
			{"Phone Number", sr.Phone},
		} {
			if f.val == "" {
				continue
			}
			pc := records.ProfileChangeEvent{Type: f.typ, Value: f.val, TimestampMs: ts}
			out = append(out, records.Record{Kind: records.KindProfileChange, ProfileChange: &pc})
		}
	}
	return out
}

// Location history

func normalizeLastLocation(raw []byte) []records.Record {
	var wrapper struct {
		Locations []mapItem `json:"account_history_imprecise_last_known_location"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, it := range wrapper.Locations {
		lat, latOK := parseCoord(it.value("Imprecise Latitude"))
		lon, lonOK := parseCoord(it.value("Imprecise Longitude"))
		if !latOK || !lonOK {
			continue
		}
		gp := records.GeoPoint{
			TimestampMs: it.timestampMs("GPS Time Uploaded"),
			Lat:         lat,
			Lon:         lon,
			Label:       "Last known location",
			SourceType:  "last_known",
		}
		out = append(out, records.Record{Kind: records.KindGeoPoint, Geo: &gp})
	}
	return out
}

func normalizeInterestLocations(raw []byte) []records.Record {
	var wrapper struct {
		LabelValues []struct {
			Label string `json:"label"`
			Vec   []struct {
				Value string `json:"value"`
			} `json:"vec"`
		} `json:"label_values"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, lv := range wrapper.LabelValues {
		for _, v := range lv.Vec {
			if v.Value == "" {
				continue
			}
			gp := records.GeoPoint{
				Label:      textkit.Repair(v.Value),
				SourceType: "location_of_interest",
			}
			out = append(out, records.Record{Kind: records.KindGeoPoint, Geo: &gp})
		}
	}
	return out
}

// Security artifacts

func normalizeTwoFactor(raw []byte) []records.Record {
	var wrapper struct {
		Methods []mapItem `json:"devices_two_factor_authentication"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, it := range wrapper.Methods {
		method := it.value("Method")
		if method == "" {
			for _, mv := range it.StringMapData {
				if mv.Value != "" {
					method = mv.Value
					break
				}
			}
		}
		if method == "" && it.Title != "" {
			method = it.Title
		}
		if method == "" {
			continue
		}
		tf := records.TwoFactorDevice{Method: method}
		out = append(out, records.Record{Kind: records.KindTwoFactor, TwoFactor: &tf})
	}
	return out
}

func normalizeCamera(raw []byte) []records.Record {
	var wrapper struct {
		Cameras []mapItem `json:"devices_camera"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	out := make([]records.Record, 0, len(wrapper.Cameras))
	for _, it := range wrapper.Cameras {
		cam := records.CameraDevice{
			DeviceID:    it.value("Device ID"),
			SDKVersions: it.value("Supported SDK Versions"),
			Compression: it.value("Compression"),
		}
		out = append(out, records.Record{Kind: records.KindCamera, Camera: &cam})
	}
	return out
}

func normalizeInferredEmails(raw []byte) []records.Record {
	var wrapper struct {
		Emails []mapItem `json:"inferred_data_inferred_emails"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	var out []records.Record
	for _, it := range wrapper.Emails {
		for _, v := range it.StringListData {
			if v.Value == "" {
				continue
			}
			ie := records.InferredEmail{Email: v.Value}
			out = append(out, records.Record{Kind: records.KindInferredEmail, InferredEmail: &ie})
		}
	}
	return out
}
