// Package extract classifies raw export documents and normalizes them into
// canonical records. Several export schemas are structurally ambiguous subsets
// of one another, so classification is an ordered predicate cascade: the first
// matching rule wins
package extract

import (
	"encoding/json"

	"instalens/internal/core/records"
)

// Schema identifies which export document shape a raw payload matched
type Schema uint8

// Known export document schemas
const (
	SchemaUnknown Schema = iota
	SchemaThreadList
	SchemaInbox
	SchemaThread
	SchemaSavedMedia
	SchemaReelComments
	SchemaPostComments
	SchemaTopics
	SchemaLoginActivity
	SchemaLogoutActivity
	SchemaDevices
	SchemaProfileChanges
	SchemaSignup
	SchemaLastLocation
	SchemaTwoFactor
	SchemaCamera
	SchemaInferredEmails
	SchemaInterestLocations
)

// String returns the stable name of the schema
func (s Schema) String() string {
	switch s {
	case SchemaThreadList:
		return "thread_list"
	case SchemaInbox:
		return "inbox"
	case SchemaThread:
		return "thread"
	case SchemaSavedMedia:
		return "saved_media"
	case SchemaReelComments:
		return "reel_comments"
	case SchemaPostComments:
		return "post_comments"
	case SchemaTopics:
		return "topics"
	case SchemaLoginActivity:
		return "login_activity"
	case SchemaLogoutActivity:
		return "logout_activity"
	case SchemaDevices:
		return "devices"
	case SchemaProfileChanges:
		return "profile_changes"
	case SchemaSignup:
		return "signup"
	case SchemaLastLocation:
		return "last_location"
	case SchemaTwoFactor:
		return "two_factor"
	case SchemaCamera:
		return "camera"
	case SchemaInferredEmails:
		return "inferred_emails"
	case SchemaInterestLocations:
		return "interest_locations"
	default:
		return "unknown"
	}
}

// rule pairs a shape predicate with its schema tag and normalizer.
// Order is load-bearing: an array of conversation objects, a single
// conversation object, and a list of comment-like records all share an
// array-of-object-with-nested-map silhouette, so the more specific probes run
// first
type rule struct {
	schema    Schema
	match     func(doc any) bool
	normalize func(raw []byte) []records.Record
}

var rules = []rule{
	{SchemaThreadList, isThreadList, normalizeThreadList},
	{SchemaInbox, isInbox, normalizeInbox},
	{SchemaThread, isThread, normalizeSingleThread},
	{SchemaSavedMedia, hasArrayKey("saved_saved_media"), normalizeSaved},
	{SchemaReelComments, hasArrayKey("comments_reels_comments"), normalizeReelComments},
	{SchemaPostComments, isPostComments, normalizePostComments},
	{SchemaTopics, hasArrayKey("topics_your_topics"), normalizeTopics},
	{SchemaLoginActivity, hasArrayKey("account_history_login_history"), normalizeLogins},
	{SchemaLogoutActivity, hasArrayKey("account_history_logout_history"), normalizeLogouts},
	{SchemaDevices, hasArrayKey("devices_devices"), normalizeDevices},
	{SchemaProfileChanges, hasArrayKey("profile_profile_change"), normalizeProfileChanges},
	{SchemaSignup, hasArrayKey("account_history_registration_info"), normalizeSignup},
	{SchemaLastLocation, hasArrayKey("account_history_imprecise_last_known_location"), normalizeLastLocation},
	{SchemaTwoFactor, hasArrayKey("devices_two_factor_authentication"), normalizeTwoFactor},
	{SchemaCamera, hasArrayKey("devices_camera"), normalizeCamera},
	{SchemaInferredEmails, hasArrayKey("inferred_data_inferred_emails"), normalizeInferredEmails},
	{SchemaInterestLocations, isInterestLocations, normalizeInterestLocations},
}

// Classify identifies the schema of an already-decoded document.
// Documents matching no rule yield SchemaUnknown; never fails
func Classify(doc any) Schema {
	for _, r := range rules {
		if r.match(doc) {
			return r.schema
		}
	}
	return SchemaUnknown
}

// FromDocument classifies raw JSON and normalizes it into canonical records.
// Unparseable or unrecognized payloads yield (SchemaUnknown, nil)
func FromDocument(raw []byte) (Schema, []records.Record) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return SchemaUnknown, nil
	}
	for _, r := range rules {
		if r.match(doc) {
			return r.schema, r.normalize(raw)
		}
	}
	return SchemaUnknown, nil
}

// Shape probes

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func firstObject(arr []any) (map[string]any, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	return asMap(arr[0])
}

// hasArrayKey matches an object document carrying key as an array
func hasArrayKey(key string) func(any) bool {
	return func(doc any) bool {
		m, ok := asMap(doc)
		if !ok {
			return false
		}
		_, ok = asArray(m[key])
		return ok
	}
}

// isThreadList matches a bare array of conversation objects
func isThreadList(doc any) bool {
	arr, ok := asArray(doc)
	if !ok {
		return false
	}
	first, ok := firstObject(arr)
	if !ok {
		return false
	}
	_, hasMsgs := first["messages"]
	_, hasParts := first["participants"]
	return hasMsgs && hasParts
}

// isInbox matches an object wrapping a conversations array
func isInbox(doc any) bool {
	m, ok := asMap(doc)
	if !ok {
		return false
	}
	arr, ok := asArray(m["conversations"])
	if !ok {
		return false
	}
	first, ok := firstObject(arr)
	if !ok {
		return false
	}
	_, hasMsgs := first["messages"]
	return hasMsgs
}

// isThread matches a single conversation object
func isThread(doc any) bool {
	m, ok := asMap(doc)
	if !ok {
		return false
	}
	_, msgsOK := asArray(m["messages"])
	_, partsOK := asArray(m["participants"])
	return msgsOK && partsOK
}

// isPostComments matches a bare array of string-map records carrying a
// Time or Comment entry
func isPostComments(doc any) bool {
	arr, ok := asArray(doc)
	if !ok {
		return false
	}
	first, ok := firstObject(arr)
	if !ok {
		return false
	}
	sm, ok := asMap(first["string_map_data"])
	if !ok {
		return false
	}
	_, hasTime := sm["Time"]
	_, hasComment := sm["Comment"]
	return hasTime || hasComment
}

// isInterestLocations matches the label/vec shape of locations_of_interest
func isInterestLocations(doc any) bool {
	m, ok := asMap(doc)
	if !ok {
		return false
	}
	arr, ok := asArray(m["label_values"])
	if !ok {
		return false
	}
	first, ok := firstObject(arr)
	if !ok {
		return false
	}
	_, hasLabel := first["label"]
	return hasLabel
}
