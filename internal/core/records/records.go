// Package records defines the canonical entities produced by normalization.
// All entities are transient: built fresh per analysis run and replaced as a
// whole when a new batch is processed. Timestamps are always 64-bit
// milliseconds since epoch
package records

// Participant is a thread member, deduplicated by exact name within a thread
type Participant struct {
	Name string `json:"name"`
}

// Reaction is an emoji reaction attached to a message
type Reaction struct {
	EmojiText string `json:"emojiText"`
	ActorName string `json:"actorName"`
}

// Message is a single canonical message
type Message struct {
	SenderName  string     `json:"senderName"`
	TimestampMs int64      `json:"timestampMs"`
	Content     string     `json:"content,omitempty"`
	Reactions   []Reaction `json:"reactions,omitempty"`
	PhotosCount int        `json:"photosCount"`
	VideosCount int        `json:"videosCount"`
	AudioCount  int        `json:"audioCount"`
}

// Thread is a conversation with a stable identity and an ordered message list.
// ThreadKey is the explicit source path when present, else "title:" + title
type Thread struct {
	Title        string        `json:"title"`
	ThreadKey    string        `json:"threadKey"`
	Participants []Participant `json:"participants"`
	Messages     []Message     `json:"messages"`
}

// MediaType classifies a saved item by its URL path
type MediaType string

// Media types inferred from the save URL path
const (
	MediaPost  MediaType = "post"
	MediaReel  MediaType = "reel"
	MediaOther MediaType = "other"
)

// SavedItem is one saved post/reel
type SavedItem struct {
	Href        string    `json:"href"`
	TimestampMs int64     `json:"timestampMs"`
	Creator     string    `json:"creator"`
	MediaType   MediaType `json:"mediaType"`
}

// Comment is a comment the account owner left on a post or reel
type Comment struct {
	Text        string `json:"text"`
	Owner       string `json:"owner"`
	TimestampMs int64  `json:"timestampMs"`
}

// LoginEvent is one login (or login attempt) from the account history
type LoginEvent struct {
	TimestampMs int64   `json:"timestampMs"`
	Location    string  `json:"location"`
	IP          string  `json:"ip"`
	Device      string  `json:"device"`
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	HasCoords   bool    `json:"-"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	Cookie      string  `json:"cookie,omitempty"`
	Language    string  `json:"language,omitempty"`
}

// LogoutEvent mirrors LoginEvent for logout history
type LogoutEvent struct {
	TimestampMs int64   `json:"timestampMs"`
	Location    string  `json:"location"`
	IP          string  `json:"ip"`
	Device      string  `json:"device"`
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	HasCoords   bool    `json:"-"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	Cookie      string  `json:"cookie,omitempty"`
	Language    string  `json:"language,omitempty"`
}

// DeviceRecord is a known device and its last login time
type DeviceRecord struct {
	Device      string `json:"device"`
	LastLoginMs int64  `json:"lastLoginMs"`
}

// ProfileChangeEvent is one profile field change
type ProfileChangeEvent struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	TimestampMs int64  `json:"timestampMs"`
}

// SignupRecord holds the registration details of the account
type SignupRecord struct {
	TimestampMs int64  `json:"timestampMs"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Username    string `json:"username"`
	IP          string `json:"ip"`
	Device      string `json:"device"`
}

// GeoPoint is a single located point with its provenance
type GeoPoint struct {
	TimestampMs int64   `json:"timestampMs"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Label       string  `json:"label"`
	SourceType  string  `json:"sourceType"`
}

// TwoFactorDevice is a registered two-factor authentication method
type TwoFactorDevice struct {
	Method string `json:"method"`
}

// CameraDevice is one camera-information entry from the export
type CameraDevice struct {
	DeviceID    string `json:"deviceId"`
	SDKVersions string `json:"sdkVersions"`
	Compression string `json:"compression"`
}

// InferredEmail is an email address the platform inferred for the account
type InferredEmail struct {
	Email string `json:"email"`
}

// Kind tags the variant held by a Record
type Kind uint8

// Record kinds, one per canonical entity
const (
	KindUnknown Kind = iota
	KindThread
	KindSavedItem
	KindComment
	KindTopic
	KindLogin
	KindLogout
	KindDevice
	KindProfileChange
	KindSignup
	KindGeoPoint
	KindTwoFactor
	KindCamera
	KindInferredEmail
)

// String returns the stable name of the kind
func (k Kind) String() string {
	switch k {
	case KindThread:
		return "thread"
	case KindSavedItem:
		return "saved_item"
	case KindComment:
		return "comment"
	case KindTopic:
		return "topic"
	case KindLogin:
		return "login"
	case KindLogout:
		return "logout"
	case KindDevice:
		return "device"
	case KindProfileChange:
		return "profile_change"
	case KindSignup:
		return "signup"
	case KindGeoPoint:
		return "geo_point"
	case KindTwoFactor:
		return "two_factor"
	case KindCamera:
		return "camera"
	case KindInferredEmail:
		return "inferred_email"
	default:
		return "unknown"
	}
}

// Record is the tagged variant over all entity kinds. Exactly one payload
// field is set, matching Kind; aggregators switch on Kind so a schema added
// without a consumer shows up as a compile-visible gap rather than silent loss
type Record struct {
	Kind Kind

	Thread        *Thread
	Saved         *SavedItem
	Comment       *Comment
	Topic         string
	Login         *LoginEvent
	Logout        *LogoutEvent
	Device        *DeviceRecord
	ProfileChange *ProfileChangeEvent
	Signup        *SignupRecord
	Geo           *GeoPoint
	TwoFactor     *TwoFactorDevice
	Camera        *CameraDevice
	InferredEmail *InferredEmail
}

// Batch is the complete immutable snapshot of normalized records for one run
type Batch struct {
	Threads        []Thread
	Saves          []SavedItem
	Comments       []Comment
	Topics         []string
	Logins         []LoginEvent
	Logouts        []LogoutEvent
	Devices        []DeviceRecord
	ProfileChanges []ProfileChangeEvent
	Signups        []SignupRecord
	GeoPoints      []GeoPoint
	TwoFactor      []TwoFactorDevice
	Cameras        []CameraDevice
	InferredEmails []InferredEmail
}

// Add routes a record into the batch by kind
func (b *Batch) Add(rec Record) {
	switch rec.Kind {
	case KindThread:
		if rec.Thread != nil {
			b.Threads = append(b.Threads, *rec.Thread)
		}
	case KindSavedItem:
		if rec.Saved != nil {
			b.Saves = append(b.Saves, *rec.Saved)
		}
	case KindComment:
		if rec.Comment != nil {
			b.Comments = append(b.Comments, *rec.Comment)
		}
	case KindTopic:
		if rec.Topic != "" {
			b.Topics = append(b.Topics, rec.Topic)
		}
	case KindLogin:
		if rec.Login != nil {
			b.Logins = append(b.Logins, *rec.Login)
		}
	case KindLogout:
		if rec.Logout != nil {
			b.Logouts = append(b.Logouts, *rec.Logout)
		}
	case KindDevice:
		if rec.Device != nil {
			b.Devices = append(b.Devices, *rec.Device)
		}
	case KindProfileChange:
		if rec.ProfileChange != nil {
			b.ProfileChanges = append(b.ProfileChanges, *rec.ProfileChange)
		}
	case KindSignup:
		if rec.Signup != nil {
			b.Signups = append(b.Signups, *rec.Signup)
		}
	case KindGeoPoint:
		if rec.Geo != nil {
			b.GeoPoints = append(b.GeoPoints, *rec.Geo)
		}
	case KindTwoFactor:
		if rec.TwoFactor != nil {
			b.TwoFactor = append(b.TwoFactor, *rec.TwoFactor)
		}
	case KindCamera:
		if rec.Camera != nil {
			b.Cameras = append(b.Cameras, *rec.Camera)
		}
	case KindInferredEmail:
		if rec.InferredEmail != nil {
			b.InferredEmails = append(b.InferredEmails, *rec.InferredEmail)
		}
	case KindUnknown:
		// classifier misses are dropped silently
	}
}
