package analytics

import (
	"fmt"
	"sort"
	"strings"

	"instalens/internal/core/records"
)

// MapPoint is one plottable location with its provenance
type MapPoint struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Label       string  `json:"label"`
	SourceType  string  `json:"sourceType"`
	TimestampMs int64   `json:"timestampMs,omitempty"`
}

// DeviceSummary aggregates login history per raw device identifier
type DeviceSummary struct {
	Device     string           `json:"device"`
	Descriptor DeviceDescriptor `json:"descriptor"`
	Count      int              `json:"count"`
	LastSeenMs int64            `json:"lastSeenMs"`
}

// SecurityReport is the account-security view over logins, devices and
// locations
type SecurityReport struct {
	LoginsTotal     int                          `json:"loginsTotal"`
	LogoutsTotal    int                          `json:"logoutsTotal"`
	LoginsByDay     []CountEntry                 `json:"loginsByDay"`
	UniqueLocations int                          `json:"uniqueLocations"`
	MapPoints       []MapPoint                   `json:"mapPoints"`
	Devices         []DeviceSummary              `json:"devices"`
	ProfileChanges  []records.ProfileChangeEvent `json:"profileChanges"`
	Signup          *records.SignupRecord        `json:"signup,omitempty"`
	TwoFactor       []records.TwoFactorDevice    `json:"twoFactor"`
	Cameras         []records.CameraDevice       `json:"cameras"`
	InferredEmails  []records.InferredEmail      `json:"inferredEmails"`
}

// profileChangeTypes is the allow-list of change types worth surfacing.
// Exports carry many internal toggles under the same schema; everything
// outside this set is dropped
var profileChangeTypes = map[string]struct{}{
	"Name":          {},
	"Username":      {},
	"Bio":           {},
	"Profile Photo": {},
	"Email":         {},
	"Phone Number":  {},
	"Gender":        {},
	"Date of Birth": {},
	"Website":       {},
}

// ComputeSecurity aggregates the non-messaging records of a batch into the
// security report. The batch is treated as an immutable snapshot
func ComputeSecurity(b *records.Batch) *SecurityReport {
	rep := &SecurityReport{
		LoginsTotal:    len(b.Logins),
		LogoutsTotal:   len(b.Logouts),
		TwoFactor:      b.TwoFactor,
		Cameras:        b.Cameras,
		InferredEmails: b.InferredEmails,
	}

	byDay := newCounter()
	locations := map[string]struct{}{}
	for _, lg := range b.Logins {
		byDay.add(dayKey(lg.TimestampMs), 1)
		if k := locationKey(lg.HasCoords, lg.Lat, lg.Lon, lg.Location, lg.Country, lg.CountryCode); k != "" {
			locations[k] = struct{}{}
		}
		if lg.HasCoords {
			rep.MapPoints = append(rep.MapPoints, MapPoint{
				Lat: lg.Lat, Lon: lg.Lon,
				Label: lg.Location, SourceType: "login", TimestampMs: lg.TimestampMs,
			})
		}
	}
	for _, lo := range b.Logouts {
		if k := locationKey(lo.HasCoords, lo.Lat, lo.Lon, lo.Location, lo.Country, lo.CountryCode); k != "" {
			locations[k] = struct{}{}
		}
		if lo.HasCoords {
			rep.MapPoints = append(rep.MapPoints, MapPoint{
				Lat: lo.Lat, Lon: lo.Lon,
				Label: lo.Location, SourceType: "logout", TimestampMs: lo.TimestampMs,
			})
		}
	}
	rep.LoginsByDay = byDay.entries()
	rep.UniqueLocations = len(locations)

	for _, gp := range b.GeoPoints {
		pt := MapPoint{Lat: gp.Lat, Lon: gp.Lon, Label: gp.Label, SourceType: gp.SourceType, TimestampMs: gp.TimestampMs}
		if pt.Lat == 0 && pt.Lon == 0 {
			// labelled point without coordinates, e.g. a location of
			// interest: salvage it via the country fallback when possible
			c := FindCountryCentroid(gp.Label, "")
			if c == nil {
				continue
			}
			pt.Lat, pt.Lon = c.Lat, c.Lon
		}
		rep.MapPoints = append(rep.MapPoints, pt)
	}

	rep.Devices = summarizeDevices(b.Devices)

	for _, pc := range b.ProfileChanges {
		if _, ok := profileChangeTypes[pc.Type]; ok {
			rep.ProfileChanges = append(rep.ProfileChanges, pc)
		}
	}

	if len(b.Signups) > 0 {
		s := b.Signups[0]
		rep.Signup = &s
	}
	return rep
}

// locationKey derives the dedup key for unique-location counting: rounded
// coordinates when present, else the raw location text, else a country
// centroid fallback
func locationKey(hasCoords bool, lat, lon float64, location, country, code string) string {
	if hasCoords {
		return fmt.Sprintf("%.2f,%.2f", lat, lon)
	}
	if s := strings.TrimSpace(location); s != "" {
		return s
	}
	if c := FindCountryCentroid(country, code); c != nil {
		return "country:" + c.Code
	}
	return ""
}

func summarizeDevices(devs []records.DeviceRecord) []DeviceSummary {
	byID := map[string]int{}
	var out []DeviceSummary
	for _, d := range devs {
		id := strings.TrimSpace(d.Device)
		if id == "" {
			continue
		}
		if i, ok := byID[id]; ok {
			out[i].Count++
			if d.LastLoginMs > out[i].LastSeenMs {
				out[i].LastSeenMs = d.LastLoginMs
			}
			continue
		}
		byID[id] = len(out)
		out = append(out, DeviceSummary{
			Device:     id,
			Descriptor: ParseDevice(id),
			Count:      1,
			LastSeenMs: d.LastLoginMs,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastSeenMs != out[j].LastSeenMs {
			return out[i].LastSeenMs > out[j].LastSeenMs
		}
		return out[i].Count > out[j].Count
	})
	return out
}
