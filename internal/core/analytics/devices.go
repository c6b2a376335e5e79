package analytics

import "strings"

// DeviceDescriptor is a best-effort breakdown of a free-text device or
// user-agent string
type DeviceDescriptor struct {
	Vendor   string `json:"vendor"`
	Model    string `json:"model"`
	OS       string `json:"os"`
	Platform string `json:"platform"`
	Icon     string `json:"icon"`
}

var androidVendors = []string{
	"samsung", "xiaomi", "redmi", "huawei", "oneplus", "oppo", "vivo",
	"realme", "motorola", "nokia", "sony", "lenovo", "asus", "lg", "htc",
	"google", "pixel",
}

// ParseDevice classifies a raw device identifier with ordered substring
// checks. Mobile operating systems are probed before desktop ones because
// mobile user agents routinely embed desktop tokens ("Linux" inside Android,
// "Mac OS X" inside iPhone agents)
func ParseDevice(raw string) DeviceDescriptor {
	d := DeviceDescriptor{Vendor: "Unknown", Model: "Unknown", OS: "Unknown", Platform: "unknown", Icon: "device"}
	s := strings.ToLower(raw)
	if s == "" {
		return d
	}

	switch {
	case strings.Contains(s, "iphone"):
		d.Vendor, d.Model, d.OS = "Apple", "iPhone", "iOS"
		d.Platform, d.Icon = "mobile", "phone"
	case strings.Contains(s, "ipad"):
		d.Vendor, d.Model, d.OS = "Apple", "iPad", "iPadOS"
		d.Platform, d.Icon = "tablet", "tablet"
	case strings.Contains(s, "android"):
		d.OS = "Android"
		d.Platform, d.Icon = "mobile", "phone"
		d.Vendor = androidVendor(s)
		if m := androidModel(raw); m != "" {
			d.Model = m
		}
	case strings.Contains(s, "windows"):
		d.OS = "Windows"
		d.Platform, d.Icon = "desktop", "desktop"
		d.Vendor = "PC"
	case strings.Contains(s, "mac os") || strings.Contains(s, "macintosh"):
		d.Vendor, d.Model, d.OS = "Apple", "Mac", "macOS"
		d.Platform, d.Icon = "desktop", "desktop"
	case strings.Contains(s, "cros"):
		d.OS = "ChromeOS"
		d.Platform, d.Icon = "desktop", "desktop"
	case strings.Contains(s, "linux"):
		d.OS = "Linux"
		d.Platform, d.Icon = "desktop", "desktop"
	}

	if d.Platform == "unknown" {
		for _, b := range []string{"chrome", "safari", "firefox", "edg", "opera"} {
			if strings.Contains(s, b) {
				d.Platform, d.Icon = "web", "browser"
				break
			}
		}
	}
	return d
}

func androidVendor(lower string) string {
	for _, v := range androidVendors {
		if strings.Contains(lower, v) {
			switch v {
			case "redmi":
				return "Xiaomi"
			case "pixel":
				return "Google"
			case "lg":
				return "LG"
			case "htc":
				return "HTC"
			}
			return strings.ToUpper(v[:1]) + v[1:]
		}
	}
	return "Android"
}

// androidModel pulls the model field out of an Instagram-style Android agent:
// "Instagram 300.0.0 Android (33/13; 420dpi; 1080x2219; samsung; SM-G991B; ...)"
func androidModel(raw string) string {
	open := strings.IndexByte(raw, '(')
	end := strings.IndexByte(raw, ')')
	if open < 0 || end <= open {
		return ""
	}
	parts := strings.Split(raw[open+1:end], ";")
	if len(parts) >= 5 {
		return strings.TrimSpace(parts[4])
	}
	// browser style: "(Linux; Android 13; Pixel 7 Build/TQ1A)"
	last := strings.TrimSpace(parts[len(parts)-1])
	low := strings.ToLower(last)
	if last == "" || strings.Contains(low, "android") || strings.Contains(low, "linux") {
		return ""
	}
	if i := strings.Index(last, " Build/"); i > 0 {
		last = last[:i]
	}
	return last
}
