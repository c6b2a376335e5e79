package analytics

import "testing"

func TestParseDevice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want DeviceDescriptor
	}{
		{
			"iphone agent keeps mobile despite mac token",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) Safari/604.1",
			DeviceDescriptor{Vendor: "Apple", Model: "iPhone", OS: "iOS", Platform: "mobile", Icon: "phone"},
		},
		{
			"instagram android agent with model field",
			"Instagram 300.0.0 Android (33/13; 420dpi; 1080x2219; samsung; SM-G991B; o1s; exynos2100; en_GB)",
			DeviceDescriptor{Vendor: "Samsung", Model: "SM-G991B", OS: "Android", Platform: "mobile", Icon: "phone"},
		},
		{
			"android keeps mobile despite linux token",
			"Mozilla/5.0 (Linux; Android 13; Pixel 7) Chrome/110.0",
			DeviceDescriptor{Vendor: "Google", Model: "Pixel 7", OS: "Android", Platform: "mobile", Icon: "phone"},
		},
		{
			"windows desktop",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/110.0",
			DeviceDescriptor{Vendor: "PC", Model: "Unknown", OS: "Windows", Platform: "desktop", Icon: "desktop"},
		},
		{
			"mac desktop",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1",
			DeviceDescriptor{Vendor: "Apple", Model: "Mac", OS: "macOS", Platform: "desktop", Icon: "desktop"},
		},
		{
			"browser only",
			"Chrome 110",
			DeviceDescriptor{Vendor: "Unknown", Model: "Unknown", OS: "Unknown", Platform: "web", Icon: "browser"},
		},
		{
			"empty",
			"",
			DeviceDescriptor{Vendor: "Unknown", Model: "Unknown", OS: "Unknown", Platform: "unknown", Icon: "device"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseDevice(tc.raw); got != tc.want {
				t.Fatalf("ParseDevice(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}
