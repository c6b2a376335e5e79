package analytics

import "testing"

func TestFindCountryCentroid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		country  string
		code     string
		wantCode string
		wantNil  bool
	}{
		{"iso code wins", "whatever", "DE", "DE", false},
		{"lowercase code", "", "gb", "GB", false},
		{"full name alias", "United States", "", "US", false},
		{"short alias", "UK", "", "GB", false},
		{"raw name as code", "us", "", "US", false},
		{"unknown", "Nowhereland", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FindCountryCentroid(tc.country, tc.code)
			if tc.wantNil {
				if got != nil {
					t.Fatalf("FindCountryCentroid(%q, %q) = %+v, want nil", tc.country, tc.code, got)
				}
				return
			}
			if got == nil || got.Code != tc.wantCode {
				t.Fatalf("FindCountryCentroid(%q, %q) = %+v, want code %s", tc.country, tc.code, got, tc.wantCode)
			}
			if got.Lat == 0 && got.Lon == 0 {
				t.Fatalf("centroid for %s has zero coordinates", tc.wantCode)
			}
		})
	}
}

func TestFindCountryCentroid_USCentroid(t *testing.T) {
	t.Parallel()

	got := FindCountryCentroid("United States", "")
	if got == nil {
		t.Fatal("expected US centroid")
	}
	if got.Lat < 24 || got.Lat > 50 || got.Lon > -66 || got.Lon < -125 {
		t.Fatalf("US centroid out of bounds: %+v", got)
	}
}
