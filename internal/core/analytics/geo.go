package analytics

import "strings"

// Centroid is a country-level fallback coordinate
type Centroid struct {
	Code string  `json:"code"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// countryCentroids is a fixed offline table of country centroids keyed by ISO
// 3166-1 alpha-2 code. Coarse by design: it only backs map fallbacks when no
// real coordinates exist
var countryCentroids = map[string]Centroid{
	"US": {"US", 39.78, -98.58},
	"CA": {"CA", 56.13, -106.35},
	"MX": {"MX", 23.63, -102.55},
	"BR": {"BR", -14.24, -51.93},
	"AR": {"AR", -38.42, -63.62},
	"CL": {"CL", -35.68, -71.54},
	"CO": {"CO", 4.57, -74.30},
	"PE": {"PE", -9.19, -75.02},
	"VE": {"VE", 6.42, -66.59},
	"GB": {"GB", 55.38, -3.44},
	"IE": {"IE", 53.41, -8.24},
	"FR": {"FR", 46.23, 2.21},
	"DE": {"DE", 51.17, 10.45},
	"ES": {"ES", 40.46, -3.75},
	"PT": {"PT", 39.40, -8.22},
	"IT": {"IT", 41.87, 12.57},
	"NL": {"NL", 52.13, 5.29},
	"BE": {"BE", 50.50, 4.47},
	"CH": {"CH", 46.82, 8.23},
	"AT": {"AT", 47.52, 14.55},
	"SE": {"SE", 60.13, 18.64},
	"NO": {"NO", 60.47, 8.47},
	"DK": {"DK", 56.26, 9.50},
	"FI": {"FI", 61.92, 25.75},
	"IS": {"IS", 64.96, -19.02},
	"PL": {"PL", 51.92, 19.15},
	"CZ": {"CZ", 49.82, 15.47},
	"SK": {"SK", 48.67, 19.70},
	"HU": {"HU", 47.16, 19.50},
	"RO": {"RO", 45.94, 24.97},
	"BG": {"BG", 42.73, 25.49},
	"GR": {"GR", 39.07, 21.82},
	"TR": {"TR", 38.96, 35.24},
	"UA": {"UA", 48.38, 31.17},
	"RU": {"RU", 61.52, 105.32},
	"BY": {"BY", 53.71, 27.95},
	"EE": {"EE", 58.60, 25.01},
	"LV": {"LV", 56.88, 24.60},
	"LT": {"LT", 55.17, 23.88},
	"IL": {"IL", 31.05, 34.85},
	"SA": {"SA", 23.89, 45.08},
	"AE": {"AE", 23.42, 53.85},
	"EG": {"EG", 26.82, 30.80},
	"MA": {"MA", 31.79, -7.09},
	"NG": {"NG", 9.08, 8.68},
	"KE": {"KE", -0.02, 37.91},
	"ZA": {"ZA", -30.56, 22.94},
	"IN": {"IN", 20.59, 78.96},
	"PK": {"PK", 30.38, 69.35},
	"BD": {"BD", 23.68, 90.36},
	"CN": {"CN", 35.86, 104.20},
	"JP": {"JP", 36.20, 138.25},
	"KR": {"KR", 35.91, 127.77},
	"TH": {"TH", 15.87, 100.99},
	"VN": {"VN", 14.06, 108.28},
	"PH": {"PH", 12.88, 121.77},
	"ID": {"ID", -0.79, 113.92},
	"MY": {"MY", 4.21, 101.98},
	"SG": {"SG", 1.35, 103.82},
	"AU": {"AU", -25.27, 133.78},
	"NZ": {"NZ", -40.90, 174.89},
}

// countryAliases maps common English country-name variants to ISO codes
var countryAliases = map[string]string{
	"USA":                      "US",
	"UNITED STATES":            "US",
	"UNITED STATES OF AMERICA": "US",
	"AMERICA":                  "US",
	"UK":                       "GB",
	"UNITED KINGDOM":           "GB",
	"GREAT BRITAIN":            "GB",
	"ENGLAND":                  "GB",
	"SCOTLAND":                 "GB",
	"WALES":                    "GB",
	"RUSSIA":                   "RU",
	"RUSSIAN FEDERATION":       "RU",
	"SOUTH KOREA":              "KR",
	"KOREA":                    "KR",
	"REPUBLIC OF KOREA":        "KR",
	"VIETNAM":                  "VN",
	"VIET NAM":                 "VN",
	"CZECH REPUBLIC":           "CZ",
	"CZECHIA":                  "CZ",
	"UAE":                      "AE",
	"UNITED ARAB EMIRATES":     "AE",
	"NETHERLANDS":              "NL",
	"THE NETHERLANDS":          "NL",
	"HOLLAND":                  "NL",
	"GERMANY":                  "DE",
	"DEUTSCHLAND":              "DE",
	"FRANCE":                   "FR",
	"SPAIN":                    "ES",
	"ITALY":                    "IT",
	"JAPAN":                    "JP",
	"CHINA":                    "CN",
	"INDIA":                    "IN",
	"BRAZIL":                   "BR",
	"BRASIL":                   "BR",
	"MEXICO":                   "MX",
	"CANADA":                   "CA",
	"AUSTRALIA":                "AU",
	"NEW ZEALAND":              "NZ",
	"TURKEY":                   "TR",
	"TURKIYE":                  "TR",
	"GREECE":                   "GR",
	"POLAND":                   "PL",
	"SWEDEN":                   "SE",
	"NORWAY":                   "NO",
	"DENMARK":                  "DK",
	"FINLAND":                  "FI",
	"IRELAND":                  "IE",
	"PORTUGAL":                 "PT",
	"AUSTRIA":                  "AT",
	"SWITZERLAND":              "CH",
	"BELGIUM":                  "BE",
	"UKRAINE":                  "UA",
	"ISRAEL":                   "IL",
	"EGYPT":                    "EG",
	"SOUTH AFRICA":             "ZA",
	"ARGENTINA":                "AR",
	"CHILE":                    "CL",
	"COLOMBIA":                 "CO",
	"PERU":                     "PE",
	"INDONESIA":                "ID",
	"MALAYSIA":                 "MY",
	"SINGAPORE":                "SG",
	"PHILIPPINES":              "PH",
	"THAILAND":                 "TH",
	"SAUDI ARABIA":             "SA",
	"NIGERIA":                  "NG",
	"KENYA":                    "KE",
	"MOROCCO":                  "MA",
	"PAKISTAN":                 "PK",
	"BANGLADESH":               "BD",
	"HUNGARY":                  "HU",
	"ROMANIA":                  "RO",
	"BULGARIA":                 "BG",
	"ICELAND":                  "IS",
	"ESTONIA":                  "EE",
	"LATVIA":                   "LV",
	"LITHUANIA":                "LT",
	"BELARUS":                  "BY",
	"SLOVAKIA":                 "SK",
}

// FindCountryCentroid resolves a country to its fallback centroid.
// Resolution order: supplied ISO code, aliased name variant, then the
// uppercased raw name tried as a code. Returns nil when nothing matches
func FindCountryCentroid(name, code string) *Centroid {
	if code != "" {
		if c, ok := countryCentroids[strings.ToUpper(strings.TrimSpace(code))]; ok {
			return &c
		}
	}
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return nil
	}
	if cc, ok := countryAliases[key]; ok {
		if c, ok := countryCentroids[cc]; ok {
			return &c
		}
	}
	if c, ok := countryCentroids[key]; ok {
		return &c
	}
	return nil
}
