package domain

// DefaultState is returned for any ZIP prefix or state code missing from the
// static tables.
const DefaultState = "CA"

// zipPrefixLen is the fixed number of leading ZIP characters used for lookup.
const zipPrefixLen = 2

// LocationRecord maps a ZIP prefix to a state code.
type LocationRecord struct {
	ZIPPrefix string `json:"zip_prefix"`
	StateCode string `json:"state_code"`
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// zipPrefixStates is keyed on one or two leading ZIP characters. The
// single-digit keys only match inputs shorter than two characters; see
// ResolveState.
var zipPrefixStates = map[string]string{
	// California
	"9": "CA", "90": "CA", "91": "CA", "92": "CA", "93": "CA", "94": "CA", "95": "CA", "96": "CA",
	// Texas
	"7": "TX", "75": "TX", "76": "TX", "77": "TX", "78": "TX", "79": "TX",
	// New York
	"1": "NY", "10": "NY", "11": "NY", "12": "NY", "13": "NY", "14": "NY",
	// Florida
	"3": "FL", "32": "FL", "33": "FL", "34": "FL", "35": "FL", "36": "FL", "37": "FL",
	// Arizona
	"85": "AZ", "86": "AZ", "87": "AZ",
	// Colorado
	"80": "CO", "81": "CO", "82": "CO", "83": "CO", "84": "CO",
	// New Jersey
	"07": "NJ", "08": "NJ", "09": "NJ",
	// Massachusetts
	"01": "MA", "02": "MA", "03": "MA", "04": "MA", "05": "MA", "06": "MA",
	// Illinois
	"60": "IL", "61": "IL", "62": "IL", "63": "IL", "64": "IL", "65": "IL",
	// North Carolina
	"27": "NC", "28": "NC", "29": "NC",
	// Georgia
	"30": "GA", "31": "GA",
	// Maryland ("20"-"24" were VA in an older revision of this table)
	"20": "MD", "21": "MD", "22": "MD", "23": "MD", "24": "MD",
	// Virginia
	"25": "VA", "26": "VA",
	// Washington
	"98": "WA", "99": "WA",
	// Oregon
	"97": "OR",
	// Nevada
	"88": "NV", "89": "NV",
	// Pennsylvania
	"15": "PA", "16": "PA", "17": "PA", "18": "PA", "19": "PA",
	// Minnesota
	"55": "MN", "56": "MN", "57": "MN", "58": "MN", "59": "MN",
	// Wisconsin
	"53": "WI", "54": "WI",
	// Oklahoma
	"73": "OK", "74": "OK",
	// Kansas
	"66": "KS", "67": "KS", "68": "KS", "69": "KS", "70": "KS", "71": "KS", "72": "KS",
}

// stateCoordinates holds one representative point per state, usually the
// largest metro or the capital.
var stateCoordinates = map[string]Coordinates{
	"CA": {Lat: 34.05, Lon: -118.24}, // Los Angeles
	"TX": {Lat: 31.97, Lon: -99.90},  // Austin
	"NY": {Lat: 40.71, Lon: -74.00},  // New York City
	"FL": {Lat: 28.54, Lon: -81.38},  // Orlando
	"AZ": {Lat: 33.45, Lon: -112.07}, // Phoenix
	"CO": {Lat: 39.74, Lon: -104.99}, // Denver
	"NJ": {Lat: 40.22, Lon: -74.76},  // Trenton
	"MA": {Lat: 42.36, Lon: -71.06},  // Boston
	"IL": {Lat: 41.88, Lon: -87.63},  // Chicago
	"NC": {Lat: 35.78, Lon: -78.64},  // Raleigh
	"GA": {Lat: 33.75, Lon: -84.39},  // Atlanta
	"VA": {Lat: 37.54, Lon: -77.43},  // Richmond
	"WA": {Lat: 47.61, Lon: -122.33}, // Seattle
	"OR": {Lat: 45.52, Lon: -122.67}, // Portland
	"NV": {Lat: 36.17, Lon: -115.15}, // Las Vegas
	"PA": {Lat: 40.27, Lon: -76.88},  // Harrisburg
	"MD": {Lat: 39.04, Lon: -76.64},  // Baltimore
	"MN": {Lat: 44.95, Lon: -93.10},  // Minneapolis
	"WI": {Lat: 43.07, Lon: -89.40},  // Madison
	"OK": {Lat: 35.47, Lon: -97.51},  // Oklahoma City
	"KS": {Lat: 39.05, Lon: -95.67},  // Topeka
	"UT": {Lat: 40.76, Lon: -111.89}, // Salt Lake City
	"NM": {Lat: 35.08, Lon: -106.65}, // Albuquerque
	"HI": {Lat: 21.31, Lon: -157.86}, // Honolulu
	"SC": {Lat: 34.00, Lon: -81.03},  // Columbia
}

// ResolveState maps a ZIP code to a state code using its leading characters.
// The input is not validated; anything unmapped, including malformed or empty
// ZIPs, resolves to DefaultState.
func ResolveState(zip string) string {
	prefix := zip
	if len(prefix) > zipPrefixLen {
		prefix = prefix[:zipPrefixLen]
	}
	if code, ok := zipPrefixStates[prefix]; ok {
		return code
	}
	return DefaultState
}

// CoordinatesForState returns the representative point for a state, or the
// default state's point when the code is unknown.
func CoordinatesForState(code string) Coordinates {
	if c, ok := stateCoordinates[code]; ok {
		return c
	}
	return stateCoordinates[DefaultState]
}

// LocationRecords returns a copy of the ZIP prefix table.
func LocationRecords() []LocationRecord {
	records := make([]LocationRecord, 0, len(zipPrefixStates))
	for prefix, code := range zipPrefixStates {
		records = append(records, LocationRecord{ZIPPrefix: prefix, StateCode: code})
	}
	return records
}

// HasCoordinates reports whether the state has its own entry in the
// coordinate table.
func HasCoordinates(code string) bool {
	_, ok := stateCoordinates[code]
	return ok
}
