package models

// Entity represents one DXCC award entity (a country-like administrative or
// geographic unit) resolved from a callsign.
type Entity struct {
	ID             int     `json:"id"` // ADIF entity number; 0 = unresolved
	Name           string  `json:"name"`
	Prefix         string  `json:"prefix"` // canonical primary prefix, display-only
	Continent      string  `json:"continent"`
	CQZone         int     `json:"cq_zone"`  // 0 = unknown
	ITUZone        int     `json:"itu_zone"` // 0 = unknown
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TimezoneOffset float64 `json:"timezone_offset,omitempty"`
	ISOCode        string  `json:"iso_code,omitempty"` // ISO 3166-1 alpha-2, for the flag glyph
}

// UnknownEntity is the sentinel returned when a callsign resolves to nothing.
// It compares unequal to every resolved entity because its ID is zero.
var UnknownEntity = Entity{}

// IsKnown reports whether the entity was actually resolved.
func (e Entity) IsKnown() bool {
	return e.ID != 0
}

// Flag derives the Unicode flag glyph from the entity's ISO code.
// Returns an empty string when no ISO code is known.
func (e Entity) Flag() string {
	if len(e.ISOCode) != 2 {
		return ""
	}
	const riBase = 0x1F1E6
	runes := []rune(e.ISOCode)
	for i, r := range runes {
		if r < 'A' || r > 'Z' {
			return ""
		}
		runes[i] = riBase + (r - 'A')
	}
	return string(runes)
}
