package models

// StationProfile describes the operator's own station. The award engine
// uses only the resolved home entity as a cache/filter key; the remaining
// fields serve display and locator math.
type StationProfile struct {
	Name     string `json:"name"`
	Callsign string `json:"callsign"`
	Locator  string `json:"locator"`
	EntityID int    `json:"entity_id"` // 0 when the profile is not configured
}
