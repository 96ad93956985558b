package models

import "time"

// PrefixRule is one row of a reference dataset mapping a callsign prefix to
// an entity. Exact rules match the whole lookup key; non-exact rules match
// by starts-with. Zone overrides of 0 mean "use the entity default".
type PrefixRule struct {
	Prefix          string
	EntityID        int
	Exact           bool
	CQZoneOverride  int
	ITUZoneOverride int

	// Validity range, used only by the historical dataset. A nil bound is
	// open-ended.
	ValidFrom *time.Time
	ValidTo   *time.Time
}

// Matches reports whether the rule applies to the given lookup key.
func (r PrefixRule) Matches(key string) bool {
	if r.Exact {
		return key == r.Prefix
	}
	return len(key) >= len(r.Prefix) && key[:len(r.Prefix)] == r.Prefix
}

// ValidAt reports whether the rule's validity range contains t.
func (r PrefixRule) ValidAt(t time.Time) bool {
	if r.ValidFrom != nil && t.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && t.After(*r.ValidTo) {
		return false
	}
	return true
}

// ZoneException forces a CQ zone for one exact callsign over a date range.
// The historical resolver erases the ITU zone when an exception applies,
// deferring that field to the current dataset.
type ZoneException struct {
	Callsign  string
	CQZone    int
	ValidFrom *time.Time
	ValidTo   *time.Time
}

// ValidAt reports whether the exception's date range contains t.
func (z ZoneException) ValidAt(t time.Time) bool {
	if z.ValidFrom != nil && t.Before(*z.ValidFrom) {
		return false
	}
	if z.ValidTo != nil && t.After(*z.ValidTo) {
		return false
	}
	return true
}
