package awards

import "strings"

// DupeScope selects how narrowly duplicate contacts are detected during a
// contest or activity run.
type DupeScope int

const (
	// DupeScopeInactive disables duplicate detection entirely.
	DupeScopeInactive DupeScope = iota
	// DupeScopeAllBands flags a repeated callsign anywhere.
	DupeScopeAllBands
	// DupeScopePerBand flags a repeated callsign on the same band.
	DupeScopePerBand
	// DupeScopePerBandMode flags a repeated callsign on the same band and mode.
	DupeScopePerBandMode
)

// ParseDupeScope maps a configuration token to a scope. Unrecognized input
// yields DupeScopeInactive.
func ParseDupeScope(s string) DupeScope {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all_bands":
		return DupeScopeAllBands
	case "per_band":
		return DupeScopePerBand
	case "per_band_mode":
		return DupeScopePerBandMode
	default:
		return DupeScopeInactive
	}
}

func (s DupeScope) String() string {
	switch s {
	case DupeScopeAllBands:
		return "all_bands"
	case DupeScopePerBand:
		return "per_band"
	case DupeScopePerBandMode:
		return "per_band_mode"
	default:
		return "inactive"
	}
}

type dupeKey struct {
	callsign string
	band     string
	mode     string
}

// DupeCounter tracks how many logged contacts exist per callsign within the
// configured scope. Not safe for concurrent use.
type DupeCounter struct {
	scope  DupeScope
	counts map[dupeKey]int
}

// NewDupeCounter constructs a counter for the given scope.
func NewDupeCounter(scope DupeScope) *DupeCounter {
	return &DupeCounter{
		scope:  scope,
		counts: make(map[dupeKey]int),
	}
}

// key normalizes the triple to the counter's scope: fields outside the
// scope are blanked so they cannot distinguish entries.
func (d *DupeCounter) key(callsign, band, mode string) dupeKey {
	k := dupeKey{callsign: strings.ToUpper(strings.TrimSpace(callsign))}
	switch d.scope {
	case DupeScopePerBand:
		k.band = band
	case DupeScopePerBandMode:
		k.band = band
		k.mode = mode
	}
	return k
}

// Add records one contact and returns the count within scope afterwards.
// Inactive counters record nothing.
func (d *DupeCounter) Add(callsign, band, mode string) int {
	if d.scope == DupeScopeInactive {
		return 0
	}
	k := d.key(callsign, band, mode)
	d.counts[k]++
	return d.counts[k]
}

// Remove forgets one contact. The count never goes below zero, so removing
// a contact that was never added is harmless.
func (d *DupeCounter) Remove(callsign, band, mode string) int {
	if d.scope == DupeScopeInactive {
		return 0
	}
	k := d.key(callsign, band, mode)
	if d.counts[k] <= 1 {
		delete(d.counts, k)
		return 0
	}
	d.counts[k]--
	return d.counts[k]
}

// IsDupe reports whether another contact with the callsign already exists
// within scope. Always false when inactive.
func (d *DupeCounter) IsDupe(callsign, band, mode string) bool {
	if d.scope == DupeScopeInactive {
		return false
	}
	return d.counts[d.key(callsign, band, mode)] > 0
}

// Count returns the number of recorded contacts within scope.
func (d *DupeCounter) Count(callsign, band, mode string) int {
	if d.scope == DupeScopeInactive {
		return 0
	}
	return d.counts[d.key(callsign, band, mode)]
}

// Reset forgets all recorded contacts, keeping the scope.
func (d *DupeCounter) Reset() {
	d.counts = make(map[dupeKey]int)
}
