package models

// AwardStatus is the tier of progress toward an award for one
// (entity, home entity, band, mode) combination, ordered from weakest to
// strongest evidence of activity. NewBand and NewMode are conceptual
// siblings; the ordinal still defines a total order so statuses can be
// compared, but transition logic uses an explicit table rather than the
// ordinal (see awards.Transition).
type AwardStatus int

const (
	StatusUnknown AwardStatus = iota
	StatusNewEntity
	StatusNewBand
	StatusNewMode
	StatusNewBandMode
	StatusNewSlot
	StatusWorked
	StatusConfirmed
)

// String returns the display name of the status tier.
func (s AwardStatus) String() string {
	switch s {
	case StatusNewEntity:
		return "New Entity"
	case StatusNewBand:
		return "New Band"
	case StatusNewMode:
		return "New Mode"
	case StatusNewBandMode:
		return "New Band&Mode"
	case StatusNewSlot:
		return "New Slot"
	case StatusWorked:
		return "Worked"
	case StatusConfirmed:
		return "Confirmed"
	default:
		return "Unknown"
	}
}

// AtLeast reports whether s is at or above other in the total order.
func (s AwardStatus) AtLeast(other AwardStatus) bool {
	return s >= other
}
