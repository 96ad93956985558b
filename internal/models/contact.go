package models

import "time"

// Contact is one logged QSO. Only the fields the award engine consumes are
// modeled here; the full log schema belongs to the host application.
type Contact struct {
	ID         string    `json:"id"` // UUID
	Callsign   string    `json:"callsign"`
	EntityID   int       `json:"entity_id"`
	MyEntityID int       `json:"my_entity_id"` // home entity at time of QSO; 0 unknown
	Band       string    `json:"band"`
	Mode       string    `json:"mode"`
	Freq       float64   `json:"freq,omitempty"` // MHz
	StartTime  time.Time `json:"start_time"`

	// Independent confirmation flags.
	QSLPaper bool `json:"qsl_paper"`
	QSLLotw  bool `json:"qsl_lotw"`
	QSLEqsl  bool `json:"qsl_eqsl"`
}

// Confirmed reports whether the contact satisfies at least one of the
// enabled confirmation filters. With no filter enabled, no contact is ever
// considered confirmed.
func (c Contact) Confirmed(f ConfirmationFilters) bool {
	return (f.Paper && c.QSLPaper) || (f.Lotw && c.QSLLotw) || (f.Eqsl && c.QSLEqsl)
}

// ConfirmationFilters selects which confirmation channels count toward the
// Confirmed award tier. Each channel is independently toggle-able.
type ConfirmationFilters struct {
	Paper bool
	Lotw  bool
	Eqsl  bool
}

// Any reports whether at least one channel is enabled.
func (f ConfirmationFilters) Any() bool {
	return f.Paper || f.Lotw || f.Eqsl
}
