// Package awards computes DXCC award progress: for a station profile and a
// prospective contact, what working that station on a given band and mode
// would newly achieve.
package awards

import (
	"context"
	"log/slog"

	"github.com/dxtrack/dxtrack/internal/cache"
	"github.com/dxtrack/dxtrack/internal/metrics"
	"github.com/dxtrack/dxtrack/internal/models"
)

// StatusSnapshot captures the five existence facts the status ladder is
// derived from, all scoped to one entity under one home entity.
type StatusSnapshot struct {
	EntityWorked  bool // any contact with the entity
	BandWorked    bool // any contact with the entity on this band
	ModeWorked    bool // any contact with the entity in this mode
	SlotWorked    bool // any contact on this band in this mode
	SlotConfirmed bool // a confirmed contact on this band in this mode
}

// ContactHistory answers existence questions over the logged contacts.
// myEntityID == 0 widens the query to contacts logged under any home entity.
type ContactHistory interface {
	StatusSnapshot(ctx context.Context, entityID, myEntityID int, band, mode string, filters models.ConfirmationFilters) (StatusSnapshot, error)
}

// Engine computes and caches award status per (entity, home entity, band,
// mode). Lookups never fail: a storage error yields StatusUnknown plus a
// diagnostic, and the result is not cached.
type Engine struct {
	history   ContactHistory
	cache     *cache.QuadKeyCache[int, int, models.AwardStatus]
	filters   models.ConfirmationFilters
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewEngine constructs an engine over the given contact history.
// collector may be nil.
func NewEngine(history ContactHistory, filters models.ConfirmationFilters, logger *slog.Logger, collector *metrics.Collector) *Engine {
	return &Engine{
		history:   history,
		cache:     cache.New[int, int, models.AwardStatus](),
		filters:   filters,
		logger:    logger,
		collector: collector,
	}
}

// StatusFor returns the award status of working the entity on the band and
// mode, under the home entity. myEntityID == 0 spans all home entities.
func (e *Engine) StatusFor(ctx context.Context, entityID, myEntityID int, band, mode string) models.AwardStatus {
	if status, ok := e.cache.Get(entityID, myEntityID, band, mode); ok {
		e.collector.ObserveStatusLookup("cached")
		return status
	}

	snapshot, err := e.history.StatusSnapshot(ctx, entityID, myEntityID, band, mode, e.filters)
	if err != nil {
		e.logger.Warn("status snapshot failed",
			"entity_id", entityID,
			"my_entity_id", myEntityID,
			"band", band,
			"mode", mode,
			"error", err)
		e.collector.ObserveStatusLookup("error")
		return models.StatusUnknown
	}

	status := statusFromSnapshot(snapshot)
	e.cache.Insert(entityID, myEntityID, band, mode, status)
	e.collector.ObserveStatusLookup("computed")
	return status
}

// statusFromSnapshot walks the tier ladder from the five existence facts.
func statusFromSnapshot(s StatusSnapshot) models.AwardStatus {
	switch {
	case s.SlotConfirmed:
		return models.StatusConfirmed
	case s.SlotWorked:
		return models.StatusWorked
	case !s.EntityWorked:
		return models.StatusNewEntity
	case !s.BandWorked && !s.ModeWorked:
		return models.StatusNewBandMode
	case !s.BandWorked:
		return models.StatusNewBand
	case !s.ModeWorked:
		return models.StatusNewMode
	default:
		return models.StatusNewSlot
	}
}

// Transition maps a cached status to its successor after a contact on
// (newEntityID, newBand, newMode) was logged. oldEntityID, oldBand and
// oldMode identify the slot the cached status belongs to; a contact with an
// unrelated entity leaves the status untouched.
func Transition(old models.AwardStatus, oldEntityID int, oldBand, oldMode string, newEntityID int, newBand, newMode string) models.AwardStatus {
	if oldEntityID != newEntityID {
		return old
	}
	if old == models.StatusUnknown {
		return models.StatusUnknown
	}
	if oldBand == newBand && oldMode == newMode {
		if old == models.StatusConfirmed {
			return models.StatusConfirmed
		}
		return models.StatusWorked
	}

	switch old {
	case models.StatusNewEntity, models.StatusNewBandMode:
		if oldBand != newBand && oldMode != newMode {
			return models.StatusNewBandMode
		}
		if oldBand != newBand {
			return models.StatusNewBand
		}
		return models.StatusNewMode
	case models.StatusNewBand:
		return models.StatusNewBand
	case models.StatusNewMode:
		if oldBand != newBand && oldMode == newMode {
			return models.StatusNewSlot
		}
		return models.StatusNewMode
	default:
		// NewSlot, Worked and Confirmed are unaffected by contacts on
		// other slots.
		return old
	}
}

// ContactAdded folds a freshly logged contact into the cache. Unconfirmed
// contacts take the transition fast path; confirmed ones invalidate the
// entity's entries so the next lookup recomputes.
func (e *Engine) ContactAdded(contact models.Contact) {
	if contact.Confirmed(e.filters) {
		e.invalidate(contact.EntityID, contact.MyEntityID)
		return
	}

	apply := func(band, mode string, status models.AwardStatus) models.AwardStatus {
		return Transition(status, contact.EntityID, band, mode, contact.EntityID, contact.Band, contact.Mode)
	}
	e.cache.UpdateMatching(contact.EntityID, contact.MyEntityID, apply)
	if contact.MyEntityID != 0 {
		// The all-profiles view keys under home entity 0 and sees the
		// same contact.
		e.cache.UpdateMatching(contact.EntityID, 0, apply)
	}
	e.collector.ObserveTransition()
}

// ContactRemoved drops the cached entries a deleted contact may have
// contributed to. Removal cannot be replayed incrementally.
func (e *Engine) ContactRemoved(contact models.Contact) {
	e.invalidate(contact.EntityID, contact.MyEntityID)
}

// ContactConfirmed handles a QSL arriving for an already-logged contact.
func (e *Engine) ContactConfirmed(contact models.Contact) {
	e.invalidate(contact.EntityID, contact.MyEntityID)
}

func (e *Engine) invalidate(entityID, myEntityID int) {
	e.cache.Invalidate(entityID, myEntityID)
	if myEntityID != 0 {
		e.cache.Invalidate(entityID, 0)
	}
	e.collector.ObserveInvalidation()
}

// Reset empties the status cache. Hosts call this after bulk imports or a
// confirmation-filter change.
func (e *Engine) Reset() {
	e.cache.Clear()
}

// CacheSize returns the number of cached status entries.
func (e *Engine) CacheSize() int {
	return e.cache.Size()
}
