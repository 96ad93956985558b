package dxcc

import (
	"context"
	"log/slog"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dxtrack/dxtrack/internal/metrics"
	"github.com/dxtrack/dxtrack/internal/models"
)

// DefaultCacheSize bounds the per-callsign result cache.
const DefaultCacheSize = 1000

// Guantanamo Bay shares the KG4 prefix with the United States; only 2x1
// calls (five characters) belong to the base itself.
const (
	guantanamoPrefix   = "KG4"
	guantanamoCallLen  = 5
	unitedStatesEntity = 291
)

// Dataset is the read-only accessor over the two prefix/entity reference
// datasets. Implementations return every rule matching the lookup key
// (exact-equality or starts-with); the resolver owns the tie-break.
type Dataset interface {
	// CurrentRules returns matching rules from the current dataset.
	CurrentRules(ctx context.Context, key string) ([]models.PrefixRule, error)

	// HistoricalRules returns matching rules from the historical dataset
	// whose validity range contains asOf.
	HistoricalRules(ctx context.Context, key string, asOf time.Time) ([]models.PrefixRule, error)

	// ZoneException returns the zone exception for the exact callsign at
	// asOf, or nil when none applies.
	ZoneException(ctx context.Context, callsign string, asOf time.Time) (*models.ZoneException, error)

	// EntityByID returns the entity record, or the zero Entity when the id
	// is unknown.
	EntityByID(ctx context.Context, id int) (models.Entity, error)
}

// Resolver maps callsigns to DXCC entities. It never fails: any miss or
// storage error yields the zero Entity plus a diagnostic.
type Resolver struct {
	dataset   Dataset
	cache     *lru.Cache[string, models.Entity]
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewResolver constructs a resolver over the given dataset. cacheSize <= 0
// selects DefaultCacheSize; collector may be nil.
func NewResolver(dataset Dataset, logger *slog.Logger, cacheSize int, collector *metrics.Collector) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, models.Entity](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		dataset:   dataset,
		cache:     cache,
		logger:    logger,
		collector: collector,
	}, nil
}

// Resolve returns the entity the callsign belongs to today, or the zero
// Entity when nothing matches. Results are memoized by the original,
// unparsed callsign string.
func (r *Resolver) Resolve(ctx context.Context, callsign string) models.Entity {
	if callsign == "" {
		return models.UnknownEntity
	}

	if cached, ok := r.cache.Get(callsign); ok {
		r.collector.ObserveResolverCacheHit()
		return cached
	}

	parsed := ParseCallsign(callsign)
	key := parsed.EntityLookupKey()

	rules, err := r.dataset.CurrentRules(ctx, key)
	if err != nil {
		r.logger.Warn("prefix lookup failed", "callsign", callsign, "key", key, "error", err)
		r.collector.ObserveResolution("current", "unknown")
		return models.UnknownEntity
	}

	rule, ok := pickRule(rules)
	if !ok {
		r.collector.ObserveResolution("current", "unknown")
		r.cache.Add(callsign, models.UnknownEntity)
		return models.UnknownEntity
	}

	entity, err := r.entityFromRule(ctx, rule)
	if err != nil {
		r.logger.Warn("entity lookup failed", "callsign", callsign, "entity_id", rule.EntityID, "error", err)
		r.collector.ObserveResolution("current", "unknown")
		return models.UnknownEntity
	}

	entity = r.applySplitPrefixException(ctx, entity, parsed)

	r.collector.ObserveResolution("current", "resolved")
	r.cache.Add(callsign, entity)
	return entity
}

// ResolveHistorical resolves the callsign against the historical dataset as
// of a given date, reconciling the ITU zone with the current dataset.
func (r *Resolver) ResolveHistorical(ctx context.Context, callsign string, asOf time.Time) models.Entity {
	if callsign == "" {
		return models.UnknownEntity
	}

	parsed := ParseCallsign(callsign)
	key := parsed.EntityLookupKey()

	rules, err := r.dataset.HistoricalRules(ctx, key, asOf)
	if err != nil {
		r.logger.Warn("historical prefix lookup failed", "callsign", callsign, "key", key, "error", err)
		r.collector.ObserveResolution("historical", "unknown")
		return models.UnknownEntity
	}

	rule, ok := pickRule(rules)
	if !ok {
		r.collector.ObserveResolution("historical", "unknown")
		return models.UnknownEntity
	}

	entity, err := r.entityFromRule(ctx, rule)
	if err != nil {
		r.logger.Warn("entity lookup failed", "callsign", callsign, "entity_id", rule.EntityID, "error", err)
		r.collector.ObserveResolution("historical", "unknown")
		return models.UnknownEntity
	}

	lookup := parsed.Normalized
	if lookup == "" {
		lookup = callsign
	}
	exception, err := r.dataset.ZoneException(ctx, lookup, asOf)
	if err != nil {
		r.logger.Warn("zone exception lookup failed", "callsign", callsign, "error", err)
	} else if exception != nil {
		// A forced CQ zone erases the ITU zone; the current dataset
		// supplies it during reconciliation below.
		entity.CQZone = exception.CQZone
		entity.ITUZone = 0
	}

	current := r.Resolve(ctx, callsign)

	if entity.ITUZone == 0 {
		if current.ID != entity.ID || current.CQZone != entity.CQZone {
			r.logger.Debug("datasets disagree, leaving ITU zone unset",
				"callsign", callsign,
				"historical_entity", entity.ID,
				"historical_cqz", entity.CQZone,
				"current_entity", current.ID,
				"current_cqz", current.CQZone)
		}
	}
	// The fill is applied unconditionally: whenever entity and CQ zone
	// agree between datasets, the current dataset's ITU zone wins, even
	// over a value the exception table or the historical rule supplied.
	if current.ID == entity.ID && current.CQZone == entity.CQZone {
		entity.ITUZone = current.ITUZone
	}

	r.collector.ObserveResolution("historical", "resolved")
	return entity
}

// CacheSize returns the number of memoized resolutions.
func (r *Resolver) CacheSize() int {
	return r.cache.Len()
}

// ClearCache drops all memoized resolutions. Hosts call this after a
// reference dataset update.
func (r *Resolver) ClearCache() {
	r.cache.Purge()
}

// pickRule orders candidates by exact descending, then prefix string
// descending, and returns the first. For this dataset's encoding the
// lexicographically greatest prefix is the most specific one.
func pickRule(rules []models.PrefixRule) (models.PrefixRule, bool) {
	if len(rules) == 0 {
		return models.PrefixRule{}, false
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Exact != rules[j].Exact {
			return rules[i].Exact
		}
		return rules[i].Prefix > rules[j].Prefix
	})
	return rules[0], true
}

func (r *Resolver) entityFromRule(ctx context.Context, rule models.PrefixRule) (models.Entity, error) {
	entity, err := r.dataset.EntityByID(ctx, rule.EntityID)
	if err != nil {
		return models.UnknownEntity, err
	}
	if !entity.IsKnown() {
		return models.UnknownEntity, nil
	}
	if rule.CQZoneOverride != 0 {
		entity.CQZone = rule.CQZoneOverride
	}
	if rule.ITUZoneOverride != 0 {
		entity.ITUZone = rule.ITUZoneOverride
	}
	return entity, nil
}

// applySplitPrefixException handles the KG4 split: only 2x1 calls belong
// to Guantanamo Bay; every other call length re-resolves to the United
// States while the displayed prefix stays unchanged.
func (r *Resolver) applySplitPrefixException(ctx context.Context, entity models.Entity, parsed Callsign) models.Entity {
	if entity.Prefix != guantanamoPrefix {
		return entity
	}
	if parsed.IsValid() && len(parsed.Base) == guantanamoCallLen {
		return entity
	}

	majority, err := r.dataset.EntityByID(ctx, unitedStatesEntity)
	if err != nil || !majority.IsKnown() {
		r.logger.Warn("split-prefix re-resolution failed", "entity_id", unitedStatesEntity, "error", err)
		return entity
	}
	majority.Prefix = entity.Prefix
	return majority
}
