package dxcc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dxtrack/dxtrack/internal/models"
)

type fakeDataset struct {
	entities   map[int]models.Entity
	current    []models.PrefixRule
	historical []models.PrefixRule
	exceptions []models.ZoneException

	failCurrent  bool
	failEntities bool

	currentCalls int
}

func (d *fakeDataset) CurrentRules(_ context.Context, key string) ([]models.PrefixRule, error) {
	d.currentCalls++
	if d.failCurrent {
		return nil, errors.New("connection refused")
	}
	var out []models.PrefixRule
	for _, r := range d.current {
		if r.Matches(key) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (d *fakeDataset) HistoricalRules(_ context.Context, key string, asOf time.Time) ([]models.PrefixRule, error) {
	var out []models.PrefixRule
	for _, r := range d.historical {
		if r.Matches(key) && r.ValidAt(asOf) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (d *fakeDataset) ZoneException(_ context.Context, callsign string, asOf time.Time) (*models.ZoneException, error) {
	for i, e := range d.exceptions {
		if e.Callsign == callsign && e.ValidAt(asOf) {
			return &d.exceptions[i], nil
		}
	}
	return nil, nil
}

func (d *fakeDataset) EntityByID(_ context.Context, id int) (models.Entity, error) {
	if d.failEntities {
		return models.Entity{}, errors.New("connection refused")
	}
	return d.entities[id], nil
}

func testResolver(t *testing.T, dataset Dataset) *Resolver {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := NewResolver(dataset, logger, 0, nil)
	if err != nil {
		t.Fatalf("NewResolver() returned error: %v", err)
	}
	return r
}

func czechDataset() *fakeDataset {
	return &fakeDataset{
		entities: map[int]models.Entity{
			503: {ID: 503, Name: "Czech Republic", Prefix: "OK", Continent: "EU", CQZone: 15, ITUZone: 28},
			291: {ID: 291, Name: "United States", Prefix: "K", Continent: "NA", CQZone: 5, ITUZone: 8},
			105: {ID: 105, Name: "Guantanamo Bay", Prefix: "KG4", Continent: "NA", CQZone: 8, ITUZone: 11},
		},
		current: []models.PrefixRule{
			{Prefix: "OK", EntityID: 503},
			{Prefix: "O", EntityID: 291},
			{Prefix: "K", EntityID: 291},
			{Prefix: "W", EntityID: 291},
			{Prefix: "KG4", EntityID: 105},
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := testResolver(t, czechDataset())
	ctx := context.Background()

	tests := []struct {
		name     string
		callsign string
		entityID int
	}{
		{"plain call longest match", "OK1ABC", 503},
		{"host prefix form", "OK/W1AW", 503},
		{"call area suffix", "W1AW/4", 291},
		{"no match", "ZZ9ZZZ", 0},
		{"empty input", "", 0},
		{"garbage input", "!!", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := r.Resolve(ctx, tt.callsign)
			if entity.ID != tt.entityID {
				t.Errorf("Resolve(%q).ID = %d, want %d", tt.callsign, entity.ID, tt.entityID)
			}
		})
	}
}

func TestResolver_ResolveExactBeatsPartial(t *testing.T) {
	dataset := czechDataset()
	dataset.current = append(dataset.current, models.PrefixRule{
		Prefix: "OK1ABC", EntityID: 291, Exact: true,
	})
	r := testResolver(t, dataset)

	entity := r.Resolve(context.Background(), "OK1ABC")
	if entity.ID != 291 {
		t.Errorf("exact rule must win over a longer partial, got entity %d", entity.ID)
	}
}

func TestResolver_ResolveZoneOverrides(t *testing.T) {
	dataset := czechDataset()
	dataset.current = []models.PrefixRule{
		{Prefix: "OK", EntityID: 503, CQZoneOverride: 33},
	}
	r := testResolver(t, dataset)

	entity := r.Resolve(context.Background(), "OK1ABC")
	if entity.CQZone != 33 {
		t.Errorf("CQZone = %d, want override 33", entity.CQZone)
	}
	if entity.ITUZone != 28 {
		t.Errorf("ITUZone = %d, want entity default 28", entity.ITUZone)
	}
}

func TestResolver_SplitPrefix(t *testing.T) {
	r := testResolver(t, czechDataset())
	ctx := context.Background()

	// A 2x1 KG4 call stays on Guantanamo Bay.
	entity := r.Resolve(ctx, "KG4AA")
	if entity.ID != 105 {
		t.Errorf("KG4AA resolved to entity %d, want 105", entity.ID)
	}

	// Any other length re-resolves to the United States, keeping the
	// displayed prefix.
	entity = r.Resolve(ctx, "KG4ABC")
	if entity.ID != 291 {
		t.Errorf("KG4ABC resolved to entity %d, want 291", entity.ID)
	}
	if entity.Prefix != "KG4" {
		t.Errorf("displayed prefix = %q, want KG4", entity.Prefix)
	}
}

func TestResolver_ResolveMemoizes(t *testing.T) {
	dataset := czechDataset()
	r := testResolver(t, dataset)
	ctx := context.Background()

	first := r.Resolve(ctx, "OK1ABC")
	calls := dataset.currentCalls
	second := r.Resolve(ctx, "OK1ABC")

	if dataset.currentCalls != calls {
		t.Error("second resolution must be served from the cache")
	}
	if first != second {
		t.Errorf("memoized result differs: %+v vs %+v", first, second)
	}
	if r.CacheSize() == 0 {
		t.Error("cache must hold the resolved callsign")
	}
}

func TestResolver_ResolveStorageError(t *testing.T) {
	dataset := czechDataset()
	dataset.failCurrent = true
	r := testResolver(t, dataset)

	entity := r.Resolve(context.Background(), "OK1ABC")
	if entity.IsKnown() {
		t.Errorf("storage error must yield the unknown entity, got %+v", entity)
	}

	// Errors are not cached; a recovered dataset resolves again.
	dataset.failCurrent = false
	entity = r.Resolve(context.Background(), "OK1ABC")
	if entity.ID != 503 {
		t.Errorf("post-recovery resolution = %d, want 503", entity.ID)
	}
}

func TestResolver_ResolveEntityLookupError(t *testing.T) {
	dataset := czechDataset()
	dataset.failEntities = true
	r := testResolver(t, dataset)

	entity := r.Resolve(context.Background(), "OK1ABC")
	if entity.IsKnown() {
		t.Errorf("entity lookup error must yield the unknown entity, got %+v", entity)
	}
}

func TestResolver_ClearCache(t *testing.T) {
	r := testResolver(t, czechDataset())
	r.Resolve(context.Background(), "OK1ABC")

	r.ClearCache()

	if r.CacheSize() != 0 {
		t.Errorf("expected empty cache, got %d entries", r.CacheSize())
	}
}

func TestResolver_ResolveHistorical(t *testing.T) {
	asOf := time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(1993, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC)

	dataset := czechDataset()
	dataset.historical = []models.PrefixRule{
		{Prefix: "OK", EntityID: 503, ValidFrom: &from, ValidTo: &to},
	}
	r := testResolver(t, dataset)

	entity := r.ResolveHistorical(context.Background(), "OK1ABC", asOf)
	if entity.ID != 503 {
		t.Fatalf("historical resolution = %d, want 503", entity.ID)
	}
	if entity.ITUZone != 28 {
		t.Errorf("ITUZone = %d, want 28 filled from the current dataset", entity.ITUZone)
	}
}

func TestResolver_ResolveHistoricalOutsideValidity(t *testing.T) {
	from := time.Date(1993, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC)

	dataset := czechDataset()
	dataset.historical = []models.PrefixRule{
		{Prefix: "OK", EntityID: 503, ValidFrom: &from, ValidTo: &to},
	}
	r := testResolver(t, dataset)

	asOf := time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC)
	entity := r.ResolveHistorical(context.Background(), "OK1ABC", asOf)
	if entity.IsKnown() {
		t.Errorf("resolution outside the validity range must be unknown, got %+v", entity)
	}
}

func TestResolver_ResolveHistoricalZoneException(t *testing.T) {
	asOf := time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC)

	dataset := czechDataset()
	dataset.historical = []models.PrefixRule{
		{Prefix: "OK", EntityID: 503},
	}
	dataset.exceptions = []models.ZoneException{
		{Callsign: "OK1ABC", CQZone: 40},
	}
	r := testResolver(t, dataset)

	entity := r.ResolveHistorical(context.Background(), "OK1ABC", asOf)
	if entity.CQZone != 40 {
		t.Errorf("CQZone = %d, want forced 40", entity.CQZone)
	}
	// The forced zone disagrees with the current dataset, so no ITU zone
	// can be reconciled in.
	if entity.ITUZone != 0 {
		t.Errorf("ITUZone = %d, want 0 after the exception erased it", entity.ITUZone)
	}
}

func TestResolver_ResolveHistoricalReconciliationOverwrites(t *testing.T) {
	asOf := time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC)

	// The historical rule carries its own ITU zone, but since entity and
	// CQ zone agree with the current dataset, the current zone wins.
	dataset := czechDataset()
	dataset.historical = []models.PrefixRule{
		{Prefix: "OK", EntityID: 503, ITUZoneOverride: 99},
	}
	r := testResolver(t, dataset)

	entity := r.ResolveHistorical(context.Background(), "OK1ABC", asOf)
	if entity.ITUZone != 28 {
		t.Errorf("ITUZone = %d, want 28 from the current dataset", entity.ITUZone)
	}
}

func TestResolver_ResolveHistoricalDisagreementKeepsZone(t *testing.T) {
	asOf := time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC)

	// The datasets assign different CQ zones, so the historical rule's own
	// ITU zone survives.
	dataset := czechDataset()
	dataset.historical = []models.PrefixRule{
		{Prefix: "OK", EntityID: 503, CQZoneOverride: 40, ITUZoneOverride: 99},
	}
	r := testResolver(t, dataset)

	entity := r.ResolveHistorical(context.Background(), "OK1ABC", asOf)
	if entity.ITUZone != 99 {
		t.Errorf("ITUZone = %d, want the historical rule's 99", entity.ITUZone)
	}
}
