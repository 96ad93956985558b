package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dxtrack/dxtrack/internal/models"
)

// ReferenceRepository reads the DXCC reference tables: entities, the
// current and historical prefix rules, zone exceptions and the band plan.
// It satisfies the resolver's Dataset interface.
type ReferenceRepository struct {
	db *sql.DB
}

// NewReferenceRepository creates a new reference data repository.
func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// CurrentRules returns the current-dataset rules matching the lookup key,
// either by exact equality or as a leading prefix of the key.
func (r *ReferenceRepository) CurrentRules(ctx context.Context, key string) ([]models.PrefixRule, error) {
	query := `
		SELECT prefix, dxcc, exact, cqz, ituz
		FROM dxcc_prefixes
		WHERE (exact AND prefix = $1)
		   OR (NOT exact AND $1 LIKE prefix || '%')
	`

	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query prefix rules: %w", err)
	}
	defer rows.Close()

	return scanPrefixRules(rows, false)
}

// HistoricalRules returns the historical-dataset rules matching the lookup
// key whose validity range contains asOf.
func (r *ReferenceRepository) HistoricalRules(ctx context.Context, key string, asOf time.Time) ([]models.PrefixRule, error) {
	query := `
		SELECT prefix, dxcc, exact, cqz, ituz, start_date, end_date
		FROM clublog_prefixes
		WHERE ((exact AND prefix = $1)
		   OR (NOT exact AND $1 LIKE prefix || '%'))
		  AND (start_date IS NULL OR start_date <= $2)
		  AND (end_date IS NULL OR end_date >= $2)
	`

	rows, err := r.db.QueryContext(ctx, query, key, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical prefix rules: %w", err)
	}
	defer rows.Close()

	return scanPrefixRules(rows, true)
}

func scanPrefixRules(rows *sql.Rows, dated bool) ([]models.PrefixRule, error) {
	var rules []models.PrefixRule
	for rows.Next() {
		var rule models.PrefixRule
		var err error
		if dated {
			err = rows.Scan(&rule.Prefix, &rule.EntityID, &rule.Exact,
				&rule.CQZoneOverride, &rule.ITUZoneOverride,
				&rule.ValidFrom, &rule.ValidTo)
		} else {
			err = rows.Scan(&rule.Prefix, &rule.EntityID, &rule.Exact,
				&rule.CQZoneOverride, &rule.ITUZoneOverride)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan prefix rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// ZoneException returns the zone exception for the exact callsign valid at
// asOf, or nil when none applies.
func (r *ReferenceRepository) ZoneException(ctx context.Context, callsign string, asOf time.Time) (*models.ZoneException, error) {
	query := `
		SELECT callsign, cqz
		FROM clublog_zone_exceptions
		WHERE callsign = $1
		  AND (start_date IS NULL OR start_date <= $2)
		  AND (end_date IS NULL OR end_date >= $2)
		LIMIT 1
	`

	var e models.ZoneException
	err := r.db.QueryRowContext(ctx, query, callsign, asOf).Scan(&e.Callsign, &e.CQZone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query zone exception: %w", err)
	}

	return &e, nil
}

// EntityByID returns the entity record, or the zero Entity when the id is
// unknown.
func (r *ReferenceRepository) EntityByID(ctx context.Context, id int) (models.Entity, error) {
	query := `
		SELECT id, name, prefix, cont, cqz, ituz, lat, lon, tz, iso_code
		FROM dxcc_entities
		WHERE id = $1
	`

	var e models.Entity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.Name,
		&e.Prefix,
		&e.Continent,
		&e.CQZone,
		&e.ITUZone,
		&e.Latitude,
		&e.Longitude,
		&e.TimezoneOffset,
		&e.ISOCode,
	)
	if err == sql.ErrNoRows {
		return models.Entity{}, nil
	}
	if err != nil {
		return models.Entity{}, fmt.Errorf("failed to query entity: %w", err)
	}

	return e, nil
}

// BandForFrequency returns the band plan name covering a frequency in MHz,
// or the empty string when it falls outside every band.
func (r *ReferenceRepository) BandForFrequency(ctx context.Context, freq float64) (string, error) {
	query := `
		SELECT name
		FROM bands
		WHERE $1 BETWEEN start_freq AND end_freq
		LIMIT 1
	`

	var name string
	err := r.db.QueryRowContext(ctx, query, freq).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query band plan: %w", err)
	}

	return name, nil
}
