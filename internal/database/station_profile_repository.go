package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dxtrack/dxtrack/internal/models"
)

// StationProfileRepository handles the operator's station profiles.
type StationProfileRepository struct {
	db *sql.DB
}

// NewStationProfileRepository creates a new station profile repository.
func NewStationProfileRepository(db *sql.DB) *StationProfileRepository {
	return &StationProfileRepository{db: db}
}

// List returns all station profiles ordered by name.
func (r *StationProfileRepository) List(ctx context.Context) ([]models.StationProfile, error) {
	query := `
		SELECT name, callsign, locator, dxcc
		FROM station_profiles
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query station profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.StationProfile
	for rows.Next() {
		var p models.StationProfile
		if err := rows.Scan(&p.Name, &p.Callsign, &p.Locator, &p.EntityID); err != nil {
			return nil, fmt.Errorf("failed to scan station profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Get retrieves a station profile by name, or nil when it does not exist.
func (r *StationProfileRepository) Get(ctx context.Context, name string) (*models.StationProfile, error) {
	query := `
		SELECT name, callsign, locator, dxcc
		FROM station_profiles
		WHERE name = $1
	`

	var p models.StationProfile
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.Name, &p.Callsign, &p.Locator, &p.EntityID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query station profile: %w", err)
	}

	return &p, nil
}

// Upsert inserts or replaces a station profile keyed by name.
func (r *StationProfileRepository) Upsert(ctx context.Context, profile models.StationProfile) error {
	query := `
		INSERT INTO station_profiles (name, callsign, locator, dxcc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET callsign = EXCLUDED.callsign,
		    locator = EXCLUDED.locator,
		    dxcc = EXCLUDED.dxcc
	`

	_, err := r.db.ExecContext(ctx, query, profile.Name, profile.Callsign, profile.Locator, profile.EntityID)
	if err != nil {
		return fmt.Errorf("failed to upsert station profile: %w", err)
	}
	return nil
}
