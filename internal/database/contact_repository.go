package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dxtrack/dxtrack/internal/awards"
	"github.com/dxtrack/dxtrack/internal/models"
)

// ContactRepository handles logbook contact storage and the existence
// queries the award status engine is built on.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// confirmationPredicate builds the SQL condition under which a contact
// counts as confirmed. With no filter enabled no contact ever does.
func confirmationPredicate(filters models.ConfirmationFilters) string {
	var parts []string
	if filters.Paper {
		parts = append(parts, "qsl_paper")
	}
	if filters.Lotw {
		parts = append(parts, "qsl_lotw")
	}
	if filters.Eqsl {
		parts = append(parts, "qsl_eqsl")
	}
	if len(parts) == 0 {
		return "FALSE"
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// StatusSnapshot answers the five existence questions for one entity in a
// single round trip. myEntityID == 0 spans contacts under all home entities.
func (r *ContactRepository) StatusSnapshot(ctx context.Context, entityID, myEntityID int, band, mode string, filters models.ConfirmationFilters) (awards.StatusSnapshot, error) {
	confirmed := confirmationPredicate(filters)
	query := fmt.Sprintf(`
		SELECT
			EXISTS(SELECT 1 FROM contacts
				WHERE dxcc = $1 AND ($2 = 0 OR my_dxcc = $2)),
			EXISTS(SELECT 1 FROM contacts
				WHERE dxcc = $1 AND ($2 = 0 OR my_dxcc = $2) AND band = $3),
			EXISTS(SELECT 1 FROM contacts
				WHERE dxcc = $1 AND ($2 = 0 OR my_dxcc = $2) AND mode = $4),
			EXISTS(SELECT 1 FROM contacts
				WHERE dxcc = $1 AND ($2 = 0 OR my_dxcc = $2) AND band = $3 AND mode = $4),
			EXISTS(SELECT 1 FROM contacts
				WHERE dxcc = $1 AND ($2 = 0 OR my_dxcc = $2) AND band = $3 AND mode = $4 AND %s)
	`, confirmed)

	var s awards.StatusSnapshot
	err := r.db.QueryRowContext(ctx, query, entityID, myEntityID, band, mode).Scan(
		&s.EntityWorked,
		&s.BandWorked,
		&s.ModeWorked,
		&s.SlotWorked,
		&s.SlotConfirmed,
	)
	if err != nil {
		return awards.StatusSnapshot{}, fmt.Errorf("failed to query status snapshot: %w", err)
	}

	return s, nil
}

// Insert stores a contact. An empty ID is assigned a fresh UUID; the stored
// contact is returned.
func (r *ContactRepository) Insert(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	query := `
		INSERT INTO contacts (id, callsign, dxcc, my_dxcc, band, mode, freq, start_time,
			qsl_paper, qsl_lotw, qsl_eqsl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.Callsign,
		contact.EntityID,
		contact.MyEntityID,
		contact.Band,
		contact.Mode,
		contact.Freq,
		contact.StartTime,
		contact.QSLPaper,
		contact.QSLLotw,
		contact.QSLEqsl,
	)
	if err != nil {
		return models.Contact{}, fmt.Errorf("failed to insert contact: %w", err)
	}

	return contact, nil
}

// Delete removes a contact by ID. Deleting a missing contact is not an error.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact, or nil when it does not exist.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	query := `
		SELECT id, callsign, dxcc, my_dxcc, band, mode, freq, start_time,
			qsl_paper, qsl_lotw, qsl_eqsl
		FROM contacts
		WHERE id = $1
	`

	var c models.Contact
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Callsign,
		&c.EntityID,
		&c.MyEntityID,
		&c.Band,
		&c.Mode,
		&c.Freq,
		&c.StartTime,
		&c.QSLPaper,
		&c.QSLLotw,
		&c.QSLEqsl,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}

	return &c, nil
}

// ListByCallsign returns the contacts with a callsign, newest first.
func (r *ContactRepository) ListByCallsign(ctx context.Context, callsign string) ([]models.Contact, error) {
	query := `
		SELECT id, callsign, dxcc, my_dxcc, band, mode, freq, start_time,
			qsl_paper, qsl_lotw, qsl_eqsl
		FROM contacts
		WHERE UPPER(callsign) = UPPER($1)
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, callsign)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(
			&c.ID,
			&c.Callsign,
			&c.EntityID,
			&c.MyEntityID,
			&c.Band,
			&c.Mode,
			&c.Freq,
			&c.StartTime,
			&c.QSLPaper,
			&c.QSLLotw,
			&c.QSLEqsl,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// SetQSL updates a contact's confirmation flags.
func (r *ContactRepository) SetQSL(ctx context.Context, id string, paper, lotw, eqsl bool) error {
	query := `
		UPDATE contacts
		SET qsl_paper = $2, qsl_lotw = $3, qsl_eqsl = $4
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, paper, lotw, eqsl)
	if err != nil {
		return fmt.Errorf("failed to update QSL flags: %w", err)
	}
	return nil
}
