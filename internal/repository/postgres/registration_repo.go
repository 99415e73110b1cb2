package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// Register runs the NotRegistered -> Registered transition as one
// transaction: the conference row is locked, the membership and seat checks
// run against the locked state, and the registration row plus the seat
// decrement commit together or not at all.
func (r *registrationRepository) Register(ctx context.Context, profileID, conferenceID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin register tx: %w", err)
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var registered bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE profile_id = $1 AND conference_id = $2)`,
		profileID, conferenceID,
	).Scan(&registered)
	if err != nil {
		return err
	}
	if registered {
		return domain.ErrAlreadyRegistered
	}
	if seats <= 0 {
		return domain.ErrNoSeatsAvailable
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (profile_id, conference_id, created_at) VALUES ($1, $2, NOW())`,
		profileID, conferenceID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available - 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// Unregister runs the reverse transition. Removing a registration that does
// not exist is a successful no-op reported as false; seats are untouched.
func (r *registrationRepository) Unregister(ctx context.Context, profileID, conferenceID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin unregister tx: %w", err)
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM registrations WHERE profile_id = $1 AND conference_id = $2`,
		profileID, conferenceID,
	)
	if err != nil {
		return false, err
	}
	deleted, _ := result.RowsAffected()
	if deleted == 0 {
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available + 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *registrationRepository) ListConferenceIDs(ctx context.Context, profileID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT conference_id FROM registrations WHERE profile_id = $1 ORDER BY created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
