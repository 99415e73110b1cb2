package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencecentral/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	q := `
		INSERT INTO profiles (id, display_name, main_email, tee_shirt_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, q, p.ID, p.DisplayName, p.MainEmail, p.TeeShirtSize, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	q := `
		SELECT id, display_name, main_email, tee_shirt_size, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	p := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.DisplayName, &p.MainEmail, &p.TeeShirtSize, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	q := `
		UPDATE profiles
		SET display_name = $1, tee_shirt_size = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, q, p.DisplayName, p.TeeShirtSize, p.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
