package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{
		DB: db,
	}
}

const speakerColumns = `id, name, bio, credentials, title, email, created_at`

func scanSpeaker(row interface{ Scan(...any) error }) (*domain.Speaker, error) {
	var s domain.Speaker
	var email sql.NullString
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Bio,
		pq.Array(&s.Credentials),
		&s.Title,
		&email,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		s.Email = email.String
	}
	return &s, nil
}

func (r *speakerRepository) Create(ctx context.Context, speaker *domain.Speaker) error {
	var email sql.NullString
	if speaker.Email != "" {
		email = sql.NullString{String: speaker.Email, Valid: true}
	}
	query := `
		INSERT INTO speakers (name, bio, credentials, title, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		speaker.Name,
		speaker.Bio,
		pq.Array(speaker.Credentials),
		speaker.Title,
		email,
		speaker.CreatedAt,
	).Scan(&speaker.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateSpeakerEmail
		}
		return err
	}
	return nil
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	speaker, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return speaker, nil
}

func (r *speakerRepository) Search(ctx context.Context, name, email string) ([]*domain.Speaker, error) {
	var rows *sql.Rows
	var err error
	switch {
	case email != "":
		query := `SELECT ` + speakerColumns + ` FROM speakers WHERE email = $1 ORDER BY name ASC`
		rows, err = r.DB.QueryContext(ctx, query, email)
	case name != "":
		query := `SELECT ` + speakerColumns + ` FROM speakers WHERE name = $1 ORDER BY name ASC`
		rows, err = r.DB.QueryContext(ctx, query, name)
	default:
		query := `SELECT ` + speakerColumns + ` FROM speakers ORDER BY name ASC`
		rows, err = r.DB.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		speaker, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, speaker)
	}
	return speakers, rows.Err()
}
