package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, conference_id, name, highlights, speaker_id, duration, type_of_session, date, start_time, created_at`

func scanSession(row interface{ Scan(...any) error }) (*domain.Session, error) {
	var s domain.Session
	var speakerID sql.NullString
	var date, startTime sql.NullTime
	err := row.Scan(
		&s.ID,
		&s.ConferenceID,
		&s.Name,
		pq.Array(&s.Highlights),
		&speakerID,
		&s.Duration,
		&s.TypeOfSession,
		&date,
		&startTime,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if speakerID.Valid {
		s.SpeakerID = speakerID.String
	}
	if date.Valid {
		s.Date = &date.Time
	}
	if startTime.Valid {
		s.StartTime = &startTime.Time
	}
	return &s, nil
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	var speakerID sql.NullString
	if session.SpeakerID != "" {
		speakerID = sql.NullString{String: session.SpeakerID, Valid: true}
	}
	var date, startTime sql.NullTime
	if session.Date != nil {
		date = sql.NullTime{Time: *session.Date, Valid: true}
	}
	if session.StartTime != nil {
		startTime = sql.NullTime{Time: *session.StartTime, Valid: true}
	}
	query := `
		INSERT INTO sessions (conference_id, name, highlights, speaker_id, duration, type_of_session, date, start_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	return r.DB.QueryRowContext(ctx, query,
		session.ConferenceID,
		session.Name,
		pq.Array(session.Highlights),
		speakerID,
		session.Duration,
		session.TypeOfSession,
		date,
		startTime,
		session.CreatedAt,
	).Scan(&session.ID)
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	session, err := scanSession(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ANY($1)`
	return r.collect(ctx, query, pq.Array(ids))
}

func (r *sessionRepository) ListByConference(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	if typeOfSession != "" {
		query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 AND type_of_session = $2 ORDER BY name ASC`
		return r.collect(ctx, query, conferenceID, typeOfSession)
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 ORDER BY name ASC`
	return r.collect(ctx, query, conferenceID)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speakerID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE speaker_id = $1 ORDER BY name ASC`
	return r.collect(ctx, query, speakerID)
}

func (r *sessionRepository) ListByTypes(ctx context.Context, types []string) ([]*domain.Session, error) {
	if len(types) == 0 {
		return []*domain.Session{}, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE type_of_session = ANY($1) ORDER BY name ASC`
	return r.collect(ctx, query, pq.Array(types))
}

func (r *sessionRepository) ListByStartTime(ctx context.Context, conferenceID string, after time.Time) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 AND start_time >= $2 ORDER BY start_time ASC`
	return r.collect(ctx, query, conferenceID, after.Format("15:04:05"))
}

func (r *sessionRepository) ListByStartTimeAndTypes(ctx context.Context, after time.Time, types []string) ([]*domain.Session, error) {
	if len(types) == 0 {
		return []*domain.Session{}, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE start_time >= $1 AND type_of_session = ANY($2) ORDER BY start_time ASC`
	return r.collect(ctx, query, after.Format("15:04:05"), pq.Array(types))
}

func (r *sessionRepository) ListBySpeakerInConference(ctx context.Context, conferenceID, speakerID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 AND speaker_id = $2 ORDER BY name ASC`
	return r.collect(ctx, query, conferenceID, speakerID)
}

func (r *sessionRepository) collect(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
