package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

const conferenceColumns = `id, name, description, organizer_id, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

// queryColumns maps compiled filter properties onto table columns. The
// property vocabulary is closed by the filter compiler.
var queryColumns = map[string]string{
	"city":         "city",
	"topics":       "topics",
	"month":        "month",
	"maxAttendees": "max_attendees",
	"name":         "name",
}

func scanConference(row interface{ Scan(...any) error }) (*domain.Conference, error) {
	c := &domain.Conference{}
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.OrganizerID, pq.Array(&c.Topics), &c.City,
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	q := `
		INSERT INTO conferences (name, description, organizer_id, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, q,
		c.Name, c.Description, c.OrganizerID, pq.Array(c.Topics), c.City,
		c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	return scanConference(r.DB.QueryRowContext(ctx, q, id))
}

func (r *conferenceRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = ANY($1)`
	rows, err := r.DB.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

func (r *conferenceRepository) Update(ctx context.Context, c *domain.Conference) error {
	q := `
		UPDATE conferences
		SET name = $1, description = $2, topics = $3, city = $4, start_date = $5, end_date = $6,
		    month = $7, max_attendees = $8, seats_available = $9, updated_at = NOW()
		WHERE id = $10
	`
	result, err := r.DB.ExecContext(ctx, q,
		c.Name, c.Description, pq.Array(c.Topics), c.City, c.StartDate, c.EndDate,
		c.Month, c.MaxAttendees, c.SeatsAvailable, c.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Query renders a compiled filter query to SQL and executes it. Equality on
// topics is array membership; other conditions compare their column
// directly. Ordering follows the compiled two-level sort.
func (r *conferenceRepository) Query(ctx context.Context, cq *query.Compiled) ([]*domain.Conference, error) {
	var (
		where []string
		args  []any
	)
	for _, cond := range cq.Conditions {
		col, ok := queryColumns[cond.Property]
		if !ok {
			return nil, fmt.Errorf("unmapped query property %q", cond.Property)
		}
		args = append(args, cond.Value)
		n := len(args)
		if cond.Property == "topics" {
			if cond.Operator == "!=" {
				where = append(where, fmt.Sprintf("NOT ($%d = ANY(%s))", n, col))
			} else {
				where = append(where, fmt.Sprintf("$%d %s ANY(%s)", n, cond.Operator, col))
			}
			continue
		}
		where = append(where, fmt.Sprintf("%s %s $%d", col, cond.Operator, n))
	}

	var orderBy []string
	for _, prop := range cq.OrderBy {
		col, ok := queryColumns[prop]
		if !ok {
			return nil, fmt.Errorf("unmapped order property %q", prop)
		}
		orderBy = append(orderBy, col+" ASC")
	}

	q := `SELECT ` + conferenceColumns + ` FROM conferences`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY " + strings.Join(orderBy, ", ")

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context, threshold int) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE seats_available > 0 AND seats_available <= $1 ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, q, threshold)
	if err != nil {
		return nil, err
	}
	return collectConferences(rows)
}

func collectConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	defer rows.Close()
	conferences := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}
