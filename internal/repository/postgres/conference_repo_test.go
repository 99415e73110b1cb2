package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func conferenceRows(c *domain.Conference) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "organizer_id", "topics", "city",
		"start_date", "end_date", "month", "max_attendees", "seats_available",
		"created_at", "updated_at",
	})
	var start, end any
	if c.StartDate != nil {
		start = *c.StartDate
	}
	if c.EndDate != nil {
		end = *c.EndDate
	}
	rows.AddRow(
		c.ID, c.Name, c.Description, c.OrganizerID, "{"+joinTopics(c.Topics)+"}", c.City,
		start, end, c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt,
	)
	return rows
}

func joinTopics(topics []string) string {
	out := ""
	for i, t := range topics {
		if i > 0 {
			out += ","
		}
		out += t
	}
	return out
}

func TestConferenceRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		conference *domain.Conference
		mock       func(mock sqlmock.Sqlmock)
		wantID     string
		wantErr    bool
	}{
		{
			name: "success",
			conference: &domain.Conference{
				Name:        "GopherCon",
				OrganizerID: "user-1",
				Topics:      []string{"Go"},
				City:        "Denver",
				Month:       5,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO conferences \(name, description, organizer_id, topics, city`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("conf-uuid-1"))
			},
			wantID: "conf-uuid-1",
		},
		{
			name: "db error",
			conference: &domain.Conference{
				Name:        "GopherCon",
				OrganizerID: "user-1",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO conferences`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewConferenceRepository(db)
			err = repo.Create(ctx, tt.conference)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.conference.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConferenceRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := &domain.Conference{
			ID:             "conf-1",
			Name:           "GopherCon",
			OrganizerID:    "user-1",
			Topics:         []string{"Go"},
			City:           "Denver",
			StartDate:      &start,
			Month:          6,
			MaxAttendees:   100,
			SeatsAvailable: 100,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		mock.ExpectQuery(`SELECT id, name, description, organizer_id, topics`).
			WithArgs("conf-1").
			WillReturnRows(conferenceRows(want))

		repo := NewConferenceRepository(db)
		got, err := repo.GetByID(ctx, "conf-1")
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, description, organizer_id, topics`).
			WithArgs("conf-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewConferenceRepository(db)
		_, err = repo.GetByID(ctx, "conf-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestConferenceRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE conferences`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewConferenceRepository(db)
		err = repo.Update(ctx, &domain.Conference{ID: "conf-missing"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestConferenceRepository_Query(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		filters []query.Filter
		wantSQL string
		args    []driver.Value
	}{
		{
			name: "equality only orders by name",
			filters: []query.Filter{
				{Field: "CITY", Operator: "EQ", Value: "London"},
			},
			wantSQL: `SELECT id, name, description, organizer_id, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at FROM conferences WHERE city = \$1 ORDER BY name ASC`,
			args:    []driver.Value{"London"},
		},
		{
			name: "inequality leads the sort",
			filters: []query.Filter{
				{Field: "CITY", Operator: "EQ", Value: "London"},
				{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
			},
			wantSQL: `WHERE city = \$1 AND max_attendees > \$2 ORDER BY max_attendees ASC, name ASC`,
			args:    []driver.Value{"London", int64(10)},
		},
		{
			name: "topic equality is array membership",
			filters: []query.Filter{
				{Field: "TOPIC", Operator: "EQ", Value: "Go"},
			},
			wantSQL: `WHERE \$1 = ANY\(topics\) ORDER BY name ASC`,
			args:    []driver.Value{"Go"},
		},
		{
			name: "topic exclusion negates membership",
			filters: []query.Filter{
				{Field: "TOPIC", Operator: "NE", Value: "Go"},
			},
			wantSQL: `WHERE NOT \(\$1 = ANY\(topics\)\) ORDER BY topics ASC, name ASC`,
			args:    []driver.Value{"Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			compiled, err := query.Compile(tt.filters)
			require.NoError(t, err)

			mock.ExpectQuery(tt.wantSQL).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{
					"id", "name", "description", "organizer_id", "topics", "city",
					"start_date", "end_date", "month", "max_attendees", "seats_available",
					"created_at", "updated_at",
				}))

			repo := NewConferenceRepository(db)
			got, err := repo.Query(ctx, compiled)
			require.NoError(t, err)
			require.Empty(t, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConferenceRepository_ListNearlySoldOut(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE seats_available > 0 AND seats_available <= \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "organizer_id", "topics", "city",
			"start_date", "end_date", "month", "max_attendees", "seats_available",
			"created_at", "updated_at",
		}))

	repo := NewConferenceRepository(db)
	got, err := repo.ListNearlySoldOut(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConferenceRepository_GetByIDs_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewConferenceRepository(db)
	got, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
