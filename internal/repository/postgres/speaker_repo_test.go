package postgres

import (
	"context"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestSpeakerRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO speakers \(name, bio, credentials, title, email, created_at\)`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("spk-uuid-1"))

		repo := NewSpeakerRepository(db)
		speaker := domain.NewSpeaker("Ada", "bio", "Dr", "ada@example.com", []string{"PhD"}, now)
		require.NoError(t, repo.Create(ctx, speaker))
		require.Equal(t, "spk-uuid-1", speaker.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO speakers`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewSpeakerRepository(db)
		speaker := domain.NewSpeaker("Ada", "", "", "ada@example.com", nil, now)
		err = repo.Create(ctx, speaker)
		require.ErrorIs(t, err, domain.ErrDuplicateSpeakerEmail)
	})
}

func TestSpeakerRepository_Search(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "name", "bio", "credentials", "title", "email", "created_at"}
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("email wins over name", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM speakers WHERE email = \$1`).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("spk-1", "Ada", "bio", "{PhD}", "Dr", "ada@example.com", now))

		repo := NewSpeakerRepository(db)
		got, err := repo.Search(ctx, "Ada", "ada@example.com")
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "spk-1", got[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no criteria lists all", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM speakers ORDER BY name ASC`).
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewSpeakerRepository(db)
		got, err := repo.Search(ctx, "", "")
		require.NoError(t, err)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
