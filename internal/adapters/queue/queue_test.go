package queue

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func TestPostgresQueue_Submit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO tasks \(id, name, params, status, created_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := NewPostgresQueue(db)
	err = q.Submit(context.Background(), domain.TaskSendConfirmationEmail, map[string]string{
		"email": "u@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcher_ProcessOne(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("runs the handler and finishes the task", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name, params, attempts FROM tasks WHERE status = 'pending'`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "params", "attempts"}).
				AddRow("task-1", domain.TaskSendConfirmationEmail, []byte(`{"email":"u@example.com"}`), 0))
		mock.ExpectExec(`UPDATE tasks SET status = 'done'`).
			WithArgs("task-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		var gotParams map[string]string
		d := NewDispatcher(db, map[string]domain.TaskHandler{
			domain.TaskSendConfirmationEmail: func(ctx context.Context, params map[string]string) error {
				gotParams = params
				return nil
			},
		}, logger, 0)

		processed, err := d.processOne(context.Background())
		require.NoError(t, err)
		require.True(t, processed)
		require.Equal(t, "u@example.com", gotParams["email"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty queue", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name, params, attempts FROM tasks`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "params", "attempts"}))
		mock.ExpectRollback()

		d := NewDispatcher(db, nil, logger, 0)
		processed, err := d.processOne(context.Background())
		require.NoError(t, err)
		require.False(t, processed)
	})

	t.Run("handler error counts the attempt and leaves the task pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name, params, attempts FROM tasks`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "params", "attempts"}).
				AddRow("task-1", domain.TaskSetFeaturedSpeaker, []byte(`{}`), 0))
		mock.ExpectExec(`UPDATE tasks SET attempts = \$2`).
			WithArgs("task-1", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		d := NewDispatcher(db, map[string]domain.TaskHandler{
			domain.TaskSetFeaturedSpeaker: func(ctx context.Context, params map[string]string) error {
				return context.DeadlineExceeded
			},
		}, logger, 0)

		processed, err := d.processOne(context.Background())
		require.NoError(t, err)
		require.False(t, processed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("task is parked after repeated failures", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name, params, attempts FROM tasks`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "params", "attempts"}).
				AddRow("task-1", domain.TaskSetFeaturedSpeaker, []byte(`{}`), taskMaxAttempts-1))
		mock.ExpectExec(`UPDATE tasks SET status = 'failed', attempts = \$2`).
			WithArgs("task-1", taskMaxAttempts).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		d := NewDispatcher(db, map[string]domain.TaskHandler{
			domain.TaskSetFeaturedSpeaker: func(ctx context.Context, params map[string]string) error {
				return context.DeadlineExceeded
			},
		}, logger, 0)

		processed, err := d.processOne(context.Background())
		require.NoError(t, err)
		require.False(t, processed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown task name is parked", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, name, params, attempts FROM tasks`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "params", "attempts"}).
				AddRow("task-1", "mystery", []byte(`{}`), 0))
		mock.ExpectExec(`UPDATE tasks SET status = 'failed'`).
			WithArgs("task-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		d := NewDispatcher(db, map[string]domain.TaskHandler{}, logger, 0)
		processed, err := d.processOne(context.Background())
		require.NoError(t, err)
		require.True(t, processed)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
