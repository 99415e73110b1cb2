package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"conferencecentral/internal/domain"
)

// postgresQueue stores submitted tasks as pending rows. The dispatcher picks
// them up out of band, so Submit returns as soon as the row is durable.
type postgresQueue struct {
	DB *sql.DB
}

// NewPostgresQueue creates a TaskQueue backed by the tasks table.
func NewPostgresQueue(db *sql.DB) domain.TaskQueue {
	return &postgresQueue{
		DB: db,
	}
}

func (q *postgresQueue) Submit(ctx context.Context, name string, params map[string]string) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal task params: %w", err)
	}
	_, err = q.DB.ExecContext(ctx,
		`INSERT INTO tasks (id, name, params, status, created_at) VALUES ($1, $2, $3, 'pending', $4)`,
		uuid.NewString(), name, payload, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}
