package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

// taskMaxAttempts is the delivery cap per task. A row that keeps failing is
// parked as failed so it cannot starve the tasks queued behind it.
const taskMaxAttempts = 5

// Dispatcher drains pending tasks and hands them to their registered
// handlers. Claims use FOR UPDATE SKIP LOCKED so several dispatchers can run
// against the same table. A handler error leaves the row pending for a later
// attempt, up to taskMaxAttempts; tasks are delivered at least once.
type Dispatcher struct {
	db       *sql.DB
	handlers map[string]domain.TaskHandler
	logger   *slog.Logger
	interval time.Duration
}

// NewDispatcher creates a Dispatcher polling at the given interval.
func NewDispatcher(db *sql.DB, handlers map[string]domain.TaskHandler, logger *slog.Logger, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		db:       db,
		handlers: handlers,
		logger:   logger,
		interval: interval,
	}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		processed, err := d.processOne(ctx)
		if err != nil {
			d.logger.Error("task processing failed", "error", err)
			return
		}
		if !processed {
			return
		}
	}
}

// processOne claims and runs a single pending task. Returns false when the
// queue is empty.
func (d *Dispatcher) processOne(ctx context.Context) (bool, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin task tx: %w", err)
	}
	defer tx.Rollback()

	var (
		id       string
		name     string
		payload  []byte
		attempts int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, params, attempts FROM tasks WHERE status = 'pending' ORDER BY created_at ASC LIMIT 1 FOR UPDATE SKIP LOCKED`,
	).Scan(&id, &name, &payload, &attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("claim task: %w", err)
	}

	handler, ok := d.handlers[name]
	if !ok {
		// No handler will ever take this task; park it instead of spinning.
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET status = 'failed' WHERE id = $1`, id); err != nil {
			return false, fmt.Errorf("fail task: %w", err)
		}
		d.logger.Warn("no handler for task", "task", name, "id", id)
		return true, tx.Commit()
	}

	var params map[string]string
	if err := json.Unmarshal(payload, &params); err != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET status = 'failed' WHERE id = $1`, id); err != nil {
			return false, fmt.Errorf("fail task: %w", err)
		}
		d.logger.Warn("malformed task params", "task", name, "id", id)
		return true, tx.Commit()
	}

	if err := handler(ctx, params); err != nil {
		// Count the attempt; the task stays pending for the next pass until
		// the cap, then parks so it cannot block the tasks behind it.
		d.logger.Error("task handler failed", "task", name, "id", id, "error", err)
		attempts++
		if attempts >= taskMaxAttempts {
			if _, err := tx.ExecContext(ctx, `UPDATE tasks SET status = 'failed', attempts = $2 WHERE id = $1`, id, attempts); err != nil {
				return false, fmt.Errorf("fail task: %w", err)
			}
			d.logger.Warn("task parked after repeated failures", "task", name, "id", id, "attempts", attempts)
		} else if _, err := tx.ExecContext(ctx, `UPDATE tasks SET attempts = $2 WHERE id = $1`, id, attempts); err != nil {
			return false, fmt.Errorf("record task attempt: %w", err)
		}
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET status = 'done' WHERE id = $1`, id); err != nil {
		return false, fmt.Errorf("finish task: %w", err)
	}
	return true, tx.Commit()
}
