package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepository(db *sql.DB) domain.WishlistRepository {
	return &wishlistRepository{
		DB: db,
	}
}

func (r *wishlistRepository) Add(ctx context.Context, profileID, sessionID string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO wishlist_items (profile_id, session_id, created_at) VALUES ($1, $2, NOW())`,
		profileID, sessionID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyInWishlist
		}
		return err
	}
	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, profileID, sessionID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE profile_id = $1 AND session_id = $2`,
		profileID, sessionID,
	)
	if err != nil {
		return false, err
	}
	removed, _ := result.RowsAffected()
	return removed > 0, nil
}

func (r *wishlistRepository) ListSessionIDs(ctx context.Context, profileID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT session_id FROM wishlist_items WHERE profile_id = $1 ORDER BY created_at ASC`,
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
