package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/course-marketplace/internal/model"
)

// PurchaseRepository handles purchase data access.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create inserts a purchase. The (user_id, course_id) unique constraint makes a concurrent
// duplicate insert a no-op, reported as ErrDuplicatePurchase.
func (r *PurchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO purchases (user_id, course_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO NOTHING
		 RETURNING id`,
		p.UserID, p.CourseID,
	).Scan(&p.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicatePurchase
		}
		if pgErrCode(err) == pgForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// ListByUser retrieves every purchase of the user, oldest first.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, course_id FROM purchases
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []model.Purchase{}
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
