package purchases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateIfAbsent relies on the (course_id, user_id) unique constraint: two
// concurrent purchases of the same course by the same user insert one row,
// the other observes an empty RETURNING.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, courseID, userID string) (*models.Purchase, bool, error) {
	query :=
		`INSERT INTO purchases (course_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (course_id, user_id) DO NOTHING
		 RETURNING id, course_id, user_id, created_at`

	p := &models.Purchase{}
	err := r.db.QueryRowContext(ctx, query, courseID, userID).Scan(&p.ID, &p.CourseID, &p.UserID, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}

	return p, true, nil
}

// ListByUser returns the user's purchases, oldest first. Purchases of
// deleted courses are kept with empty course attributes.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.PurchasedCourse, error) {
	query :=
		`SELECT p.id, p.course_id, p.user_id, p.created_at,
		        COALESCE(c.title, ''), COALESCE(c.price, 0), COALESCE(c.image_url, '')
		 FROM purchases p
		 LEFT JOIN courses c ON c.id = p.course_id
		 WHERE p.user_id = $1
		 ORDER BY p.created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.PurchasedCourse, 0)
	for rows.Next() {
		pc := &models.PurchasedCourse{}
		if err := rows.Scan(&pc.ID, &pc.CourseID, &pc.UserID, &pc.CreatedAt, &pc.Title, &pc.Price, &pc.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, pc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
