package courses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

const courseColumns = `id, title, description, price, image_url, creator_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(s scanner) (*models.Course, error) {
	c := &models.Course{}
	err := s.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) one(row *sql.Row) (*models.Course, error) {
	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) many(ctx context.Context, query string, args ...any) ([]*models.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, creatorID string, f models.CourseFields) (*models.Course, error) {
	query :=
		`INSERT INTO courses (title, description, price, image_url, creator_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + courseColumns

	return r.one(r.db.QueryRowContext(ctx, query, f.Title, f.Description, f.Price, f.ImageURL, creatorID))
}

// UpdateOwned rewrites the course in a single conditional statement, so an
// admin can never touch a course created by someone else.
func (r *PostgresRepository) UpdateOwned(ctx context.Context, id, creatorID string, f models.CourseFields) (*models.Course, error) {
	query :=
		`UPDATE courses
		 SET title = $1, description = $2, price = $3, image_url = $4, updated_at = now()
		 WHERE id = $5 AND creator_id = $6
		 RETURNING ` + courseColumns

	return r.one(r.db.QueryRowContext(ctx, query, f.Title, f.Description, f.Price, f.ImageURL, id, creatorID))
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, creatorID string) (*models.Course, error) {
	query :=
		`DELETE FROM courses
		 WHERE id = $1 AND creator_id = $2
		 RETURNING ` + courseColumns

	return r.one(r.db.QueryRowContext(ctx, query, id, creatorID))
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, creatorID string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND creator_id = $2`

	return r.one(r.db.QueryRowContext(ctx, query, id, creatorID))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	return r.one(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE creator_id = $1 ORDER BY created_at`

	return r.many(ctx, query, creatorID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at`

	return r.many(ctx, query)
}
