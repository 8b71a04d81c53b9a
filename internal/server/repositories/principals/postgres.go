// Package principals stores user and admin credentials. Both classes share
// one implementation parameterized by table.
package principals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

// Table names a principal table. Only the constants below are valid; the
// value is interpolated into SQL.
type Table string

const (
	TableUsers  Table = "users"
	TableAdmins Table = "admins"
)

type PostgresRepository struct {
	db    dbx.DBTX
	table Table
}

func NewPostgresRepository(db dbx.DBTX, table Table) *PostgresRepository {
	if table != TableUsers && table != TableAdmins {
		panic(fmt.Sprintf("principals: unknown table %q", table))
	}
	return &PostgresRepository{db: db, table: table}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (email, hashed_password, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`, r.table)

	err := r.db.QueryRowContext(ctx, query,
		p.Email, p.HashedPassword, p.FirstName, p.LastName).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query := fmt.Sprintf(
		`SELECT id, email, hashed_password, first_name, last_name, created_at FROM %s
		 WHERE email = $1`, r.table)

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	query := fmt.Sprintf(
		`SELECT id, email, hashed_password, first_name, last_name, created_at FROM %s
		 WHERE id = $1`, r.table)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Principal, error) {
	p := &models.Principal{}
	err := row.Scan(&p.ID, &p.Email, &p.HashedPassword, &p.FirstName, &p.LastName, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
