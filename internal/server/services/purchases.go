package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
)

type PurchaseResult struct {
	Purchase *models.Purchase
	// Created is false when the user already owned the course.
	Created bool
	Buyer   *models.Principal
}

type PurchaseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPurchaseService(db *sql.DB, m repomanager.RepositoryManager) *PurchaseService {
	return &PurchaseService{db: db, repomanager: m}
}

// Purchase records that userID bought courseID. Buying the same course twice
// is not an error: the second call reports Created == false and stores
// nothing. Uniqueness is enforced by the purchases table, so concurrent
// requests cannot create duplicates.
func (s *PurchaseService) Purchase(ctx context.Context, userID, courseID string) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Courses(tx).GetByID(ctx, courseID); err != nil {
			return err
		}

		p, created, err := s.repomanager.Purchases(tx).CreateIfAbsent(ctx, courseID, userID)
		if err != nil {
			return err
		}

		result = &PurchaseResult{Purchase: p, Created: created}
		if !created {
			return nil
		}

		buyer, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}
		result.Buyer = buyer

		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error purchasing course: %w", err)
	}

	return result, nil
}

func (s *PurchaseService) ListByUser(ctx context.Context, userID string) ([]*models.PurchasedCourse, error) {
	return s.repomanager.Purchases(s.db).ListByUser(ctx, userID)
}
