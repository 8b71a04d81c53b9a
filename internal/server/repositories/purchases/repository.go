package purchases

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent inserts the (course, user) purchase unless it already
	// exists. created is false when an earlier purchase was found.
	CreateIfAbsent(ctx context.Context, courseID, userID string) (p *models.Purchase, created bool, err error)
	ListByUser(ctx context.Context, userID string) ([]*models.PurchasedCourse, error)
}
