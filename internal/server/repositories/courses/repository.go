package courses

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

// Repository persists courses. The *Owned methods match on both id and
// creator and report common.ErrorNotFound when no row satisfies both.
type Repository interface {
	Create(ctx context.Context, creatorID string, f models.CourseFields) (*models.Course, error)
	UpdateOwned(ctx context.Context, id, creatorID string, f models.CourseFields) (*models.Course, error)
	DeleteOwned(ctx context.Context, id, creatorID string) (*models.Course, error)
	GetOwned(ctx context.Context, id, creatorID string) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Course, error)
	ListAll(ctx context.Context) ([]*models.Course, error)
}
