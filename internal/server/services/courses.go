package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/courses"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type ImageUpload struct {
	Key       string
	UploadURL string
}

// CourseService implements course management. Mutations are scoped to the
// acting admin; a course that is absent and a course owned by another admin
// are reported the same way, as common.ErrorNotOwned.
type CourseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       CatalogCache
	images      ImageStore
	logger      logging.Logger
}

func NewCourseService(db *sql.DB, m repomanager.RepositoryManager, cache CatalogCache, images ImageStore, logger logging.Logger) *CourseService {
	if cache == nil {
		cache = NopCatalogCache{}
	}
	return &CourseService{
		db:          db,
		repomanager: m,
		cache:       cache,
		images:      images,
		logger:      logger.With("module", "course_service"),
	}
}

func (s *CourseService) repo() courses.Repository {
	return s.repomanager.Courses(s.db)
}

func (s *CourseService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn(ctx, "catalog cache invalidation failed", "error", err)
	}
}

func (s *CourseService) Create(ctx context.Context, adminID string, f models.CourseFields) (*models.Course, error) {
	c, err := s.repo().Create(ctx, adminID, f)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info(ctx, "course created", "course_id", c.ID, "admin_id", adminID)

	return c, nil
}

func (s *CourseService) Update(ctx context.Context, adminID, courseID string, f models.CourseFields) (*models.Course, error) {
	c, err := s.repo().UpdateOwned(ctx, courseID, adminID, f)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotOwned
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, err
		default:
			return nil, fmt.Errorf("error updating course: %w", err)
		}
	}

	s.invalidate(ctx)
	s.logger.Info(ctx, "course updated", "course_id", c.ID, "admin_id", adminID)

	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, adminID, courseID string) (*models.Course, error) {
	c, err := s.repo().DeleteOwned(ctx, courseID, adminID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotOwned
		}
		return nil, fmt.Errorf("error deleting course: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info(ctx, "course deleted", "course_id", c.ID, "admin_id", adminID)

	return c, nil
}

func (s *CourseService) ListByCreator(ctx context.Context, adminID string) ([]*models.Course, error) {
	return s.repo().ListByCreator(ctx, adminID)
}

// ListAll returns the public catalog, from the cache when possible. Cache
// failures are logged and the database is used instead. A miss is filled
// under the generation seen before the database read.
func (s *CourseService) ListAll(ctx context.Context) ([]*models.Course, error) {
	cached, gen, ok, cacheErr := s.cache.Get(ctx)
	if cacheErr != nil {
		s.logger.Warn(ctx, "catalog cache read failed", "error", cacheErr)
	}
	if ok {
		return cached, nil
	}

	list, err := s.repo().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if cacheErr == nil {
		if err := s.cache.Set(ctx, gen, list); err != nil {
			s.logger.Warn(ctx, "catalog cache write failed", "error", err)
		}
	}

	return list, nil
}

func (s *CourseService) Preview(ctx context.Context, courseID string) (*models.Course, error) {
	return s.repo().GetByID(ctx, courseID)
}

// PresignImageUpload returns a short-lived URL the owning admin can PUT a
// course image to. The resulting object key is not recorded; the admin sets
// imageUrl with a regular update once the upload is done.
func (s *CourseService) PresignImageUpload(ctx context.Context, adminID, courseID string) (*ImageUpload, error) {
	if s.images == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", common.ErrorInternal)
	}

	if _, err := s.repo().GetOwned(ctx, courseID, adminID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotOwned
		}
		return nil, fmt.Errorf("error loading course: %w", err)
	}

	key := ImageKey(courseID)
	url, err := s.images.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	return &ImageUpload{Key: key, UploadURL: url}, nil
}

// ImageKey is the object key for a new image of courseID.
func ImageKey(courseID string) string {
	return fmt.Sprintf("courses/%s/%s", courseID, uuid.New())
}
