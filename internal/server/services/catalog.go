package services

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

// CatalogCache holds the public course list between mutations.
//
// Get reports the generation current at read time even on a miss. Set stores
// a list under that generation, and Invalidate starts a new one, so a list
// read from the database before a mutation is never served after it.
type CatalogCache interface {
	Get(ctx context.Context) (courses []*models.Course, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, courses []*models.Course) error
	Invalidate(ctx context.Context) error
}

// NopCatalogCache never hits. Used when no cache is configured.
type NopCatalogCache struct{}

func (NopCatalogCache) Get(context.Context) ([]*models.Course, int64, bool, error) {
	return nil, 0, false, nil
}
func (NopCatalogCache) Set(context.Context, int64, []*models.Course) error { return nil }
func (NopCatalogCache) Invalidate(context.Context) error                   { return nil }

// ImageStore hands out upload URLs for course images.
type ImageStore interface {
	PresignPut(ctx context.Context, key string) (string, error)
}
