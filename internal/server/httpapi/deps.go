package httpapi

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
)

// PrincipalService is implemented by *services.PrincipalService.
type PrincipalService interface {
	Class() auth.Class
	SignUp(ctx context.Context, in services.SignUpInput) (*models.Principal, error)
	SignIn(ctx context.Context, email, password string) (string, *models.Principal, error)
}

// CourseService is implemented by *services.CourseService.
type CourseService interface {
	Create(ctx context.Context, adminID string, f models.CourseFields) (*models.Course, error)
	Update(ctx context.Context, adminID, courseID string, f models.CourseFields) (*models.Course, error)
	Delete(ctx context.Context, adminID, courseID string) (*models.Course, error)
	ListByCreator(ctx context.Context, adminID string) ([]*models.Course, error)
	ListAll(ctx context.Context) ([]*models.Course, error)
	Preview(ctx context.Context, courseID string) (*models.Course, error)
	PresignImageUpload(ctx context.Context, adminID, courseID string) (*services.ImageUpload, error)
}

// PurchaseService is implemented by *services.PurchaseService.
type PurchaseService interface {
	Purchase(ctx context.Context, userID, courseID string) (*services.PurchaseResult, error)
	ListByUser(ctx context.Context, userID string) ([]*models.PurchasedCourse, error)
}

// TokenVerifier is implemented by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string, class auth.Class) (string, error)
}

var (
	_ PrincipalService = (*services.PrincipalService)(nil)
	_ CourseService    = (*services.CourseService)(nil)
	_ PurchaseService  = (*services.PurchaseService)(nil)
	_ TokenVerifier    = (*auth.TokenService)(nil)
)
