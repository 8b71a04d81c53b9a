// Package httpapi exposes the coursehub services over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address   string
	engine    *gin.Engine
	users     PrincipalService
	admins    PrincipalService
	courses   CourseService
	purchases PurchaseService
	tokens    TokenVerifier
	logger    logging.Logger
}

type Deps struct {
	Users     PrincipalService
	Admins    PrincipalService
	Courses   CourseService
	Purchases PurchaseService
	Tokens    TokenVerifier
}

func NewServer(address string, l logging.Logger, deps Deps) *Server {
	registerValidation()

	s := &Server{
		address:   address,
		engine:    gin.New(),
		users:     deps.Users,
		admins:    deps.Admins,
		courses:   deps.Courses,
		purchases: deps.Purchases,
		tokens:    deps.Tokens,
		logger:    l.With("module", "http_server"),
	}

	s.engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.routes()

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAdmin := RequireToken(s.tokens, auth.ClassAdmin)
	requireUser := RequireToken(s.tokens, auth.ClassUser)

	admin := s.engine.Group("/admin")
	{
		admin.POST("/signup", s.signUp(s.admins))
		admin.POST("/signin", s.signIn(s.admins))
		admin.POST("/course", requireAdmin, s.createCourse)
		admin.PUT("/course", requireAdmin, s.updateCourse)
		admin.DELETE("/course", requireAdmin, s.deleteCourse)
		admin.GET("/courses/bulk", requireAdmin, s.listOwnCourses)
		admin.POST("/course/image", requireAdmin, s.presignCourseImage)
	}

	user := s.engine.Group("/user")
	{
		user.POST("/signup", s.signUp(s.users))
		user.POST("/signin", s.signIn(s.users))
		user.GET("/purchase", requireUser, s.listPurchases)
	}

	course := s.engine.Group("/course")
	{
		course.GET("/", s.listCatalog)
		course.GET("/preview/:courseId", s.previewCourse)
		course.POST("/purchase", requireUser, s.purchaseCourse)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
