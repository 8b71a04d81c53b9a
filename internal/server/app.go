// Package server wires the coursehub services together and runs the HTTP
// API until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/catalogcache"
	"github.com/dmitrijs2005/coursehub/internal/server/config"
	"github.com/dmitrijs2005/coursehub/internal/server/httpapi"
	"github.com/dmitrijs2005/coursehub/internal/server/images"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cache  *catalogcache.RedisCache
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	tokens, err := auth.NewTokenService([]byte(c.UserSecretKey), []byte(c.AdminSecretKey), c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}
	hasher, err := auth.NewHasher(c.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var cache services.CatalogCache
	if c.RedisURL != "" {
		rc, err := catalogcache.NewRedisCache(c.RedisURL, c.CatalogCacheTTL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("catalog cache init error: %w", err)
		}
		if err := rc.Ping(ctx); err != nil {
			logger.Warn(ctx, "catalog cache unreachable, continuing", "error", err)
		}
		app.cache = rc
		cache = rc
	}

	var store services.ImageStore
	if c.S3Bucket != "" {
		s3, err := images.NewS3Store(ctx, images.Options{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			Expires:      c.ImageUploadURLValidity,
		})
		if err != nil {
			app.close()
			return nil, fmt.Errorf("image store init error: %w", err)
		}
		store = s3
	}

	gin.SetMode(gin.ReleaseMode)

	app.server = httpapi.NewServer(c.EndpointAddrHTTP, logger, httpapi.Deps{
		Users:     services.NewPrincipalService(db, rm, auth.ClassUser, hasher, tokens),
		Admins:    services.NewPrincipalService(db, rm, auth.ClassAdmin, hasher, tokens),
		Courses:   services.NewCourseService(db, rm, cache, store, logger),
		Purchases: services.NewPurchaseService(db, rm),
		Tokens:    tokens,
	})

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) close() {
	if app.cache != nil {
		_ = app.cache.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(ctx, "App stopped")
}
