package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	googleauth "waitlist-backend/internal/auth"
	"waitlist-backend/internal/documents"
	"waitlist-backend/internal/shared/config"
	"waitlist-backend/internal/shared/server"
	"waitlist-backend/internal/shared/storage/db"
	"waitlist-backend/internal/shared/storage/object"
	s3store "waitlist-backend/internal/shared/storage/object/s3"
	"waitlist-backend/internal/users"
	"waitlist-backend/internal/waitlist"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Redis   *redis.Client
	Gateway object.Gateway

	DocumentsRepo documents.DocumentsRepo
	WaitlistRepo  waitlist.WaitlistRepo
	UsersRepo     users.Repo

	DocumentsService *documents.Service
	WaitlistService  *waitlist.Service
	UsersService     *users.Service

	DocumentsHandler *documents.Handler
	WaitlistHandler  *waitlist.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares all dependencies using the configured S3 bucket. Without
// a bucket the app still starts; upload requests fail with a 500 until one
// is configured.
func Build(cfg config.Config) (*App, error) {
	var gateway object.Gateway
	if strings.TrimSpace(cfg.UploadsS3Bucket) != "" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.UploadsS3Bucket, cfg.UploadsS3Prefix, cfg.PresignTTL)
		if err != nil {
			return nil, fmt.Errorf("build s3 gateway: %w", err)
		}
		gateway = store
	} else {
		log.Printf("bootstrap: UPLOADS_S3_BUCKET empty; uploads disabled")
	}
	return BuildWithStorage(cfg, gateway)
}

// BuildWithStorage prepares dependencies around a caller-supplied storage
// gateway. Tests pass a fake here.
func BuildWithStorage(cfg config.Config, gateway object.Gateway) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Redis:   redisClient,
		Gateway: gateway,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		WaitlistHandler:  app.WaitlistHandler,
		GoogleAuth:       app.GoogleAuth,
		Redis:            app.Redis,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var docRepo documents.DocumentsRepo
	var waitlistRepo waitlist.WaitlistRepo
	var userRepo users.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		waitlistRepo = &waitlist.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		waitlistRepo = waitlist.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	docSvc := documents.NewService(app.Gateway, docRepo)
	waitlistSvc := waitlist.NewService(waitlistRepo)
	userSvc := users.NewService(userRepo)

	app.DocumentsRepo = docRepo
	app.WaitlistRepo = waitlistRepo
	app.UsersRepo = userRepo
	app.DocumentsService = docSvc
	app.WaitlistService = waitlistSvc
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.WaitlistHandler = waitlist.NewHandler(waitlistSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
