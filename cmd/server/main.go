package main

import (
	"log"
	"net/http"

	_ "ktucyber/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ktucyber/internal/auth"
	"ktucyber/internal/cache"
	"ktucyber/internal/config"
	"ktucyber/internal/db"
	"ktucyber/internal/handler"
	"ktucyber/internal/mail"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
	"ktucyber/internal/router"
	"ktucyber/internal/service"
	"ktucyber/internal/storage"
)

// @title KTU Cyber API
// @version 1.0
// @description Study material sharing platform with document uploads, bookmarks, follows, and cookie-based JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.University{},
		&model.Subject{},
		&model.Document{},
		&model.Follow{},
		&model.Bookmark{},
		&model.Download{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	store, err := storage.NewR2Store(storage.Config{
		Endpoint:  cfg.R2Endpoint,
		AccessKey: cfg.R2AccessKey,
		SecretKey: cfg.R2SecretKey,
		Bucket:    cfg.R2Bucket,
		PublicURL: cfg.R2PublicURL,
	})
	if err != nil {
		log.Fatalf("object storage init: %v", err)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	docRepo := repository.NewDocumentRepository(gormDB)
	taxRepo := repository.NewTaxonomyRepository(gormDB)
	engageRepo := repository.NewEngagementRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)
	notifRepo := repository.NewNotificationRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	session := auth.NewSession(tokenService, cfg.IsProduction())

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, tokenStore, mailer, cfg.PublicBaseURL)
	docService := service.NewDocumentService(docRepo, engageRepo, store)
	profileService := service.NewProfileService(userRepo, docRepo, followRepo, engageRepo, store)
	socialService := service.NewSocialService(userRepo, followRepo, notifRepo)
	taxonomyService := service.NewTaxonomyService(taxRepo, docRepo)
	feedService := service.NewFeedService(taxRepo, docRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, session)
	documentHandler := handler.NewDocumentHandler(docService, session)
	profileHandler := handler.NewProfileHandler(profileService, session)
	socialHandler := handler.NewSocialHandler(socialService, session)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService, session)
	feedHandler := handler.NewFeedHandler(feedService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		documentHandler,
		profileHandler,
		socialHandler,
		taxonomyHandler,
		feedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
