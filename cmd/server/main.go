package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"Postify/internal/api/middleware"
	"Postify/internal/api/routes"
	"Postify/internal/auth"
	"Postify/internal/config"
	"Postify/internal/core/attachments"
	"Postify/internal/core/files"
	"Postify/internal/core/posts"
	"Postify/internal/core/users"
	postgresRepo "Postify/internal/db/postgres"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.FromEnv()
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("[CONFIG] invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func run(cfg config.Config) error {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("[DB] failed to close database", "error", closeErr)
		}
	}()

	if err := db.Ping(); err != nil {
		return err
	}
	slog.Info("[DB] connected to database")

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, cfg.MigrationsDir); err != nil {
		return err
	}
	slog.Info("[DB] migrations completed successfully")

	fileStore, err := files.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	// Repositories
	txManager := postgresRepo.NewTxManager(db)
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	attachmentRepo := postgresRepo.NewAttachmentRepository(db)

	// Services
	userService := users.NewUserService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), fileStore)
	attachmentService := attachments.NewAttachmentService(attachmentRepo, fileStore, time.Now)
	postService := posts.NewPostService(
		postRepo,
		txManager,
		posts.NewFeedEngine(postRepo, userService, cfg.FeedMaxAfterResults),
		posts.NewAttachmentBinder(attachmentRepo),
		posts.NewAuthorizationGate(postRepo),
		posts.NewDeletionOrchestrator(postRepo, attachmentRepo, fileStore, txManager),
	)

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	if cfg.SeedDevUsers {
		if _, err := users.SeedDevUsers(context.Background(), userService, users.DevUserCount); err != nil {
			return err
		}
	}

	reaper := attachments.NewReaper(attachmentRepo, fileStore, txManager,
		attachments.WithAgeThreshold(cfg.ReaperAgeThreshold),
	)
	reaper.Start(cfg.ReaperInterval)
	defer reaper.Stop()

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(routes.CORSMiddleware(cfg.CORSAllowedOrigins))

	if cfg.RateLimitPerMinute > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		defer rateLimiter.Stop()
		r.Use(rateLimiter.Middleware)
	}

	r.Route("/api/1.0", func(api chi.Router) {
		routes.RegisterUserRoutes(api, userService, tokens, authMiddleware, cfg.MaxUploadBytes())
		routes.RegisterAttachmentRoutes(api, attachmentService, authMiddleware, cfg.MaxUploadBytes())
		routes.RegisterPostRoutes(api, postService, authMiddleware)
	})
	routes.RegisterImageRoutes(r, cfg.UploadDir)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Postify starting", "port", cfg.Port, "upload_dir", cfg.UploadDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
