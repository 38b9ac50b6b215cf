package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/catalog"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/config"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/database"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/handler"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/middleware"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
	filestore "github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository/file"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository/surreal"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Resolve the configured backend once into concrete stores; everything
	// downstream receives them through injection.
	var (
		groupStore repository.Groups
		userStore  repository.Users
	)
	switch cfg.Store.Backend {
	case config.BackendSurreal:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Store.Surreal.Host,
			Port:      cfg.Store.Surreal.Port,
			User:      cfg.Store.Surreal.User,
			Password:  cfg.Store.Surreal.Password,
			Namespace: cfg.Store.Surreal.Namespace,
			Database:  cfg.Store.Surreal.Database,
		})
		if err := db.Connect(ctx); err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		groupStore = surreal.NewGroupStore(db, logger)
		userStore = surreal.NewUserStore(db, logger)
		logger.Info("using surreal store",
			zap.String("host", cfg.Store.Surreal.Host),
			zap.String("database", cfg.Store.Surreal.Database),
		)

	case config.BackendFile:
		if err := os.MkdirAll(cfg.Store.File.Dir, 0o755); err != nil {
			logger.Fatal("failed to create data directory", zap.Error(err))
		}
		groupStore = filestore.NewGroupStore(cfg.Store.File.Dir, logger)
		userStore = filestore.NewUserStore(cfg.Store.File.Dir, logger)
		logger.Info("using file store", zap.String("dir", cfg.Store.File.Dir))
	}

	gateway := catalog.New(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		APIKey:  cfg.Catalog.APIKey,
		Timeout: cfg.Catalog.Timeout,
	}, logger)

	userService := service.NewUserService(service.UserServiceConfig{Users: userStore})
	movieService := service.NewMovieService(service.MovieServiceConfig{Catalog: gateway})
	groupService := service.NewGroupService(service.GroupServiceConfig{
		Users:  userService,
		Groups: groupStore,
		Movies: gateway,
	})

	userHandler := handler.NewUserHandler(userService)
	movieHandler := handler.NewMovieHandler(movieService)
	groupHandler := handler.NewGroupHandler(groupService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.Get("/health", handler.Health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/login", userHandler.Login)

		r.Get("/movies", movieHandler.List)
		r.Get("/movies/{movieID}", movieHandler.Get)

		r.Route("/groups", func(r chi.Router) {
			r.Use(middleware.BearerToken)
			r.Post("/", groupHandler.Create)
			r.Get("/", groupHandler.List)
			r.Get("/{groupID}", groupHandler.Get)
			r.Put("/{groupID}", groupHandler.Update)
			r.Delete("/{groupID}", groupHandler.Delete)
			r.Put("/{groupID}/movies/{movieID}", groupHandler.AddMovie)
			r.Delete("/{groupID}/movies/{movieID}", groupHandler.RemoveMovie)
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(timeoutCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
