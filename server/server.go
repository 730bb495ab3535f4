package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hymnal/config"
	"hymnal/core/auth"
	"hymnal/db"
	"hymnal/logger"
	"hymnal/repository"
	"hymnal/store"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	// Initialize database schema
	if err := db.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.InitEntityTables(cfg.SongsTable, cfg.CatalogTable); err != nil {
		log.Fatalf("Failed to initialize entity tables: %v", err)
	}

	// One store handle per logical table, built once and injected.
	songsStore := store.NewGormTableStore(db.GormDB, cfg.SongsTable)
	catalogStore := store.NewGormTableStore(db.GormDB, cfg.CatalogTable)

	songRepo := repository.NewSongRecordRepository(songsStore)
	catalogRepo := repository.NewCatalogRepository(catalogStore)
	userRepo := repository.NewMySQLUserRepository(db.DB, cfg.UsersTable)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpires, cfg.JWTRefreshExpires)

	apiHandler := NewAPIHandler(songRepo, catalogRepo, userRepo, tokens, cfg)

	router := NewRouter(apiHandler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", logger.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", logger.ErrorField(err))
		}
	}()

	// Block until we receive a termination signal, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	logger.Info("Server exited")
}

// NewRouter builds the API router.
func NewRouter(apiHandler *APIHandler) *mux.Router {
	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Health and auth endpoints
	router.HandleFunc("/api/health", apiHandler.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh", apiHandler.RefreshHandler).Methods(http.MethodPost)

	// Service record endpoints
	router.HandleFunc("/api/songs", apiHandler.AuthMiddleware(apiHandler.ListSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", apiHandler.AuthMiddleware(apiHandler.CreateSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/charts", apiHandler.AuthMiddleware(apiHandler.ChartsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{date}", apiHandler.AuthMiddleware(apiHandler.UpdateSongHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{date}", apiHandler.AuthMiddleware(apiHandler.DeleteSongHandler)).Methods(http.MethodDelete)

	// Catalog endpoints
	router.HandleFunc("/api/unique-songs", apiHandler.AuthMiddleware(apiHandler.ListCatalogHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/unique-songs", apiHandler.AuthMiddleware(apiHandler.CreateCatalogHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/unique-songs/{id}", apiHandler.AuthMiddleware(apiHandler.UpdateCatalogHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/unique-songs/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteCatalogHandler)).Methods(http.MethodDelete)

	return router
}
