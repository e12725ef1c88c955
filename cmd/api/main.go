package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/GouthamiN25/CyberRisk-Advisor/internal/application"
	appanalysis "github.com/GouthamiN25/CyberRisk-Advisor/internal/application/analysis"
	"github.com/GouthamiN25/CyberRisk-Advisor/internal/config"
	domain "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
	aiclient "github.com/GouthamiN25/CyberRisk-Advisor/internal/infra/ai/openai"
	mysqlp "github.com/GouthamiN25/CyberRisk-Advisor/internal/infra/db/mysql"
	postgresp "github.com/GouthamiN25/CyberRisk-Advisor/internal/infra/db/postgres"
	"github.com/GouthamiN25/CyberRisk-Advisor/internal/infra/httpserver"
	minioStore "github.com/GouthamiN25/CyberRisk-Advisor/internal/infra/storage"
	"github.com/GouthamiN25/CyberRisk-Advisor/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// optional history database
	var repo domain.Repository
	var db *sql.DB
	checkers := map[string]middleware.HealthChecker{}
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
	case "":
		log.Println("no database configured, analysis history disabled")
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	if db != nil {
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// optional raw log archive
	var archive domain.LogArchive
	if cfg.ArchiveEnabled() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	} else {
		log.Println("no minio configured, log retention disabled")
	}

	client := aiclient.NewClient(
		cfg.AI.APIKey,
		cfg.AI.BaseURL,
		cfg.AI.Model,
		cfg.AI.MaxTokens,
		cfg.AI.Temperature,
	)

	svc := &appanalysis.Service{
		AI:          client,
		Repo:        repo,
		Archive:     archive,
		Clock:       application.SystemClock{},
		MaxLogBytes: cfg.Limits.MaxLogBytes,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(cfg.Limits.RateLimitBurst, cfg.Limits.RateLimitPerSec))
	mux.Mount("/", httpserver.NewRouter(svc, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // completions can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
