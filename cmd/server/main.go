package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artifact-registry-service/internal/adapters/primary/http/handlers"
	"artifact-registry-service/internal/adapters/primary/http/middleware"
	githubfetch "artifact-registry-service/internal/adapters/secondary/github"
	"artifact-registry-service/internal/adapters/secondary/huggingface"
	"artifact-registry-service/internal/adapters/secondary/memory"
	"artifact-registry-service/internal/adapters/secondary/postgres"
	"artifact-registry-service/internal/adapters/secondary/provenance"
	"artifact-registry-service/internal/config"
	ports "artifact-registry-service/internal/core/ports/output"
	"artifact-registry-service/internal/core/scoring"
	"artifact-registry-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Secondary Adapter: Artifact Store
	var repo ports.ArtifactRepository
	switch cfg.Store.Driver {
	case "memory":
		repo = memory.NewArtifactRepository()
		log.Info("using in-memory artifact store")
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping db: %v", err)
		}
		if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		repo = postgres.NewArtifactRepository(pool)
		log.Info("database connection established")
	default:
		log.Fatalf("unknown store driver %q", cfg.Store.Driver)
	}

	// Secondary Adapters: Provenance Fetchers
	hubClient := huggingface.NewClient(&cfg.Hub)
	repoClient := githubfetch.NewClient(&cfg.GitHub)
	fetcher := provenance.NewMux(hubClient, repoClient)

	// Core Services
	engine, err := scoring.NewEngine(fetcher, scoring.Config{Deadline: cfg.Scoring.Deadline})
	if err != nil {
		log.Fatalf("init scoring engine: %v", err)
	}
	registrySvc := services.NewRegistryService(repo, engine, cfg.Store.SearchScanLimit)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(registrySvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/registry")
	h.RegisterRoutes(api)

	// Health check with store ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := repo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
