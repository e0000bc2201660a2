package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/patriot1176/private-eye-sales-prospect/internal/application"
	appanalytics "github.com/patriot1176/private-eye-sales-prospect/internal/application/analytics"
	appprospects "github.com/patriot1176/private-eye-sales-prospect/internal/application/prospects"
	"github.com/patriot1176/private-eye-sales-prospect/internal/config"
	domain "github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
	openaigen "github.com/patriot1176/private-eye-sales-prospect/internal/infra/ai/openai"
	"github.com/patriot1176/private-eye-sales-prospect/internal/infra/cache"
	jsonfilep "github.com/patriot1176/private-eye-sales-prospect/internal/infra/db/jsonfile"
	mongop "github.com/patriot1176/private-eye-sales-prospect/internal/infra/db/mongodb"
	mysqlp "github.com/patriot1176/private-eye-sales-prospect/internal/infra/db/mysql"
	postgresp "github.com/patriot1176/private-eye-sales-prospect/internal/infra/db/postgres"
	"github.com/patriot1176/private-eye-sales-prospect/internal/infra/httpserver"
	"github.com/patriot1176/private-eye-sales-prospect/internal/infra/intel"
	minioStore "github.com/patriot1176/private-eye-sales-prospect/internal/infra/storage"
	"github.com/patriot1176/private-eye-sales-prospect/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	clock := application.SystemClock{}

	// init repo sesuai driver
	checkers := map[string]middleware.HealthChecker{}
	var repo domain.Repository

	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo = mysqlp.NewProspectRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}

	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo = postgresp.NewProspectRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}

	case "mongo":
		client, err := mongop.Connect(ctx, cfg.Database.URI)
		if err != nil {
			log.Fatalf("mongo connect error: %v", err)
		}
		defer client.Disconnect(context.Background())
		repo = mongop.NewProspectRepository(client.Database(cfg.Database.Name))
		checkers["database"] = middleware.CheckerFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})

	case "file":
		store, err := jsonfilep.New(cfg.Database.Path)
		if err != nil {
			log.Fatalf("file store init error: %v", err)
		}
		if cfg.Database.Seed {
			if err := store.Seed(ctx, clock.Now()); err != nil {
				log.Fatalf("file store seed error: %v", err)
			}
		}
		repo = store

	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}

	// init minio (optional)
	var documents domain.DocumentStore
	if cfg.Minio.Endpoint != "" {
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
		documents = store
	}

	// init redis cache (optional)
	var reportCache cache.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		reportCache = cache.NewRedisCache(rdb)
		checkers["redis"] = middleware.CheckerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	// init generator
	var generator domain.Generator
	switch cfg.Generator.Provider {
	case "openai":
		if cfg.Generator.APIKey == "" {
			log.Fatal("generator provider openai requires an api key")
		}
		generator = openaigen.NewClient(cfg.Generator.APIKey, cfg.Generator.Model)
	case "template":
		if cfg.Generator.TemplatesPath != "" {
			generator, err = intel.NewGeneratorFromFile(cfg.Generator.TemplatesPath, clock)
		} else {
			generator, err = intel.NewGenerator(clock)
		}
		if err != nil {
			log.Fatalf("template catalog load error: %v", err)
		}
	default:
		log.Fatalf("unknown generator provider: %s", cfg.Generator.Provider)
	}

	// init services
	prospectsSvc := &appprospects.Service{
		Repo:      repo,
		Generator: generator,
		Documents: documents,
		Cache:     reportCache,
		Clock:     clock,
	}
	analyticsSvc := &appanalytics.Service{
		Repo:  repo,
		Cache: reportCache,
		Clock: clock,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Mount("/", httpserver.NewRouter(prospectsSvc, analyticsSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s (driver=%s generator=%s)", addr, cfg.Database.Driver, cfg.Generator.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
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
