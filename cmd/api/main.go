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

	"github.com/premesh-10/HealthMateAI/internal/application"
	apphistory "github.com/premesh-10/HealthMateAI/internal/application/history"
	apptriage "github.com/premesh-10/HealthMateAI/internal/application/triage"
	"github.com/premesh-10/HealthMateAI/internal/config"
	domhistory "github.com/premesh-10/HealthMateAI/internal/domain/history"
	aiopenai "github.com/premesh-10/HealthMateAI/internal/infra/ai/openai"
	mysqlp "github.com/premesh-10/HealthMateAI/internal/infra/db/mysql"
	postgresp "github.com/premesh-10/HealthMateAI/internal/infra/db/postgres"
	"github.com/premesh-10/HealthMateAI/internal/infra/httpserver"
	minioStore "github.com/premesh-10/HealthMateAI/internal/infra/storage"
	"github.com/premesh-10/HealthMateAI/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database per configured driver
	var (
		db       *sql.DB
		repo     domhistory.Repository
		failures domhistory.FailureLog
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewResultRepository(db)
		failures = postgresp.NewFailureRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewResultRepository(db)
		failures = mysqlp.NewFailureRepository(db)
	}
	defer db.Close()

	// init inference engine
	engine := aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// init export archival (optional)
	var archive httpserver.Archiver
	if cfg.MinioEnabled() {
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
	}

	clock := application.SystemClock{}
	triageSvc := &apptriage.Service{Engine: engine, Failures: failures, Clock: clock}
	historySvc := &apphistory.Service{Repo: repo, Clock: clock}

	// init router
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 5))
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Mount("/", httpserver.NewRouter(triageSvc, historySvc, archive, cfg.Server.APIKey))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second, // inference can take most of the 30s budget
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
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
