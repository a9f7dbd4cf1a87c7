package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/yourhostel/stat-syncer/internal/cache"
	"github.com/yourhostel/stat-syncer/internal/config"
	"github.com/yourhostel/stat-syncer/internal/repository"
	"github.com/yourhostel/stat-syncer/internal/service"
	httpTransport "github.com/yourhostel/stat-syncer/internal/transport/http"
	"github.com/yourhostel/stat-syncer/internal/transport/http/handler"
	"github.com/yourhostel/stat-syncer/internal/transport/http/middleware"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log.Printf("Starting %s v%s in %s mode",
		cfg.App.Name,
		cfg.App.Version,
		cfg.App.Environment,
	)

	// Result cache: in-process by default, Redis when configured
	var resultCache cache.ResultCache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:      cfg.Cache.RedisAddr(),
			Password:  cfg.Cache.RedisPassword,
			DB:        cfg.Cache.RedisDB,
			KeyPrefix: cfg.Cache.RedisPrefix,
			TTL:       cfg.Cache.TTL,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		resultCache = redisCache
		log.Println("✓ Redis result cache enabled")
	default:
		memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)
		defer memoryCache.Close()
		resultCache = memoryCache
		log.Println("✓ In-memory result cache enabled")
	}

	// Connect to Main Database (users/auth)
	mainDB, err := connectDB(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		"Main DB",
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to Main DB: %v", err)
	}
	defer mainDB.Close()
	log.Println("✓ Main DB connected")

	userRepo := repository.NewMySQLUserRepository(mainDB)

	// Create data directory for SQLite
	if err := os.MkdirAll(filepath.Dir(cfg.Report.DBPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Initialize SQLite report store (LOCAL - no network latency!)
	reportRepo, err := repository.NewSQLiteReportRepository(cfg.Report.DBPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize report store: %v", err)
	}
	defer reportRepo.Close()
	log.Printf("✓ Report store initialized (%s)", cfg.Report.DBPath)

	// Pre-load the report dataset when a file is configured
	if cfg.Report.File != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		count, err := reportRepo.ImportFile(ctx, cfg.Report.File)
		cancel()
		if err != nil {
			log.Fatalf("FATAL: Failed to import report file: %v", err)
		}
		log.Printf("✓ Report dataset loaded (%d document(s))", count)
	}

	// Initialize services
	tokenService, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("FATAL: Failed to create TokenService: %v", err)
	}

	authService := service.NewAuthService(userRepo, tokenService, cfg.Auth.BcryptCost)
	if authService == nil {
		log.Fatalf("FATAL: Failed to create AuthService")
	}

	reportService := service.NewReportService(reportRepo, resultCache)
	if reportService == nil {
		log.Fatalf("FATAL: Failed to create ReportService")
	}

	// Initialize transport layer - HTTP
	httpHandler := handler.New(cfg.App.Version, handler.ReadyCheck{
		Name:  "database",
		Probe: mainDB.Ping,
	})
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)
	gate := middleware.NewAuthGate(tokenService, userRepo)

	router := httpTransport.NewRouter(httpHandler, authHandler, reportHandler, gate)

	// Configure HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.Address())
		log.Println("Available endpoints:")
		log.Println("  GET  /api/v1/health")
		log.Println("  POST /api/auth/signup")
		log.Println("  POST /api/auth/login")
		log.Println("  GET  /api/statistic/date?start=&end=")
		log.Println("  GET  /api/statistic/asin?asin=")
		log.Println("  GET  /api/statistic/total/units")
		log.Println("  GET  /api/statistic/total/date")
		log.Println("  GET  /api/statistic/total/asin")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

// connectDB establishes a connection to a MySQL database.
func connectDB(host string, port int, user, password, dbName, label string) (*sql.DB, error) {
	// DSN with timeout settings to prevent hanging connections
	// timeout: connection timeout, readTimeout/writeTimeout: query timeouts
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci&timeout=5s&readTimeout=10s&writeTimeout=10s",
		user, password, host, port, dbName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", label, err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Verify connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", label, err)
	}

	return db, nil
}

// init sets up logging format
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
}
