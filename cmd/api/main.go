// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/api/handlers"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/api/middleware"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/config"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/cron"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/db"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/seed"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/service"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/validation"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	version, err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Printf("✅ Database migrations completed (version %d)", version)

	// ============================================
	// Initialize PostgreSQL (pgxpool + sqlx)
	// ============================================
	pg, err := db.NewPostgresDB(cfg.DatabaseURL, db.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer pg.Close()

	repos := repository.NewRepositories(pg.Pool, pg.SQL, cfg.QueryTimeout)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Services
	// ============================================
	passwords, err := validation.NewPasswordMatcher(cfg.PasswordMode)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.PasswordMode == validation.PasswordModePlain {
		log.Println("⚠️  PASSWORD_MODE=plain: passwords are stored and compared as plain text")
	}

	services := service.NewServices(&service.ServiceDeps{
		Repos:     repos,
		Passwords: passwords,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if !cfg.IsProduction() && cfg.SeedData {
		log.Println("🌱 Seeding development data...")
		if err := seed.SeedData(context.Background(), services); err != nil {
			log.Printf("⚠️  Seeding failed: %v", err)
		}
	}

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(repos.ScheduleRepo, cron.Options{
		PurgeSpec: cfg.PurgeCron,
		Retention: time.Duration(cfg.ScheduleRetentionDays) * 24 * time.Hour,
		PoolStats: pg.LogStats,
	})
	if err := cronScheduler.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron scheduler: %v", err)
	}
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := pg.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now(),
				"database":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"database":  "connected",
		})
	})

	handlers.RegisterRoutes(r, handlers.NewHandlers(services))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
