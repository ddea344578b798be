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

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/salonsys/scheduling-service/internal/config"
	"github.com/salonsys/scheduling-service/internal/database"
	"github.com/salonsys/scheduling-service/internal/domain"
	"github.com/salonsys/scheduling-service/internal/handlers"
	"github.com/salonsys/scheduling-service/internal/middleware"
	"github.com/salonsys/scheduling-service/internal/repository"
	"github.com/salonsys/scheduling-service/internal/service"
	"github.com/salonsys/scheduling-service/pkg/events"
	"github.com/salonsys/scheduling-service/pkg/logger"
	"github.com/salonsys/scheduling-service/pkg/scheduler"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		appLogger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("failed to run database migrations", "error", err)
	}

	var redisClient *redis.Client
	redisClient, err = database.ConnectRedis(cfg.Redis)
	if err != nil {
		if cfg.Environment == "development" {
			appLogger.Warn("failed to connect to redis, continuing without cache", "error", err)
			redisClient = nil
		} else {
			appLogger.Fatal("failed to connect to redis", "error", err)
		}
	}

	var natsConn *nats.Conn
	var eventPublisher *events.Publisher
	natsConn, err = events.Connect(cfg.NATS)
	if err != nil {
		if cfg.Environment == "development" {
			appLogger.Warn("failed to connect to nats, continuing without events", "error", err)
			eventPublisher = events.NewPublisher(nil, appLogger)
		} else {
			appLogger.Fatal("failed to connect to nats", "error", err)
		}
	} else {
		defer natsConn.Close()
		eventPublisher = events.NewPublisher(natsConn, appLogger)
	}

	staffRepo := repository.NewStaffRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	schedulingService := service.NewSchedulingService(staffRepo, bookingRepo, customerRepo, cacheRepo, eventPublisher, appLogger)

	cronScheduler := scheduler.New(schedulingService, cfg.Optimizer.NightlyReoptimizeCron, defaultOptimizeRequest(cfg), appLogger)
	if err := cronScheduler.Start(); err != nil {
		appLogger.Fatal("failed to start scheduler", "error", err)
	}
	defer cronScheduler.Stop()

	staffHandler := handlers.NewStaffHandler(staffRepo, appLogger)
	customerHandler := handlers.NewCustomerHandler(customerRepo, appLogger)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, eventPublisher, appLogger)
	optimizeHandler := handlers.NewOptimizeHandler(schedulingService, appLogger)
	healthHandler := handlers.NewHealthHandler(db, redisClient, natsConn, appLogger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging(appLogger))
	router.Use(middleware.DefaultCORS())
	router.Use(middleware.RateLimit(redisClient, 120, appLogger))

	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	v1 := router.Group("/api/v1")
	{
		staff := v1.Group("/staff")
		staff.POST("", staffHandler.CreateStaff)
		staff.GET("", staffHandler.ListStaff)
		staff.GET("/:id", staffHandler.GetStaff)

		customers := v1.Group("/customers")
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/:id", customerHandler.GetCustomer)

		bookings := v1.Group("/bookings")
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookingsForDate)
		bookings.GET("/:id", bookingHandler.GetBooking)

		v1.POST("/optimize", optimizeHandler.RunOptimization)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("starting scheduling service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down scheduling service")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("server forced to shutdown", "error", err)
	}
	appLogger.Info("scheduling service stopped")
}

// defaultOptimizeRequest builds the nightly scheduler's fixed salon and
// scheduling policy from configuration. A real deployment would load this
// per-business from the database; this demonstration driver keeps one
// hardcoded policy, matching the boundary drawn around the optimizer core.
func defaultOptimizeRequest(cfg *config.Config) scheduler.DefaultRequestFunc {
	return func(date time.Time) service.OptimizeRequest {
		hours := make(domain.OperatingHours)
		for day := 0; day < 6; day++ { // Monday..Saturday, closed Sunday
			hours[day] = domain.OpenClose{
				Open:  domain.NewClockTime(9, 0),
				Close: domain.NewClockTime(18, 0),
			}
		}
		salon, _ := domain.NewSalonConstraints(hours, 5, 1, domain.NewClockTime(13, 0), 30*time.Minute, nil)
		sched, _ := domain.NewSchedulingConstraints(
			cfg.Optimizer.DefaultMaxCustomerWait,
			cfg.Optimizer.DefaultBufferBetween,
			2*time.Hour, 15*time.Minute,
			3, false, 1.0,
		)
		objectives, _ := domain.NewOptimizationObjectives(0.35, 0.25, 0.25, 0.15)

		return service.OptimizeRequest{
			Salon:          salon,
			Scheduling:     sched,
			Objectives:     objectives,
			ScheduleDate:   date,
			SolveTimeLimit: cfg.Optimizer.SolveTimeLimit,
		}
	}
}
