package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/haewon-dev/tutorlog-api/internal/config"
	"github.com/haewon-dev/tutorlog-api/internal/database"
	"github.com/haewon-dev/tutorlog-api/internal/handler"
	"github.com/haewon-dev/tutorlog-api/internal/middleware"
	"github.com/haewon-dev/tutorlog-api/internal/models"
	"github.com/haewon-dev/tutorlog-api/internal/repository"
	"github.com/haewon-dev/tutorlog-api/internal/router"
	"github.com/haewon-dev/tutorlog-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to resolve timezone: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Feedback{}, &models.ScheduledClass{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// The calendar cache is optional; without redis every request rebuilds
	// the view from the store.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	invalidator := service.NewCalendarInvalidator(redisClient, logger)

	studentService := service.NewStudentService(studentRepo, feedbackRepo, validate, invalidator, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, validate, invalidator, loc, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, validate, invalidator, logger)
	calendarService := service.NewCalendarService(scheduleRepo, feedbackRepo, studentRepo, redisClient, cfg.CalendarCacheTTL, loc, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:  handler.NewStudentHandler(studentService, scheduleService, logger),
		FeedbackHandler: handler.NewFeedbackHandler(feedbackService, logger),
		ScheduleHandler: handler.NewScheduleHandler(scheduleService, logger),
		CalendarHandler: handler.NewCalendarHandler(calendarService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
