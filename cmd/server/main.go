package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub/internal/app"
	"github.com/tutorhub/tutorhub/internal/auth"
	"github.com/tutorhub/tutorhub/internal/codegen"
	"github.com/tutorhub/tutorhub/internal/config"
	"github.com/tutorhub/tutorhub/internal/controller/handlers"
	"github.com/tutorhub/tutorhub/internal/notify"
	"github.com/tutorhub/tutorhub/internal/repository"
	"github.com/tutorhub/tutorhub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	tutorRepo := repository.NewTutorRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)

	gen := codegen.NewGenerator()
	creds := auth.NewCredentials(cfg.JWTSecret, cfg.TokenTTL)

	var notifier service.Notifier = service.NopNotifier{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, logger)
		if err != nil {
			logger.Warn("Telegram notifications disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	}

	accountService := service.NewAccountService(tutorRepo, studentRepo, gen, creds, notifier, logger)
	linkageService := service.NewLinkageService(studentRepo, logger)
	courseService := service.NewCourseService(courseRepo, gen, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, tutorRepo, studentRepo, notifier, logger)

	h := handlers.New(accountService, linkageService, courseService, enrollmentService, creds, logger)
	server := app.NewServer(cfg.HTTPAddr, h, logger)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	if err := server.Start(); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
