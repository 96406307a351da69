package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizgen/config"
	"quizgen/internal/api"
	"quizgen/internal/core/quiz"
	"quizgen/internal/database"
	"quizgen/internal/services/archive"
	"quizgen/internal/services/quizstore"
	"quizgen/internal/services/upload"
	"quizgen/pkg/logger"
	s3client "quizgen/pkg/s3"

	"github.com/gofiber/fiber/v3"
)

func main() {
	ctx := context.Background()

	var store quizstore.Store = quizstore.NewMemory()
	if config.Cfg.Database.Enabled {
		sqlStore, err := quizstore.NewSQL(ctx)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		store = sqlStore
		defer database.Close()
	}

	var archiver archive.Archiver
	if config.Cfg.Upload.Archive && s3client.Enabled() {
		a, err := archive.NewS3(ctx, config.Cfg.S3.Bucket)
		if err != nil {
			logger.Error(err, "archive: disabled")
		} else {
			archiver = a
		}
	}

	generator := quiz.New(quiz.Config{
		EarlyStop:    config.Cfg.Quiz.EarlyStop,
		MaxQuestions: config.Cfg.Quiz.MaxQuestions,
		Logger:       logger.WithModule(config.ModuleQuiz),
	})
	svc := upload.New(upload.OptionsFromConfig(), generator, store, archiver, logger.WithModule(config.ModuleUpload))

	app := api.NewApp(api.Deps{Upload: svc, Store: store})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		logger.Info("server: shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error(err, "server: shutdown error")
		}
	}()

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	logger.WithField("addr", addr).Info("server: listening")
	if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: config.Cfg.Server.Mode == "release"}); err != nil {
		logger.Error(err, "server error")
	}
}
