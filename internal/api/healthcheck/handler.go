package healthcheck

import (
	"context"
	"errors"
	"time"

	"quizgen/config"
	"quizgen/internal/database"
	"quizgen/pkg/apperror"
	s3client "quizgen/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
)

func ApiHealthCheck(c fiber.Ctx) error {
	return c.SendString("ok")
}

func DatabaseHealthCheck(c fiber.Ctx) error {
	db, err := database.GetDB()
	if errors.Is(err, database.ErrDisabled) {
		return c.SendString("disabled")
	}
	if err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	return c.SendString("ok")
}

func StorageHealthCheck(c fiber.Ctx) error {
	if !s3client.Enabled() {
		return c.SendString("disabled")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cli, err := s3client.GetClient(ctx)
	if err != nil {
		return apperror.InternalError(config.ModuleS3, c, err)
	}
	if _, err := cli.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(config.Cfg.S3.Bucket)}); err != nil {
		return apperror.InternalError(config.ModuleS3, c, err)
	}
	return c.SendString("ok")
}
