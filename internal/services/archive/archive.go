package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"quizgen/config"
	"quizgen/pkg/logger"
	s3client "quizgen/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Archiver keeps a copy of every accepted upload.
type Archiver interface {
	Archive(ctx context.Context, localPath, fileName, contentType string) (string, error)
}

// objectAPI is the part of *s3.Client the archiver uses.
type objectAPI interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores uploads content-addressed under documents/<sha256><ext>.
type S3 struct {
	client objectAPI
	bucket string

	mu      sync.Mutex
	ensured bool
}

// NewS3 builds an archiver from the s3 config section.
func NewS3(ctx context.Context, bucket string) (*S3, error) {
	client, err := s3client.GetClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return &S3{client: client, bucket: bucket}, nil
}

func (a *S3) ensureBucket(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ensured {
		return nil
	}
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)}); err != nil {
		_, crtErr := a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
		if crtErr != nil {
			var owned *s3types.BucketAlreadyOwnedByYou
			if !errors.As(crtErr, &owned) {
				return fmt.Errorf("create bucket: %w", crtErr)
			}
		}
		logger.WithModule(config.ModuleArchive).WithField("bucket", a.bucket).Info("archive: bucket ready")
	}
	a.ensured = true
	return nil
}

// Archive uploads the file at localPath and returns its s3:// URI.
func (a *S3) Archive(ctx context.Context, localPath, fileName, contentType string) (string, error) {
	if err := a.ensureBucket(ctx); err != nil {
		return "", err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek: %w", err)
	}

	key := ObjectKey(hex.EncodeToString(hasher.Sum(nil)), fileName)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	uri := fmt.Sprintf("s3://%s/%s", a.bucket, key)
	logger.Debug("archive: %s stored as %s", fileName, uri)
	return uri, nil
}

// ObjectKey is documents/<sha><ext> with the extension taken from fileName.
func ObjectKey(shaHex, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("documents/%s%s", shaHex, ext)
}
