package utils

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

var ErrUploadsDisabled = errors.New("image uploads are not configured")

type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
}

func NewS3Uploader(ctx context.Context, bucket string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, ErrUploadsDisabled
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return &S3Uploader{uploader: manager.NewUploader(s3.NewFromConfig(cfg)), bucket: bucket}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	result, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}
