package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/savaki/asset-publisher/internal/errors"
)

// PutObjectAPI is the subset of *s3.Client used by S3Uploader
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ PutObjectAPI = (*s3.Client)(nil)

// S3Uploader uploads local files to S3 with a single PutObject call
type S3Uploader struct {
	client PutObjectAPI
	fs     billy.Filesystem
}

// NewS3Uploader creates an uploader that reads local files through fs
func NewS3Uploader(client PutObjectAPI, fs billy.Filesystem) *S3Uploader {
	return &S3Uploader{
		client: client,
		fs:     fs,
	}
}

// UploadObject uploads the file at localPath to s3://bucket/key. The content
// type is sniffed from the file contents. Failures are not retried beyond what
// the SDK does on its own.
func (u *S3Uploader) UploadObject(ctx context.Context, bucket, key, localPath string) error {
	logger := zerolog.Ctx(ctx)

	data, err := util.ReadFile(u.fs, localPath)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", errors.ErrUpload, localPath, err)
	}

	contentType := mimetype.Detect(data).String()
	logger.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Str("content_type", contentType).
		Int("size", len(data)).
		Msg("Uploading object")

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		var apiErr smithy.APIError
		if stderrors.As(err, &apiErr) {
			logger.Error().
				Str("code", apiErr.ErrorCode()).
				Str("message", apiErr.ErrorMessage()).
				Str("bucket", bucket).
				Str("key", key).
				Msg("S3 rejected upload")
		}
		return fmt.Errorf("%w: s3://%s/%s: %w", errors.ErrUpload, bucket, key, err)
	}

	return nil
}
